// This file is part of GopherPPC.
//
// GopherPPC is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// GopherPPC is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with GopherPPC.  If not, see <https://www.gnu.org/licenses/>.

package debugger

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/bradleyjkemp/memviz"
	"github.com/jetsetilly/gopherppc/curated"
	"github.com/jetsetilly/gopherppc/debugger/commandline"
	"github.com/jetsetilly/gopherppc/debugger/script"
	"github.com/jetsetilly/gopherppc/debugger/terminal"
	"github.com/jetsetilly/gopherppc/hardware/ppc"
	"github.com/jetsetilly/gopherppc/logger"
	"github.com/jetsetilly/gopherppc/prefs"
)

// Sentinal error patterns returned by monitor commands.
const (
	UnknownCommand   = "debugger: unknown command (%s)"
	MissingArgument  = "debugger: %s: missing argument"
	TooManyArguments = "debugger: %s: too many arguments"
	InvalidValue     = "debugger: %s: invalid value (%s)"
	PoweredOff       = "debugger: CPU is powered off"
	ScriptDepth      = "debugger: script nesting too deep"
	UnknownPref      = "debugger: unknown preference (%s)"
)

// maximum depth of nested scripts
const maxScriptDepth = 8

// List of monitor commands.
const (
	cmdStep   = "STEP"
	cmdUntil  = "UNTIL"
	cmdRun    = "RUN"
	cmdReset  = "RESET"
	cmdRegs   = "REGS"
	cmdFPRs   = "FPRS"
	cmdGet    = "GET"
	cmdSet    = "SET"
	cmdPeek   = "PEEK"
	cmdPoke   = "POKE"
	cmdCache  = "CACHE"
	cmdFaults = "FAULTS"
	cmdLog    = "LOG"
	cmdMemviz = "MEMVIZ"
	cmdScript = "SCRIPT"
	cmdPrefs  = "PREFS"
	cmdHelp   = "HELP"
	cmdQuit   = "QUIT"
)

type command struct {
	usage string
	help  string
	run   func(dbg *Debugger, tokens *commandline.Tokens) error
}

var commands map[string]command

func init() {
	commands = map[string]command{
		cmdStep:   {"STEP [n]", "execute n instructions (default 1)", (*Debugger).cmdStep},
		cmdUntil:  {"UNTIL <addr>", "execute until the PC equals the address", (*Debugger).cmdUntil},
		cmdRun:    {"RUN", "execute until the CPU is powered off or interrupted with CTRL-C", (*Debugger).cmdRun},
		cmdReset:  {"RESET", "reset the CPU. memory is not changed", (*Debugger).cmdReset},
		cmdRegs:   {"REGS", "show the general purpose and branch registers", (*Debugger).cmdRegs},
		cmdFPRs:   {"FPRS", "show the floating point registers", (*Debugger).cmdFPRs},
		cmdGet:    {"GET <reg>", "show the value of a named register", (*Debugger).cmdGet},
		cmdSet:    {"SET <reg> <value>", "set the value of a named register", (*Debugger).cmdSet},
		cmdPeek:   {"PEEK <addr> [n]", "show n words of memory (default 1)", (*Debugger).cmdPeek},
		cmdPoke:   {"POKE <addr> <value> [value...]", "write words to memory", (*Debugger).cmdPoke},
		cmdCache:  {"CACHE [addr]", "run one block with the pre-decode interpreter (default PC)", (*Debugger).cmdCache},
		cmdFaults: {"FAULTS [CLEAR]", "list the faults taken by the CPU", (*Debugger).cmdFaults},
		cmdLog:    {"LOG [n|CLEAR]", "show the last n entries of the log (default all)", (*Debugger).cmdLog},
		cmdMemviz: {"MEMVIZ <file>", "write a graphviz description of the CPU state to file", (*Debugger).cmdMemviz},
		cmdScript: {"SCRIPT <file>", "run monitor commands from file. files ending in .lua are run as Lua", (*Debugger).cmdScript},
		cmdPrefs:  {"PREFS [SAVE|<key> <value>]", "list, change or save CPU preferences", (*Debugger).cmdPrefs},
		cmdHelp:   {"HELP [command]", "list commands or show help for a command", (*Debugger).cmdHelp},
		cmdQuit:   {"QUIT", "leave the monitor", (*Debugger).cmdQuit},
	}
}

func commandNames() []string {
	n := make([]string, 0, len(commands))
	for k := range commands {
		n = append(n, k)
	}
	return n
}

// Command runs one or more monitor commands separated by semicolons.
// Processing stops at the first error. Implements the script.Machine
// interface.
func (dbg *Debugger) Command(input string) error {
	for _, c := range commandline.SplitCommands(input) {
		tokens := commandline.TokeniseInput(c)
		dbg.printLine(terminal.StyleEcho, tokens.String())

		name, _ := tokens.Get()
		cmd, ok := commands[strings.ToUpper(name)]
		if !ok {
			return curated.Errorf(UnknownCommand, name)
		}
		if err := cmd.run(dbg, tokens); err != nil {
			return err
		}
		if dbg.quit {
			return nil
		}
	}
	return nil
}

func parseValue(cmd string, s string, bits int) (uint64, error) {
	v, err := strconv.ParseUint(s, 0, bits)
	if err != nil {
		// allow negative values for convenience
		n, nerr := strconv.ParseInt(s, 0, bits)
		if nerr != nil {
			return 0, curated.Errorf(InvalidValue, cmd, s)
		}
		v = uint64(n) & (1<<bits - 1)
	}
	return v, nil
}

func address(cmd string, tokens *commandline.Tokens) (uint32, error) {
	s, ok := tokens.Get()
	if !ok {
		return 0, curated.Errorf(MissingArgument, cmd)
	}
	v, err := parseValue(cmd, s, 32)
	return uint32(v), err
}

func noMoreArguments(cmd string, tokens *commandline.Tokens) error {
	if !tokens.IsEnd() {
		return curated.Errorf(TooManyArguments, cmd)
	}
	return nil
}

func (dbg *Debugger) printStep() {
	dbg.printLine(terminal.StyleCPUStep, dbg.instruction(dbg.cpu.State().PC))
}

func (dbg *Debugger) cmdStep(tokens *commandline.Tokens) error {
	n := uint64(1)
	if s, ok := tokens.Get(); ok {
		var err error
		n, err = parseValue(cmdStep, s, 32)
		if err != nil {
			return err
		}
	}
	if err := noMoreArguments(cmdStep, tokens); err != nil {
		return err
	}

	err := dbg.Step(int(n))
	dbg.printStep()
	return err
}

func (dbg *Debugger) cmdUntil(tokens *commandline.Tokens) error {
	addr, err := address(cmdUntil, tokens)
	if err != nil {
		return err
	}
	if err := noMoreArguments(cmdUntil, tokens); err != nil {
		return err
	}

	err = dbg.RunUntil(addr)
	dbg.printStep()
	return err
}

func (dbg *Debugger) cmdRun(tokens *commandline.Tokens) error {
	if err := noMoreArguments(cmdRun, tokens); err != nil {
		return err
	}
	err := dbg.Run()
	dbg.printStep()
	return err
}

func (dbg *Debugger) cmdReset(tokens *commandline.Tokens) error {
	if err := noMoreArguments(cmdReset, tokens); err != nil {
		return err
	}
	dbg.cpu.Reset()
	dbg.printStep()
	return nil
}

func (dbg *Debugger) cmdRegs(tokens *commandline.Tokens) error {
	if err := noMoreArguments(cmdRegs, tokens); err != nil {
		return err
	}
	w := dbg.writer(terminal.StyleInstrument)
	w.Write([]byte(dbg.cpu.String()))
	w.Flush()
	return nil
}

func (dbg *Debugger) cmdFPRs(tokens *commandline.Tokens) error {
	if err := noMoreArguments(cmdFPRs, tokens); err != nil {
		return err
	}
	w := dbg.writer(terminal.StyleInstrument)
	w.Write([]byte(dbg.cpu.FPRString()))
	w.Flush()
	return nil
}

func (dbg *Debugger) cmdGet(tokens *commandline.Tokens) error {
	name, ok := tokens.Get()
	if !ok {
		return curated.Errorf(MissingArgument, cmdGet)
	}
	if err := noMoreArguments(cmdGet, tokens); err != nil {
		return err
	}

	v, err := dbg.cpu.ReadRegister(name)
	if err != nil {
		return err
	}

	name = strings.ToUpper(name)
	if strings.HasPrefix(name, "FR") || name == "TB" {
		dbg.printLine(terminal.StyleInstrument, fmt.Sprintf("%s = %016x", name, v))
	} else {
		dbg.printLine(terminal.StyleInstrument, fmt.Sprintf("%s = %08x", name, v))
	}
	return nil
}

func (dbg *Debugger) cmdSet(tokens *commandline.Tokens) error {
	name, ok := tokens.Get()
	if !ok {
		return curated.Errorf(MissingArgument, cmdSet)
	}
	s, ok := tokens.Get()
	if !ok {
		return curated.Errorf(MissingArgument, cmdSet)
	}
	if err := noMoreArguments(cmdSet, tokens); err != nil {
		return err
	}

	v, err := parseValue(cmdSet, s, 64)
	if err != nil {
		return err
	}
	return dbg.cpu.WriteRegister(name, v)
}

func (dbg *Debugger) cmdPeek(tokens *commandline.Tokens) error {
	addr, err := address(cmdPeek, tokens)
	if err != nil {
		return err
	}

	n := uint64(1)
	if s, ok := tokens.Get(); ok {
		n, err = parseValue(cmdPeek, s, 16)
		if err != nil {
			return err
		}
	}
	if err := noMoreArguments(cmdPeek, tokens); err != nil {
		return err
	}

	// four words per line
	s := strings.Builder{}
	for i := uint64(0); i < n; i++ {
		a := addr + uint32(i*4)
		if i%4 == 0 {
			if i > 0 {
				dbg.printLine(terminal.StyleInstrument, s.String())
				s.Reset()
			}
			s.WriteString(fmt.Sprintf("%08x:", a))
		}
		v, err := dbg.PeekWord(a)
		if err != nil {
			if s.Len() > 9 {
				dbg.printLine(terminal.StyleInstrument, s.String())
			}
			return err
		}
		s.WriteString(fmt.Sprintf(" %08x", v))
	}
	if s.Len() > 0 {
		dbg.printLine(terminal.StyleInstrument, s.String())
	}

	return nil
}

func (dbg *Debugger) cmdPoke(tokens *commandline.Tokens) error {
	addr, err := address(cmdPoke, tokens)
	if err != nil {
		return err
	}
	if tokens.IsEnd() {
		return curated.Errorf(MissingArgument, cmdPoke)
	}

	for s, ok := tokens.Get(); ok; s, ok = tokens.Get() {
		v, err := parseValue(cmdPoke, s, 32)
		if err != nil {
			return err
		}
		if err := dbg.PokeWord(addr, uint32(v)); err != nil {
			return err
		}
		addr += 4
	}

	return nil
}

func (dbg *Debugger) cmdCache(tokens *commandline.Tokens) error {
	addr := dbg.cpu.State().PC
	if !tokens.IsEnd() {
		var err error
		addr, err = address(cmdCache, tokens)
		if err != nil {
			return err
		}
	}
	if err := noMoreArguments(cmdCache, tokens); err != nil {
		return err
	}

	var next uint32
	err := dbg.guard(func() error {
		var err error
		next, err = dbg.cache.Run(dbg.cpu, addr)
		return err
	})

	w := dbg.writer(terminal.StyleInstrument)
	w.Write([]byte(dbg.cache.String()))
	w.Flush()
	if err != nil {
		return err
	}

	dbg.printLine(terminal.StyleFeedback, fmt.Sprintf("next: %08x (%d cycles)", next, dbg.cache.Cycles()))
	return nil
}

func (dbg *Debugger) cmdFaults(tokens *commandline.Tokens) error {
	if s, ok := tokens.Get(); ok {
		if strings.ToUpper(s) != "CLEAR" {
			return curated.Errorf(InvalidValue, cmdFaults, s)
		}
		dbg.cpu.Faults.Clear()
		return noMoreArguments(cmdFaults, tokens)
	}

	if len(dbg.cpu.Faults.Log) == 0 {
		dbg.printLine(terminal.StyleFeedback, "no faults")
		return nil
	}

	w := dbg.writer(terminal.StyleInstrument)
	dbg.cpu.Faults.WriteLog(w)
	w.Flush()
	return nil
}

func (dbg *Debugger) cmdLog(tokens *commandline.Tokens) error {
	w := dbg.writer(terminal.StyleLog)
	defer w.Flush()

	s, ok := tokens.Get()
	if !ok {
		logger.Write(w)
		return nil
	}
	if err := noMoreArguments(cmdLog, tokens); err != nil {
		return err
	}

	if strings.ToUpper(s) == "CLEAR" {
		logger.Clear()
		return nil
	}

	n, err := parseValue(cmdLog, s, 16)
	if err != nil {
		return err
	}
	logger.Tail(w, int(n))
	return nil
}

func (dbg *Debugger) cmdMemviz(tokens *commandline.Tokens) error {
	fn, ok := tokens.Get()
	if !ok {
		return curated.Errorf(MissingArgument, cmdMemviz)
	}
	if err := noMoreArguments(cmdMemviz, tokens); err != nil {
		return err
	}

	f, err := os.Create(fn)
	if err != nil {
		return curated.Errorf("debugger: %s: %v", cmdMemviz, err)
	}
	defer f.Close()

	memviz.Map(f, dbg.cpu.State())
	dbg.printLine(terminal.StyleFeedback, fmt.Sprintf("CPU state written to %s", fn))

	return nil
}

func (dbg *Debugger) cmdScript(tokens *commandline.Tokens) error {
	fn, ok := tokens.Get()
	if !ok {
		return curated.Errorf(MissingArgument, cmdScript)
	}
	if err := noMoreArguments(cmdScript, tokens); err != nil {
		return err
	}
	return dbg.runScript(fn)
}

func (dbg *Debugger) runScript(fn string) error {
	if dbg.scriptDepth >= maxScriptDepth {
		return curated.Errorf(ScriptDepth)
	}
	dbg.scriptDepth++
	defer func() {
		dbg.scriptDepth--
	}()

	if strings.HasSuffix(strings.ToLower(fn), ".lua") {
		w := dbg.writer(terminal.StyleFeedback)
		defer w.Flush()

		scr := script.NewScript(dbg, w)
		defer scr.Close()
		return scr.RunFile(fn)
	}

	f, err := os.Open(fn)
	if err != nil {
		return curated.Errorf("debugger: %s: %v", cmdScript, err)
	}
	defer f.Close()

	// one or more commands on every line. blank lines and lines beginning
	// with # are ignored
	scanner := bufio.NewScanner(f)
	for scanner.Scan() && !dbg.quit {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := dbg.Command(line); err != nil {
			return err
		}
	}

	return scanner.Err()
}

type namedPref struct {
	key string
	p   interface {
		Set(prefs.Value) error
		String() string
	}
}

func (dbg *Debugger) prefs() []namedPref {
	p := dbg.cpu.Preferences()
	return []namedPref{
		{"model", &p.Model},
		{"decrementer", &p.DecrementerEnabled},
		{"cacheCapacity", &p.CacheCapacity},
		{"abortOnFault", &p.AbortOnFault},
		{"extendedFaultLogging", &p.ExtendedFaultLogging},
	}
}

func (dbg *Debugger) cmdPrefs(tokens *commandline.Tokens) error {
	key, ok := tokens.Get()
	if !ok {
		for _, p := range dbg.prefs() {
			dbg.printLine(terminal.StyleInstrument, fmt.Sprintf("%-20s %s", p.key, p.p))
		}
		return nil
	}

	if strings.ToUpper(key) == "SAVE" {
		if err := noMoreArguments(cmdPrefs, tokens); err != nil {
			return err
		}
		return dbg.cpu.Preferences().Save()
	}

	value, ok := tokens.Get()
	if !ok {
		return curated.Errorf(MissingArgument, cmdPrefs)
	}
	if err := noMoreArguments(cmdPrefs, tokens); err != nil {
		return err
	}

	for _, p := range dbg.prefs() {
		if strings.EqualFold(p.key, key) {
			if err := p.p.Set(value); err != nil {
				return curated.Errorf(InvalidValue, cmdPrefs, value)
			}
			return nil
		}
	}

	return curated.Errorf(UnknownPref, key)
}

func (dbg *Debugger) cmdHelp(tokens *commandline.Tokens) error {
	name, ok := tokens.Get()
	if !ok {
		names := commandNames()
		sort.Strings(names)
		for _, n := range names {
			dbg.printLine(terminal.StyleHelp, commands[n].usage)
		}
		return nil
	}
	if err := noMoreArguments(cmdHelp, tokens); err != nil {
		return err
	}

	cmd, ok := commands[strings.ToUpper(name)]
	if !ok {
		return curated.Errorf(UnknownCommand, name)
	}
	dbg.printLine(terminal.StyleHelp, cmd.usage)
	dbg.printLine(terminal.StyleHelp, fmt.Sprintf("  %s", cmd.help))

	if strings.ToUpper(name) == cmdGet || strings.ToUpper(name) == cmdSet {
		names := ppc.RegisterNames()
		sort.Strings(names)
		dbg.printLine(terminal.StyleHelp, fmt.Sprintf("  registers: %s", strings.Join(names, " ")))
	}

	return nil
}

func (dbg *Debugger) cmdQuit(tokens *commandline.Tokens) error {
	if err := noMoreArguments(cmdQuit, tokens); err != nil {
		return err
	}
	dbg.quit = true
	return nil
}
