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
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/jetsetilly/gopherppc/curated"
	"github.com/jetsetilly/gopherppc/debugger/commandline"
	"github.com/jetsetilly/gopherppc/debugger/terminal"
	"github.com/jetsetilly/gopherppc/hardware/memory"
	"github.com/jetsetilly/gopherppc/hardware/ppc"
	"github.com/jetsetilly/gopherppc/hardware/ppc/predecode"
	"github.com/jetsetilly/gopherppc/logger"
	"github.com/jetsetilly/gopherppc/version"
)

// the maximum length of an input line
const inputBufferSize = 256

// Debugger is the monitor for a CPU and its memory map.
type Debugger struct {
	cpu   *ppc.CPU
	mem   *memory.Map
	term  terminal.Terminal
	cache *predecode.Cache

	events *terminal.ReadEvents

	// the number of nested scripts currently running
	scriptDepth int

	// execution was stopped by an interrupt signal
	interrupted bool

	quit bool
}

// NewDebugger is the preferred method of initialisation for the Debugger
// type.
func NewDebugger(cpu *ppc.CPU, mem *memory.Map, term terminal.Terminal) *Debugger {
	return &Debugger{
		cpu:   cpu,
		mem:   mem,
		term:  term,
		cache: predecode.NewCache(),
		events: &terminal.ReadEvents{
			IntEvents: make(chan os.Signal, 1),
		},
	}
}

// Start the monitor. The init script is run before any input is read from
// the terminal. Start() returns when the user quits or when the terminal
// reaches the end of its input.
func (dbg *Debugger) Start(initScript string) error {
	if err := dbg.term.Initialise(); err != nil {
		return curated.Errorf("debugger: %v", err)
	}
	defer dbg.term.CleanUp()

	dbg.term.RegisterTabCompletion(commandline.NewTabCompletion(commandNames()))

	signal.Notify(dbg.events.IntEvents, os.Interrupt)
	defer signal.Stop(dbg.events.IntEvents)

	// no banner when input is coming from a pipe
	if dbg.term.IsInteractive() {
		v, _, _ := version.Version()
		dbg.printLine(terminal.StyleFeedback, fmt.Sprintf("%s %s monitor (%s)", version.ApplicationName, v, dbg.cpu.Architecture()))
	}
	logger.Logf(logger.Allow, "monitor", "started for %s", dbg.cpu.Architecture())

	// only errors are shown while the init script runs
	if initScript != "" {
		dbg.term.Silence(true)
		err := dbg.runScript(initScript)
		dbg.term.Silence(false)
		if err != nil {
			dbg.printLine(terminal.StyleError, err.Error())
		}
	}

	return dbg.inputLoop()
}

func (dbg *Debugger) inputLoop() error {
	buffer := make([]byte, inputBufferSize)

	for !dbg.quit {
		n, err := dbg.term.TermRead(buffer, dbg.prompt(), dbg.events)
		if err != nil {
			if err == io.EOF || curated.Is(err, terminal.UserQuit) || curated.Is(err, terminal.UserInterrupt) {
				return nil
			}
			return curated.Errorf("debugger: %v", err)
		}

		if err := dbg.Command(string(buffer[:n])); err != nil {
			dbg.printLine(terminal.StyleError, err.Error())
		}
	}

	return nil
}

func (dbg *Debugger) prompt() terminal.Prompt {
	p := terminal.Prompt{
		Type:    terminal.PromptTypeCPUStep,
		Content: dbg.instruction(dbg.cpu.State().PC),
		Script:  dbg.scriptDepth,
	}
	if !dbg.cpu.Power.Load() {
		p.Type = terminal.PromptTypeHalted
	}
	return p
}

// instruction returns a single line description of the instruction at the
// address.
func (dbg *Debugger) instruction(addr uint32) string {
	op, err := dbg.PeekWord(addr)
	if err != nil {
		return fmt.Sprintf("%08x ????????", addr)
	}
	e, err := dbg.cpu.Decoder().Decode(op)
	if err != nil {
		return fmt.Sprintf("%08x %08x (illegal)", addr, op)
	}
	return fmt.Sprintf("%08x %08x %s", addr, op, e.Name)
}

// guard runs f while watching for interrupt signals. An interrupt clears the
// CPU's Power flag which stops execution at the next block boundary.
func (dbg *Debugger) guard(f func() error) error {
	if !dbg.cpu.Power.Load() {
		return curated.Errorf(PoweredOff)
	}

	done := make(chan bool)
	ack := make(chan bool)

	go func() {
		interrupted := false
		select {
		case <-dbg.events.IntEvents:
			interrupted = true
			dbg.cpu.Power.Store(false)
		case <-done:
		}
		ack <- interrupted
	}()

	err := f()
	close(done)
	dbg.interrupted = <-ack

	if dbg.interrupted {
		dbg.cpu.Power.Store(true)
		dbg.printLine(terminal.StyleFeedback, "interrupted")
	} else if !dbg.cpu.Power.Load() {
		dbg.printLine(terminal.StyleFeedback, "powered off")
	}

	return err
}

// PeekWord returns the big-endian word at the address without side effects.
func (dbg *Debugger) PeekWord(addr uint32) (uint32, error) {
	var v uint32
	for i := uint32(0); i < 4; i++ {
		b, err := dbg.mem.Peek(addr + i)
		if err != nil {
			return 0, err
		}
		v = v<<8 | uint32(b)
	}
	return v, nil
}

// PokeWord writes the big-endian word to the address. ROM can be written
// with PokeWord().
func (dbg *Debugger) PokeWord(addr uint32, v uint32) error {
	return dbg.mem.Load(addr, []byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)})
}

// ReadRegister implements the script.Machine interface.
func (dbg *Debugger) ReadRegister(name string) (uint64, error) {
	return dbg.cpu.ReadRegister(name)
}

// WriteRegister implements the script.Machine interface.
func (dbg *Debugger) WriteRegister(name string, v uint64) error {
	return dbg.cpu.WriteRegister(name, v)
}

// Step executes n instructions. Stepping stops early if an interrupt signal
// is received.
func (dbg *Debugger) Step(n int) error {
	return dbg.guard(func() error {
		for i := 0; i < n && dbg.cpu.Power.Load(); i++ {
			if err := dbg.cpu.Step(); err != nil {
				return err
			}
		}
		return nil
	})
}

// RunUntil executes instructions until the PC is equal to the address.
func (dbg *Debugger) RunUntil(addr uint32) error {
	return dbg.guard(func() error {
		return dbg.cpu.RunUntil(addr)
	})
}

// Run executes instructions until the CPU is powered off or interrupted.
func (dbg *Debugger) Run() error {
	return dbg.guard(dbg.cpu.Run)
}
