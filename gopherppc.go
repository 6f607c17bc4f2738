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

package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/jetsetilly/gopherppc/debugger"
	"github.com/jetsetilly/gopherppc/debugger/terminal"
	"github.com/jetsetilly/gopherppc/debugger/terminal/colorterm"
	"github.com/jetsetilly/gopherppc/debugger/terminal/plainterm"
	"github.com/jetsetilly/gopherppc/digest"
	"github.com/jetsetilly/gopherppc/hardware"
	"github.com/jetsetilly/gopherppc/hardware/ppc/predecode"
	"github.com/jetsetilly/gopherppc/hardware/preferences"
	"github.com/jetsetilly/gopherppc/logger"
	"github.com/jetsetilly/gopherppc/modalflag"
	"github.com/jetsetilly/gopherppc/paths"
	"github.com/jetsetilly/gopherppc/prefs"
	"github.com/jetsetilly/gopherppc/statsview"
	"github.com/jetsetilly/gopherppc/version"
)

const defaultInitScript = "monitorInit"

func main() {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.NewMode()
	md.AddSubModes("RUN", "DEBUG", "CACHE", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		os.Exit(0)

	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		os.Exit(10)
	}

	switch md.Mode() {
	case "RUN":
		err = run(md)

	case "DEBUG":
		err = debug(md)

	case "CACHE":
		err = cache(md)

	case "VERSION":
		v, r, _ := version.Version()
		fmt.Printf("%s %s (%s)\n", version.ApplicationName, v, r)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md.String(), err)
		os.Exit(20)
	}
}

// flags common to all modes
type machineFlags struct {
	model     *string
	ram       *int
	load      *uint64
	prefs     *string
	log       *bool
	statsview *bool
}

func addMachineFlags(md *modalflag.Modes) *machineFlags {
	return &machineFlags{
		model:     md.AddString("model", "", "processor model: 601, 603, 604, 750 (default from preferences)"),
		ram:       md.AddInt("ram", 64, "amount of RAM in MiB"),
		load:      md.AddUint64("load", hardware.ROMOrigin, "address at which to load the image"),
		prefs:     md.AddString("prefs", "", "preferences for this session. eg. \"ppc.decrementer::true; ppc.cacheCapacity::64\""),
		log:       md.AddBool("log", false, "echo debugging log to stdout"),
		statsview: md.AddBool("statsview", false, "run stats server at "+statsview.DefaultAddress),
	}
}

// create the machine and attach the image named by the first remaining
// argument
func (f *machineFlags) machine(md *modalflag.Modes) (*hardware.Machine, error) {
	if *f.log {
		logger.SetEcho(os.Stdout)
	} else {
		logger.SetEcho(nil)
	}

	if *f.statsview {
		statsview.Launch(os.Stdout, "")
	}

	if *f.prefs != "" {
		prefs.PushCommandLineStack(*f.prefs)
	}

	prf, err := preferences.NewPPCPreferences()
	if err != nil {
		return nil, err
	}

	if *f.model != "" {
		if err := prf.Model.Set(*f.model); err != nil {
			return nil, err
		}
	}

	if *f.ram <= 0 || *f.ram > 2048 {
		return nil, fmt.Errorf("RAM must be between 1 and 2048 MiB")
	}

	m, err := hardware.NewMachine(prf, uint32(*f.ram)<<20, os.Stdout)
	if err != nil {
		return nil, err
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return nil, fmt.Errorf("image required for %s mode", md)
	case 1:
		if err := m.AttachImage(md.GetArg(0), uint32(*f.load)); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("too many arguments for %s mode", md)
	}

	return m, nil
}

func run(md *modalflag.Modes) error {
	md.NewMode()

	f := addMachineFlags(md)
	faults := md.AddBool("faults", false, "list faults on exit")
	dig := md.AddBool("digest", false, "print a hash of the CPU state on exit")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	m, err := f.machine(md)
	if err != nil {
		return err
	}

	// ctrl-c powers off the machine. the CPU stops at the next block
	// boundary
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)
	defer signal.Stop(intChan)
	go func() {
		<-intChan
		m.CPU.Power.Store(false)
	}()

	err = m.Run()

	if *faults {
		m.CPU.Faults.WriteLog(os.Stdout)
	}

	if *dig {
		d := digest.NewState()
		d.Update(m.CPU.State())
		fmt.Println(d.Hash())
	}

	if err != nil {
		fmt.Println(m.CPU.String())
		return err
	}

	return nil
}

func debug(md *modalflag.Modes) error {
	md.NewMode()

	defInitScript, err := paths.ResourcePath("", defaultInitScript)
	if err != nil {
		return err
	}

	f := addMachineFlags(md)
	termType := md.AddString("term", "AUTO", "terminal type to use in debug mode: AUTO, COLOR, PLAIN")
	initScript := md.AddString("initscript", defInitScript, "script to run on monitor start")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	m, err := f.machine(md)
	if err != nil {
		return err
	}

	var term terminal.Terminal

	switch strings.ToUpper(*termType) {
	default:
		fmt.Printf("! unknown terminal type (%s) defaulting to plain\n", *termType)
		fallthrough
	case "PLAIN":
		term = plainterm.NewPlainTerminal(nil, nil)
	case "COLOR":
		term = &colorterm.ColorTerminal{}
	case "AUTO":
		if plainterm.IsTerminal() {
			term = &colorterm.ColorTerminal{}
		} else {
			term = plainterm.NewPlainTerminal(nil, nil)
		}
	}

	// a missing init script is not an error
	if _, err := os.Stat(*initScript); err != nil {
		*initScript = ""
	}

	dbg := debugger.NewDebugger(m.CPU, m.Mem, term)
	return dbg.Start(*initScript)
}

func cache(md *modalflag.Modes) error {
	md.NewMode()

	f := addMachineFlags(md)
	addr := md.AddUint64("addr", 0, "address of the block to compile (default is the reset vector)")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	m, err := f.machine(md)
	if err != nil {
		return err
	}

	start := m.CPU.State().PC
	if *addr != 0 {
		start = uint32(*addr)
	}

	c := predecode.NewCache()
	next, err := c.Run(m.CPU, start)
	fmt.Print(c.String())
	if err != nil {
		return err
	}

	fmt.Printf("next: %08x (%d cycles)\n", next, c.Cycles())
	fmt.Println(m.CPU.String())

	return nil
}
