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

package ppc

import (
	"sync/atomic"

	"github.com/jetsetilly/gopherppc/curated"
	"github.com/jetsetilly/gopherppc/hardware/memory"
	"github.com/jetsetilly/gopherppc/hardware/ppc/architecture"
	"github.com/jetsetilly/gopherppc/hardware/ppc/decode"
	"github.com/jetsetilly/gopherppc/hardware/ppc/faults"
	"github.com/jetsetilly/gopherppc/hardware/preferences"
	"github.com/jetsetilly/gopherppc/logger"
)

// the address of the first instruction after a hard reset
const ResetVector = 0xfff00100

// Translator is the interface to the memory management unit. Instructions are
// fetched a page at a time through TranslateForExecution(). Data accesses go
// through the sized Read and Write functions.
type Translator interface {
	TranslateForExecution(ea uint32) (memory.Fetch, error)
	Read8(ea uint32) (uint8, error)
	Read16(ea uint32) (uint16, error)
	Read32(ea uint32) (uint32, error)
	Read64(ea uint32) (uint64, error)
	Write8(ea uint32, v uint8) error
	Write16(ea uint32, v uint16) error
	Write32(ea uint32, v uint32) error
	Write64(ea uint32, v uint64) error
}

// Handler is the implementation of an instruction.
type Handler func(c *CPU, opcode uint32)

// Entry is an instruction in the CPU's decode tables.
type Entry = decode.Entry[Handler]

// Decoder is the CPU's instruction decoder.
type Decoder = decode.Decoder[Handler]

// BlockEnd is the reason the current basic block has ended.
type BlockEnd int

// List of valid BlockEnd values.
const (
	BlockNone BlockEnd = iota
	BlockCondBranch
	BlockUncondBranch
	BlockException
)

// CPU is a 32-bit PowerPC processor.
type CPU struct {
	state State
	arch  architecture.Map
	prefs *preferences.PPCPreferences
	mem   Translator
	dec   *Decoder

	// faults taken by the CPU
	Faults *faults.Faults

	// the CPU will stop executing at the next block boundary if Power is
	// false. can be changed from any goroutine
	Power atomic.Bool

	// record and overflow-enable bits of the instruction being executed
	rc bool
	oe bool

	// how the current instruction ends the basic block and the address of
	// the instruction that follows it
	blockEnd BlockEnd
	nextPC   uint32

	// set by raise() when the current instruction has caused an exception.
	// nextPC has been set to the exception vector
	fault bool

	// an unrecoverable error found during the current instruction
	fatal error

	// the decrementer has passed through zero but the exception has not yet
	// been taken
	decPending bool

	// reservation made by lwarx
	reserved    bool
	reserveAddr uint32
}

// NewCPU is the preferred method of initialisation for the CPU type. The
// processor model is taken from the preferences.
func NewCPU(mem Translator, prefs *preferences.PPCPreferences) (*CPU, error) {
	arch, err := architecture.NewMap(prefs.Model.Get().(string))
	if err != nil {
		return nil, curated.Errorf("ppc: %v", err)
	}

	dec, err := decoder()
	if err != nil {
		return nil, curated.Errorf("ppc: %v", err)
	}

	c := &CPU{
		arch:   arch,
		prefs:  prefs,
		mem:    mem,
		dec:    dec,
		Faults: faults.NewFaults(),
	}
	c.Reset()

	logger.Logf(logger.Allow, "PPC", "created %s", arch)

	return c, nil
}

// Reset the CPU to the hard reset state.
func (c *CPU) Reset() {
	c.state = State{}
	c.state.SPR[SprPVR] = c.arch.PVR
	c.state.MSR = c.arch.ResetMSR
	if c.arch.PresetDEC {
		c.state.SPR[SprDEC] = 0xffffffff
	}
	c.state.PC = ResetVector

	c.blockEnd = BlockNone
	c.fault = false
	c.fatal = nil
	c.decPending = false
	c.reserved = false
	c.Power.Store(true)
}

// State returns the architectural state of the CPU. The state can be
// changed through the returned pointer.
func (c *CPU) State() *State {
	return &c.state
}

// Architecture returns the processor model.
func (c *CPU) Architecture() architecture.Map {
	return c.arch
}

// Decoder returns the decode tables used by the CPU.
func (c *CPU) Decoder() *Decoder {
	return c.dec
}

// Memory returns the memory interface of the CPU.
func (c *CPU) Memory() Translator {
	return c.mem
}

// Preferences returns the preferences used by the CPU.
func (c *CPU) Preferences() *preferences.PPCPreferences {
	return c.prefs
}
