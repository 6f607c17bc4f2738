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
	"fmt"

	"github.com/jetsetilly/gopherppc/curated"
	"github.com/jetsetilly/gopherppc/hardware/memory"
	"github.com/jetsetilly/gopherppc/hardware/ppc/decode"
	"github.com/jetsetilly/gopherppc/hardware/ppc/faults"
	"github.com/jetsetilly/gopherppc/logger"
)

// Exception is the offset of an exception vector.
type Exception uint32

// List of valid Exception values.
const (
	ExceptionReset         Exception = 0x0100
	ExceptionMachineCheck  Exception = 0x0200
	ExceptionDSI           Exception = 0x0300
	ExceptionISI           Exception = 0x0400
	ExceptionExternal      Exception = 0x0500
	ExceptionAlignment     Exception = 0x0600
	ExceptionProgram       Exception = 0x0700
	ExceptionFPUnavailable Exception = 0x0800
	ExceptionDecrementer   Exception = 0x0900
	ExceptionSystemCall    Exception = 0x0c00
	ExceptionTrace         Exception = 0x0d00
)

func (exc Exception) String() string {
	switch exc {
	case ExceptionReset:
		return "reset"
	case ExceptionMachineCheck:
		return "machine check"
	case ExceptionDSI:
		return "DSI"
	case ExceptionISI:
		return "ISI"
	case ExceptionExternal:
		return "external"
	case ExceptionAlignment:
		return "alignment"
	case ExceptionProgram:
		return "program"
	case ExceptionFPUnavailable:
		return "floating point unavailable"
	case ExceptionDecrementer:
		return "decrementer"
	case ExceptionSystemCall:
		return "system call"
	case ExceptionTrace:
		return "trace"
	}
	return fmt.Sprintf("exception(%04x)", uint32(exc))
}

// Bits set in SRR1 by a program exception.
const (
	ProgramFPE        = 0x00100000
	ProgramIllegal    = 0x00080000
	ProgramPrivileged = 0x00040000
	ProgramTrap       = 0x00020000
)

// Bits set in DSISR by a data access exception.
const (
	DsisrNoTranslation = 0x40000000
	DsisrProtection    = 0x08000000
	DsisrStore         = 0x02000000
	DsisrEAR           = 0x00100000
)

// Bits set in SRR1 by an instruction access exception.
const (
	isiNoTranslation = 0x40000000
	isiProtection    = 0x08000000
)

// Sentinal error patterns for exceptions that cannot be recovered from.
const (
	VectorUnmapped = "ppc: exception vector %08x cannot be fetched: %v"
	FaultAbort     = "ppc: aborted on fault: %v"
)

// the MSR bits copied to SRR1 when an exception is taken
const srr1Mask = 0x0000ff73

// the MSR bits that survive an exception
const msrExceptionMask = MsrME | MsrIP | MsrILE

// exception sets up the registers for the exception and returns the address
// of the vector. the caller is responsible for continuing execution at the
// vector.
func (c *CPU) exception(exc Exception, srr0 uint32, bits uint32) uint32 {
	c.state.SPR[SprSRR0] = srr0
	c.state.SPR[SprSRR1] = (c.state.MSR & srr1Mask) | bits

	msr := c.state.MSR & msrExceptionMask
	if msr&MsrILE != 0 {
		msr |= MsrLE
	}
	c.state.MSR = msr

	// an exception always cancels a reservation
	c.reserved = false

	vector := uint32(exc)
	if msr&MsrIP != 0 {
		vector |= 0xfff00000
	}
	return vector
}

// raise is called by instructions that cannot complete. execution continues
// at the vector once the instruction returns. SRR0 is the address of the
// faulting instruction.
func (c *CPU) raise(exc Exception, bits uint32, category faults.Category, event string, accessAddr uint32) {
	c.logFault(category, event, accessAddr)

	c.nextPC = c.exception(exc, c.state.PC, bits)
	c.fault = true

	if c.prefs.AbortOnFault.Get().(bool) {
		c.fatal = curated.Errorf(FaultAbort, fmt.Sprintf("%s: %s (PC: %08x)", category, event, c.state.PC))
	}
}

func (c *CPU) logFault(category faults.Category, event string, accessAddr uint32) {
	e, first := c.Faults.NewEntry(event, category, c.state.PC, accessAddr)
	if first {
		logger.Log(logger.Allow, "PPC", e.String())
	} else {
		logger.Log(c.prefs, "PPC", e.String())
	}
}

// dataFault raises a DSI or an alignment exception for a failed memory access
func (c *CPU) dataFault(ea uint32, store bool, err error) {
	var dsisr uint32
	if curated.Is(err, memory.ReadOnly) {
		dsisr = DsisrProtection
	} else {
		dsisr = DsisrNoTranslation
	}

	event := "load"
	if store {
		dsisr |= DsisrStore
		event = "store"
	}

	c.state.SPR[SprDAR] = ea
	c.state.SPR[SprDSISR] = dsisr
	c.raise(ExceptionDSI, 0, faults.DataAccess, event, ea)
}

// alignmentFault raises an alignment exception for the current instruction
func (c *CPU) alignmentFault(opcode uint32, ea uint32) {
	c.state.SPR[SprDAR] = ea
	c.state.SPR[SprDSISR] = alignmentDSISR(opcode)
	c.raise(ExceptionAlignment, 0, faults.Alignment, "misaligned access", ea)
}

// the DSISR for an alignment exception identifies the instruction by
// copying fields from the opcode
func alignmentDSISR(opcode uint32) uint32 {
	var v uint32
	if opcode>>26 == 31 {
		v = (opcode>>1&3)<<15 | (opcode>>6&1)<<14 | (opcode>>7&0xf)<<10
	} else {
		v = (opcode>>26&1)<<14 | (opcode>>27&0xf)<<10
	}
	return v | (opcode>>21&0x1f)<<5 | (opcode >> 16 & 0x1f)
}

func (c *CPU) programFault(bits uint32, category faults.Category, event string) {
	c.raise(ExceptionProgram, bits, category, event, 0)
}

// Fault returns the exception vector if the most recent access or helper
// call raised an exception. The fault signal is cleared. The error is
// non-nil if the AbortOnFault preference has made the exception fatal.
func (c *CPU) Fault() (uint32, bool, error) {
	if !c.fault {
		return 0, false, nil
	}
	c.fault = false
	err := c.fatal
	c.fatal = nil
	return c.nextPC, true, err
}

func (c *CPU) unsupported(name string, opcode uint32) {
	c.fatal = curated.Errorf(decode.ErrUnsupportedEncoding, name, opcode)
}

// FPAvailable raises a floating point unavailable exception if MSR[FP] is
// clear
func (c *CPU) FPAvailable() bool {
	if c.state.MSR&MsrFP == 0 {
		c.raise(ExceptionFPUnavailable, 0, faults.FPUnavailable, "floating point disabled", 0)
		return false
	}
	return true
}

// Interrupt takes a pending asynchronous exception at a block boundary.
// next is the address of the next instruction to execute. Returns the
// address execution should continue from.
func (c *CPU) Interrupt(next uint32) uint32 {
	if c.decPending && c.state.MSR&MsrEE != 0 {
		c.decPending = false
		e, _ := c.Faults.NewEntry("decrementer", faults.Decrementer, next, 0)
		logger.Log(c.prefs, "PPC", e.String())
		return c.exception(ExceptionDecrementer, next, 0)
	}
	return next
}
