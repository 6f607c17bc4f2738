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

	"github.com/jetsetilly/gopherppc/hardware/ppc/decode"
	"github.com/jetsetilly/gopherppc/hardware/ppc/faults"
)

// SPRs with bit 4 of the register number set can only be accessed in
// supervisor mode
func sprPrivileged(spr uint32) bool {
	return spr&0x10 != 0
}

// ReadSPR returns the value of the special purpose register. Timebase
// registers are read from the timebase.
func (c *CPU) ReadSPR(spr uint32) uint32 {
	switch spr {
	case TbrTBL, SprTBL:
		return uint32(c.state.TB)
	case TbrTBU, SprTBU:
		return uint32(c.state.TB >> 32)
	}
	return c.state.SPR[spr&0x3ff]
}

// WriteSPR sets the value of the special purpose register. Writes to the
// processor version register are ignored.
func (c *CPU) WriteSPR(spr uint32, v uint32) {
	switch spr {
	case SprPVR:
		return
	case SprTBL:
		c.state.TB = c.state.TB&0xffffffff00000000 | uint64(v)
		return
	case SprTBU:
		c.state.TB = c.state.TB&0xffffffff | uint64(v)<<32
		return
	case SprDEC:
		c.decPending = false
	}
	c.state.SPR[spr&0x3ff] = v
}

// SPRAccess returns true if the special purpose register can be accessed
// in the current privilege mode. Otherwise a privileged instruction program
// exception is raised.
func (c *CPU) SPRAccess(spr uint32, name string) bool {
	if sprPrivileged(spr) && c.state.MSR&MsrPR != 0 {
		c.programFault(ProgramPrivileged, faults.Privileged, fmt.Sprintf("%s %d", name, spr))
		return false
	}
	return true
}

func mfspr(c *CPU, opcode uint32) {
	spr := decode.SPR(opcode)
	if !c.SPRAccess(spr, "mfspr") {
		return
	}
	c.state.GPR[decode.RD(opcode)] = c.ReadSPR(spr)
}

func mtspr(c *CPU, opcode uint32) {
	spr := decode.SPR(opcode)
	if !c.SPRAccess(spr, "mtspr") {
		return
	}
	c.WriteSPR(spr, c.state.GPR[decode.RD(opcode)])
}

func mftb(c *CPU, opcode uint32) {
	spr := decode.SPR(opcode)
	if spr != TbrTBL && spr != TbrTBU {
		c.programFault(ProgramIllegal, faults.Illegal, fmt.Sprintf("mftb %d", spr))
		return
	}
	c.state.GPR[decode.RD(opcode)] = c.ReadSPR(spr)
}

func mfmsr(c *CPU, opcode uint32) {
	c.state.GPR[decode.RD(opcode)] = c.state.MSR
}

func mtmsr(c *CPU, opcode uint32) {
	c.state.MSR = c.state.GPR[decode.RD(opcode)]
}

func mfsr(c *CPU, opcode uint32) {
	c.state.GPR[decode.RD(opcode)] = c.state.SR[decode.SR(opcode)]
}

func mtsr(c *CPU, opcode uint32) {
	c.state.SR[decode.SR(opcode)] = c.state.GPR[decode.RD(opcode)]
}

func mfsrin(c *CPU, opcode uint32) {
	c.state.GPR[decode.RD(opcode)] = c.state.SR[c.state.GPR[decode.RB(opcode)]>>28]
}

func mtsrin(c *CPU, opcode uint32) {
	c.state.SR[c.state.GPR[decode.RB(opcode)]>>28] = c.state.GPR[decode.RD(opcode)]
}

// synchronisation and TLB management instructions have no effect. the
// interpreter completes every instruction in order and there is no TLB
func nop(c *CPU, opcode uint32) {
}

// trap conditions
const (
	toLT  = 0x10
	toGT  = 0x08
	toEQ  = 0x04
	toLTU = 0x02
	toGTU = 0x01
)

func trapTaken(to uint32, a, b uint32) bool {
	sa := int32(a)
	sb := int32(b)
	return (to&toLT != 0 && sa < sb) ||
		(to&toGT != 0 && sa > sb) ||
		(to&toEQ != 0 && a == b) ||
		(to&toLTU != 0 && a < b) ||
		(to&toGTU != 0 && a > b)
}

func twi(c *CPU, opcode uint32) {
	if trapTaken(decode.RD(opcode), c.state.GPR[decode.RA(opcode)], decode.SIMM(opcode)) {
		c.programFault(ProgramTrap, faults.Trap, "twi")
	}
}

func tw(c *CPU, opcode uint32) {
	if trapTaken(decode.RD(opcode), c.state.GPR[decode.RA(opcode)], c.state.GPR[decode.RB(opcode)]) {
		c.programFault(ProgramTrap, faults.Trap, "tw")
	}
}

// handler for opcode space that is recognised but not implemented
func unimplemented(name string) Handler {
	return func(c *CPU, opcode uint32) {
		c.unsupported(name, opcode)
	}
}
