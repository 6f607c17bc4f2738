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
	"github.com/jetsetilly/gopherppc/hardware/ppc/decode"
	"github.com/jetsetilly/gopherppc/hardware/ppc/faults"
)

// branch options
const (
	boIgnoreCond = 0x10
	boCondTrue   = 0x08
	boIgnoreCTR  = 0x04
	boCTRZero    = 0x02
)

// BranchTaken evaluates the branch condition of a conditional branch. CTR is
// decremented unless the branch options say that it should be ignored.
func (c *CPU) BranchTaken(bo, bi uint32) bool {
	ctrOK := true
	if bo&boIgnoreCTR == 0 {
		c.state.SPR[SprCTR]--
		ctrOK = (c.state.SPR[SprCTR] == 0) == (bo&boCTRZero != 0)
	}
	condOK := bo&boIgnoreCond != 0 || c.state.CRBit(bi) == (bo&boCondTrue != 0)
	return ctrOK && condOK
}

func (c *CPU) endBlock(kind BlockEnd, next uint32) {
	c.blockEnd = kind
	c.nextPC = next
}

func branch(c *CPU, opcode uint32) {
	target := decode.LI(opcode)
	if !decode.AA(opcode) {
		target += c.state.PC
	}
	if decode.LK(opcode) {
		c.state.SPR[SprLR] = c.state.PC + 4
	}
	c.endBlock(BlockUncondBranch, target)
}

// a conditional branch ends the block whether or not it is taken
func bc(c *CPU, opcode uint32) {
	next := c.state.PC + 4
	if c.BranchTaken(decode.BO(opcode), decode.BI(opcode)) {
		next = decode.BD(opcode)
		if !decode.AA(opcode) {
			next += c.state.PC
		}
	}
	if decode.LK(opcode) {
		c.state.SPR[SprLR] = c.state.PC + 4
	}
	c.endBlock(BlockCondBranch, next)
}

func bclr(c *CPU, opcode uint32) {
	next := c.state.PC + 4
	if c.BranchTaken(decode.BO(opcode), decode.BI(opcode)) {
		next = c.state.SPR[SprLR] &^ 3
	}
	if decode.LK(opcode) {
		c.state.SPR[SprLR] = c.state.PC + 4
	}
	c.endBlock(BlockCondBranch, next)
}

func bcctr(c *CPU, opcode uint32) {
	bo := decode.BO(opcode)

	// decrementing CTR is an invalid form of bcctr
	if bo&boIgnoreCTR == 0 {
		c.unsupported("bcctr", opcode)
		return
	}

	next := c.state.PC + 4
	if c.BranchTaken(bo, decode.BI(opcode)) {
		next = c.state.SPR[SprCTR] &^ 3
	}
	if decode.LK(opcode) {
		c.state.SPR[SprLR] = c.state.PC + 4
	}
	c.endBlock(BlockCondBranch, next)
}

func sc(c *CPU, opcode uint32) {
	c.logFault(faults.SystemCall, "sc", 0)
	c.endBlock(BlockException, c.exception(ExceptionSystemCall, c.state.PC+4, 0))
}

// the MSR bits restored by rfi
const rfiMask = 0x87c0ff73

func rfi(c *CPU, opcode uint32) {
	c.state.MSR = c.state.MSR&^rfiMask | c.state.SPR[SprSRR1]&rfiMask
	c.reserved = false
	c.endBlock(BlockUncondBranch, c.state.SPR[SprSRR0]&^3)
}

// crLogic returns a handler for a condition register logical instruction
func crLogic(f func(a, b bool) bool) Handler {
	return func(c *CPU, opcode uint32) {
		d := decode.RD(opcode)
		r := f(c.state.CRBit(decode.RA(opcode)), c.state.CRBit(decode.RB(opcode)))
		if r {
			c.state.CR |= 0x80000000 >> d
		} else {
			c.state.CR &^= 0x80000000 >> d
		}
	}
}

var (
	crand  = crLogic(func(a, b bool) bool { return a && b })
	crandc = crLogic(func(a, b bool) bool { return a && !b })
	creqv  = crLogic(func(a, b bool) bool { return a == b })
	crnand = crLogic(func(a, b bool) bool { return !(a && b) })
	crnor  = crLogic(func(a, b bool) bool { return !(a || b) })
	cror   = crLogic(func(a, b bool) bool { return a || b })
	crorc  = crLogic(func(a, b bool) bool { return a || !b })
	crxor  = crLogic(func(a, b bool) bool { return a != b })
)

func mcrf(c *CPU, opcode uint32) {
	c.SetCRField(decode.CRFD(opcode), c.CRField(decode.CRFS(opcode)))
}

func mcrxr(c *CPU, opcode uint32) {
	c.SetCRField(decode.CRFD(opcode), c.state.SPR[SprXER]>>28)
	c.state.SPR[SprXER] &^= 0xf0000000
}

func mfcr(c *CPU, opcode uint32) {
	c.state.GPR[decode.RD(opcode)] = c.state.CR
}

func mtcrf(c *CPU, opcode uint32) {
	crm := decode.CRM(opcode)
	var mask uint32
	for i := uint32(0); i < 8; i++ {
		if crm&(0x80>>i) != 0 {
			mask |= 0xf0000000 >> (i * 4)
		}
	}
	c.state.CR = c.state.CR&^mask | c.state.GPR[decode.RD(opcode)]&mask
}
