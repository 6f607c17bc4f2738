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
	"math/bits"

	"github.com/jetsetilly/gopherppc/hardware/ppc/decode"
)

// SetCR0 sets field 0 of the condition register by comparing the result
// with zero. The SO bit is copied from XER.
func (c *CPU) SetCR0(v uint32) {
	c.SetCRField(0, compareSigned(int32(v), 0)|c.summaryOverflow())
}

// SetCRField sets the four bits of condition register field n.
func (c *CPU) SetCRField(n uint32, f uint32) {
	shift := (7 - (n & 7)) * 4
	c.state.CR = c.state.CR&^(0xf<<shift) | (f&0xf)<<shift
}

// CRField returns the four bits of condition register field n.
func (c *CPU) CRField(n uint32) uint32 {
	return (c.state.CR >> ((7 - (n & 7)) * 4)) & 0xf
}

// SetCarry sets or clears XER[CA].
func (c *CPU) SetCarry(ca bool) {
	if ca {
		c.state.SPR[SprXER] |= XerCA
	} else {
		c.state.SPR[SprXER] &^= XerCA
	}
}

// Carry returns XER[CA] as 0 or 1.
func (c *CPU) Carry() uint32 {
	return (c.state.SPR[SprXER] >> 29) & 1
}

// SetOverflow sets or clears XER[OV]. XER[SO] is set if overflow is true and
// is otherwise unchanged.
func (c *CPU) SetOverflow(ov bool) {
	if ov {
		c.state.SPR[SprXER] |= XerOV | XerSO
	} else {
		c.state.SPR[SprXER] &^= XerOV
	}
}

func (c *CPU) summaryOverflow() uint32 {
	return c.state.SPR[SprXER] >> 31
}

func compareSigned(a, b int32) uint32 {
	switch {
	case a < b:
		return crLT
	case a > b:
		return crGT
	}
	return crEQ
}

func compareUnsigned(a, b uint32) uint32 {
	switch {
	case a < b:
		return crLT
	case a > b:
		return crGT
	}
	return crEQ
}

func addOverflows(a, b, r uint32) bool {
	return (a^r)&(b^r)&0x80000000 != 0
}

// AddCarrying returns a + b + carryIn and sets XER[CA]. XER[OV] is also set
// if oe is true.
func (c *CPU) AddCarrying(a, b, carryIn uint32, oe bool) uint32 {
	r64 := uint64(a) + uint64(b) + uint64(carryIn)
	r := uint32(r64)
	c.SetCarry(r64 > 0xffffffff)
	if oe {
		c.SetOverflow(addOverflows(a, b, r))
	}
	return r
}

// the result of an XO-form instruction
func (c *CPU) setResult(rd uint32, v uint32) {
	c.state.GPR[rd] = v
	if c.rc {
		c.SetCR0(v)
	}
}

// the value of register rA or zero if rA is register zero
func (c *CPU) gprOrZero(ra uint32) uint32 {
	if ra == 0 {
		return 0
	}
	return c.state.GPR[ra]
}

func addi(c *CPU, opcode uint32) {
	c.state.GPR[decode.RD(opcode)] = c.gprOrZero(decode.RA(opcode)) + decode.SIMM(opcode)
}

func addis(c *CPU, opcode uint32) {
	c.state.GPR[decode.RD(opcode)] = c.gprOrZero(decode.RA(opcode)) + opcode<<16
}

func addic(c *CPU, opcode uint32) {
	c.state.GPR[decode.RD(opcode)] = c.AddCarrying(c.state.GPR[decode.RA(opcode)], decode.SIMM(opcode), 0, false)
}

func addicDot(c *CPU, opcode uint32) {
	r := c.AddCarrying(c.state.GPR[decode.RA(opcode)], decode.SIMM(opcode), 0, false)
	c.state.GPR[decode.RD(opcode)] = r
	c.SetCR0(r)
}

func subfic(c *CPU, opcode uint32) {
	c.state.GPR[decode.RD(opcode)] = c.AddCarrying(^c.state.GPR[decode.RA(opcode)], decode.SIMM(opcode), 1, false)
}

func mulli(c *CPU, opcode uint32) {
	c.state.GPR[decode.RD(opcode)] = uint32(int32(c.state.GPR[decode.RA(opcode)]) * int32(decode.SIMM(opcode)))
}

func add(c *CPU, opcode uint32) {
	a := c.state.GPR[decode.RA(opcode)]
	b := c.state.GPR[decode.RB(opcode)]
	r := a + b
	if c.oe {
		c.SetOverflow(addOverflows(a, b, r))
	}
	c.setResult(decode.RD(opcode), r)
}

func addc(c *CPU, opcode uint32) {
	r := c.AddCarrying(c.state.GPR[decode.RA(opcode)], c.state.GPR[decode.RB(opcode)], 0, c.oe)
	c.setResult(decode.RD(opcode), r)
}

func adde(c *CPU, opcode uint32) {
	r := c.AddCarrying(c.state.GPR[decode.RA(opcode)], c.state.GPR[decode.RB(opcode)], c.Carry(), c.oe)
	c.setResult(decode.RD(opcode), r)
}

func addme(c *CPU, opcode uint32) {
	r := c.AddCarrying(c.state.GPR[decode.RA(opcode)], 0xffffffff, c.Carry(), c.oe)
	c.setResult(decode.RD(opcode), r)
}

func addze(c *CPU, opcode uint32) {
	r := c.AddCarrying(c.state.GPR[decode.RA(opcode)], 0, c.Carry(), c.oe)
	c.setResult(decode.RD(opcode), r)
}

func subf(c *CPU, opcode uint32) {
	a := c.state.GPR[decode.RA(opcode)]
	b := c.state.GPR[decode.RB(opcode)]
	r := b - a
	if c.oe {
		c.SetOverflow(addOverflows(^a, b, r))
	}
	c.setResult(decode.RD(opcode), r)
}

func subfc(c *CPU, opcode uint32) {
	r := c.AddCarrying(^c.state.GPR[decode.RA(opcode)], c.state.GPR[decode.RB(opcode)], 1, c.oe)
	c.setResult(decode.RD(opcode), r)
}

func subfe(c *CPU, opcode uint32) {
	r := c.AddCarrying(^c.state.GPR[decode.RA(opcode)], c.state.GPR[decode.RB(opcode)], c.Carry(), c.oe)
	c.setResult(decode.RD(opcode), r)
}

func subfme(c *CPU, opcode uint32) {
	r := c.AddCarrying(^c.state.GPR[decode.RA(opcode)], 0xffffffff, c.Carry(), c.oe)
	c.setResult(decode.RD(opcode), r)
}

func subfze(c *CPU, opcode uint32) {
	r := c.AddCarrying(^c.state.GPR[decode.RA(opcode)], 0, c.Carry(), c.oe)
	c.setResult(decode.RD(opcode), r)
}

func neg(c *CPU, opcode uint32) {
	a := c.state.GPR[decode.RA(opcode)]
	if c.oe {
		c.SetOverflow(a == 0x80000000)
	}
	c.setResult(decode.RD(opcode), -a)
}

func mullw(c *CPU, opcode uint32) {
	r := int64(int32(c.state.GPR[decode.RA(opcode)])) * int64(int32(c.state.GPR[decode.RB(opcode)]))
	if c.oe {
		c.SetOverflow(r != int64(int32(r)))
	}
	c.setResult(decode.RD(opcode), uint32(r))
}

func mulhw(c *CPU, opcode uint32) {
	r := int64(int32(c.state.GPR[decode.RA(opcode)])) * int64(int32(c.state.GPR[decode.RB(opcode)]))
	c.setResult(decode.RD(opcode), uint32(r>>32))
}

func mulhwu(c *CPU, opcode uint32) {
	hi, _ := bits.Mul32(c.state.GPR[decode.RA(opcode)], c.state.GPR[decode.RB(opcode)])
	c.setResult(decode.RD(opcode), hi)
}

// the result of an invalid division is undefined. the processors set the
// result to all ones for a negative dividend and zero otherwise
func divw(c *CPU, opcode uint32) {
	a := int32(c.state.GPR[decode.RA(opcode)])
	b := int32(c.state.GPR[decode.RB(opcode)])

	var r uint32
	invalid := b == 0 || (a == -0x80000000 && b == -1)
	if invalid {
		if a < 0 {
			r = 0xffffffff
		}
	} else {
		r = uint32(a / b)
	}

	if c.oe {
		c.SetOverflow(invalid)
	}
	c.setResult(decode.RD(opcode), r)
}

func divwu(c *CPU, opcode uint32) {
	a := c.state.GPR[decode.RA(opcode)]
	b := c.state.GPR[decode.RB(opcode)]

	var r uint32
	if b != 0 {
		r = a / b
	}

	if c.oe {
		c.SetOverflow(b == 0)
	}
	c.setResult(decode.RD(opcode), r)
}

func cmpi(c *CPU, opcode uint32) {
	f := compareSigned(int32(c.state.GPR[decode.RA(opcode)]), int32(decode.SIMM(opcode)))
	c.SetCRField(decode.CRFD(opcode), f|c.summaryOverflow())
}

func cmpli(c *CPU, opcode uint32) {
	f := compareUnsigned(c.state.GPR[decode.RA(opcode)], decode.UIMM(opcode))
	c.SetCRField(decode.CRFD(opcode), f|c.summaryOverflow())
}

func cmp(c *CPU, opcode uint32) {
	f := compareSigned(int32(c.state.GPR[decode.RA(opcode)]), int32(c.state.GPR[decode.RB(opcode)]))
	c.SetCRField(decode.CRFD(opcode), f|c.summaryOverflow())
}

func cmpl(c *CPU, opcode uint32) {
	f := compareUnsigned(c.state.GPR[decode.RA(opcode)], c.state.GPR[decode.RB(opcode)])
	c.SetCRField(decode.CRFD(opcode), f|c.summaryOverflow())
}

// logical immediate instructions. the source register is in the rD position
// and the destination in the rA position

func ori(c *CPU, opcode uint32) {
	c.state.GPR[decode.RA(opcode)] = c.state.GPR[decode.RD(opcode)] | decode.UIMM(opcode)
}

func oris(c *CPU, opcode uint32) {
	c.state.GPR[decode.RA(opcode)] = c.state.GPR[decode.RD(opcode)] | decode.UIMM(opcode)<<16
}

func xori(c *CPU, opcode uint32) {
	c.state.GPR[decode.RA(opcode)] = c.state.GPR[decode.RD(opcode)] ^ decode.UIMM(opcode)
}

func xoris(c *CPU, opcode uint32) {
	c.state.GPR[decode.RA(opcode)] = c.state.GPR[decode.RD(opcode)] ^ decode.UIMM(opcode)<<16
}

func andiDot(c *CPU, opcode uint32) {
	r := c.state.GPR[decode.RD(opcode)] & decode.UIMM(opcode)
	c.state.GPR[decode.RA(opcode)] = r
	c.SetCR0(r)
}

func andisDot(c *CPU, opcode uint32) {
	r := c.state.GPR[decode.RD(opcode)] & (decode.UIMM(opcode) << 16)
	c.state.GPR[decode.RA(opcode)] = r
	c.SetCR0(r)
}

// logical returns a handler for an X-form logical instruction
func logical(f func(s, b uint32) uint32) Handler {
	return func(c *CPU, opcode uint32) {
		r := f(c.state.GPR[decode.RD(opcode)], c.state.GPR[decode.RB(opcode)])
		c.setResult(decode.RA(opcode), r)
	}
}

var (
	and  = logical(func(s, b uint32) uint32 { return s & b })
	andc = logical(func(s, b uint32) uint32 { return s &^ b })
	or   = logical(func(s, b uint32) uint32 { return s | b })
	orc  = logical(func(s, b uint32) uint32 { return s | ^b })
	xor  = logical(func(s, b uint32) uint32 { return s ^ b })
	nor  = logical(func(s, b uint32) uint32 { return ^(s | b) })
	nand = logical(func(s, b uint32) uint32 { return ^(s & b) })
	eqv  = logical(func(s, b uint32) uint32 { return ^(s ^ b) })
)

// shift amounts of 32 to 63 shift out every bit
var (
	slw = logical(func(s, b uint32) uint32 {
		if b&0x20 != 0 {
			return 0
		}
		return s << (b & 0x1f)
	})
	srw = logical(func(s, b uint32) uint32 {
		if b&0x20 != 0 {
			return 0
		}
		return s >> (b & 0x1f)
	})
)

func sraw(c *CPU, opcode uint32) {
	s := c.state.GPR[decode.RD(opcode)]
	n := c.state.GPR[decode.RB(opcode)] & 0x3f
	c.setResult(decode.RA(opcode), c.shiftRightAlgebraic(s, n))
}

func srawi(c *CPU, opcode uint32) {
	s := c.state.GPR[decode.RD(opcode)]
	c.setResult(decode.RA(opcode), c.shiftRightAlgebraic(s, decode.SH(opcode)))
}

// shiftRightAlgebraic shifts the value right by n bits (0 to 63), filling
// with the sign bit. XER[CA] is set if the value is negative and any one
// bits were shifted out.
func (c *CPU) shiftRightAlgebraic(s, n uint32) uint32 {
	if n > 31 {
		c.SetCarry(int32(s) < 0)
		return uint32(int32(s) >> 31)
	}
	r := uint32(int32(s) >> n)
	c.SetCarry(int32(s) < 0 && s&^(0xffffffff<<n) != 0)
	return r
}

func cntlzw(c *CPU, opcode uint32) {
	c.setResult(decode.RA(opcode), uint32(bits.LeadingZeros32(c.state.GPR[decode.RD(opcode)])))
}

func extsb(c *CPU, opcode uint32) {
	c.setResult(decode.RA(opcode), uint32(int32(int8(c.state.GPR[decode.RD(opcode)]))))
}

func extsh(c *CPU, opcode uint32) {
	c.setResult(decode.RA(opcode), uint32(int32(int16(c.state.GPR[decode.RD(opcode)]))))
}

func rlwimi(c *CPU, opcode uint32) {
	m := RotMask(decode.MB(opcode), decode.ME(opcode))
	r := rotl(c.state.GPR[decode.RD(opcode)], decode.SH(opcode))
	ra := decode.RA(opcode)
	c.setResult(ra, r&m|c.state.GPR[ra]&^m)
}

func rlwinm(c *CPU, opcode uint32) {
	m := RotMask(decode.MB(opcode), decode.ME(opcode))
	r := rotl(c.state.GPR[decode.RD(opcode)], decode.SH(opcode))
	c.setResult(decode.RA(opcode), r&m)
}

func rlwnm(c *CPU, opcode uint32) {
	m := RotMask(decode.MB(opcode), decode.ME(opcode))
	r := rotl(c.state.GPR[decode.RD(opcode)], c.state.GPR[decode.RB(opcode)])
	c.setResult(decode.RA(opcode), r&m)
}
