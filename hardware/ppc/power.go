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
)

// POWER architecture instructions. These are only implemented by the 601
// and many of them use the MQ register as an extension of the result.

func dozi(c *CPU, opcode uint32) {
	a := int32(c.state.GPR[decode.RA(opcode)])
	imm := int32(decode.SIMM(opcode))
	var r uint32
	if a < imm {
		r = uint32(imm - a)
	}
	c.state.GPR[decode.RD(opcode)] = r
}

func doz(c *CPU, opcode uint32) {
	a := c.state.GPR[decode.RA(opcode)]
	b := c.state.GPR[decode.RB(opcode)]
	var r uint32
	if int32(a) < int32(b) {
		r = b - a
	}
	if c.oe {
		c.SetOverflow(int32(a) < int32(b) && addOverflows(^a, b, r))
	}
	c.setResult(decode.RD(opcode), r)
}

func abs(c *CPU, opcode uint32) {
	a := c.state.GPR[decode.RA(opcode)]
	r := a
	if int32(a) < 0 {
		r = -a
	}
	if c.oe {
		c.SetOverflow(a == 0x80000000)
	}
	c.setResult(decode.RD(opcode), r)
}

func nabs(c *CPU, opcode uint32) {
	a := c.state.GPR[decode.RA(opcode)]
	r := a
	if int32(a) > 0 {
		r = -a
	}
	if c.oe {
		c.SetOverflow(false)
	}
	c.setResult(decode.RD(opcode), r)
}

// the high word of the product is placed in rD and the low word in MQ
func mul(c *CPU, opcode uint32) {
	p := int64(int32(c.state.GPR[decode.RA(opcode)])) * int64(int32(c.state.GPR[decode.RB(opcode)]))
	c.state.SPR[SprMQ] = uint32(p)
	if c.oe {
		c.SetOverflow(p != int64(int32(p)))
	}
	c.setResult(decode.RD(opcode), uint32(p>>32))
}

// the dividend is rA concatenated with MQ. the quotient is placed in rD and
// the remainder in MQ
func div(c *CPU, opcode uint32) {
	dividend := int64(uint64(c.state.GPR[decode.RA(opcode)])<<32 | uint64(c.state.SPR[SprMQ]))
	divisor := int64(int32(c.state.GPR[decode.RB(opcode)]))
	c.powerDivide(opcode, dividend, divisor)
}

func divs(c *CPU, opcode uint32) {
	dividend := int64(int32(c.state.GPR[decode.RA(opcode)]))
	divisor := int64(int32(c.state.GPR[decode.RB(opcode)]))
	c.powerDivide(opcode, dividend, divisor)
}

func (c *CPU) powerDivide(opcode uint32, dividend, divisor int64) {
	var q, r int64
	invalid := divisor == 0
	if !invalid {
		q = dividend / divisor
		r = dividend % divisor
		invalid = q != int64(int32(q))
	}

	if invalid {
		q = -0x80000000
		r = 0
	}

	c.state.SPR[SprMQ] = uint32(r)
	if c.oe {
		c.SetOverflow(invalid)
	}
	c.setResult(decode.RD(opcode), uint32(q))
}

func rlmi(c *CPU, opcode uint32) {
	m := RotMask(decode.MB(opcode), decode.ME(opcode))
	r := rotl(c.state.GPR[decode.RD(opcode)], c.state.GPR[decode.RB(opcode)])
	ra := decode.RA(opcode)
	c.setResult(ra, r&m|c.state.GPR[ra]&^m)
}

func maskg(c *CPU, opcode uint32) {
	m := RotMask(c.state.GPR[decode.RD(opcode)]&0x1f, c.state.GPR[decode.RB(opcode)]&0x1f)
	c.setResult(decode.RA(opcode), m)
}

func maskir(c *CPU, opcode uint32) {
	ra := decode.RA(opcode)
	s := c.state.GPR[decode.RD(opcode)]
	m := c.state.GPR[decode.RB(opcode)]
	c.setResult(ra, s&m|c.state.GPR[ra]&^m)
}

// powerShift describes one of the POWER shift instructions. all of them
// rotate rS and merge the result using a mask
type powerShift struct {
	right bool

	// shift amount from the SH field rather than rB
	immediate bool

	// bit 26 of rB extends the shift amount to 63
	extended bool

	// bits outside of the mask come from MQ instead of zero
	merge bool

	// bits outside of the mask are copies of the sign bit
	algebraic bool

	// the rotated value is written to MQ
	writeMQ bool
}

func (ps powerShift) handler() Handler {
	return func(c *CPU, opcode uint32) {
		s := c.state.GPR[decode.RD(opcode)]

		var n, rb uint32
		if ps.immediate {
			n = decode.SH(opcode)
		} else {
			rb = c.state.GPR[decode.RB(opcode)]
			n = rb & 0x1f
		}

		var rot, m uint32
		if ps.right {
			rot = rotl(s, 32-n)
			m = 0xffffffff >> n
		} else {
			rot = rotl(s, n)
			m = 0xffffffff << n
		}

		// data bits are zero when bit 26 of rB is set. for the merge forms
		// the bits outside the mask still come from MQ
		data := rot
		if ps.extended && rb&0x20 != 0 {
			data = 0
			if !ps.merge {
				m = 0
			}
		}

		var r uint32
		switch {
		case ps.algebraic:
			var fill uint32
			if int32(s) < 0 {
				fill = ^m
			}
			r = data&m | fill
			c.SetCarry(int32(s) < 0 && rot&^m != 0)
		case ps.merge:
			r = data&m | c.state.SPR[SprMQ]&^m
		default:
			r = data & m
		}

		if ps.writeMQ {
			c.state.SPR[SprMQ] = rot
		}
		c.setResult(decode.RA(opcode), r)
	}
}

var (
	sle   = powerShift{writeMQ: true}.handler()
	sleq  = powerShift{merge: true, writeMQ: true}.handler()
	sliq  = powerShift{immediate: true, writeMQ: true}.handler()
	slliq = powerShift{immediate: true, merge: true, writeMQ: true}.handler()
	slq   = powerShift{extended: true, writeMQ: true}.handler()
	sllq  = powerShift{extended: true, merge: true}.handler()
	sre   = powerShift{right: true, writeMQ: true}.handler()
	sreq  = powerShift{right: true, merge: true, writeMQ: true}.handler()
	sriq  = powerShift{right: true, immediate: true, writeMQ: true}.handler()
	srliq = powerShift{right: true, immediate: true, merge: true, writeMQ: true}.handler()
	srq   = powerShift{right: true, extended: true, writeMQ: true}.handler()
	srlq  = powerShift{right: true, extended: true, merge: true}.handler()
	srea  = powerShift{right: true, algebraic: true, writeMQ: true}.handler()
	sraiq = powerShift{right: true, immediate: true, algebraic: true, writeMQ: true}.handler()
	sraq  = powerShift{right: true, extended: true, algebraic: true, writeMQ: true}.handler()
)

func rrib(c *CPU, opcode uint32) {
	n := c.state.GPR[decode.RB(opcode)] & 0x1f
	ra := decode.RA(opcode)
	bit := (c.state.GPR[decode.RD(opcode)] & 0x80000000) >> n
	c.setResult(ra, c.state.GPR[ra]&^(0x80000000>>n)|bit)
}

// the cache line size is 64 bytes for every cache query on the 601
func clcs(c *CPU, opcode uint32) {
	var r uint32
	switch decode.RA(opcode) {
	case 12, 13, 14, 15:
		r = 64
	}
	c.setResult(decode.RD(opcode), r)
}

// lscbx loads up to XER[25-31] bytes, stopping after a byte that matches
// XER[16-23]. the number of bytes loaded is written back to XER
func lscbx(c *CPU, opcode uint32) {
	ea := c.eaX(opcode, false)
	xer := c.state.SPR[SprXER]
	n := xer & 0x7f
	match := uint8(xer >> 8)

	r := decode.RD(opcode)
	shift := 24
	var count uint32
	found := false

	for count < n && !found {
		v, ok := c.Load(ea+count, 1, false)
		if !ok {
			return
		}
		if shift == 24 {
			c.state.GPR[r] = 0
		}
		c.state.GPR[r] |= v << shift
		count++
		found = uint8(v) == match

		shift -= 8
		if shift < 0 {
			shift = 24
			r = (r + 1) & 0x1f
		}
	}

	c.state.SPR[SprXER] = xer&^0x7f | count
	if c.rc {
		f := c.summaryOverflow()
		if found {
			f |= crEQ
		}
		c.SetCRField(0, f)
	}
}
