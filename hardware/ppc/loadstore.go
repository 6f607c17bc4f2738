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
	"github.com/jetsetilly/gopherppc/hardware/ppc/faults"
)

// effective address of a D-form load or store. update forms always use rA
func (c *CPU) eaD(opcode uint32, update bool) uint32 {
	ra := decode.RA(opcode)
	if update {
		return c.state.GPR[ra] + decode.SIMM(opcode)
	}
	return c.gprOrZero(ra) + decode.SIMM(opcode)
}

// effective address of an X-form load or store
func (c *CPU) eaX(opcode uint32, update bool) uint32 {
	ra := decode.RA(opcode)
	if update {
		return c.state.GPR[ra] + c.state.GPR[decode.RB(opcode)]
	}
	return c.gprOrZero(ra) + c.state.GPR[decode.RB(opcode)]
}

// load returns a handler for the integer load instructions. indexed
// instructions are X-form and all others are D-form
func load(size int, algebraic bool, indexed bool, update bool) Handler {
	return func(c *CPU, opcode uint32) {
		var ea uint32
		if indexed {
			ea = c.eaX(opcode, update)
		} else {
			ea = c.eaD(opcode, update)
		}

		v, ok := c.Load(ea, size, algebraic)
		if !ok {
			return
		}

		c.state.GPR[decode.RD(opcode)] = v
		if update {
			c.state.GPR[decode.RA(opcode)] = ea
		}
	}
}

// store returns a handler for the integer store instructions
func store(size int, indexed bool, update bool) Handler {
	return func(c *CPU, opcode uint32) {
		var ea uint32
		if indexed {
			ea = c.eaX(opcode, update)
		} else {
			ea = c.eaD(opcode, update)
		}

		if !c.Store(ea, size, c.state.GPR[decode.RD(opcode)]) {
			return
		}

		if update {
			c.state.GPR[decode.RA(opcode)] = ea
		}
	}
}

func lhbrx(c *CPU, opcode uint32) {
	v, ok := c.Load(c.eaX(opcode, false), 2, false)
	if !ok {
		return
	}
	c.state.GPR[decode.RD(opcode)] = uint32(bits.ReverseBytes16(uint16(v)))
}

func lwbrx(c *CPU, opcode uint32) {
	v, ok := c.Load(c.eaX(opcode, false), 4, false)
	if !ok {
		return
	}
	c.state.GPR[decode.RD(opcode)] = bits.ReverseBytes32(v)
}

func sthbrx(c *CPU, opcode uint32) {
	v := bits.ReverseBytes16(uint16(c.state.GPR[decode.RD(opcode)]))
	c.Store(c.eaX(opcode, false), 2, uint32(v))
}

func stwbrx(c *CPU, opcode uint32) {
	v := bits.ReverseBytes32(c.state.GPR[decode.RD(opcode)])
	c.Store(c.eaX(opcode, false), 4, v)
}

func lmw(c *CPU, opcode uint32) {
	ea := c.eaD(opcode, false)
	if ea&3 != 0 {
		c.alignmentFault(opcode, ea)
		return
	}
	for r := decode.RD(opcode); r < 32; r++ {
		v, ok := c.Load(ea, 4, false)
		if !ok {
			return
		}
		c.state.GPR[r] = v
		ea += 4
	}
}

func stmw(c *CPU, opcode uint32) {
	ea := c.eaD(opcode, false)
	if ea&3 != 0 {
		c.alignmentFault(opcode, ea)
		return
	}
	for r := decode.RD(opcode); r < 32; r++ {
		if !c.Store(ea, 4, c.state.GPR[r]) {
			return
		}
		ea += 4
	}
}

// loadString loads n bytes into consecutive registers starting with rD.
// bytes fill a register from the most significant byte and the register
// number wraps from 31 to 0
func (c *CPU) loadString(ea uint32, rd uint32, n uint32) {
	r := rd
	shift := 24
	for i := uint32(0); i < n; i++ {
		v, ok := c.Load(ea+i, 1, false)
		if !ok {
			return
		}
		if shift == 24 {
			c.state.GPR[r] = 0
		}
		c.state.GPR[r] |= v << shift
		shift -= 8
		if shift < 0 {
			shift = 24
			r = (r + 1) & 0x1f
		}
	}
}

func (c *CPU) storeString(ea uint32, rs uint32, n uint32) {
	r := rs
	shift := 24
	for i := uint32(0); i < n; i++ {
		if !c.Store(ea+i, 1, c.state.GPR[r]>>shift) {
			return
		}
		shift -= 8
		if shift < 0 {
			shift = 24
			r = (r + 1) & 0x1f
		}
	}
}

// number of bytes for lswi and stswi. zero means 32 bytes
func stringImmCount(opcode uint32) uint32 {
	n := decode.RB(opcode)
	if n == 0 {
		return 32
	}
	return n
}

func lswi(c *CPU, opcode uint32) {
	c.loadString(c.gprOrZero(decode.RA(opcode)), decode.RD(opcode), stringImmCount(opcode))
}

func lswx(c *CPU, opcode uint32) {
	c.loadString(c.eaX(opcode, false), decode.RD(opcode), c.state.SPR[SprXER]&0x7f)
}

func stswi(c *CPU, opcode uint32) {
	c.storeString(c.gprOrZero(decode.RA(opcode)), decode.RD(opcode), stringImmCount(opcode))
}

func stswx(c *CPU, opcode uint32) {
	c.storeString(c.eaX(opcode, false), decode.RD(opcode), c.state.SPR[SprXER]&0x7f)
}

func lwarx(c *CPU, opcode uint32) {
	ea := c.eaX(opcode, false)
	if ea&3 != 0 {
		c.alignmentFault(opcode, ea)
		return
	}
	v, ok := c.Load(ea, 4, false)
	if !ok {
		return
	}
	c.state.GPR[decode.RD(opcode)] = v
	c.reserved = true
	c.reserveAddr = ea
}

func stwcxDot(c *CPU, opcode uint32) {
	ea := c.eaX(opcode, false)
	if ea&3 != 0 {
		c.alignmentFault(opcode, ea)
		return
	}

	f := c.summaryOverflow()
	if c.reserved {
		if !c.Store(ea, 4, c.state.GPR[decode.RD(opcode)]) {
			return
		}
		f |= crEQ
	}
	c.reserved = false
	c.SetCRField(0, f)
}

// external control. the access is only allowed if the enable bit of EAR is
// set
func (c *CPU) externalControl(opcode uint32) (uint32, bool) {
	ea := c.eaX(opcode, false)
	if c.state.SPR[SprEAR]&0x80000000 == 0 {
		dsisr := uint32(DsisrEAR)
		if opcode&0x100 != 0 {
			dsisr |= DsisrStore
		}
		c.state.SPR[SprDAR] = ea
		c.state.SPR[SprDSISR] = dsisr
		c.raise(ExceptionDSI, 0, faults.DataAccess, "external control disabled", ea)
		return 0, false
	}
	if ea&3 != 0 {
		c.alignmentFault(opcode, ea)
		return 0, false
	}
	return ea, true
}

func eciwx(c *CPU, opcode uint32) {
	ea, ok := c.externalControl(opcode)
	if !ok {
		return
	}
	v, ok := c.Load(ea, 4, false)
	if !ok {
		return
	}
	c.state.GPR[decode.RD(opcode)] = v
}

func ecowx(c *CPU, opcode uint32) {
	ea, ok := c.externalControl(opcode)
	if !ok {
		return
	}
	c.Store(ea, 4, c.state.GPR[decode.RD(opcode)])
}

// size of a data cache block
const cacheBlock = 32

func dcbz(c *CPU, opcode uint32) {
	ea := c.eaX(opcode, false) &^ (cacheBlock - 1)
	for i := uint32(0); i < cacheBlock; i += 8 {
		if !c.store64(ea+i, 0) {
			return
		}
	}
}

// cache management instructions have no effect because caches are not
// emulated
func cacheNop(c *CPU, opcode uint32) {
}
