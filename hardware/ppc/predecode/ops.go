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

package predecode

import (
	"math/bits"

	"github.com/jetsetilly/gopherppc/hardware/ppc"
)

// Op is the operation of a Record. It returns the index of the next record
// to execute or -1 if execution has left the cache.
type Op func(c *Cache, r *Record, i int) int

// leave ends execution. the exit address is where execution continues. if
// retired is false the record calling leave did not complete
func (c *Cache) leave(addr uint32, retired bool) int {
	c.exit = addr
	if !retired {
		c.retired--
	}
	return -1
}

// faulted ends execution at the vector of the exception that was raised by
// the record
func (c *Cache) faulted(r *Record) int {
	vector, ok, err := c.cpu.Fault()
	if !ok {
		// every helper that returns false has raised an exception
		panic("predecode: helper failed without an exception")
	}
	c.fault = true
	c.err = err
	c.cycles -= r.Cycles
	return c.leave(vector, false)
}

// the PC of the CPU must be the address of the instruction before calling a
// helper that can raise an exception
func (c *Cache) current(r *Record) {
	c.st.PC = r.Addr
}

func (c *Cache) gprOrZero(ra uint32) uint32 {
	if ra == 0 {
		return 0
	}
	return c.st.GPR[ra]
}

func (c *Cache) result(r *Record, reg uint32, v uint32) {
	c.st.GPR[reg] = v
	if r.D4 != 0 {
		c.cpu.SetCR0(v)
	}
}

func (c *Cache) summaryOverflow() uint32 {
	return c.st.SPR[ppc.SprXER] >> 31
}

func exit(c *Cache, r *Record, i int) int {
	return c.leave(r.Uimm, false)
}

func nop(c *Cache, r *Record, i int) int {
	return i + 1
}

// immediate arithmetic. D1 is rD, D2 is rA

func addi(c *Cache, r *Record, i int) int {
	c.st.GPR[r.D1] = c.gprOrZero(r.D2) + r.Simm
	return i + 1
}

func addic(c *Cache, r *Record, i int) int {
	c.result(r, r.D1, c.cpu.AddCarrying(c.st.GPR[r.D2], r.Simm, 0, false))
	return i + 1
}

func subfic(c *Cache, r *Record, i int) int {
	c.st.GPR[r.D1] = c.cpu.AddCarrying(^c.st.GPR[r.D2], r.Simm, 1, false)
	return i + 1
}

func mulli(c *Cache, r *Record, i int) int {
	c.st.GPR[r.D1] = uint32(int32(c.st.GPR[r.D2]) * int32(r.Simm))
	return i + 1
}

// immediate logical. D1 is rS, D2 is rA

func immediate(f func(s, imm uint32) uint32) Op {
	return func(c *Cache, r *Record, i int) int {
		c.result(r, r.D2, f(c.st.GPR[r.D1], r.Uimm))
		return i + 1
	}
}

// register arithmetic. D1 is rD, D2 is rA, D3 is rB

func add(c *Cache, r *Record, i int) int {
	c.result(r, r.D1, c.st.GPR[r.D2]+c.st.GPR[r.D3])
	return i + 1
}

func addc(c *Cache, r *Record, i int) int {
	c.result(r, r.D1, c.cpu.AddCarrying(c.st.GPR[r.D2], c.st.GPR[r.D3], 0, false))
	return i + 1
}

func adde(c *Cache, r *Record, i int) int {
	c.result(r, r.D1, c.cpu.AddCarrying(c.st.GPR[r.D2], c.st.GPR[r.D3], c.cpu.Carry(), false))
	return i + 1
}

func subf(c *Cache, r *Record, i int) int {
	c.result(r, r.D1, c.st.GPR[r.D3]-c.st.GPR[r.D2])
	return i + 1
}

func subfc(c *Cache, r *Record, i int) int {
	c.result(r, r.D1, c.cpu.AddCarrying(^c.st.GPR[r.D2], c.st.GPR[r.D3], 1, false))
	return i + 1
}

func subfe(c *Cache, r *Record, i int) int {
	c.result(r, r.D1, c.cpu.AddCarrying(^c.st.GPR[r.D2], c.st.GPR[r.D3], c.cpu.Carry(), false))
	return i + 1
}

func mullw(c *Cache, r *Record, i int) int {
	c.result(r, r.D1, uint32(int32(c.st.GPR[r.D2])*int32(c.st.GPR[r.D3])))
	return i + 1
}

func mulhw(c *Cache, r *Record, i int) int {
	p := int64(int32(c.st.GPR[r.D2])) * int64(int32(c.st.GPR[r.D3]))
	c.result(r, r.D1, uint32(p>>32))
	return i + 1
}

func mulhwu(c *Cache, r *Record, i int) int {
	hi, _ := bits.Mul32(c.st.GPR[r.D2], c.st.GPR[r.D3])
	c.result(r, r.D1, hi)
	return i + 1
}

// extended arithmetic. D1 is rD, D2 is rA

func extended(b uint32, complement bool) Op {
	return func(c *Cache, r *Record, i int) int {
		a := c.st.GPR[r.D2]
		if complement {
			a = ^a
		}
		c.result(r, r.D1, c.cpu.AddCarrying(a, b, c.cpu.Carry(), false))
		return i + 1
	}
}

func neg(c *Cache, r *Record, i int) int {
	c.result(r, r.D1, -c.st.GPR[r.D2])
	return i + 1
}

// register logical. D1 is rS, D2 is rA, D3 is rB

func logical(f func(s, b uint32) uint32) Op {
	return func(c *Cache, r *Record, i int) int {
		c.result(r, r.D2, f(c.st.GPR[r.D1], c.st.GPR[r.D3]))
		return i + 1
	}
}

func unary(f func(s uint32) uint32) Op {
	return func(c *Cache, r *Record, i int) int {
		c.result(r, r.D2, f(c.st.GPR[r.D1]))
		return i + 1
	}
}

// algebraic shifts set CA if the value is negative and one bits are lost
func (c *Cache) shiftRightAlgebraic(s uint32, n uint32, lost uint32) uint32 {
	c.cpu.SetCarry(int32(s) < 0 && s&lost != 0)
	return uint32(int32(s) >> n)
}

// Uimm holds the mask of the bits shifted out
func srawi(c *Cache, r *Record, i int) int {
	s := c.st.GPR[r.D1]
	c.result(r, r.D2, c.shiftRightAlgebraic(s, r.D3, r.Uimm))
	return i + 1
}

func sraw(c *Cache, r *Record, i int) int {
	s := c.st.GPR[r.D1]
	n := c.st.GPR[r.D3] & 0x3f
	if n > 31 {
		c.result(r, r.D2, c.shiftRightAlgebraic(s, 31, 0xffffffff))
	} else {
		c.result(r, r.D2, c.shiftRightAlgebraic(s, n, 1<<n-1))
	}
	return i + 1
}

// rotates. D1 is rS, D2 is rA, D3 is SH or rB and Uimm is the mask

func rlwinm(c *Cache, r *Record, i int) int {
	c.result(r, r.D2, bits.RotateLeft32(c.st.GPR[r.D1], int(r.D3))&r.Uimm)
	return i + 1
}

func rlwimi(c *Cache, r *Record, i int) int {
	v := bits.RotateLeft32(c.st.GPR[r.D1], int(r.D3))
	c.result(r, r.D2, v&r.Uimm|c.st.GPR[r.D2]&^r.Uimm)
	return i + 1
}

func rlwnm(c *Cache, r *Record, i int) int {
	n := int(c.st.GPR[r.D3] & 0x1f)
	c.result(r, r.D2, bits.RotateLeft32(c.st.GPR[r.D1], n)&r.Uimm)
	return i + 1
}

// comparisons. D1 is the CR field, D2 is rA, D3 is rB

const (
	crLT = 0x8
	crGT = 0x4
	crEQ = 0x2
)

func (c *Cache) compare(field uint32, lt, gt bool) {
	f := c.summaryOverflow()
	switch {
	case lt:
		f |= crLT
	case gt:
		f |= crGT
	default:
		f |= crEQ
	}
	c.cpu.SetCRField(field, f)
}

func cmpi(c *Cache, r *Record, i int) int {
	a := int32(c.st.GPR[r.D2])
	c.compare(r.D1, a < int32(r.Simm), a > int32(r.Simm))
	return i + 1
}

func cmpli(c *Cache, r *Record, i int) int {
	a := c.st.GPR[r.D2]
	c.compare(r.D1, a < r.Uimm, a > r.Uimm)
	return i + 1
}

func cmp(c *Cache, r *Record, i int) int {
	a := int32(c.st.GPR[r.D2])
	b := int32(c.st.GPR[r.D3])
	c.compare(r.D1, a < b, a > b)
	return i + 1
}

func cmpl(c *Cache, r *Record, i int) int {
	a := c.st.GPR[r.D2]
	b := c.st.GPR[r.D3]
	c.compare(r.D1, a < b, a > b)
	return i + 1
}

// loads and stores. D1 is rD or rS, D2 is rA and D3 is rB for the indexed
// forms. the update forms always use rA

func (c *Cache) ea(r *Record, indexed bool, update bool) uint32 {
	var ea uint32
	if update {
		ea = c.st.GPR[r.D2]
	} else {
		ea = c.gprOrZero(r.D2)
	}
	if indexed {
		return ea + c.st.GPR[r.D3]
	}
	return ea + r.Simm
}

func load(size int, algebraic bool, indexed bool, update bool) Op {
	return func(c *Cache, r *Record, i int) int {
		c.current(r)
		ea := c.ea(r, indexed, update)
		v, ok := c.cpu.Load(ea, size, algebraic)
		if !ok {
			return c.faulted(r)
		}
		c.st.GPR[r.D1] = v
		if update {
			c.st.GPR[r.D2] = ea
		}
		return i + 1
	}
}

func store(size int, indexed bool, update bool) Op {
	return func(c *Cache, r *Record, i int) int {
		c.current(r)
		ea := c.ea(r, indexed, update)
		if !c.cpu.Store(ea, size, c.st.GPR[r.D1]) {
			return c.faulted(r)
		}
		if update {
			c.st.GPR[r.D2] = ea
		}
		return i + 1
	}
}

func loadFloat(single bool, indexed bool, update bool) Op {
	return func(c *Cache, r *Record, i int) int {
		c.current(r)
		if !c.cpu.FPAvailable() {
			return c.faulted(r)
		}
		ea := c.ea(r, indexed, update)
		v, ok := c.cpu.LoadFloat(ea, single)
		if !ok {
			return c.faulted(r)
		}
		c.st.FPR[r.D1] = v
		if update {
			c.st.GPR[r.D2] = ea
		}
		return i + 1
	}
}

func storeFloat(single bool, indexed bool, update bool) Op {
	return func(c *Cache, r *Record, i int) int {
		c.current(r)
		if !c.cpu.FPAvailable() {
			return c.faulted(r)
		}
		ea := c.ea(r, indexed, update)
		if !c.cpu.StoreFloat(ea, c.st.FPR[r.D1], single) {
			return c.faulted(r)
		}
		if update {
			c.st.GPR[r.D2] = ea
		}
		return i + 1
	}
}

// floating point moves operate on the bit pattern. D1 is frD and D3 is frB

func floatMove(f func(v uint64) uint64) Op {
	return func(c *Cache, r *Record, i int) int {
		c.current(r)
		if !c.cpu.FPAvailable() {
			return c.faulted(r)
		}
		c.st.FPR[r.D1] = f(c.st.FPR[r.D3])
		return i + 1
	}
}

const signBit = 0x8000000000000000

// special purpose registers. D1 is rD or rS and Uimm is the SPR number

func mfspr(c *Cache, r *Record, i int) int {
	c.current(r)
	if !c.cpu.SPRAccess(r.Uimm, "mfspr") {
		return c.faulted(r)
	}
	c.st.GPR[r.D1] = c.cpu.ReadSPR(r.Uimm)
	return i + 1
}

func mtspr(c *Cache, r *Record, i int) int {
	c.current(r)
	if !c.cpu.SPRAccess(r.Uimm, "mtspr") {
		return c.faulted(r)
	}
	c.cpu.WriteSPR(r.Uimm, c.st.GPR[r.D1])
	return i + 1
}

func mftb(c *Cache, r *Record, i int) int {
	c.st.GPR[r.D1] = c.cpu.ReadSPR(r.Uimm)
	return i + 1
}

// condition register. Uimm is the mask of the fields written by mtcrf

func mfcr(c *Cache, r *Record, i int) int {
	c.st.GPR[r.D1] = c.st.CR
	return i + 1
}

func mtcrf(c *Cache, r *Record, i int) int {
	c.st.CR = c.st.CR&^r.Uimm | c.st.GPR[r.D1]&r.Uimm
	return i + 1
}

// branches. the target of a taken branch is a record in the cache if the
// address is inside the block. D4 is the link bit

func (c *Cache) link(r *Record) {
	if r.D4 != 0 {
		c.st.SPR[ppc.SprLR] = r.Addr + 4
	}
}

// the last record is the exit record and is not a branch target. a taken
// branch ends a basic block so the power flag is checked before staying in
// the cache
func (c *Cache) taken(r *Record, i int) int {
	j := i + r.BT
	if j >= 0 && j < len(c.records)-1 && c.cpu.Power.Load() {
		return j
	}
	return c.leave(r.Target, true)
}

func branch(c *Cache, r *Record, i int) int {
	c.link(r)
	return c.leave(r.Target, true)
}

// Uimm is the CR bit and D1 is the value the bit must have for the branch
// to be taken
func branchCondition(c *Cache, r *Record, i int) int {
	c.link(r)
	if (c.st.CR&r.Uimm != 0) == (r.D1 != 0) {
		return c.taken(r, i)
	}
	return i + 1
}

func bdnz(c *Cache, r *Record, i int) int {
	c.link(r)
	c.st.SPR[ppc.SprCTR]--
	if c.st.SPR[ppc.SprCTR] != 0 {
		return c.taken(r, i)
	}
	return i + 1
}

func bdz(c *Cache, r *Record, i int) int {
	c.link(r)
	c.st.SPR[ppc.SprCTR]--
	if c.st.SPR[ppc.SprCTR] == 0 {
		return c.taken(r, i)
	}
	return i + 1
}

func blr(c *Cache, r *Record, i int) int {
	target := c.st.SPR[ppc.SprLR] &^ 3
	c.link(r)
	return c.leave(target, true)
}

func bctr(c *Cache, r *Record, i int) int {
	c.link(r)
	return c.leave(c.st.SPR[ppc.SprCTR]&^3, true)
}

// operations by instruction name. the record forms share the operation of
// the base instruction
var ops = map[string]Op{
	"addi":   addi,
	"addis":  addi,
	"addic":  addic,
	"subfic": subfic,
	"mulli":  mulli,

	"ori":   immediate(func(s, imm uint32) uint32 { return s | imm }),
	"oris":  immediate(func(s, imm uint32) uint32 { return s | imm }),
	"xori":  immediate(func(s, imm uint32) uint32 { return s ^ imm }),
	"xoris": immediate(func(s, imm uint32) uint32 { return s ^ imm }),
	"andi":  immediate(func(s, imm uint32) uint32 { return s & imm }),
	"andis": immediate(func(s, imm uint32) uint32 { return s & imm }),

	"add":    add,
	"addc":   addc,
	"adde":   adde,
	"subf":   subf,
	"subfc":  subfc,
	"subfe":  subfe,
	"mullw":  mullw,
	"mulhw":  mulhw,
	"mulhwu": mulhwu,
	"addze":  extended(0, false),
	"addme":  extended(0xffffffff, false),
	"subfze": extended(0, true),
	"subfme": extended(0xffffffff, true),
	"neg":    neg,

	"and":  logical(func(s, b uint32) uint32 { return s & b }),
	"andc": logical(func(s, b uint32) uint32 { return s &^ b }),
	"or":   logical(func(s, b uint32) uint32 { return s | b }),
	"orc":  logical(func(s, b uint32) uint32 { return s | ^b }),
	"xor":  logical(func(s, b uint32) uint32 { return s ^ b }),
	"nor":  logical(func(s, b uint32) uint32 { return ^(s | b) }),
	"nand": logical(func(s, b uint32) uint32 { return ^(s & b) }),
	"eqv":  logical(func(s, b uint32) uint32 { return ^(s ^ b) }),
	"slw": logical(func(s, b uint32) uint32 {
		if b&0x20 != 0 {
			return 0
		}
		return s << (b & 0x1f)
	}),
	"srw": logical(func(s, b uint32) uint32 {
		if b&0x20 != 0 {
			return 0
		}
		return s >> (b & 0x1f)
	}),
	"sraw":   sraw,
	"srawi":  srawi,
	"cntlzw": unary(func(s uint32) uint32 { return uint32(bits.LeadingZeros32(s)) }),
	"extsb":  unary(func(s uint32) uint32 { return uint32(int32(int8(s))) }),
	"extsh":  unary(func(s uint32) uint32 { return uint32(int32(int16(s))) }),

	"rlwinm": rlwinm,
	"rlwimi": rlwimi,
	"rlwnm":  rlwnm,

	"cmpi":  cmpi,
	"cmpli": cmpli,
	"cmp":   cmp,
	"cmpl":  cmpl,

	"lwz":   load(4, false, false, false),
	"lwzu":  load(4, false, false, true),
	"lbz":   load(1, false, false, false),
	"lbzu":  load(1, false, false, true),
	"lhz":   load(2, false, false, false),
	"lhzu":  load(2, false, false, true),
	"lha":   load(2, true, false, false),
	"lhau":  load(2, true, false, true),
	"lwzx":  load(4, false, true, false),
	"lwzux": load(4, false, true, true),
	"lbzx":  load(1, false, true, false),
	"lbzux": load(1, false, true, true),
	"lhzx":  load(2, false, true, false),
	"lhzux": load(2, false, true, true),
	"lhax":  load(2, true, true, false),
	"lhaux": load(2, true, true, true),
	"stw":   store(4, false, false),
	"stwu":  store(4, false, true),
	"stb":   store(1, false, false),
	"stbu":  store(1, false, true),
	"sth":   store(2, false, false),
	"sthu":  store(2, false, true),
	"stwx":  store(4, true, false),
	"stwux": store(4, true, true),
	"stbx":  store(1, true, false),
	"stbux": store(1, true, true),
	"sthx":  store(2, true, false),
	"sthux": store(2, true, true),

	"lfs":   loadFloat(true, false, false),
	"lfsu":  loadFloat(true, false, true),
	"lfd":   loadFloat(false, false, false),
	"lfdu":  loadFloat(false, false, true),
	"lfsx":  loadFloat(true, true, false),
	"lfdx":  loadFloat(false, true, false),
	"stfs":  storeFloat(true, false, false),
	"stfsu": storeFloat(true, false, true),
	"stfd":  storeFloat(false, false, false),
	"stfdu": storeFloat(false, false, true),
	"stfsx": storeFloat(true, true, false),
	"stfdx": storeFloat(false, true, false),

	"fmr":   floatMove(func(v uint64) uint64 { return v }),
	"fneg":  floatMove(func(v uint64) uint64 { return v ^ signBit }),
	"fabs":  floatMove(func(v uint64) uint64 { return v &^ signBit }),
	"fnabs": floatMove(func(v uint64) uint64 { return v | signBit }),

	"mfspr": mfspr,
	"mtspr": mtspr,
	"mftb":  mftb,
	"mfcr":  mfcr,
	"mtcrf": mtcrf,

	"sync":   nop,
	"isync":  nop,
	"eieio":  nop,
	"dcbt":   nop,
	"dcbtst": nop,
	"dcbst":  nop,
	"dcbf":   nop,
	"icbi":   nop,
}
