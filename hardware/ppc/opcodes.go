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
	"sync"

	"github.com/jetsetilly/gopherppc/hardware/ppc/decode"
	"github.com/jetsetilly/gopherppc/logger"
)

// the decode tables are built once and shared by every CPU instance
var (
	decoderOnce  sync.Once
	decoderTable *Decoder
	decoderErr   error
)

func decoder() (*Decoder, error) {
	decoderOnce.Do(func() {
		var dropped []string
		decoderTable, dropped, decoderErr = buildDecoder()
		for _, n := range dropped {
			logger.Logf(logger.Allow, "decode", "duplicate key: %s dropped", n)
		}
	})
	return decoderTable, decoderErr
}

// instruction attributes used when building the tables
type attr int

const (
	privileged attr = 1 << iota
	power

	// moves to and from SPRs serialise the pipeline like the privileged
	// instructions
	serialising
)

type tableBuilder struct {
	*decode.Builder[Handler]
}

func (tb tableBuilder) entry(name string, h Handler, shape decode.Shape, flow decode.Flow, a attr) Entry {
	cycles := 1
	switch {
	case a&(privileged|serialising) != 0:
		cycles = 2
	case flow == decode.FlowCondBranch || flow == decode.FlowUncondBranch:
		// branches are folded by the branch unit
		cycles = 0
	}

	return Entry{
		Name:       name,
		Handler:    h,
		Shape:      shape,
		Flow:       flow,
		Privileged: a&privileged != 0,
		Power:      a&power != 0,
		Cycles:     cycles,
	}
}

// primary opcode
func (tb tableBuilder) p(primary uint32, name string, h Handler, shape decode.Shape, a attr) {
	tb.Primary(primary, tb.entry(name, h, shape, decode.FlowNone, a))
}

// X-form instruction in group 19, 31 or 63 with no record bit
func (tb tableBuilder) x(primary uint32, xo uint32, name string, h Handler, shape decode.Shape, a attr) {
	tb.Extended(primary, xo<<1, tb.entry(name, h, shape, decode.FlowNone, a))
}

// X-form instruction with a record bit
func (tb tableBuilder) xr(primary uint32, xo uint32, name string, h Handler, shape decode.Shape, a attr) {
	tb.Extended(primary, xo<<1, tb.entry(name, h, shape, decode.FlowNone, a))
	tb.Extended(primary, xo<<1|1, tb.entry(name+".", h, shape, decode.FlowNone, a))
}

// XO-form instruction with overflow-enable and record bits
func (tb tableBuilder) xo(xo uint32, name string, h Handler, shape decode.Shape, a attr) {
	tb.Extended(31, xo<<1, tb.entry(name, h, shape, decode.FlowNone, a))
	tb.Extended(31, xo<<1|1, tb.entry(name+".", h, shape, decode.FlowNone, a))
	tb.Extended(31, 0x400|xo<<1, tb.entry(name+"o", h, shape, decode.FlowNone, a))
	tb.Extended(31, 0x400|xo<<1|1, tb.entry(name+"o.", h, shape, decode.FlowNone, a))
}

// A-form floating point instruction in group 63. if frc is true then every
// value of the frC field is entered into the table
func (tb tableBuilder) a63(xo uint32, name string, h Handler, frc bool) {
	n := uint32(1)
	if frc {
		n = 32
	}
	for c := uint32(0); c < n; c++ {
		tb.Extended(63, c<<6|xo<<1, tb.entry(name, h, decode.ShapeFloat, decode.FlowNone, 0))
		tb.Extended(63, c<<6|xo<<1|1, tb.entry(name+".", h, decode.ShapeFloat, decode.FlowNone, 0))
	}
}

// A-form floating point instruction in group 59
func (tb tableBuilder) a59(xo uint32, name string, h Handler) {
	tb.Extended(59, xo<<1, tb.entry(name, h, decode.ShapeFloat, decode.FlowNone, 0))
	tb.Extended(59, xo<<1|1, tb.entry(name+".", h, decode.ShapeFloat, decode.FlowNone, 0))
}

// branch variants selected by the AA and LK bits
func (tb tableBuilder) branch(primary uint32, name string, h Handler, shape decode.Shape, flow decode.Flow) {
	for _, v := range []struct {
		key    uint32
		suffix string
	}{{0, ""}, {1, "l"}, {2, "a"}, {3, "la"}} {
		tb.Extended(primary, v.key, tb.entry(name+v.suffix, h, shape, flow, 0))
	}
}

// buildDecoder returns the decode tables and the names of any entries that
// were dropped because the key was already in use
func buildDecoder() (*Decoder, []string, error) {
	tb := tableBuilder{Builder: decode.NewBuilder[Handler]()}

	tb.Group(16, decode.NewDenseTable[Handler](2))
	tb.Group(18, decode.NewDenseTable[Handler](2))
	tb.Group(19, decode.NewDenseTable[Handler](11))
	tb.Group(31, decode.NewDenseTable[Handler](11))
	tb.Group(59, decode.NewSparseTable[Handler](6))
	tb.Group(63, decode.NewSparseTable[Handler](11))

	primaryOpcodes(tb)
	group19(tb)
	group31(tb)
	floatingPoint(tb)

	dec, err := tb.Build()
	return dec, tb.Dropped(), err
}

func primaryOpcodes(tb tableBuilder) {
	const (
		none = decode.ShapeNone
		dimm = decode.ShapeDImm
		duim = decode.ShapeDUImm
		ls   = decode.ShapeLoadStore
		fls  = decode.ShapeFloatLoadStore
	)

	tb.p(3, "twi", twi, decode.ShapeTrapImm, 0)
	tb.p(7, "mulli", mulli, dimm, 0)
	tb.p(8, "subfic", subfic, dimm, 0)
	tb.p(9, "dozi", dozi, dimm, power)
	tb.p(10, "cmpli", cmpli, decode.ShapeCmpImm, 0)
	tb.p(11, "cmpi", cmpi, decode.ShapeCmpImm, 0)
	tb.p(12, "addic", addic, dimm, 0)
	tb.p(13, "addic.", addicDot, dimm, 0)
	tb.p(14, "addi", addi, dimm, 0)
	tb.p(15, "addis", addis, dimm, 0)
	tb.branch(16, "bc", bc, decode.ShapeBranchCond, decode.FlowCondBranch)
	tb.Primary(17, tb.entry("sc", sc, none, decode.FlowException, 0))
	tb.branch(18, "b", branch, decode.ShapeBranch, decode.FlowUncondBranch)
	tb.p(20, "rlwimi", rlwimi, decode.ShapeRotImm, 0)
	tb.p(21, "rlwinm", rlwinm, decode.ShapeRotImm, 0)
	tb.p(22, "rlmi", rlmi, decode.ShapeRotReg, power)
	tb.p(23, "rlwnm", rlwnm, decode.ShapeRotReg, 0)
	tb.p(24, "ori", ori, duim, 0)
	tb.p(25, "oris", oris, duim, 0)
	tb.p(26, "xori", xori, duim, 0)
	tb.p(27, "xoris", xoris, duim, 0)
	tb.p(28, "andi.", andiDot, duim, 0)
	tb.p(29, "andis.", andisDot, duim, 0)

	tb.p(32, "lwz", load(4, false, false, false), ls, 0)
	tb.p(33, "lwzu", load(4, false, false, true), ls, 0)
	tb.p(34, "lbz", load(1, false, false, false), ls, 0)
	tb.p(35, "lbzu", load(1, false, false, true), ls, 0)
	tb.p(36, "stw", store(4, false, false), ls, 0)
	tb.p(37, "stwu", store(4, false, true), ls, 0)
	tb.p(38, "stb", store(1, false, false), ls, 0)
	tb.p(39, "stbu", store(1, false, true), ls, 0)
	tb.p(40, "lhz", load(2, false, false, false), ls, 0)
	tb.p(41, "lhzu", load(2, false, false, true), ls, 0)
	tb.p(42, "lha", load(2, true, false, false), ls, 0)
	tb.p(43, "lhau", load(2, true, false, true), ls, 0)
	tb.p(44, "sth", store(2, false, false), ls, 0)
	tb.p(45, "sthu", store(2, false, true), ls, 0)
	tb.p(46, "lmw", lmw, ls, 0)
	tb.p(47, "stmw", stmw, ls, 0)
	tb.p(48, "lfs", loadFloat(true, false, false), fls, 0)
	tb.p(49, "lfsu", loadFloat(true, false, true), fls, 0)
	tb.p(50, "lfd", loadFloat(false, false, false), fls, 0)
	tb.p(51, "lfdu", loadFloat(false, false, true), fls, 0)
	tb.p(52, "stfs", storeFloat(true, false, false), fls, 0)
	tb.p(53, "stfsu", storeFloat(true, false, true), fls, 0)
	tb.p(54, "stfd", storeFloat(false, false, false), fls, 0)
	tb.p(55, "stfdu", storeFloat(false, false, true), fls, 0)

	// vector and paired single opcode space
	tb.p(4, "vector", unimplemented("vector"), decode.ShapeUnsupported, 0)
	tb.p(56, "psq_l", unimplemented("psq_l"), decode.ShapeUnsupported, 0)
	tb.p(57, "psq_lu", unimplemented("psq_lu"), decode.ShapeUnsupported, 0)
	tb.p(60, "psq_st", unimplemented("psq_st"), decode.ShapeUnsupported, 0)
	tb.p(61, "psq_stu", unimplemented("psq_stu"), decode.ShapeUnsupported, 0)
}

func group19(tb tableBuilder) {
	tb.x(19, 0, "mcrf", mcrf, decode.ShapeCRField, 0)
	tb.Extended(19, 16<<1, tb.entry("bclr", bclr, decode.ShapeBranchReg, decode.FlowCondBranch, 0))
	tb.Extended(19, 16<<1|1, tb.entry("bclrl", bclr, decode.ShapeBranchReg, decode.FlowCondBranch, 0))
	tb.x(19, 33, "crnor", crnor, decode.ShapeCRLogic, 0)
	tb.Extended(19, 50<<1, tb.entry("rfi", rfi, decode.ShapeNone, decode.FlowUncondBranch, privileged))
	tb.x(19, 129, "crandc", crandc, decode.ShapeCRLogic, 0)
	tb.x(19, 150, "isync", nop, decode.ShapeNone, 0)
	tb.x(19, 193, "crxor", crxor, decode.ShapeCRLogic, 0)
	tb.x(19, 225, "crnand", crnand, decode.ShapeCRLogic, 0)
	tb.x(19, 257, "crand", crand, decode.ShapeCRLogic, 0)
	tb.x(19, 289, "creqv", creqv, decode.ShapeCRLogic, 0)
	tb.x(19, 417, "crorc", crorc, decode.ShapeCRLogic, 0)
	tb.x(19, 449, "cror", cror, decode.ShapeCRLogic, 0)
	tb.Extended(19, 528<<1, tb.entry("bcctr", bcctr, decode.ShapeBranchReg, decode.FlowCondBranch, 0))
	tb.Extended(19, 528<<1|1, tb.entry("bcctrl", bcctr, decode.ShapeBranchReg, decode.FlowCondBranch, 0))
}

func group31(tb tableBuilder) {
	const (
		dab   = decode.ShapeDAB
		da    = decode.ShapeDA
		shi   = decode.ShapeShiftImm
		lsx   = decode.ShapeLoadStoreIndexed
		lss   = decode.ShapeLoadStoreString
		cache = decode.ShapeCache
		spr   = decode.ShapeSPR
		seg   = decode.ShapeSegment
		flsx  = decode.ShapeFloatLoadStoreIndex
		crf   = decode.ShapeCRField
	)

	tb.x(31, 0, "cmp", cmp, decode.ShapeCmp, 0)
	tb.x(31, 4, "tw", tw, decode.ShapeTrap, 0)
	tb.xo(8, "subfc", subfc, dab, 0)
	tb.xo(10, "addc", addc, dab, 0)
	tb.xr(31, 11, "mulhwu", mulhwu, dab, 0)
	tb.x(31, 19, "mfcr", mfcr, crf, 0)
	tb.x(31, 20, "lwarx", lwarx, lsx, 0)
	tb.x(31, 23, "lwzx", load(4, false, true, false), lsx, 0)
	tb.xr(31, 24, "slw", slw, dab, 0)
	tb.xr(31, 26, "cntlzw", cntlzw, da, 0)
	tb.xr(31, 28, "and", and, dab, 0)
	tb.xr(31, 29, "maskg", maskg, dab, power)
	tb.x(31, 32, "cmpl", cmpl, decode.ShapeCmp, 0)
	tb.xo(40, "subf", subf, dab, 0)
	tb.x(31, 54, "dcbst", cacheNop, cache, 0)
	tb.x(31, 55, "lwzux", load(4, false, true, true), lsx, 0)
	tb.xr(31, 60, "andc", andc, dab, 0)
	tb.xr(31, 75, "mulhw", mulhw, dab, 0)
	tb.x(31, 83, "mfmsr", mfmsr, spr, privileged)
	tb.x(31, 86, "dcbf", cacheNop, cache, 0)
	tb.x(31, 87, "lbzx", load(1, false, true, false), lsx, 0)
	tb.xo(104, "neg", neg, da, 0)
	tb.xo(107, "mul", mul, dab, power)
	tb.x(31, 119, "lbzux", load(1, false, true, true), lsx, 0)
	tb.xr(31, 124, "nor", nor, dab, 0)
	tb.xo(136, "subfe", subfe, dab, 0)
	tb.xo(138, "adde", adde, dab, 0)
	tb.x(31, 144, "mtcrf", mtcrf, crf, 0)
	tb.x(31, 146, "mtmsr", mtmsr, spr, privileged)
	tb.Extended(31, 150<<1|1, tb.entry("stwcx.", stwcxDot, lsx, decode.FlowNone, 0))
	tb.x(31, 151, "stwx", store(4, true, false), lsx, 0)
	tb.xr(31, 152, "slq", slq, dab, power)
	tb.xr(31, 153, "sle", sle, dab, power)
	tb.x(31, 183, "stwux", store(4, true, true), lsx, 0)
	tb.xr(31, 184, "sliq", sliq, shi, power)
	tb.xo(200, "subfze", subfze, da, 0)
	tb.xo(202, "addze", addze, da, 0)
	tb.x(31, 210, "mtsr", mtsr, seg, privileged)
	tb.x(31, 215, "stbx", store(1, true, false), lsx, 0)
	tb.xr(31, 216, "sllq", sllq, dab, power)
	tb.xr(31, 217, "sleq", sleq, dab, power)
	tb.xo(232, "subfme", subfme, da, 0)
	tb.xo(234, "addme", addme, da, 0)
	tb.xo(235, "mullw", mullw, dab, 0)
	tb.x(31, 242, "mtsrin", mtsrin, seg, privileged)
	tb.x(31, 246, "dcbtst", cacheNop, cache, 0)
	tb.x(31, 247, "stbux", store(1, true, true), lsx, 0)
	tb.xr(31, 248, "slliq", slliq, shi, power)
	tb.xo(264, "doz", doz, dab, power)
	tb.xo(266, "add", add, dab, 0)
	tb.xr(31, 277, "lscbx", lscbx, lsx, power)
	tb.x(31, 278, "dcbt", cacheNop, cache, 0)
	tb.x(31, 279, "lhzx", load(2, false, true, false), lsx, 0)
	tb.xr(31, 284, "eqv", eqv, dab, 0)
	tb.x(31, 306, "tlbie", nop, cache, privileged)
	tb.x(31, 310, "eciwx", eciwx, lsx, 0)
	tb.x(31, 311, "lhzux", load(2, false, true, true), lsx, 0)
	tb.xr(31, 316, "xor", xor, dab, 0)
	tb.xo(331, "div", div, dab, power)
	tb.x(31, 339, "mfspr", mfspr, spr, serialising)
	tb.x(31, 343, "lhax", load(2, true, true, false), lsx, 0)
	tb.xo(360, "abs", abs, da, power)
	tb.xo(363, "divs", divs, dab, power)
	tb.x(31, 371, "mftb", mftb, spr, 0)
	tb.x(31, 375, "lhaux", load(2, true, true, true), lsx, 0)
	tb.x(31, 407, "sthx", store(2, true, false), lsx, 0)
	tb.xr(31, 412, "orc", orc, dab, 0)
	tb.x(31, 438, "ecowx", ecowx, lsx, 0)
	tb.x(31, 439, "sthux", store(2, true, true), lsx, 0)
	tb.xr(31, 444, "or", or, dab, 0)
	tb.xo(459, "divwu", divwu, dab, 0)
	tb.x(31, 467, "mtspr", mtspr, spr, serialising)
	tb.x(31, 470, "dcbi", cacheNop, cache, privileged)
	tb.xr(31, 476, "nand", nand, dab, 0)
	tb.xo(488, "nabs", nabs, da, power)
	tb.xo(491, "divw", divw, dab, 0)
	tb.x(31, 512, "mcrxr", mcrxr, crf, 0)
	tb.xr(31, 531, "clcs", clcs, da, power)
	tb.x(31, 533, "lswx", lswx, lss, 0)
	tb.x(31, 534, "lwbrx", lwbrx, lsx, 0)
	tb.x(31, 535, "lfsx", loadFloat(true, true, false), flsx, 0)
	tb.xr(31, 536, "srw", srw, dab, 0)
	tb.xr(31, 537, "rrib", rrib, dab, power)
	tb.xr(31, 541, "maskir", maskir, dab, power)
	tb.x(31, 566, "tlbsync", nop, decode.ShapeNone, privileged)
	tb.x(31, 567, "lfsux", loadFloat(true, true, true), flsx, 0)
	tb.x(31, 595, "mfsr", mfsr, seg, privileged)
	tb.x(31, 597, "lswi", lswi, lss, 0)
	tb.x(31, 598, "sync", nop, decode.ShapeNone, 0)
	tb.x(31, 599, "lfdx", loadFloat(false, true, false), flsx, 0)
	tb.x(31, 631, "lfdux", loadFloat(false, true, true), flsx, 0)
	tb.x(31, 659, "mfsrin", mfsrin, seg, privileged)
	tb.x(31, 661, "stswx", stswx, lss, 0)
	tb.x(31, 662, "stwbrx", stwbrx, lsx, 0)
	tb.x(31, 663, "stfsx", storeFloat(true, true, false), flsx, 0)
	tb.xr(31, 664, "srq", srq, dab, power)
	tb.xr(31, 665, "sre", sre, dab, power)
	tb.x(31, 695, "stfsux", storeFloat(true, true, true), flsx, 0)
	tb.xr(31, 696, "sriq", sriq, shi, power)
	tb.x(31, 725, "stswi", stswi, lss, 0)
	tb.x(31, 727, "stfdx", storeFloat(false, true, false), flsx, 0)
	tb.xr(31, 728, "srlq", srlq, dab, power)
	tb.xr(31, 729, "sreq", sreq, dab, power)
	tb.x(31, 759, "stfdux", storeFloat(false, true, true), flsx, 0)
	tb.xr(31, 760, "srliq", srliq, shi, power)
	tb.x(31, 790, "lhbrx", lhbrx, lsx, 0)
	tb.xr(31, 792, "sraw", sraw, dab, 0)
	tb.xr(31, 824, "srawi", srawi, shi, 0)
	tb.x(31, 854, "eieio", nop, decode.ShapeNone, 0)
	tb.x(31, 918, "sthbrx", sthbrx, lsx, 0)
	tb.xr(31, 920, "sraq", sraq, dab, power)
	tb.xr(31, 921, "srea", srea, dab, power)
	tb.xr(31, 922, "extsh", extsh, da, 0)
	tb.xr(31, 952, "sraiq", sraiq, shi, power)
	tb.xr(31, 954, "extsb", extsb, da, 0)
	tb.x(31, 978, "tlbld", nop, cache, privileged)
	tb.x(31, 982, "icbi", cacheNop, cache, 0)
	tb.x(31, 983, "stfiwx", stfiwx, flsx, 0)
	tb.x(31, 1010, "tlbli", nop, cache, privileged)
	tb.x(31, 1014, "dcbz", dcbz, cache, 0)
}

func floatingPoint(tb tableBuilder) {
	tb.a59(18, "fdivs", fdivsHandler)
	tb.a59(20, "fsubs", fsubsHandler)
	tb.a59(21, "fadds", faddsHandler)
	tb.a59(22, "fsqrts", fsqrtsHandler)
	tb.a59(24, "fres", fresHandler)
	tb.a59(25, "fmuls", fmulsHandler)
	tb.a59(28, "fmsubs", fmsubsHandler)
	tb.a59(29, "fmadds", fmaddsHandler)
	tb.a59(30, "fnmsubs", fnmsubsHandler)
	tb.a59(31, "fnmadds", fnmaddsHandler)

	const (
		fl    = decode.ShapeFloat
		fpscr = decode.ShapeFPSCR
	)

	tb.x(63, 0, "fcmpu", fcmpu, fl, 0)
	tb.xr(63, 12, "frsp", frsp, fl, 0)
	tb.xr(63, 14, "fctiw", fctiw, fl, 0)
	tb.xr(63, 15, "fctiwz", fctiwz, fl, 0)
	tb.x(63, 32, "fcmpo", fcmpo, fl, 0)
	tb.xr(63, 38, "mtfsb1", mtfsb1, fpscr, 0)
	tb.xr(63, 40, "fneg", fneg, fl, 0)
	tb.x(63, 64, "mcrfs", mcrfs, fpscr, 0)
	tb.xr(63, 70, "mtfsb0", mtfsb0, fpscr, 0)
	tb.xr(63, 72, "fmr", fmr, fl, 0)
	tb.xr(63, 134, "mtfsfi", mtfsfi, fpscr, 0)
	tb.xr(63, 136, "fnabs", fnabs, fl, 0)
	tb.xr(63, 264, "fabs", fabs, fl, 0)
	tb.xr(63, 583, "mffs", mffs, fpscr, 0)
	tb.xr(63, 711, "mtfsf", mtfsf, fpscr, 0)

	tb.a63(18, "fdiv", fdivHandler, false)
	tb.a63(20, "fsub", fsubHandler, false)
	tb.a63(21, "fadd", faddHandler, false)
	tb.a63(22, "fsqrt", fsqrtHandler, false)
	tb.a63(23, "fsel", fsel, true)
	tb.a63(25, "fmul", fmulHandler, true)
	tb.a63(26, "frsqrte", frsqrteHandler, false)
	tb.a63(28, "fmsub", fmsubHandler, true)
	tb.a63(29, "fmadd", fmaddHandler, true)
	tb.a63(30, "fnmsub", fnmsubHandler, true)
	tb.a63(31, "fnmadd", fnmaddHandler, true)
}
