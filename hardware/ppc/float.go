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
	"math"

	"github.com/jetsetilly/gopherppc/hardware/ppc/decode"
)

// Floating point status and control register bits.
const (
	FpscrFX     = 0x80000000
	FpscrFEX    = 0x40000000
	FpscrVX     = 0x20000000
	FpscrOX     = 0x10000000
	FpscrUX     = 0x08000000
	FpscrZX     = 0x04000000
	FpscrXX     = 0x02000000
	FpscrVXSNAN = 0x01000000
	FpscrVXISI  = 0x00800000
	FpscrVXIDI  = 0x00400000
	FpscrVXZDZ  = 0x00200000
	FpscrVXIMZ  = 0x00100000
	FpscrVXVC   = 0x00080000
	FpscrFR     = 0x00040000
	FpscrFI     = 0x00020000
	FpscrFPRF   = 0x0001f000
	FpscrVXSOFT = 0x00000400
	FpscrVXSQRT = 0x00000200
	FpscrVXCVI  = 0x00000100
	FpscrVE     = 0x00000080
	FpscrOE     = 0x00000040
	FpscrUE     = 0x00000020
	FpscrZE     = 0x00000010
	FpscrXE     = 0x00000008
	FpscrNI     = 0x00000004
	FpscrRN     = 0x00000003
)

// all invalid operation bits
const fpscrVXAll = FpscrVXSNAN | FpscrVXISI | FpscrVXIDI | FpscrVXZDZ | FpscrVXIMZ |
	FpscrVXVC | FpscrVXSOFT | FpscrVXSQRT | FpscrVXCVI

// the exception bits that can be cleared by mcrfs
const fpscrSticky = 0x9ff80700

// the default quiet NaN produced by invalid operations
const defaultNaN = 0x7ff8000000000000

// result classes written to the FPRF field
const (
	fprfQNaN       = 0x11
	fprfNegInf     = 0x09
	fprfNegNormal  = 0x08
	fprfNegDenorm  = 0x18
	fprfNegZero    = 0x12
	fprfPosZero    = 0x02
	fprfPosDenorm  = 0x14
	fprfPosNormal  = 0x04
	fprfPosInf     = 0x05
	fprfShift      = 12
	fpccShift      = 12
	fpscrRNRound   = 0
	fpscrRNZero    = 1
	fpscrRNPosInf  = 2
	fpscrRNNegInf  = 3
	smallestNormal = 2.2250738585072014e-308
)

// setFPException sets exception bits in FPSCR and updates the summary bits
func (c *CPU) setFPException(bits uint32) {
	if bits&^c.state.FPSCR != 0 {
		c.state.FPSCR |= FpscrFX
	}
	c.state.FPSCR |= bits
	c.updateFPSummary()
}

// VX and FEX are summary bits and cannot be set directly
func (c *CPU) updateFPSummary() {
	f := c.state.FPSCR &^ (FpscrVX | FpscrFEX)
	if f&fpscrVXAll != 0 {
		f |= FpscrVX
	}
	if (f&FpscrVX != 0 && f&FpscrVE != 0) ||
		(f&FpscrOX != 0 && f&FpscrOE != 0) ||
		(f&FpscrUX != 0 && f&FpscrUE != 0) ||
		(f&FpscrZX != 0 && f&FpscrZE != 0) ||
		(f&FpscrXX != 0 && f&FpscrXE != 0) {
		f |= FpscrFEX
	}
	c.state.FPSCR = f
}

func classify(v float64) uint32 {
	neg := math.Signbit(v)
	switch {
	case math.IsNaN(v):
		return fprfQNaN
	case math.IsInf(v, 0):
		if neg {
			return fprfNegInf
		}
		return fprfPosInf
	case v == 0:
		if neg {
			return fprfNegZero
		}
		return fprfPosZero
	case math.Abs(v) < smallestNormal:
		if neg {
			return fprfNegDenorm
		}
		return fprfPosDenorm
	}
	if neg {
		return fprfNegNormal
	}
	return fprfPosNormal
}

// copy the exception summary bits of FPSCR to CR1
func (c *CPU) recordFP() {
	if c.rc {
		c.SetCRField(1, c.state.FPSCR>>28)
	}
}

// fpResult writes the result of an arithmetic instruction and sets the
// result class
func (c *CPU) fpResult(frd uint32, r float64) {
	c.state.SetFPRFloat(frd, r)
	c.state.FPSCR = c.state.FPSCR&^FpscrFPRF | classify(r)<<fprfShift
	c.recordFP()
}

func isSNaN(v float64) bool {
	return math.IsNaN(v) && math.Float64bits(v)&0x0008000000000000 == 0
}

func quiet(v float64) float64 {
	return math.Float64frombits(math.Float64bits(v) | 0x0008000000000000)
}

// propagateNaN returns the first NaN in the operands, made quiet. VXSNAN
// is set if any operand is a signalling NaN.
func (c *CPU) propagateNaN(ops ...float64) (float64, bool) {
	for _, v := range ops {
		if isSNaN(v) {
			c.setFPException(FpscrVXSNAN)
			break
		}
	}
	for _, v := range ops {
		if math.IsNaN(v) {
			return quiet(v), true
		}
	}
	return 0, false
}

func (c *CPU) invalid(bits uint32) float64 {
	c.setFPException(bits)
	return math.Float64frombits(defaultNaN)
}

// overflow is flagged for infinite results from finite operands
func (c *CPU) checkOverflow(r float64, ops ...float64) float64 {
	if !math.IsInf(r, 0) {
		return r
	}
	for _, v := range ops {
		if math.IsInf(v, 0) {
			return r
		}
	}
	c.setFPException(FpscrOX | FpscrXX)
	return r
}

func (c *CPU) fadd(a, b float64) float64 {
	if n, ok := c.propagateNaN(a, b); ok {
		return n
	}
	if math.IsInf(a, 0) && math.IsInf(b, 0) && math.Signbit(a) != math.Signbit(b) {
		return c.invalid(FpscrVXISI)
	}
	return c.checkOverflow(a+b, a, b)
}

func (c *CPU) fmul(a, b float64) float64 {
	if n, ok := c.propagateNaN(a, b); ok {
		return n
	}
	if (math.IsInf(a, 0) && b == 0) || (a == 0 && math.IsInf(b, 0)) {
		return c.invalid(FpscrVXIMZ)
	}
	return c.checkOverflow(a*b, a, b)
}

func (c *CPU) fdiv(a, b float64) float64 {
	if n, ok := c.propagateNaN(a, b); ok {
		return n
	}
	switch {
	case math.IsInf(a, 0) && math.IsInf(b, 0):
		return c.invalid(FpscrVXIDI)
	case a == 0 && b == 0:
		return c.invalid(FpscrVXZDZ)
	case b == 0:
		// a correctly signed infinity. divide by zero is not an overflow
		c.setFPException(FpscrZX)
		return a / b
	}
	return c.checkOverflow(a/b, a, b)
}

func (c *CPU) fsqrt(b float64) float64 {
	if n, ok := c.propagateNaN(b); ok {
		return n
	}
	if b < 0 {
		return c.invalid(FpscrVXSQRT)
	}
	return math.Sqrt(b)
}

// multiply-add. the result is a*cc+b calculated with a single rounding
func (c *CPU) fmadd(a, cc, b float64) float64 {
	if n, ok := c.propagateNaN(a, b, cc); ok {
		return n
	}
	if (math.IsInf(a, 0) && cc == 0) || (a == 0 && math.IsInf(cc, 0)) {
		return c.invalid(FpscrVXIMZ)
	}
	p := a * cc
	if math.IsInf(p, 0) && math.IsInf(b, 0) && math.Signbit(p) != math.Signbit(b) {
		return c.invalid(FpscrVXISI)
	}
	return c.checkOverflow(math.FMA(a, cc, b), a, b, cc)
}

// negate a result unless it is a NaN
func negate(v float64) float64 {
	if math.IsNaN(v) {
		return v
	}
	return -v
}

// fpArith returns a handler for an A-form arithmetic instruction. the result
// is rounded to single precision if single is true
func fpArith(single bool, op func(c *CPU, a, b, cc float64) float64) Handler {
	return func(c *CPU, opcode uint32) {
		a := c.state.FPRFloat(decode.RA(opcode))
		b := c.state.FPRFloat(decode.RB(opcode))
		cc := c.state.FPRFloat(decode.RC(opcode))
		r := op(c, a, b, cc)
		if single {
			r = c.roundSingle(r)
		}
		c.fpResult(decode.RD(opcode), r)
	}
}

func (c *CPU) roundSingle(v float64) float64 {
	if math.IsNaN(v) {
		return v
	}
	r := float64(float32(v))
	if math.IsInf(r, 0) && !math.IsInf(v, 0) {
		c.setFPException(FpscrOX | FpscrXX)
	}
	return r
}

var (
	faddOp = func(c *CPU, a, b, cc float64) float64 { return c.fadd(a, b) }
	fsubOp = func(c *CPU, a, b, cc float64) float64 {
		if math.IsNaN(b) {
			return c.fadd(a, b)
		}
		return c.fadd(a, -b)
	}
	fmulOp   = func(c *CPU, a, b, cc float64) float64 { return c.fmul(a, cc) }
	fdivOp   = func(c *CPU, a, b, cc float64) float64 { return c.fdiv(a, b) }
	fsqrtOp  = func(c *CPU, a, b, cc float64) float64 { return c.fsqrt(b) }
	fmaddOp  = func(c *CPU, a, b, cc float64) float64 { return c.fmadd(a, cc, b) }
	fnmaddOp = func(c *CPU, a, b, cc float64) float64 { return negate(c.fmadd(a, cc, b)) }
	fmsubOp  = func(c *CPU, a, b, cc float64) float64 {
		if math.IsNaN(b) {
			return c.fmadd(a, cc, b)
		}
		return c.fmadd(a, cc, -b)
	}
	fnmsubOp = func(c *CPU, a, b, cc float64) float64 { return negate(fmsubOp(c, a, b, cc)) }
	fresOp   = func(c *CPU, a, b, cc float64) float64 {
		if n, ok := c.propagateNaN(b); ok {
			return n
		}
		if b == 0 {
			c.setFPException(FpscrZX)
		}
		return 1 / b
	}
	frsqrteOp = func(c *CPU, a, b, cc float64) float64 {
		if n, ok := c.propagateNaN(b); ok {
			return n
		}
		switch {
		case b < 0:
			return c.invalid(FpscrVXSQRT)
		case b == 0:
			c.setFPException(FpscrZX)
		}
		return 1 / math.Sqrt(b)
	}
)

var (
	faddHandler    = fpArith(false, faddOp)
	fsubHandler    = fpArith(false, fsubOp)
	fmulHandler    = fpArith(false, fmulOp)
	fdivHandler    = fpArith(false, fdivOp)
	fsqrtHandler   = fpArith(false, fsqrtOp)
	fmaddHandler   = fpArith(false, fmaddOp)
	fmsubHandler   = fpArith(false, fmsubOp)
	fnmaddHandler  = fpArith(false, fnmaddOp)
	fnmsubHandler  = fpArith(false, fnmsubOp)
	frsqrteHandler = fpArith(false, frsqrteOp)
	faddsHandler   = fpArith(true, faddOp)
	fsubsHandler   = fpArith(true, fsubOp)
	fmulsHandler   = fpArith(true, fmulOp)
	fdivsHandler   = fpArith(true, fdivOp)
	fsqrtsHandler  = fpArith(true, fsqrtOp)
	fmaddsHandler  = fpArith(true, fmaddOp)
	fmsubsHandler  = fpArith(true, fmsubOp)
	fnmaddsHandler = fpArith(true, fnmaddOp)
	fnmsubsHandler = fpArith(true, fnmsubOp)
	fresHandler    = fpArith(true, fresOp)
)

// fsel does not alter FPSCR
func fsel(c *CPU, opcode uint32) {
	a := c.state.FPRFloat(decode.RA(opcode))
	r := c.state.FPR[decode.RB(opcode)]
	if a >= 0 {
		r = c.state.FPR[decode.RC(opcode)]
	}
	c.state.FPR[decode.RD(opcode)] = r
	c.recordFP()
}

func frsp(c *CPU, opcode uint32) {
	b := c.state.FPRFloat(decode.RB(opcode))
	if n, ok := c.propagateNaN(b); ok {
		c.fpResult(decode.RD(opcode), n)
		return
	}
	c.fpResult(decode.RD(opcode), c.roundSingle(b))
}

// round a float64 to an integral value using the FPSCR rounding mode
func roundMode(v float64, rn uint32) float64 {
	switch rn {
	case fpscrRNZero:
		return math.Trunc(v)
	case fpscrRNPosInf:
		return math.Ceil(v)
	case fpscrRNNegInf:
		return math.Floor(v)
	}
	return math.RoundToEven(v)
}

// convertToWord converts to a signed 32-bit integer. the upper word of the
// result is undefined and is set to the value returned by the 750
func (c *CPU) convertToWord(opcode uint32, rn uint32) {
	b := c.state.FPRFloat(decode.RB(opcode))

	var w uint32
	switch {
	case math.IsNaN(b):
		bits := uint32(FpscrVXCVI)
		if isSNaN(b) {
			bits |= FpscrVXSNAN
		}
		c.setFPException(bits)
		w = 0x80000000
	default:
		r := roundMode(b, rn)
		switch {
		case r > math.MaxInt32:
			c.setFPException(FpscrVXCVI)
			w = 0x7fffffff
		case r < math.MinInt32:
			c.setFPException(FpscrVXCVI)
			w = 0x80000000
		default:
			w = uint32(int32(r))
			if r != b {
				c.setFPException(FpscrXX)
			}
		}
	}

	c.state.FPR[decode.RD(opcode)] = 0xfff80000_00000000 | uint64(w)
	c.recordFP()
}

func fctiw(c *CPU, opcode uint32) {
	c.convertToWord(opcode, c.state.FPSCR&FpscrRN)
}

func fctiwz(c *CPU, opcode uint32) {
	c.convertToWord(opcode, fpscrRNZero)
}

func (c *CPU) fcompare(opcode uint32, ordered bool) {
	a := c.state.FPRFloat(decode.RA(opcode))
	b := c.state.FPRFloat(decode.RB(opcode))

	var f uint32
	switch {
	case math.IsNaN(a) || math.IsNaN(b):
		f = crSO
		snan := isSNaN(a) || isSNaN(b)
		var bits uint32
		if snan {
			bits |= FpscrVXSNAN
		}
		if ordered && (!snan || c.state.FPSCR&FpscrVE == 0) {
			bits |= FpscrVXVC
		}
		if bits != 0 {
			c.setFPException(bits)
		}
	case a < b:
		f = crLT
	case a > b:
		f = crGT
	default:
		f = crEQ
	}

	c.state.FPSCR = c.state.FPSCR&^(0xf<<fpccShift) | f<<fpccShift
	c.SetCRField(decode.CRFD(opcode), f)
}

func fcmpu(c *CPU, opcode uint32) {
	c.fcompare(opcode, false)
}

func fcmpo(c *CPU, opcode uint32) {
	c.fcompare(opcode, true)
}

// move instructions operate on the bit pattern and do not alter FPSCR

const signBit = 0x8000000000000000

func fmr(c *CPU, opcode uint32) {
	c.state.FPR[decode.RD(opcode)] = c.state.FPR[decode.RB(opcode)]
	c.recordFP()
}

func fneg(c *CPU, opcode uint32) {
	c.state.FPR[decode.RD(opcode)] = c.state.FPR[decode.RB(opcode)] ^ signBit
	c.recordFP()
}

func fabs(c *CPU, opcode uint32) {
	c.state.FPR[decode.RD(opcode)] = c.state.FPR[decode.RB(opcode)] &^ signBit
	c.recordFP()
}

func fnabs(c *CPU, opcode uint32) {
	c.state.FPR[decode.RD(opcode)] = c.state.FPR[decode.RB(opcode)] | signBit
	c.recordFP()
}

func mffs(c *CPU, opcode uint32) {
	c.state.FPR[decode.RD(opcode)] = 0xfff80000_00000000 | uint64(c.state.FPSCR)
	c.recordFP()
}

func mtfsf(c *CPU, opcode uint32) {
	fm := decode.FM(opcode)
	var mask uint32
	for i := uint32(0); i < 8; i++ {
		if fm&(0x80>>i) != 0 {
			mask |= 0xf0000000 >> (i * 4)
		}
	}
	v := uint32(c.state.FPR[decode.RB(opcode)])
	c.state.FPSCR = c.state.FPSCR&^mask | v&mask
	c.updateFPSummary()
	c.recordFP()
}

func mtfsfi(c *CPU, opcode uint32) {
	shift := (7 - decode.CRFD(opcode)) * 4
	imm := (opcode >> 12) & 0xf
	c.state.FPSCR = c.state.FPSCR&^(0xf<<shift) | imm<<shift
	c.updateFPSummary()
	c.recordFP()
}

func mtfsb0(c *CPU, opcode uint32) {
	c.state.FPSCR &^= 0x80000000 >> decode.RD(opcode)
	c.updateFPSummary()
	c.recordFP()
}

func mtfsb1(c *CPU, opcode uint32) {
	bit := uint32(0x80000000) >> decode.RD(opcode)
	if bit&c.state.FPSCR == 0 && bit&fpscrSticky != 0 {
		c.state.FPSCR |= FpscrFX
	}
	c.state.FPSCR |= bit
	c.updateFPSummary()
	c.recordFP()
}

func mcrfs(c *CPU, opcode uint32) {
	shift := (7 - decode.CRFS(opcode)) * 4
	c.SetCRField(decode.CRFD(opcode), c.state.FPSCR>>shift)
	c.state.FPSCR &^= fpscrSticky & (0xf << shift)
	c.updateFPSummary()
}

// floating point loads and stores. single precision values are converted
// to and from double precision

// LoadFloat loads a single or double precision value from the effective
// address and returns it as the bit pattern of a double precision value.
func (c *CPU) LoadFloat(ea uint32, single bool) (uint64, bool) {
	if single {
		v, ok := c.Load(ea, 4, false)
		if !ok {
			return 0, false
		}
		return math.Float64bits(float64(math.Float32frombits(v))), true
	}
	return c.load64(ea)
}

// StoreFloat stores the double precision bit pattern to the effective
// address, converting to single precision if required.
func (c *CPU) StoreFloat(ea uint32, v uint64, single bool) bool {
	if single {
		return c.Store(ea, 4, math.Float32bits(float32(math.Float64frombits(v))))
	}
	return c.store64(ea, v)
}

func loadFloat(single bool, indexed bool, update bool) Handler {
	return func(c *CPU, opcode uint32) {
		var ea uint32
		if indexed {
			ea = c.eaX(opcode, update)
		} else {
			ea = c.eaD(opcode, update)
		}

		v, ok := c.LoadFloat(ea, single)
		if !ok {
			return
		}

		c.state.FPR[decode.RD(opcode)] = v
		if update {
			c.state.GPR[decode.RA(opcode)] = ea
		}
	}
}

func storeFloat(single bool, indexed bool, update bool) Handler {
	return func(c *CPU, opcode uint32) {
		var ea uint32
		if indexed {
			ea = c.eaX(opcode, update)
		} else {
			ea = c.eaD(opcode, update)
		}

		if !c.StoreFloat(ea, c.state.FPR[decode.RD(opcode)], single) {
			return
		}

		if update {
			c.state.GPR[decode.RA(opcode)] = ea
		}
	}
}

func stfiwx(c *CPU, opcode uint32) {
	c.Store(c.eaX(opcode, false), 4, uint32(c.state.FPR[decode.RD(opcode)]))
}
