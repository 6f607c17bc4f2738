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
	"testing"

	"github.com/jetsetilly/gopherppc/test"
)

func TestFloatArithmetic(t *testing.T) {
	m := newTestMachine(t, "750")
	st := &m.cpu.state

	st.SetFPRFloat(2, 1.5)
	st.SetFPRFloat(3, 2.25)
	st.SetFPRFloat(4, 4.0)

	m.exec(t, aForm(63, 1, 2, 3, 0, 21))
	test.ExpectEquality(t, st.FPRFloat(1), 3.75)
	test.ExpectEquality(t, (st.FPSCR&FpscrFPRF)>>fprfShift, uint32(fprfPosNormal))

	m.exec(t, aForm(63, 1, 2, 3, 0, 20))
	test.ExpectEquality(t, st.FPRFloat(1), -0.75)
	test.ExpectEquality(t, (st.FPSCR&FpscrFPRF)>>fprfShift, uint32(fprfNegNormal))

	// fmul uses frC
	m.exec(t, aForm(63, 1, 2, 0, 4, 25))
	test.ExpectEquality(t, st.FPRFloat(1), 6.0)

	m.exec(t, aForm(63, 1, 4, 2, 0, 18))
	test.ExpectApproximate(t, st.FPRFloat(1), 4.0/1.5, 0.0000001)

	// fmadd frD = frA * frC + frB
	m.exec(t, aForm(63, 1, 2, 3, 4, 29))
	test.ExpectEquality(t, st.FPRFloat(1), 8.25)

	m.exec(t, aForm(63, 1, 2, 3, 4, 31))
	test.ExpectEquality(t, st.FPRFloat(1), -8.25)

	m.exec(t, aForm(63, 1, 0, 4, 0, 22))
	test.ExpectEquality(t, st.FPRFloat(1), 2.0)
}

func TestFloatSingle(t *testing.T) {
	m := newTestMachine(t, "750")
	st := &m.cpu.state

	st.SetFPRFloat(2, 1.0)
	st.SetFPRFloat(3, 3.0)

	// fdivs rounds to single precision
	m.exec(t, aForm(59, 1, 2, 3, 0, 18))
	test.ExpectEquality(t, st.FPRFloat(1), float64(float32(1.0/3.0)))

	st.SetFPRFloat(3, 1e300)
	m.exec(t, aForm(63, 1, 0, 3, 0, 12))
	test.ExpectEquality(t, math.IsInf(st.FPRFloat(1), 1), true)
	test.ExpectEquality(t, st.FPSCR&FpscrOX != 0, true)
	test.ExpectEquality(t, st.FPSCR&FpscrFX != 0, true)
}

func TestFloatInvalid(t *testing.T) {
	m := newTestMachine(t, "750")
	st := &m.cpu.state

	st.SetFPRFloat(2, math.Inf(1))
	st.SetFPRFloat(3, math.Inf(1))

	// inf - inf
	m.exec(t, aForm(63, 1, 2, 3, 0, 20))
	test.ExpectEquality(t, st.FPR[1], uint64(defaultNaN))
	test.ExpectEquality(t, st.FPSCR&FpscrVXISI != 0, true)
	test.ExpectEquality(t, st.FPSCR&FpscrVX != 0, true)

	// division by zero
	st.FPSCR = 0
	st.SetFPRFloat(2, 1.0)
	st.SetFPRFloat(3, 0.0)
	m.exec(t, aForm(63, 1, 2, 3, 0, 18)|1)
	test.ExpectEquality(t, math.IsInf(st.FPRFloat(1), 1), true)
	test.ExpectEquality(t, st.FPSCR&FpscrZX != 0, true)

	// the record form copies the summary bits to CR1
	test.ExpectEquality(t, m.cpu.CRField(1), uint32(0x8))

	// division by zero is not also an overflow
	test.ExpectEquality(t, st.FPSCR&(FpscrOX|FpscrXX), uint32(0))

	// single precision division by negative zero
	st.FPSCR = 0
	st.SetFPRFloat(3, math.Copysign(0, -1))
	m.exec(t, aForm(59, 1, 2, 3, 0, 18))
	test.ExpectEquality(t, math.IsInf(st.FPRFloat(1), -1), true)
	test.ExpectEquality(t, st.FPSCR&FpscrZX != 0, true)
	test.ExpectEquality(t, st.FPSCR&(FpscrOX|FpscrXX), uint32(0))

	// a NaN operand is propagated
	st.FPSCR = 0
	st.FPR[2] = 0x7ff0000000000001
	m.exec(t, aForm(63, 1, 2, 3, 0, 21))
	test.ExpectEquality(t, st.FPR[1], uint64(0x7ff8000000000001))
	test.ExpectEquality(t, st.FPSCR&FpscrVXSNAN != 0, true)
}

func TestFloatConvert(t *testing.T) {
	m := newTestMachine(t, "750")
	st := &m.cpu.state

	st.SetFPRFloat(2, -2.5)

	// round to nearest even
	m.exec(t, aForm(63, 1, 0, 2, 0, 14))
	test.ExpectEquality(t, uint32(st.FPR[1]), uint32(0xfffffffe))

	// round toward zero
	m.exec(t, aForm(63, 1, 0, 2, 0, 15))
	test.ExpectEquality(t, uint32(st.FPR[1]), uint32(0xfffffffe))

	// round toward minus infinity
	st.FPSCR = fpscrRNNegInf
	m.exec(t, aForm(63, 1, 0, 2, 0, 14))
	test.ExpectEquality(t, uint32(st.FPR[1]), uint32(0xfffffffd))

	st.SetFPRFloat(2, 1e12)
	m.exec(t, aForm(63, 1, 0, 2, 0, 15))
	test.ExpectEquality(t, uint32(st.FPR[1]), uint32(0x7fffffff))
	test.ExpectEquality(t, st.FPSCR&FpscrVXCVI != 0, true)
}

func TestFloatCompare(t *testing.T) {
	m := newTestMachine(t, "750")
	st := &m.cpu.state

	st.SetFPRFloat(2, 1.0)
	st.SetFPRFloat(3, 2.0)
	m.exec(t, aForm(63, 3<<2, 2, 3, 0, 0))
	test.ExpectEquality(t, m.cpu.CRField(3), uint32(crLT))
	test.ExpectEquality(t, (st.FPSCR>>fpccShift)&0xf, uint32(crLT))

	st.FPR[3] = defaultNaN
	m.exec(t, aForm(63, 3<<2, 2, 3, 0, 0))
	test.ExpectEquality(t, m.cpu.CRField(3), uint32(crSO))
	test.ExpectEquality(t, st.FPSCR&FpscrVXVC, uint32(0))

	// ordered comparison of a quiet NaN is invalid
	m.exec(t, aForm(63, 3<<2, 2, 3, 0, 32))
	test.ExpectEquality(t, st.FPSCR&FpscrVXVC != 0, true)
}

func TestFloatMove(t *testing.T) {
	m := newTestMachine(t, "750")
	st := &m.cpu.state

	st.SetFPRFloat(2, 3.0)
	m.exec(t, aForm(63, 1, 0, 2, 0, 40))
	test.ExpectEquality(t, st.FPRFloat(1), -3.0)
	m.exec(t, aForm(63, 1, 0, 1, 0, 264))
	test.ExpectEquality(t, st.FPRFloat(1), 3.0)
	m.exec(t, aForm(63, 1, 0, 1, 0, 136))
	test.ExpectEquality(t, st.FPRFloat(1), -3.0)
	m.exec(t, aForm(63, 4, 0, 2, 0, 72))
	test.ExpectEquality(t, st.FPRFloat(4), 3.0)

	// fsel picks frC when frA is not negative
	st.SetFPRFloat(5, 10.0)
	st.SetFPRFloat(6, 20.0)
	st.SetFPRFloat(7, 0.0)
	m.exec(t, aForm(63, 1, 7, 6, 5, 23))
	test.ExpectEquality(t, st.FPRFloat(1), 10.0)
	st.SetFPRFloat(7, -1.0)
	m.exec(t, aForm(63, 1, 7, 6, 5, 23))
	test.ExpectEquality(t, st.FPRFloat(1), 20.0)
}

func TestFPSCRInstructions(t *testing.T) {
	m := newTestMachine(t, "750")
	st := &m.cpu.state

	// mtfsb1 sets the bit and FX
	m.exec(t, aForm(63, 3, 0, 0, 0, 38))
	test.ExpectEquality(t, st.FPSCR, uint32(FpscrFX|FpscrOX))

	// mcrfs copies field 0 to CR field 2 and clears the exception bits
	m.exec(t, aForm(63, 2<<2, 0, 0, 0, 64))
	test.ExpectEquality(t, m.cpu.CRField(2), uint32(0x9))
	test.ExpectEquality(t, st.FPSCR, uint32(0))

	// mtfsfi sets the rounding mode
	m.exec(t, 63<<26|7<<23|3<<12|134<<1)
	test.ExpectEquality(t, st.FPSCR&FpscrRN, uint32(3))

	m.exec(t, aForm(63, 30, 0, 0, 0, 70))
	test.ExpectEquality(t, st.FPSCR&FpscrRN, uint32(1))

	// mffs and mtfsf
	m.exec(t, aForm(63, 8, 0, 0, 0, 583))
	test.ExpectEquality(t, uint32(st.FPR[8]), uint32(1))
	st.FPR[9] = 0x000000ff
	m.exec(t, 63<<26|0xff<<17|9<<11|711<<1)
	test.ExpectEquality(t, st.FPSCR, uint32(0xff))
}

func TestFloatLoadStore(t *testing.T) {
	m := newTestMachine(t, "750")
	st := &m.cpu.state

	st.GPR[5] = 0x2000
	st.SetFPRFloat(1, 1.25)

	// stfd then lfs of the single precision form
	m.exec(t, dForm(54, 1, 5, 0), dForm(52, 1, 5, 8), dForm(48, 2, 5, 8), dForm(50, 3, 5, 0))
	test.ExpectEquality(t, st.FPRFloat(2), 1.25)
	test.ExpectEquality(t, st.FPRFloat(3), 1.25)

	v, err := m.mem.Read32(0x2008)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, math.Float32bits(1.25))

	// update form
	m.exec(t, dForm(51, 4, 5, 8))
	test.ExpectEquality(t, st.GPR[5], uint32(0x2008))

	// stfiwx stores the low word
	st.FPR[6] = 0xfff8000012345678
	st.GPR[7] = 0x10
	m.exec(t, xForm(6, 5, 7, 983))
	v, err = m.mem.Read32(0x2018)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint32(0x12345678))
}
