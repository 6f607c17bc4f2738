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
	"testing"

	"github.com/jetsetilly/gopherppc/test"
)

func TestPowerMultiplyDivide(t *testing.T) {
	m := newTestMachine(t, "601")
	st := &m.cpu.state

	st.GPR[4] = 0x10000
	st.GPR[5] = 0x30000
	m.exec(t, xoForm(3, 4, 5, 107, false, false))
	test.ExpectEquality(t, st.GPR[3], uint32(3))
	test.ExpectEquality(t, st.SPR[SprMQ], uint32(0))

	// div uses rA and MQ as a 64-bit dividend
	st.GPR[4] = 0
	st.SPR[SprMQ] = 100
	st.GPR[5] = 7
	m.exec(t, xoForm(3, 4, 5, 331, false, false))
	test.ExpectEquality(t, st.GPR[3], uint32(14))
	test.ExpectEquality(t, st.SPR[SprMQ], uint32(2))

	st.GPR[4] = 0xffffff9c
	m.exec(t, xoForm(3, 4, 5, 363, false, false))
	test.ExpectEquality(t, st.GPR[3], uint32(0xfffffff2))
	test.ExpectEquality(t, st.SPR[SprMQ], uint32(0xfffffffe))

	st.GPR[5] = 0
	m.exec(t, xoForm(3, 4, 5, 363, true, false))
	test.ExpectEquality(t, st.SPR[SprXER]&XerOV != 0, true)
}

func TestPowerArithmetic(t *testing.T) {
	m := newTestMachine(t, "601")
	st := &m.cpu.state

	st.GPR[4] = 3
	st.GPR[5] = 10
	m.exec(t, xoForm(3, 4, 5, 264, false, false))
	test.ExpectEquality(t, st.GPR[3], uint32(7))
	m.exec(t, xoForm(3, 5, 4, 264, false, false))
	test.ExpectEquality(t, st.GPR[3], uint32(0))

	m.exec(t, dForm(9, 3, 5, 100))
	test.ExpectEquality(t, st.GPR[3], uint32(90))

	st.GPR[4] = 0xfffffffb
	m.exec(t, xoForm(3, 4, 0, 360, false, false))
	test.ExpectEquality(t, st.GPR[3], uint32(5))
	m.exec(t, xoForm(3, 3, 0, 488, false, false))
	test.ExpectEquality(t, st.GPR[3], uint32(0xfffffffb))

	st.GPR[4] = 0x80000000
	m.exec(t, xoForm(3, 4, 0, 360, true, false))
	test.ExpectEquality(t, st.GPR[3], uint32(0x80000000))
	test.ExpectEquality(t, st.SPR[SprXER]&XerOV != 0, true)
}

func TestPowerShift(t *testing.T) {
	m := newTestMachine(t, "601")
	st := &m.cpu.state

	st.GPR[4] = 0x12345678
	st.GPR[5] = 8

	m.exec(t, xForm(4, 3, 5, 153))
	test.ExpectEquality(t, st.GPR[3], uint32(0x34567800))
	test.ExpectEquality(t, st.SPR[SprMQ], uint32(0x34567812))

	m.exec(t, xForm(4, 3, 5, 665))
	test.ExpectEquality(t, st.GPR[3], uint32(0x00123456))
	test.ExpectEquality(t, st.SPR[SprMQ], uint32(0x78123456))

	// sleq merges the rotated value with MQ
	st.SPR[SprMQ] = 0xffffffff
	m.exec(t, xForm(4, 3, 5, 217))
	test.ExpectEquality(t, st.GPR[3], uint32(0x345678ff))

	// bit 26 of rB clears the result of slq
	st.GPR[5] = 0x20
	m.exec(t, xForm(4, 3, 5, 152))
	test.ExpectEquality(t, st.GPR[3], uint32(0))

	// algebraic shift sets CA if one bits of a negative value are lost
	st.GPR[4] = 0x80000011
	m.exec(t, xForm(4, 3, 4, 952))
	test.ExpectEquality(t, st.GPR[3], uint32(0xf8000001))
	test.ExpectEquality(t, m.cpu.Carry(), uint32(1))
	test.ExpectEquality(t, st.SPR[SprMQ], uint32(0x18000001))
}

func TestPowerMask(t *testing.T) {
	m := newTestMachine(t, "601")
	st := &m.cpu.state

	st.GPR[4] = 8
	st.GPR[5] = 15
	m.exec(t, xForm(4, 3, 5, 29))
	test.ExpectEquality(t, st.GPR[3], uint32(0x00ff0000))

	st.GPR[4] = 28
	st.GPR[5] = 3
	m.exec(t, xForm(4, 3, 5, 29))
	test.ExpectEquality(t, st.GPR[3], uint32(0xf000000f))

	st.GPR[3] = 0x12345678
	st.GPR[4] = 0xffffffff
	st.GPR[5] = 0x0000ff00
	m.exec(t, xForm(4, 3, 5, 541))
	test.ExpectEquality(t, st.GPR[3], uint32(0x1234ff78))

	st.GPR[3] = 0
	st.GPR[4] = 0x80000000
	st.GPR[5] = 4
	m.exec(t, xForm(4, 3, 5, 537))
	test.ExpectEquality(t, st.GPR[3], uint32(0x08000000))

	// rlmi rA,rS,rB,24,31
	st.GPR[3] = 0xaaaaaaaa
	st.GPR[4] = 0x12345678
	st.GPR[5] = 8
	m.exec(t, 22<<26|4<<21|3<<16|5<<11|24<<6|31<<1)
	test.ExpectEquality(t, st.GPR[3], uint32(0xaaaaaa12))

	m.exec(t, xForm(3, 12, 0, 531))
	test.ExpectEquality(t, st.GPR[3], uint32(64))
}

func TestLoadStringCompare(t *testing.T) {
	m := newTestMachine(t, "601")
	st := &m.cpu.state

	test.DemandSuccess(t, m.mem.Load(0x3000, []byte("Hello")))
	st.GPR[7] = 0x3000
	st.SPR[SprXER] = uint32('l')<<8 | 5

	m.exec(t, xForm(6, 0, 7, 277)|1)
	test.ExpectEquality(t, st.GPR[6], uint32(0x48656c00))
	test.ExpectEquality(t, st.SPR[SprXER]&0x7f, uint32(3))
	test.ExpectEquality(t, m.cpu.CRField(0), uint32(crEQ))

	// no match loads every byte
	st.SPR[SprXER] = uint32('z')<<8 | 5
	m.exec(t, xForm(6, 0, 7, 277)|1)
	test.ExpectEquality(t, st.GPR[7], uint32(0x6f000000))
	test.ExpectEquality(t, st.SPR[SprXER]&0x7f, uint32(5))
	test.ExpectEquality(t, m.cpu.CRField(0), uint32(0))
}
