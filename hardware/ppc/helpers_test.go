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

	"github.com/jetsetilly/gopherppc/hardware/memory"
	"github.com/jetsetilly/gopherppc/hardware/preferences"
	"github.com/jetsetilly/gopherppc/test"
)

type testMachine struct {
	cpu   *CPU
	mem   *memory.Map
	prefs *preferences.PPCPreferences
}

// newTestMachine creates a CPU with 64KiB of RAM at address zero. the
// exception vectors are in RAM and floating point is enabled
func newTestMachine(t *testing.T, model string) *testMachine {
	t.Helper()

	mem := memory.NewMap()
	test.DemandSuccess(t, mem.AddRAM("RAM", 0, 0x10000))

	prefs := preferences.NewDefaultPPCPreferences()
	test.DemandSuccess(t, prefs.Model.Set(model))

	cpu, err := NewCPU(mem, prefs)
	test.DemandSuccess(t, err)
	cpu.state.MSR = MsrFP

	return &testMachine{cpu: cpu, mem: mem, prefs: prefs}
}

// program writes the instructions to memory and sets the PC to the origin
func (m *testMachine) program(t *testing.T, origin uint32, code ...uint32) {
	t.Helper()
	for i, op := range code {
		test.DemandSuccess(t, m.mem.Write32(origin+uint32(i*4), op))
	}
	m.cpu.state.PC = origin
}

// instruction encoders

func dForm(primary, rd, ra uint32, imm int32) uint32 {
	return primary<<26 | rd<<21 | ra<<16 | uint32(uint16(imm))
}

func xForm(rd, ra, rb, xo uint32) uint32 {
	return 31<<26 | rd<<21 | ra<<16 | rb<<11 | xo<<1
}

func xoForm(rd, ra, rb, xo uint32, oe bool, rc bool) uint32 {
	op := 31<<26 | rd<<21 | ra<<16 | rb<<11 | xo<<1
	if oe {
		op |= 0x400
	}
	if rc {
		op |= 1
	}
	return op
}

func aForm(primary, frd, fra, frb, frc, xo uint32) uint32 {
	return primary<<26 | frd<<21 | fra<<16 | frb<<11 | frc<<6 | xo<<1
}

func opAddi(rd, ra uint32, imm int32) uint32 {
	return dForm(14, rd, ra, imm)
}

func opAddis(rd, ra uint32, imm int32) uint32 {
	return dForm(15, rd, ra, imm)
}

func opLwz(rd, ra uint32, d int32) uint32 {
	return dForm(32, rd, ra, d)
}

func opStw(rs, ra uint32, d int32) uint32 {
	return dForm(36, rs, ra, d)
}

func opB(offset int32) uint32 {
	return 18<<26 | uint32(offset)&0x03fffffc
}

func opBa(target uint32) uint32 {
	return 18<<26 | target&0x03fffffc | 2
}

func opBc(bo, bi uint32, offset int32) uint32 {
	return 16<<26 | bo<<21 | bi<<16 | uint32(offset)&0xfffc
}

func opMtspr(spr, rs uint32) uint32 {
	return xForm(rs, spr&0x1f, spr>>5, 467)
}

func opMfspr(rd, spr uint32) uint32 {
	return xForm(rd, spr&0x1f, spr>>5, 339)
}

const (
	opSc   = 0x44000002
	opRfi  = 0x4c000064
	opBlr  = 0x4e800020
	opNop  = 0x60000000
	opTrap = 0x7fe00008
)
