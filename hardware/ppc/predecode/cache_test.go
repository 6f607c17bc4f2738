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

package predecode_test

import (
	"testing"
	"time"

	"github.com/jetsetilly/gopherppc/curated"
	"github.com/jetsetilly/gopherppc/hardware/memory"
	"github.com/jetsetilly/gopherppc/hardware/ppc"
	"github.com/jetsetilly/gopherppc/hardware/ppc/decode"
	"github.com/jetsetilly/gopherppc/hardware/ppc/predecode"
	"github.com/jetsetilly/gopherppc/hardware/preferences"
	"github.com/jetsetilly/gopherppc/test"
)

func newTestCPU(t *testing.T) (*ppc.CPU, *memory.Map, *preferences.PPCPreferences) {
	t.Helper()

	mem := memory.NewMap()
	test.DemandSuccess(t, mem.AddRAM("RAM", 0, 0x10000))

	prefs := preferences.NewDefaultPPCPreferences()
	cpu, err := ppc.NewCPU(mem, prefs)
	test.DemandSuccess(t, err)
	cpu.State().MSR = ppc.MsrFP

	return cpu, mem, prefs
}

func program(t *testing.T, mem *memory.Map, origin uint32, code ...uint32) {
	t.Helper()
	for i, op := range code {
		test.DemandSuccess(t, mem.Write32(origin+uint32(i*4), op))
	}
}

func dForm(primary, rd, ra uint32, imm int32) uint32 {
	return primary<<26 | rd<<21 | ra<<16 | uint32(uint16(imm))
}

func xForm(rd, ra, rb, xo uint32) uint32 {
	return 31<<26 | rd<<21 | ra<<16 | rb<<11 | xo<<1
}

func opBc(bo, bi uint32, offset int32) uint32 {
	return 16<<26 | bo<<21 | bi<<16 | uint32(offset)&0xfffc
}

func opB(offset int32) uint32 {
	return 18<<26 | uint32(offset)&0x03fffffc
}

func opMtspr(spr, rs uint32) uint32 {
	return xForm(rs, spr&0x1f, spr>>5, 467)
}

const opBlr = 0x4e800020

func TestLoop(t *testing.T) {
	cpu, mem, _ := newTestCPU(t)
	st := cpu.State()

	// addi r3,r3,2 ; bdnz -4
	program(t, mem, 0x1000, dForm(14, 3, 3, 2), opBc(16, 0, -4))
	st.SPR[ppc.SprCTR] = 5

	c := predecode.NewCache()
	test.DemandSuccess(t, c.Compile(cpu, 0x1000))
	test.ExpectEquality(t, len(c.Records()), 3)
	test.ExpectEquality(t, c.Records()[1].BT, -1)
	test.ExpectEquality(t, c.Records()[2].Name, "exit")
	test.ExpectEquality(t, c.Records()[2].Uimm, uint32(0x1008))

	next, err := c.Execute(cpu)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, next, uint32(0x1008))
	test.ExpectEquality(t, st.PC, uint32(0x1008))
	test.ExpectEquality(t, st.GPR[3], uint32(10))
	test.ExpectEquality(t, st.SPR[ppc.SprCTR], uint32(0))
	test.ExpectEquality(t, st.TB, uint64(10))

	// the branch is folded so only the additions cost a cycle
	test.ExpectEquality(t, c.Cycles(), 5)

	// the compiled records can be executed again
	st.SPR[ppc.SprCTR] = 2
	_, err = c.Execute(cpu)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, st.GPR[3], uint32(14))
	test.ExpectEquality(t, st.TB, uint64(14))
}

func TestPowerOffInLoop(t *testing.T) {
	cpu, mem, _ := newTestCPU(t)
	st := cpu.State()

	// cmpi cr0,r3,0 ; beq -4. r3 never changes so the loop never ends while
	// power is on
	program(t, mem, 0x1000, dForm(11, 0, 3, 0), opBc(12, 2, -4))
	st.GPR[3] = 0
	cpu.Power.Store(false)

	done := make(chan uint32)
	go func() {
		next, _ := predecode.NewCache().Run(cpu, 0x1000)
		done <- next
	}()

	select {
	case next := <-done:
		test.ExpectEquality(t, next, uint32(0x1000))
		test.ExpectEquality(t, st.PC, uint32(0x1000))
		test.ExpectEquality(t, st.TB, uint64(2))
	case <-time.After(2 * time.Second):
		t.Fatalf("cache execution did not stop when power was turned off")
	}
}

func TestDeterministic(t *testing.T) {
	cpu, mem, _ := newTestCPU(t)
	st := cpu.State()

	// addi r3,r3,7 ; stw r3,0x2000(r0) ; rlwinm r5,r3,4,0,27 ; bdnz -12
	program(t, mem, 0x1000,
		dForm(14, 3, 3, 7),
		dForm(36, 3, 0, 0x2000),
		21<<26|3<<21|5<<16|4<<11|0<<6|27<<1,
		opBc(16, 0, -12),
	)
	st.GPR[3] = 1
	st.SPR[ppc.SprCTR] = 4
	st.PC = 0x1000

	start := *st

	c := predecode.NewCache()
	test.DemandSuccess(t, c.Compile(cpu, 0x1000))
	nextA, err := c.Execute(cpu)
	test.DemandSuccess(t, err)
	endA := *st
	memA, err := mem.Read32(0x2000)
	test.DemandSuccess(t, err)

	test.DemandSuccess(t, mem.Write32(0x2000, 0))
	*st = start
	nextB, err := c.Execute(cpu)
	test.DemandSuccess(t, err)
	memB, err := mem.Read32(0x2000)
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, nextB, nextA)
	test.ExpectEquality(t, *st, endA)
	test.ExpectEquality(t, memB, memA)
	test.ExpectEquality(t, memA, uint32(29))
	test.ExpectEquality(t, st.GPR[5], uint32(29<<4))
	test.ExpectEquality(t, nextA, uint32(0x1010))
}

func TestSameAsBlockInterpreter(t *testing.T) {
	code := []uint32{
		dForm(14, 3, 0, 100),
		dForm(15, 4, 0, 0x1234),
		dForm(24, 4, 4, 0x5678),
		xForm(5, 3, 4, 266) | 1,
		21<<26 | 4<<21 | 6<<16 | 8<<11 | 24<<6 | 31<<1,
		dForm(8, 8, 3, 0),
		xForm(8, 9, 3, 824) | 1,
		dForm(36, 4, 0, 0x2000),
		dForm(34, 10, 0, 0x2001),
		dForm(11, 1<<2, 3, 100),
		xForm(11, 4, 3, 40),
		opMtspr(ppc.SprCTR, 5),
		opB(0xd0),
	}

	cpuA, memA, _ := newTestCPU(t)
	program(t, memA, 0x1000, code...)
	cpuA.State().PC = 0x1000
	test.DemandSuccess(t, cpuA.RunUntil(0x1100))

	cpuB, memB, _ := newTestCPU(t)
	program(t, memB, 0x1000, code...)
	next, err := predecode.NewCache().Run(cpuB, 0x1000)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, next, uint32(0x1100))

	test.ExpectEquality(t, *cpuB.State(), *cpuA.State())
	test.ExpectEquality(t, cpuB.State().GPR[9], uint32(0xfffffff3))
	test.ExpectEquality(t, cpuB.State().GPR[10], uint32(0x34))
	test.ExpectEquality(t, cpuB.Carry(), uint32(1))
	test.ExpectEquality(t, cpuB.State().TB, uint64(len(code)))
}

func TestConditionalBranches(t *testing.T) {
	for _, tc := range []struct {
		name  string
		bo    uint32
		cr    uint32
		ctr   uint32
		next  uint32
		ctrAf uint32
	}{
		{name: "true taken", bo: 12, cr: 0x20000000, next: 0x1040},
		{name: "true not taken", bo: 12, next: 0x1004},
		{name: "prediction bit", bo: 13, cr: 0x20000000, next: 0x1040},
		{name: "false taken", bo: 4, next: 0x1040},
		{name: "false not taken", bo: 4, cr: 0x20000000, next: 0x1004},
		{name: "bdnz taken", bo: 16, ctr: 2, next: 0x1040, ctrAf: 1},
		{name: "bdnz not taken", bo: 16, ctr: 1, next: 0x1004},
		{name: "bdz taken", bo: 18, ctr: 1, next: 0x1040},
		{name: "bdz not taken", bo: 18, ctr: 2, next: 0x1004, ctrAf: 1},
	} {
		t.Run(tc.name, func(t *testing.T) {
			cpu, mem, _ := newTestCPU(t)
			st := cpu.State()
			st.CR = tc.cr
			st.SPR[ppc.SprCTR] = tc.ctr

			program(t, mem, 0x1000, opBc(tc.bo, 2, 0x40))

			next, err := predecode.NewCache().Run(cpu, 0x1000)
			test.DemandSuccess(t, err)
			test.ExpectEquality(t, next, tc.next)
			test.ExpectEquality(t, st.TB, uint64(1))
			if tc.bo&0x10 != 0 {
				test.ExpectEquality(t, st.SPR[ppc.SprCTR], tc.ctrAf)
			}
		})
	}
}

func TestBranchLink(t *testing.T) {
	cpu, mem, _ := newTestCPU(t)
	st := cpu.State()

	program(t, mem, 0x1000, opBc(12, 2, 0x40)|1)
	_, err := predecode.NewCache().Run(cpu, 0x1000)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, st.SPR[ppc.SprLR], uint32(0x1004))

	// blr leaves the cache at the link register
	st.SPR[ppc.SprLR] = 0x3000
	program(t, mem, 0x2000, dForm(14, 3, 0, 1), opBlr)
	next, err := predecode.NewCache().Run(cpu, 0x2000)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, next, uint32(0x3000))
	test.ExpectEquality(t, st.GPR[3], uint32(1))
}

func TestUnsupported(t *testing.T) {
	cpu, mem, _ := newTestCPU(t)
	c := predecode.NewCache()

	// decrement CTR and test the condition is not modelled
	program(t, mem, 0x1000, opBc(0, 2, 0x40))
	err := c.Compile(cpu, 0x1000)
	test.ExpectEquality(t, curated.Is(err, decode.ErrUnsupportedEncoding), true)

	// branch always
	program(t, mem, 0x1000, opBc(20, 0, 0x40))
	err = c.Compile(cpu, 0x1000)
	test.ExpectEquality(t, curated.Is(err, decode.ErrUnsupportedEncoding), true)

	// beqlr
	program(t, mem, 0x1000, 0x4d820020)
	err = c.Compile(cpu, 0x1000)
	test.ExpectEquality(t, curated.Is(err, decode.ErrUnsupportedEncoding), true)

	// sc and floating point arithmetic
	program(t, mem, 0x1000, 0x44000002)
	err = c.Compile(cpu, 0x1000)
	test.ExpectEquality(t, curated.Is(err, predecode.ErrUnsupported), true)

	program(t, mem, 0x1000, 0xfc22182a)
	err = c.Compile(cpu, 0x1000)
	test.ExpectEquality(t, curated.Is(err, predecode.ErrUnsupported), true)

	program(t, mem, 0x1000, 0)
	err = c.Compile(cpu, 0x1000)
	test.ExpectEquality(t, curated.Is(err, decode.ErrIllegalOpcode), true)

	// a failed compilation leaves nothing to execute
	_, err = c.Execute(cpu)
	test.ExpectEquality(t, curated.Is(err, predecode.ErrNotCompiled), true)

	err = c.Compile(cpu, 0x80000000)
	test.ExpectEquality(t, curated.Is(err, predecode.ErrFetch), true)
}

func TestCapacity(t *testing.T) {
	cpu, mem, prefs := newTestCPU(t)
	test.DemandSuccess(t, prefs.CacheCapacity.Set(4))

	for i := uint32(0); i < 10; i++ {
		program(t, mem, 0x1000+i*4, dForm(24, 0, 0, 0))
	}

	c := predecode.NewCache()
	next, err := c.Run(cpu, 0x1000)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, len(c.Records()), 4)
	test.ExpectEquality(t, next, uint32(0x100c))
	test.ExpectEquality(t, cpu.State().TB, uint64(3))
}

func TestFault(t *testing.T) {
	cpu, mem, _ := newTestCPU(t)
	st := cpu.State()

	// lis r5,0x8000 ; lwz r6,0(r5)
	program(t, mem, 0x1000, dForm(15, 5, 0, -0x8000), dForm(32, 6, 5, 0), opB(0x40))

	c := predecode.NewCache()
	next, err := c.Run(cpu, 0x1000)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, c.Cycles(), 1)
	test.ExpectEquality(t, next, uint32(ppc.ExceptionDSI))
	test.ExpectEquality(t, st.PC, uint32(ppc.ExceptionDSI))
	test.ExpectEquality(t, st.SPR[ppc.SprSRR0], uint32(0x1004))
	test.ExpectEquality(t, st.SPR[ppc.SprDAR], uint32(0x80000000))
	test.ExpectEquality(t, st.TB, uint64(1))

	// privileged SPR in user mode
	st.MSR = ppc.MsrPR
	program(t, mem, 0x1000, opMtspr(ppc.SprSPRG0, 3), opB(0x40))
	next, err = predecode.NewCache().Run(cpu, 0x1000)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, next, uint32(ppc.ExceptionProgram))
	test.ExpectEquality(t, st.SPR[ppc.SprSRR1]&ppc.ProgramPrivileged != 0, true)
}

func TestAbortOnFault(t *testing.T) {
	cpu, mem, prefs := newTestCPU(t)
	test.DemandSuccess(t, prefs.AbortOnFault.Set(true))

	program(t, mem, 0x1000, dForm(15, 5, 0, -0x8000), dForm(32, 6, 5, 0), opB(0x40))
	_, err := predecode.NewCache().Run(cpu, 0x1000)
	test.ExpectEquality(t, curated.Is(err, ppc.FaultAbort), true)
}
