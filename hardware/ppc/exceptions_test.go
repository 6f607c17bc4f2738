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

	"github.com/jetsetilly/gopherppc/curated"
	"github.com/jetsetilly/gopherppc/hardware/ppc/faults"
	"github.com/jetsetilly/gopherppc/test"
)

func TestDataAccessFault(t *testing.T) {
	m := newTestMachine(t, "750")
	m.program(t, 0x1000,
		opAddi(3, 0, 1),
		opAddi(3, 3, 1),
		opAddis(5, 0, 0x0009),
		opLwz(4, 5, 0x10),
		opAddi(3, 3, 1),
	)

	// three instructions retire before the faulting load
	test.DemandSuccess(t, m.cpu.RunUntil(0x300))
	test.ExpectEquality(t, m.cpu.state.PC, uint32(0x300))
	test.ExpectEquality(t, m.cpu.state.TB, uint64(3))
	test.ExpectEquality(t, m.cpu.state.GPR[3], uint32(2))
	test.ExpectEquality(t, m.cpu.state.SPR[SprSRR0], uint32(0x100c))
	test.ExpectEquality(t, m.cpu.state.SPR[SprSRR1], uint32(MsrFP))
	test.ExpectEquality(t, m.cpu.state.SPR[SprDAR], uint32(0x00090010))
	test.ExpectEquality(t, m.cpu.state.SPR[SprDSISR], uint32(DsisrNoTranslation))

	// the exception disables floating point
	test.ExpectEquality(t, m.cpu.state.MSR, uint32(0))

	test.DemandEquality(t, len(m.cpu.Faults.Log), 1)
	test.ExpectEquality(t, m.cpu.Faults.Log[0].Category, faults.DataAccess)
	test.ExpectEquality(t, m.cpu.Faults.Log[0].InstructionAddr, uint32(0x100c))
}

func TestStoreToROM(t *testing.T) {
	m := newTestMachine(t, "750")
	test.DemandSuccess(t, m.mem.AddROM("ROM", 0x20000, make([]byte, 0x100)))
	m.program(t, 0x1000,
		opAddis(5, 0, 2),
		opStw(3, 5, 0),
	)

	test.DemandSuccess(t, m.cpu.RunUntil(0x300))
	test.ExpectEquality(t, m.cpu.state.SPR[SprDSISR], uint32(DsisrProtection|DsisrStore))
	test.ExpectEquality(t, m.cpu.state.SPR[SprDAR], uint32(0x20000))
}

func TestFaultStep(t *testing.T) {
	m := newTestMachine(t, "750")
	m.program(t, 0x1000, opAddis(5, 0, 0x0009), opLwz(4, 5, 0))

	test.DemandSuccess(t, m.cpu.Step())
	test.DemandSuccess(t, m.cpu.Step())

	// the faulting instruction is not credited
	test.ExpectEquality(t, m.cpu.state.PC, uint32(0x300))
	test.ExpectEquality(t, m.cpu.state.TB, uint64(1))
}

func TestPrivilegedInstruction(t *testing.T) {
	m := newTestMachine(t, "750")
	m.program(t, 0x1000, opNop, xForm(0, 0, 0, 146))
	m.cpu.state.MSR = MsrPR | MsrFP | MsrEE

	test.DemandSuccess(t, m.cpu.RunUntil(0x700))
	test.ExpectEquality(t, m.cpu.state.SPR[SprSRR0], uint32(0x1004))
	test.ExpectEquality(t, m.cpu.state.SPR[SprSRR1], uint32(MsrPR|MsrFP|MsrEE|ProgramPrivileged))
	test.ExpectEquality(t, m.cpu.state.MSR, uint32(0))
	test.ExpectEquality(t, m.cpu.state.TB, uint64(1))
	test.ExpectEquality(t, m.cpu.Faults.Log[0].Category, faults.Privileged)
}

func TestPrivilegedSPR(t *testing.T) {
	m := newTestMachine(t, "750")

	// LR is a user register. SRR0 is not
	m.program(t, 0x1000, opMfspr(3, SprLR), opMfspr(4, SprSRR0))
	m.cpu.state.MSR = MsrPR

	test.DemandSuccess(t, m.cpu.Step())
	test.ExpectEquality(t, m.cpu.state.PC, uint32(0x1004))
	test.DemandSuccess(t, m.cpu.Step())
	test.ExpectEquality(t, m.cpu.state.PC, uint32(0x700))
}

func TestSystemCall(t *testing.T) {
	m := newTestMachine(t, "750")
	m.program(t, 0x1000, opAddi(3, 0, 1), opSc)

	// sc is credited as the end of a block
	test.DemandSuccess(t, m.cpu.RunUntil(0xc00))
	test.ExpectEquality(t, m.cpu.state.TB, uint64(2))
	test.ExpectEquality(t, m.cpu.state.SPR[SprSRR0], uint32(0x1008))
	test.ExpectEquality(t, m.cpu.state.SPR[SprSRR1], uint32(MsrFP))
}

func TestReturnFromInterrupt(t *testing.T) {
	m := newTestMachine(t, "750")
	m.program(t, 0x1000, opSc)
	test.DemandSuccess(t, m.mem.Write32(0xc00, opRfi))

	test.DemandSuccess(t, m.cpu.Step())
	test.ExpectEquality(t, m.cpu.state.PC, uint32(0xc00))
	test.ExpectEquality(t, m.cpu.state.MSR, uint32(0))

	test.DemandSuccess(t, m.cpu.Step())
	test.ExpectEquality(t, m.cpu.state.PC, uint32(0x1004))
	test.ExpectEquality(t, m.cpu.state.MSR, uint32(MsrFP))
	test.ExpectEquality(t, m.cpu.state.TB, uint64(2))
}

func TestInstructionAccessFault(t *testing.T) {
	m := newTestMachine(t, "750")
	m.program(t, 0x1000, opBa(0x00100000))

	test.DemandSuccess(t, m.cpu.RunUntil(0x400))
	test.ExpectEquality(t, m.cpu.state.SPR[SprSRR0], uint32(0x00100000))
	test.ExpectEquality(t, m.cpu.state.SPR[SprSRR1]&isiNoTranslation != 0, true)
	test.ExpectEquality(t, m.cpu.state.TB, uint64(1))
	test.ExpectEquality(t, m.cpu.Faults.Log[0].Category, faults.InstrAccess)
}

func TestPowerOpcodes(t *testing.T) {
	dozi := dForm(9, 3, 4, 10)

	m := newTestMachine(t, "750")
	m.program(t, 0x1000, dozi)
	test.DemandSuccess(t, m.cpu.Step())
	test.ExpectEquality(t, m.cpu.state.PC, uint32(0x700))
	test.ExpectEquality(t, m.cpu.state.SPR[SprSRR1]&ProgramIllegal != 0, true)

	m = newTestMachine(t, "601")
	m.program(t, 0x1000, dozi)
	m.cpu.state.GPR[4] = 4
	test.DemandSuccess(t, m.cpu.Step())
	test.ExpectEquality(t, m.cpu.state.PC, uint32(0x1004))
	test.ExpectEquality(t, m.cpu.state.GPR[3], uint32(6))
}

func TestFloatingPointUnavailable(t *testing.T) {
	m := newTestMachine(t, "750")
	m.program(t, 0x1000, aForm(63, 1, 2, 3, 0, 21))
	m.cpu.state.MSR = 0

	test.DemandSuccess(t, m.cpu.Step())
	test.ExpectEquality(t, m.cpu.state.PC, uint32(0x800))
	test.ExpectEquality(t, m.cpu.Faults.Log[0].Category, faults.FPUnavailable)
}

func TestTrap(t *testing.T) {
	m := newTestMachine(t, "750")

	// trap if r3 is equal to 5
	m.program(t, 0x1000, dForm(3, 4, 3, 5), opAddi(3, 0, 5), dForm(3, 4, 3, 5))

	test.DemandSuccess(t, m.cpu.RunUntil(0x700))
	test.ExpectEquality(t, m.cpu.state.SPR[SprSRR0], uint32(0x1008))
	test.ExpectEquality(t, m.cpu.state.SPR[SprSRR1]&ProgramTrap != 0, true)
	test.ExpectEquality(t, m.cpu.state.TB, uint64(2))

	m.program(t, 0x1000, opTrap)
	test.DemandSuccess(t, m.cpu.Step())
	test.ExpectEquality(t, m.cpu.state.PC, uint32(0x700))
}

func TestAlignmentFault(t *testing.T) {
	m := newTestMachine(t, "750")
	m.program(t, 0x1000, opAddi(5, 0, 0x2001), xForm(3, 0, 5, 20))

	test.DemandSuccess(t, m.cpu.RunUntil(0x600))
	test.ExpectEquality(t, m.cpu.state.SPR[SprDAR], uint32(0x2001))
	test.ExpectEquality(t, m.cpu.state.SPR[SprSRR0], uint32(0x1004))

	// DSISR identifies the instruction
	test.ExpectEquality(t, m.cpu.state.SPR[SprDSISR]&0x1f, uint32(0))
	test.ExpectEquality(t, (m.cpu.state.SPR[SprDSISR]>>5)&0x1f, uint32(3))
}

func TestVectorPrefix(t *testing.T) {
	m := newTestMachine(t, "750")
	test.DemandSuccess(t, m.mem.AddRAM("high", 0xfff00000, 0x1000))
	m.program(t, 0x1000, opTrap)
	m.cpu.state.MSR = MsrIP

	test.DemandSuccess(t, m.cpu.Step())
	test.ExpectEquality(t, m.cpu.state.PC, uint32(0xfff00700))
	test.ExpectEquality(t, m.cpu.state.MSR, uint32(MsrIP))
}

func TestVectorUnmapped(t *testing.T) {
	m := newTestMachine(t, "750")
	m.program(t, 0x1000, opTrap)
	m.cpu.state.MSR = MsrIP

	err := m.cpu.RunUntil(0x2000)
	test.ExpectEquality(t, curated.Is(err, VectorUnmapped), true)
}

func TestAbortOnFault(t *testing.T) {
	m := newTestMachine(t, "750")
	test.DemandSuccess(t, m.prefs.AbortOnFault.Set(true))
	m.program(t, 0x1000, opNop, opTrap)

	err := m.cpu.RunUntil(0x700)
	test.ExpectEquality(t, curated.Is(err, FaultAbort), true)
	test.ExpectEquality(t, m.cpu.state.PC, uint32(0x1004))
	test.ExpectEquality(t, m.cpu.state.TB, uint64(1))
}

func TestDecrementer(t *testing.T) {
	m := newTestMachine(t, "750")
	test.DemandSuccess(t, m.prefs.DecrementerEnabled.Set(true))
	m.program(t, 0x1000, opB(0))
	m.cpu.state.MSR = MsrEE
	m.cpu.state.SPR[SprDEC] = 3

	// the decrementer passes through zero at the end of the fourth block
	test.DemandSuccess(t, m.cpu.RunUntil(0x900))
	test.ExpectEquality(t, m.cpu.state.TB, uint64(4))
	test.ExpectEquality(t, m.cpu.state.SPR[SprDEC], uint32(0xffffffff))
	test.ExpectEquality(t, m.cpu.state.SPR[SprSRR0], uint32(0x1000))
	test.ExpectEquality(t, m.cpu.state.SPR[SprSRR1], uint32(MsrEE))
}

func TestDecrementerMasked(t *testing.T) {
	m := newTestMachine(t, "750")
	test.DemandSuccess(t, m.prefs.DecrementerEnabled.Set(true))

	// loop ten times with external interrupts disabled then enable them
	m.program(t, 0x1000,
		opAddi(4, 0, 10),
		opMtspr(SprCTR, 4),
		opBc(16, 0, 0),
		dForm(24, 0, 3, MsrEE),
		xForm(3, 0, 0, 146),
		opB(0),
	)
	m.cpu.state.MSR = 0
	m.cpu.state.SPR[SprDEC] = 2

	// the exception is taken at the first block boundary after mtmsr
	test.DemandSuccess(t, m.cpu.RunUntil(0x900))
	test.ExpectEquality(t, m.cpu.state.SPR[SprSRR0], uint32(0x1014))
}
