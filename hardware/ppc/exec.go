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
	"github.com/jetsetilly/gopherppc/curated"
	"github.com/jetsetilly/gopherppc/hardware/memory"
	"github.com/jetsetilly/gopherppc/hardware/ppc/decode"
	"github.com/jetsetilly/gopherppc/hardware/ppc/faults"
	"github.com/jetsetilly/gopherppc/logger"
)

// Run executes instructions until the Power flag is cleared or until an
// error occurs. The Power flag is checked at the end of every basic block.
func (c *CPU) Run() error {
	if !c.Power.Load() {
		return nil
	}
	return c.execute(nil)
}

// RunUntil executes instructions until the PC is equal to the address. The
// PC is compared before every instruction so the instruction at the address
// is not executed. Execution also stops if the Power flag is cleared.
func (c *CPU) RunUntil(addr uint32) error {
	return c.execute(func(pc uint32) bool {
		return pc == addr
	})
}

// Step executes exactly one instruction. The timebase is not advanced if the
// instruction caused an exception.
func (c *CPU) Step() error {
	pc := c.state.PC

	fetch, start, err := c.translate(pc)
	if err != nil {
		return err
	}

	// an instruction access exception was taken
	if start != pc {
		c.state.PC = start
		return nil
	}

	err = c.dispatch(fetch.Word(pc - fetch.Base))
	if err != nil {
		return err
	}

	if c.fault {
		c.fault = false
		c.state.PC = c.nextPC
		return nil
	}

	c.Retire(1)

	if c.blockEnd != BlockNone {
		c.blockEnd = BlockNone
		c.state.PC = c.Interrupt(c.nextPC)
		return nil
	}

	c.state.PC = pc + 4
	return nil
}

// execute instructions until stop() returns true. if stop is nil then
// execution continues until power is turned off.
//
// the fetch page is translated when the PC leaves the current page. this
// happens when execution starts, when a branch or exception moves execution
// to a different page and when sequential execution runs off the end of the
// page.
func (c *CPU) execute(stop func(pc uint32) bool) error {
	var fetch memory.Fetch
	var err error

	pc := c.state.PC
	bbStart := pc

	for {
		pc = c.state.PC

		if stop != nil && stop(pc) {
			c.Retire((pc - bbStart) / 4)
			return nil
		}

		offset := pc - fetch.Base
		if !fetch.Contains(offset) {
			c.Retire((pc - bbStart) / 4)
			fetch, pc, err = c.translate(pc)
			if err != nil {
				return err
			}
			c.state.PC = pc
			bbStart = pc
			continue
		}

		err = c.dispatch(fetch.Word(offset))
		if err != nil {
			c.Retire((pc - bbStart) / 4)
			return err
		}

		// the instructions before the faulting instruction have retired
		if c.fault {
			c.fault = false
			c.Retire((pc - bbStart) / 4)
			c.state.PC = c.nextPC
			bbStart = c.nextPC
			if !c.Power.Load() {
				return nil
			}
			continue
		}

		if c.blockEnd != BlockNone {
			c.blockEnd = BlockNone
			c.Retire((pc-bbStart)/4 + 1)
			next := c.Interrupt(c.nextPC)
			c.state.PC = next
			bbStart = next
			if !c.Power.Load() {
				return nil
			}
			continue
		}

		c.state.PC = pc + 4
	}
}

// translate the page containing the address. if the instruction at the
// address cannot be fetched then an instruction access exception is taken
// and the page containing the exception vector is returned instead. the
// address returned is the address execution should continue from.
func (c *CPU) translate(ea uint32) (memory.Fetch, uint32, error) {
	fetch, err := c.mem.TranslateForExecution(ea)
	if err == nil && fetch.Contains(ea-fetch.Base) {
		return fetch, ea, nil
	}

	srr1 := uint32(isiNoTranslation)
	if err == nil || curated.Is(err, memory.NotExecutable) {
		srr1 = isiProtection
	}

	e, first := c.Faults.NewEntry("instruction fetch", faults.InstrAccess, ea, ea)
	if first {
		logger.Log(logger.Allow, "PPC", e.String())
	} else {
		logger.Log(c.prefs, "PPC", e.String())
	}
	if c.prefs.AbortOnFault.Get().(bool) {
		return memory.Fetch{}, ea, curated.Errorf(FaultAbort, e.String())
	}

	vector := c.exception(ExceptionISI, ea, srr1)

	fetch, err = c.mem.TranslateForExecution(vector)
	if err != nil {
		return memory.Fetch{}, vector, curated.Errorf(VectorUnmapped, vector, err)
	}
	if !fetch.Contains(vector - fetch.Base) {
		return memory.Fetch{}, vector, curated.Errorf(VectorUnmapped, vector, curated.Errorf(memory.NotExecutable, vector))
	}

	return fetch, vector, nil
}

// dispatch decodes and executes a single instruction. only unrecoverable
// errors are returned. recoverable faults are signalled by the fault field.
func (c *CPU) dispatch(opcode uint32) error {
	e, err := c.dec.Decode(opcode)
	if err != nil {
		logger.Logf(logger.Allow, "PPC", "%v (PC: %08x)", err, c.state.PC)
		return err
	}

	c.rc = decode.Rc(opcode)
	c.oe = decode.OE(opcode)

	switch {
	case e.Power && !c.arch.POWER:
		c.programFault(ProgramIllegal, faults.Illegal, e.Name)
	case e.Privileged && c.state.MSR&MsrPR != 0:
		c.programFault(ProgramPrivileged, faults.Privileged, e.Name)
	case usesFPU(e.Shape) && c.state.MSR&MsrFP == 0:
		c.raise(ExceptionFPUnavailable, 0, faults.FPUnavailable, e.Name, 0)
	default:
		e.Handler(c, opcode)
	}

	if c.fatal != nil {
		err := c.fatal
		c.fatal = nil
		c.fault = false
		c.blockEnd = BlockNone
		logger.Logf(logger.Allow, "PPC", "%v (PC: %08x)", err, c.state.PC)
		return err
	}

	return nil
}

func usesFPU(s decode.Shape) bool {
	switch s {
	case decode.ShapeFloat, decode.ShapeFloatLoadStore, decode.ShapeFloatLoadStoreIndex, decode.ShapeFPSCR:
		return true
	}
	return false
}

// Retire advances the timebase by the number of instructions. The
// decrementer is also advanced if it is enabled.
func (c *CPU) Retire(n uint32) {
	if n == 0 {
		return
	}

	c.state.TB += uint64(n)

	if !c.prefs.DecrementerEnabled.Get().(bool) {
		return
	}

	dec := c.state.SPR[SprDEC]
	c.state.SPR[SprDEC] = dec - n
	if int32(dec) >= 0 && int32(dec-n) < 0 {
		c.decPending = true
	}
}
