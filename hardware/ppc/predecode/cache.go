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
	"fmt"
	"strings"

	"github.com/jetsetilly/gopherppc/curated"
	"github.com/jetsetilly/gopherppc/hardware/memory"
	"github.com/jetsetilly/gopherppc/hardware/ppc"
	"github.com/jetsetilly/gopherppc/hardware/ppc/decode"
	"github.com/jetsetilly/gopherppc/logger"
)

// Sentinal error patterns.
const (
	ErrUnsupported = "predecode: unsupported instruction: %s (%s) at %08x"
	ErrNotCompiled = "predecode: nothing has been compiled"
	ErrFetch       = "predecode: cannot fetch instruction at %08x: %v"
)

// Record is a single compiled instruction.
type Record struct {
	// the operation that implements the instruction
	Op Op

	// the name of the instruction. for display purposes only
	Name string

	// the address and instruction word the record was compiled from
	Addr   uint32
	Opcode uint32

	// resolved operand fields. the meaning of each field depends on the
	// operand shape of the instruction. D4 is the record bit for the shapes
	// that have one
	D1, D2, D3, D4 uint32

	// sign extended immediate
	Simm uint32

	// zero extended immediate, rotate mask, SPR number or exit address
	Uimm uint32

	// branch displacement in records and the branch target address
	BT     int
	Target uint32

	// cycle cost copied from the decode table entry
	Cycles int
}

func (r Record) String() string {
	return fmt.Sprintf("%08x  %-8s  %2d %2d %2d %d  simm=%08x uimm=%08x bt=%d",
		r.Addr, r.Name, r.D1, r.D2, r.D3, r.D4, r.Simm, r.Uimm, r.BT)
}

// Cache is a buffer of compiled records.
type Cache struct {
	records []Record

	// the address of the first record
	start uint32

	// execution state. only valid during a call to Execute()
	cpu     *ppc.CPU
	st      *ppc.State
	exit    uint32
	retired uint32
	fault   bool
	err     error

	// cycles consumed by the most recent call to Execute()
	cycles int
}

// NewCache is the preferred method of initialisation for the Cache type.
func NewCache() *Cache {
	return &Cache{}
}

func (c *Cache) String() string {
	s := strings.Builder{}
	for _, r := range c.records {
		s.WriteString(r.String())
		s.WriteString("\n")
	}
	return s.String()
}

// Records returns the compiled records. The last record is always the exit
// record.
func (c *Cache) Records() []Record {
	return c.records
}

// Cycles returns the sum of the cycle cost of the records retired by the
// most recent call to Execute().
func (c *Cache) Cycles() int {
	return c.cycles
}

// Start returns the address the cache was compiled from.
func (c *Cache) Start() uint32 {
	return c.start
}

// Compile translates the address and compiles instructions into records
// until an instruction that alters the flow of control has been compiled or
// until the buffer is full. The size of the buffer is taken from the CPU's
// preferences.
//
// Any error leaves the cache empty.
func (c *Cache) Compile(cpu *ppc.CPU, addr uint32) error {
	capacity := cpu.Preferences().CacheCapacity.Get().(int)
	if cap(c.records) != capacity {
		c.records = make([]Record, 0, capacity)
	}
	c.records = c.records[:0]
	c.start = addr

	dec := cpu.Decoder()

	var fetch memory.Fetch
	pc := addr

	for len(c.records) < capacity-1 {
		if !fetch.Contains(pc - fetch.Base) {
			var err error
			fetch, err = cpu.Memory().TranslateForExecution(pc)
			if err == nil && !fetch.Contains(pc-fetch.Base) {
				err = curated.Errorf(memory.NotExecutable, pc)
			}
			if err != nil {
				return c.abort(curated.Errorf(ErrFetch, pc, err))
			}
		}

		opcode := fetch.Word(pc - fetch.Base)
		e, err := dec.Decode(opcode)
		if err != nil {
			return c.abort(err)
		}

		r, err := resolve(cpu, e, opcode, pc)
		if err != nil {
			return c.abort(err)
		}
		c.records = append(c.records, r)

		pc += 4
		if e.EndsBlock() {
			break
		}
	}

	c.records = append(c.records, Record{
		Op:   exit,
		Name: "exit",
		Addr: pc,
		Uimm: pc,
	})

	logger.Logf(cpu.Preferences(), "predecode", "compiled %d instructions at %08x", len(c.records)-1, addr)

	return nil
}

func (c *Cache) abort(err error) error {
	c.records = c.records[:0]
	logger.Log(logger.Allow, "predecode", err)
	return err
}

// the operand shapes where the least significant bit of the instruction
// is the record bit
func hasRecordBit(s decode.Shape) bool {
	switch s {
	case decode.ShapeDAB, decode.ShapeDA, decode.ShapeShiftImm, decode.ShapeRotImm, decode.ShapeRotReg:
		return true
	}
	return false
}

// instructions with an immediate field that is shifted into the upper half
// of the word
var shiftedImmediate = map[string]bool{
	"addis":  true,
	"oris":   true,
	"xoris":  true,
	"andis.": true,
}

// resolve compiles a single instruction into a record
func resolve(cpu *ppc.CPU, e *ppc.Entry, opcode uint32, addr uint32) (Record, error) {
	r := Record{
		Name:   e.Name,
		Addr:   addr,
		Opcode: opcode,
		Cycles: e.Cycles,
	}

	unsupported := func() (Record, error) {
		return Record{}, curated.Errorf(ErrUnsupported, e.Name, e.Shape, addr)
	}

	// privileged and POWER instructions and instructions that always take an
	// exception are left to the block interpreter
	if e.Privileged || e.Power || e.Flow == decode.FlowException {
		return unsupported()
	}

	if strings.HasSuffix(e.Name, ".") || (hasRecordBit(e.Shape) && decode.Rc(opcode)) {
		r.D4 = 1
	}

	switch e.Shape {
	case decode.ShapeNone, decode.ShapeCache:
	case decode.ShapeDImm, decode.ShapeLoadStore, decode.ShapeFloatLoadStore:
		r.D1 = decode.RD(opcode)
		r.D2 = decode.RA(opcode)
		r.Simm = decode.SIMM(opcode)
	case decode.ShapeDUImm:
		r.D1 = decode.RD(opcode)
		r.D2 = decode.RA(opcode)
		r.Uimm = decode.UIMM(opcode)
	case decode.ShapeDAB, decode.ShapeLoadStoreIndexed, decode.ShapeFloatLoadStoreIndex:
		r.D1 = decode.RD(opcode)
		r.D2 = decode.RA(opcode)
		r.D3 = decode.RB(opcode)
	case decode.ShapeDA:
		r.D1 = decode.RD(opcode)
		r.D2 = decode.RA(opcode)
	case decode.ShapeShiftImm:
		r.D1 = decode.RD(opcode)
		r.D2 = decode.RA(opcode)
		r.D3 = decode.SH(opcode)
		r.Uimm = 1<<r.D3 - 1
	case decode.ShapeRotImm, decode.ShapeRotReg:
		r.D1 = decode.RD(opcode)
		r.D2 = decode.RA(opcode)
		r.D3 = decode.RB(opcode)
		r.Uimm = ppc.RotMask(decode.MB(opcode), decode.ME(opcode))
	case decode.ShapeCmpImm:
		r.D1 = decode.CRFD(opcode)
		r.D2 = decode.RA(opcode)
		r.Simm = decode.SIMM(opcode)
		r.Uimm = decode.UIMM(opcode)
	case decode.ShapeCmp:
		r.D1 = decode.CRFD(opcode)
		r.D2 = decode.RA(opcode)
		r.D3 = decode.RB(opcode)
	case decode.ShapeSPR:
		r.D1 = decode.RD(opcode)
		r.Uimm = decode.SPR(opcode)
	case decode.ShapeCRField:
		r.D1 = decode.RD(opcode)
		for i := uint32(0); i < 8; i++ {
			if decode.CRM(opcode)&(0x80>>i) != 0 {
				r.Uimm |= 0xf0000000 >> (i * 4)
			}
		}
	case decode.ShapeFloat:
		// the record forms of the floating point instructions update CR1
		if decode.Rc(opcode) {
			return unsupported()
		}
		r.D1 = decode.RD(opcode)
		r.D2 = decode.RA(opcode)
		r.D3 = decode.RB(opcode)
	case decode.ShapeBranch:
		r.Target = decode.LI(opcode)
		if !decode.AA(opcode) {
			r.Target += addr
		}
		r.D4 = opcode & 1
		r.Op = branch
		return r, nil
	case decode.ShapeBranchCond:
		return resolveBranchCond(r, e, opcode)
	case decode.ShapeBranchReg:
		return resolveBranchReg(r, e, opcode)
	default:
		return unsupported()
	}

	// mftb is only valid for the two timebase registers
	if e.Name == "mftb" && r.Uimm != ppc.TbrTBL && r.Uimm != ppc.TbrTBU {
		return unsupported()
	}

	if shiftedImmediate[e.Name] {
		r.Simm <<= 16
		r.Uimm <<= 16
	}

	op, ok := ops[strings.TrimSuffix(e.Name, ".")]
	if !ok {
		return unsupported()
	}
	r.Op = op

	return r, nil
}

// conditional branches are specialised according to the BO field. the
// branch prediction bit is ignored
func resolveBranchCond(r Record, e *ppc.Entry, opcode uint32) (Record, error) {
	r.Simm = decode.BD(opcode)
	r.Target = r.Simm
	if !decode.AA(opcode) {
		r.Target += r.Addr
	}
	r.BT = int(int32(r.Target-r.Addr)) >> 2
	r.D4 = opcode & 1

	bo := decode.BO(opcode)
	switch bo & 0x1e {
	case 12, 14:
		r.Op = branchCondition
		r.D1 = 1
		r.Uimm = 0x80000000 >> decode.BI(opcode)
	case 4, 6:
		r.Op = branchCondition
		r.D1 = 0
		r.Uimm = 0x80000000 >> decode.BI(opcode)
	case 16:
		r.Op = bdnz
	case 18:
		r.Op = bdz
	default:
		return Record{}, curated.Errorf(decode.ErrUnsupportedEncoding, e.Name, opcode)
	}

	return r, nil
}

// only the branch always forms of bclr and bcctr are supported
func resolveBranchReg(r Record, e *ppc.Entry, opcode uint32) (Record, error) {
	if decode.BO(opcode)&0x1e != 20 {
		return Record{}, curated.Errorf(decode.ErrUnsupportedEncoding, e.Name, opcode)
	}

	r.D4 = opcode & 1
	switch strings.TrimSuffix(e.Name, "l") {
	case "bclr":
		r.Op = blr
	case "bcctr":
		r.Op = bctr
	default:
		return Record{}, curated.Errorf(ErrUnsupported, e.Name, e.Shape, r.Addr)
	}

	return r, nil
}

// Execute runs the compiled records starting with the first record. Returns
// the address execution should continue from. The PC of the CPU is also set
// to that address and the timebase is credited with the number of
// instructions retired.
//
// An exception raised during execution ends execution at the exception
// vector. The instructions before the one that raised the exception are
// retired.
func (c *Cache) Execute(cpu *ppc.CPU) (uint32, error) {
	if len(c.records) == 0 {
		return 0, curated.Errorf(ErrNotCompiled)
	}

	c.cpu = cpu
	c.st = cpu.State()
	c.retired = 0
	c.cycles = 0
	c.fault = false
	c.err = nil

	for i := 0; i >= 0; {
		r := &c.records[i]
		c.retired++
		c.cycles += r.Cycles
		i = r.Op(c, r, i)
	}


	cpu.Retire(c.retired)

	next := c.exit
	if !c.fault {
		next = cpu.Interrupt(next)
	}
	c.st.PC = next

	err := c.err
	c.cpu = nil
	c.st = nil
	c.err = nil

	return next, err
}

// Run compiles instructions starting at the address and executes them.
func (c *Cache) Run(cpu *ppc.CPU, addr uint32) (uint32, error) {
	if err := c.Compile(cpu, addr); err != nil {
		return addr, err
	}
	return c.Execute(cpu)
}
