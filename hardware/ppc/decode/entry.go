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

package decode

import "fmt"

// Shape describes how the operand fields of an instruction are laid out. The
// pre-decode interpreter uses the shape to decide which fields to resolve when
// compiling a record.
type Shape int

// List of valid Shape values.
const (
	ShapeNone Shape = iota

	// integer operations
	ShapeDImm     // rD, rA, SIMM
	ShapeDUImm    // rA, rS, UIMM
	ShapeDAB      // rD, rA, rB
	ShapeDA       // rD, rA
	ShapeShiftImm // rA, rS, SH
	ShapeRotImm   // rA, rS, SH, MB, ME
	ShapeRotReg   // rA, rS, rB, MB, ME
	ShapeCmpImm   // crfD, rA, SIMM or UIMM
	ShapeCmp      // crfD, rA, rB
	ShapeTrapImm  // TO, rA, SIMM
	ShapeTrap     // TO, rA, rB

	// loads and stores
	ShapeLoadStore        // rD, d(rA)
	ShapeLoadStoreIndexed // rD, rA, rB
	ShapeLoadStoreString  // rD, rA, NB
	ShapeCache            // rA, rB

	// branches
	ShapeBranch     // LI
	ShapeBranchCond // BO, BI, BD
	ShapeBranchReg  // BO, BI

	// condition and special registers
	ShapeCRLogic // crbD, crbA, crbB
	ShapeCRField // crfD, crfS or CRM
	ShapeSPR     // rD, SPR
	ShapeSegment // rD, SR or rB

	// floating point
	ShapeFloat               // frD, frA, frB, frC
	ShapeFloatLoadStore      // frD, d(rA)
	ShapeFloatLoadStoreIndex // frD, rA, rB
	ShapeFPSCR               // crfD, FM, IMM

	// opcode space that is recognised but not implemented
	ShapeUnsupported
)

var shapeNames = [...]string{
	"none",
	"D-imm", "D-uimm", "D-A-B", "D-A", "shift-imm", "rot-imm", "rot-reg",
	"cmp-imm", "cmp", "trap-imm", "trap",
	"load/store", "load/store-indexed", "load/store-string", "cache",
	"branch", "branch-cond", "branch-reg",
	"cr-logic", "cr-field", "spr", "segment",
	"float", "float-load/store", "float-load/store-indexed", "fpscr",
	"unsupported",
}

func (s Shape) String() string {
	if int(s) < len(shapeNames) {
		return shapeNames[s]
	}
	return fmt.Sprintf("shape(%d)", int(s))
}

// Flow is the control flow class of an instruction.
type Flow int

// List of valid Flow values.
const (
	FlowNone Flow = iota
	FlowCondBranch
	FlowUncondBranch

	// instructions that always leave the block through an exception vector
	FlowException
)

func (f Flow) String() string {
	switch f {
	case FlowNone:
		return "none"
	case FlowCondBranch:
		return "conditional"
	case FlowUncondBranch:
		return "unconditional"
	case FlowException:
		return "exception"
	}
	return fmt.Sprintf("flow(%d)", int(f))
}

// Entry is a single instruction in the decode tables.
type Entry[H any] struct {
	Name    string
	Handler H
	Shape   Shape
	Flow    Flow

	// supervisor only instruction
	Privileged bool

	// POWER architecture instruction. only available on the 601
	Power bool

	// expected cost of the instruction in cycles. branches are zero and
	// instructions that serialise execution are two
	Cycles int
}

func (e *Entry[H]) String() string {
	return e.Name
}

// EndsBlock returns true if the instruction alters the flow of control.
func (e *Entry[H]) EndsBlock() bool {
	return e.Flow != FlowNone
}
