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

// Package ppc emulates a 32-bit PowerPC CPU. Instructions are decoded with the
// tables in the decode package and executed in place by a basic block
// interpreter. The predecode package provides an alternative execution
// strategy that uses the same decode tables.
//
// Execution is organised into basic blocks. A basic block is a run of
// sequential instructions that ends with an instruction that changes the flow
// of control (a branch, a system call or a return from interrupt). The
// timebase is credited with the number of retired instructions at the end of
// every block and the instruction fetch page is only translated again if the
// next block is in a different 4KiB page or if the block runs over the end
// of a page.
//
// Faults (alignment, data access, privileged instructions, traps, etc.) are
// recoverable. The instruction that detects the fault sets up the
// architectural exception and the run loop restarts at the exception vector.
// Only illegal opcodes and unsupported encodings stop execution, in which
// case the error is returned from Run(), RunUntil() or Step().
package ppc
