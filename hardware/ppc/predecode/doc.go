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

// Package predecode is an alternative execution strategy for the PowerPC
// CPU. A run of instructions is compiled into an array of records, each
// holding a reference to the operation that implements the instruction and
// the operand fields already extracted from the instruction word. The
// records are then executed by threaded dispatch: every operation returns
// the index of the next record to execute.
//
// Compilation stops after the first instruction that alters the flow of
// control. A terminal exit record always follows the last compiled
// instruction and reports the address of the instruction after the block.
// Conditional branches are specialised when they are compiled so that the
// branch options field is not examined during execution. A taken branch to
// an address inside the block continues with the record at that address,
// which means that a short loop runs entirely inside the cache.
//
// Only a subset of the instruction set is supported. An instruction that
// cannot be compiled is a fatal error for this strategy. Exceptions raised
// while executing the records are taken by the CPU in the normal way and
// execution leaves the cache at the exception vector.
package predecode
