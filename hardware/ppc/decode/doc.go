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

// Package decode maps 32-bit PowerPC instruction words to table entries.
//
// The primary opcode (the top six bits of the instruction) indexes a 64 entry
// table. An entry in the primary table is either a direct entry for the
// instruction or a group, which is resolved by a secondary Table keyed by a
// narrower field of the instruction word. Secondary tables are dense (array
// backed) or sparse (map backed) and are chosen when the group is created.
// Both implement the Table interface and the Decoder does not distinguish
// between them.
//
// Entries are built once with a Builder and never change. The type of the
// handler is a type parameter so that the package does not depend on the CPU
// implementation. Entries carry the metadata needed by both the in-place
// interpreter and the pre-decode interpreter: the operand shape, the control
// flow class and whether the instruction is privileged.
//
// The record bit (Rc) and the overflow-enable bit (OE) are part of the
// secondary key for most groups but are also available independently with
// the Rc() and OE() functions.
package decode
