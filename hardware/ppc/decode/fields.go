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

// Bit numbering in the PowerPC documentation is big-endian: bit 0 is the most
// significant bit of the word. The functions below are named after the
// instruction fields.

// RD is the destination register field (bits 6-10). Also used for rS, frD,
// frS, TO and BO.
func RD(opcode uint32) uint32 {
	return (opcode >> 21) & 0x1f
}

// RA is the source register A field (bits 11-15). Also used for frA and BI.
func RA(opcode uint32) uint32 {
	return (opcode >> 16) & 0x1f
}

// RB is the source register B field (bits 16-20). Also used for frB, SH and
// NB.
func RB(opcode uint32) uint32 {
	return (opcode >> 11) & 0x1f
}

// RC is the frC field of A-form floating point instructions (bits 21-25).
// Also used for MB.
func RC(opcode uint32) uint32 {
	return (opcode >> 6) & 0x1f
}

// SIMM is the sign extended 16 bit immediate field.
func SIMM(opcode uint32) uint32 {
	return uint32(int32(int16(opcode)))
}

// UIMM is the zero extended 16 bit immediate field.
func UIMM(opcode uint32) uint32 {
	return opcode & 0xffff
}

// SH is the shift amount of rotate and shift immediate instructions.
func SH(opcode uint32) uint32 {
	return RB(opcode)
}

// MB is the mask begin field of rotate instructions.
func MB(opcode uint32) uint32 {
	return RC(opcode)
}

// ME is the mask end field of rotate instructions (bits 26-30).
func ME(opcode uint32) uint32 {
	return (opcode >> 1) & 0x1f
}

// BO is the branch options field.
func BO(opcode uint32) uint32 {
	return RD(opcode)
}

// BI is the condition register bit tested by a conditional branch.
func BI(opcode uint32) uint32 {
	return RA(opcode)
}

// BD is the sign extended branch displacement of conditional branches.
func BD(opcode uint32) uint32 {
	return uint32(int32(int16(opcode & 0xfffc)))
}

// LI is the sign extended branch displacement of unconditional branches.
func LI(opcode uint32) uint32 {
	return uint32(int32(opcode<<6) >> 6 & ^3)
}

// CRFD is the destination condition register field (bits 6-8).
func CRFD(opcode uint32) uint32 {
	return (opcode >> 23) & 7
}

// CRFS is the source condition register field (bits 11-13).
func CRFS(opcode uint32) uint32 {
	return (opcode >> 18) & 7
}

// CRM is the field mask of mtcrf (bits 12-19).
func CRM(opcode uint32) uint32 {
	return (opcode >> 12) & 0xff
}

// FM is the field mask of mtfsf (bits 7-14).
func FM(opcode uint32) uint32 {
	return (opcode >> 17) & 0xff
}

// SPR is the special purpose register number. The two five bit halves of the
// field are swapped in the instruction encoding.
func SPR(opcode uint32) uint32 {
	return ((opcode >> 16) & 0x1f) | ((opcode >> 6) & 0x3e0)
}

// SR is the segment register field of mtsr and mfsr (bits 12-15).
func SR(opcode uint32) uint32 {
	return (opcode >> 16) & 0xf
}

// Rc is the record bit. When set the result of the instruction updates the
// condition register.
func Rc(opcode uint32) bool {
	return opcode&1 == 1
}

// OE is the overflow-enable bit of XO-form instructions.
func OE(opcode uint32) bool {
	return opcode&0x400 == 0x400
}

// AA is the absolute address bit of branches.
func AA(opcode uint32) bool {
	return opcode&2 == 2
}

// LK is the link bit of branches.
func LK(opcode uint32) bool {
	return opcode&1 == 1
}
