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

// RotMask returns the mask used by rotate instructions. Bits mb to me
// (inclusive, bit 0 being the most significant bit) are set. If mb is
// greater than me the mask wraps around from bit 31 to bit 0.
func RotMask(mb, me uint32) uint32 {
	m1 := uint32(0xffffffff) >> (mb & 0x1f)
	m2 := uint32(0xffffffff) << (31 - (me & 0x1f))
	if mb <= me {
		return m1 & m2
	}
	return m1 | m2
}

func rotl(v, n uint32) uint32 {
	n &= 0x1f
	return v<<n | v>>((32-n)&0x1f)
}
