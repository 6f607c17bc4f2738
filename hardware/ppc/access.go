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

// Load reads a byte, half-word or word from the effective address. Half-words
// are sign extended if algebraic is true. If the access fails a data access
// exception is raised and false is returned.
func (c *CPU) Load(ea uint32, size int, algebraic bool) (uint32, bool) {
	var v uint32
	var err error

	switch size {
	case 1:
		var b uint8
		b, err = c.mem.Read8(ea)
		v = uint32(b)
	case 2:
		var h uint16
		h, err = c.mem.Read16(ea)
		if algebraic {
			v = uint32(int32(int16(h)))
		} else {
			v = uint32(h)
		}
	default:
		v, err = c.mem.Read32(ea)
	}

	if err != nil {
		c.dataFault(ea, false, err)
		return 0, false
	}
	return v, true
}

// Store writes the low size bytes of the value to the effective address. If
// the access fails a data access exception is raised and false is returned.
func (c *CPU) Store(ea uint32, size int, v uint32) bool {
	var err error

	switch size {
	case 1:
		err = c.mem.Write8(ea, uint8(v))
	case 2:
		err = c.mem.Write16(ea, uint16(v))
	default:
		err = c.mem.Write32(ea, v)
	}

	if err != nil {
		c.dataFault(ea, true, err)
		return false
	}
	return true
}

func (c *CPU) load64(ea uint32) (uint64, bool) {
	v, err := c.mem.Read64(ea)
	if err != nil {
		c.dataFault(ea, false, err)
		return 0, false
	}
	return v, true
}

func (c *CPU) store64(ea uint32, v uint64) bool {
	if err := c.mem.Write64(ea, v); err != nil {
		c.dataFault(ea, true, err)
		return false
	}
	return true
}
