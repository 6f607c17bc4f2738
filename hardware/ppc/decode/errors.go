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

// Sentinal error patterns returned by the decoder. The CPU uses the same
// patterns for handlers that recognise the opcode but not the encoding.
const (
	ErrIllegalOpcode       = "decode: illegal opcode: %08x"
	ErrUnsupportedEncoding = "decode: unsupported encoding: %s: %08x"
	ErrDuplicate           = "decode: duplicate entry: %s"
	ErrNoGroup             = "decode: no group for primary opcode %d"
)
