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

package digest

import (
	"bytes"
	"crypto/sha1"
	"encoding/binary"
	"fmt"

	"github.com/jetsetilly/gopherppc/hardware/ppc"
)

// State is an implementation of the Digest interface for the architectural
// state of the CPU.
type State struct {
	digest [sha1.Size]byte
	buf    bytes.Buffer
	count  int
}

// NewState is the preferred method of initialisation for the State type.
func NewState() *State {
	return &State{}
}

// Hash implements the Digest interface.
func (dig *State) Hash() string {
	return fmt.Sprintf("%x", dig.digest)
}

// ResetDigest implements the Digest interface.
func (dig *State) ResetDigest() {
	dig.digest = [sha1.Size]byte{}
	dig.count = 0
}

// Updates returns the number of calls to Update() since the last reset.
func (dig *State) Updates() int {
	return dig.count
}

// Update the hash with the state.
func (dig *State) Update(st *ppc.State) {
	dig.buf.Reset()
	dig.buf.Write(dig.digest[:])

	// the State type contains only fixed size fields so binary.Write() will
	// not fail
	_ = binary.Write(&dig.buf, binary.BigEndian, st)

	dig.digest = sha1.Sum(dig.buf.Bytes())
	dig.count++
}
