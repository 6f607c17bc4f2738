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

import (
	"github.com/jetsetilly/gopherppc/curated"
)

// PrimaryOpcode returns the top six bits of the instruction word.
func PrimaryOpcode(opcode uint32) uint32 {
	return opcode >> 26
}

// Decoder resolves instruction words to entries.
type Decoder[H any] struct {
	primary [64]*Entry[H]
	groups  [64]Table[H]
}

// Decode returns the entry for the instruction word. An instruction with no
// entry results in an ErrIllegalOpcode error.
func (dec *Decoder[H]) Decode(opcode uint32) (*Entry[H], error) {
	p := opcode >> 26

	if g := dec.groups[p]; g != nil {
		if e := g.Lookup(opcode); e != nil {
			return e, nil
		}
		return nil, curated.Errorf(ErrIllegalOpcode, opcode)
	}

	if e := dec.primary[p]; e != nil {
		return e, nil
	}

	return nil, curated.Errorf(ErrIllegalOpcode, opcode)
}

// Group returns the secondary table for the primary opcode. Returns nil if
// the primary opcode is not a group.
func (dec *Decoder[H]) Group(primary uint32) Table[H] {
	return dec.groups[primary&0x3f]
}

// Primary returns the direct entry for the primary opcode. Returns nil if the
// primary opcode is a group or is illegal.
func (dec *Decoder[H]) Primary(primary uint32) *Entry[H] {
	return dec.primary[primary&0x3f]
}

// Builder creates a Decoder. A Builder should be discarded after Build() has
// been called.
type Builder[H any] struct {
	dec     *Decoder[H]
	dropped []string
	err     error
}

// NewBuilder is the preferred method of initialisation for the Builder type.
func NewBuilder[H any]() *Builder[H] {
	return &Builder[H]{
		dec: &Decoder[H]{},
	}
}

// Primary adds a direct entry for the primary opcode.
func (b *Builder[H]) Primary(primary uint32, e Entry[H]) {
	primary &= 0x3f
	if b.dec.groups[primary] != nil || b.dec.primary[primary] != nil {
		b.drop(e.Name)
		return
	}
	b.dec.primary[primary] = &e
}

// Group makes the primary opcode a group resolved by the secondary table.
func (b *Builder[H]) Group(primary uint32, t Table[H]) {
	primary &= 0x3f
	if b.dec.groups[primary] != nil || b.dec.primary[primary] != nil {
		if b.err == nil {
			b.err = curated.Errorf(ErrDuplicate, "group")
		}
		return
	}
	b.dec.groups[primary] = t
}

// Extended adds an entry to the group for the primary opcode. If the key
// already has an entry then the new entry is dropped and the first entry is
// kept.
func (b *Builder[H]) Extended(primary uint32, key uint32, e Entry[H]) {
	t := b.dec.groups[primary&0x3f]
	if t == nil {
		if b.err == nil {
			b.err = curated.Errorf(ErrNoGroup, primary)
		}
		return
	}
	if !t.set(key, &e) {
		b.drop(e.Name)
	}
}

func (b *Builder[H]) drop(name string) {
	b.dropped = append(b.dropped, name)
}

// Dropped returns the names of the entries that were dropped because the key
// already had an entry.
func (b *Builder[H]) Dropped() []string {
	return b.dropped
}

// Build returns the completed Decoder. The error is set if a group was used
// before it was created or if a group was created twice.
func (b *Builder[H]) Build() (*Decoder[H], error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.dec, nil
}
