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

// Table is a secondary opcode table. The key is masked before lookup so that
// a lookup can never fall outside the table.
type Table[H any] interface {
	// Lookup returns nil if the key has no entry
	Lookup(key uint32) *Entry[H]

	// Mask is applied to the instruction word to form the key
	Mask() uint32

	// Len is the number of keys with an entry
	Len() int

	// Range calls f for every key with an entry in key order
	Range(f func(key uint32, e *Entry[H]))

	// set returns false if the key already has an entry
	set(key uint32, e *Entry[H]) bool
}

// dense tables are used for small secondary tables or where most keys are
// valid
type dense[H any] struct {
	mask    uint32
	entries []*Entry[H]
	n       int
}

// NewDenseTable returns an array backed table keyed by the lowest bits of the
// instruction word.
func NewDenseTable[H any](bits int) Table[H] {
	return &dense[H]{
		mask:    uint32(1)<<bits - 1,
		entries: make([]*Entry[H], 1<<bits),
	}
}

func (t *dense[H]) Lookup(key uint32) *Entry[H] {
	return t.entries[key&t.mask]
}

func (t *dense[H]) Mask() uint32 {
	return t.mask
}

func (t *dense[H]) Len() int {
	return t.n
}

func (t *dense[H]) Range(f func(key uint32, e *Entry[H])) {
	for k, e := range t.entries {
		if e != nil {
			f(uint32(k), e)
		}
	}
}

func (t *dense[H]) set(key uint32, e *Entry[H]) bool {
	key &= t.mask
	if t.entries[key] != nil {
		return false
	}
	t.entries[key] = e
	t.n++
	return true
}

// sparse tables are used where only a small proportion of keys are valid
type sparse[H any] struct {
	mask    uint32
	entries map[uint32]*Entry[H]
	keys    []uint32
}

// NewSparseTable returns a map backed table keyed by the lowest bits of the
// instruction word.
func NewSparseTable[H any](bits int) Table[H] {
	return &sparse[H]{
		mask:    uint32(1)<<bits - 1,
		entries: make(map[uint32]*Entry[H]),
	}
}

func (t *sparse[H]) Lookup(key uint32) *Entry[H] {
	return t.entries[key&t.mask]
}

func (t *sparse[H]) Mask() uint32 {
	return t.mask
}

func (t *sparse[H]) Len() int {
	return len(t.entries)
}

func (t *sparse[H]) Range(f func(key uint32, e *Entry[H])) {
	for _, k := range t.keys {
		f(k, t.entries[k])
	}
}

func (t *sparse[H]) set(key uint32, e *Entry[H]) bool {
	key &= t.mask
	if _, ok := t.entries[key]; ok {
		return false
	}
	t.entries[key] = e

	// keys are kept sorted for Range()
	i := len(t.keys)
	t.keys = append(t.keys, key)
	for i > 0 && t.keys[i-1] > key {
		t.keys[i] = t.keys[i-1]
		i--
	}
	t.keys[i] = key

	return true
}
