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

package memory

import "fmt"

// Area is the type of memory in a region.
type Area int

func (a Area) String() string {
	switch a {
	case RAM:
		return "RAM"
	case ROM:
		return "ROM"
	case MMIO:
		return "MMIO"
	}
	return "undefined"
}

// List of valid Area values.
const (
	Undefined Area = iota
	RAM
	ROM
	MMIO
)

// Page size of the fetch fast path.
const (
	PageSize = 4096
	PageMask = PageSize - 1
)

// Device is implemented by memory mapped peripherals. The address is the
// offset from the origin of the region. Size is the width of the access in
// bytes. Returning false indicates that the device does not respond to the
// access.
type Device interface {
	Label() string
	Read(offset uint32, size int) (uint64, bool)
	Write(offset uint32, size int, value uint64) bool
}

// Region is a contiguous area of the physical address space.
type Region struct {
	Label  string
	Area   Area
	Origin uint32
	Memtop uint32

	data   []byte
	device Device
}

func (r *Region) String() string {
	return fmt.Sprintf("%08x -> %08x\t%s (%s)", r.Origin, r.Memtop, r.Label, r.Area)
}

// Contains returns true if the address is inside the region.
func (r *Region) Contains(addr uint32) bool {
	return addr >= r.Origin && addr <= r.Memtop
}

// contains the entire access of size bytes
func (r *Region) containsAccess(addr uint32, size int) bool {
	end := uint64(addr) + uint64(size) - 1
	return r.Contains(addr) && end <= uint64(r.Memtop)
}
