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

import (
	"encoding/binary"
	"sort"
	"strings"

	"github.com/jetsetilly/gopherppc/curated"
	"github.com/jetsetilly/gopherppc/logger"
)

// Sentinal error patterns returned by memory accesses.
const (
	UnmappedAddress = "memory: unmapped address (%08x)"
	ReadOnly        = "memory: write to read-only memory (%08x)"
	NotExecutable   = "memory: address is not executable (%08x)"
	DeviceFault     = "memory: %s: no response at %08x"
	Overlap         = "memory: region %s overlaps %s"
	BadRegion       = "memory: region %s at %08x with size %#x does not fit the address space"
)

// Fetch is a view of a single page of executable memory. Instructions are
// fetched from the page with Word().
type Fetch struct {
	// the effective address of the first byte of the page
	Base uint32

	page []byte
}

// Word returns the big-endian instruction word at the offset in the page.
func (f Fetch) Word(offset uint32) uint32 {
	return binary.BigEndian.Uint32(f.page[offset:])
}

// Contains returns true if the offset can be fetched from the page.
func (f Fetch) Contains(offset uint32) bool {
	return int(offset)+4 <= len(f.page)
}

// Map is the physical memory map.
type Map struct {
	regions []*Region

	// the most recently accessed region. most accesses hit the same region as
	// the previous access
	last *Region

	translations int
}

// NewMap is the preferred method of initialisation for the Map type.
func NewMap() *Map {
	return &Map{}
}

func (mp *Map) String() string {
	s := strings.Builder{}
	for _, r := range mp.regions {
		s.WriteString(r.String())
		s.WriteString("\n")
	}
	return s.String()
}

// Regions returns the list of regions in address order.
func (mp *Map) Regions() []*Region {
	return mp.regions
}

// regions must be at least one byte and must not run past the top of the
// 32 bit address space
func fits(label string, origin uint32, size uint64) error {
	if size == 0 || uint64(origin)+size > 1<<32 {
		return curated.Errorf(BadRegion, label, origin, size)
	}
	return nil
}

func (mp *Map) add(r *Region) error {
	for _, o := range mp.regions {
		if r.Origin <= o.Memtop && o.Origin <= r.Memtop {
			return curated.Errorf(Overlap, r.Label, o.Label)
		}
	}
	mp.regions = append(mp.regions, r)
	sort.Slice(mp.regions, func(i, j int) bool {
		return mp.regions[i].Origin < mp.regions[j].Origin
	})
	logger.Logf(logger.Allow, "memory", "%s", r)
	return nil
}

// AddRAM adds a region of zeroed read/write memory.
func (mp *Map) AddRAM(label string, origin uint32, size uint32) error {
	if err := fits(label, origin, uint64(size)); err != nil {
		return err
	}
	return mp.add(&Region{
		Label:  label,
		Area:   RAM,
		Origin: origin,
		Memtop: origin + size - 1,
		data:   make([]byte, size),
	})
}

// AddROM adds a region of read-only memory initialised with data.
func (mp *Map) AddROM(label string, origin uint32, data []byte) error {
	if err := fits(label, origin, uint64(len(data))); err != nil {
		return err
	}
	d := make([]byte, len(data))
	copy(d, data)
	return mp.add(&Region{
		Label:  label,
		Area:   ROM,
		Origin: origin,
		Memtop: origin + uint32(len(data)) - 1,
		data:   d,
	})
}

// AddDevice adds a memory mapped device.
func (mp *Map) AddDevice(origin uint32, size uint32, dev Device) error {
	if err := fits(dev.Label(), origin, uint64(size)); err != nil {
		return err
	}
	return mp.add(&Region{
		Label:  dev.Label(),
		Area:   MMIO,
		Origin: origin,
		Memtop: origin + size - 1,
		device: dev,
	})
}

// FindRegion returns the region containing the address. Returns nil if the
// address is not mapped.
func (mp *Map) FindRegion(addr uint32) *Region {
	if mp.last != nil && mp.last.Contains(addr) {
		return mp.last
	}

	i := sort.Search(len(mp.regions), func(i int) bool {
		return mp.regions[i].Memtop >= addr
	})
	if i < len(mp.regions) && mp.regions[i].Contains(addr) {
		mp.last = mp.regions[i]
		return mp.last
	}

	return nil
}

// Translations returns the number of calls to TranslateForExecution() since
// the last call to ResetTranslations().
func (mp *Map) Translations() int {
	return mp.translations
}

// ResetTranslations sets the translation count to zero.
func (mp *Map) ResetTranslations() {
	mp.translations = 0
}

// TranslateForExecution returns the page containing the effective address.
// Only RAM and ROM are executable.
func (mp *Map) TranslateForExecution(ea uint32) (Fetch, error) {
	mp.translations++

	r := mp.FindRegion(ea)
	if r == nil {
		return Fetch{}, curated.Errorf(UnmappedAddress, ea)
	}
	if r.Area == MMIO {
		return Fetch{}, curated.Errorf(NotExecutable, ea)
	}

	// offsets into the Fetch are relative to the page base so the page must
	// not begin before the region
	base := ea &^ PageMask
	if base < r.Origin {
		return Fetch{}, curated.Errorf(NotExecutable, ea)
	}

	end := uint64(base) + PageSize
	if end > uint64(r.Memtop)+1 {
		end = uint64(r.Memtop) + 1
	}

	return Fetch{
		Base: base,
		page: r.data[base-r.Origin : uint32(end-uint64(r.Origin))],
	}, nil
}
