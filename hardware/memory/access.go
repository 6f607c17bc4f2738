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

	"github.com/jetsetilly/gopherppc/curated"
)

// find region for a data access of size bytes
func (mp *Map) mapAccess(addr uint32, size int) (*Region, error) {
	r := mp.FindRegion(addr)
	if r == nil || !r.containsAccess(addr, size) {
		return nil, curated.Errorf(UnmappedAddress, addr)
	}
	return r, nil
}

func (mp *Map) read(addr uint32, size int) (uint64, error) {
	r, err := mp.mapAccess(addr, size)
	if err != nil {
		return 0, err
	}

	if r.Area == MMIO {
		v, ok := r.device.Read(addr-r.Origin, size)
		if !ok {
			return 0, curated.Errorf(DeviceFault, r.Label, addr)
		}
		return v, nil
	}

	d := r.data[addr-r.Origin:]
	switch size {
	case 1:
		return uint64(d[0]), nil
	case 2:
		return uint64(binary.BigEndian.Uint16(d)), nil
	case 4:
		return uint64(binary.BigEndian.Uint32(d)), nil
	}
	return binary.BigEndian.Uint64(d), nil
}

func (mp *Map) write(addr uint32, size int, v uint64) error {
	r, err := mp.mapAccess(addr, size)
	if err != nil {
		return err
	}

	switch r.Area {
	case ROM:
		return curated.Errorf(ReadOnly, addr)
	case MMIO:
		if !r.device.Write(addr-r.Origin, size, v) {
			return curated.Errorf(DeviceFault, r.Label, addr)
		}
		return nil
	}

	d := r.data[addr-r.Origin:]
	switch size {
	case 1:
		d[0] = uint8(v)
	case 2:
		binary.BigEndian.PutUint16(d, uint16(v))
	case 4:
		binary.BigEndian.PutUint32(d, uint32(v))
	default:
		binary.BigEndian.PutUint64(d, v)
	}
	return nil
}

// Read8 reads a byte from the address.
func (mp *Map) Read8(addr uint32) (uint8, error) {
	v, err := mp.read(addr, 1)
	return uint8(v), err
}

// Read16 reads a big-endian half-word from the address.
func (mp *Map) Read16(addr uint32) (uint16, error) {
	v, err := mp.read(addr, 2)
	return uint16(v), err
}

// Read32 reads a big-endian word from the address.
func (mp *Map) Read32(addr uint32) (uint32, error) {
	v, err := mp.read(addr, 4)
	return uint32(v), err
}

// Read64 reads a big-endian double-word from the address.
func (mp *Map) Read64(addr uint32) (uint64, error) {
	return mp.read(addr, 8)
}

// Write8 writes a byte to the address.
func (mp *Map) Write8(addr uint32, v uint8) error {
	return mp.write(addr, 1, uint64(v))
}

// Write16 writes a big-endian half-word to the address.
func (mp *Map) Write16(addr uint32, v uint16) error {
	return mp.write(addr, 2, uint64(v))
}

// Write32 writes a big-endian word to the address.
func (mp *Map) Write32(addr uint32, v uint32) error {
	return mp.write(addr, 4, uint64(v))
}

// Write64 writes a big-endian double-word to the address.
func (mp *Map) Write64(addr uint32, v uint64) error {
	return mp.write(addr, 8, v)
}

// Load copies data into RAM or ROM at the address. Unlike the Write
// functions, ROM can be written to with Load(). Devices cannot be loaded.
func (mp *Map) Load(addr uint32, data []byte) error {
	r, err := mp.mapAccess(addr, len(data))
	if err != nil {
		return err
	}
	if r.Area == MMIO {
		return curated.Errorf(NotExecutable, addr)
	}
	copy(r.data[addr-r.Origin:], data)
	return nil
}

// Peek returns the byte at the address without side effects. Devices are
// never read by Peek().
func (mp *Map) Peek(addr uint32) (uint8, error) {
	r, err := mp.mapAccess(addr, 1)
	if err != nil {
		return 0, err
	}
	if r.Area == MMIO {
		return 0, curated.Errorf(NotExecutable, addr)
	}
	return r.data[addr-r.Origin], nil
}

// Poke writes the byte at the address. ROM can be written to with Poke().
func (mp *Map) Poke(addr uint32, v uint8) error {
	return mp.Load(addr, []byte{v})
}
