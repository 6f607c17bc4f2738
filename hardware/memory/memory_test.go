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

package memory_test

import (
	"testing"

	"github.com/jetsetilly/gopherppc/curated"
	"github.com/jetsetilly/gopherppc/hardware/memory"
	"github.com/jetsetilly/gopherppc/test"
)

type testDevice struct {
	reg    uint32
	writes int
}

func (dev *testDevice) Label() string {
	return "test device"
}

func (dev *testDevice) Read(offset uint32, size int) (uint64, bool) {
	if offset != 0 || size != 4 {
		return 0, false
	}
	return uint64(dev.reg), true
}

func (dev *testDevice) Write(offset uint32, size int, value uint64) bool {
	if offset != 0 || size != 4 {
		return false
	}
	dev.reg = uint32(value)
	dev.writes++
	return true
}

func newTestMap(t *testing.T) (*memory.Map, *testDevice) {
	t.Helper()
	mp := memory.NewMap()
	test.DemandSuccess(t, mp.AddRAM("RAM", 0x0, 0x10000))
	test.DemandSuccess(t, mp.AddROM("ROM", 0xfff00000, []byte{0x48, 0x00, 0x00, 0x00, 0x60, 0x00, 0x00, 0x00}))
	dev := &testDevice{}
	test.DemandSuccess(t, mp.AddDevice(0x80000000, 0x1000, dev))
	return mp, dev
}

func TestBigEndian(t *testing.T) {
	mp, _ := newTestMap(t)

	test.ExpectSuccess(t, mp.Write32(0x100, 0x11223344))
	b, err := mp.Read8(0x100)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, b, 0x11)

	h, err := mp.Read16(0x102)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, h, 0x3344)

	test.ExpectSuccess(t, mp.Write64(0x200, 0x0102030405060708))
	w, err := mp.Read32(0x204)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, w, 0x05060708)

	d, err := mp.Read64(0x200)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, d, 0x0102030405060708)

	test.ExpectSuccess(t, mp.Write16(0x300, 0xbeef))
	test.ExpectSuccess(t, mp.Write8(0x302, 0x7f))
	w, _ = mp.Read32(0x300)
	test.ExpectEquality(t, w, 0xbeef7f00)
}

func TestUnmappedAndReadOnly(t *testing.T) {
	mp, _ := newTestMap(t)

	_, err := mp.Read32(0x40000000)
	test.ExpectSuccess(t, curated.Is(err, memory.UnmappedAddress))

	// access straddling the end of a region
	_, err = mp.Read32(0xfffe)
	test.ExpectSuccess(t, curated.Is(err, memory.UnmappedAddress))

	err = mp.Write32(0xfff00000, 0)
	test.ExpectSuccess(t, curated.Is(err, memory.ReadOnly))

	// but ROM can be loaded and poked
	test.ExpectSuccess(t, mp.Poke(0xfff00000, 0x4c))
	b, err := mp.Peek(0xfff00000)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, b, 0x4c)
}

func TestDevice(t *testing.T) {
	mp, dev := newTestMap(t)

	test.ExpectSuccess(t, mp.Write32(0x80000000, 0xcafe))
	test.ExpectEquality(t, dev.writes, 1)
	v, err := mp.Read32(0x80000000)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, 0xcafe)

	_, err = mp.Read8(0x80000001)
	test.ExpectSuccess(t, curated.Is(err, memory.DeviceFault))

	_, err = mp.TranslateForExecution(0x80000000)
	test.ExpectSuccess(t, curated.Is(err, memory.NotExecutable))
}

func TestOverlap(t *testing.T) {
	mp, _ := newTestMap(t)
	err := mp.AddRAM("extra", 0x8000, 0x10000)
	test.ExpectSuccess(t, curated.Is(err, memory.Overlap))
}

func TestRegionLimits(t *testing.T) {
	mp := memory.NewMap()

	// a region ending on the last byte of the address space is allowed
	test.ExpectSuccess(t, mp.AddROM("top", 0xfffffffc, []byte{1, 2, 3, 4}))
	v, err := mp.Read32(0xfffffffc)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint32(0x01020304))

	// but not one that runs past it
	err = mp.AddROM("wrap", 0xfffff000, make([]byte, 0x2000))
	test.ExpectSuccess(t, curated.Is(err, memory.BadRegion))
	err = mp.AddRAM("wrap", 0x80000000, 0x80000001)
	test.ExpectSuccess(t, curated.Is(err, memory.BadRegion))

	// empty regions
	err = mp.AddRAM("empty", 0x1000, 0)
	test.ExpectSuccess(t, curated.Is(err, memory.BadRegion))
	err = mp.AddROM("empty", 0x1000, nil)
	test.ExpectSuccess(t, curated.Is(err, memory.BadRegion))

	test.ExpectEquality(t, len(mp.Regions()), 1)
}

func TestTranslateForExecution(t *testing.T) {
	mp, _ := newTestMap(t)
	test.ExpectSuccess(t, mp.Write32(0x1ffc, 0x38600001))
	test.ExpectSuccess(t, mp.Write32(0x2000, 0x38800002))

	f, err := mp.TranslateForExecution(0x1ffc)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, f.Base, 0x1000)
	test.ExpectEquality(t, f.Word(0xffc), 0x38600001)
	test.ExpectSuccess(t, f.Contains(0xffc))
	test.ExpectFailure(t, f.Contains(0x1000))

	f, err = mp.TranslateForExecution(0x2000)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, f.Word(0), 0x38800002)
	test.ExpectEquality(t, mp.Translations(), 2)

	// short ROM page
	f, err = mp.TranslateForExecution(0xfff00004)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, f.Word(4), 0x60000000)
	test.ExpectFailure(t, f.Contains(8))

	mp.ResetTranslations()
	test.ExpectEquality(t, mp.Translations(), 0)
}
