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

package hardware_test

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/gopherppc/hardware"
	"github.com/jetsetilly/gopherppc/hardware/ppc"
	"github.com/jetsetilly/gopherppc/hardware/preferences"
	"github.com/jetsetilly/gopherppc/test"
)

func writeImage(t *testing.T, code ...uint32) string {
	t.Helper()

	// code is placed at the reset vector
	data := make([]byte, 0x100+len(code)*4)
	for i, op := range code {
		binary.BigEndian.PutUint32(data[0x100+i*4:], op)
	}

	fn := filepath.Join(t.TempDir(), "image.bin")
	test.DemandSuccess(t, os.WriteFile(fn, data, 0o644))
	return fn
}

func TestMachine(t *testing.T) {
	console := &test.CompareWriter{}
	m, err := hardware.NewMachine(preferences.NewDefaultPPCPreferences(), 0x100000, console)
	test.DemandSuccess(t, err)

	fn := writeImage(t,
		15<<26|5<<21|0xf000,  // lis r5,0xf000
		14<<26|3<<21|'O',     // li r3,'O'
		36<<26|3<<21|5<<16|4, // stw r3,4(r5)
		14<<26|3<<21|'K',     // li r3,'K'
		36<<26|3<<21|5<<16|4, // stw r3,4(r5)
		14<<26|3<<21,         // li r3,0
		36<<26|3<<21|5<<16,   // stw r3,0(r5)
		18<<26,               // b .
	)
	test.DemandSuccess(t, m.AttachImage(fn, hardware.ROMOrigin))
	test.ExpectEquality(t, m.CPU.State().PC, uint32(ppc.ResetVector))

	test.ExpectSuccess(t, m.Run())
	test.ExpectSuccess(t, console.Compare("OK"))
	test.ExpectEquality(t, m.CPU.Power.Load(), false)
	test.ExpectEquality(t, m.CPU.State().PC, uint32(ppc.ResetVector+0x1c))

	// ROM cannot be written to by the program but the image is still there
	// after a reset
	m.Reset()
	test.ExpectEquality(t, m.CPU.Power.Load(), true)
	v, err := m.Mem.Read32(ppc.ResetVector)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint32(15<<26|5<<21|0xf000))
}

func TestConsoleTail(t *testing.T) {
	console, err := test.NewRingWriter(4)
	test.DemandSuccess(t, err)

	m, err := hardware.NewMachine(preferences.NewDefaultPPCPreferences(), 0x100000, console)
	test.DemandSuccess(t, err)

	fn := writeImage(t,
		15<<26|5<<21|0xf000,       // lis r5,0xf000
		14<<26|3<<21|'a',          // li r3,'a'
		36<<26|3<<21|5<<16|4,      // stw r3,4(r5)
		14<<26|3<<21|3<<16|1,      // addi r3,r3,1
		11<<26|3<<16|'z'+1,        // cmpi cr0,r3,'z'+1
		16<<26|4<<21|2<<16|0xfff4, // bne -12
		14<<26|3<<21,              // li r3,0
		36<<26|3<<21|5<<16,        // stw r3,0(r5)
		18<<26,                    // b .
	)
	test.DemandSuccess(t, m.AttachImage(fn, hardware.ROMOrigin))
	test.ExpectSuccess(t, m.Run())

	// only the end of the alphabet is kept
	test.ExpectEquality(t, console.String(), "wxyz")
	test.ExpectEquality(t, m.CPU.Power.Load(), false)
}

func TestImageInRAM(t *testing.T) {
	m, err := hardware.NewMachine(preferences.NewDefaultPPCPreferences(), 0x10000, nil)
	test.DemandSuccess(t, err)

	fn := writeImage(t, 0x12345678)
	test.DemandSuccess(t, m.AttachImage(fn, 0x1000))

	v, err := m.Mem.Read32(0x1100)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint32(0x12345678))

	// image overlaps the panel
	test.ExpectFailure(t, m.AttachImage(fn, hardware.PanelOrigin))

	// image runs past the top of the address space
	test.ExpectFailure(t, m.AttachImage(fn, 0xffffff80))
	test.ExpectFailure(t, m.AttachImage(filepath.Join(t.TempDir(), "missing.bin"), 0))

	_, err = hardware.NewMachine(preferences.NewDefaultPPCPreferences(), 0, nil)
	test.ExpectFailure(t, err)
}
