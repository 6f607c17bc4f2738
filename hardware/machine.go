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

package hardware

import (
	"io"
	"os"

	"github.com/jetsetilly/gopherppc/curated"
	"github.com/jetsetilly/gopherppc/hardware/memory"
	"github.com/jetsetilly/gopherppc/hardware/peripherals"
	"github.com/jetsetilly/gopherppc/hardware/ppc"
	"github.com/jetsetilly/gopherppc/hardware/preferences"
	"github.com/jetsetilly/gopherppc/logger"
)

// Addresses of the fixed regions in the memory map.
const (
	PanelOrigin = 0xf0000000
	ROMOrigin   = 0xfff00000
)

// Machine is the emulated PowerPC machine.
type Machine struct {
	Prefs *preferences.PPCPreferences
	CPU   *ppc.CPU
	Mem   *memory.Map
	Panel *peripherals.Panel

	ramSize uint32
}

// NewMachine creates a new machine with the specified amount of RAM. Output
// written by the program to the control panel's console register is sent to
// the console writer.
func NewMachine(prefs *preferences.PPCPreferences, ramSize uint32, console io.Writer) (*Machine, error) {
	if ramSize == 0 || ramSize > PanelOrigin {
		return nil, curated.Errorf("machine: unsupported RAM size (%d bytes)", ramSize)
	}

	m := &Machine{
		Prefs:   prefs,
		Mem:     memory.NewMap(),
		ramSize: ramSize,
	}

	if err := m.Mem.AddRAM("RAM", 0, ramSize); err != nil {
		return nil, curated.Errorf("machine: %v", err)
	}

	var err error
	m.CPU, err = ppc.NewCPU(m.Mem, prefs)
	if err != nil {
		return nil, curated.Errorf("machine: %v", err)
	}

	m.Panel = peripherals.NewPanel(&m.CPU.Power, console)
	if err := m.Mem.AddDevice(PanelOrigin, peripherals.PanelSize, m.Panel); err != nil {
		return nil, curated.Errorf("machine: %v", err)
	}

	return m, nil
}

// AttachImage loads a raw big-endian binary image at the origin address and
// resets the machine. Images that are loaded into RAM are copied over the
// existing contents. Images outside of RAM are added as ROM.
func (m *Machine) AttachImage(filename string, origin uint32) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return curated.Errorf("machine: %v", err)
	}
	if len(data) == 0 {
		return curated.Errorf("machine: image is empty (%s)", filename)
	}

	if uint64(origin)+uint64(len(data)) <= uint64(m.ramSize) {
		err = m.Mem.Load(origin, data)
	} else {
		err = m.Mem.AddROM("ROM", origin, data)
	}
	if err != nil {
		return curated.Errorf("machine: %v", err)
	}

	logger.Logf(logger.Allow, "machine", "attached %s (%d bytes at %08x)", filename, len(data), origin)

	m.Reset()
	return nil
}

// Reset the CPU and clear the fault log. Memory is not changed.
func (m *Machine) Reset() {
	m.CPU.Reset()
	m.CPU.Faults.Clear()
}

// Run the machine until it is powered off or a fatal error occurs.
func (m *Machine) Run() error {
	return m.CPU.Run()
}
