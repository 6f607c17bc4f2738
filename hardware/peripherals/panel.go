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

package peripherals

import (
	"io"
	"sync/atomic"

	"github.com/jetsetilly/gopherppc/logger"
)

// List of Panel register offsets. Registers are 32 bits wide but accesses of
// any size are accepted.
const (
	// reads as 1 while the machine is powered. writing zero turns the power
	// off
	PanelPower = 0x00

	// the low byte of a write is sent to the console. reads as zero
	PanelConsole = 0x04

	// the number of bytes written to the console
	PanelConsoleCount = 0x08
)

// PanelSize is the size of the memory area required by the Panel.
const PanelSize = 0x100

// Panel is the machine's control panel. It allows a program to power off the
// machine and to write to a console.
type Panel struct {
	power   *atomic.Bool
	console io.Writer
	count   uint32
}

// NewPanel is the preferred method of initialisation for the Panel type. The
// console writer can be nil, in which case console output is discarded.
func NewPanel(power *atomic.Bool, console io.Writer) *Panel {
	if console == nil {
		console = io.Discard
	}
	return &Panel{
		power:   power,
		console: console,
	}
}

// Label implements the memory.Device interface.
func (pan *Panel) Label() string {
	return "panel"
}

// Read implements the memory.Device interface.
func (pan *Panel) Read(offset uint32, size int) (uint64, bool) {
	switch offset &^ 3 {
	case PanelPower:
		if pan.power.Load() {
			return 1, true
		}
		return 0, true
	case PanelConsole:
		return 0, true
	case PanelConsoleCount:
		return uint64(pan.count), true
	}
	return 0, false
}

// Write implements the memory.Device interface.
func (pan *Panel) Write(offset uint32, size int, value uint64) bool {
	switch offset &^ 3 {
	case PanelPower:
		if value == 0 {
			logger.Log(logger.Allow, "panel", "power off")
			pan.power.Store(false)
		}
		return true
	case PanelConsole:
		pan.count++
		pan.console.Write([]byte{byte(value)})
		return true
	case PanelConsoleCount:
		return true
	}
	return false
}
