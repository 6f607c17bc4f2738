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

// Package hardware is the base package for the PowerPC machine. It brings
// together the CPU, the memory map and the control panel.
//
// The memory map of the machine is:
//
//	00000000 -> RAM
//	f0000000 -> control panel (see peripherals.Panel)
//	fff00000 -> ROM (the default origin for images)
//
// The CPU begins execution at the reset vector, fff00100.
package hardware
