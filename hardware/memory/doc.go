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

// Package memory implements the physical memory map seen by the CPU. The map
// is a list of regions, each one of RAM, ROM or a memory mapped device.
//
// The Map type satisfies the translation interface required by the ppc
// package. The page table walk of a real MMU is not emulated and translation
// is the identity mapping, whether or not translation is enabled in the
// machine state register.
//
// Instruction fetch goes through TranslateForExecution(), which returns a
// Fetch value for the 4KiB page containing the address. The CPU fetches
// instructions from the Fetch until it leaves the page, at which point it
// must translate again. The number of translations is counted and can be
// retrieved with Translations().
//
// Data accesses are big-endian. An access must lie entirely within a single
// region.
package memory
