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

// Package script runs Lua scripts that control the emulated machine. Scripts
// are run by the monitor's SCRIPT command.
//
// The following functions are available to a script in addition to the Lua
// base library:
//
//	reg(name)            value of named register. floating point registers
//	                     are returned as numbers
//	setreg(name, value)  set named register
//	step([n])            execute n instructions (default 1)
//	rununtil(addr)       execute until the PC equals addr
//	peek(addr)           32 bit word at address
//	poke(addr, value)    write 32 bit word to address
//	cmd(input)           run a monitor command
//	print(...)           write values to the monitor
//
// "until" is a reserved word in Lua so the run-until function is called
// rununtil.
package script
