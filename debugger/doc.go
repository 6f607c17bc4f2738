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

// Package debugger implements a line oriented monitor for the PowerPC CPU.
// Commands are read from a terminal.Terminal implementation and can also be
// run from a script with the SCRIPT command.
//
// Execution started by RUN, UNTIL or STEP can be interrupted with CTRL-C.
// The interrupt takes effect at the next basic block boundary.
package debugger
