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

package terminal

// Style is used to identify the category of text being sent to the
// Terminal.TermPrintLine() function. The terminal implementation can then
// choose how to display the text.
type Style int

// List of terminal styles.
const (
	// the input line after normalisation. terminals that echo input as it is
	// typed can ignore this style
	StyleEcho Style = iota

	// help text
	StyleHelp

	// response to a command
	StyleFeedback

	// the instruction at the program counter after a step
	StyleCPUStep

	// register and memory dumps
	StyleInstrument

	// entries from the central logger
	StyleLog

	// an error. errors should be displayed even when the terminal has been
	// silenced
	StyleError
)
