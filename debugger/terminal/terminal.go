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

import (
	"os"
)

// Input is implemented by terminals that accept monitor commands.
type Input interface {
	// TermRead fills the buffer with one line of input and returns the
	// number of bytes written. Implementations that block should service the
	// channels in ReadEvents while waiting.
	TermRead(buffer []byte, prompt Prompt, events *ReadEvents) (int, error)

	// IsInteractive is false when input is not being typed by a person, for
	// example when stdin is a pipe.
	IsInteractive() bool
}

// Sentinal error patterns returned by TermRead().
const (
	UserInterrupt = "terminal: interrupted"
	UserQuit      = "terminal: quit"
)

// ReadEvents are the channels a terminal watches while waiting for input.
type ReadEvents struct {
	// os.Interrupt signals
	IntEvents chan os.Signal
}

// Output is implemented by terminals that display monitor output.
type Output interface {
	TermPrintLine(Style, string)
}

// Terminal is the full interface used by the monitor.
type Terminal interface {
	Input
	Output

	// Initialise prepares the terminal for use. CleanUp restores the state it
	// was in before Initialise.
	Initialise() error
	CleanUp()

	// RegisterTabCompletion may be ignored by the implementation.
	RegisterTabCompletion(TabCompletion)

	// Silence suppresses every style of output except StyleError.
	Silence(silenced bool)
}

// TabCompletion completes partial command names. See the commandline
// package.
type TabCompletion interface {
	Complete(input string) string
	Reset()
}
