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

//go:build !windows

package colorterm

import (
	"bytes"
	"io"
	"unicode"
	"unicode/utf8"

	"github.com/jetsetilly/gopherppc/curated"
	"github.com/jetsetilly/gopherppc/debugger/terminal"
	"github.com/jetsetilly/gopherppc/debugger/terminal/colorterm/ansi"
	"github.com/jetsetilly/gopherppc/debugger/terminal/colorterm/easyterm"
)

// TermRead implements the terminal.Input interface.
func (ct *ColorTerminal) TermRead(input []byte, prompt terminal.Prompt, events *terminal.ReadEvents) (int, error) {
	if ct.silenced {
		return 0, nil
	}

	// er is used to store encoded runes
	er := make([]byte, utf8.UTFMax)

	n := 0
	cursor := 0
	history := len(ct.commandHistory)

	// the latest input is kept while we scroll through history so the user
	// can return to it
	buffInput := make([]byte, cap(input))
	buffN := 0

	// on each iteration the cursor position is stored, the line is redrawn
	// and the cursor position is restored
	p := prompt.String()
	ct.Print("\r%s", ansi.CursorMove(len(p)))

	if ct.tabCompletion != nil {
		ct.tabCompletion.Reset()
	}

	for {
		ct.TermPrint(ansi.CursorStore)
		ct.Print("%s\r%s%s%s", ansi.ClearLine, ansi.PenStyles["bold"], p, ansi.NormalPen)
		ct.Print("%s", string(input[:n]))
		ct.TermPrint(ansi.CursorRestore)

		var rr readRune

		select {
		case <-events.IntEvents:
			ct.Print("\n")
			return 0, curated.Errorf(terminal.UserInterrupt)

		case rr = <-ct.reader:
		}

		if rr.err != nil {
			if rr.err == io.EOF {
				return 0, curated.Errorf(terminal.UserQuit)
			}
			return 0, rr.err
		}

		switch r := rr.r; r {
		case easyterm.KeyTab:
			if ct.tabCompletion != nil {
				s := ct.tabCompletion.Complete(string(input[:cursor]))

				// the difference in the length of the new input and the old
				// input. the remainder of the input is appended to the
				// completed string
				d := len(s) - cursor
				s += string(input[cursor:n])
				if len(s) <= len(input) {
					copy(input, []byte(s))
					ct.TermPrint(ansi.CursorMove(d))
					cursor += d
					n += d
				}
			}
			continue

		case easyterm.KeyInterrupt:
			ct.Print("\n")
			return 0, curated.Errorf(terminal.UserInterrupt)

		case easyterm.KeyEndOfInput:
			// ctrl-d only quits on an empty line
			if n == 0 {
				ct.Print("\n")
				return 0, curated.Errorf(terminal.UserQuit)
			}

		case easyterm.KeyCarriageReturn, '\n':
			// add to history if the input is not the same as the last entry
			if n > 0 {
				if len(ct.commandHistory) == 0 || !bytes.Equal(ct.commandHistory[len(ct.commandHistory)-1], input[:n]) {
					nh := make([]byte, n)
					copy(nh, input[:n])
					ct.commandHistory = append(ct.commandHistory, nh)
				}
			}
			ct.Print("\n")
			return n, nil

		case easyterm.KeyEsc:
			rr = <-ct.reader
			if rr.err != nil {
				return 0, rr.err
			}
			if rr.r != easyterm.EscCursor {
				continue
			}
			rr = <-ct.reader
			if rr.err != nil {
				return 0, rr.err
			}

			switch rr.r {
			case easyterm.CursorUp:
				if history > 0 {
					// keep the current input if we're at the end of the
					// history list
					if history == len(ct.commandHistory) {
						copy(buffInput, input[:n])
						buffN = n
					}
					history--
					n = copy(input, ct.commandHistory[history])
					ct.TermPrint(ansi.CursorMove(n - cursor))
					cursor = n
				}

			case easyterm.CursorDown:
				if history < len(ct.commandHistory)-1 {
					history++
					n = copy(input, ct.commandHistory[history])
					ct.TermPrint(ansi.CursorMove(n - cursor))
					cursor = n
				} else if history == len(ct.commandHistory)-1 {
					history++
					n = copy(input, buffInput[:buffN])
					ct.TermPrint(ansi.CursorMove(n - cursor))
					cursor = n
				}

			case easyterm.CursorForward:
				if cursor < n {
					ct.TermPrint(ansi.CursorForwardOne)
					cursor++
				}

			case easyterm.CursorBackward:
				if cursor > 0 {
					ct.TermPrint(ansi.CursorBackwardOne)
					cursor--
				}

			case easyterm.EscHome:
				ct.TermPrint(ansi.CursorMove(-cursor))
				cursor = 0

			case easyterm.EscEnd:
				ct.TermPrint(ansi.CursorMove(n - cursor))
				cursor = n

			case easyterm.EscDelete:
				// delete key sends a trailing tilde
				<-ct.reader
				if cursor < n {
					copy(input[cursor:], input[cursor+1:n])
					n--
					history = len(ct.commandHistory)
				}
			}

		case easyterm.KeyBackspace, '\b':
			if cursor > 0 {
				copy(input[cursor-1:], input[cursor:n])
				ct.TermPrint(ansi.CursorBackwardOne)
				cursor--
				n--
				history = len(ct.commandHistory)
			}

		default:
			if unicode.IsPrint(r) {
				m := utf8.EncodeRune(er, r)
				if n+m > len(input) {
					continue
				}
				copy(input[cursor+m:], input[cursor:n])
				copy(input[cursor:], er[:m])
				ct.TermPrint(ansi.CursorMove(1))
				cursor += m
				n += m
				history = len(ct.commandHistory)
			}
		}

		if ct.tabCompletion != nil {
			ct.tabCompletion.Reset()
		}
	}
}
