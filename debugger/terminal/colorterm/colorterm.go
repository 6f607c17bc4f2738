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

// Package colorterm implements the Terminal interface for the monitor. It
// supports colour output, command history and tab completion.
package colorterm

import (
	"bufio"
	"io"
	"os"

	"github.com/jetsetilly/gopherppc/debugger/terminal"
	"github.com/jetsetilly/gopherppc/debugger/terminal/colorterm/easyterm"
)

// ColorTerminal implements the terminal.Terminal interface using ANSI escape
// sequences for colour and cursor movement.
type ColorTerminal struct {
	easyterm.EasyTerm

	reader         chan readRune
	commandHistory [][]byte
	tabCompletion  terminal.TabCompletion

	silenced bool
}

type readRune struct {
	r   rune
	err error
}

// runes are read in a separate goroutine so that TermRead() can service the
// ReadEvents channels while waiting for input
func initRuneReader(input io.Reader) chan readRune {
	ch := make(chan readRune)
	go func() {
		b := bufio.NewReader(input)
		for {
			r, _, err := b.ReadRune()
			ch <- readRune{r: r, err: err}
			if err != nil {
				return
			}
		}
	}()
	return ch
}

// Initialise perfoms any setting up required for the terminal.
func (ct *ColorTerminal) Initialise() error {
	err := ct.EasyTerm.Initialise(os.Stdin, os.Stdout)
	if err != nil {
		return err
	}

	ct.commandHistory = make([][]byte, 0)
	ct.reader = initRuneReader(os.Stdin)
	ct.CBreakMode()

	return nil
}

// CleanUp perfoms any cleaning up required for the terminal.
func (ct *ColorTerminal) CleanUp() {
	ct.EasyTerm.TermPrint("\r")
	_ = ct.Flush()
	ct.EasyTerm.CleanUp()
}

// RegisterTabCompletion adds an implementation of TabCompletion to the
// ColorTerminal.
func (ct *ColorTerminal) RegisterTabCompletion(tc terminal.TabCompletion) {
	ct.tabCompletion = tc
}

// IsInteractive implements the terminal.Input interface.
func (ct *ColorTerminal) IsInteractive() bool {
	return true
}

// Silence implements the terminal.Terminal interface.
func (ct *ColorTerminal) Silence(silenced bool) {
	ct.silenced = silenced
}
