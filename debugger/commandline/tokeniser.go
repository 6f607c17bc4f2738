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

// Package commandline divides monitor input into tokens and offers tab
// completion of command names.
package commandline

import (
	"fmt"
	"strings"
)

// Tokens represents tokenised input. Tokens are consumed with Get() and can
// be returned with Unget().
type Tokens struct {
	input  string
	tokens []string
	curr   int
}

func (tk *Tokens) String() string {
	return strings.Join(tk.tokens, " ")
}

// Reset begins the token traversal process from the beginning.
func (tk *Tokens) Reset() {
	tk.curr = 0
}

// IsEnd returns true if we're at the end of the token list.
func (tk Tokens) IsEnd() bool {
	return tk.curr >= len(tk.tokens)
}

// Remainder returns the remaining tokens as a string.
func (tk Tokens) Remainder() string {
	return strings.Join(tk.tokens[tk.curr:], " ")
}

// Remaining returns the count of remaining tokens in the token list.
func (tk Tokens) Remaining() int {
	return len(tk.tokens) - tk.curr
}

// Get returns the next token in the list, and a success boolean. If the end
// of the token list has been reached, the function returns false.
func (tk *Tokens) Get() (string, bool) {
	if tk.curr >= len(tk.tokens) {
		return "", false
	}
	tk.curr++
	return tk.tokens[tk.curr-1], true
}

// Unget walks backwards in the token list.
func (tk *Tokens) Unget() {
	if tk.curr > 0 {
		tk.curr--
	}
}

// Peek returns the next token in the list without advancing the list.
func (tk Tokens) Peek() (string, bool) {
	if tk.curr >= len(tk.tokens) {
		return "", false
	}
	return tk.tokens[tk.curr], true
}

// TokeniseInput creates and returns a new Tokens instance. Hexadecimal values
// written with a leading $ or # are normalised to the 0x prefix.
func TokeniseInput(input string) *Tokens {
	tk := &Tokens{
		input:  strings.TrimSpace(input),
		tokens: strings.Fields(input),
	}

	for i, t := range tk.tokens {
		if len(t) > 1 && (t[0] == '$' || t[0] == '#') {
			tk.tokens[i] = fmt.Sprintf("0x%s", t[1:])
		}
	}

	return tk
}

// SplitCommands divides input into separate commands at each semicolon.
// Empty commands are discarded.
func SplitCommands(input string) []string {
	var cmds []string
	for _, c := range strings.Split(input, ";") {
		c = strings.TrimSpace(c)
		if c != "" {
			cmds = append(cmds, c)
		}
	}
	return cmds
}
