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

package commandline

import (
	"sort"
	"strings"
)

// TabCompletion completes the first word of the input from a list of command
// names. Repeated calls to Complete() cycle through the matching names until
// Reset() is called.
type TabCompletion struct {
	commands []string

	matches []string
	match   int
}

// NewTabCompletion is the preferred method of initialisation for the
// TabCompletion type.
func NewTabCompletion(commands []string) *TabCompletion {
	tc := &TabCompletion{
		commands: make([]string, len(commands)),
	}
	copy(tc.commands, commands)
	sort.Strings(tc.commands)
	return tc
}

// Complete implements the terminal.TabCompletion interface.
func (tc *TabCompletion) Complete(input string) string {
	// only the first word is completed
	if strings.ContainsAny(strings.TrimLeft(input, " "), " ") {
		return input
	}

	if len(tc.matches) == 0 {
		word := strings.ToUpper(strings.TrimSpace(input))
		for _, c := range tc.commands {
			if strings.HasPrefix(c, word) {
				tc.matches = append(tc.matches, c)
			}
		}
		if len(tc.matches) == 0 {
			return input
		}
		tc.match = -1
	}

	tc.match = (tc.match + 1) % len(tc.matches)
	return tc.matches[tc.match] + " "
}

// Reset implements the terminal.TabCompletion interface.
func (tc *TabCompletion) Reset() {
	tc.matches = tc.matches[:0]
	tc.match = 0
}
