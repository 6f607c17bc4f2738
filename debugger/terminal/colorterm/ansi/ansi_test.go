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

package ansi_test

import (
	"testing"

	"github.com/jetsetilly/gopherppc/debugger/terminal/colorterm/ansi"
	"github.com/jetsetilly/gopherppc/test"
)

func TestPens(t *testing.T) {
	test.ExpectEquality(t, ansi.Pens["red"], "\033[91m")
	test.ExpectEquality(t, ansi.DimPens["red"], "\033[31m")
	test.ExpectEquality(t, ansi.PenStyles["bold"], "\033[1m")
	test.ExpectEquality(t, len(ansi.Pens), 8)
}

func TestCursorMove(t *testing.T) {
	test.ExpectEquality(t, ansi.CursorMove(3), "\033[3C")
	test.ExpectEquality(t, ansi.CursorMove(-2), "\033[2D")
	test.ExpectEquality(t, ansi.CursorMove(0), "")
}
