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

package debugger

import (
	"strings"

	"github.com/jetsetilly/gopherppc/debugger/terminal"
)

func (dbg *Debugger) printLine(style terminal.Style, s string) {
	dbg.term.TermPrintLine(style, s)
}

// lineWriter is an io.Writer that sends each complete line to the terminal
// with the same style.
type lineWriter struct {
	dbg   *Debugger
	style terminal.Style
	buf   strings.Builder
}

func (dbg *Debugger) writer(style terminal.Style) *lineWriter {
	return &lineWriter{dbg: dbg, style: style}
}

func (w *lineWriter) Write(p []byte) (int, error) {
	w.buf.Write(p)
	s := w.buf.String()
	for {
		i := strings.IndexByte(s, '\n')
		if i < 0 {
			break
		}
		w.dbg.printLine(w.style, s[:i])
		s = s[i+1:]
	}
	w.buf.Reset()
	w.buf.WriteString(s)
	return len(p), nil
}

// Flush sends any incomplete line to the terminal.
func (w *lineWriter) Flush() {
	if w.buf.Len() > 0 {
		w.dbg.printLine(w.style, w.buf.String())
		w.buf.Reset()
	}
}
