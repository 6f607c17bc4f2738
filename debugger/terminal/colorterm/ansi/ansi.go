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

// Package ansi provides the escape sequences used by the colour terminal.
package ansi

import (
	"fmt"
	"strings"
)

// colour values
const (
	black = iota
	red
	green
	yellow
	blue
	magenta
	cyan
	white
)

// attribute values
const (
	bold      = 1
	dim       = 2
	underline = 4
	inverse   = 7
)

// Pens and DimPens are keyed by colour name: red, green, yellow, blue,
// magenta, cyan, white.
var (
	Pens      = map[string]string{}
	DimPens   = map[string]string{}
	PenStyles = map[string]string{}
)

// NormalPen resets all colours and attributes.
const NormalPen = "\033[0m"

// Cursor and line control.
const (
	ClearLine         = "\033[2K"
	CursorStore       = "\0337"
	CursorRestore     = "\0338"
	CursorForwardOne  = "\033[1C"
	CursorBackwardOne = "\033[1D"
)

var colours = map[string]int{
	"black":   black,
	"red":     red,
	"green":   green,
	"yellow":  yellow,
	"blue":    blue,
	"magenta": magenta,
	"cyan":    cyan,
	"white":   white,
}

func init() {
	for k, v := range colours {
		Pens[k] = build(90+v, 0)
		DimPens[k] = build(30+v, 0)
	}
	PenStyles["bold"] = build(0, bold)
	PenStyles["dim"] = build(0, dim)
	PenStyles["underline"] = build(0, underline)
	PenStyles["inverse"] = build(0, inverse)
}

func build(pen int, attribute int) string {
	s := strings.Builder{}
	s.WriteString("\033[")
	if pen != 0 {
		s.WriteString(fmt.Sprintf("%d", pen))
	}
	if attribute != 0 {
		if pen != 0 {
			s.WriteString(";")
		}
		s.WriteString(fmt.Sprintf("%d", attribute))
	}
	s.WriteString("m")
	return s.String()
}

// CursorMove returns the sequence to move the cursor horizontally. Negative
// values move the cursor backwards.
func CursorMove(n int) string {
	switch {
	case n < 0:
		return fmt.Sprintf("\033[%dD", -n)
	case n > 0:
		return fmt.Sprintf("\033[%dC", n)
	}
	return ""
}
