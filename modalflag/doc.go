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

// Package modalflag is a wrapper for the flag package in the Go standard
// library. It provides a convenient method of handling program modes (and
// sub-modes) and allows different flags for each mode.
//
// Arguments are given with NewArgs() and then parsed with Parse():
//
//	md = Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("RUN", "DEBUG", "CACHE")
//	_, _ = md.Parse()
//
// After Parse(), the Mode() function returns the selected sub-mode. The first
// sub-mode in the list is the default and is selected if the first argument
// after the flags is not a sub-mode name. Comparisons are case insensitive.
//
// Each mode can have its own flags. Calling NewMode() prepares a new set of
// flags, which are then parsed with another call to Parse():
//
//	md.NewMode()
//	model := md.AddString("model", "750", "processor model")
//	p, err := md.Parse()
//	switch p {
//	case modalflag.ParseHelp:
//		return
//	case modalflag.ParseError:
//		return err
//	}
//
// The Path() function returns the list of modes encountered so far, separated
// by a forward slash.
package modalflag
