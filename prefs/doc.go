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

// Package prefs facilitates the storage of preferential values in the
// emulator. The Bool, Int, String and Float types are safe to read and write
// from different goroutines.
//
// Values are associated with a key and a Disk instance with the Add()
// function. The Disk then saves and loads those values to a file, one per
// line in the form:
//
//	key :: value
//
// Keys in the file that have not been added to the Disk are preserved when
// the file is saved. This means that many Disk instances can share the same
// file without interfering with one another.
//
// Values can also be given on the command line. The command line stack is
// pushed with PushCommandLineStack() before the Disk is loaded and any value
// found for an added key overrides the value in the file.
package prefs
