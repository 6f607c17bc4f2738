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

// Package logger is the central log for the emulator. Entries are tagged and
// repeated entries are collapsed into a single entry with a repeat count.
//
// Package level functions operate on the central log. Separate logs can be
// created with NewLogger(), which is mostly useful for testing.
//
// Every log request is accompanied by a Permission. Callers that should
// always log use logger.Allow. Other callers can supply their own
// implementation, for example to tie extended logging to a preference value.
package logger
