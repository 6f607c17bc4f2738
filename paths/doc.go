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

// Package paths contains functions to prepare paths to gopherppc resources.
//
// The ResourcePath() function prepends the supplied resource path with the
// appropriate config directory. For example, the preferences file is found
// with:
//
//	pth, err := paths.ResourcePath("", "preferences")
//
// If a directory named ".gopherppc" is present in the program's current
// directory then that is used as the base path. Otherwise the "gopherppc"
// directory in the user's config directory is used, as returned by
// os.UserConfigDir(). On a modern Linux system the path returned in the
// example will be:
//
//	/home/user/.config/gopherppc/preferences
package paths
