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

package paths_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jetsetilly/gopherppc/paths"
	"github.com/jetsetilly/gopherppc/test"
)

func TestPortablePath(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, os.Chdir(dir))
	defer os.Chdir(wd)

	test.DemandSuccess(t, os.Mkdir(".gopherppc", 0o700))

	pth, err := paths.ResourcePath("scripts", "boot.lua")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, filepath.Join(".gopherppc", "scripts", "boot.lua"))

	// sub-path has been created
	_, err = os.Stat(filepath.Join(".gopherppc", "scripts"))
	test.ExpectSuccess(t, err)

	pth, err = paths.ResourcePath("", "preferences")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, filepath.Join(".gopherppc", "preferences"))
}

func TestUniqueFilename(t *testing.T) {
	fn := paths.UniqueFilename("memviz", "roms/boot.bin")
	test.ExpectSuccess(t, strings.HasPrefix(fn, "memviz_boot_"))

	fn = paths.UniqueFilename("memviz", "")
	test.ExpectSuccess(t, strings.HasPrefix(fn, "memviz_2"))
}
