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

package preferences_test

import (
	"path/filepath"
	"testing"

	"github.com/jetsetilly/gopherppc/hardware/preferences"
	"github.com/jetsetilly/gopherppc/prefs"
	"github.com/jetsetilly/gopherppc/test"
)

func TestDefaults(t *testing.T) {
	p := preferences.NewDefaultPPCPreferences()
	test.ExpectEquality(t, p.Model.String(), "750")
	test.ExpectEquality(t, p.CacheCapacity.Get().(int), 256)
	test.ExpectFailure(t, p.AllowLogging())

	// out of range values are refused
	test.ExpectFailure(t, p.CacheCapacity.Set(1))
	test.ExpectFailure(t, p.Model.Set("G5"))
	test.ExpectEquality(t, p.Model.String(), "750")

	// file-less preferences can be loaded and saved without effect
	test.ExpectSuccess(t, p.Save())
	test.ExpectSuccess(t, p.Load())
}

func TestFile(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "preferences")

	p, err := preferences.NewPPCPreferencesFromFile(fn)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, p.Model.Set("601"))
	test.ExpectSuccess(t, p.ExtendedFaultLogging.Set(true))
	test.DemandSuccess(t, p.Save())

	prefs.PushCommandLineStack("ppc.cacheCapacity::64")
	defer prefs.PopCommandLineStack()

	q, err := preferences.NewPPCPreferencesFromFile(fn)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, q.Model.String(), "601")
	test.ExpectSuccess(t, q.AllowLogging())
	test.ExpectEquality(t, q.CacheCapacity.Get().(int), 64)
}
