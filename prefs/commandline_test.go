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

package prefs_test

import (
	"testing"

	"github.com/jetsetilly/gopherppc/prefs"
	"github.com/jetsetilly/gopherppc/test"
)

func TestCommandLineStackValues(t *testing.T) {
	// empty on start
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "")

	// single value
	prefs.PushCommandLineStack("ppc.model::604")
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "ppc.model::604")

	// single value but with additional space
	prefs.PushCommandLineStack("   ppc.model:: 604 ")
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "ppc.model::604")

	// more than one key/value in the prefs string. remaining string will
	// will be sorted
	prefs.PushCommandLineStack("ppc.model::604; ppc.decrementer::true")
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "ppc.decrementer::true; ppc.model::604")

	// invalid prefs string
	prefs.PushCommandLineStack("ppc.model_604")
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "")

	// partially invalid prefs string
	prefs.PushCommandLineStack("ppc.model_604;ppc.decrementer::true")
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "ppc.decrementer::true")

	// getting a value removes it from the group
	prefs.PushCommandLineStack("ppc.model::601;foo_bar")
	ok, _ := prefs.GetCommandLinePref("foo")
	test.ExpectFailure(t, ok)
	ok, v := prefs.GetCommandLinePref("ppc.model")
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, v.(string), "601")
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "")
}

func TestCommandLineStack(t *testing.T) {
	test.ExpectEquality(t, prefs.SizeCommandLineStack(), 0)

	prefs.PushCommandLineStack("foo::bar")
	prefs.PushCommandLineStack("baz::qux")
	test.ExpectEquality(t, prefs.SizeCommandLineStack(), 2)

	test.ExpectEquality(t, prefs.PopCommandLineStack(), "baz::qux")

	// first group still exists
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "foo::bar")
	test.ExpectEquality(t, prefs.SizeCommandLineStack(), 0)
}
