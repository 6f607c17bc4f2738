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

package peripherals_test

import (
	"sync/atomic"
	"testing"

	"github.com/jetsetilly/gopherppc/hardware/peripherals"
	"github.com/jetsetilly/gopherppc/test"
)

func TestPanel(t *testing.T) {
	var power atomic.Bool
	power.Store(true)

	w := &test.CompareWriter{}
	pan := peripherals.NewPanel(&power, w)

	v, ok := pan.Read(peripherals.PanelPower, 4)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, v, uint64(1))

	for _, c := range []byte("ok\n") {
		test.ExpectSuccess(t, pan.Write(peripherals.PanelConsole, 1, uint64(c)))
	}
	test.ExpectSuccess(t, w.Compare("ok\n"))

	v, _ = pan.Read(peripherals.PanelConsoleCount, 4)
	test.ExpectEquality(t, v, uint64(3))

	// writing a non-zero value does not turn the power on or off
	test.ExpectSuccess(t, pan.Write(peripherals.PanelPower, 4, 1))
	test.ExpectEquality(t, power.Load(), true)

	test.ExpectSuccess(t, pan.Write(peripherals.PanelPower, 4, 0))
	test.ExpectEquality(t, power.Load(), false)
	v, _ = pan.Read(peripherals.PanelPower+3, 1)
	test.ExpectEquality(t, v, uint64(0))

	// no register
	_, ok = pan.Read(0x80, 4)
	test.ExpectFailure(t, ok)
	test.ExpectFailure(t, pan.Write(0x80, 4, 0))
}
