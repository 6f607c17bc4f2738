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

package script_test

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jetsetilly/gopherppc/debugger/script"
	"github.com/jetsetilly/gopherppc/test"
)

type machine struct {
	regs     map[string]uint64
	mem      map[uint32]uint32
	steps    int
	until    uint32
	commands []string
}

func newMachine() *machine {
	return &machine{
		regs: make(map[string]uint64),
		mem:  make(map[uint32]uint32),
	}
}

func (m *machine) ReadRegister(name string) (uint64, error) {
	v, ok := m.regs[strings.ToUpper(name)]
	if !ok {
		return 0, fmt.Errorf("unknown register (%s)", name)
	}
	return v, nil
}

func (m *machine) WriteRegister(name string, v uint64) error {
	m.regs[strings.ToUpper(name)] = v
	return nil
}

func (m *machine) Step(n int) error {
	m.steps += n
	return nil
}

func (m *machine) RunUntil(addr uint32) error {
	m.until = addr
	return nil
}

func (m *machine) PeekWord(addr uint32) (uint32, error) {
	return m.mem[addr], nil
}

func (m *machine) PokeWord(addr uint32, v uint32) error {
	m.mem[addr] = v
	return nil
}

func (m *machine) Command(input string) error {
	m.commands = append(m.commands, input)
	return nil
}

func TestFunctions(t *testing.T) {
	m := newMachine()
	w := &test.CompareWriter{}

	scr := script.NewScript(m, w)
	defer scr.Close()

	err := scr.RunString(`
setreg("r3", 10)
setreg("r4", reg("R3") + 5)
setreg("fr1", 1.5)
step()
step(3)
rununtil(0x1010)
poke(0x2000, 0xdeadbeef)
setreg("r5", peek(0x2000))
cmd("regs")
print("done", reg("r4"))
`)
	test.ExpectSuccess(t, err)

	test.ExpectEquality(t, m.regs["R4"], 15)
	test.ExpectEquality(t, m.regs["R5"], 0xdeadbeef)
	test.ExpectEquality(t, m.regs["FR1"], math.Float64bits(1.5))
	test.ExpectEquality(t, m.steps, 4)
	test.ExpectEquality(t, m.until, 0x1010)
	test.ExpectEquality(t, len(m.commands), 1)
	test.ExpectEquality(t, m.commands[0], "regs")
	test.ExpectSuccess(t, w.Compare("done\t15\n"))
}

func TestErrors(t *testing.T) {
	m := newMachine()
	scr := script.NewScript(m, &test.CompareWriter{})
	defer scr.Close()

	// machine errors are raised as Lua errors
	test.ExpectFailure(t, scr.RunString(`reg("nosuchreg")`))

	// syntax errors
	test.ExpectFailure(t, scr.RunString(`step(`))
}

func TestRunFile(t *testing.T) {
	m := newMachine()
	scr := script.NewScript(m, &test.CompareWriter{})
	defer scr.Close()

	fn := filepath.Join(t.TempDir(), "test.lua")
	test.DemandSuccess(t, os.WriteFile(fn, []byte("for i = 1, 5 do step() end\n"), 0o644))

	test.ExpectSuccess(t, scr.RunFile(fn))
	test.ExpectEquality(t, m.steps, 5)

	test.ExpectFailure(t, scr.RunFile(filepath.Join(t.TempDir(), "missing.lua")))
}
