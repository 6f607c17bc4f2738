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

package script

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/jetsetilly/gopherppc/curated"
	"github.com/jetsetilly/gopherppc/logger"
	lua "github.com/yuin/gopher-lua"
)

// Sentinal error pattern for any error returned by a script.
const ScriptError = "script: %s: %v"

// Machine defines the operations a script can perform.
type Machine interface {
	ReadRegister(name string) (uint64, error)
	WriteRegister(name string, v uint64) error
	Step(n int) error
	RunUntil(addr uint32) error
	PeekWord(addr uint32) (uint32, error)
	PokeWord(addr uint32, v uint32) error
	Command(input string) error
}

// Script is a Lua state bound to a Machine.
type Script struct {
	L      *lua.LState
	m      Machine
	output io.Writer
}

// NewScript is the preferred method of initialisation for the Script type.
// Call Close() when the script is no longer required.
func NewScript(m Machine, output io.Writer) *Script {
	scr := &Script{
		L:      lua.NewState(),
		m:      m,
		output: output,
	}

	for name, fn := range map[string]lua.LGFunction{
		"reg":      scr.reg,
		"setreg":   scr.setreg,
		"step":     scr.step,
		"rununtil": scr.runUntil,
		"peek":     scr.peek,
		"poke":     scr.poke,
		"cmd":      scr.cmd,
		"print":    scr.print,
	} {
		scr.L.SetGlobal(name, scr.L.NewFunction(fn))
	}

	return scr
}

// Close the Lua state.
func (scr *Script) Close() {
	scr.L.Close()
}

// RunFile runs the named Lua file.
func (scr *Script) RunFile(filename string) error {
	logger.Logf(logger.Allow, "script", "running %s", filename)
	if err := scr.L.DoFile(filename); err != nil {
		return curated.Errorf(ScriptError, filename, err)
	}
	return nil
}

// RunString runs a Lua chunk.
func (scr *Script) RunString(chunk string) error {
	if err := scr.L.DoString(chunk); err != nil {
		return curated.Errorf(ScriptError, "chunk", err)
	}
	return nil
}

// floating point registers are exchanged with scripts as numbers rather than
// bit patterns
func isFPR(name string) bool {
	return strings.HasPrefix(strings.ToUpper(strings.TrimSpace(name)), "FR")
}

func address(L *lua.LState, n int) uint32 {
	return uint32(int64(L.CheckNumber(n)))
}

func (scr *Script) reg(L *lua.LState) int {
	name := L.CheckString(1)
	v, err := scr.m.ReadRegister(name)
	if err != nil {
		L.RaiseError("%v", err)
		return 0
	}
	if isFPR(name) {
		L.Push(lua.LNumber(math.Float64frombits(v)))
	} else {
		L.Push(lua.LNumber(v))
	}
	return 1
}

func (scr *Script) setreg(L *lua.LState) int {
	name := L.CheckString(1)
	n := L.CheckNumber(2)

	var v uint64
	if isFPR(name) {
		v = math.Float64bits(float64(n))
	} else {
		v = uint64(int64(n))
	}

	if err := scr.m.WriteRegister(name, v); err != nil {
		L.RaiseError("%v", err)
	}
	return 0
}

func (scr *Script) step(L *lua.LState) int {
	if err := scr.m.Step(L.OptInt(1, 1)); err != nil {
		L.RaiseError("%v", err)
	}
	return 0
}

func (scr *Script) runUntil(L *lua.LState) int {
	if err := scr.m.RunUntil(address(L, 1)); err != nil {
		L.RaiseError("%v", err)
	}
	return 0
}

func (scr *Script) peek(L *lua.LState) int {
	v, err := scr.m.PeekWord(address(L, 1))
	if err != nil {
		L.RaiseError("%v", err)
		return 0
	}
	L.Push(lua.LNumber(v))
	return 1
}

func (scr *Script) poke(L *lua.LState) int {
	if err := scr.m.PokeWord(address(L, 1), address(L, 2)); err != nil {
		L.RaiseError("%v", err)
	}
	return 0
}

func (scr *Script) cmd(L *lua.LState) int {
	if err := scr.m.Command(L.CheckString(1)); err != nil {
		L.RaiseError("%v", err)
	}
	return 0
}

func (scr *Script) print(L *lua.LState) int {
	s := make([]string, 0, L.GetTop())
	for i := 1; i <= L.GetTop(); i++ {
		s = append(s, L.Get(i).String())
	}
	fmt.Fprintln(scr.output, strings.Join(s, "\t"))
	return 0
}
