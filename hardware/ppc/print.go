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

package ppc

import (
	"fmt"
	"math"
	"strings"
)

func (c *CPU) String() string {
	s := strings.Builder{}
	for i := 0; i < 32; i++ {
		s.WriteString(fmt.Sprintf("r%-2d: %08x", i, c.state.GPR[i]))
		if i%4 == 3 {
			s.WriteString("\n")
		} else {
			s.WriteString("  ")
		}
	}
	s.WriteString(fmt.Sprintf("PC : %08x  LR : %08x  CR : %08x  CTR: %08x\n",
		c.state.PC, c.state.SPR[SprLR], c.state.CR, c.state.SPR[SprCTR]))
	s.WriteString(fmt.Sprintf("XER: %08x  MSR: %08x  TB : %016x", c.state.SPR[SprXER], c.state.MSR, c.state.TB))
	return s.String()
}

// FPRString returns the floating point registers and FPSCR. Each register is
// shown as a bit pattern and as a value.
func (c *CPU) FPRString() string {
	s := strings.Builder{}
	for i := 0; i < 32; i++ {
		v := c.state.FPR[i]
		s.WriteString(fmt.Sprintf("f%-2d: %016x %g", i, v, math.Float64frombits(v)))
		s.WriteString("\n")
	}
	s.WriteString(fmt.Sprintf("FPSCR: %08x", c.state.FPSCR))
	return s.String()
}
