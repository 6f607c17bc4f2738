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
	"strconv"
	"strings"

	"github.com/jetsetilly/gopherppc/curated"
)

// UnknownRegister is the sentinal error pattern for a register name that is
// not recognised by ReadRegister() or WriteRegister().
const UnknownRegister = "ppc: unknown register name (%s)"

// special purpose registers that can be referred to by name. TBL and TBU are
// handled separately
var sprNames = map[string]uint32{
	"MQ":    SprMQ,
	"XER":   SprXER,
	"RTCU":  SprRTCU,
	"RTCL":  SprRTCL,
	"LR":    SprLR,
	"CTR":   SprCTR,
	"DSISR": SprDSISR,
	"DAR":   SprDAR,
	"DEC":   SprDEC,
	"SDR1":  SprSDR1,
	"SRR0":  SprSRR0,
	"SRR1":  SprSRR1,
	"SPRG0": SprSPRG0,
	"SPRG1": SprSPRG1,
	"SPRG2": SprSPRG2,
	"SPRG3": SprSPRG3,
	"EAR":   SprEAR,
	"PVR":   SprPVR,
	"HID0":  SprHID0,
	"HID1":  SprHID1,
	"IABR":  SprIABR,
	"DABR":  SprDABR,
}

// RegisterNames returns the list of named registers in a form suitable for
// help messages.
func RegisterNames() []string {
	n := []string{"PC", "MSR", "CR", "FPSCR", "TBL", "TBU", "R0-R31", "FR0-FR31", "SR0-SR15", "SPR0-SPR1023"}
	for k := range sprNames {
		n = append(n, k)
	}
	return n
}

type regKind int

const (
	regPC regKind = iota
	regMSR
	regCR
	regFPSCR
	regTBL
	regTBU
	regSPR
	regSR
	regFPR
	regGPR
)

// resolve the register name to a kind and an index. exact names are checked
// before the numbered register prefixes
func resolveRegister(name string) (regKind, uint32, bool) {
	n := strings.ToUpper(strings.TrimSpace(name))

	switch n {
	case "PC":
		return regPC, 0, true
	case "MSR":
		return regMSR, 0, true
	case "CR":
		return regCR, 0, true
	case "FPSCR":
		return regFPSCR, 0, true
	case "TBL":
		return regTBL, 0, true
	case "TBU":
		return regTBU, 0, true
	}

	if spr, ok := sprNames[n]; ok {
		return regSPR, spr, true
	}

	prefixes := []struct {
		prefix string
		kind   regKind
		count  uint64
	}{
		{"SPR", regSPR, 1024},
		{"SR", regSR, 16},
		{"FR", regFPR, 32},
		{"R", regGPR, 32},
	}

	for _, p := range prefixes {
		if s, ok := strings.CutPrefix(n, p.prefix); ok {
			if s == "" {
				return 0, 0, false
			}
			// register numbers are decimal unless written in hex. leading
			// zeros do not mean octal
			s = strings.ToLower(s)
			base := 10
			if h, ok := strings.CutPrefix(s, "0x"); ok {
				s = h
				base = 16
			}
			v, err := strconv.ParseUint(s, base, 32)
			if err != nil || v >= p.count {
				return 0, 0, false
			}
			return p.kind, uint32(v), true
		}
	}

	return 0, 0, false
}

// ReadRegister returns the value of the named register. The name is case
// insensitive. Floating point registers are returned as a bit pattern.
func (c *CPU) ReadRegister(name string) (uint64, error) {
	kind, idx, ok := resolveRegister(name)
	if !ok {
		return 0, curated.Errorf(UnknownRegister, name)
	}

	switch kind {
	case regPC:
		return uint64(c.state.PC), nil
	case regMSR:
		return uint64(c.state.MSR), nil
	case regCR:
		return uint64(c.state.CR), nil
	case regFPSCR:
		return uint64(c.state.FPSCR), nil
	case regTBL:
		return c.state.TB & 0xffffffff, nil
	case regTBU:
		return c.state.TB >> 32, nil
	case regSPR:
		return uint64(c.state.SPR[idx]), nil
	case regSR:
		return uint64(c.state.SR[idx]), nil
	case regFPR:
		return c.state.FPR[idx], nil
	}
	return uint64(c.state.GPR[idx]), nil
}

// WriteRegister sets the value of the named register. The value is
// truncated to the width of the register.
func (c *CPU) WriteRegister(name string, v uint64) error {
	kind, idx, ok := resolveRegister(name)
	if !ok {
		return curated.Errorf(UnknownRegister, name)
	}

	switch kind {
	case regPC:
		c.state.PC = uint32(v)
	case regMSR:
		c.state.MSR = uint32(v)
	case regCR:
		c.state.CR = uint32(v)
	case regFPSCR:
		c.state.FPSCR = uint32(v)
	case regTBL:
		c.state.TB = c.state.TB&0xffffffff00000000 | v&0xffffffff
	case regTBU:
		c.state.TB = c.state.TB&0xffffffff | v<<32
	case regSPR:
		c.state.SPR[idx] = uint32(v)
	case regSR:
		c.state.SR[idx] = uint32(v)
	case regFPR:
		c.state.FPR[idx] = v
	default:
		c.state.GPR[idx] = uint32(v)
	}
	return nil
}
