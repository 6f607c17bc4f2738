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

// Package architecture defines the Map type that is used to specify the
// differences between PowerPC processor models.
package architecture

import (
	"fmt"
	"strings"
)

// Model identifies a PowerPC processor.
type Model string

// List of valid Model values.
const (
	MPC601 Model = "601"
	MPC603 Model = "603"
	MPC604 Model = "604"
	MPC750 Model = "750"
)

// Models is the list of supported models in a form suitable for help
// messages.
var Models = []Model{MPC601, MPC603, MPC604, MPC750}

// The processor version register for each model.
const (
	PVR601 = uint32(0x00010001)
	PVR603 = uint32(0x00030001)
	PVR604 = uint32(0x00040001)
	PVR750 = uint32(0x00080200)
)

// Map of the differences between processor models.
type Map struct {
	Model Model

	// processor version register
	PVR uint32

	// value of the machine state register after a hard reset
	ResetMSR uint32

	// the decrementer is preset to 0xffffffff after a hard reset
	PresetDEC bool

	// the POWER architecture instructions are available. only the 601
	// implements them
	POWER bool
}

func (mp Map) String() string {
	return fmt.Sprintf("MPC%s (PVR %08x)", mp.Model, mp.PVR)
}

// NewMap returns the Map for the named model. The model is case insensitive
// and may be prefixed with "MPC".
func NewMap(model string) (Map, error) {
	m := Model(strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(model)), "MPC"))
	switch m {
	case MPC601:
		return FromPVR(PVR601), nil
	case MPC603:
		return FromPVR(PVR603), nil
	case MPC604:
		return FromPVR(PVR604), nil
	case MPC750:
		return FromPVR(PVR750), nil
	}
	return Map{}, fmt.Errorf("architecture: unknown processor model (%s)", model)
}

// FromPVR returns the Map for the processor version. The 601 is identified
// by the version field (the upper half of the register); all other versions
// are treated as a later model.
func FromPVR(pvr uint32) Map {
	mp := Map{
		PVR: pvr,
	}

	if pvr&0xffff0000 == 0x00010000 {
		mp.Model = MPC601
		mp.ResetMSR = 0x1040
		mp.POWER = true
		return mp
	}

	switch pvr >> 16 {
	case PVR603 >> 16:
		mp.Model = MPC603
	case PVR604 >> 16:
		mp.Model = MPC604
	default:
		mp.Model = MPC750
	}
	mp.ResetMSR = 0x40
	mp.PresetDEC = true

	return mp
}
