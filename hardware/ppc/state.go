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
	"math"
)

// State is the architectural state of the CPU.
type State struct {
	GPR [32]uint32

	// floating point registers hold the bit pattern of a float64
	FPR [32]uint64

	CR    uint32
	MSR   uint32
	FPSCR uint32
	SR    [16]uint32
	SPR   [1024]uint32

	// 64 bit timebase. incremented once for every retired instruction
	TB uint64

	PC uint32
}

// FPRFloat returns the floating point register as a float64.
func (st *State) FPRFloat(n uint32) float64 {
	return math.Float64frombits(st.FPR[n&0x1f])
}

// SetFPRFloat sets the floating point register to the float64 value.
func (st *State) SetFPRFloat(n uint32, v float64) {
	st.FPR[n&0x1f] = math.Float64bits(v)
}

// CRBit returns bit n of the condition register, where bit 0 is the most
// significant bit.
func (st *State) CRBit(n uint32) bool {
	return st.CR&(0x80000000>>(n&0x1f)) != 0
}

// Special purpose register numbers.
const (
	SprMQ    = 0
	SprXER   = 1
	SprRTCU  = 4
	SprRTCL  = 5
	SprLR    = 8
	SprCTR   = 9
	SprDSISR = 18
	SprDAR   = 19
	SprDEC   = 22
	SprSDR1  = 25
	SprSRR0  = 26
	SprSRR1  = 27
	SprSPRG0 = 272
	SprSPRG1 = 273
	SprSPRG2 = 274
	SprSPRG3 = 275
	SprEAR   = 282
	SprTBL   = 284
	SprTBU   = 285
	SprPVR   = 287
	SprHID0  = 1008
	SprHID1  = 1009
	SprIABR  = 1010
	SprDABR  = 1013

	// timebase registers as read by mftb
	TbrTBL = 268
	TbrTBU = 269
)

// Machine state register bits.
const (
	MsrILE = 0x10000
	MsrEE  = 0x8000
	MsrPR  = 0x4000
	MsrFP  = 0x2000
	MsrME  = 0x1000
	MsrFE0 = 0x0800
	MsrSE  = 0x0400
	MsrBE  = 0x0200
	MsrFE1 = 0x0100
	MsrIP  = 0x0040
	MsrIR  = 0x0020
	MsrDR  = 0x0010
	MsrRI  = 0x0002
	MsrLE  = 0x0001
)

// Fixed point exception register bits.
const (
	XerSO = 0x80000000
	XerOV = 0x40000000
	XerCA = 0x20000000
)

// Condition register field bits.
const (
	crLT = 0x8
	crGT = 0x4
	crEQ = 0x2
	crSO = 0x1
)
