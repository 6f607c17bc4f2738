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

// Package faults records the exceptions taken by the CPU. Faults are
// recoverable and execution continues at the exception vector but it is
// useful to see what has happened when debugging a program.
package faults

import (
	"fmt"
	"io"
)

// Category classifies the approximate reason for a fault
type Category string

// List of valid Category values
const (
	Alignment     Category = "alignment"
	DataAccess    Category = "data access"
	InstrAccess   Category = "instruction access"
	Privileged    Category = "privileged instruction"
	Illegal       Category = "illegal instruction"
	Trap          Category = "trap"
	FPUnavailable Category = "floating point unavailable"
	FPException   Category = "floating point exception"
	Decrementer   Category = "decrementer"
	SystemCall    Category = "system call"
)

// Entry is a single entry in the fault log
type Entry struct {
	Category Category

	// description of the event that triggered the fault
	Event string

	// address of the instruction that caused the fault and the memory address
	// that was being accessed, if any
	InstructionAddr uint32
	AccessAddr      uint32

	// number of times this specific fault has been seen
	Count int
}

func (e Entry) String() string {
	return fmt.Sprintf("%s: %s: %08x (PC: %08x) x%d", e.Category, e.Event, e.AccessAddr, e.InstructionAddr, e.Count)
}

type key struct {
	category        Category
	instructionAddr uint32
	accessAddr      uint32
}

// Faults is the log of faults in the order they were first seen.
type Faults struct {
	entries map[key]*Entry

	// all the faults in order of the first time they appear. the Count field
	// can be used to see if that entry was seen more than once
	Log []*Entry
}

// NewFaults is the preferred method of initialisation for the Faults type.
func NewFaults() *Faults {
	return &Faults{
		entries: make(map[key]*Entry),
	}
}

// Clear all entries from faults log.
func (flt *Faults) Clear() {
	flt.entries = make(map[key]*Entry)
	flt.Log = flt.Log[:0]
}

// WriteLog writes the list of faults in the order they were added
func (flt *Faults) WriteLog(w io.Writer) {
	for _, e := range flt.Log {
		io.WriteString(w, e.String())
		io.WriteString(w, "\n")
	}
}

// NewEntry adds a new entry to the list of faults. Returns the entry and
// whether this is the first time the entry has been seen.
func (flt *Faults) NewEntry(event string, category Category, instructionAddr uint32, accessAddr uint32) (*Entry, bool) {
	k := key{
		category:        category,
		instructionAddr: instructionAddr,
		accessAddr:      accessAddr,
	}

	e, found := flt.entries[k]
	if !found {
		e = &Entry{
			Category:        category,
			Event:           event,
			InstructionAddr: instructionAddr,
			AccessAddr:      accessAddr,
		}
		flt.entries[k] = e
		flt.Log = append(flt.Log, e)
	}

	e.Count++

	return e, !found
}
