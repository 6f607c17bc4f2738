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

package preferences

import (
	"fmt"

	"github.com/jetsetilly/gopherppc/hardware/ppc/architecture"
	"github.com/jetsetilly/gopherppc/paths"
	"github.com/jetsetilly/gopherppc/prefs"
)

// PPCPreferences are the preferences for the CPU.
type PPCPreferences struct {
	dsk *prefs.Disk

	// the processor model. one of the values in architecture.Models
	Model prefs.String

	// the decrementer counts down by the number of retired instructions and
	// raises an exception when it passes through zero
	DecrementerEnabled prefs.Bool

	// the number of records in the pre-decode cache buffer
	CacheCapacity prefs.Int

	// treat recoverable faults as fatal errors. useful when debugging a
	// program that should never take an exception
	AbortOnFault prefs.Bool

	// log every fault rather than just the first time a fault is seen at an
	// address
	ExtendedFaultLogging prefs.Bool
}

func (p *PPCPreferences) String() string {
	if p.dsk == nil {
		return ""
	}
	return p.dsk.String()
}

// minimum and maximum size of the pre-decode cache buffer. the maximum is
// limited by the branch displacement field in a record
const (
	MinCacheCapacity = 2
	MaxCacheCapacity = 32768
)

// NewPPCPreferences is the preferred method of initialisation for the
// PPCPreferences type. The preferences are loaded from the preferences file
// in the resource path.
func NewPPCPreferences() (*PPCPreferences, error) {
	pth, err := paths.ResourcePath("", prefs.DefaultPrefsFile)
	if err != nil {
		return nil, err
	}
	return newPPCPreferences(pth)
}

// NewPPCPreferencesFromFile loads the preferences from a named file.
func NewPPCPreferencesFromFile(pth string) (*PPCPreferences, error) {
	return newPPCPreferences(pth)
}

func newPPCPreferences(pth string) (*PPCPreferences, error) {
	p := NewDefaultPPCPreferences()

	var err error
	p.dsk, err = prefs.NewDisk(pth)
	if err != nil {
		return nil, err
	}

	for _, v := range []struct {
		key string
		p   interface {
			Set(prefs.Value) error
			Get() prefs.Value
			Reset() error
			String() string
		}
	}{
		{key: "ppc.model", p: &p.Model},
		{key: "ppc.decrementer", p: &p.DecrementerEnabled},
		{key: "ppc.cacheCapacity", p: &p.CacheCapacity},
		{key: "ppc.abortOnFault", p: &p.AbortOnFault},
		{key: "ppc.extendedFaultLogging", p: &p.ExtendedFaultLogging},
	} {
		if err := p.dsk.Add(v.key, v.p); err != nil {
			return nil, err
		}
	}

	if err := p.dsk.Load(true); err != nil {
		return nil, err
	}

	return p, nil
}

// NewDefaultPPCPreferences returns preferences with default values that are
// not backed by a file. Load() and Save() do nothing.
func NewDefaultPPCPreferences() *PPCPreferences {
	p := &PPCPreferences{}

	p.Model.SetHookPre(func(v prefs.Value) error {
		if _, err := architecture.NewMap(v.(string)); err != nil {
			return err
		}
		return nil
	})
	p.CacheCapacity.SetHookPre(func(v prefs.Value) error {
		n := v.(int)
		if n < MinCacheCapacity || n > MaxCacheCapacity {
			return fmt.Errorf("preferences: cache capacity must be between %d and %d", MinCacheCapacity, MaxCacheCapacity)
		}
		return nil
	})

	p.SetDefaults()
	return p
}

// SetDefaults reverts all settings to default values.
func (p *PPCPreferences) SetDefaults() {
	p.Model.Set(string(architecture.MPC750))
	p.DecrementerEnabled.Set(false)
	p.CacheCapacity.Set(256)
	p.AbortOnFault.Set(false)
	p.ExtendedFaultLogging.Set(false)
}

// Load current preferences from disk.
func (p *PPCPreferences) Load() error {
	if p.dsk == nil {
		return nil
	}
	return p.dsk.Load(false)
}

// Save current preferences to disk.
func (p *PPCPreferences) Save() error {
	if p.dsk == nil {
		return nil
	}
	return p.dsk.Save()
}

// AllowLogging implements the logger.Permission interface. Repeated faults are
// only logged if extended fault logging is enabled.
func (p *PPCPreferences) AllowLogging() bool {
	return p.ExtendedFaultLogging.Get().(bool)
}
