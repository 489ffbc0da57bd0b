// This file is part of GopherNES.
//
// GopherNES is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// GopherNES is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with GopherNES.  If not, see <https://www.gnu.org/licenses/>.

// Package preferences contains the preference values used by the hardware
// emulation.
package preferences

import (
	"errors"

	"github.com/jetsetilly/gophernes/paths"
	"github.com/jetsetilly/gophernes/prefs"
)

// Preferences defines and collates all the preference values used by the
// hardware emulation.
type Preferences struct {
	dsk *prefs.Disk

	// initialise work RAM to random values on power-on
	RandomState prefs.Bool

	// volume applied to the APU output after filtering
	Volume prefs.Float

	// sample rate of audio pulled from the APU
	SampleRate prefs.Int

	// multiplier applied to the wall-clock time driving the emulation
	FastForward prefs.Float
}

func (p *Preferences) String() string {
	return p.dsk.String()
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type. Values are loaded from the preferences file if it
// exists.
func NewPreferences() (*Preferences, error) {
	return newPreferences(paths.ResourcePath(prefs.DefaultPrefsFile))
}

// NewPreferencesFromFile is like NewPreferences() but uses the named file.
func NewPreferencesFromFile(filename string) (*Preferences, error) {
	return newPreferences(filename)
}

func newPreferences(filename string) (*Preferences, error) {
	p := &Preferences{}
	p.SetDefaults()

	var err error

	p.dsk, err = prefs.NewDisk(filename)
	if err != nil {
		return nil, err
	}

	err = p.dsk.Add("hardware.randstate", &p.RandomState)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("audio.volume", &p.Volume)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("audio.samplerate", &p.SampleRate)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("emulation.fastforward", &p.FastForward)
	if err != nil {
		return nil, err
	}

	err = p.dsk.Load()
	if err != nil && !errors.Is(err, prefs.ErrNoPrefsFile) {
		return nil, err
	}

	return p, nil
}

// SetDefaults reverts all preferences to their default values.
func (p *Preferences) SetDefaults() {
	p.RandomState.Set(false)
	p.Volume.Set(1.0)
	p.SampleRate.Set(44100)
	p.FastForward.Set(1.0)
}

// Load hardware preferences from disk.
func (p *Preferences) Load() error {
	return p.dsk.Load()
}

// Save current hardware preferences to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}
