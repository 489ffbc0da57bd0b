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

package apu

import (
	"fmt"
	"math"
	"sync"

	"github.com/jetsetilly/gophernes/hardware/preferences"
	"github.com/jetsetilly/gophernes/hardware/savestate"
)

// Address of the APU registers in the CPU address space.
const (
	RegPulse1    = 0x4000
	RegPulse2    = 0x4004
	RegTriangle  = 0x4008
	RegNoise     = 0x400c
	RegDMC       = 0x4010
	RegDMCMemtop = 0x4013
	RegStatus    = 0x4015
)

// Channel bits in the status register.
const (
	StatusPulse1   = 0x01
	StatusPulse2   = 0x02
	StatusTriangle = 0x04
	StatusNoise    = 0x08
	StatusDMC      = 0x10
)

// APU implements the bus.Device and savestate.Component interfaces.
type APU struct {
	prefs *preferences.Preferences

	// crit guards every field below. Progress() is usually called from the
	// audio goroutine
	crit sync.Mutex

	pulse    [2]pulse
	triangle triangle
	noise    noise
	dmc      dmc

	// CPU cycles accumulated towards the next step of the frame sequencer
	sequencerAcc float64

	// cascading count of sequencer steps. the 240Hz step happens every time,
	// the 120Hz step on every second and the 60Hz slot on every fourth
	sequencerCount int

	highPass filter
	lowPass  filter
}

// NewAPU is the preferred method of initialisation for the APU type. The
// preferences can be nil, in which case the volume is fixed at 1.0.
func NewAPU(prefs *preferences.Preferences) *APU {
	apu := &APU{prefs: prefs}
	apu.Reset()
	return apu
}

func (apu *APU) String() string {
	apu.crit.Lock()
	defer apu.crit.Unlock()
	return fmt.Sprintf("pulse1=%d pulse2=%d triangle=%d noise=%d",
		apu.pulse[0].length.count, apu.pulse[1].length.count,
		apu.triangle.length.count, apu.noise.length.count)
}

// Reset APU to its power-on state.
func (apu *APU) Reset() {
	apu.crit.Lock()
	defer apu.crit.Unlock()

	apu.pulse = [2]pulse{}
	apu.triangle = triangle{}
	apu.noise.reset()
	apu.dmc = dmc{}
	apu.sequencerAcc = 0
	apu.sequencerCount = 0
	apu.highPass = filter{}
	apu.lowPass = filter{}
}

// Read implements the bus.Device interface. Only the status register and the
// DMC registers can be read.
func (apu *APU) Read(address uint16) (uint8, bool) {
	apu.crit.Lock()
	defer apu.crit.Unlock()

	switch {
	case address == RegStatus:
		var v uint8
		if apu.pulse[0].length.count > 0 {
			v |= StatusPulse1
		}
		if apu.pulse[1].length.count > 0 {
			v |= StatusPulse2
		}
		if apu.triangle.length.count > 0 {
			v |= StatusTriangle
		}
		if apu.noise.length.count > 0 {
			v |= StatusNoise
		}
		if apu.dmc.enabled {
			v |= StatusDMC
		}
		return v, true
	case address >= RegDMC && address <= RegDMCMemtop:
		return apu.dmc.regs[address-RegDMC], true
	}

	return 0, false
}

// Write implements the bus.Device interface.
func (apu *APU) Write(address uint16, data uint8) bool {
	apu.crit.Lock()
	defer apu.crit.Unlock()

	reg := int(address & 0x03)

	switch {
	case address >= RegPulse1 && address < RegPulse2:
		apu.pulse[0].write(reg, data)
	case address >= RegPulse2 && address < RegTriangle:
		apu.pulse[1].write(reg, data)
	case address >= RegTriangle && address < RegNoise:
		apu.triangle.write(reg, data)
	case address >= RegNoise && address < RegDMC:
		apu.noise.write(reg, data)
	case address >= RegDMC && address <= RegDMCMemtop:
		apu.dmc.regs[reg] = data
	case address == RegStatus:
		apu.status(data)
	default:
		return false
	}

	return true
}

func (apu *APU) status(data uint8) {
	apu.pulse[0].enabled = data&StatusPulse1 == StatusPulse1
	apu.pulse[1].enabled = data&StatusPulse2 == StatusPulse2
	apu.triangle.enabled = data&StatusTriangle == StatusTriangle
	apu.noise.enabled = data&StatusNoise == StatusNoise
	apu.dmc.enabled = data&StatusDMC == StatusDMC

	if !apu.pulse[0].enabled {
		apu.pulse[0].length.count = 0
	}
	if !apu.pulse[1].enabled {
		apu.pulse[1].length.count = 0
	}
	if !apu.triangle.enabled {
		apu.triangle.length.count = 0
	}
	if !apu.noise.enabled {
		apu.noise.length.count = 0
	}
}

// Sequence advances the frame sequencer by one 240Hz step. Progress() steps
// the sequencer automatically so this is only required by callers that want
// to drive the sequencer directly.
func (apu *APU) Sequence() {
	apu.crit.Lock()
	defer apu.crit.Unlock()
	apu.sequence()
}

func (apu *APU) sequence() {
	apu.pulse[0].quarter()
	apu.pulse[1].quarter()
	apu.triangle.quarter()
	apu.noise.quarter()

	apu.sequencerCount++

	if apu.sequencerCount%2 == 0 {
		apu.pulse[0].half()
		apu.pulse[1].half()
		apu.triangle.half()
		apu.noise.half()
	}

	// the 60Hz slot would generate the frame interrupt, which is not emulated
	if apu.sequencerCount >= 4 {
		apu.sequencerCount = 0
	}
}

func (apu *APU) volume() float64 {
	if apu.prefs == nil {
		return 1.0
	}
	return apu.prefs.Volume.Get().(float64)
}

// Progress fills buf with interleaved samples for the number of channels at
// the sample rate. Every channel of a sample frame receives the same value.
// The APU is advanced by the amount of time represented by each sample frame.
func (apu *APU) Progress(buf []int16, sampleRate int, channels int) {
	if sampleRate <= 0 || channels <= 0 {
		return
	}

	rate := float64(sampleRate)
	cycles := ClockRate / rate
	vol := apu.volume()

	for i := 0; i+channels <= len(buf); i += channels {
		apu.crit.Lock()
		v := apu.sample(rate, cycles)
		apu.crit.Unlock()

		v = math.Max(-1.0, math.Min(1.0, v*vol))
		s := int16(v * math.MaxInt16)
		for c := 0; c < channels; c++ {
			buf[i+c] = s
		}
	}
}

// produce one sample and advance the APU by the number of CPU cycles
func (apu *APU) sample(rate float64, cycles float64) float64 {
	apu.sequencerAcc += cycles
	for apu.sequencerAcc >= sequencerPeriod {
		apu.sequencerAcc -= sequencerPeriod
		apu.sequence()
	}

	p1 := apu.pulse[0].sample(rate)
	p2 := apu.pulse[1].sample(rate)
	t := apu.triangle.sample(rate)
	n := apu.noise.sample(cycles)

	v := mixPulse(p1, p2) + mixTND(t, n, 0)
	v = apu.highPass.highPass(v, rate)
	v = apu.lowPass.lowPass(v, rate)

	return v
}

// Serialise implements the savestate.Component interface.
func (apu *APU) Serialise(enc *savestate.Encoder) {
	apu.crit.Lock()
	defer apu.crit.Unlock()

	apu.pulse[0].serialise(enc)
	apu.pulse[1].serialise(enc)
	apu.triangle.serialise(enc)
	apu.noise.serialise(enc)
	apu.dmc.serialise(enc)
	enc.Float(apu.sequencerAcc)
	enc.Uint(uint64(apu.sequencerCount))
	apu.highPass.serialise(enc)
	apu.lowPass.serialise(enc)
}

// Deserialise implements the savestate.Component interface. The APU is left
// unchanged if the data cannot be decoded.
func (apu *APU) Deserialise(dec *savestate.Decoder) error {
	var n APU
	n.pulse[0].deserialise(dec)
	n.pulse[1].deserialise(dec)
	n.triangle.deserialise(dec)
	n.noise.deserialise(dec)
	n.dmc.deserialise(dec)
	n.sequencerAcc = dec.Float()
	n.sequencerCount = int(dec.Uint() & 0x03)
	n.highPass.deserialise(dec)
	n.lowPass.deserialise(dec)
	if err := dec.Err(); err != nil {
		return err
	}

	apu.crit.Lock()
	defer apu.crit.Unlock()

	apu.pulse = n.pulse
	apu.triangle = n.triangle
	apu.noise = n.noise
	apu.dmc = n.dmc
	apu.sequencerAcc = n.sequencerAcc
	apu.sequencerCount = n.sequencerCount
	apu.highPass = n.highPass
	apu.lowPass = n.lowPass

	return nil
}
