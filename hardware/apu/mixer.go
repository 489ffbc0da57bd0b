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
	"math"

	"github.com/jetsetilly/gophernes/hardware/savestate"
)

// cutoff frequencies of the two filters approximating the output stage of the
// console
const (
	highPassCutoff = 90.0
	lowPassCutoff  = 14000.0
)

// first order recursive filter. the coefficient depends on the sample rate
// so is calculated for every sample
type filter struct {
	prevIn  float64
	prevOut float64
}

func rc(cutoff float64) float64 {
	return 1.0 / (2.0 * math.Pi * cutoff)
}

func (f *filter) highPass(v float64, sampleRate float64) float64 {
	r := rc(highPassCutoff)
	alpha := r / (r + 1.0/sampleRate)
	out := alpha * (f.prevOut + v - f.prevIn)
	f.prevIn = v
	f.prevOut = out
	return out
}

func (f *filter) lowPass(v float64, sampleRate float64) float64 {
	dt := 1.0 / sampleRate
	alpha := dt / (rc(lowPassCutoff) + dt)
	out := f.prevOut + alpha*(v-f.prevOut)
	f.prevIn = v
	f.prevOut = out
	return out
}

func (f *filter) serialise(enc *savestate.Encoder) {
	enc.Float(f.prevIn)
	enc.Float(f.prevOut)
}

func (f *filter) deserialise(dec *savestate.Decoder) {
	f.prevIn = dec.Float()
	f.prevOut = dec.Float()
}

// non-linear approximation of the pulse DAC. inputs are in the range 0 to 15
func mixPulse(p1, p2 uint8) float64 {
	s := float64(p1) + float64(p2)
	if s == 0 {
		return 0
	}
	return 95.88 / (8128.0/s + 100.0)
}

// non-linear approximation of the triangle, noise and DMC DAC
func mixTND(t, n, d uint8) float64 {
	s := float64(t)/8227.0 + float64(n)/12241.0 + float64(d)/22638.0
	if s == 0 {
		return 0
	}
	return 159.79 / (1.0/s + 100.0)
}
