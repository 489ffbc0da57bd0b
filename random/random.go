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

package random

import (
	"math/rand"
	"time"
)

// the base seed for all random numbers
var baseSeed int64

func init() {
	baseSeed = int64(time.Now().Nanosecond())
}

// Coords is implemented by any component that can report the position of
// the emulation.
type Coords interface {
	Coords() (frame int, scanline int, dot int)
}

// Random is a random number generator that is sensitive to the position of
// the emulation.
type Random struct {
	coords Coords

	// use zero seed rather than the random base seed. useful when random
	// numbers must be predictable, such as in tests
	ZeroSeed bool
}

// NewRandom is the preferred method of initialisation for the Random type.
func NewRandom(coords Coords) *Random {
	return &Random{
		coords: coords,
	}
}

// dots in a single frame
const frameSize = 341 * 262

func (rnd *Random) rand() *rand.Rand {
	var sum int64
	if rnd.coords != nil {
		f, s, d := rnd.coords.Coords()
		sum = int64(f*frameSize + s*341 + d)
	}
	if rnd.ZeroSeed {
		return rand.New(rand.NewSource(sum))
	}
	return rand.New(rand.NewSource(baseSeed + sum))
}

// Intn returns a non-negative random number in the range [0,n).
func (rnd *Random) Intn(n int) int {
	return rnd.rand().Intn(n)
}

// Fill the byte slice with random values. The same source is used for every
// byte.
func (rnd *Random) Fill(b []uint8) {
	r := rnd.rand()
	for i := range b {
		b[i] = uint8(r.Intn(256))
	}
}

// SetCoords changes the source of the emulation position.
func (rnd *Random) SetCoords(coords Coords) {
	rnd.coords = coords
}
