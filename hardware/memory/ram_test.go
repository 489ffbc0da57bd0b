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

package memory_test

import (
	"testing"

	"github.com/jetsetilly/gophernes/hardware/memory"
	"github.com/jetsetilly/gophernes/hardware/savestate"
	"github.com/jetsetilly/gophernes/random"
	"github.com/jetsetilly/gophernes/test"
)

func TestMirrors(t *testing.T) {
	ram := memory.NewRAM()
	test.ExpectSuccess(t, ram.Write(0x0123, 0x55))

	for _, a := range []uint16{0x0123, 0x0923, 0x1123, 0x1923} {
		v, ok := ram.Read(a)
		test.ExpectSuccess(t, ok)
		test.ExpectEquality(t, v, uint8(0x55), a)
	}
}

func TestReset(t *testing.T) {
	ram := memory.NewRAM()
	rnd := random.NewRandom(nil)
	rnd.ZeroSeed = true

	ram.Reset(rnd)
	var nonzero bool
	for a := uint16(0); a < memory.Size; a++ {
		if v, _ := ram.Read(a); v != 0 {
			nonzero = true
			break
		}
	}
	test.ExpectSuccess(t, nonzero)

	ram.Reset(nil)
	for a := uint16(0); a < memory.Size; a++ {
		v, _ := ram.Read(a)
		test.DemandEquality(t, v, uint8(0))
	}
}

func TestSerialise(t *testing.T) {
	ram := memory.NewRAM()
	ram.Write(0x07ff, 0xaa)

	w := savestate.NewWriter()
	test.DemandSuccess(t, w.Add(savestate.RAM, ram))

	r, err := savestate.NewReader(w.Bytes())
	test.DemandSuccess(t, err)

	cp := memory.NewRAM()
	test.DemandSuccess(t, r.Restore(savestate.RAM, cp))
	v, _ := cp.Read(0x07ff)
	test.ExpectEquality(t, v, uint8(0xaa))
}
