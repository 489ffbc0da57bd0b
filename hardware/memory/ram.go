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

// Package memory implements the 2KB of work RAM in the NES. The RAM is
// mirrored four times in the CPU address range $0000 to $1fff.
package memory

import (
	"github.com/jetsetilly/gophernes/hardware/savestate"
	"github.com/jetsetilly/gophernes/random"
)

// Size of work RAM in bytes.
const Size = 0x0800

// Origin and Memtop of the address range occupied by RAM, including mirrors.
const (
	Origin = 0x0000
	Memtop = 0x1fff
)

// RAM implements the bus.Device interface.
type RAM struct {
	data [Size]uint8
}

// NewRAM is the preferred method of initialisation for the RAM type.
func NewRAM() *RAM {
	return &RAM{}
}

// Reset RAM contents. If rnd is not nil the contents are randomised,
// otherwise they are zeroed.
func (ram *RAM) Reset(rnd *random.Random) {
	if rnd != nil {
		rnd.Fill(ram.data[:])
		return
	}
	clear(ram.data[:])
}

// Read implements the bus.Device interface.
func (ram *RAM) Read(address uint16) (uint8, bool) {
	return ram.data[address&(Size-1)], true
}

// Write implements the bus.Device interface.
func (ram *RAM) Write(address uint16, data uint8) bool {
	ram.data[address&(Size-1)] = data
	return true
}

// Serialise implements the savestate.Component interface.
func (ram *RAM) Serialise(enc *savestate.Encoder) {
	enc.Bytes(ram.data[:])
}

// Deserialise implements the savestate.Component interface.
func (ram *RAM) Deserialise(dec *savestate.Decoder) error {
	dec.Bytes(ram.data[:])
	return dec.Err()
}
