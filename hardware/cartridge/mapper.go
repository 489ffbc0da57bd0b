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

package cartridge

import (
	"github.com/jetsetilly/gophernes/hardware/savestate"
)

// Mirroring describes how the two physical nametables are arranged in the
// four logical nametable slots of the PPU address space.
type Mirroring int

// List of valid Mirroring values.
const (
	OneScreenLow Mirroring = iota
	OneScreenHigh
	Vertical
	Horizontal
)

func (m Mirroring) String() string {
	switch m {
	case OneScreenLow:
		return "one screen (low)"
	case OneScreenHigh:
		return "one screen (high)"
	case Vertical:
		return "vertical"
	case Horizontal:
		return "horizontal"
	}
	return "unknown"
}

// Nametable returns the physical nametable (0 or 1) for the logical
// nametable slot (0 to 3).
func (m Mirroring) Nametable(slot int) int {
	switch m {
	case OneScreenLow:
		return 0
	case OneScreenHigh:
		return 1
	case Vertical:
		return slot & 0x01
	case Horizontal:
		return (slot >> 1) & 0x01
	}
	return 0
}

// Mapper implementations translate CPU and PPU addresses into offsets into
// the program and graphics storage of the cartridge.
type Mapper interface {
	savestate.Component

	// the iNES mapper number
	ID() int

	String() string

	// return mapper to its power-on state
	Reset()

	// a write into the program ROM range. address is in the range $8000 to
	// $ffff
	Write(address uint16, data uint8)

	// the offset into program storage for an address in the range $8000 to
	// $ffff
	MapProgram(address uint16) int

	// the offset into graphics storage for an address in the range $0000 to
	// $1fff
	MapGraphics(address uint16) int

	// current nametable arrangement
	Mirroring() Mirroring
}
