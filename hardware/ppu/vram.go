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

package ppu

import (
	"github.com/jetsetilly/gophernes/hardware/cartridge"
	"github.com/jetsetilly/gophernes/hardware/savestate"
)

// Address ranges of VRAM in the PPU address space.
const (
	NametableOrigin = 0x2000
	NametableMemtop = 0x3eff
	PaletteOrigin   = 0x3f00
	PaletteMemtop   = 0x3fff
)

// NametableSize is the size of a physical nametable, including the
// attribute table.
const NametableSize = 0x400

// PaletteSize is the number of entries in palette RAM.
const PaletteSize = 32

// MirroringSource is implemented by the cartridge, which decides how the
// nametables are arranged.
type MirroringSource interface {
	Mirroring() cartridge.Mirroring
}

// VRAM implements the bus.Device interface for the nametables and the
// palette.
type VRAM struct {
	mirroring MirroringSource

	Nametables [2][NametableSize]uint8
	Palette    [PaletteSize]uint8
}

func newVRAM(mirroring MirroringSource) *VRAM {
	return &VRAM{mirroring: mirroring}
}

func (vr *VRAM) nametable(address uint16) (*[NametableSize]uint8, uint16) {
	a := (address - NametableOrigin) & 0x0fff
	slot := int(a / NametableSize)
	return &vr.Nametables[vr.mirroring.Mirroring().Nametable(slot)], a % NametableSize
}

// palette entries $10, $14, $18 and $1c are mirrors of $00, $04, $08 and $0c
func paletteIndex(address uint16) uint16 {
	a := address & 0x1f
	if a >= 0x10 && a&0x03 == 0 {
		a -= 0x10
	}
	return a
}

// Read implements the bus.Device interface.
func (vr *VRAM) Read(address uint16) (uint8, bool) {
	switch {
	case address >= PaletteOrigin:
		return vr.Palette[paletteIndex(address)], true
	case address >= NametableOrigin:
		nt, a := vr.nametable(address)
		return nt[a], true
	}
	return 0, false
}

// Write implements the bus.Device interface.
func (vr *VRAM) Write(address uint16, data uint8) bool {
	switch {
	case address >= PaletteOrigin:
		vr.Palette[paletteIndex(address)] = data & 0x3f
		return true
	case address >= NametableOrigin:
		nt, a := vr.nametable(address)
		nt[a] = data
		return true
	}
	return false
}

func (vr *VRAM) serialise(enc *savestate.Encoder) {
	enc.Bytes(vr.Nametables[0][:])
	enc.Bytes(vr.Nametables[1][:])
	enc.Bytes(vr.Palette[:])
}

func (vr *VRAM) deserialise(dec *savestate.Decoder) {
	dec.Bytes(vr.Nametables[0][:])
	dec.Bytes(vr.Nametables[1][:])
	dec.Bytes(vr.Palette[:])
}
