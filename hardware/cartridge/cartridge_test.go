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

package cartridge_test

import (
	"errors"
	"testing"

	"github.com/jetsetilly/gophernes/curated"
	"github.com/jetsetilly/gophernes/hardware/cartridge"
	"github.com/jetsetilly/gophernes/test"
)

// program data where every byte is the number of the 16KB bank
func bankedProgram(banks int) []uint8 {
	d := make([]uint8, banks*cartridge.ProgramBankSize)
	for i := range d {
		d[i] = uint8(i / cartridge.ProgramBankSize)
	}
	return d
}

func TestConstruction(t *testing.T) {
	_, err := cartridge.NewCartridge(bankedProgram(8), nil, 0)
	test.ExpectSuccess(t, errors.Is(err, cartridge.ErrUnsupportedMapper))

	_, err = cartridge.NewCartridge(bankedProgram(8), nil, 4)
	test.ExpectSuccess(t, errors.Is(err, cartridge.ErrUnsupportedMapper))
	test.ExpectSuccess(t, curated.IsAny(err))
	test.ExpectEquality(t, err.Error(), "cartridge: unsupported mapper: 4")

	_, err = cartridge.NewCartridge(nil, nil, 1)
	test.ExpectSuccess(t, errors.Is(err, cartridge.ErrBadSize))

	_, err = cartridge.NewCartridge(make([]uint8, 1000), nil, 1)
	test.ExpectSuccess(t, errors.Is(err, cartridge.ErrBadSize))

	_, err = cartridge.NewCartridge(bankedProgram(8), make([]uint8, 1000), 1)
	test.ExpectSuccess(t, errors.Is(err, cartridge.ErrBadSize))

	cart, err := cartridge.NewCartridge(bankedProgram(8), nil, 1)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, cart.Mapper().ID(), 1)
}

func TestProgramWindows(t *testing.T) {
	cart, err := cartridge.NewCartridge(bankedProgram(8), nil, 1)
	test.DemandSuccess(t, err)

	// power-on state maps bank 0 low and the last bank high
	v, ok := cart.Read(0x8000)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, v, uint8(0))
	v, _ = cart.Read(0xffff)
	test.ExpectEquality(t, v, uint8(7))

	// select bank 3 in the low window
	for i := 0; i < 5; i++ {
		cart.Write(0xe000, (0x03>>i)&0x01)
	}
	v, _ = cart.Read(0x8000)
	test.ExpectEquality(t, v, uint8(3))

	// program ROM is not writable
	v, _ = cart.Read(0x8123)
	cart.Write(0x8123, 0x7f)
	w, _ := cart.Read(0x8123)
	test.ExpectEquality(t, w, v)
}

func TestProgramRAM(t *testing.T) {
	cart, err := cartridge.NewCartridge(bankedProgram(2), nil, 1)
	test.DemandSuccess(t, err)

	test.ExpectSuccess(t, cart.Write(0x6000, 0x12))
	test.ExpectSuccess(t, cart.Write(0x7fff, 0x34))
	v, _ := cart.Read(0x6000)
	test.ExpectEquality(t, v, uint8(0x12))
	v, _ = cart.Read(0x7fff)
	test.ExpectEquality(t, v, uint8(0x34))

	// below the cartridge range
	_, ok := cart.Read(0x5fff)
	test.ExpectFailure(t, ok)
	test.ExpectFailure(t, cart.Write(0x5fff, 0))
}

func TestGraphics(t *testing.T) {
	cart, err := cartridge.NewCartridge(bankedProgram(2), nil, 1)
	test.DemandSuccess(t, err)

	g := cart.Graphics()
	test.ExpectSuccess(t, g.Write(0x1abc, 0x99))
	v, ok := g.Read(0x1abc)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, v, uint8(0x99))

	rom := make([]uint8, cartridge.GraphicsBankSize)
	rom[0x0010] = 0x42
	cart, err = cartridge.NewCartridge(bankedProgram(2), rom, 1)
	test.DemandSuccess(t, err)

	// graphics ROM ignores writes
	g = cart.Graphics()
	g.Write(0x0010, 0x00)
	v, _ = g.Read(0x0010)
	test.ExpectEquality(t, v, uint8(0x42))
}

func TestMirroring(t *testing.T) {
	test.ExpectEquality(t, cartridge.Vertical.Nametable(0), 0)
	test.ExpectEquality(t, cartridge.Vertical.Nametable(1), 1)
	test.ExpectEquality(t, cartridge.Vertical.Nametable(2), 0)
	test.ExpectEquality(t, cartridge.Horizontal.Nametable(1), 0)
	test.ExpectEquality(t, cartridge.Horizontal.Nametable(2), 1)
	test.ExpectEquality(t, cartridge.OneScreenHigh.Nametable(0), 1)
	test.ExpectEquality(t, cartridge.OneScreenLow.Nametable(3), 0)
}
