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
	"errors"
	"fmt"

	"github.com/jetsetilly/gophernes/curated"
	"github.com/jetsetilly/gophernes/hardware/bus"
	"github.com/jetsetilly/gophernes/hardware/savestate"
)

// Sizes of cartridge storage units.
const (
	ProgramBankSize  = 0x4000
	GraphicsBankSize = 0x2000
	ProgramRAMSize   = 0x2000

	// graphics RAM used when the cartridge has no graphics ROM
	DefaultGraphicsRAMSize = GraphicsBankSize * 2
)

// Address ranges of the cartridge in the CPU address space.
const (
	ProgramRAMOrigin = 0x6000
	ProgramRAMMemtop = 0x7fff
	ProgramOrigin    = 0x8000
	ProgramMemtop    = 0xffff
)

// Address range of the cartridge in the PPU address space.
const (
	GraphicsOrigin = 0x0000
	GraphicsMemtop = 0x1fff
)

// Sentinel errors returned by NewCartridge().
var (
	ErrUnsupportedMapper = errors.New("cartridge: unsupported mapper")
	ErrBadSize           = errors.New("cartridge: invalid storage size")
)

// Cartridge implements the bus.Device interface for the CPU bus. The
// graphics data is available to the PPU bus through the Graphics() function.
type Cartridge struct {
	program    []uint8
	graphics   []uint8
	programRAM [ProgramRAMSize]uint8

	graphicsRAM bool

	mapper Mapper
}

// NewCartridge creates a cartridge from program and graphics data. Graphics
// data can be empty, in which case the cartridge uses graphics RAM. The
// program data is copied and is not changed by the emulation.
func NewCartridge(program []uint8, graphics []uint8, mapperID int) (*Cartridge, error) {
	if len(program) == 0 || len(program)%ProgramBankSize != 0 {
		return nil, curated.Errorf("%v: program is %d bytes", ErrBadSize, len(program))
	}
	if len(graphics)%GraphicsBankSize != 0 {
		return nil, curated.Errorf("%v: graphics is %d bytes", ErrBadSize, len(graphics))
	}

	cart := &Cartridge{
		program: make([]uint8, len(program)),
	}
	copy(cart.program, program)

	if len(graphics) == 0 {
		cart.graphicsRAM = true
		cart.graphics = make([]uint8, DefaultGraphicsRAMSize)
	} else {
		cart.graphics = make([]uint8, len(graphics))
		copy(cart.graphics, graphics)
	}

	switch mapperID {
	case 1:
		cart.mapper = newMMC1(len(cart.program), len(cart.graphics), cart.graphicsRAM)
	default:
		return nil, curated.Errorf("%v: %d", ErrUnsupportedMapper, mapperID)
	}

	return cart, nil
}

func (cart *Cartridge) String() string {
	storage := "ROM"
	if cart.graphicsRAM {
		storage = "RAM"
	}
	return fmt.Sprintf("%s: %dKB program, %dKB graphics %s", cart.mapper.String(),
		len(cart.program)/1024, len(cart.graphics)/1024, storage)
}

// Mapper returns the cartridge's mapper.
func (cart *Cartridge) Mapper() Mapper {
	return cart.mapper
}

// Mirroring returns the current nametable arrangement.
func (cart *Cartridge) Mirroring() Mirroring {
	return cart.mapper.Mirroring()
}

// Reset cartridge to its power-on state. Graphics RAM and program RAM are
// not cleared.
func (cart *Cartridge) Reset() {
	cart.mapper.Reset()
}

// Read implements the bus.Device interface.
func (cart *Cartridge) Read(address uint16) (uint8, bool) {
	switch {
	case address >= ProgramOrigin:
		return cart.program[cart.mapper.MapProgram(address)], true
	case address >= ProgramRAMOrigin:
		return cart.programRAM[address-ProgramRAMOrigin], true
	}
	return 0, false
}

// Write implements the bus.Device interface.
func (cart *Cartridge) Write(address uint16, data uint8) bool {
	switch {
	case address >= ProgramOrigin:
		cart.mapper.Write(address, data)
		return true
	case address >= ProgramRAMOrigin:
		cart.programRAM[address-ProgramRAMOrigin] = data
		return true
	}
	return false
}

// graphics implements the bus.Device interface for the PPU bus.
type graphics struct {
	cart *Cartridge
}

func (g graphics) Read(address uint16) (uint8, bool) {
	if address > GraphicsMemtop {
		return 0, false
	}
	return g.cart.graphics[g.cart.mapper.MapGraphics(address)], true
}

// writes to graphics ROM are ignored but are still handled.
func (g graphics) Write(address uint16, data uint8) bool {
	if address > GraphicsMemtop {
		return false
	}
	if g.cart.graphicsRAM {
		g.cart.graphics[g.cart.mapper.MapGraphics(address)] = data
	}
	return true
}

// Graphics returns the device that should be attached to the PPU bus.
func (cart *Cartridge) Graphics() bus.Device {
	return graphics{cart: cart}
}

// GraphicsRAM returns the save state component for the graphics RAM. If the
// cartridge has graphics ROM then the component is empty.
func (cart *Cartridge) GraphicsRAM() savestate.Component {
	return savestate.Adapt(
		func(enc *savestate.Encoder) {
			if cart.graphicsRAM {
				enc.Bytes(cart.graphics)
			} else {
				enc.Bytes(nil)
			}
		},
		func(dec *savestate.Decoder) error {
			if cart.graphicsRAM {
				dec.Bytes(cart.graphics)
			} else {
				dec.Bytes(nil)
			}
			return dec.Err()
		})
}

// ProgramRAM returns the save state component for the program RAM.
func (cart *Cartridge) ProgramRAM() savestate.Component {
	return savestate.Adapt(
		func(enc *savestate.Encoder) {
			enc.Bytes(cart.programRAM[:])
		},
		func(dec *savestate.Decoder) error {
			dec.Bytes(cart.programRAM[:])
			return dec.Err()
		})
}
