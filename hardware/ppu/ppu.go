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
	"fmt"

	"github.com/jetsetilly/gophernes/curated"
	"github.com/jetsetilly/gophernes/hardware/savestate"
)

// Timing of the PPU.
const (
	DotsPerScanline   = 341
	ScanlinesPerFrame = 262

	VisibleScanlines = 240
	VBlankScanline   = 241
	PreRenderLine    = 261
)

// DotsPerFrame is the number of dots in an even frame. Odd frames are one
// dot shorter.
const DotsPerFrame = DotsPerScanline * ScanlinesPerFrame

// Position of the sprite-zero hit in the frame. Programs that rely on the
// flag for a split screen expect it to be set at this point.
const (
	SpriteZeroScanline = 30
	SpriteZeroDot      = 1
)

// Control register bits.
const (
	CtrlNametable       = 0x03
	CtrlIncrement32     = 0x04
	CtrlSpriteTable     = 0x08
	CtrlBackgroundTable = 0x10
	CtrlSprite16        = 0x20
	CtrlNMI             = 0x80
)

// Status register bits.
const (
	StatusOverflow   = 0x20
	StatusSpriteZero = 0x40
	StatusVBlank     = 0x80
)

// the top three bits of the status register are the only bits with meaning
const statusMask = StatusOverflow | StatusSpriteZero | StatusVBlank

// Register addresses (before mirroring) in the CPU address space.
const (
	RegControl = 0x2000 + iota
	RegMask
	RegStatus
	RegOAMAddr
	RegOAMData
	RegScroll
	RegAddress
	RegData
)

// Address range of the registers in the CPU address space, including
// mirrors.
const (
	RegistersOrigin = 0x2000
	RegistersMemtop = 0x3fff
)

// OAMSize is the size of object attribute memory in bytes.
const OAMSize = 256

// NMI is implemented by the CPU.
type NMI interface {
	NMI()
}

// Bus is the subset of the bus.Bus type required by the PPU.
type Bus interface {
	Read(address uint16) (uint8, bool)
	Write(address uint16, data uint8) bool
}

// PPU implements the bus.Device interface for the PPU registers.
type PPU struct {
	cpu NMI
	bus Bus

	vram *VRAM

	Control uint8
	Mask    uint8
	Status  uint8
	OAMAddr uint8

	// two write registers. the first write to scroll is the horizontal
	// value (stored in the high byte), the second the vertical value. the
	// first write to address is the high byte
	Scroll  uint16
	Address uint16

	// write toggle shared by the scroll and address registers. reset by
	// reading the status register
	latch bool

	// reads from the data register (except for palette reads) are delayed
	// by one read
	readBuffer uint8

	OAM [OAMSize]uint8

	dot      int
	scanline int
	frame    int

	// horizontal scroll latched at the start of vblank, including the
	// nametable selection. in the range 0 to 511
	DisplayScroll int

	render  *renderer
	handler FrameHandler
}

// NewPPU is the preferred method of initialisation for the PPU type. The bus
// argument is the PPU bus. The VRAM of the new PPU should be attached to
// that bus.
func NewPPU(cpu NMI, bus Bus, mirroring MirroringSource) *PPU {
	ppu := &PPU{
		cpu:  cpu,
		bus:  bus,
		vram: newVRAM(mirroring),
	}
	ppu.render = newRenderer(ppu)
	return ppu
}

func (ppu *PPU) String() string {
	return fmt.Sprintf("frame=%d scanline=%d dot=%d ctrl=%02x mask=%02x status=%02x",
		ppu.frame, ppu.scanline, ppu.dot, ppu.Control, ppu.Mask, ppu.Status)
}

// VRAM returns the device that should be attached to the PPU bus.
func (ppu *PPU) VRAM() *VRAM {
	return ppu.vram
}

// SetFrameHandler sets the handler to receive the rendered frame. A nil
// handler is allowed and the render pass is still performed.
func (ppu *PPU) SetFrameHandler(handler FrameHandler) {
	ppu.handler = handler
}

// Reset PPU to its power-on state. VRAM is not cleared.
func (ppu *PPU) Reset() {
	ppu.Control = 0
	ppu.Mask = 0
	ppu.Status = 0
	ppu.OAMAddr = 0
	ppu.Scroll = 0
	ppu.Address = 0
	ppu.latch = false
	ppu.readBuffer = 0
	ppu.dot = 0
	ppu.scanline = 0
	ppu.frame = 0
	ppu.DisplayScroll = 0
}

// Coords returns the current position of the PPU. Implements the
// random.Coords interface.
func (ppu *PPU) Coords() (frame int, scanline int, dot int) {
	return ppu.frame, ppu.scanline, ppu.dot
}

// Frame returns the number of frames since reset.
func (ppu *PPU) Frame() int {
	return ppu.frame
}

func (ppu *PPU) increment() {
	if ppu.Control&CtrlIncrement32 == CtrlIncrement32 {
		ppu.Address += 32
	} else {
		ppu.Address++
	}
	ppu.Address &= 0x3fff
}

// Read implements the bus.Device interface.
func (ppu *PPU) Read(address uint16) (uint8, bool) {
	switch RegistersOrigin + address&0x07 {
	case RegStatus:
		v := ppu.Status
		ppu.Status &^= statusMask
		ppu.latch = false
		return v, true

	case RegOAMData:
		return ppu.OAM[ppu.OAMAddr], true

	case RegData:
		var v uint8
		if ppu.Address >= PaletteOrigin {
			// palette reads are immediate. the buffer is filled with the
			// nametable data underneath the palette
			v, _ = ppu.bus.Read(ppu.Address)
			ppu.readBuffer, _ = ppu.bus.Read(ppu.Address - 0x1000)
		} else {
			v = ppu.readBuffer
			ppu.readBuffer, _ = ppu.bus.Read(ppu.Address)
		}
		ppu.increment()
		return v, true
	}

	// write-only registers
	return 0, true
}

// Peek implements the bus.Peeker interface. No register state is changed.
func (ppu *PPU) Peek(address uint16) (uint8, bool) {
	switch RegistersOrigin + address&0x07 {
	case RegStatus:
		return ppu.Status, true
	case RegOAMData:
		return ppu.OAM[ppu.OAMAddr], true
	case RegData:
		if ppu.Address >= PaletteOrigin {
			return ppu.bus.Read(ppu.Address)
		}
		return ppu.readBuffer, true
	}
	return 0, true
}

// Write implements the bus.Device interface.
func (ppu *PPU) Write(address uint16, data uint8) bool {
	switch RegistersOrigin + address&0x07 {
	case RegControl:
		ppu.Control = data
	case RegMask:
		ppu.Mask = data
	case RegStatus:
		// read-only
	case RegOAMAddr:
		ppu.OAMAddr = data
	case RegOAMData:
		ppu.OAM[ppu.OAMAddr] = data
		ppu.OAMAddr++
	case RegScroll:
		if ppu.latch {
			ppu.Scroll = (ppu.Scroll & 0xff00) | uint16(data)
		} else {
			ppu.Scroll = (ppu.Scroll & 0x00ff) | uint16(data)<<8
		}
		ppu.latch = !ppu.latch
	case RegAddress:
		if ppu.latch {
			ppu.Address = (ppu.Address & 0xff00) | uint16(data)
		} else {
			ppu.Address = (ppu.Address & 0x00ff) | uint16(data&0x3f)<<8
		}
		ppu.latch = !ppu.latch
	case RegData:
		ppu.bus.Write(ppu.Address, data)
		ppu.increment()
	}
	return true
}

// Tick advances the PPU by one dot.
func (ppu *PPU) Tick() {
	switch {
	case ppu.scanline == PreRenderLine:
		switch ppu.dot {
		case 1:
			ppu.Status &^= StatusSpriteZero | StatusVBlank
		case 257, 320:
			ppu.OAMAddr = 0
		}

	case ppu.scanline < VisibleScanlines:
		if ppu.scanline == SpriteZeroScanline && ppu.dot == SpriteZeroDot {
			ppu.Status |= StatusSpriteZero
		}
		if ppu.dot == 257 {
			ppu.OAMAddr = 0
		}

	case ppu.scanline == VBlankScanline:
		if ppu.dot == 1 {
			ppu.vblank()
		}
	}

	ppu.dot++

	lineLength := DotsPerScanline
	if ppu.scanline == PreRenderLine && ppu.frame&0x01 == 0x01 {
		lineLength--
	}

	if ppu.dot >= lineLength {
		ppu.dot = 0
		ppu.scanline++
		if ppu.scanline >= ScanlinesPerFrame {
			ppu.scanline = 0
			ppu.frame++
		}
	}
}

func (ppu *PPU) vblank() {
	ppu.Status |= StatusVBlank
	ppu.DisplayScroll = int(ppu.Scroll>>8) + 256*int(ppu.Control&0x01)

	if ppu.Control&CtrlNMI == CtrlNMI && ppu.cpu != nil {
		ppu.cpu.NMI()
	}

	f := ppu.render.frame()
	if ppu.handler != nil {
		ppu.handler.NewFrame(f)
	}
}

// Serialise implements the savestate.Component interface.
func (ppu *PPU) Serialise(enc *savestate.Encoder) {
	enc.Uint(uint64(ppu.Control))
	enc.Uint(uint64(ppu.Mask))
	enc.Uint(uint64(ppu.Status))
	enc.Uint(uint64(ppu.OAMAddr))
	enc.Uint(uint64(ppu.Scroll))
	enc.Uint(uint64(ppu.Address))
	enc.Bool(ppu.latch)
	enc.Uint(uint64(ppu.readBuffer))
	enc.Bytes(ppu.OAM[:])
	ppu.vram.serialise(enc)
	enc.Int(ppu.dot)
	enc.Int(ppu.scanline)
	enc.Int(ppu.frame)
	enc.Int(ppu.DisplayScroll)
}

// Deserialise implements the savestate.Component interface.
func (ppu *PPU) Deserialise(dec *savestate.Decoder) error {
	n := *ppu
	vram := *ppu.vram
	n.vram = &vram

	n.Control = dec.Uint8()
	n.Mask = dec.Uint8()
	n.Status = dec.Uint8()
	n.OAMAddr = dec.Uint8()
	n.Scroll = dec.Uint16()
	n.Address = dec.Uint16()
	n.latch = dec.Bool()
	n.readBuffer = dec.Uint8()
	dec.Bytes(n.OAM[:])
	n.vram.deserialise(dec)
	n.dot = dec.Int()
	n.scanline = dec.Int()
	n.frame = dec.Int()
	n.DisplayScroll = dec.Int()
	if err := dec.Err(); err != nil {
		return err
	}

	if n.dot < 0 || n.dot >= DotsPerScanline || n.scanline < 0 || n.scanline >= ScanlinesPerFrame {
		return curated.Errorf("%v: ppu position %d/%d", savestate.ErrCorrupt, n.scanline, n.dot)
	}

	// the VRAM instance is attached to the PPU bus and must be preserved
	*ppu.vram = vram
	n.vram = ppu.vram
	*ppu = n
	return nil
}
