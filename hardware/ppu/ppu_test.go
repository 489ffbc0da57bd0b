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

package ppu_test

import (
	"testing"

	"github.com/jetsetilly/gophernes/hardware/bus"
	"github.com/jetsetilly/gophernes/hardware/cartridge"
	"github.com/jetsetilly/gophernes/hardware/ppu"
	"github.com/jetsetilly/gophernes/hardware/savestate"
	"github.com/jetsetilly/gophernes/test"
)

type nmi struct {
	count int
}

func (n *nmi) NMI() {
	n.count++
}

type mirroring struct {
	m cartridge.Mirroring
}

func (m *mirroring) Mirroring() cartridge.Mirroring {
	return m.m
}

type patterns struct {
	mem [0x2000]uint8
}

func (p *patterns) Read(address uint16) (uint8, bool) {
	return p.mem[address], true
}

func (p *patterns) Write(address uint16, data uint8) bool {
	p.mem[address] = data
	return true
}

type frames struct {
	count int
	last  *ppu.Frame
}

func (f *frames) NewFrame(frame *ppu.Frame) {
	f.count++
	f.last = frame
}

func newPPU(t *testing.T) (*ppu.PPU, *nmi, *patterns, *mirroring) {
	t.Helper()

	n := &nmi{}
	m := &mirroring{m: cartridge.Vertical}
	p := &patterns{}

	b := bus.NewBus("ppu", 0x3fff)
	pp := ppu.NewPPU(n, b, m)
	test.DemandSuccess(t, b.Attach(p, "patterns", 0x0000, 0x1fff))
	test.DemandSuccess(t, b.Attach(pp.VRAM(), "vram", 0x2000, 0x3fff))

	return pp, n, p, m
}

func ticks(pp *ppu.PPU, n int) {
	for i := 0; i < n; i++ {
		pp.Tick()
	}
}

func TestFrameLength(t *testing.T) {
	pp, _, _, _ := newPPU(t)

	// even frame
	ticks(pp, ppu.DotsPerFrame-1)
	f, s, d := pp.Coords()
	test.ExpectEquality(t, f, 0)
	test.ExpectEquality(t, s, ppu.PreRenderLine)
	test.ExpectEquality(t, d, ppu.DotsPerScanline-1)
	ticks(pp, 1)
	f, s, d = pp.Coords()
	test.ExpectEquality(t, f, 1)
	test.ExpectEquality(t, s, 0)
	test.ExpectEquality(t, d, 0)

	// odd frame is one dot shorter
	ticks(pp, ppu.DotsPerFrame-1)
	f, s, d = pp.Coords()
	test.ExpectEquality(t, f, 2)
	test.ExpectEquality(t, s, 0)
	test.ExpectEquality(t, d, 0)

	// and the next even frame is the full length again
	ticks(pp, ppu.DotsPerFrame-1)
	f, _, _ = pp.Coords()
	test.ExpectEquality(t, f, 2)
	ticks(pp, 1)
	f, s, d = pp.Coords()
	test.ExpectEquality(t, f, 3)
	test.ExpectEquality(t, s, 0)
	test.ExpectEquality(t, d, 0)
}

// number of ticks required to reach the dot of the scanline from the start
// of an even frame
func position(scanline int, dot int) int {
	return scanline*ppu.DotsPerScanline + dot
}

func TestVBlank(t *testing.T) {
	pp, n, _, _ := newPPU(t)
	h := &frames{}
	pp.SetFrameHandler(h)
	pp.Write(ppu.RegControl, ppu.CtrlNMI)

	ticks(pp, position(ppu.VBlankScanline, 1))
	test.ExpectEquality(t, pp.Status&ppu.StatusVBlank, uint8(0))
	test.ExpectEquality(t, n.count, 0)
	test.ExpectEquality(t, h.count, 0)

	ticks(pp, 1)
	test.ExpectEquality(t, pp.Status&ppu.StatusVBlank, uint8(ppu.StatusVBlank))
	test.ExpectEquality(t, n.count, 1)
	test.ExpectEquality(t, h.count, 1)

	// only one NMI for the vblank
	ticks(pp, ppu.DotsPerScanline*10)
	test.ExpectEquality(t, n.count, 1)

	// status read returns the flags and then clears the top three bits
	v, ok := pp.Read(ppu.RegStatus)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, v&0xe0, uint8(ppu.StatusVBlank|ppu.StatusSpriteZero))
	v, _ = pp.Read(ppu.RegStatus)
	test.ExpectEquality(t, v&0xe0, uint8(0))
}

func TestVBlankNoNMI(t *testing.T) {
	pp, n, _, _ := newPPU(t)
	ticks(pp, ppu.DotsPerFrame)
	test.ExpectEquality(t, n.count, 0)
}

func TestPreRender(t *testing.T) {
	pp, _, _, _ := newPPU(t)

	ticks(pp, position(ppu.PreRenderLine, 1))
	test.ExpectEquality(t, pp.Status&(ppu.StatusVBlank|ppu.StatusSpriteZero), uint8(ppu.StatusVBlank|ppu.StatusSpriteZero))
	ticks(pp, 1)
	test.ExpectEquality(t, pp.Status&(ppu.StatusVBlank|ppu.StatusSpriteZero), uint8(0))

	// OAM address is reset at dots 257 and 320 of the pre-render line
	pp.Write(ppu.RegOAMAddr, 0x10)
	ticks(pp, 255)
	test.ExpectEquality(t, pp.OAMAddr, uint8(0x10))
	ticks(pp, 1)
	test.ExpectEquality(t, pp.OAMAddr, uint8(0x00))
	pp.Write(ppu.RegOAMAddr, 0x20)
	ticks(pp, 320-258)
	test.ExpectEquality(t, pp.OAMAddr, uint8(0x20))
	ticks(pp, 1)
	test.ExpectEquality(t, pp.OAMAddr, uint8(0x00))
}

func TestSpriteZero(t *testing.T) {
	pp, _, _, _ := newPPU(t)
	ticks(pp, position(ppu.SpriteZeroScanline, ppu.SpriteZeroDot))
	test.ExpectEquality(t, pp.Status&ppu.StatusSpriteZero, uint8(0))
	ticks(pp, 1)
	test.ExpectEquality(t, pp.Status&ppu.StatusSpriteZero, uint8(ppu.StatusSpriteZero))
}

func TestDisplayScroll(t *testing.T) {
	pp, _, _, _ := newPPU(t)
	pp.Write(ppu.RegControl, 0x01)
	pp.Write(ppu.RegScroll, 0x20)
	pp.Write(ppu.RegScroll, 0x08)
	test.ExpectEquality(t, pp.Scroll, uint16(0x2008))

	ticks(pp, position(ppu.VBlankScanline, 2))
	test.ExpectEquality(t, pp.DisplayScroll, 256+0x20)
}

func TestDataPort(t *testing.T) {
	pp, _, p, _ := newPPU(t)

	// write to nametable
	pp.Write(ppu.RegAddress, 0x20)
	pp.Write(ppu.RegAddress, 0x00)
	pp.Write(ppu.RegData, 0x11)
	pp.Write(ppu.RegData, 0x22)
	test.ExpectEquality(t, pp.Address, uint16(0x2002))
	test.ExpectEquality(t, pp.VRAM().Nametables[0][0], uint8(0x11))
	test.ExpectEquality(t, pp.VRAM().Nametables[0][1], uint8(0x22))

	// reads are delayed by one
	pp.Read(ppu.RegStatus)
	pp.Write(ppu.RegAddress, 0x20)
	pp.Write(ppu.RegAddress, 0x00)
	v, _ := pp.Read(ppu.RegData)
	test.ExpectEquality(t, v, uint8(0x00))
	v, _ = pp.Read(ppu.RegData)
	test.ExpectEquality(t, v, uint8(0x11))
	v, _ = pp.Read(ppu.RegData)
	test.ExpectEquality(t, v, uint8(0x22))

	// increment by 32
	pp.Write(ppu.RegControl, ppu.CtrlIncrement32)
	pp.Write(ppu.RegAddress, 0x00)
	pp.Write(ppu.RegAddress, 0x00)
	pp.Write(ppu.RegData, 0xaa)
	pp.Write(ppu.RegData, 0xbb)
	test.ExpectEquality(t, p.mem[0x0000], uint8(0xaa))
	test.ExpectEquality(t, p.mem[0x0020], uint8(0xbb))

	// registers are mirrored every eight bytes
	pp.Write(0x3ffe, 0x3f)
	pp.Write(0x3ffe, 0x00)
	pp.Write(0x3fff, 0x0f)
	v, _ = pp.Read(0x2007 + 0x08)
	test.ExpectEquality(t, v, uint8(0x0f))
}

func TestPalette(t *testing.T) {
	pp, _, _, _ := newPPU(t)
	vr := pp.VRAM()

	vr.Write(0x3f10, 0x21)
	test.ExpectEquality(t, vr.Palette[0x00], uint8(0x21))
	vr.Write(0x3f1c, 0x22)
	test.ExpectEquality(t, vr.Palette[0x0c], uint8(0x22))
	vr.Write(0x3f11, 0x23)
	test.ExpectEquality(t, vr.Palette[0x11], uint8(0x23))

	// palette is mirrored every 32 bytes
	v, _ := vr.Read(0x3f31)
	test.ExpectEquality(t, v, uint8(0x23))
}

func TestNametableMirroring(t *testing.T) {
	pp, _, _, m := newPPU(t)
	vr := pp.VRAM()

	m.m = cartridge.Vertical
	vr.Write(0x2805, 0x01)
	test.ExpectEquality(t, vr.Nametables[0][5], uint8(0x01))
	vr.Write(0x2c05, 0x02)
	test.ExpectEquality(t, vr.Nametables[1][5], uint8(0x02))

	m.m = cartridge.Horizontal
	vr.Write(0x2406, 0x03)
	test.ExpectEquality(t, vr.Nametables[0][6], uint8(0x03))
	vr.Write(0x2806, 0x04)
	test.ExpectEquality(t, vr.Nametables[1][6], uint8(0x04))

	// $3000 to $3eff mirrors $2000 to $2eff
	v, _ := vr.Read(0x3806)
	test.ExpectEquality(t, v, uint8(0x04))
}

func TestSerialise(t *testing.T) {
	pp, _, _, _ := newPPU(t)
	pp.Write(ppu.RegControl, 0x90)
	pp.Write(ppu.RegScroll, 0x12)
	pp.Write(ppu.RegOAMData, 0x55)
	pp.VRAM().Write(0x2001, 0x66)
	ticks(pp, 12345)

	w := savestate.NewWriter()
	test.DemandSuccess(t, w.Add(savestate.PPU, pp))
	r, err := savestate.NewReader(w.Bytes())
	test.DemandSuccess(t, err)

	cp, _, _, _ := newPPU(t)
	test.DemandSuccess(t, r.Restore(savestate.PPU, cp))
	test.ExpectEquality(t, cp.String(), pp.String())
	test.ExpectEquality(t, cp.OAM, pp.OAM)
	test.ExpectEquality(t, cp.VRAM().Nametables, pp.VRAM().Nametables)

	// restored latch means the next scroll write is the vertical value
	cp.Write(ppu.RegScroll, 0x34)
	test.ExpectEquality(t, cp.Scroll, uint16(0x1234))
}

func TestPeek(t *testing.T) {
	pp, _, _, _ := newPPU(t)
	ticks(pp, position(ppu.VBlankScanline, 2))
	test.DemandEquality(t, pp.Status&ppu.StatusVBlank, uint8(ppu.StatusVBlank))

	v, ok := pp.Peek(ppu.RegStatus)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, v&ppu.StatusVBlank, uint8(ppu.StatusVBlank))
	test.ExpectEquality(t, pp.Status&ppu.StatusVBlank, uint8(ppu.StatusVBlank))

	// the read buffer and address are unchanged by peeking the data port
	pp.Write(ppu.RegAddress, 0x20)
	pp.Write(ppu.RegAddress, 0x00)
	pp.Write(ppu.RegData, 0x11)
	pp.Write(ppu.RegAddress, 0x20)
	pp.Write(ppu.RegAddress, 0x00)
	pp.Read(ppu.RegData)
	test.DemandEquality(t, pp.Address, uint16(0x2001))

	v, _ = pp.Peek(ppu.RegData)
	test.ExpectEquality(t, v, uint8(0x11))
	v, _ = pp.Peek(ppu.RegData)
	test.ExpectEquality(t, v, uint8(0x11))
	test.ExpectEquality(t, pp.Address, uint16(0x2001))
}
