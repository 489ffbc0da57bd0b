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
	"image"
	"image/color"
)

// Sizes of the rendered images.
const (
	ScreenWidth  = 256
	ScreenHeight = 240

	PatternTableWidth  = 256
	PatternTableHeight = 128
)

// Sprite layers.
const (
	Behind = iota
	Front
)

// Frame contains the images produced by the render pass. The images are
// reused for every frame and should be copied if they are required after
// the FrameHandler returns.
type Frame struct {
	// frame number of the PPU at the time of rendering
	Number int

	// both pattern tables side by side, drawn with the first background
	// palette. for diagnostics
	PatternTable *image.RGBA

	// the two physical nametables
	Nametables [2]*image.RGBA

	// sprites drawn behind and in front of the background. pixels without a
	// sprite are transparent
	Sprites [2]*image.RGBA

	// the universal background color
	Background color.RGBA

	// horizontal scroll in the range 0 to 511. a value of 256 or more
	// starts in the second nametable
	DisplayScroll int

	// value of the mask register
	Mask uint8
}

// FrameHandler implementations receive the rendered frame once per frame.
type FrameHandler interface {
	NewFrame(f *Frame)
}

type renderer struct {
	ppu *PPU
	f   Frame
}

func newRenderer(ppu *PPU) *renderer {
	r := &renderer{ppu: ppu}
	r.f.PatternTable = image.NewRGBA(image.Rect(0, 0, PatternTableWidth, PatternTableHeight))
	for i := range r.f.Nametables {
		r.f.Nametables[i] = image.NewRGBA(image.Rect(0, 0, ScreenWidth, ScreenHeight))
	}
	for i := range r.f.Sprites {
		r.f.Sprites[i] = image.NewRGBA(image.Rect(0, 0, ScreenWidth, ScreenHeight))
	}
	return r
}

func (r *renderer) color(paletteAddr uint16) color.RGBA {
	return Palette[r.ppu.vram.Palette[paletteIndex(paletteAddr)]&0x3f]
}

// 2-bit value of the pixel in the tile row. row is 0 to 7 and col is 0 to 7
// from the left
func (r *renderer) pixel(table uint16, tile uint8, row int, col int) uint8 {
	addr := table + uint16(tile)*16 + uint16(row)
	lo, _ := r.ppu.bus.Read(addr)
	hi, _ := r.ppu.bus.Read(addr + 8)
	bit := 7 - col
	return ((hi>>bit)&0x01)<<1 | (lo>>bit)&0x01
}

func (r *renderer) frame() *Frame {
	r.f.Number = r.ppu.frame
	r.f.DisplayScroll = r.ppu.DisplayScroll
	r.f.Mask = r.ppu.Mask
	r.f.Background = r.color(0)

	r.patternTables()
	for i := range r.f.Nametables {
		r.nametable(i)
	}
	r.sprites()

	return &r.f
}

func (r *renderer) patternTables() {
	img := r.f.PatternTable
	for t := 0; t < 2; t++ {
		table := uint16(t) * 0x1000
		for tile := 0; tile < 256; tile++ {
			ox := t*128 + (tile%16)*8
			oy := (tile / 16) * 8
			for row := 0; row < 8; row++ {
				for col := 0; col < 8; col++ {
					c := r.pixel(table, uint8(tile), row, col)
					img.SetRGBA(ox+col, oy+row, r.color(uint16(c)))
				}
			}
		}
	}
}

func (r *renderer) nametable(n int) {
	img := r.f.Nametables[n]
	nt := &r.ppu.vram.Nametables[n]

	var table uint16
	if r.ppu.Control&CtrlBackgroundTable == CtrlBackgroundTable {
		table = 0x1000
	}

	for ty := 0; ty < 30; ty++ {
		for tx := 0; tx < 32; tx++ {
			tile := nt[ty*32+tx]

			// each attribute byte covers 4x4 tiles. each 2x2 quadrant has
			// its own palette
			attr := nt[0x3c0+(ty/4)*8+tx/4]
			shift := ((ty%4)/2)*4 + ((tx%4)/2)*2
			pal := uint16((attr >> shift) & 0x03)

			for row := 0; row < 8; row++ {
				for col := 0; col < 8; col++ {
					c := r.pixel(table, tile, row, col)
					var clr color.RGBA
					if c == 0 {
						clr = r.color(0)
					} else {
						clr = r.color(pal*4 + uint16(c))
					}
					img.SetRGBA(tx*8+col, ty*8+row, clr)
				}
			}
		}
	}
}

func (r *renderer) sprites() {
	for i := range r.f.Sprites {
		clear(r.f.Sprites[i].Pix)
	}

	height := 8
	if r.ppu.Control&CtrlSprite16 == CtrlSprite16 {
		height = 16
	}

	// sprites earlier in OAM have priority so are drawn last
	for i := 63; i >= 0; i-- {
		oam := r.ppu.OAM[i*4 : i*4+4]
		y := int(oam[0]) + 1
		tile := oam[1]
		attr := oam[2]
		x := int(oam[3])

		if y >= ScreenHeight {
			continue
		}

		layer := Front
		if attr&0x20 == 0x20 {
			layer = Behind
		}
		img := r.f.Sprites[layer]

		flipH := attr&0x40 == 0x40
		flipV := attr&0x80 == 0x80
		pal := 0x10 + uint16(attr&0x03)*4

		var table uint16
		if height == 16 {
			table = uint16(tile&0x01) * 0x1000
			tile &= 0xfe
		} else if r.ppu.Control&CtrlSpriteTable == CtrlSpriteTable {
			table = 0x1000
		}

		for row := 0; row < height; row++ {
			sy := y + row
			if sy >= ScreenHeight {
				break
			}

			sr := row
			if flipV {
				sr = height - 1 - row
			}

			for col := 0; col < 8; col++ {
				sx := x + col
				if sx >= ScreenWidth {
					break
				}

				sc := col
				if flipH {
					sc = 7 - col
				}

				c := r.pixel(table, tile+uint8(sr/8), sr%8, sc)
				if c == 0 {
					continue
				}
				img.SetRGBA(sx, sy, r.color(pal+uint16(c)))
			}
		}
	}
}
