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

// Package ppu implements the picture processing unit of the NES.
//
// The PPU is ticked once per dot. A frame is 262 scanlines of 341 dots. The
// pre-render scanline (261) is one dot shorter on odd frames. Timing events
// (vblank, NMI, the sprite-zero hit flag and OAM address resets) happen at
// fixed positions in the frame.
//
// Pixels are not produced per dot. Instead, once per frame at the start of
// vblank, the render pass builds images of the pattern tables, both
// nametables and the two sprite layers from the current state of VRAM. The
// images are given to the FrameHandler for the presentation layer to
// composite. The sprite-zero hit flag is set at a fixed position rather than
// by testing for overlapping pixels.
//
// The PPU is attached to the CPU bus for the register range $2000 to $3fff.
// The VRAM (nametables and palette) is attached to the PPU bus for the range
// $2000 to $3fff through the VRAM type.
package ppu
