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

// Package hardware is the base package for the NES emulation. It and its
// sub-packages contain everything required for a headless emulation.
//
// The NES type is the root of the emulation and contains external references
// to all the sub-systems. The emulation can be driven by wall-clock time with
// the Update() function, by a fixed duration with Advance(), by whole frames
// with RunForFrameCount() or it can be stepped one PPU dot at a time with
// Step().
//
// The APU is the exception. Audio samples are pulled from the APU by the
// audio backend, usually on a different goroutine, with the APU.Progress()
// function.
package hardware
