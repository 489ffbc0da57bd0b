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

// Package apu emulates the audio processing unit. There are four sound
// generating channels: two pulse channels, a triangle channel and a noise
// channel. The delta modulation channel registers are stored and can be read
// back but no sample playback takes place.
//
// Unlike the rest of the hardware the APU is not stepped by the main
// emulation loop. Instead, samples are pulled by the audio backend with the
// Progress() function, which advances the channels and the frame sequencer by
// the amount of time represented by each sample. Register writes from the CPU
// and calls to Progress() can therefore happen on different goroutines and all
// state is guarded by a single mutex.
//
// The channel outputs are mixed with the non-linear approximation of the
// hardware DAC and then passed through a high-pass and a low-pass filter
// before being scaled by the user volume.
package apu
