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

// Package cpu is the glue between the NES hardware and the 6502 instruction
// interpreter. The interpreter itself is provided by the go6502 package.
//
// The glue is responsible for routing the memory accesses of the interpreter
// to the CPU bus, for the reset and NMI edges, and for counting the cycles of
// each instruction so that the CPU can be ticked one cycle at a time
// alongside the PPU.
//
// The CPU also owns the OAM DMA register at $4014. Writing to the register
// copies a page of memory to the PPU's OAM data register and halts the CPU
// for 513 cycles (514 if the DMA starts on an odd cycle).
package cpu
