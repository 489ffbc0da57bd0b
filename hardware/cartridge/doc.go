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

// Package cartridge implements the cartridge storage and the bank switching
// logic (the mapper) of the NES cartridge.
//
// The cartridge is attached to both the CPU bus and the PPU bus. On the CPU
// bus it occupies $6000 to $ffff: program RAM from $6000 to $7fff and program
// ROM, through the mapper, from $8000 to $ffff. On the PPU bus it occupies
// $0000 to $1fff, the graphics data. Graphics data can be RAM or ROM
// depending on the cartridge.
//
// Writes to the program ROM range are not stored. They are the protocol by
// which the program changes the state of the mapper.
//
// Only the MMC1 mapper (iNES mapper 1) is supported.
package cartridge
