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

// Package bus connects the hardware components of the NES. There are two
// instances of the bus in the machine: one for the address space seen by the
// CPU and one for the address space seen by the PPU.
//
// Devices are attached to the bus for a range of addresses. Every address
// has at most one owner and the owner is resolved when the device is
// attached. Attaching a device to a range that overlaps with an existing
// device is an error.
//
// Accesses to addresses without an owner are not errors. Reads return zero
// and writes have no effect.
package bus
