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

// Package savestate implements the binary format of a machine save state.
//
// A save state begins with the format version as a varint. Each hardware
// component follows as a length-delimited field, in the protobuf wire
// format, with the field number identifying the component. Components are
// always written in the same order. Inside a field, the component writes its
// registers and counters in a fixed order using the Encoder type.
//
// The format is additive: components introduced in later versions of the
// format are not expected when loading an older save state.
package savestate
