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

// Package hostcall implements a memory mapped port through which the
// emulated program can call functions in the host application.
//
// The protocol is a simple stateful RPC over a single port. When the bridge
// is idle, writing to the port selects a call. A call declared with zero
// arguments is invoked immediately. Otherwise the next N writes are the
// arguments and the call is invoked when the last argument is written.
//
// After a call has been invoked the bridge is busy until the port is read.
// Reading the port returns the value returned by the call and returns the
// bridge to the idle state. Writes while the bridge is busy are ignored.
//
// Writing the ID of a call that has not been registered is ignored.
package hostcall
