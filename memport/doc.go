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

// Package memport allows external programs to observe and modify the CPU
// address space of a running emulation over a websocket.
//
// Requests are JSON encoded text frames:
//
//	{"op":"read", "addr":768, "len":4}
//	{"op":"write", "addr":768, "data":[1,2,3,4]}
//
// The reply to every request is a JSON object with the address, the data read
// (or written) and an error string if the request failed.
//
// Requests are not serviced immediately. They are put on a queue and the
// emulation drains the queue between CPU steps with the Drain() function. This
// means that memory is never accessed by two goroutines at the same time.
package memport
