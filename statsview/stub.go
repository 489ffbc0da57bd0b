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

//go:build !statsview

package statsview

import (
	"io"
)

// Launch returns ErrUnavailable in builds without the statsview build
// constraint. The address is still checked.
func Launch(_ io.Writer, addr string) (func(), error) {
	if _, err := listenAddress(addr); err != nil {
		return nil, err
	}
	return nil, ErrUnavailable
}

// Available returns false in builds without the statsview build constraint.
func Available() bool {
	return false
}
