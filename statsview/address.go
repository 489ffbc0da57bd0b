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

package statsview

import (
	"errors"
	"net"

	"github.com/jetsetilly/gophernes/curated"
)

// ErrUnavailable is returned by Launch() when the package has been built
// without the statsview build constraint.
var ErrUnavailable = errors.New("statsview: not available in this build")

// DefaultAddress is used when the address given to Launch() is empty.
const DefaultAddress = "localhost:12600"

const urlPath = "/debug/statsview"

// returns the address to listen on. a port must be specified
func listenAddress(addr string) (string, error) {
	if addr == "" {
		return DefaultAddress, nil
	}
	if _, _, err := net.SplitHostPort(addr); err != nil {
		return "", curated.Errorf("statsview: %v", err)
	}
	return addr, nil
}
