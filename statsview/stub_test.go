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

package statsview_test

import (
	"errors"
	"io"
	"testing"

	"github.com/jetsetilly/gophernes/statsview"
	"github.com/jetsetilly/gophernes/test"
)

func TestUnavailable(t *testing.T) {
	test.ExpectFailure(t, statsview.Available())

	_, err := statsview.Launch(io.Discard, "")
	test.ExpectSuccess(t, errors.Is(err, statsview.ErrUnavailable))

	// a bad address is reported before availability
	_, err = statsview.Launch(io.Discard, "nonsense")
	test.ExpectFailure(t, errors.Is(err, statsview.ErrUnavailable))
}
