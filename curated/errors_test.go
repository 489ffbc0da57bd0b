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

package curated_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jetsetilly/gophernes/curated"
	"github.com/jetsetilly/gophernes/test"
)

const testError = "test error: %s"

func TestDuplicateParts(t *testing.T) {
	e := curated.Errorf("error: %v", curated.Errorf("error: %v", curated.Errorf("not yet implemented")))
	test.ExpectEquality(t, e.Error(), "error: not yet implemented")

	e = curated.Errorf("hardware: %v", curated.Errorf("cartridge: %v", "bad size"))
	test.ExpectEquality(t, e.Error(), "hardware: cartridge: bad size")
}

func TestIs(t *testing.T) {
	e := curated.Errorf(testError, "foo")
	test.ExpectSuccess(t, curated.IsAny(e))
	test.ExpectSuccess(t, curated.Is(e, testError))
	test.ExpectFailure(t, curated.Is(e, "other: %s"))

	f := curated.Errorf("wrapped: %v", e)
	test.ExpectFailure(t, curated.Is(f, testError))
	test.ExpectSuccess(t, curated.Has(f, testError))

	// plain errors are not curated
	p := fmt.Errorf("plain")
	test.ExpectFailure(t, curated.IsAny(p))
	test.ExpectFailure(t, curated.Has(p, "plain"))
	test.ExpectFailure(t, curated.IsAny(nil))
}

func TestSentinel(t *testing.T) {
	sentinel := errors.New("sentinel")

	e := curated.Errorf("%v: detail %d", sentinel, 10)
	test.ExpectEquality(t, e.Error(), "sentinel: detail 10")
	test.ExpectSuccess(t, errors.Is(e, sentinel))

	f := curated.Errorf("outer: %v", e)
	test.ExpectSuccess(t, errors.Is(f, sentinel))
	test.ExpectFailure(t, errors.Is(f, errors.New("sentinel")))
}
