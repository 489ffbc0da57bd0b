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

package savestate_test

import (
	"errors"
	"testing"

	"github.com/jetsetilly/gophernes/hardware/savestate"
	"github.com/jetsetilly/gophernes/test"
	"google.golang.org/protobuf/encoding/protowire"
)

type component struct {
	a    uint8
	b    int
	c    bool
	f    float64
	data [4]uint8
}

func (c *component) Serialise(enc *savestate.Encoder) {
	enc.Uint(uint64(c.a))
	enc.Int(c.b)
	enc.Bool(c.c)
	enc.Float(c.f)
	enc.Bytes(c.data[:])
}

func (c *component) Deserialise(dec *savestate.Decoder) error {
	c.a = dec.Uint8()
	c.b = dec.Int()
	c.c = dec.Bool()
	c.f = dec.Float()
	dec.Bytes(c.data[:])
	return dec.Err()
}

func TestRoundTrip(t *testing.T) {
	a := &component{a: 0xfe, b: -100, c: true, f: 0.123456789, data: [4]uint8{1, 2, 3, 4}}

	w := savestate.NewWriter()
	test.DemandSuccess(t, w.Add(savestate.CPU, a))
	test.DemandSuccess(t, w.Add(savestate.RAM, a))

	r, err := savestate.NewReader(w.Bytes())
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, r.Version(), uint64(savestate.FormatVersion))

	b := &component{}
	test.DemandSuccess(t, r.Restore(savestate.CPU, b))
	test.ExpectEquality(t, *b, *a)

	c := &component{}
	test.DemandSuccess(t, r.Restore(savestate.RAM, c))
	test.ExpectEquality(t, *c, *a)

	// the section was introduced in the current version so its absence is
	// an error
	err = r.Restore(savestate.Timing, c)
	test.ExpectSuccess(t, errors.Is(err, savestate.ErrCorrupt))
}

func TestOrder(t *testing.T) {
	w := savestate.NewWriter()
	test.DemandSuccess(t, w.Add(savestate.PPU, &component{}))
	test.ExpectFailure(t, w.Add(savestate.CPU, &component{}))
	test.ExpectFailure(t, w.Add(savestate.PPU, &component{}))
}

func TestVersion(t *testing.T) {
	// too old
	_, err := savestate.NewReader(protowire.AppendVarint(nil, 0))
	test.ExpectSuccess(t, errors.Is(err, savestate.ErrVersion))

	// too new
	_, err = savestate.NewReader(protowire.AppendVarint(nil, savestate.FormatVersion+1))
	test.ExpectSuccess(t, errors.Is(err, savestate.ErrVersion))

	// empty data
	_, err = savestate.NewReader(nil)
	test.ExpectSuccess(t, errors.Is(err, savestate.ErrCorrupt))
}

// a version 1 save state does not contain the sections added in version 2
func TestAdditive(t *testing.T) {
	enc := &savestate.Encoder{}
	(&component{a: 1}).Serialise(enc)

	data := protowire.AppendVarint(nil, 1)
	r, err := savestate.NewReader(data)
	test.DemandSuccess(t, err)

	c := &component{a: 99}
	test.ExpectSuccess(t, r.Restore(savestate.Timing, c))
	test.ExpectSuccess(t, r.Restore(savestate.ProgramRAM, c))
	test.ExpectEquality(t, c.a, uint8(99))

	// but sections from version 1 are required
	test.ExpectFailure(t, r.Restore(savestate.CPU, c))
}

func TestCorruption(t *testing.T) {
	a := &component{a: 10}
	w := savestate.NewWriter()
	test.DemandSuccess(t, w.Add(savestate.CPU, a))
	data := w.Bytes()

	// truncated data is detected by the reader
	_, err := savestate.NewReader(data[:len(data)-2])
	test.ExpectSuccess(t, errors.Is(err, savestate.ErrCorrupt))

	// a component expecting more data than was written
	r, err := savestate.NewReader(data)
	test.DemandSuccess(t, err)
	err = r.Restore(savestate.CPU, savestate.Adapt(
		func(_ *savestate.Encoder) {},
		func(dec *savestate.Decoder) error {
			var d [8]uint8
			dec.Uint()
			dec.Int()
			dec.Bool()
			dec.Float()
			dec.Bytes(d[:])
			return dec.Err()
		}))
	test.ExpectSuccess(t, errors.Is(err, savestate.ErrCorrupt))

	// a component reading less data than was written
	err = r.Restore(savestate.CPU, savestate.Adapt(
		func(_ *savestate.Encoder) {},
		func(dec *savestate.Decoder) error {
			dec.Uint()
			return dec.Err()
		}))
	test.ExpectSuccess(t, errors.Is(err, savestate.ErrCorrupt))
}
