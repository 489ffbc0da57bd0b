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

package savestate

import (
	"errors"
	"math"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/jetsetilly/gophernes/curated"
)

// ErrCorrupt is returned when save state data cannot be decoded.
var ErrCorrupt = errors.New("savestate: corrupt data")

// Encoder accumulates the values of a single component.
type Encoder struct {
	buf []byte
}

// Uint appends an unsigned value.
func (enc *Encoder) Uint(v uint64) {
	enc.buf = protowire.AppendVarint(enc.buf, v)
}

// Int appends a signed value.
func (enc *Encoder) Int(v int) {
	enc.buf = protowire.AppendVarint(enc.buf, protowire.EncodeZigZag(int64(v)))
}

// Bool appends a boolean value.
func (enc *Encoder) Bool(v bool) {
	enc.buf = protowire.AppendVarint(enc.buf, protowire.EncodeBool(v))
}

// Float appends a floating point value. The bit pattern is preserved
// exactly.
func (enc *Encoder) Float(v float64) {
	enc.buf = protowire.AppendFixed64(enc.buf, math.Float64bits(v))
}

// Bytes appends a length prefixed byte array.
func (enc *Encoder) Bytes(v []uint8) {
	enc.buf = protowire.AppendBytes(enc.buf, v)
}

// Decoder reads the values of a single component in the same order as they
// were written by the Encoder. The first error encountered is sticky and
// subsequent reads return zero values.
type Decoder struct {
	buf []byte
	err error
}

// NewDecoder is the preferred method of initialisation for the Decoder
// type.
func NewDecoder(data []byte) *Decoder {
	return &Decoder{buf: data}
}

func (dec *Decoder) fail(n int, what string) {
	if dec.err == nil {
		dec.err = curated.Errorf("%v: %s: %v", ErrCorrupt, what, protowire.ParseError(n))
	}
}

// Uint reads an unsigned value.
func (dec *Decoder) Uint() uint64 {
	if dec.err != nil {
		return 0
	}
	v, n := protowire.ConsumeVarint(dec.buf)
	if n < 0 {
		dec.fail(n, "uint")
		return 0
	}
	dec.buf = dec.buf[n:]
	return v
}

// Uint8 reads an unsigned value that must fit in a single byte.
func (dec *Decoder) Uint8() uint8 {
	v := dec.Uint()
	if v > math.MaxUint8 && dec.err == nil {
		dec.err = curated.Errorf("%v: value %d out of range for uint8", ErrCorrupt, v)
	}
	return uint8(v)
}

// Uint16 reads an unsigned value that must fit in two bytes.
func (dec *Decoder) Uint16() uint16 {
	v := dec.Uint()
	if v > math.MaxUint16 && dec.err == nil {
		dec.err = curated.Errorf("%v: value %d out of range for uint16", ErrCorrupt, v)
	}
	return uint16(v)
}

// Int reads a signed value.
func (dec *Decoder) Int() int {
	return int(protowire.DecodeZigZag(dec.Uint()))
}

// Bool reads a boolean value.
func (dec *Decoder) Bool() bool {
	return protowire.DecodeBool(dec.Uint())
}

// Float reads a floating point value.
func (dec *Decoder) Float() float64 {
	if dec.err != nil {
		return 0
	}
	v, n := protowire.ConsumeFixed64(dec.buf)
	if n < 0 {
		dec.fail(n, "float")
		return 0
	}
	dec.buf = dec.buf[n:]
	return math.Float64frombits(v)
}

// Bytes reads a byte array into dst. The stored array must be exactly the
// length of dst.
func (dec *Decoder) Bytes(dst []uint8) {
	if dec.err != nil {
		return
	}
	v, n := protowire.ConsumeBytes(dec.buf)
	if n < 0 {
		dec.fail(n, "bytes")
		return
	}
	if len(v) != len(dst) {
		dec.err = curated.Errorf("%v: array of %d bytes where %d expected", ErrCorrupt, len(v), len(dst))
		return
	}
	copy(dst, v)
	dec.buf = dec.buf[n:]
}

// Err returns the first error encountered while decoding. It is an error if
// there is any data left unread.
func (dec *Decoder) Err() error {
	if dec.err != nil {
		return dec.err
	}
	if len(dec.buf) > 0 {
		return curated.Errorf("%v: %d bytes unread", ErrCorrupt, len(dec.buf))
	}
	return nil
}
