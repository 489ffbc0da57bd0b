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
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/jetsetilly/gophernes/curated"
)

// FormatVersion is the version of save states created by this package.
const FormatVersion = 2

// MinVersion is the oldest version of save state that can be loaded.
const MinVersion = 1

// ErrVersion is returned when the version of a save state is not supported.
var ErrVersion = errors.New("savestate: unsupported version")

// Section identifies a hardware component in the save state. The value is
// used as the field number.
type Section protowire.Number

// List of valid Section values, in the order they are written.
const (
	CPU Section = iota + 1
	PPU
	APU
	RAM
	Controller
	HostCall
	GraphicsRAM
	Mapper

	// added in version 2
	ProgramRAM
	Timing
)

func (s Section) String() string {
	switch s {
	case CPU:
		return "cpu"
	case PPU:
		return "ppu"
	case APU:
		return "apu"
	case RAM:
		return "ram"
	case Controller:
		return "controller"
	case HostCall:
		return "hostcall"
	case GraphicsRAM:
		return "graphics ram"
	case Mapper:
		return "mapper"
	case ProgramRAM:
		return "program ram"
	case Timing:
		return "timing"
	}
	return fmt.Sprintf("section %d", int(s))
}

// the format version in which each section first appeared
func (s Section) introduced() uint64 {
	if s >= ProgramRAM {
		return 2
	}
	return 1
}

// Component is implemented by every hardware component that is part of a
// save state.
type Component interface {
	Serialise(enc *Encoder)
	Deserialise(dec *Decoder) error
}

type adaptor struct {
	serialise   func(enc *Encoder)
	deserialise func(dec *Decoder) error
}

func (a adaptor) Serialise(enc *Encoder) {
	a.serialise(enc)
}

func (a adaptor) Deserialise(dec *Decoder) error {
	return a.deserialise(dec)
}

// Adapt a pair of functions to the Component interface. Useful for types
// that contribute more than one section.
func Adapt(serialise func(enc *Encoder), deserialise func(dec *Decoder) error) Component {
	return adaptor{serialise: serialise, deserialise: deserialise}
}

// Writer creates a new save state.
type Writer struct {
	buf  []byte
	last Section
}

// NewWriter is the preferred method of initialisation for the Writer type.
func NewWriter() *Writer {
	return &Writer{
		buf: protowire.AppendVarint(nil, FormatVersion),
	}
}

// Add the component to the save state. Sections must be added in order.
func (w *Writer) Add(s Section, c Component) error {
	if s <= w.last {
		return curated.Errorf("savestate: %s added out of order", s)
	}
	w.last = s

	enc := &Encoder{}
	c.Serialise(enc)
	w.buf = protowire.AppendTag(w.buf, protowire.Number(s), protowire.BytesType)
	w.buf = protowire.AppendBytes(w.buf, enc.buf)
	return nil
}

// Bytes returns the completed save state.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Reader restores components from an existing save state.
type Reader struct {
	version  uint64
	sections map[Section][]byte
}

// NewReader checks the version of the save state and splits it into its
// sections. Fields that are not known to this version of the package are
// skipped.
func NewReader(data []byte) (*Reader, error) {
	version, n := protowire.ConsumeVarint(data)
	if n < 0 {
		return nil, curated.Errorf("%v: version: %v", ErrCorrupt, protowire.ParseError(n))
	}
	if version < MinVersion || version > FormatVersion {
		return nil, curated.Errorf("%v: version %d (supported %d to %d)", ErrVersion, version, MinVersion, FormatVersion)
	}
	data = data[n:]

	r := &Reader{
		version:  version,
		sections: make(map[Section][]byte),
	}

	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, curated.Errorf("%v: tag: %v", ErrCorrupt, protowire.ParseError(n))
		}
		data = data[n:]

		if typ != protowire.BytesType {
			n = protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return nil, curated.Errorf("%v: field %d: %v", ErrCorrupt, num, protowire.ParseError(n))
			}
			data = data[n:]
			continue
		}

		v, n := protowire.ConsumeBytes(data)
		if n < 0 {
			return nil, curated.Errorf("%v: field %d: %v", ErrCorrupt, num, protowire.ParseError(n))
		}
		data = data[n:]

		r.sections[Section(num)] = v
	}

	return r, nil
}

// Version of the save state being read.
func (r *Reader) Version() uint64 {
	return r.version
}

// Restore the component from the save state. A section introduced in a later
// version than the save state is not an error and the component is left
// untouched.
func (r *Reader) Restore(s Section, c Component) error {
	data, ok := r.sections[s]
	if !ok {
		if s.introduced() > r.version {
			return nil
		}
		return curated.Errorf("%v: missing %s", ErrCorrupt, s)
	}

	if err := c.Deserialise(NewDecoder(data)); err != nil {
		return curated.Errorf("savestate: %s: %v", s, err)
	}
	return nil
}
