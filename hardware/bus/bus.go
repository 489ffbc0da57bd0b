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

package bus

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jetsetilly/gophernes/curated"
)

// Device is implemented by every component that can be attached to the bus.
// The boolean return value indicates whether the device handled the access.
type Device interface {
	Read(address uint16) (uint8, bool)
	Write(address uint16, data uint8) bool
}

// Peeker is implemented by devices that have side effects when read. Peek()
// returns the value that Read() would return without changing the state of
// the device. Devices that do not implement Peeker are read with Read().
type Peeker interface {
	Peek(address uint16) (uint8, bool)
}

// Sentinel errors returned by Attach().
var (
	ErrOverlap = errors.New("bus: address range overlaps existing device")
	ErrRange   = errors.New("bus: invalid address range")
)

type attachment struct {
	dev   Device
	label string
	lower uint16
	upper uint16
}

func (a attachment) String() string {
	return fmt.Sprintf("%s [%#04x-%#04x]", a.label, a.lower, a.upper)
}

// no device attached to address
const unowned = -1

// Bus routes reads and writes to the owning device.
type Bus struct {
	label string

	// addresses are masked before being used
	mask uint16

	attached []attachment

	// index into attached for every address
	owner []int16
}

// NewBus is the preferred method of initialisation for the Bus type. The
// mask defines the size of the address space.
func NewBus(label string, mask uint16) *Bus {
	b := &Bus{
		label: label,
		mask:  mask,
		owner: make([]int16, int(mask)+1),
	}
	for i := range b.owner {
		b.owner[i] = unowned
	}
	return b
}

func (b *Bus) String() string {
	s := strings.Builder{}
	s.WriteString(b.label)
	for _, a := range b.attached {
		s.WriteString("\n  ")
		s.WriteString(a.String())
	}
	return s.String()
}

// Attach device to the bus for the inclusive address range.
func (b *Bus) Attach(dev Device, label string, lower uint16, upper uint16) error {
	if lower > upper || upper > b.mask {
		return curated.Errorf("%v: %s %#04x-%#04x", ErrRange, label, lower, upper)
	}

	for a := int(lower); a <= int(upper); a++ {
		if o := b.owner[a]; o != unowned {
			return curated.Errorf("%v: %s at %#04x is owned by %s", ErrOverlap, label, a, b.attached[o].label)
		}
	}

	b.attached = append(b.attached, attachment{
		dev:   dev,
		label: label,
		lower: lower,
		upper: upper,
	})

	idx := int16(len(b.attached) - 1)
	for a := int(lower); a <= int(upper); a++ {
		b.owner[a] = idx
	}

	return nil
}

// Read value from address. The address is masked before it is passed to the
// owning device.
func (b *Bus) Read(address uint16) (uint8, bool) {
	address &= b.mask
	o := b.owner[address]
	if o == unowned {
		return 0, false
	}
	return b.attached[o].dev.Read(address)
}

// Peek value at address without triggering side effects in the owning
// device. For use by debuggers and other external observers.
func (b *Bus) Peek(address uint16) (uint8, bool) {
	address &= b.mask
	o := b.owner[address]
	if o == unowned {
		return 0, false
	}
	dev := b.attached[o].dev
	if p, ok := dev.(Peeker); ok {
		return p.Peek(address)
	}
	return dev.Read(address)
}

// Write value to address. The address is masked before it is passed to the
// owning device.
func (b *Bus) Write(address uint16, data uint8) bool {
	address &= b.mask
	o := b.owner[address]
	if o == unowned {
		return false
	}
	return b.attached[o].dev.Write(address, data)
}

// Label returns the label of the device that owns the address. The empty
// string is returned if there is no owner.
func (b *Bus) Label(address uint16) string {
	o := b.owner[address&b.mask]
	if o == unowned {
		return ""
	}
	return b.attached[o].label
}
