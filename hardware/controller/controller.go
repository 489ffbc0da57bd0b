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

// Package controller implements the two controller ports of the NES.
//
// Writing 1 to the strobe bit of the first port samples the button state of
// both controllers into their shift registers. Each read from a port returns
// the top bit of the shift register and shifts the register left by one. The
// order of the buttons, from the first bit read to the last, is right, left,
// down, up, start, select, B, A.
package controller

import (
	"strings"

	"github.com/jetsetilly/gophernes/hardware/savestate"
)

// Button is a bit mask for a single button on the controller.
type Button uint8

// List of valid Button values.
const (
	A      Button = 0x01
	B      Button = 0x02
	Select Button = 0x04
	Start  Button = 0x08
	Up     Button = 0x10
	Down   Button = 0x20
	Left   Button = 0x40
	Right  Button = 0x80
)

func (b Button) String() string {
	s := strings.Builder{}
	for _, n := range []struct {
		b Button
		s string
	}{
		{Right, "R"}, {Left, "L"}, {Down, "D"}, {Up, "U"},
		{Start, "St"}, {Select, "Se"}, {B, "B"}, {A, "A"},
	} {
		if b&n.b == n.b {
			s.WriteString(n.s)
		} else {
			s.WriteString("-")
		}
	}
	return s.String()
}

// Address of the two ports in the CPU address space.
const (
	Port1 = 0x4016
	Port2 = 0x4017
)

// Controller implements the bus.Device interface.
type Controller struct {
	strobe  bool
	buttons [2]Button
	shift   [2]uint8
}

// NewController is the preferred method of initialisation for the
// Controller type.
func NewController() *Controller {
	return &Controller{}
}

func (c *Controller) String() string {
	return c.buttons[0].String() + " " + c.buttons[1].String()
}

// Reset controller to its power-on state. Button state is unaffected.
func (c *Controller) Reset() {
	c.strobe = false
	c.shift = [2]uint8{}
}

// SetButtons sets the current state of the buttons for player 0 or 1.
func (c *Controller) SetButtons(player int, buttons Button) {
	c.buttons[player&1] = buttons
	if c.strobe {
		c.latch()
	}
}

// Buttons returns the current state of the buttons for player 0 or 1.
func (c *Controller) Buttons(player int) Button {
	return c.buttons[player&1]
}

func (c *Controller) latch() {
	c.shift[0] = uint8(c.buttons[0])
	c.shift[1] = uint8(c.buttons[1])
}

// Read implements the bus.Device interface.
func (c *Controller) Read(address uint16) (uint8, bool) {
	var p int
	switch address {
	case Port1:
		p = 0
	case Port2:
		p = 1
	default:
		return 0, false
	}

	// while strobe is high the register is continuously reloaded
	if c.strobe {
		c.latch()
	}

	v := c.shift[p] >> 7
	c.shift[p] <<= 1
	return v, true
}

// Peek implements the bus.Peeker interface. The shift register is not
// advanced.
func (c *Controller) Peek(address uint16) (uint8, bool) {
	var p int
	switch address {
	case Port1:
		p = 0
	case Port2:
		p = 1
	default:
		return 0, false
	}
	if c.strobe {
		return uint8(c.buttons[p]) >> 7, true
	}
	return c.shift[p] >> 7, true
}

// Write implements the bus.Device interface. Only the first port is
// writable. A write to the second port is the APU frame counter on real
// hardware, which is not emulated.
func (c *Controller) Write(address uint16, data uint8) bool {
	if address != Port1 {
		return false
	}
	c.strobe = data&0x01 == 0x01
	if c.strobe {
		c.latch()
	}
	return true
}

// Serialise implements the savestate.Component interface.
func (c *Controller) Serialise(enc *savestate.Encoder) {
	enc.Bool(c.strobe)
	enc.Uint(uint64(c.shift[0]))
	enc.Uint(uint64(c.shift[1]))
	enc.Uint(uint64(c.buttons[0]))
	enc.Uint(uint64(c.buttons[1]))
}

// Deserialise implements the savestate.Component interface.
func (c *Controller) Deserialise(dec *savestate.Decoder) error {
	c.strobe = dec.Bool()
	c.shift[0] = dec.Uint8()
	c.shift[1] = dec.Uint8()
	c.buttons[0] = Button(dec.Uint8())
	c.buttons[1] = Button(dec.Uint8())
	return dec.Err()
}
