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

package hostcall

import (
	"errors"
	"fmt"

	"github.com/jetsetilly/gophernes/curated"
	"github.com/jetsetilly/gophernes/hardware/savestate"
	"github.com/jetsetilly/gophernes/logger"
)

// Port is the address of the bridge in the CPU address space.
const Port = 0x4020

// MaxArgs is the maximum number of arguments to a call.
const MaxArgs = 4

// Context is the handle given to every call. It gives the call access to the
// CPU address space of the machine that made the call.
type Context interface {
	Peek(address uint16) uint8
	Poke(address uint16, data uint8)
}

// Call is the signature of a host function. Unused argument slots are zero.
type Call func(ctx Context, args [MaxArgs]uint8) uint8

// ErrArgs is returned by Register() if the number of arguments is invalid.
var ErrArgs = errors.New("hostcall: invalid number of arguments")

type registration struct {
	numArgs int
	fn      Call
}

type state int

const (
	idle state = iota
	collecting
	busy
)

// Bridge implements the bus.Device interface.
type Bridge struct {
	ctx  Context
	perm logger.Permission

	calls map[uint8]registration

	state   state
	id      uint8
	args    [MaxArgs]uint8
	numArgs int
	ret     uint8
}

// NewBridge is the preferred method of initialisation for the Bridge type.
// The context is passed to every call made through the bridge.
func NewBridge(perm logger.Permission, ctx Context) *Bridge {
	return &Bridge{
		ctx:   ctx,
		perm:  perm,
		calls: make(map[uint8]registration),
	}
}

func (br *Bridge) String() string {
	switch br.state {
	case collecting:
		return fmt.Sprintf("call %#02x: %d/%d args", br.id, br.numArgs, br.calls[br.id].numArgs)
	case busy:
		return fmt.Sprintf("call %#02x: returned %#02x", br.id, br.ret)
	}
	return "idle"
}

// Register a call with the bridge. Registering an existing ID replaces the
// previous registration.
func (br *Bridge) Register(id uint8, numArgs int, fn Call) error {
	if numArgs < 0 || numArgs > MaxArgs {
		return curated.Errorf("%v: %d", ErrArgs, numArgs)
	}
	br.calls[id] = registration{numArgs: numArgs, fn: fn}
	return nil
}

// Reset bridge to the idle state. Registered calls are unaffected.
func (br *Bridge) Reset() {
	br.state = idle
	br.id = 0
	br.args = [MaxArgs]uint8{}
	br.numArgs = 0
	br.ret = 0
}

func (br *Bridge) invoke() {
	br.ret = br.calls[br.id].fn(br.ctx, br.args)
	br.state = busy
}

// Read implements the bus.Device interface.
func (br *Bridge) Read(address uint16) (uint8, bool) {
	if address != Port {
		return 0, false
	}
	if br.state == busy {
		br.state = idle
	}
	return br.ret, true
}

// Peek implements the bus.Peeker interface. Unlike Read() the bridge does
// not return to the idle state.
func (br *Bridge) Peek(address uint16) (uint8, bool) {
	if address != Port {
		return 0, false
	}
	return br.ret, true
}

// Write implements the bus.Device interface.
func (br *Bridge) Write(address uint16, data uint8) bool {
	if address != Port {
		return false
	}

	switch br.state {
	case idle:
		reg, ok := br.calls[data]
		if !ok {
			logger.Logf(br.perm, "hostcall", "unregistered call %#02x", data)
			return true
		}
		br.id = data
		br.args = [MaxArgs]uint8{}
		br.numArgs = 0
		if reg.numArgs == 0 {
			br.invoke()
		} else {
			br.state = collecting
		}

	case collecting:
		br.args[br.numArgs] = data
		br.numArgs++
		if br.numArgs >= br.calls[br.id].numArgs {
			br.invoke()
		}

	case busy:
	}

	return true
}

// Serialise implements the savestate.Component interface.
func (br *Bridge) Serialise(enc *savestate.Encoder) {
	enc.Uint(uint64(br.state))
	enc.Uint(uint64(br.id))
	enc.Bytes(br.args[:])
	enc.Uint(uint64(br.numArgs))
	enc.Uint(uint64(br.ret))
}

// Deserialise implements the savestate.Component interface.
func (br *Bridge) Deserialise(dec *savestate.Decoder) error {
	st := state(dec.Uint())
	id := dec.Uint8()
	var args [MaxArgs]uint8
	dec.Bytes(args[:])
	numArgs := int(dec.Uint())
	ret := dec.Uint8()
	if err := dec.Err(); err != nil {
		return err
	}

	if st > busy || numArgs > MaxArgs {
		return curated.Errorf("%v: hostcall state", savestate.ErrCorrupt)
	}

	// a call in progress must still be registered
	if st == collecting {
		if _, ok := br.calls[id]; !ok {
			return curated.Errorf("%v: hostcall %#02x is not registered", savestate.ErrCorrupt, id)
		}
	}

	br.state = st
	br.id = id
	br.args = args
	br.numArgs = numArgs
	br.ret = ret
	return nil
}
