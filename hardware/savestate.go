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

package hardware

import (
	"fmt"

	"github.com/jetsetilly/gophernes/curated"
	"github.com/jetsetilly/gophernes/hardware/savestate"
	"github.com/jetsetilly/gophernes/logger"
)

type section struct {
	s savestate.Section
	c savestate.Component
}

// the components of the machine in the order they are written to a save
// state
func (nes *NES) sections() []section {
	return []section{
		{s: savestate.CPU, c: nes.CPU},
		{s: savestate.PPU, c: nes.PPU},
		{s: savestate.APU, c: nes.APU},
		{s: savestate.RAM, c: nes.RAM},
		{s: savestate.Controller, c: nes.Controller},
		{s: savestate.HostCall, c: nes.HostCall},
		{s: savestate.GraphicsRAM, c: nes.Cart.GraphicsRAM()},
		{s: savestate.Mapper, c: nes.Cart.Mapper()},
		{s: savestate.ProgramRAM, c: nes.Cart.ProgramRAM()},
		{s: savestate.Timing, c: savestate.Adapt(nes.serialiseTiming, nes.deserialiseTiming)},
	}
}

func (nes *NES) serialiseTiming(enc *savestate.Encoder) {
	enc.Uint(uint64(nes.phase))
	enc.Float(nes.accumulator)
}

func (nes *NES) deserialiseTiming(dec *savestate.Decoder) error {
	phase := dec.Uint()
	accumulator := dec.Float()
	if err := dec.Err(); err != nil {
		return err
	}
	if phase > 2 {
		return curated.Errorf("%v: dot phase of %d", savestate.ErrCorrupt, phase)
	}
	nes.phase = int(phase)
	nes.accumulator = accumulator
	return nil
}

// Serialise the state of the machine.
func (nes *NES) Serialise() ([]byte, error) {
	w := savestate.NewWriter()
	for _, s := range nes.sections() {
		if err := w.Add(s.s, s.c); err != nil {
			return nil, curated.Errorf("hardware: %v", err)
		}
	}
	return w.Bytes(), nil
}

// Deserialise the state of the machine from data created by Serialise(). If
// the data cannot be restored then the machine is left as it was before the
// call.
func (nes *NES) Deserialise(data []byte) error {
	r, err := savestate.NewReader(data)
	if err != nil {
		logger.Log(nes.Instance, "nes", err)
		return curated.Errorf("hardware: %v", err)
	}

	backup, err := nes.Serialise()
	if err != nil {
		return err
	}

	if err := nes.restore(r); err != nil {
		logger.Log(nes.Instance, "nes", err)

		br, rerr := savestate.NewReader(backup)
		if rerr == nil {
			rerr = nes.restore(br)
		}
		if rerr != nil {
			panic(fmt.Sprintf("hardware: cannot restore machine after failed deserialise: %v", rerr))
		}

		return curated.Errorf("hardware: %v", err)
	}

	return nil
}

func (nes *NES) restore(r *savestate.Reader) error {
	for _, s := range nes.sections() {
		if err := r.Restore(s.s, s.c); err != nil {
			return err
		}
	}
	return nil
}
