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

package apu

import (
	"math"

	"github.com/jetsetilly/gophernes/hardware/savestate"
)

// envelope is used by the pulse and noise channels. in constant volume mode
// the rate nibble is used as the volume directly.
type envelope struct {
	constant bool
	loop     bool
	rate     uint8
	volume   uint8
	divider  uint8
}

func (e *envelope) restart() {
	e.volume = 15
	e.divider = e.rate + 1
}

// advance envelope by one sequencer step
func (e *envelope) step() {
	if e.divider > 0 {
		e.divider--
	}
	if e.divider > 0 {
		return
	}
	e.divider = e.rate + 1
	if e.volume > 0 {
		e.volume--
	} else if e.loop {
		e.volume = 15
	}
}

func (e *envelope) output() uint8 {
	if e.constant {
		return e.rate
	}
	return e.volume
}

func (e *envelope) serialise(enc *savestate.Encoder) {
	enc.Bool(e.constant)
	enc.Bool(e.loop)
	enc.Uint(uint64(e.rate))
	enc.Uint(uint64(e.volume))
	enc.Uint(uint64(e.divider))
}

func (e *envelope) deserialise(dec *savestate.Decoder) {
	e.constant = dec.Bool()
	e.loop = dec.Bool()
	e.rate = dec.Uint8()
	e.volume = dec.Uint8()
	e.divider = dec.Uint8()
}

type length struct {
	halt  bool
	count uint8
}

func (l *length) load(data uint8) {
	l.count = lengthTable[data>>3]
}

func (l *length) step() {
	if !l.halt && l.count > 0 {
		l.count--
	}
}

func (l *length) serialise(enc *savestate.Encoder) {
	enc.Bool(l.halt)
	enc.Uint(uint64(l.count))
}

func (l *length) deserialise(dec *savestate.Decoder) {
	l.halt = dec.Bool()
	l.count = dec.Uint8()
}

// timer value is eleven bits spread over two registers
func timerLow(timer uint16, data uint8) uint16 {
	return timer&0x0700 | uint16(data)
}

func timerHigh(timer uint16, data uint8) uint16 {
	return timer&0x00ff | uint16(data&0x07)<<8
}

type pulse struct {
	// register values as written by the CPU. the sweep register is stored
	// here but otherwise has no effect
	regs [4]uint8

	enabled bool
	duty    uint8
	timer   uint16
	env     envelope
	length  length

	// position in the waveform in the range 0.0 to 1.0
	phase float64
}

func (p *pulse) write(reg int, data uint8) {
	p.regs[reg] = data
	switch reg {
	case 0:
		p.duty = data >> 6
		p.length.halt = data&0x20 == 0x20
		p.env.loop = p.length.halt
		p.env.constant = data&0x10 == 0x10
		p.env.rate = data & 0x0f
	case 2:
		p.timer = timerLow(p.timer, data)
	case 3:
		p.timer = timerHigh(p.timer, data)
		if p.enabled {
			p.length.load(data)
		}
		p.phase = 0
		if !p.env.constant {
			p.env.restart()
		}
	}
}

func (p *pulse) frequency() float64 {
	return ClockRate / (16.0 * float64(p.timer+1))
}

func (p *pulse) silent() bool {
	return !p.enabled || p.timer < 8 || p.length.count == 0
}

func (p *pulse) sample(sampleRate float64) uint8 {
	if p.silent() {
		return 0
	}
	v := dutyTable[p.duty][int(p.phase*8)&0x07] * p.env.output()
	p.phase += p.frequency() / sampleRate
	p.phase -= math.Floor(p.phase)
	return v
}

func (p *pulse) quarter() {
	p.env.step()
}

func (p *pulse) half() {
	p.length.step()
}

func (p *pulse) serialise(enc *savestate.Encoder) {
	enc.Bytes(p.regs[:])
	enc.Bool(p.enabled)
	enc.Uint(uint64(p.duty))
	enc.Uint(uint64(p.timer))
	p.env.serialise(enc)
	p.length.serialise(enc)
	enc.Float(p.phase)
}

func (p *pulse) deserialise(dec *savestate.Decoder) {
	dec.Bytes(p.regs[:])
	p.enabled = dec.Bool()
	p.duty = dec.Uint8() & 0x03
	p.timer = dec.Uint16() & 0x07ff
	p.env.deserialise(dec)
	p.length.deserialise(dec)
	p.phase = dec.Float()
}

type triangle struct {
	regs [4]uint8

	enabled bool
	timer   uint16
	length  length

	control     bool
	reloadValue uint8
	reload      bool
	linear      uint8

	// position in the ramp in the range 0.0 to 32.0
	phase float64
}

func (t *triangle) write(reg int, data uint8) {
	t.regs[reg] = data
	switch reg {
	case 0:
		t.control = data&0x80 == 0x80
		t.length.halt = t.control
		t.reloadValue = data & 0x7f
	case 2:
		t.timer = timerLow(t.timer, data)
	case 3:
		t.timer = timerHigh(t.timer, data)
		if t.enabled {
			t.length.load(data)
		}
		t.reload = true
	}
}

func (t *triangle) frequency() float64 {
	return ClockRate / (32.0 * float64(t.timer+1))
}

// timer values below two produce a frequency far above the audible range
func (t *triangle) gated() bool {
	return !t.enabled || t.timer < 2 || t.length.count == 0 || t.linear == 0
}

func (t *triangle) sample(sampleRate float64) uint8 {
	if !t.enabled {
		return 0
	}

	inc := 32.0 * t.frequency() / sampleRate

	if t.gated() {
		// a step of the ramp in progress runs to completion. after that the
		// channel is silent until the counters open the gate again
		step := math.Floor(t.phase)
		if t.phase == step {
			return 0
		}
		v := triangleTable[int(step)&0x1f]
		t.phase = math.Mod(math.Min(t.phase+inc, step+1), 32.0)
		return v
	}

	v := triangleTable[int(t.phase)&0x1f]
	t.phase = math.Mod(t.phase+inc, 32.0)
	return v
}

func (t *triangle) quarter() {
	if t.linear > 0 {
		t.linear--
	}
}

func (t *triangle) half() {
	t.length.step()
	if t.reload {
		t.linear = t.reloadValue
	}
	if !t.control {
		t.reload = false
	}
}

func (t *triangle) serialise(enc *savestate.Encoder) {
	enc.Bytes(t.regs[:])
	enc.Bool(t.enabled)
	enc.Uint(uint64(t.timer))
	t.length.serialise(enc)
	enc.Bool(t.control)
	enc.Uint(uint64(t.reloadValue))
	enc.Bool(t.reload)
	enc.Uint(uint64(t.linear))
	enc.Float(t.phase)
}

func (t *triangle) deserialise(dec *savestate.Decoder) {
	dec.Bytes(t.regs[:])
	t.enabled = dec.Bool()
	t.timer = dec.Uint16() & 0x07ff
	t.length.deserialise(dec)
	t.control = dec.Bool()
	t.reloadValue = dec.Uint8() & 0x7f
	t.reload = dec.Bool()
	t.linear = dec.Uint8() & 0x7f
	t.phase = dec.Float()
}

type noise struct {
	regs [4]uint8

	enabled bool
	env     envelope
	length  length

	// mode selects the bit used for feedback: bit 6 when set, bit 1 when
	// clear
	mode   bool
	period uint16

	// fifteen bit shift register. must never be zero
	shift uint16

	// CPU cycles accumulated towards the next shift
	acc float64
}

func (n *noise) reset() {
	*n = noise{shift: 1, period: noiseTable[0]}
}

func (n *noise) write(reg int, data uint8) {
	n.regs[reg] = data
	switch reg {
	case 0:
		n.length.halt = data&0x20 == 0x20
		n.env.loop = n.length.halt
		n.env.constant = data&0x10 == 0x10
		n.env.rate = data & 0x0f
	case 2:
		n.mode = data&0x80 == 0x80
		n.period = noiseTable[data&0x0f]
	case 3:
		if n.enabled {
			n.length.load(data)
		}
		n.env.restart()
	}
}

func (n *noise) clock() {
	tap := 1
	if n.mode {
		tap = 6
	}
	feedback := (n.shift ^ (n.shift >> tap)) & 0x01
	n.shift = n.shift>>1 | feedback<<14
}

func (n *noise) sample(cycles float64) uint8 {
	var v uint8
	if n.enabled && n.length.count > 0 && n.shift&0x01 == 0 {
		v = n.env.output()
	}

	n.acc += cycles
	for n.acc >= float64(n.period) {
		n.acc -= float64(n.period)
		n.clock()
	}

	return v
}

func (n *noise) quarter() {
	n.env.step()
}

func (n *noise) half() {
	n.length.step()
}

func (n *noise) serialise(enc *savestate.Encoder) {
	enc.Bytes(n.regs[:])
	enc.Bool(n.enabled)
	n.env.serialise(enc)
	n.length.serialise(enc)
	enc.Bool(n.mode)
	enc.Uint(uint64(n.period))
	enc.Uint(uint64(n.shift))
	enc.Float(n.acc)
}

func (n *noise) deserialise(dec *savestate.Decoder) {
	dec.Bytes(n.regs[:])
	n.enabled = dec.Bool()
	n.env.deserialise(dec)
	n.length.deserialise(dec)
	n.mode = dec.Bool()
	n.period = dec.Uint16()
	n.shift = dec.Uint16() & 0x7fff
	n.acc = dec.Float()

	if n.period == 0 {
		n.period = noiseTable[0]
	}
	if n.shift == 0 {
		n.shift = 1
	}
}

// the delta modulation channel is register storage only
type dmc struct {
	regs    [4]uint8
	enabled bool
}

func (d *dmc) serialise(enc *savestate.Encoder) {
	enc.Bytes(d.regs[:])
	enc.Bool(d.enabled)
}

func (d *dmc) deserialise(dec *savestate.Decoder) {
	dec.Bytes(d.regs[:])
	d.enabled = dec.Bool()
}
