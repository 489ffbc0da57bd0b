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
	"errors"
	"fmt"
	"time"

	"github.com/jetsetilly/gophernes/curated"
	"github.com/jetsetilly/gophernes/hardware/apu"
	"github.com/jetsetilly/gophernes/hardware/bus"
	"github.com/jetsetilly/gophernes/hardware/cartridge"
	"github.com/jetsetilly/gophernes/hardware/controller"
	"github.com/jetsetilly/gophernes/hardware/cpu"
	"github.com/jetsetilly/gophernes/hardware/hostcall"
	"github.com/jetsetilly/gophernes/hardware/instance"
	"github.com/jetsetilly/gophernes/hardware/memory"
	"github.com/jetsetilly/gophernes/hardware/ppu"
	"github.com/jetsetilly/gophernes/logger"
	"github.com/jetsetilly/gophernes/memport"
)

// DotRate is the number of PPU dots per second. There are three dots for
// every CPU cycle.
const DotRate = 3 * apu.ClockRate

// MaxDelta is the longest period of time that will be emulated in a single
// call to Update() or Advance(). Equivalent to 20 frames per second.
const MaxDelta = 50 * time.Millisecond

// ErrNoCartridge is returned by NewNES() if there is no cartridge to attach.
var ErrNoCartridge = errors.New("hardware: no cartridge")

// NES is the root of the emulation.
type NES struct {
	Instance *instance.Instance

	CPU        *cpu.CPU
	PPU        *ppu.PPU
	APU        *apu.APU
	RAM        *memory.RAM
	Controller *controller.Controller
	HostCall   *hostcall.Bridge
	Cart       *cartridge.Cartridge

	CPUBus *bus.Bus
	PPUBus *bus.Bus

	// optional queue of external memory requests
	memport *memport.Server

	// the CPU is stepped on every third dot. phase counts the dots
	phase int

	// fractional dots waiting to be emulated
	accumulator float64

	// time of the previous call to Update()
	last time.Time
}

// NewNES creates a new NES and everything associated with the hardware. The
// cartridge is attached and the machine reset. A machine is never returned
// if there is an error.
func NewNES(ins *instance.Instance, cart *cartridge.Cartridge) (*NES, error) {
	if cart == nil {
		return nil, ErrNoCartridge
	}

	nes := &NES{
		Instance: ins,
		Cart:     cart,
		CPUBus:   bus.NewBus("cpu", 0xffff),
		PPUBus:   bus.NewBus("ppu", 0x3fff),
	}

	nes.RAM = memory.NewRAM()
	nes.CPU = cpu.NewCPU(nes.CPUBus)
	nes.PPU = ppu.NewPPU(nes.CPU, nes.PPUBus, cart)
	nes.APU = apu.NewAPU(ins.Prefs)
	nes.Controller = controller.NewController()
	nes.HostCall = hostcall.NewBridge(ins, nes)

	cpuMap := []struct {
		dev   bus.Device
		label string
		lower uint16
		upper uint16
	}{
		{dev: nes.RAM, label: "ram", lower: memory.Origin, upper: memory.Memtop},
		{dev: nes.PPU, label: "ppu", lower: ppu.RegistersOrigin, upper: ppu.RegistersMemtop},
		{dev: nes.APU, label: "apu", lower: apu.RegPulse1, upper: apu.RegDMCMemtop},
		{dev: nes.CPU, label: "dma", lower: cpu.OAMDMA, upper: cpu.OAMDMA},
		{dev: nes.APU, label: "apu", lower: apu.RegStatus, upper: apu.RegStatus},
		{dev: nes.Controller, label: "controller", lower: controller.Port1, upper: controller.Port2},
		{dev: nes.HostCall, label: "hostcall", lower: hostcall.Port, upper: hostcall.Port},
		{dev: cart, label: "cartridge", lower: cartridge.ProgramRAMOrigin, upper: cartridge.ProgramMemtop},
	}
	for _, m := range cpuMap {
		if err := nes.CPUBus.Attach(m.dev, m.label, m.lower, m.upper); err != nil {
			return nil, curated.Errorf("hardware: %v", err)
		}
	}

	if err := nes.PPUBus.Attach(cart.Graphics(), "graphics", cartridge.GraphicsOrigin, cartridge.GraphicsMemtop); err != nil {
		return nil, curated.Errorf("hardware: %v", err)
	}
	if err := nes.PPUBus.Attach(nes.PPU.VRAM(), "vram", ppu.NametableOrigin, ppu.PaletteMemtop); err != nil {
		return nil, curated.Errorf("hardware: %v", err)
	}

	ins.Random.SetCoords(nes.PPU)

	logger.Log(ins, "nes", cart)

	nes.Reset()

	return nes, nil
}

func (nes *NES) String() string {
	frame, scanline, dot := nes.PPU.Coords()
	return fmt.Sprintf("frame=%d scanline=%d dot=%d %s", frame, scanline, dot, nes.CPU)
}

// Reset emulates the reset of the console. Work RAM is randomised if the
// preferences require it.
func (nes *NES) Reset() {
	if nes.Instance.Prefs.RandomState.Get().(bool) {
		nes.RAM.Reset(nes.Instance.Random)
	} else {
		nes.RAM.Reset(nil)
	}

	nes.Cart.Reset()
	nes.PPU.Reset()
	nes.APU.Reset()
	nes.Controller.Reset()
	nes.HostCall.Reset()

	// the CPU reads the reset vector so must be reset after the cartridge
	nes.CPU.Reset()

	nes.phase = 0
	nes.accumulator = 0
	nes.last = time.Time{}
}

// AttachMemPort adds a queue of external memory requests to the emulation.
// The queue is drained between CPU steps. A nil value removes the queue.
func (nes *NES) AttachMemPort(srv *memport.Server) {
	nes.memport = srv
}

// Peek implements the hostcall.Context and memport.Memory interfaces. The
// value is the one the CPU would read but the read has no side effects.
func (nes *NES) Peek(address uint16) uint8 {
	v, _ := nes.CPUBus.Peek(address)
	return v
}

// Poke implements the hostcall.Context and memport.Memory interfaces.
func (nes *NES) Poke(address uint16, data uint8) {
	nes.CPUBus.Write(address, data)
}

// Step the emulation by one PPU dot. The CPU is stepped on every third dot.
func (nes *NES) Step() {
	if nes.phase == 0 {
		if nes.memport != nil {
			nes.memport.Drain(nes)
		}
		nes.CPU.Tick()
	}
	nes.PPU.Tick()

	nes.phase++
	if nes.phase >= 3 {
		nes.phase = 0
	}
}

// Advance the emulation by the duration. The duration is clamped to MaxDelta
// and multiplied by the fast-forward preference. Fractional dots are carried
// over to the next call.
func (nes *NES) Advance(d time.Duration) {
	if d <= 0 {
		return
	}
	if d > MaxDelta {
		d = MaxDelta
	}

	ff := nes.Instance.Prefs.FastForward.Get().(float64)
	nes.accumulator += d.Seconds() * ff * DotRate

	for nes.accumulator >= 1.0 {
		nes.accumulator--
		nes.Step()
	}
}

// Update the emulation to the wall-clock time. The first call only records the
// time.
func (nes *NES) Update(now time.Time) {
	if nes.last.IsZero() {
		nes.last = now
		return
	}
	d := now.Sub(nes.last)
	nes.last = now
	nes.Advance(d)
}

// RunForFrameCount steps the emulation until the PPU has started the number
// of new frames.
func (nes *NES) RunForFrameCount(frames int) {
	target := nes.PPU.Frame() + frames
	for nes.PPU.Frame() < target {
		nes.Step()
	}
}
