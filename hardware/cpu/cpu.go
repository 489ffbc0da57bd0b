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

package cpu

import (
	"fmt"

	mos "github.com/beevik/go6502/cpu"
	"github.com/jetsetilly/gophernes/hardware/savestate"
)

// Vectors in the CPU address space.
const (
	NMIVector   = 0xfffa
	ResetVector = 0xfffc
	IRQVector   = 0xfffe
)

// OAMDMA is the address of the OAM DMA register.
const OAMDMA = 0x4014

// OAMData is the address of the PPU register that DMA writes to.
const OAMData = 0x2004

// number of cycles taken by the reset and NMI sequences
const interruptCycles = 7

// Bus is the subset of the bus.Bus type required by the CPU.
type Bus interface {
	Read(address uint16) (uint8, bool)
	Write(address uint16, data uint8) bool
}

// memory adapts the Bus interface to the memory interface required by the
// interpreter.
type memory struct {
	bus Bus
}

func (m memory) LoadByte(addr uint16) byte {
	v, _ := m.bus.Read(addr)
	return v
}

func (m memory) LoadBytes(addr uint16, b []byte) {
	for i := range b {
		b[i] = m.LoadByte(addr + uint16(i))
	}
}

func (m memory) LoadAddress(addr uint16) uint16 {
	return uint16(m.LoadByte(addr)) | uint16(m.LoadByte(addr+1))<<8
}

func (m memory) StoreByte(addr uint16, v byte) {
	m.bus.Write(addr, v)
}

func (m memory) StoreBytes(addr uint16, b []byte) {
	for i, v := range b {
		m.StoreByte(addr+uint16(i), v)
	}
}

func (m memory) StoreAddress(addr uint16, v uint16) {
	m.StoreByte(addr, uint8(v))
	m.StoreByte(addr+1, uint8(v>>8))
}

// CPU implements the bus.Device interface for the OAM DMA register.
type CPU struct {
	mem  memory
	core *mos.CPU

	// cycles remaining of the current instruction or interrupt sequence
	pending int

	// cycles remaining of a DMA halt. while the halt counter is non-zero the
	// interpreter is not stepped
	halt int

	// an NMI edge has been seen and will be serviced at the next
	// instruction boundary
	nmi bool

	// total number of cycles since reset
	Cycles uint64
}

// NewCPU is the preferred method of initialisation for the CPU type.
func NewCPU(bus Bus) *CPU {
	mc := &CPU{
		mem: memory{bus: bus},
	}
	mc.core = mos.NewCPU(mos.NMOS, mc.mem)
	return mc
}

func (mc *CPU) String() string {
	r := mc.core.Reg
	return fmt.Sprintf("PC=%04x A=%02x X=%02x Y=%02x SP=%02x P=%08b",
		r.PC, r.A, r.X, r.Y, r.SP, r.SavePS(false))
}

// Registers returns the current register values.
func (mc *CPU) Registers() mos.Registers {
	return mc.core.Reg
}

// Reset the CPU. The program counter is loaded from the reset vector.
func (mc *CPU) Reset() {
	mc.core.Reg = mos.Registers{}
	mc.core.Reg.SP = 0xfd
	mc.core.Reg.InterruptDisable = true
	mc.core.Reg.PC = mc.mem.LoadAddress(ResetVector)
	mc.pending = interruptCycles
	mc.halt = 0
	mc.nmi = false
	mc.Cycles = 0
}

// NMI signals a non-maskable interrupt. The interrupt is serviced at the
// next instruction boundary.
func (mc *CPU) NMI() {
	mc.nmi = true
}

// Halt the CPU for the number of cycles.
func (mc *CPU) Halt(cycles int) {
	mc.halt += cycles
}

// Halted returns true if the CPU is halted by DMA.
func (mc *CPU) Halted() bool {
	return mc.halt > 0
}

func (mc *CPU) push(v uint8) {
	mc.mem.StoreByte(0x0100|uint16(mc.core.Reg.SP), v)
	mc.core.Reg.SP--
}

func (mc *CPU) serviceNMI() {
	r := &mc.core.Reg
	mc.push(uint8(r.PC >> 8))
	mc.push(uint8(r.PC))
	mc.push(r.SavePS(false))
	r.InterruptDisable = true
	r.PC = mc.mem.LoadAddress(NMIVector)
}

// Tick advances the CPU by one cycle. An instruction is executed in its
// entirety on the first cycle and the remaining cycles are counted off on
// subsequent ticks.
func (mc *CPU) Tick() {
	mc.Cycles++

	if mc.halt > 0 {
		mc.halt--
		return
	}

	if mc.pending > 0 {
		mc.pending--
		return
	}

	if mc.nmi {
		mc.nmi = false
		mc.serviceNMI()
		mc.pending = interruptCycles - 1
		return
	}

	before := mc.core.Cycles
	mc.core.Step()
	mc.pending = int(mc.core.Cycles-before) - 1
	if mc.pending < 0 {
		mc.pending = 0
	}
}

// Read implements the bus.Device interface. The DMA register is write-only.
func (mc *CPU) Read(address uint16) (uint8, bool) {
	return 0, false
}

// Write implements the bus.Device interface.
func (mc *CPU) Write(address uint16, data uint8) bool {
	if address != OAMDMA {
		return false
	}

	page := uint16(data) << 8
	for i := uint16(0); i < 256; i++ {
		v, _ := mc.mem.bus.Read(page | i)
		mc.mem.bus.Write(OAMData, v)
	}

	cycles := 513
	if mc.Cycles&0x01 == 0x01 {
		cycles++
	}
	mc.Halt(cycles)

	return true
}

// Serialise implements the savestate.Component interface.
func (mc *CPU) Serialise(enc *savestate.Encoder) {
	r := mc.core.Reg
	enc.Uint(uint64(r.A))
	enc.Uint(uint64(r.X))
	enc.Uint(uint64(r.Y))
	enc.Uint(uint64(r.SP))
	enc.Uint(uint64(r.PC))
	enc.Uint(uint64(r.SavePS(false)))
	enc.Int(mc.pending)
	enc.Int(mc.halt)
	enc.Bool(mc.nmi)
	enc.Uint(mc.Cycles)
}

// Deserialise implements the savestate.Component interface.
func (mc *CPU) Deserialise(dec *savestate.Decoder) error {
	var r mos.Registers
	r.A = dec.Uint8()
	r.X = dec.Uint8()
	r.Y = dec.Uint8()
	r.SP = dec.Uint8()
	r.PC = dec.Uint16()
	r.RestorePS(dec.Uint8())
	pending := dec.Int()
	halt := dec.Int()
	nmi := dec.Bool()
	cycles := dec.Uint()
	if err := dec.Err(); err != nil {
		return err
	}

	mc.core.Reg = r
	mc.pending = pending
	mc.halt = halt
	mc.nmi = nmi
	mc.Cycles = cycles
	return nil
}
