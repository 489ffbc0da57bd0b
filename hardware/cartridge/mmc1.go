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

package cartridge

import (
	"fmt"

	"github.com/jetsetilly/gophernes/curated"
	"github.com/jetsetilly/gophernes/hardware/savestate"
)

// register values of the MMC1 mapper.
type mmc1Registers struct {
	Control uint8

	// program banks are 16KB. the merged bank is 32KB
	ProgramFirst  uint8
	ProgramSecond uint8
	ProgramMerged uint8

	// graphics banks are 4KB. the merged bank is 8KB
	GraphicsFirst  uint8
	GraphicsSecond uint8
	GraphicsMerged uint8
}

// control register values
const (
	mmc1MirroringMask = 0x03

	// set for the "fixed low" and "fixed high" program modes. clear for
	// the merged 32KB mode
	mmc1SeparateProgram = 0x08

	mmc1ProgramMode = 0x0c

	// set for two separate 4KB graphics banks
	mmc1SeparateGraphics = 0x10

	// program mode 3, the "fixed high" mode
	mmc1Locked = 0x0c
)

// the value of the shift register after five writes is the value being
// committed. the initial value has the marker bit in the top position
const mmc1ShiftReset = 0x10

// mmc1 implements the Mapper interface.
type mmc1 struct {
	programBanks  int
	graphicsBanks int
	graphicsRAM   bool

	shift uint8
	count int

	regs mmc1Registers
}

func newMMC1(programSize int, graphicsSize int, graphicsRAM bool) *mmc1 {
	m := &mmc1{
		programBanks:  programSize / ProgramBankSize,
		graphicsBanks: graphicsSize / 0x1000,
		graphicsRAM:   graphicsRAM,
	}
	m.Reset()
	return m
}

func (m *mmc1) ID() int {
	return 1
}

func (m *mmc1) String() string {
	r := m.regs
	return fmt.Sprintf("MMC1 ctrl=%05b prg=%d/%d/%d chr=%d/%d/%d shift=%05b (%d)",
		r.Control, r.ProgramFirst, r.ProgramSecond, r.ProgramMerged,
		r.GraphicsFirst, r.GraphicsSecond, r.GraphicsMerged,
		m.shift&0x1f, m.count)
}

func (m *mmc1) Reset() {
	m.shift = mmc1ShiftReset
	m.count = 0
	m.regs = mmc1Registers{
		Control:       mmc1Locked,
		ProgramSecond: uint8(m.programBanks - 1),
	}
}

func (m *mmc1) Write(address uint16, data uint8) {
	// a write with the top bit set resets the serial protocol
	if data&0x80 == 0x80 {
		m.shift = mmc1ShiftReset
		m.count = 0
		m.regs.Control |= mmc1Locked
		return
	}

	m.shift = (m.shift >> 1) | ((data & 0x01) << 4)
	m.count++

	if m.count < 5 {
		return
	}

	v := m.shift & 0x1f
	m.shift = mmc1ShiftReset
	m.count = 0

	switch (address >> 13) & 0x03 {
	case 0:
		m.regs.Control = v
	case 1:
		if m.regs.Control&mmc1SeparateGraphics == mmc1SeparateGraphics {
			m.regs.GraphicsFirst = v
		} else {
			m.regs.GraphicsMerged = v >> 1
		}
	case 2:
		if m.regs.Control&mmc1SeparateGraphics == mmc1SeparateGraphics {
			m.regs.GraphicsSecond = v
		}
	case 3:
		// bit 4 of the program register is the RAM enable bit, which is
		// not emulated
		bank := v & 0x0f
		switch (m.regs.Control & mmc1ProgramMode) >> 2 {
		case 0, 1:
			m.regs.ProgramMerged = bank >> 1
		case 2:
			m.regs.ProgramFirst = 0
			m.regs.ProgramSecond = bank
		case 3:
			m.regs.ProgramFirst = bank
			m.regs.ProgramSecond = uint8(m.programBanks - 1)
		}
	}
}

func (m *mmc1) MapProgram(address uint16) int {
	address -= 0x8000
	if m.regs.Control&mmc1SeparateProgram == mmc1SeparateProgram {
		if address < ProgramBankSize {
			return int(m.regs.ProgramFirst)%m.programBanks*ProgramBankSize + int(address)
		}
		return int(m.regs.ProgramSecond)%m.programBanks*ProgramBankSize + int(address-ProgramBankSize)
	}

	merged := m.programBanks / 2
	if merged == 0 {
		return int(address) % (m.programBanks * ProgramBankSize)
	}
	return int(m.regs.ProgramMerged)%merged*ProgramBankSize*2 + int(address)
}

func (m *mmc1) MapGraphics(address uint16) int {
	address &= 0x1fff

	// graphics RAM is not banked
	if m.graphicsRAM {
		return int(address)
	}

	if m.regs.Control&mmc1SeparateGraphics == mmc1SeparateGraphics {
		if address < 0x1000 {
			return int(m.regs.GraphicsFirst)%m.graphicsBanks*0x1000 + int(address)
		}
		return int(m.regs.GraphicsSecond)%m.graphicsBanks*0x1000 + int(address-0x1000)
	}
	return int(m.regs.GraphicsMerged)%(m.graphicsBanks/2)*0x2000 + int(address)
}

func (m *mmc1) Mirroring() Mirroring {
	return Mirroring(m.regs.Control & mmc1MirroringMask)
}

// Serialise implements the savestate.Component interface.
func (m *mmc1) Serialise(enc *savestate.Encoder) {
	enc.Uint(uint64(m.shift))
	enc.Uint(uint64(m.count))
	enc.Uint(uint64(m.regs.Control))
	enc.Uint(uint64(m.regs.ProgramFirst))
	enc.Uint(uint64(m.regs.ProgramSecond))
	enc.Uint(uint64(m.regs.ProgramMerged))
	enc.Uint(uint64(m.regs.GraphicsFirst))
	enc.Uint(uint64(m.regs.GraphicsSecond))
	enc.Uint(uint64(m.regs.GraphicsMerged))
}

// Deserialise implements the savestate.Component interface.
func (m *mmc1) Deserialise(dec *savestate.Decoder) error {
	shift := dec.Uint8()
	count := int(dec.Uint())
	var r mmc1Registers
	r.Control = dec.Uint8()
	r.ProgramFirst = dec.Uint8()
	r.ProgramSecond = dec.Uint8()
	r.ProgramMerged = dec.Uint8()
	r.GraphicsFirst = dec.Uint8()
	r.GraphicsSecond = dec.Uint8()
	r.GraphicsMerged = dec.Uint8()
	if err := dec.Err(); err != nil {
		return err
	}
	if count > 4 {
		return curated.Errorf("%v: mmc1 write count %d", savestate.ErrCorrupt, count)
	}
	m.shift = shift
	m.count = count
	m.regs = r
	return nil
}
