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
	"testing"

	"github.com/jetsetilly/gophernes/test"
)

// write value to the mapper with the five write serial protocol
func serialWrite(m *mmc1, address uint16, v uint8) {
	for i := 0; i < 5; i++ {
		m.Write(address, (v>>i)&0x01)
	}
}

func TestMMC1Reset(t *testing.T) {
	m := newMMC1(8*ProgramBankSize, DefaultGraphicsRAMSize, true)
	test.ExpectEquality(t, m.shift, uint8(mmc1ShiftReset))
	test.ExpectEquality(t, m.count, 0)
	test.ExpectEquality(t, m.regs, mmc1Registers{
		Control:       0x0c,
		ProgramSecond: 7,
	})
}

func TestMMC1Control(t *testing.T) {
	m := newMMC1(8*ProgramBankSize, DefaultGraphicsRAMSize, true)

	for v := uint8(0); v < 0x20; v++ {
		serialWrite(m, 0x8000, v)
		test.ExpectEquality(t, m.regs.Control, v)
		test.ExpectEquality(t, m.count, 0)
		test.ExpectEquality(t, m.shift, uint8(mmc1ShiftReset))
		test.ExpectEquality(t, m.Mirroring(), Mirroring(v&0x03))
	}

	// any address in the range $8000 to $9fff selects the control register
	serialWrite(m, 0x9fff, 0x02)
	test.ExpectEquality(t, m.regs.Control, uint8(0x02))
	test.ExpectEquality(t, m.Mirroring(), Vertical)
}

func TestMMC1Graphics(t *testing.T) {
	m := newMMC1(8*ProgramBankSize, 16*0x1000, false)

	// 8KB mode. the low bit of the value is ignored
	serialWrite(m, 0x8000, 0x00)
	serialWrite(m, 0xa000, 0x05)
	test.ExpectEquality(t, m.regs.GraphicsMerged, uint8(0x02))
	test.ExpectEquality(t, m.MapGraphics(0x0010), 2*0x2000+0x10)
	test.ExpectEquality(t, m.MapGraphics(0x1010), 2*0x2000+0x1010)

	// second slot is ignored in 8KB mode
	serialWrite(m, 0xc000, 0x07)
	test.ExpectEquality(t, m.regs.GraphicsSecond, uint8(0x00))

	// 4KB mode
	serialWrite(m, 0x8000, mmc1SeparateGraphics)
	serialWrite(m, 0xa000, 0x03)
	serialWrite(m, 0xc000, 0x09)
	test.ExpectEquality(t, m.regs.GraphicsFirst, uint8(0x03))
	test.ExpectEquality(t, m.regs.GraphicsSecond, uint8(0x09))
	test.ExpectEquality(t, m.MapGraphics(0x0010), 3*0x1000+0x10)
	test.ExpectEquality(t, m.MapGraphics(0x1010), 9*0x1000+0x10)
}

func TestMMC1GraphicsRAM(t *testing.T) {
	m := newMMC1(8*ProgramBankSize, DefaultGraphicsRAMSize, true)
	serialWrite(m, 0x8000, mmc1SeparateGraphics)
	serialWrite(m, 0xa000, 0x03)

	// graphics RAM is not banked
	for _, a := range []uint16{0x0000, 0x0fff, 0x1000, 0x1fff} {
		test.ExpectEquality(t, m.MapGraphics(a), int(a))
	}
}

func TestMMC1Program(t *testing.T) {
	type expect struct {
		control uint8
		value   uint8
		first   uint8
		second  uint8
		merged  uint8
		low     int
		high    int
	}

	for _, e := range []expect{
		// merged 32KB modes. low bit of the bank is ignored
		{control: 0x00, value: 0x05, first: 0, second: 7, merged: 2, low: 4 * ProgramBankSize, high: 5 * ProgramBankSize},
		{control: 0x04, value: 0x03, first: 0, second: 7, merged: 1, low: 2 * ProgramBankSize, high: 3 * ProgramBankSize},

		// first bank fixed at zero
		{control: 0x08, value: 0x05, first: 0, second: 5, merged: 0, low: 0, high: 5 * ProgramBankSize},

		// second bank fixed at last bank
		{control: 0x0c, value: 0x03, first: 3, second: 7, merged: 0, low: 3 * ProgramBankSize, high: 7 * ProgramBankSize},

		// bit 4 of the value is ignored
		{control: 0x0c, value: 0x12, first: 2, second: 7, merged: 0, low: 2 * ProgramBankSize, high: 7 * ProgramBankSize},
	} {
		m := newMMC1(8*ProgramBankSize, DefaultGraphicsRAMSize, true)
		serialWrite(m, 0x8000, e.control)
		serialWrite(m, 0xe000, e.value)

		test.ExpectEquality(t, m.regs.ProgramFirst, e.first, e)
		test.ExpectEquality(t, m.regs.ProgramSecond, e.second, e)
		test.ExpectEquality(t, m.regs.ProgramMerged, e.merged, e)
		test.ExpectEquality(t, m.MapProgram(0x8000), e.low, e)
		test.ExpectEquality(t, m.MapProgram(0xc000), e.high, e)
		test.ExpectEquality(t, m.MapProgram(0xffff), e.high+0x3fff, e)
	}
}

func TestMMC1ResetWrite(t *testing.T) {
	m := newMMC1(8*ProgramBankSize, DefaultGraphicsRAMSize, true)
	serialWrite(m, 0x8000, 0x00)
	test.ExpectEquality(t, m.regs.Control, uint8(0x00))

	// a reset write part way through a sequence abandons the sequence
	m.Write(0x8000, 0x01)
	m.Write(0x8000, 0x01)
	m.Write(0x8000, 0x80)
	test.ExpectEquality(t, m.count, 0)
	test.ExpectEquality(t, m.shift, uint8(mmc1ShiftReset))
	test.ExpectEquality(t, m.regs.Control, uint8(0x0c))

	// other bits of the control register are preserved
	serialWrite(m, 0x8000, 0x13)
	m.Write(0xe000, 0xff)
	test.ExpectEquality(t, m.regs.Control, uint8(0x1f))

	// bank registers are unchanged by a reset write
	serialWrite(m, 0xe000, 0x02)
	m.Write(0x8000, 0x80)
	test.ExpectEquality(t, m.regs.ProgramFirst, uint8(0x02))

	// a complete sequence after the reset write targets the new address
	serialWrite(m, 0xa000, 0x04)
	test.ExpectEquality(t, m.regs.GraphicsFirst, uint8(0x04))
}

func TestMMC1SmallProgram(t *testing.T) {
	// a single program bank is mirrored in the merged mode
	m := newMMC1(ProgramBankSize, DefaultGraphicsRAMSize, true)
	serialWrite(m, 0x8000, 0x00)
	test.ExpectEquality(t, m.MapProgram(0x8000), 0)
	test.ExpectEquality(t, m.MapProgram(0xc000), 0)
}
