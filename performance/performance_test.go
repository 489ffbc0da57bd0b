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

package performance_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/jetsetilly/gophernes/hardware"
	"github.com/jetsetilly/gophernes/hardware/cartridge"
	"github.com/jetsetilly/gophernes/hardware/instance"
	"github.com/jetsetilly/gophernes/hardware/preferences"
	"github.com/jetsetilly/gophernes/performance"
	"github.com/jetsetilly/gophernes/test"
)

func TestCalcFPS(t *testing.T) {
	fps, accuracy := performance.CalcFPS(120, 2.0)
	test.ExpectEquality(t, fps, 60.0)
	test.ExpectApproximate(t, accuracy, 100.0*60.0/performance.FramesPerSecond, 0.0001)
	test.ExpectApproximate(t, performance.FramesPerSecond, 60.0988, 0.0001)

	fps, _ = performance.CalcFPS(10, 0)
	test.ExpectEquality(t, fps, 0.0)
}

func TestParseProfileString(t *testing.T) {
	p, err := performance.ParseProfileString("cpu,mem")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, performance.ProfileCPU|performance.ProfileMem)

	p, err = performance.ParseProfileString("none")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, performance.ProfileNone)

	_, err = performance.ParseProfileString("cpu,trace")
	test.ExpectFailure(t, err)
}

func TestCheck(t *testing.T) {
	prefs, err := preferences.NewPreferencesFromFile(filepath.Join(t.TempDir(), "preferences"))
	test.DemandSuccess(t, err)
	ins, err := instance.NewInstance(prefs)
	test.DemandSuccess(t, err)

	// JMP $8000 with the reset vector pointing to it
	prg := make([]uint8, 2*cartridge.ProgramBankSize)
	copy(prg, []uint8{0x4c, 0x00, 0x80})
	prg[len(prg)-4] = 0x00
	prg[len(prg)-3] = 0x80

	cart, err := cartridge.NewCartridge(prg, nil, 1)
	test.DemandSuccess(t, err)
	nes, err := hardware.NewNES(ins, cart)
	test.DemandSuccess(t, err)

	var out strings.Builder
	test.DemandSuccess(t, performance.Check(&out, nes, 5, 3, performance.ProfileNone))
	test.ExpectEquality(t, nes.PPU.Frame(), 5)
	test.ExpectSuccess(t, strings.Contains(out.String(), "fps (5 frames"))

	test.ExpectFailure(t, performance.Check(&out, nes, 0, 3, performance.ProfileNone))
}
