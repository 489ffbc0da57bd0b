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

package modalflag_test

import (
	"strings"
	"testing"

	"github.com/jetsetilly/gophernes/modalflag"
	"github.com/jetsetilly/gophernes/test"
)

func TestNoModes(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{"-frames", "10", "game.nes"})
	frames := md.AddInt("frames", 0, "number of frames")

	p, err := md.Parse()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectEquality(t, *frames, 10)
	test.ExpectEquality(t, md.Mode(), "")
	test.ExpectEquality(t, md.GetArg(0), "game.nes")
	test.ExpectEquality(t, md.GetArg(1), "")
}

func TestDefaultMode(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{"game.nes"})
	md.AddSubModes("run", "perf")

	_, err := md.Parse()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, md.Mode(), "RUN")
	test.ExpectEquality(t, len(md.RemainingArgs()), 1)
	test.ExpectEquality(t, md.GetArg(0), "game.nes")
}

func TestModes(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{"-log", "perf", "-bins", "5", "game.nes"})
	md.AddSubModes("RUN", "PERF")
	log := md.AddBool("log", false, "echo log")

	_, err := md.Parse()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, *log, true)
	test.DemandEquality(t, md.Mode(), "PERF")

	md.NewMode()
	bins := md.AddInt("bins", 10, "histogram bins")
	_, err = md.Parse()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, *bins, 5)
	test.ExpectEquality(t, md.Path(), "PERF")
	test.ExpectEquality(t, md.GetArg(0), "game.nes")

	var set []string
	md.Visit(func(f string) { set = append(set, f) })
	test.ExpectEquality(t, strings.Join(set, ","), "bins")
}

func TestHelp(t *testing.T) {
	var out strings.Builder
	md := modalflag.Modes{Output: &out}
	md.NewArgs([]string{"-help"})
	md.AddSubModes("RUN", "PERF")
	md.AddInt("frames", 0, "number of frames")
	md.AdditionalHelp("more help")

	p, err := md.Parse()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, modalflag.ParseHelp)
	test.ExpectSuccess(t, strings.Contains(out.String(), "-frames"))
	test.ExpectSuccess(t, strings.Contains(out.String(), "default: RUN"))
	test.ExpectSuccess(t, strings.Contains(out.String(), "more help"))
}

func TestBadFlag(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{"-nosuchflag"})

	p, err := md.Parse()
	test.ExpectFailure(t, err)
	test.ExpectEquality(t, p, modalflag.ParseError)
}
