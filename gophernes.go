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

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/jetsetilly/gophernes/cartridgeloader"
	"github.com/jetsetilly/gophernes/hardware"
	"github.com/jetsetilly/gophernes/hardware/hostcall"
	"github.com/jetsetilly/gophernes/hardware/instance"
	"github.com/jetsetilly/gophernes/logger"
	"github.com/jetsetilly/gophernes/memport"
	"github.com/jetsetilly/gophernes/modalflag"
	"github.com/jetsetilly/gophernes/performance"
	"github.com/jetsetilly/gophernes/prefs"
	"github.com/jetsetilly/gophernes/statsview"
	"github.com/jetsetilly/gophernes/version"
	"github.com/jetsetilly/gophernes/wavwriter"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	os.Exit(launch(ctx, os.Args[1:], os.Stdout))
}

// launch returns the value to be used with os.Exit().
func launch(ctx context.Context, args []string, output io.Writer) int {
	md := &modalflag.Modes{Output: output}
	md.NewArgs(args)
	md.AddSubModes("RUN", "PERF", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return 0
	case modalflag.ParseError:
		fmt.Fprintf(output, "* error: %v\n", err)
		return 10
	}

	switch md.Mode() {
	case "RUN":
		err = run(ctx, md)
	case "PERF":
		err = perform(md)
	case "VERSION":
		fmt.Fprintln(output, version.String())
	}

	if err != nil {
		fmt.Fprintf(output, "* error in %s mode: %s\n", md, err)
		return 20
	}

	return 0
}

// create the emulation for the cartridge named in the remaining arguments.
// the command line preferences are applied before the instance is created
func create(md *modalflag.Modes, cmdlinePrefs string) (*hardware.NES, error) {
	switch len(md.RemainingArgs()) {
	case 0:
		return nil, fmt.Errorf("a cartridge must be specified")
	case 1:
	default:
		return nil, fmt.Errorf("too many arguments for %s mode", md)
	}

	if cmdlinePrefs != "" {
		prefs.PushCommandLineStack(cmdlinePrefs)
		defer prefs.PopCommandLineStack()
	}

	ins, err := instance.NewInstance(nil)
	if err != nil {
		return nil, err
	}

	cartload := cartridgeloader.NewLoader(md.GetArg(0))
	cart, err := cartload.Cartridge()
	if err != nil {
		return nil, err
	}

	return hardware.NewNES(ins, cart)
}

// host calls available to the program running in the emulation
const (
	hostCallLog   = 0x01
	hostCallFrame = 0x02
)

func registerHostCalls(nes *hardware.NES) error {
	err := nes.HostCall.Register(hostCallLog, 2, func(_ hostcall.Context, args [hostcall.MaxArgs]uint8) uint8 {
		logger.Logf(nes.Instance, "program", "%02x %02x", args[0], args[1])
		return 0
	})
	if err != nil {
		return err
	}

	return nes.HostCall.Register(hostCallFrame, 0, func(_ hostcall.Context, _ [hostcall.MaxArgs]uint8) uint8 {
		return uint8(nes.PPU.Frame())
	})
}

func run(ctx context.Context, md *modalflag.Modes) error {
	md.NewMode()

	frames := md.AddInt("frames", 0, "number of frames to run (0 to run until interrupted)")
	realtime := md.AddBool("realtime", false, "run at the speed of the console")
	wav := md.AddString("wav", "", "record audio to wav file")
	save := md.AddString("save", "", "save state to file when emulation ends")
	load := md.AddString("load", "", "load state from file before emulation starts")
	memportAddr := md.AddString("memport", "", "listen address of the websocket memory port")
	stats := md.AddString("statsview", "", fmt.Sprintf("listen address of the stats server (available=%v)", statsview.Available()))
	log := md.AddBool("log", false, "echo debugging log to stdout")
	cmdlinePrefs := md.AddString("prefs", "", "preferences for this session")

	p, err := md.Parse()
	if p != modalflag.ParseContinue {
		return err
	}

	if *log {
		logger.SetEcho(md.Output)
	}

	if *stats != "" {
		stop, err := statsview.Launch(md.Output, *stats)
		if err != nil {
			return err
		}
		defer stop()
	}

	nes, err := create(md, *cmdlinePrefs)
	if err != nil {
		return err
	}

	if err := registerHostCalls(nes); err != nil {
		return err
	}

	if *load != "" {
		data, err := os.ReadFile(*load)
		if err != nil {
			return err
		}
		if err := nes.Deserialise(data); err != nil {
			return err
		}
	}

	if *memportAddr != "" {
		srv := memport.NewServer(nes.Instance)
		nes.AttachMemPort(srv)

		mux := http.NewServeMux()
		mux.Handle("/memport", srv.Handler())
		go func() {
			err := http.ListenAndServe(*memportAddr, mux)
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Log(nes.Instance, "memport", err)
			}
		}()
		fmt.Fprintf(md.Output, "memory port available at ws://%s/memport\n", *memportAddr)
	}

	var rec *wavwriter.WavWriter
	if *wav != "" {
		rec, err = wavwriter.New(*wav, nes.Instance.Prefs.SampleRate.Get().(int))
		if err != nil {
			return err
		}
	}

	audio := newAudioPull(nes, rec)
	startFrame := nes.PPU.Frame()
	done := func() bool {
		select {
		case <-ctx.Done():
			return true
		default:
		}
		return *frames > 0 && nes.PPU.Frame()-startFrame >= *frames
	}

	if *realtime {
		ticker := time.NewTicker(time.Second / 60)
		defer ticker.Stop()
		for !done() {
			select {
			case now := <-ticker.C:
				f := nes.PPU.Frame()
				nes.Update(now)
				audio.frames(nes.PPU.Frame() - f)
			case <-ctx.Done():
			}
		}
	} else {
		for !done() {
			nes.RunForFrameCount(1)
			audio.frames(1)
		}
	}

	if rec != nil {
		if err := rec.EndMixing(); err != nil {
			return err
		}
	}

	if *save != "" {
		data, err := nes.Serialise()
		if err != nil {
			return err
		}
		if err := os.WriteFile(*save, data, 0o644); err != nil {
			return err
		}
	}

	return nil
}

// audioPull takes samples from the APU for every frame of emulation. the
// samples are discarded unless there is a wav recording
type audioPull struct {
	nes  *hardware.NES
	rec  *wavwriter.WavWriter
	rate int

	// fractional samples carried over to the next frame
	acc float64
	buf []int16
}

func newAudioPull(nes *hardware.NES, rec *wavwriter.WavWriter) *audioPull {
	return &audioPull{
		nes:  nes,
		rec:  rec,
		rate: nes.Instance.Prefs.SampleRate.Get().(int),
	}
}

func (a *audioPull) frames(n int) {
	if n <= 0 {
		return
	}

	a.acc += float64(n) * float64(a.rate) / performance.FramesPerSecond
	num := int(a.acc)
	a.acc -= float64(num)

	if cap(a.buf) < num {
		a.buf = make([]int16, num)
	}
	a.buf = a.buf[:num]

	a.nes.APU.Progress(a.buf, a.rate, 1)
	if a.rec != nil {
		a.rec.Write(a.buf)
	}
}

func perform(md *modalflag.Modes) error {
	md.NewMode()

	frames := md.AddInt("frames", 300, "number of frames to run")
	bins := md.AddInt("bins", 10, "number of bins in the frame time histogram")
	profile := md.AddString("profile", "none", "create profiling reports: cpu, mem, all or none")
	cmdlinePrefs := md.AddString("prefs", "", "preferences for this session")

	p, err := md.Parse()
	if p != modalflag.ParseContinue {
		return err
	}

	prf, err := performance.ParseProfileString(*profile)
	if err != nil {
		return err
	}

	nes, err := create(md, *cmdlinePrefs)
	if err != nil {
		return err
	}

	return performance.Check(md.Output, nes, *frames, *bins, prf)
}
