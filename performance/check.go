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

package performance

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/jetsetilly/gophernes/hardware"
)

// width of the histogram bars in characters
const histogramWidth = 40

// Check the performance of the emulation by running it for the number of
// frames. The frame rate is printed along with a histogram of the time taken
// by each frame, divided into the number of bins.
func Check(output io.Writer, nes *hardware.NES, frames int, bins int, profile Profile) error {
	if frames <= 0 {
		return fmt.Errorf("performance: number of frames must be positive")
	}
	if bins <= 0 {
		bins = 1
	}

	durations := make([]float64, 0, frames)
	var total time.Duration

	err := RunProfiler(profile, "performance", func() error {
		for i := 0; i < frames; i++ {
			start := time.Now()
			nes.RunForFrameCount(1)
			d := time.Since(start)
			total += d
			durations = append(durations, float64(d.Microseconds())/1000.0)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("performance: %w", err)
	}

	fps, accuracy := CalcFPS(frames, total.Seconds())
	fmt.Fprintf(output, "%.2f fps (%d frames in %.2f seconds) %.1f%%\n", fps, frames, total.Seconds(), accuracy)

	fmt.Fprintln(output, "frame time (ms)")

	// a histogram of identical values has no width
	lo, hi := durations[0], durations[0]
	for _, d := range durations {
		lo = math.Min(lo, d)
		hi = math.Max(hi, d)
	}
	if lo == hi {
		fmt.Fprintf(output, "%.3f (all frames)\n", lo)
		return nil
	}

	hist := histogram.Hist(bins, durations)
	if err := histogram.Fprint(output, hist, histogram.Linear(histogramWidth)); err != nil {
		return fmt.Errorf("performance: %w", err)
	}

	return nil
}
