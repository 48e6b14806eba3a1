// Command biquadinfo prints the coefficients and magnitude response of a
// biquad filter type.
//
// Usage:
//
//	biquadinfo [flags] <filter-type>
//
// Examples:
//
//	biquadinfo lowpass
//	biquadinfo -cutoff 2000 -rate 44100 -q 2 bandpass
//	biquadinfo -cutoff 1000 -gain -9 peakingeq
//	biquadinfo -points 32 -measured highshelf
//	biquadinfo -list
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"github.com/alex-parisi/biquad-filters/dsp/core"
	"github.com/alex-parisi/biquad-filters/dsp/filter"
	"github.com/alex-parisi/biquad-filters/dsp/spectrum"
)

var kinds = map[string]filter.Kind{
	"lowpass":   filter.LowPass,
	"highpass":  filter.HighPass,
	"bandpass":  filter.BandPass,
	"notch":     filter.Notch,
	"allpass":   filter.AllPass,
	"lowshelf":  filter.LowShelf,
	"highshelf": filter.HighShelf,
	"peakingeq": filter.PeakingEQ,
}

var kindOrder = []string{
	"lowpass", "highpass", "bandpass", "notch",
	"allpass", "lowshelf", "highshelf", "peakingeq",
}

func main() {
	cutoff := flag.Float64("cutoff", 1000, "cutoff/center frequency in Hz")
	rate := flag.Int("rate", 48000, "sample rate in Hz")
	q := flag.Float64("q", filter.DefaultQ, "quality factor")
	gain := flag.Float64("gain", filter.DefaultGainDB, "gain in dB (shelving/peaking)")
	skirt := flag.Bool("skirt", false, "constant skirt gain (bandpass)")
	points := flag.Int("points", 16, "number of response points")
	measured := flag.Bool("measured", false, "measure response via FFT of the impulse response")
	list := flag.Bool("list", false, "list known filter types")
	flag.Parse()

	if *list {
		for _, name := range kindOrder {
			fmt.Println(name)
		}
		return
	}

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: biquadinfo [flags] <filter-type>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	kind, ok := kinds[flag.Arg(0)]
	if !ok {
		fmt.Fprintf(os.Stderr, "biquadinfo: unknown filter type %q (try -list)\n", flag.Arg(0))
		os.Exit(2)
	}

	f, err := filter.New[float64](kind, *cutoff, *rate,
		filter.WithQFactor(*q),
		filter.WithGain(*gain),
		filter.WithConstantSkirtGain(*skirt),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "biquadinfo: %v\n", err)
		os.Exit(1)
	}

	c := f.Coefficients()
	fmt.Printf("%s  cutoff=%g Hz  rate=%d Hz  Q=%.4f  bandwidth=%.4f oct  gain=%g dB\n\n",
		f.Kind(), f.Cutoff(), f.SampleRate(), f.QFactor(), f.Bandwidth(), f.Gain())
	fmt.Printf("b0=%.10f  b1=%.10f  b2=%.10f\n", c.B0, c.B1, c.B2)
	fmt.Printf("a0=%.10f  a1=%.10f  a2=%.10f\n\n", c.A0, c.A1, c.A2)

	if err := printResponse(f, *points, *measured); err != nil {
		fmt.Fprintf(os.Stderr, "biquadinfo: %v\n", err)
		os.Exit(1)
	}
}

// printResponse writes a magnitude table over a log-spaced frequency grid
// from 10 Hz up to Nyquist.
func printResponse(f *filter.Filter[float64], points int, measured bool) error {
	nyquist := float64(f.SampleRate()) / 2
	if points < 2 {
		points = 2
	}

	var bins []float64
	fftSize := 0
	if measured {
		fftSize = 4096
		an, err := spectrum.NewAnalyzer(fftSize)
		if err != nil {
			return err
		}

		bins, err = an.Response(f.Coefficients())
		if err != nil {
			return err
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "freq (Hz)\tmagnitude (dB)\tphase (rad)\t")

	logMin := math.Log10(10)
	logMax := math.Log10(nyquist)
	for i := 0; i < points; i++ {
		frac := float64(i) / float64(points-1)
		freq := math.Pow(10, logMin+frac*(logMax-logMin))
		freq = core.Clamp(freq, 10, nyquist)

		var db float64
		if measured {
			bin := int(math.Round(freq / float64(f.SampleRate()) * float64(fftSize)))
			db = core.LinearToDB(bins[bin])
		} else {
			db = f.Coefficients().MagnitudeDB(freq, float64(f.SampleRate()))
		}

		fmt.Fprintf(w, "%.1f\t%+.3f\t%+.4f\t\n", freq, db,
			f.Coefficients().Phase(freq, float64(f.SampleRate())))
	}

	return w.Flush()
}
