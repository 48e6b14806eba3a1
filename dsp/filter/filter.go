package filter

import (
	"fmt"
	"math"

	"github.com/alex-parisi/biquad-filters/dsp/biquad"
)

// Kind identifies a filter response shape.
type Kind int

const (
	// LowPass passes frequencies below the cutoff.
	LowPass Kind = iota
	// HighPass passes frequencies above the cutoff.
	HighPass
	// BandPass passes a band around the cutoff. Peak gain is Q by default;
	// the constant-skirt-gain variant keeps the skirt gain fixed instead.
	BandPass
	// Notch rejects a narrow band around the cutoff.
	Notch
	// AllPass passes all frequencies with a frequency-dependent phase shift.
	AllPass
	// LowShelf boosts or attenuates frequencies below the cutoff by the gain.
	LowShelf
	// HighShelf boosts or attenuates frequencies above the cutoff by the gain.
	HighShelf
	// PeakingEQ boosts or attenuates a band around the cutoff by the gain.
	PeakingEQ
)

func (k Kind) String() string {
	switch k {
	case LowPass:
		return "lowpass"
	case HighPass:
		return "highpass"
	case BandPass:
		return "bandpass"
	case Notch:
		return "notch"
	case AllPass:
		return "allpass"
	case LowShelf:
		return "lowshelf"
	case HighShelf:
		return "highshelf"
	case PeakingEQ:
		return "peakingeq"
	default:
		return "unknown"
	}
}

const (
	// DefaultQ is the Butterworth quality factor 1/sqrt(2).
	DefaultQ = 1 / math.Sqrt2

	// DefaultGainDB is the default shelf/peak gain in dB.
	DefaultGainDB = 6.0
)

// Option mutates constructor configuration.
type Option func(*config) error

type config struct {
	q             float64
	gainDB        float64
	constantSkirt bool
}

func defaultConfig() config {
	return config{q: DefaultQ, gainDB: DefaultGainDB}
}

// WithQFactor sets the quality factor. Must be finite and > 0.
func WithQFactor(q float64) Option {
	return func(cfg *config) error {
		if !isPositiveFinite(q) {
			return fmt.Errorf("%w: %g", ErrQFactor, q)
		}

		cfg.q = q

		return nil
	}
}

// WithBandwidth sets the quality factor from a bandwidth in octaves.
// Must be finite and > 0.
func WithBandwidth(octaves float64) Option {
	return func(cfg *config) error {
		if !isPositiveFinite(octaves) {
			return fmt.Errorf("%w: %g", ErrBandwidth, octaves)
		}

		cfg.q = qFromBandwidth(octaves)

		return nil
	}
}

// WithGain sets the gain in dB. Only shelving and peaking kinds use it.
func WithGain(gainDB float64) Option {
	return func(cfg *config) error {
		if math.IsNaN(gainDB) || math.IsInf(gainDB, 0) {
			return fmt.Errorf("filter: gain must be finite: %g", gainDB)
		}

		cfg.gainDB = gainDB

		return nil
	}
}

// WithConstantSkirtGain selects the constant-skirt-gain band-pass variant.
// Other kinds ignore it.
func WithConstantSkirtGain(enabled bool) Option {
	return func(cfg *config) error {
		cfg.constantSkirt = enabled
		return nil
	}
}

// Filter is a second-order filter of one [Kind] owning a single biquad
// core. Every parameter change recomputes the coefficients and clears the
// core's memory. A Filter is exclusively owned by its caller; concurrent
// use of one instance requires external synchronization.
type Filter[T biquad.Scalar] struct {
	kind Kind

	cutoffHz      float64
	sampleRate    int
	q             float64
	gainDB        float64
	constantSkirt bool
	bypass        bool

	core *biquad.Filter[T]
}

// New constructs a filter of the given kind.
//
// It fails when sampleRate <= 0, cutoffHz <= 0, cutoffHz exceeds the
// Nyquist limit sampleRate/2, or an option rejects its argument.
func New[T biquad.Scalar](kind Kind, cutoffHz float64, sampleRate int, opts ...Option) (*Filter[T], error) {
	if kind < LowPass || kind > PeakingEQ {
		return nil, fmt.Errorf("filter: invalid kind: %d", kind)
	}

	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrSampleRate, sampleRate)
	}

	if !isPositiveFinite(cutoffHz) {
		return nil, fmt.Errorf("%w: %g", ErrCutoff, cutoffHz)
	}

	if cutoffHz > float64(sampleRate)/2 {
		return nil, fmt.Errorf("%w: %g Hz at %d Hz", ErrAboveNyquist, cutoffHz, sampleRate)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	f := &Filter[T]{
		kind:          kind,
		cutoffHz:      cutoffHz,
		sampleRate:    sampleRate,
		q:             cfg.q,
		gainDB:        cfg.gainDB,
		constantSkirt: cfg.constantSkirt,
	}

	core, err := biquad.New(f.deriveCoefficients())
	if err != nil {
		return nil, fmt.Errorf("filter: constructing core: %w", err)
	}

	f.core = core

	return f, nil
}

// NewLowPass constructs a low-pass filter.
func NewLowPass[T biquad.Scalar](cutoffHz float64, sampleRate int, opts ...Option) (*Filter[T], error) {
	return New[T](LowPass, cutoffHz, sampleRate, opts...)
}

// NewHighPass constructs a high-pass filter.
func NewHighPass[T biquad.Scalar](cutoffHz float64, sampleRate int, opts ...Option) (*Filter[T], error) {
	return New[T](HighPass, cutoffHz, sampleRate, opts...)
}

// NewBandPass constructs a band-pass filter centered at cutoffHz.
func NewBandPass[T biquad.Scalar](cutoffHz float64, sampleRate int, opts ...Option) (*Filter[T], error) {
	return New[T](BandPass, cutoffHz, sampleRate, opts...)
}

// NewNotch constructs a notch filter centered at cutoffHz.
func NewNotch[T biquad.Scalar](cutoffHz float64, sampleRate int, opts ...Option) (*Filter[T], error) {
	return New[T](Notch, cutoffHz, sampleRate, opts...)
}

// NewAllPass constructs an all-pass filter centered at cutoffHz.
func NewAllPass[T biquad.Scalar](cutoffHz float64, sampleRate int, opts ...Option) (*Filter[T], error) {
	return New[T](AllPass, cutoffHz, sampleRate, opts...)
}

// NewLowShelf constructs a low-shelf filter.
func NewLowShelf[T biquad.Scalar](cutoffHz float64, sampleRate int, opts ...Option) (*Filter[T], error) {
	return New[T](LowShelf, cutoffHz, sampleRate, opts...)
}

// NewHighShelf constructs a high-shelf filter.
func NewHighShelf[T biquad.Scalar](cutoffHz float64, sampleRate int, opts ...Option) (*Filter[T], error) {
	return New[T](HighShelf, cutoffHz, sampleRate, opts...)
}

// NewPeakingEQ constructs a peaking-EQ filter centered at cutoffHz.
func NewPeakingEQ[T biquad.Scalar](cutoffHz float64, sampleRate int, opts ...Option) (*Filter[T], error) {
	return New[T](PeakingEQ, cutoffHz, sampleRate, opts...)
}

// ProcessSample filters one sample. When the filter is bypassed the input
// is returned unchanged and the second result is false.
func (f *Filter[T]) ProcessSample(x T) (T, bool) {
	if f.bypass {
		return x, false
	}

	return f.core.ProcessSample(x), true
}

// ProcessBlock filters a block of samples in-place. It returns false and
// leaves the buffer untouched when the filter is bypassed or the buffer
// holds no samples.
func (f *Filter[T]) ProcessBlock(buf []T) bool {
	if f.bypass {
		return false
	}

	return f.core.ProcessBlock(buf) == nil
}

// SetCutoff updates the cutoff frequency in Hz and rebuilds coefficients.
//
// Only positivity is checked here: the relationship to the current Nyquist
// limit is validated at construction time, not on mutation.
func (f *Filter[T]) SetCutoff(cutoffHz float64) error {
	if !isPositiveFinite(cutoffHz) {
		return fmt.Errorf("%w: %g", ErrCutoff, cutoffHz)
	}

	f.cutoffHz = cutoffHz

	return f.rebuild()
}

// Cutoff returns the cutoff frequency in Hz.
func (f *Filter[T]) Cutoff() float64 { return f.cutoffHz }

// SetSampleRate updates the sample rate in Hz and rebuilds coefficients.
//
// The stored cutoff is not re-checked against the new Nyquist limit; see
// [Filter.SetCutoff].
func (f *Filter[T]) SetSampleRate(sampleRate int) error {
	if sampleRate <= 0 {
		return fmt.Errorf("%w: %d", ErrSampleRate, sampleRate)
	}

	f.sampleRate = sampleRate

	return f.rebuild()
}

// SampleRate returns the sample rate in Hz.
func (f *Filter[T]) SampleRate() int { return f.sampleRate }

// SetQFactor updates the quality factor and rebuilds coefficients.
func (f *Filter[T]) SetQFactor(q float64) error {
	if !isPositiveFinite(q) {
		return fmt.Errorf("%w: %g", ErrQFactor, q)
	}

	f.q = q

	return f.rebuild()
}

// QFactor returns the quality factor.
func (f *Filter[T]) QFactor() float64 { return f.q }

// SetBandwidth updates the quality factor from a bandwidth in octaves and
// rebuilds coefficients.
func (f *Filter[T]) SetBandwidth(octaves float64) error {
	if !isPositiveFinite(octaves) {
		return fmt.Errorf("%w: %g", ErrBandwidth, octaves)
	}

	return f.SetQFactor(qFromBandwidth(octaves))
}

// Bandwidth returns the filter bandwidth in octaves, derived from the
// quality factor.
func (f *Filter[T]) Bandwidth() float64 { return bandwidthFromQ(f.q) }

// SetGain updates the gain in dB and rebuilds coefficients. Only shelving
// and peaking kinds respond to gain; the value is stored for all kinds.
func (f *Filter[T]) SetGain(gainDB float64) error {
	if math.IsNaN(gainDB) || math.IsInf(gainDB, 0) {
		return fmt.Errorf("filter: gain must be finite: %g", gainDB)
	}

	f.gainDB = gainDB

	return f.rebuild()
}

// Gain returns the gain in dB.
func (f *Filter[T]) Gain() float64 { return f.gainDB }

// SetConstantSkirtGain toggles the constant-skirt-gain band-pass variant
// and rebuilds coefficients. Kinds other than [BandPass] store but ignore
// the flag.
func (f *Filter[T]) SetConstantSkirtGain(enabled bool) error {
	f.constantSkirt = enabled

	return f.rebuild()
}

// ConstantSkirtGain reports whether the constant-skirt-gain variant is
// selected.
func (f *Filter[T]) ConstantSkirtGain() bool { return f.constantSkirt }

// SetBypass toggles bypassing. A bypassed filter keeps its parameters and
// coefficients, so clearing the flag restores processing without any
// recomputation.
func (f *Filter[T]) SetBypass(bypass bool) { f.bypass = bypass }

// Bypass reports whether the filter is bypassed.
func (f *Filter[T]) Bypass() bool { return f.bypass }

// Kind returns the filter's response shape.
func (f *Filter[T]) Kind() Kind { return f.kind }

// Coefficients returns the core's current normalized coefficient set.
func (f *Filter[T]) Coefficients() biquad.Coefficients[T] {
	return f.core.Coefficients()
}

// Reset clears the core's delay line without touching parameters or
// coefficients.
func (f *Filter[T]) Reset() { f.core.Reset() }

// rebuild pushes freshly derived coefficients into the core, which also
// clears the core's memory.
func (f *Filter[T]) rebuild() error {
	if err := f.core.SetCoefficients(f.deriveCoefficients()); err != nil {
		return fmt.Errorf("filter: rebuilding coefficients: %w", err)
	}

	return nil
}

// qFromBandwidth converts a bandwidth in octaves to a quality factor.
func qFromBandwidth(octaves float64) float64 {
	return 1 / (2 * math.Sinh(octaves*math.Ln2/2))
}

// bandwidthFromQ converts a quality factor to a bandwidth in octaves.
func bandwidthFromQ(q float64) float64 {
	return 2 * math.Asinh(1/(2*q)) / math.Ln2
}

func isPositiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
