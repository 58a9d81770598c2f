package simulator

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
)

// ErrInvalidArgument is returned when a cursor or a sample count falls outside the series range
var ErrInvalidArgument = errors.New("invalid argument")

// TrendSample is one time-indexed observation of the simulated process value and its golden tunnel
type TrendSample struct {
	Time       int     `json:"time"`
	Value      float64 `json:"value"`
	UpperBound float64 `json:"upperBound"`
	LowerBound float64 `json:"lowerBound"`
}

// BaselineSeries is an immutable, fixed-length trend generated once per session
type BaselineSeries struct {
	samples []TrendSample
}

// BaselineConfig holds the closed-form profile used to generate a baseline
type BaselineConfig struct {
	SampleCount int     `json:"sampleCount"`
	CenterValue float64 `json:"centerValue"`
	Amplitude   float64 `json:"amplitude"`
	Period      float64 `json:"period"`
	BandWidth   float64 `json:"bandWidth"`
	Noise       float64 `json:"noise"`
}

// DefaultBaselineConfig returns the reactor temperature profile shown on the overview
func DefaultBaselineConfig() BaselineConfig {
	return BaselineConfig{
		SampleCount: 60,
		CenterValue: 20,
		Amplitude:   60,
		Period:      100,
		BandWidth:   5,
		Noise:       2,
	}
}

// IsValid checks if a baseline configuration can be used to generate a series
func (cfg BaselineConfig) IsValid() (bool, error) {
	if cfg.SampleCount < 0 {
		return false, fmt.Errorf("%w: negative sample count %d", ErrInvalidArgument, cfg.SampleCount)
	}
	if cfg.Period <= 0 {
		return false, fmt.Errorf("%w: period must be positive", ErrInvalidArgument)
	}
	if cfg.BandWidth < 0 {
		return false, fmt.Errorf("%w: negative band width", ErrInvalidArgument)
	}
	if cfg.Noise < 0 {
		return false, fmt.Errorf("%w: negative noise amplitude", ErrInvalidArgument)
	}
	return true, nil
}

// GenerateBaseline builds a half-period sine profile with a symmetric tolerance band.
// Each actual value is the ideal value perturbed by uniform noise drawn once from rnd.
// A nil rnd falls back to an unseeded source, which makes the output non-reproducible.
func GenerateBaseline(cfg BaselineConfig, rnd *rand.Rand) (BaselineSeries, error) {
	if ok, err := cfg.IsValid(); !ok {
		return BaselineSeries{}, err
	}
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	samples := make([]TrendSample, cfg.SampleCount)
	for i := 0; i < cfg.SampleCount; i++ {
		ideal := cfg.CenterValue + cfg.Amplitude*math.Sin((float64(i)/cfg.Period)*math.Pi)
		actual := ideal + (rnd.Float64()*2*cfg.Noise - cfg.Noise)

		samples[i] = TrendSample{
			Time:       i,
			Value:      round(actual, 1),
			UpperBound: round(ideal+cfg.BandWidth, 1),
			LowerBound: round(ideal-cfg.BandWidth, 1),
		}
	}
	return BaselineSeries{samples: samples}, nil
}

// NewBaselineSeries wraps already known samples in a series (the slice is copied)
func NewBaselineSeries(samples []TrendSample) BaselineSeries {
	cp := make([]TrendSample, len(samples))
	copy(cp, samples)
	return BaselineSeries{samples: cp}
}

// Len returns the number of samples in the series
func (s BaselineSeries) Len() int {
	return len(s.samples)
}

// At returns the sample at position i
func (s BaselineSeries) At(i int) (TrendSample, error) {
	if i < 0 || i >= len(s.samples) {
		return TrendSample{}, fmt.Errorf("%w: index %d outside [0, %d)", ErrInvalidArgument, i, len(s.samples))
	}
	return s.samples[i], nil
}

// Samples returns a copy of the whole series
func (s BaselineSeries) Samples() []TrendSample {
	cp := make([]TrendSample, len(s.samples))
	copy(cp, s.samples)
	return cp
}

// VisibleWindow returns the prefix [0, cursor) with the drift applied to every value
// and the tunnel adjustment applied to every upper bound. Lower bounds are left untouched.
func VisibleWindow(series BaselineSeries, cursor int, valueOffset, boundOffset float64) ([]TrendSample, error) {
	if cursor < 0 || cursor > series.Len() {
		return nil, fmt.Errorf("%w: cursor %d outside [0, %d]", ErrInvalidArgument, cursor, series.Len())
	}

	window := make([]TrendSample, cursor)
	for i := 0; i < cursor; i++ {
		sample := series.samples[i]
		sample.Value += valueOffset
		sample.UpperBound += boundOffset
		window[i] = sample
	}
	return window, nil
}

// Advance moves the cursor one step forward and wraps to 0 when the end of the series is reached
func Advance(cursor, seriesLength int) int {
	next := cursor + 1
	if next >= seriesLength {
		return 0
	}
	return next
}

func round(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
