package simulator

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded() *rand.Rand {
	return rand.New(rand.NewPCG(42, 1024))
}

func TestGenerateBaselineLength(t *testing.T) {
	for _, count := range []int{0, 1, 10, 60, 250} {
		cfg := DefaultBaselineConfig()
		cfg.SampleCount = count

		series, err := GenerateBaseline(cfg, seeded())
		require.NoError(t, err)
		assert.Equal(t, count, series.Len())
	}
}

func TestGenerateBaselineNegativeCount(t *testing.T) {
	cfg := DefaultBaselineConfig()
	cfg.SampleCount = -1

	_, err := GenerateBaseline(cfg, seeded())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestGenerateBaselineProfile(t *testing.T) {
	cfg := DefaultBaselineConfig()
	series, err := GenerateBaseline(cfg, seeded())
	require.NoError(t, err)

	for i, sample := range series.Samples() {
		ideal := cfg.CenterValue + cfg.Amplitude*math.Sin((float64(i)/cfg.Period)*math.Pi)

		assert.Equal(t, i, sample.Time)
		assert.InDelta(t, ideal+cfg.BandWidth, sample.UpperBound, 0.05)
		assert.InDelta(t, ideal-cfg.BandWidth, sample.LowerBound, 0.05)
		assert.InDelta(t, ideal, sample.Value, cfg.Noise+0.05)
		assert.LessOrEqual(t, sample.LowerBound, sample.UpperBound)
	}
}

func TestGenerateBaselineSeededIsReproducible(t *testing.T) {
	cfg := DefaultBaselineConfig()
	a, err := GenerateBaseline(cfg, seeded())
	require.NoError(t, err)
	b, err := GenerateBaseline(cfg, seeded())
	require.NoError(t, err)

	assert.Equal(t, a.Samples(), b.Samples())
}

func TestGenerateBaselineWithoutNoise(t *testing.T) {
	cfg := DefaultBaselineConfig()
	cfg.Noise = 0
	series, err := GenerateBaseline(cfg, nil)
	require.NoError(t, err)

	first, err := series.At(0)
	require.NoError(t, err)
	assert.Equal(t, TrendSample{Time: 0, Value: 20, UpperBound: 25, LowerBound: 15}, first)

	peak, err := series.At(50)
	require.NoError(t, err)
	assert.Equal(t, 80.0, peak.Value)
}

func TestVisibleWindowLength(t *testing.T) {
	series, err := GenerateBaseline(DefaultBaselineConfig(), seeded())
	require.NoError(t, err)

	for cursor := 0; cursor <= series.Len(); cursor++ {
		window, err := VisibleWindow(series, cursor, 0, 0)
		require.NoError(t, err)
		assert.Len(t, window, cursor)
	}
}

func TestVisibleWindowOutOfRange(t *testing.T) {
	series, err := GenerateBaseline(DefaultBaselineConfig(), seeded())
	require.NoError(t, err)

	_, err = VisibleWindow(series, -1, 0, 0)
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	_, err = VisibleWindow(series, series.Len()+1, 0, 0)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestVisibleWindowOffsets(t *testing.T) {
	series := NewBaselineSeries([]TrendSample{
		{Time: 0, Value: 5, UpperBound: 10, LowerBound: 0},
		{Time: 1, Value: 6, UpperBound: 11, LowerBound: 1},
		{Time: 2, Value: 7, UpperBound: 12, LowerBound: 2},
	})

	window, err := VisibleWindow(series, 2, 3, -1.5)
	require.NoError(t, err)
	assert.Equal(t, []TrendSample{
		{Time: 0, Value: 8, UpperBound: 8.5, LowerBound: 0},
		{Time: 1, Value: 9, UpperBound: 9.5, LowerBound: 1},
	}, window)

	// the series itself must not be touched
	first, err := series.At(0)
	require.NoError(t, err)
	assert.Equal(t, 5.0, first.Value)
	assert.Equal(t, 10.0, first.UpperBound)
}

func TestAdvance(t *testing.T) {
	assert.Equal(t, 1, Advance(0, 60))
	assert.Equal(t, 31, Advance(30, 60))
	assert.Equal(t, 0, Advance(59, 60))
	assert.Equal(t, 0, Advance(60, 60))
	assert.Equal(t, 0, Advance(0, 0))
}

func TestAdvanceLoopsOverSeries(t *testing.T) {
	cursor := 0
	seen := make(map[int]bool)
	for i := 0; i < 25; i++ {
		cursor = Advance(cursor, 10)
		assert.GreaterOrEqual(t, cursor, 0)
		assert.Less(t, cursor, 10)
		seen[cursor] = true
	}
	assert.Len(t, seen, 10)
}

func TestBaselineSeriesAt(t *testing.T) {
	series := NewBaselineSeries([]TrendSample{{Time: 0, Value: 1}})
	_, err := series.At(1)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	_, err = series.At(-1)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}
