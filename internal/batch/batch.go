package batch

import (
	"errors"
	"math"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/myrteametrics/goldenbatch-api/internal/batchconfig"
)

var (
	// ErrInvalidArgument is returned for an unknown selection set or an empty training set
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotFound is returned when no batch exists for an id
	ErrNotFound = errors.New("batch not found")
)

// CQAResults are the quality attributes measured at the end of a batch
type CQAResults struct {
	PH       float64 `json:"ph"`
	Diameter float64 `json:"diameter"`
	Zeta     float64 `json:"zeta"`
}

// HistoricalBatch is a completed batch with its quality marker
type HistoricalBatch struct {
	ID          string     `json:"id"`
	StartTime   time.Time  `json:"startTime"`
	DurationMin int        `json:"durationMin"`
	IsGood      bool       `json:"isGood"`
	CQAResults  CQAResults `json:"cqaResults"`
}

const mockIDFormat = "BATCH-{YYYY}-{MM}-{SEQ:000}"

// MockHistory builds n batches of May 2024 numbered from 300, every 4th one flagged bad.
// CQA values are drawn around the nominal ones from rnd (nil means unseeded).
func MockHistory(n int, rnd *rand.Rand) []HistoricalBatch {
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	batches := make([]HistoricalBatch, 0, n)
	for i := 0; i < n; i++ {
		start := time.Date(2024, time.May, 10+i/2, 10+i%5, 0, 0, 0, time.UTC)
		batches = append(batches, HistoricalBatch{
			ID:          batchconfig.FormatBatchID(mockIDFormat, start, 300+i),
			StartTime:   start,
			DurationMin: 118,
			IsGood:      i%4 != 0,
			CQAResults: CQAResults{
				PH:       round(7.2+(rnd.Float64()*0.4-0.2), 2),
				Diameter: round(120+(rnd.Float64()*10-5), 1),
				Zeta:     round(-35+rnd.Float64()*5, 1),
			},
		})
	}
	return batches
}

// Quality filters batches on their quality marker
type Quality string

const (
	QualityAll  Quality = ""
	QualityGood Quality = "good"
	QualityBad  Quality = "bad"
)

// Filter narrows a batch list the way the analysis toolbar does
type Filter struct {
	Search  string
	Quality Quality
}

// IsValid checks the quality filter value
func (f Filter) IsValid() bool {
	switch f.Quality {
	case QualityAll, QualityGood, QualityBad:
		return true
	}
	return false
}

// Apply returns the batches whose id contains Search (case insensitive) and matching Quality
func (f Filter) Apply(batches []HistoricalBatch) []HistoricalBatch {
	search := strings.ToLower(f.Search)
	out := make([]HistoricalBatch, 0, len(batches))
	for _, b := range batches {
		if search != "" && !strings.Contains(strings.ToLower(b.ID), search) {
			continue
		}
		if f.Quality == QualityGood && !b.IsGood {
			continue
		}
		if f.Quality == QualityBad && b.IsGood {
			continue
		}
		out = append(out, b)
	}
	return out
}

func round(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
