package evaluator

import (
	"math"

	"github.com/myrteametrics/goldenbatch-api/internal/simulator"
)

// HealthLevel is the coarse classification displayed on the health score card
type HealthLevel string

const (
	// HealthGood means the batch follows its golden tunnel
	HealthGood HealthLevel = "good"
	// HealthWarning means a noticeable share of the window is out of the tunnel
	HealthWarning HealthLevel = "warning"
	// HealthCritical means the batch is very likely out of specification
	HealthCritical HealthLevel = "critical"
)

// HealthAssessment is the score of a visible window
type HealthAssessment struct {
	Score          int `json:"score"`
	ViolationCount int `json:"violationCount"`
}

// AssessHealth scores a window of samples.
// Each out-of-tunnel sample costs twice its share of the window, so a 50% violation rate already gives 0.
// An empty window has no violations and scores 100.
func AssessHealth(samples []simulator.TrendSample) HealthAssessment {
	violations := 0
	for _, sample := range samples {
		if sample.Value > sample.UpperBound || sample.Value < sample.LowerBound {
			violations++
		}
	}

	total := len(samples)
	if total == 0 {
		total = 1
	}

	rawScore := 100 - (float64(violations)/float64(total))*100*2
	score := int(math.Round(rawScore))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return HealthAssessment{
		Score:          score,
		ViolationCount: violations,
	}
}

// Level classifies the score the same way the overview colors it
func (h HealthAssessment) Level() HealthLevel {
	switch {
	case h.Score > 80:
		return HealthGood
	case h.Score > 50:
		return HealthWarning
	default:
		return HealthCritical
	}
}
