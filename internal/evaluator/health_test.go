package evaluator

import (
	"testing"

	"github.com/myrteametrics/goldenbatch-api/internal/simulator"
	"github.com/stretchr/testify/assert"
)

func flatWindow(values ...float64) []simulator.TrendSample {
	samples := make([]simulator.TrendSample, len(values))
	for i, v := range values {
		samples[i] = simulator.TrendSample{Time: i, Value: v, UpperBound: 10, LowerBound: 0}
	}
	return samples
}

func TestAssessHealthEmptyWindow(t *testing.T) {
	assert.Equal(t, HealthAssessment{Score: 100, ViolationCount: 0}, AssessHealth(nil))
	assert.Equal(t, HealthAssessment{Score: 100, ViolationCount: 0}, AssessHealth([]simulator.TrendSample{}))
}

func TestAssessHealthAllInside(t *testing.T) {
	health := AssessHealth(flatWindow(0, 5, 10, 3, 7))
	assert.Equal(t, 0, health.ViolationCount)
	assert.Equal(t, 100, health.Score)
}

func TestAssessHealthAllOutside(t *testing.T) {
	window := flatWindow(-1, 11, 20, -5)
	health := AssessHealth(window)
	assert.Equal(t, len(window), health.ViolationCount)
	assert.Equal(t, 0, health.Score)
}

func TestAssessHealthSingleViolation(t *testing.T) {
	health := AssessHealth(flatWindow(5, 5, 5, 5, 5, 5, 5, 5, 5, 15))
	assert.Equal(t, HealthAssessment{Score: 80, ViolationCount: 1}, health)
}

func TestAssessHealthHalfViolationsDrivesToZero(t *testing.T) {
	health := AssessHealth(flatWindow(5, 15, 5, 15))
	assert.Equal(t, 2, health.ViolationCount)
	assert.Equal(t, 0, health.Score)
}

func TestAssessHealthRounding(t *testing.T) {
	// 1 violation out of 3 samples: 100 - 66.67 = 33.33
	health := AssessHealth(flatWindow(5, 5, 50))
	assert.Equal(t, 33, health.Score)

	// 1 violation out of 8 samples: 100 - 25 = 75
	health = AssessHealth(flatWindow(5, 5, 5, 5, 5, 5, 5, -3))
	assert.Equal(t, 75, health.Score)
}

func TestAssessHealthInvertedBand(t *testing.T) {
	// an inverted band makes every sample a violation
	window := []simulator.TrendSample{
		{Time: 0, Value: 5, UpperBound: 2, LowerBound: 8},
		{Time: 1, Value: 5, UpperBound: 2, LowerBound: 8},
	}
	health := AssessHealth(window)
	assert.Equal(t, 2, health.ViolationCount)
	assert.Equal(t, 0, health.Score)
}

func TestAssessHealthIsDeterministic(t *testing.T) {
	window := flatWindow(1, 2, 30, 4, -8, 6)
	assert.Equal(t, AssessHealth(window), AssessHealth(window))
}

func TestHealthLevel(t *testing.T) {
	assert.Equal(t, HealthGood, HealthAssessment{Score: 100}.Level())
	assert.Equal(t, HealthGood, HealthAssessment{Score: 81}.Level())
	assert.Equal(t, HealthWarning, HealthAssessment{Score: 80}.Level())
	assert.Equal(t, HealthWarning, HealthAssessment{Score: 51}.Level())
	assert.Equal(t, HealthCritical, HealthAssessment{Score: 50}.Level())
	assert.Equal(t, HealthCritical, HealthAssessment{Score: 0}.Level())
}
