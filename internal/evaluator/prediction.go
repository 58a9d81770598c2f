package evaluator

import "math"

const (
	nominalPH       = 7.2
	nominalDiameter = 120.0
)

// QualityPrediction holds the end-of-batch quality attributes projected from the health deficit
type QualityPrediction struct {
	PH       float64 `json:"ph"`
	Diameter float64 `json:"diameter"`
}

// PredictQuality maps a health score to predicted CQA values with a fixed linear model.
// A score of 100 yields the nominal values (7.20 pH, 120.0 nm).
func PredictQuality(score int) QualityPrediction {
	deviation := float64(100-score) / 200
	return QualityPrediction{
		PH:       roundTo(nominalPH-deviation, 2),
		Diameter: roundTo(nominalDiameter+deviation*100, 1),
	}
}

func roundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
