package domain

import (
	"math/rand/v2"
	"sync"
	"time"
)

const maxPredictionConfidence = 0.95

// FloodPrediction is a seasonal flood outlook.
type FloodPrediction struct {
	PredictedLevel AlertLevel `json:"predictedLevel"`
	Confidence     float64    `json:"confidence"`
	Timestamp      time.Time  `json:"timestamp"`
}

// Predictor produces seasonal predictions with a jittered confidence.
// It is safe for concurrent use.
type Predictor struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewPredictor creates a predictor drawing from src. A nil src uses a
// randomly seeded PCG source.
func NewPredictor(src rand.Source) *Predictor {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &Predictor{rng: rand.New(src)}
}

// Predict returns the outlook for the current month of the package clock.
func (p *Predictor) Predict() FloodPrediction {
	now := clock.Now()
	level, base := seasonalOutlook(now.Month())

	p.mu.Lock()
	jitter := p.rng.Float64() * 0.1
	p.mu.Unlock()

	return FloodPrediction{
		PredictedLevel: level,
		Confidence:     min(maxPredictionConfidence, base+jitter),
		Timestamp:      now,
	}
}

// seasonalOutlook follows the Central Luzon seasons: wet from June to
// October, cool and transitional from November to February, hot and dry
// from March to May.
func seasonalOutlook(m time.Month) (AlertLevel, float64) {
	switch {
	case m >= time.June && m <= time.October:
		return AlertSevere, 0.85
	case m >= time.November || m <= time.February:
		return AlertModerate, 0.75
	default:
		return AlertCaution, 0.65
	}
}
