package domain

// Weights are per-trip scalar multipliers adjusted by accept/reject
// feedback. Each value stays within [0.5, 2.0].
type Weights struct {
	Weather        float64 `json:"weather"`
	Crowd          float64 `json:"crowd"`
	Transit        float64 `json:"transit"`
	Travel         float64 `json:"travel"`
	ChangeAversion float64 `json:"change_aversion"`
}

const (
	minWeight = 0.5
	maxWeight = 2.0

	triggerWeightStep  = 0.05
	aversionWeightStep = 0.03
)

// DefaultWeights returns the neutral starting weights.
func DefaultWeights() Weights {
	return Weights{
		Weather:        1.0,
		Crowd:          1.0,
		Transit:        1.0,
		Travel:         1.0,
		ChangeAversion: 1.0,
	}
}

// ApplyFeedback returns the weights after one accept/reject observation.
// The matching trigger weight moves by 0.05 (up on accept) and change
// aversion moves 0.03 the opposite way.
func ApplyFeedback(w Weights, trigger Trigger, accepted bool) Weights {
	step := triggerWeightStep
	aversion := -aversionWeightStep
	if !accepted {
		step = -triggerWeightStep
		aversion = aversionWeightStep
	}

	switch trigger {
	case TriggerWeather:
		w.Weather = clampWeight(w.Weather + step)
	case TriggerCrowds:
		w.Crowd = clampWeight(w.Crowd + step)
	case TriggerTransit, TriggerTraffic:
		w.Transit = clampWeight(w.Transit + step)
	default:
		w.Travel = clampWeight(w.Travel + step)
	}

	w.ChangeAversion = clampWeight(w.ChangeAversion + aversion)
	return w
}

func clampWeight(v float64) float64 {
	if v < minWeight {
		return minWeight
	}
	if v > maxWeight {
		return maxWeight
	}
	return v
}
