package scoring

import "math"

// Threshold is the fixed probability cutoff separating approval from denial.
// Chosen during model tuning; fixed at deployment.
const Threshold = 0.10

const (
	DecisionApproved = "approved"
	DecisionDenied   = "denied"
)

// Decide maps a default probability to the binary class and decision label.
// A probability exactly at the threshold is denied.
func Decide(probability float64) (int, string) {
	if probability >= Threshold {
		return 1, DecisionDenied
	}
	return 0, DecisionApproved
}

// RoundProbability rounds to the six decimal places reported in responses and
// log entries.
func RoundProbability(p float64) float64 {
	return math.Round(p*1e6) / 1e6
}
