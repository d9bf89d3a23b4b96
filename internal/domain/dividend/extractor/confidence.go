package extractor

import "math"

// Confidence weighting: the three required fields dominate, the two optional
// account fields share the remaining quarter, and a date actually extracted
// from text (rather than defaulted to today) earns a small bonus. The sum is
// clamped to 1.0.
const (
	requiredFieldWeight = 0.25
	optionalFieldWeight = 0.125
	dateExtractedBonus  = 0.01
)

func scoreConfidence(r Result, dateExtracted bool) float64 {
	score := 0.0
	if r.BrokerageName != "" {
		score += requiredFieldWeight
	}
	if r.SecurityName != "" {
		score += requiredFieldWeight
	}
	if r.Amount != nil {
		score += requiredFieldWeight
	}
	if r.AccountType != "" {
		score += optionalFieldWeight
	}
	if r.AccountNumber != "" {
		score += optionalFieldWeight
	}
	if dateExtracted {
		score += dateExtractedBonus
	}
	return math.Min(score, 1.0)
}
