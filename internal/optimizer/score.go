// internal/optimizer/score.go
package optimizer

// QualityScore maps aggregate performance to a 1-10 composite. It starts at 5
// and adjusts per metric bucket; the three metrics are scored independently.
func QualityScore(s Summary) int {
	score := 5

	switch {
	case s.CTR > 0.05:
		score += 2
	case s.CTR > 0.03:
		score++
	case s.CTR < 0.01:
		score -= 2
	}

	switch {
	case s.CPC < 1.0:
		score++
	case s.CPC > 3.0:
		score--
	}

	switch {
	case s.ConversionRate > 0.10:
		score += 2
	case s.ConversionRate > 0.05:
		score++
	case s.ConversionRate < 0.02:
		score--
	}

	if score < 1 {
		score = 1
	}
	if score > 10 {
		score = 10
	}
	return score
}
