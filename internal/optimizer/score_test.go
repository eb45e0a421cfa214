package optimizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQualityScoreBuckets(t *testing.T) {
	cases := []struct {
		name string
		s    Summary
		want int
	}{
		{"neutral everything", Summary{CTR: 0.02, CPC: 1.5, ConversionRate: 0.03}, 5},
		{"best case clamps at 10", Summary{CTR: 0.08, CPC: 0.5, ConversionRate: 0.2}, 10},
		{"worst case", Summary{CTR: 0.005, CPC: 4.0, ConversionRate: 0.01}, 1},
		{"strong ctr only", Summary{CTR: 0.06, CPC: 1.5, ConversionRate: 0.03}, 7},
		{"decent ctr", Summary{CTR: 0.04, CPC: 1.5, ConversionRate: 0.03}, 6},
		{"cheap clicks", Summary{CTR: 0.02, CPC: 0.9, ConversionRate: 0.03}, 6},
		{"good conversion rate", Summary{CTR: 0.02, CPC: 1.5, ConversionRate: 0.07}, 6},
		{"great conversion rate", Summary{CTR: 0.02, CPC: 1.5, ConversionRate: 0.11}, 7},
		{"boundary values score neutral", Summary{CTR: 0.01, CPC: 3.0, ConversionRate: 0.02}, 5},
		// CTR and conversion rate bottom out but a zero CPC still counts as cheap.
		{"zero history", Summary{}, 3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, QualityScore(tc.s))
		})
	}
}

func TestQualityScoreAlwaysInRange(t *testing.T) {
	summaries := []Summary{
		{},
		{CTR: 1, CPC: 0.01, ConversionRate: 1},
		{CTR: 0.0001, CPC: 100, ConversionRate: 0.0001},
	}
	for _, s := range summaries {
		score := QualityScore(s)
		assert.GreaterOrEqual(t, score, 1)
		assert.LessOrEqual(t, score, 10)
	}
}
