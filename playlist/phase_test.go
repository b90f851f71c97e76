package playlist

import (
	"testing"

	"ewintr.nl/learnpath/model"
	"github.com/stretchr/testify/assert"
)

func TestQuotas(t *testing.T) {
	for _, tc := range []struct {
		total int
		exp   [3]int
	}{
		{total: 0, exp: [3]int{0, 0, 0}},
		{total: 1, exp: [3]int{0, 0, 1}},
		{total: 2, exp: [3]int{1, 1, 0}},
		{total: 3, exp: [3]int{1, 1, 1}},
		{total: 7, exp: [3]int{3, 2, 2}},
		{total: 10, exp: [3]int{4, 3, 3}},
		{total: 12, exp: [3]int{5, 4, 3}},
		{total: 15, exp: [3]int{6, 5, 4}},
		{total: 24, exp: [3]int{10, 8, 6}},
	} {
		q := Quotas(DefaultWeights(), tc.total)
		assert.Equal(t, tc.exp, [3]int{q[model.PhaseFoundation], q[model.PhaseCore], q[model.PhaseAdvanced]}, "total %d", tc.total)
	}
}

func TestQuotasSumToTotal(t *testing.T) {
	weightSets := []Weights{
		DefaultWeights(),
		{model.PhaseFoundation: 1, model.PhaseCore: 1, model.PhaseAdvanced: 1},
		{model.PhaseFoundation: 9, model.PhaseCore: 1, model.PhaseAdvanced: 0},
		{model.PhaseFoundation: 0, model.PhaseCore: 0, model.PhaseAdvanced: 7},
		{},
	}
	for _, weights := range weightSets {
		for total := 0; total <= 100; total++ {
			q := Quotas(weights, total)
			sum := 0
			for _, p := range model.Phases() {
				assert.GreaterOrEqual(t, q[p], 0)
				sum += q[p]
			}
			assert.Equal(t, total, sum, "weights %v total %d", weights, total)
		}
	}
}
