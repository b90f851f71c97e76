package playlist

import "ewintr.nl/learnpath/model"

// Weights is the relative share of the playlist each phase gets.
type Weights map[model.Phase]int

func DefaultWeights() Weights {
	return Weights{
		model.PhaseFoundation: 5,
		model.PhaseCore:       4,
		model.PhaseAdvanced:   3,
	}
}

// Quotas splits total over the phases proportional to the weights. Every phase
// but the last gets its share rounded half up, the last phase gets whatever is
// left, so the quotas always add up to total.
func Quotas(weights Weights, total int) map[model.Phase]int {
	phases := model.Phases()
	quotas := make(map[model.Phase]int, len(phases))
	if total <= 0 {
		for _, p := range phases {
			quotas[p] = 0
		}
		return quotas
	}

	sum := 0
	for _, p := range phases {
		if w := weights[p]; w > 0 {
			sum += w
		}
	}
	if sum == 0 {
		// nothing to go on, give everything to the first phase
		for _, p := range phases {
			quotas[p] = 0
		}
		quotas[phases[0]] = total
		return quotas
	}

	assigned := 0
	for i, p := range phases {
		if i == len(phases)-1 {
			quotas[p] = total - assigned
			break
		}
		w := weights[p]
		if w < 0 {
			w = 0
		}
		share := (2*w*total + sum) / (2 * sum)
		if share > total-assigned {
			share = total - assigned
		}
		quotas[p] = share
		assigned += share
	}

	return quotas
}
