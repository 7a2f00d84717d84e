package ledger

import (
	"math"

	"github.com/wanderplan/server/internal/models"
)

// SplitTolerance is the accepted gap between an expense amount and the sum
// of its splits. Rounding shares to whole cents can leave a sub-cent
// mismatch; that residue is deliberately not redistributed and is absorbed
// by this tolerance at submission.
const SplitTolerance = 0.01

// settledThreshold filters floating point noise out of balance comparisons.
const settledThreshold = 0.01

// round2 rounds half away from zero to 2 decimal places.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// SplitEvenly assigns each selected person an equal share of the total,
// rounded to whole cents. Any previous manual edits are superseded: the
// caller is expected to clear its manual-edit set when toggling this mode.
func SplitEvenly(total float64, selected []string) map[string]float64 {
	splits := make(map[string]float64, len(selected))
	if len(selected) == 0 {
		return splits
	}
	share := round2(total / float64(len(selected)))
	for _, id := range selected {
		splits[id] = share
	}
	return splits
}

// Rebalance recomputes splits during interactive editing. Manually edited
// amounts stand as typed; the remainder of the total is divided equally
// among the remaining ("auto") people, rounded to whole cents. When every
// selected person has been edited manually there is nothing to rebalance and
// the manual amounts are returned as-is, even if they do not sum to the
// total; final equality is checked only at submit time.
func Rebalance(total float64, selected []string, manual map[string]float64) map[string]float64 {
	splits := make(map[string]float64, len(selected))
	manualTotal := 0.0
	var auto []string
	for _, id := range selected {
		if amount, ok := manual[id]; ok {
			splits[id] = amount
			manualTotal += amount
		} else {
			auto = append(auto, id)
		}
	}
	if len(auto) == 0 {
		return splits
	}
	share := round2((total - manualTotal) / float64(len(auto)))
	for _, id := range auto {
		splits[id] = share
	}
	return splits
}

// SplitSumMatches reports whether the splits sum to the total within
// SplitTolerance. This is the conservation check callers run before handing
// an expense to the engine.
func SplitSumMatches(total float64, splits []models.Split) bool {
	sum := 0.0
	for _, s := range splits {
		sum += s.Amount
	}
	return math.Abs(total-sum) <= SplitTolerance
}
