package ledger

import (
	"math"
	"testing"

	"github.com/wanderplan/server/internal/models"
)

func TestSplitEvenly(t *testing.T) {
	tests := []struct {
		name     string
		total    float64
		selected []string
		want     map[string]float64
	}{
		{
			name:     "two people",
			total:    50,
			selected: []string{"a", "b"},
			want:     map[string]float64{"a": 25, "b": 25},
		},
		{
			name:     "three people with rounding",
			total:    100,
			selected: []string{"a", "b", "c"},
			want:     map[string]float64{"a": 33.33, "b": 33.33, "c": 33.33},
		},
		{
			name:     "no people",
			total:    100,
			selected: nil,
			want:     map[string]float64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitEvenly(tt.total, tt.selected)
			if len(got) != len(tt.want) {
				t.Fatalf("SplitEvenly() returned %d entries, want %d", len(got), len(tt.want))
			}
			for id, amount := range tt.want {
				if math.Abs(got[id]-amount) > 1e-9 {
					t.Errorf("SplitEvenly()[%s] = %v, want %v", id, got[id], amount)
				}
			}
		})
	}
}

func TestSplitEvenlyIdempotent(t *testing.T) {
	selected := []string{"a", "b", "c"}
	first := SplitEvenly(100, selected)
	second := SplitEvenly(100, selected)
	for _, id := range selected {
		if first[id] != second[id] {
			t.Errorf("toggling split-evenly twice changed %s: %v vs %v", id, first[id], second[id])
		}
	}
}

func TestRebalance(t *testing.T) {
	tests := []struct {
		name     string
		total    float64
		selected []string
		manual   map[string]float64
		want     map[string]float64
	}{
		{
			name:     "one manual of three",
			total:    100,
			selected: []string{"a", "b", "c"},
			manual:   map[string]float64{"a": 40},
			want:     map[string]float64{"a": 40, "b": 30, "c": 30},
		},
		{
			name:     "no manual edits splits remainder evenly",
			total:    90,
			selected: []string{"a", "b", "c"},
			manual:   map[string]float64{},
			want:     map[string]float64{"a": 30, "b": 30, "c": 30},
		},
		{
			name:     "all manual stand even when they do not sum to total",
			total:    100,
			selected: []string{"a", "b"},
			manual:   map[string]float64{"a": 10, "b": 20},
			want:     map[string]float64{"a": 10, "b": 20},
		},
		{
			name:     "manual exceeding total drives auto shares negative",
			total:    50,
			selected: []string{"a", "b"},
			manual:   map[string]float64{"a": 70},
			want:     map[string]float64{"a": 70, "b": -20},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Rebalance(tt.total, tt.selected, tt.manual)
			for id, amount := range tt.want {
				if math.Abs(got[id]-amount) > 1e-9 {
					t.Errorf("Rebalance()[%s] = %v, want %v", id, got[id], amount)
				}
			}
		})
	}
}

// Rounding shares to whole cents can leave a sub-cent residue that is not
// redistributed. The gap must stay within the submission tolerance.
func TestRebalanceResidualWithinTolerance(t *testing.T) {
	selected := []string{"a", "b", "c"}
	got := Rebalance(100, selected, map[string]float64{})

	sum := 0.0
	for _, amount := range got {
		sum += amount
	}
	if math.Abs(100-sum) > SplitTolerance {
		t.Errorf("residual %v exceeds tolerance %v", math.Abs(100-sum), SplitTolerance)
	}
	if sum == 100 {
		t.Log("no residual for this input")
	}
}

func TestSplitSumMatches(t *testing.T) {
	splits := []models.Split{
		{PersonID: "a", Amount: 33.33},
		{PersonID: "b", Amount: 33.33},
		{PersonID: "c", Amount: 33.33},
	}
	if !SplitSumMatches(100, splits) {
		t.Error("sub-cent residue should be within tolerance")
	}
	if SplitSumMatches(100, splits[:2]) {
		t.Error("33.34 short of total should not match")
	}
}
