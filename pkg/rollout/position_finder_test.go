package rollout

import (
	"testing"

	"github.com/go-bkgm/bkgm/pkg/evaluator"
)

func TestFindPositionsReturnsRequestedAmount(t *testing.T) {
	f := NewPositionFinder(evaluator.NewRandomEvaluator())
	got := f.FindPositions(5)
	if len(got) != 5 {
		t.Errorf("FindPositions(5) returned %d positions, want 5", len(got))
	}
}

func TestFindPositionsReturnsDistinctOngoingPositions(t *testing.T) {
	f := NewPositionFinder(evaluator.NewRandomEvaluator())
	got := f.FindPositions(10)
	seen := make(map[interface{}]bool)
	for _, p := range got {
		if p.GameState().Over {
			t.Errorf("FindPositions returned a terminal position: %+v", p)
		}
		if seen[p] {
			t.Errorf("FindPositions returned a duplicate position")
		}
		seen[p] = true
	}
}
