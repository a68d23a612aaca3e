package evaluator

import (
	"testing"

	"github.com/go-bkgm/bkgm/pkg/position"
)

func TestPlyEvaluatorReturnsExactTerminal(t *testing.T) {
	e := NewPlyEvaluator(NewRandomEvaluator())
	var p position.Position
	p.N = 1
	p.XOff = 1
	got := e.Eval(p)
	if got.WinNormal+got.WinGammon+got.WinBackgammon != 1 {
		t.Errorf("Eval(terminal) = %+v, want a pure win split", got)
	}
}

func TestPlyEvaluatorProbabilitiesSumToOne(t *testing.T) {
	e := NewPlyEvaluator(NewPubEval())
	got := e.Eval(position.New())
	sum := float32(0)
	for _, v := range got.ToSlice() {
		sum += v
	}
	if sum < 0.99 || sum > 1.01 {
		t.Errorf("PlyEvaluator probabilities sum to %v, want ~1", sum)
	}
}

func TestPlyEvaluatorDiceWeightsCoverAll36Rolls(t *testing.T) {
	total := 0
	for _, wd := range position.AllUnorderedPairs {
		total += wd.Weight
	}
	if total != 36 {
		t.Errorf("sum of AllUnorderedPairs weights = %d, want 36", total)
	}
}

func TestPlyEvaluatorBestPositionIsAmongCandidates(t *testing.T) {
	e := NewPlyEvaluator(NewPubEval())
	start := position.New()
	d := position.Dice{High: 4, Low: 2}
	candidates := start.PossiblePositions(d)
	best := e.BestPosition(start, d)
	found := false
	for _, c := range candidates {
		if c == best {
			found = true
		}
	}
	if !found {
		t.Errorf("BestPosition() returned a position not among PossiblePositions")
	}
}
