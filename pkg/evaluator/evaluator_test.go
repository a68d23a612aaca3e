package evaluator

import (
	"testing"

	"github.com/go-bkgm/bkgm/pkg/position"
)

func TestRandomEvaluatorSumsToOne(t *testing.T) {
	e := NewRandomEvaluator()
	p := e.Eval(position.New())
	sum := float32(0)
	for _, v := range p.ToSlice() {
		sum += v
	}
	if sum < 0.99 || sum > 1.01 {
		t.Errorf("RandomEvaluator probabilities sum to %v, want ~1", sum)
	}
}

func TestRandomEvaluatorReturnsExactTerminal(t *testing.T) {
	e := NewRandomEvaluator()
	var p position.Position
	p.N = 15
	p.XOff = 15 // all of X's checkers off, O has none off: a win for X
	got := e.Eval(p)
	want := float32(1.0)
	if got.WinNormal+got.WinGammon+got.WinBackgammon != want {
		t.Errorf("terminal Eval() = %+v, want a pure win split", got)
	}
}

func TestRandomEvaluatorBestPositionIsAmongCandidates(t *testing.T) {
	e := NewRandomEvaluator()
	start := position.New()
	d := position.Dice{High: 6, Low: 5}
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

func TestWorstPositionPicksMinimumEquity(t *testing.T) {
	e := NewPubEval()
	var win, loss position.Position
	win.N, loss.N = 1, 1
	win.XOff = 1   // X has already won
	loss.OOff = 1  // O has already won, a loss from X's perspective
	got := WorstPosition(e, []position.Position{win, loss})
	if got != loss {
		t.Errorf("WorstPosition() = %+v, want the terminal loss (lower equity for the mover)", got)
	}
}
