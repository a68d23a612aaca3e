package evaluator

import (
	"testing"

	"github.com/go-bkgm/bkgm/pkg/position"
)

func TestIsRaceStartingPositionIsContact(t *testing.T) {
	if isRace(position.New()) {
		t.Errorf("isRace(starting position) = true, want false")
	}
}

func TestIsRaceSeparatedCheckersIsRace(t *testing.T) {
	var p position.Position
	p.N = 15
	p.Board[0] = 2   // X's checkers on the 1-point
	p.Board[23] = -2 // O's checkers on the 24-point, already past X
	if !isRace(p) {
		t.Errorf("isRace() = false, want true for fully separated checkers")
	}
}

func TestIsRaceFalseWithCheckerOnBar(t *testing.T) {
	var p position.Position
	p.N = 15
	p.Board[23] = 1
	p.Board[0] = -1
	p.XBar = 1
	if isRace(p) {
		t.Errorf("isRace() = true, want false when a checker is on the bar")
	}
}

func TestPubevalInputsEncodesEachBucketDistinctly(t *testing.T) {
	var p position.Position
	p.N = 15
	p.Board[0] = -1 // point 1 holds a lone opponent blot
	p.Board[1] = 1  // point 2 holds a single checker for the mover
	p.Board[2] = 2  // point 3 holds a stable two-checker point
	p.Board[3] = 3  // point 4 holds exactly three checkers
	p.Board[4] = 5  // point 5 holds five checkers (4+ overflow bucket)

	in := pubevalInputs(p)

	// A lone opponent checker must set bucket 0 on its point, not always
	// the same fixed index regardless of which condition matched (the
	// bug this encoding fixes).
	foundBucket0 := false
	for jmp := 0; jmp < 24; jmp++ {
		if in[5*jmp+0] != 0 {
			foundBucket0 = true
		}
	}
	if !foundBucket0 {
		t.Errorf("pubevalInputs did not set any bucket 0 (opponent blot) entry")
	}

	// Two-plus checkers always set bucket 2; exactly three additionally
	// sets bucket 3; four-plus instead scales bucket 4.
	foundBucket2 := false
	foundBucket3 := false
	foundBucket4 := false
	for jmp := 0; jmp < 24; jmp++ {
		if in[5*jmp+2] != 0 {
			foundBucket2 = true
		}
		if in[5*jmp+3] != 0 {
			foundBucket3 = true
		}
		if in[5*jmp+4] != 0 {
			foundBucket4 = true
		}
	}
	if !foundBucket2 || !foundBucket3 || !foundBucket4 {
		t.Errorf("pubevalInputs did not populate all of buckets 2,3,4: b2=%v b3=%v b4=%v", foundBucket2, foundBucket3, foundBucket4)
	}
}

func TestPubevalInputsTrailingFeatures(t *testing.T) {
	var p position.Position
	p.N = 15
	p.OBar = 2
	p.XOff = 3
	in := pubevalInputs(p)
	if got, want := in[120], float32(-1.0); got != want {
		t.Errorf("inputs[120] = %v, want %v", got, want)
	}
	if got, want := in[121], float32(3.0/15.0); got != want {
		t.Errorf("inputs[121] = %v, want %v", got, want)
	}
}

func TestPubevalAllCheckersOffIsMaximal(t *testing.T) {
	var p position.Position
	p.N = 1
	p.XOff = 1
	if got := pubeval(p); got != 9999999.9 {
		t.Errorf("pubeval(all off) = %v, want 9999999.9", got)
	}
}

func TestPubEvalBestPositionMaximizesScore(t *testing.T) {
	e := NewPubEval()
	start := position.New()
	d := position.Dice{High: 3, Low: 1}
	candidates := start.PossiblePositions(d)
	best := e.BestPosition(start, d)
	bestScore := e.TryEval(best)
	for _, c := range candidates {
		if s := e.TryEval(c); s > bestScore {
			t.Errorf("BestPosition did not maximize TryEval: found %v > chosen %v", s, bestScore)
		}
	}
}

func TestPubEvalEvalReturnsExactTerminal(t *testing.T) {
	e := NewPubEval()
	var p position.Position
	p.N = 1
	p.XOff = 1
	got := e.Eval(p)
	if got.WinNormal+got.WinGammon+got.WinBackgammon != 1 {
		t.Errorf("Eval(terminal) = %+v, want a pure win split", got)
	}
}
