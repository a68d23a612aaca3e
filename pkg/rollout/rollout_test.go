package rollout

import (
	"math"
	"testing"

	"github.com/go-bkgm/bkgm/pkg/evaluator"
	"github.com/go-bkgm/bkgm/pkg/position"
)

func closeEnough(t *testing.T, got, want, tolerance float32, what string) {
	t.Helper()
	if math.Abs(float64(got-want)) > float64(tolerance) {
		t.Errorf("%s = %v, want ~%v (+/- %v)", what, got, want, tolerance)
	}
}

// onePipRacePosition builds a single-checker-per-side race, each
// checker pips away from home equal to the given distance, with every
// other checker already off. With only one checker in play, every
// dice roll has exactly one legal continuation, so a rollout's outcome
// is a deterministic function of the dice alone, independent of which
// evaluator picks moves.
func onePipRacePosition(xPip, oPip int) position.Position {
	var p position.Position
	p.N = 15
	p.XOff = 14
	p.OOff = 14
	p.Board[xPip-1] = 1
	p.Board[oPip-1] = -1
	return p
}

func TestRolloutCorrectResultsAfterFirstOrSecondHalfMove(t *testing.T) {
	e := NewRandomRolloutEvaluator()
	pos := onePipRacePosition(6, 19)

	got := e.Eval(pos)

	// Both sides are 6 pips from finishing. Out of 36 dice rolls, only
	// (1,1), (1,2), (1,3), (1,4), (2,3) fail to bear X's single checker
	// off immediately; the rest (27 of 36) end the game on X's first
	// move. Of the 9 of 36 continuing games, O's first move ends the
	// game 27 of 36 times, so O wins 243 of the remaining 324 games
	// outright; the last 81 end on X's second move. Total: X wins
	// 972+81=1053 of 1296 (81.25%), O wins the other 243 (18.75%).
	closeEnough(t, got.WinNormal, 0.8125, 0.02, "WinNormal")
	closeEnough(t, got.LoseNormal, 0.1875, 0.02, "LoseNormal")
}

func TestRolloutOverwhelminglyLosesGammonOrWorse(t *testing.T) {
	e := NewRandomRolloutEvaluator()
	// O has a single checker left, on X's 1-point (24 pips from home);
	// X still has all three of its checkers on the 24-point, inside O's
	// home board and 72 pips from home, far too many to bear off in the
	// handful of rolls O needs. X can't avoid a gammon-or-worse in the
	// overwhelming majority of games (the exceptions need X to hit O's
	// lone checker on its way round and then outrun it).
	var p position.Position
	p.N = 3
	p.Board[23] = 3
	p.OOff = 2
	p.Board[0] = -1
	got := e.Eval(p)
	if margin := got.LoseGammon + got.LoseBackgammon; margin < 0.9 {
		t.Errorf("LoseGammon+LoseBackgammon = %v, want > 0.9", margin)
	}
}

func TestRolloutAlwaysWinsBackgammon(t *testing.T) {
	e := NewRandomRolloutEvaluator()
	// X's last remaining checker sits alone on the 1-point (the rest
	// already off): any die at all bears it off on X's very first
	// move, since it's the sole and therefore highest occupied home
	// point. O still has all three checkers in X's home board, so the
	// instant X finishes is always a backgammon.
	var p position.Position
	p.N = 3
	p.Board[0] = 1
	p.XOff = 2
	p.Board[1] = -3
	got := e.Eval(p)
	if got.WinBackgammon != 1 {
		t.Errorf("WinBackgammon = %v, want exactly 1", got.WinBackgammon)
	}
}

func TestRolloutSumsToExactly1296(t *testing.T) {
	e := NewRandomRolloutEvaluator()
	pos := onePipRacePosition(6, 19)
	got := e.Eval(pos)
	sum := got.WinNormal + got.WinGammon + got.WinBackgammon + got.LoseNormal + got.LoseGammon + got.LoseBackgammon
	closeEnough(t, sum, 1.0, 0.001, "probability mass")
}

func TestRolloutReturnsExactTerminalWithoutPlaying(t *testing.T) {
	e := NewRandomRolloutEvaluator()
	var p position.Position
	p.N = 1
	p.XOff = 1
	got := e.Eval(p)
	if got.WinNormal+got.WinGammon+got.WinBackgammon != 1 {
		t.Errorf("Eval(terminal) = %+v, want a pure win split", got)
	}
}

func TestSeededRolloutEvaluatorIsDeterministic(t *testing.T) {
	pos := onePipRacePosition(6, 19)
	a := NewSeededRolloutEvaluator(evaluator.NewRandomEvaluator(), 42).Eval(pos)
	b := NewSeededRolloutEvaluator(evaluator.NewRandomEvaluator(), 42).Eval(pos)
	if a != b {
		t.Errorf("two seeded rollouts over the same position diverged: %+v vs %+v", a, b)
	}
}
