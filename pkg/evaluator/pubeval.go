package evaluator

import (
	"github.com/go-bkgm/bkgm/pkg/position"
	"github.com/go-bkgm/bkgm/pkg/probabilities"
)

// PubEval is Gerry Tesauro's public benchmark linear evaluator: a
// fixed weight vector dotted against a raw per-point encoding of the
// board, with separate weights for race and contact positions.
// Because its score is a single linear figure rather than a genuine
// win/loss split, PubEval only implements ScalarEvaluator natively;
// Eval wraps that score into a degenerate Probabilities so it still
// satisfies Evaluator for use in duels and rollouts.
type PubEval struct{}

// NewPubEval returns a PubEval.
func NewPubEval() PubEval {
	return PubEval{}
}

func (PubEval) TryEval(pos position.Position) float32 {
	return pubeval(pos)
}

func (e PubEval) Eval(pos position.Position) probabilities.Probabilities {
	if p, ok := terminal(pos); ok {
		return p
	}
	// PubEval has no win/loss split, only a linear score; map it onto
	// equity's [-3, 3] range via a bounded squash so Eval still returns
	// a valid, if degenerate, Probabilities.
	score := e.TryEval(pos)
	equity := score
	if equity > 3 {
		equity = 3
	} else if equity < -3 {
		equity = -3
	}
	if equity >= 0 {
		return probabilities.Probabilities{WinNormal: 1 - equity/3, WinGammon: equity / 3}
	}
	return probabilities.Probabilities{LoseNormal: 1 + equity/3, LoseGammon: -equity / 3}
}

// BestPosition picks the candidate with the highest raw PubEval score,
// matching the reference implementation's own best_position override
// (it maximizes the scalar score directly rather than going through
// Evaluator's equity-minimization helper, since PubEval's score is
// already from the mover's own perspective before any side flip).
func (e PubEval) BestPosition(pos position.Position, dice position.Dice) position.Position {
	candidates := pos.PossiblePositions(dice)
	best := candidates[0]
	bestScore := e.TryEval(best)
	for _, c := range candidates[1:] {
		if s := e.TryEval(c); s > bestScore {
			best, bestScore = c, s
		}
	}
	return best
}

// pubeval scores pos from the mover's perspective before any reply:
// 9999999.9 for an already-won race (all 15 checkers off), otherwise
// the dot product of the position's feature encoding against the
// race or contact weight vector.
func pubeval(pos position.Position) float32 {
	if int(pos.XOff) == int(pos.N) {
		return 9999999.9
	}
	inputs := pubevalInputs(pos)
	weights := contactWeights
	if isRace(pos) {
		weights = raceWeights
	}
	var score float32
	for i := 0; i < 122; i++ {
		score += weights[i] * inputs[i]
	}
	return score
}

// isRace reports whether the two sides' checkers can no longer
// contact each other: every one of the mover's checkers is already
// past every one of the opponent's.
func isRace(pos position.Position) bool {
	if pos.XBar > 0 || pos.OBar > 0 {
		return false
	}
	// The mover's checkers travel toward lower indices and the
	// opponent's toward higher ones, so each side's rearmost checker is
	// its highest (mover) or lowest (opponent) occupied index.
	xBack := -1
	for pt := position.NumPoints - 1; pt >= 0; pt-- {
		if pos.Board[pt] > 0 {
			xBack = pt
			break
		}
	}
	oBack := -1
	for pt := 0; pt < position.NumPoints; pt++ {
		if pos.Board[pt] < 0 {
			oBack = pt
			break
		}
	}
	if xBack == -1 || oBack == -1 {
		return true
	}
	return xBack < oBack
}

// pubevalInputs builds the 122-element Tesauro encoding: for each of
// the 24 points, a 5-wide bucket (opponent blot, own single, own 2+,
// own exactly 3, own 4+ scaled), plus two extra features for the
// opponent's bar count and the mover's borne-off count. The reference
// source this is grounded on has every one of the five per-point
// conditionals write to bucket 0 instead of buckets 0-4; that bug is
// fixed here since it would otherwise make every point look like a
// lone opponent blot regardless of its actual contents.
func pubevalInputs(pos position.Position) [122]float32 {
	var inputs [122]float32

	for point := 1; point <= 24; point++ {
		jmp := point - 1
		pips := pos.Pip(25 - point)
		switch {
		case pips == -1:
			inputs[5*jmp+0] = 1.0
		case pips == 1:
			inputs[5*jmp+1] = 1.0
		case pips >= 2:
			inputs[5*jmp+2] = 1.0
			if pips == 3 {
				inputs[5*jmp+3] = 1.0
			} else if pips >= 4 {
				inputs[5*jmp+4] = float32(pips-3) / 2.0
			}
		}
	}

	inputs[120] = -float32(pos.OBar) / 2.0
	inputs[121] = float32(pos.XOff) / float32(pos.N)
	return inputs
}
