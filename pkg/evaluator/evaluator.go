// Package evaluator defines the position-evaluation interface shared
// by every strategy in this module (random, PubEval, 1-ply lookahead,
// neural net, hypergammon table lookup) and the trivial strategies
// that need nothing more than the interface itself.
package evaluator

import (
	"errors"
	"math/rand"

	"github.com/go-bkgm/bkgm/pkg/position"
	"github.com/go-bkgm/bkgm/pkg/probabilities"
)

// ErrModelUnavailable is returned when an evaluator backed by an
// external model or table cannot be constructed, e.g. a missing
// weights file.
var ErrModelUnavailable = errors.New("evaluator: model unavailable")

// Evaluator returns a cubeless win/loss distribution for a position
// and, from that, the best reply to a given dice roll.
type Evaluator interface {
	// Eval returns the cubeless evaluation of pos, from the
	// perspective of the side to move.
	Eval(pos position.Position) probabilities.Probabilities

	// BestPosition returns the position after applying the best reply
	// to pos for the given dice. The returned position has already
	// flipped sides, so it is the one among pos.PossiblePositions(dice)
	// with the *lowest* equity for the side now to move (the opponent) -
	// which is the highest equity from the original mover's perspective.
	BestPosition(pos position.Position, dice position.Dice) position.Position
}

// ScalarEvaluator is satisfied by evaluators whose native output isn't
// a full Probabilities split, only a single equity-like score (e.g.
// PubEval's linear weighting). It mirrors the reference
// implementation's scalar evaluation interface for strategies that
// don't produce a genuine six-way distribution.
type ScalarEvaluator interface {
	TryEval(pos position.Position) float32
}

// WorstPosition returns the element of positions with the lowest
// equity under eval - the standard helper BestPosition is built from,
// exposed separately because PlyEvaluator and the rollout fan-out both
// need to pick a single reply without constructing a new Evaluator
// value per call.
func WorstPosition(eval Evaluator, positions []position.Position) position.Position {
	best := positions[0]
	bestEquity := eval.Eval(best).Equity()
	for _, p := range positions[1:] {
		if e := eval.Eval(p).Equity(); e < bestEquity {
			best, bestEquity = p, e
		}
	}
	return best
}

func bestPosition(eval Evaluator, pos position.Position, dice position.Dice) position.Position {
	return WorstPosition(eval, pos.PossiblePositions(dice))
}

// terminal returns the exact degenerate distribution for pos if the
// game has already ended, so every Evaluator implementation can defer
// to it instead of running its own strategy on a finished game.
func terminal(pos position.Position) (probabilities.Probabilities, bool) {
	if gs := pos.GameState(); gs.Over {
		return probabilities.FromResult(gs.Result), true
	}
	return probabilities.Probabilities{}, false
}

// RandomEvaluator returns a uniformly random six-way distribution,
// useful as a lower-bound opponent in duels and as a dependency-free
// smoke test for anything generic over Evaluator.
type RandomEvaluator struct{}

// NewRandomEvaluator returns a RandomEvaluator.
func NewRandomEvaluator() RandomEvaluator {
	return RandomEvaluator{}
}

func (RandomEvaluator) Eval(pos position.Position) probabilities.Probabilities {
	if p, ok := terminal(pos); ok {
		return p
	}
	var raw [6]float32
	for i := range raw {
		raw[i] = rand.Float32()
	}
	return probabilities.FromSlice(raw)
}

func (e RandomEvaluator) BestPosition(pos position.Position, dice position.Dice) position.Position {
	return bestPosition(e, pos, dice)
}
