package api

import (
	"sort"

	"github.com/go-bkgm/bkgm/pkg/evaluator"
	"github.com/go-bkgm/bkgm/pkg/position"
	"github.com/go-bkgm/bkgm/pkg/probabilities"
	"github.com/go-bkgm/bkgm/pkg/rollout"
)

// Engine is the API's handle onto the analysis core: one Evaluator
// used for quick evaluation and move selection, and a RolloutEvaluator
// built on top of it for full-rollout requests.
type Engine struct {
	eval    evaluator.Evaluator
	rollout rollout.RolloutEvaluator
}

// NewEngine wraps eval for serving API requests.
func NewEngine(eval evaluator.Evaluator) *Engine {
	return &Engine{eval: eval, rollout: rollout.NewRolloutEvaluator(eval)}
}

// Evaluate scores pos from the side to move's perspective.
func (e *Engine) Evaluate(pos position.Position) probabilities.Probabilities {
	return e.eval.Eval(pos)
}

// Rollout plays pos out across all 1296 dice sequences.
func (e *Engine) Rollout(pos position.Position) probabilities.Probabilities {
	return e.rollout.Eval(pos)
}

// rankedCandidate is one legal reply (already flipped to the
// opponent's perspective by PossiblePositions) together with its
// evaluation. Candidates are ranked by ascending equity: the
// opponent's lowest equity is the mover's best reply, mirroring
// evaluator.WorstPosition.
type rankedCandidate struct {
	eval probabilities.Probabilities
	pos  position.Position
}

// RankMoves evaluates every legal reply to dice and returns them best
// first (from the mover's perspective), capped at limit entries (0
// means no cap).
func (e *Engine) RankMoves(pos position.Position, dice position.Dice, limit int) ([]rankedCandidate, int) {
	candidates := pos.PossiblePositions(dice)
	ranked := make([]rankedCandidate, len(candidates))
	for i, c := range candidates {
		ranked[i] = rankedCandidate{eval: e.eval.Eval(c), pos: c}
	}
	sort.Slice(ranked, func(i, j int) bool {
		return ranked[i].eval.Equity() < ranked[j].eval.Equity()
	})
	if limit > 0 && limit < len(ranked) {
		ranked = ranked[:limit]
	}
	return ranked, len(candidates)
}
