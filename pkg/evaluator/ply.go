package evaluator

import (
	"github.com/go-bkgm/bkgm/pkg/position"
	"github.com/go-bkgm/bkgm/pkg/probabilities"
)

// PlyEvaluator wraps another Evaluator with one extra ply of
// lookahead: instead of evaluating a position directly, it averages
// the inner evaluator's opinion of the best reply to every possible
// dice roll, weighted by how often that roll occurs. The reference
// implementation this is grounded on left this averaging step
// unfinished (its accumulation line was commented out); this is a
// complete rendition of the same idea.
type PlyEvaluator struct {
	inner Evaluator
}

// NewPlyEvaluator wraps inner with one ply of lookahead.
func NewPlyEvaluator(inner Evaluator) PlyEvaluator {
	return PlyEvaluator{inner: inner}
}

func (e PlyEvaluator) Eval(pos position.Position) probabilities.Probabilities {
	if p, ok := terminal(pos); ok {
		return p
	}

	var acc [6]float32
	for _, wd := range position.AllUnorderedPairs {
		best := e.inner.BestPosition(pos, wd.Dice)
		// best has already flipped sides (it's the opponent's view), so
		// flip the inner evaluator's opinion back to the mover's
		// perspective before weighting it into the average.
		reply := e.inner.Eval(best).Flip()
		for i, v := range reply.ToSlice() {
			acc[i] += float32(wd.Weight) * v
		}
	}
	for i := range acc {
		acc[i] /= 36.0
	}
	return probabilities.FromSlice(acc)
}

func (e PlyEvaluator) BestPosition(pos position.Position, dice position.Dice) position.Position {
	return bestPosition(e, pos, dice)
}
