package rollout

import (
	"github.com/go-bkgm/bkgm/internal/dicegen"
	"github.com/go-bkgm/bkgm/pkg/evaluator"
	"github.com/go-bkgm/bkgm/pkg/position"
)

// PositionFinder samples random mid-game positions by playing games
// with an inner evaluator and collecting every position reached along
// the way, for later rollout-based labeling (e.g. building a training
// set for a neural evaluator).
type PositionFinder struct {
	inner evaluator.Evaluator
	dice  dicegen.Gen
}

// NewPositionFinder builds a PositionFinder that plays games with
// inner's move choices and an independently seeded dice source.
func NewPositionFinder(inner evaluator.Evaluator) PositionFinder {
	return PositionFinder{inner: inner, dice: dicegen.NewRand()}
}

// FindPositions plays random games from the starting position until it
// has collected at least amount distinct ongoing positions, returning
// exactly amount of them.
func (f PositionFinder) FindPositions(amount int) []position.Position {
	found := make(map[position.Position]struct{}, amount)
	for len(found) < amount {
		for _, pos := range f.positionsInOneRandomGame() {
			if len(found) >= amount {
				break
			}
			found[pos] = struct{}{}
		}
	}
	result := make([]position.Position, 0, amount)
	for pos := range found {
		if len(result) >= amount {
			break
		}
		result = append(result, pos)
	}
	return result
}

// positionsInOneRandomGame plays one game to completion, collecting
// every ongoing position among each move's alternatives (not just the
// one actually chosen), so a single game contributes many candidates.
func (f PositionFinder) positionsInOneRandomGame() []position.Position {
	var positions []position.Position
	pos := position.New()
	for {
		if gs := pos.GameState(); gs.Over {
			return positions
		}
		d := f.dice.Roll()
		next := f.inner.BestPosition(pos, d)
		for _, candidate := range pos.PossiblePositions(d) {
			if !candidate.GameState().Over {
				positions = append(positions, candidate)
			}
		}
		pos = next
	}
}
