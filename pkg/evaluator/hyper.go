package evaluator

import (
	"fmt"

	"github.com/go-bkgm/bkgm/internal/equitydb"
	"github.com/go-bkgm/bkgm/internal/hyperhash"
	"github.com/go-bkgm/bkgm/pkg/position"
	"github.com/go-bkgm/bkgm/pkg/probabilities"
)

// HyperSpace is the table size a HyperEvaluator's database must have:
// one entry per (mover, opponent) checker-distribution pair, for
// hypergammon's 3-checker-per-side game.
var HyperSpace = int(hyperhash.MCombinations(3) * hyperhash.MCombinations(3))

// HyperEvaluator looks up the exact equity of a hypergammon position
// from a precomputed table, indexed by the combinatorial hash of its
// two sides' checker distributions. It is exact, not an
// approximation, because hypergammon's state space is small enough to
// solve exhaustively (see pkg/hypergammon).
type HyperEvaluator struct {
	db *equitydb.Database
}

// NewHyperEvaluatorFromFile loads a hypergammon equity database from
// path. Returns ErrDatabaseShapeMismatch (wrapped) if the file's size
// doesn't match HyperSpace entries.
func NewHyperEvaluatorFromFile(path string) (HyperEvaluator, error) {
	db, err := equitydb.Load(path, HyperSpace)
	if err != nil {
		return HyperEvaluator{}, fmt.Errorf("evaluator: loading hyper db: %w", err)
	}
	return HyperEvaluator{db: db}, nil
}

// DBHash computes the table index for pos: the mover's checker-rank
// times the opponent space, plus the opponent's checker-rank.
func DBHash(pos position.Position) int {
	return int(rankSide(pos, true))*int(hyperhash.MCombinations(int(pos.N))) + int(rankSide(pos, false))
}

func rankSide(pos position.Position, mover bool) int64 {
	var counts [25]int
	bar := int(pos.OBar)
	if mover {
		bar = int(pos.XBar)
	}
	counts[24] = bar
	for pt := 0; pt < position.NumPoints; pt++ {
		c := pos.Board[pt]
		if mover && c > 0 {
			counts[pt] = int(c)
		} else if !mover && c < 0 {
			counts[pt] = int(-c)
		}
	}
	return hyperhash.Rank(counts, int(pos.N))
}

func (e HyperEvaluator) Eval(pos position.Position) probabilities.Probabilities {
	if p, ok := terminal(pos); ok {
		return p
	}
	p, err := e.db.Probabilities(DBHash(pos))
	if err != nil {
		// A position outside the table's reachable set isn't
		// something this evaluator can recover from; returning the
		// error to a caller that only wants a Probabilities would
		// violate the Evaluator contract, so treat it as a 50/50
		// placeholder rather than panicking on malformed input the
		// hypergammon solver should never have let escape.
		return probabilities.Probabilities{WinNormal: 0.5, LoseNormal: 0.5}
	}
	return p
}

func (e HyperEvaluator) BestPosition(pos position.Position, dice position.Dice) position.Position {
	return bestPosition(e, pos, dice)
}
