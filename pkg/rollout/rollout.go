// Package rollout evaluates a position by playing it out to completion
// across all 1296 ordered two-roll dice sequences, using an inner
// evaluator to pick every move. It is the slowest and most accurate
// evaluator in the package: the first two rolls are enumerated
// exhaustively, while every later roll is a random draw, so results
// still carry sampling noise from the dice after the first two rolls.
package rollout

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/go-bkgm/bkgm/internal/dicegen"
	"github.com/go-bkgm/bkgm/pkg/evaluator"
	"github.com/go-bkgm/bkgm/pkg/position"
	"github.com/go-bkgm/bkgm/pkg/probabilities"
)

// RolloutEvaluator wraps an inner Evaluator, replacing its opinion of
// a position with the outcome of playing every one of the 1296
// ordered first-two-rolls sequences to completion.
type RolloutEvaluator struct {
	inner evaluator.Evaluator
	seed  uint64
}

// NewRolloutEvaluator builds a RolloutEvaluator whose workers each seed
// their own PRNG from OS entropy; results vary between calls.
func NewRolloutEvaluator(inner evaluator.Evaluator) RolloutEvaluator {
	return RolloutEvaluator{inner: inner}
}

// NewSeededRolloutEvaluator builds a RolloutEvaluator whose workers
// derive their PRNGs from seed, so two rollouts built with the same
// seed over the same position replay identical free-roll dice.
func NewSeededRolloutEvaluator(inner evaluator.Evaluator, seed uint64) RolloutEvaluator {
	return RolloutEvaluator{inner: inner, seed: seed}
}

// NewRandomRolloutEvaluator rolls out against a RandomEvaluator, the
// cheapest baseline opponent for sanity-checking the rollout mechanics
// itself rather than the quality of move selection.
func NewRandomRolloutEvaluator() RolloutEvaluator {
	return NewRolloutEvaluator(evaluator.NewRandomEvaluator())
}

func (e RolloutEvaluator) TryEval(pos position.Position) float32 {
	return e.Eval(pos).Equity()
}

// Eval plays out pos under every ordered dice pair in
// position.All1296, sharded across GOMAXPROCS workers (1296 goroutines
// would be wasteful churn for work this cheap per game). Each shard
// owns its own dice source for the free-rolling tail of each game,
// seeded from e.seed plus the shard's index so a seeded evaluator's
// runs are reproducible.
func (e RolloutEvaluator) Eval(pos position.Position) probabilities.Probabilities {
	if gs := pos.GameState(); gs.Over {
		return probabilities.FromResult(gs.Result)
	}

	pairs := position.All1296
	workers := runtime.GOMAXPROCS(0)
	if workers > len(pairs) {
		workers = len(pairs)
	}
	shardSize := (len(pairs) + workers - 1) / workers

	shardCounters := make([]probabilities.ResultCounter, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * shardSize
		end := start + shardSize
		if end > len(pairs) {
			end = len(pairs)
		}
		if start >= end {
			continue
		}
		wg.Add(1)
		go func(shard int, lo, hi int) {
			defer wg.Done()
			gen := shardDiceGen(e.seed, shard)
			for _, op := range pairs[lo:hi] {
				result := singleRollout(e.inner, pos, []position.Dice{op.First, op.Second}, gen)
				shardCounters[shard].Add(result)
			}
		}(w, start, end)
	}
	wg.Wait()

	total := probabilities.ResultCounter{}
	for _, c := range shardCounters {
		total = total.Combine(c)
	}
	if got := total.Sum(); got != uint32(len(pairs)) {
		panic(fmt.Sprintf("rollout: result counter summed to %d, want %d", got, len(pairs)))
	}
	return total.Probabilities()
}

// BestPosition picks the candidate reply that leaves the opponent with
// the lowest rolled-out equity, matching the rest of the package's
// convention for Evaluator implementations (see evaluator.WorstPosition):
// PossiblePositions already returns positions from the opponent's
// perspective, so minimizing their equity directly is equivalent to
// maximizing the original mover's.
func (e RolloutEvaluator) BestPosition(pos position.Position, dice position.Dice) position.Position {
	return evaluator.WorstPosition(e, pos.PossiblePositions(dice))
}

func shardDiceGen(seed uint64, shard int) dicegen.Gen {
	if seed == 0 {
		return dicegen.NewRand()
	}
	return dicegen.NewRandSeeded(seed + uint64(shard))
}

// singleRollout plays from to completion: the first len(firstDice)
// half-moves are fixed, every half-move after that is drawn from gen.
// The terminal result is reported from the mover of `from`'s
// perspective, which means flipping it whenever the game ended on an
// odd half-move (the side to move at that point was the opponent of
// the side to move in `from`).
func singleRollout(inner evaluator.Evaluator, from position.Position, firstDice []position.Dice, gen dicegen.Gen) position.GameResult {
	pos := from
	iteration := 0
	for {
		var d position.Dice
		if iteration < len(firstDice) {
			d = firstDice[iteration]
		} else {
			d = gen.Roll()
		}
		pos = inner.BestPosition(pos, d)
		gs := pos.GameState()
		if !gs.Over {
			iteration++
			continue
		}
		if iteration%2 == 0 {
			return gs.Result.Reverse()
		}
		return gs.Result
	}
}
