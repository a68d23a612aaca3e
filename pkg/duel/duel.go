// Package duel pits two Evaluators against each other over many
// paired games, canceling out the dice-order advantage by replaying
// the same roll sequence with the two sides swapped.
package duel

import (
	"runtime"
	"sync"

	"github.com/go-bkgm/bkgm/internal/dicegen"
	"github.com/go-bkgm/bkgm/pkg/evaluator"
	"github.com/go-bkgm/bkgm/pkg/position"
	"github.com/go-bkgm/bkgm/pkg/probabilities"
)

// Duel accumulates results across repeated calls to PlayOnce or
// PlayMany, each of which plays two games simultaneously on a shared
// dice sequence with the two evaluators swapped, so neither benefits
// from always moving first.
type Duel struct {
	eval1, eval2 evaluator.Evaluator
	dice         dicegen.Gen
	seed         uint64
	counter      probabilities.ResultCounter
}

// New builds a Duel between the two evaluators using an unseeded,
// non-reproducible dice source.
func New(eval1, eval2 evaluator.Evaluator) *Duel {
	return &Duel{eval1: eval1, eval2: eval2, dice: dicegen.NewRand()}
}

// NewSeeded builds a Duel with a reproducible dice sequence.
func NewSeeded(eval1, eval2 evaluator.Evaluator, seed uint64) *Duel {
	return &Duel{eval1: eval1, eval2: eval2, dice: dicegen.NewRandSeeded(seed), seed: seed}
}

// NumberOfGames returns the total number of individual games recorded
// so far (two per PlayOnce call).
func (d *Duel) NumberOfGames() uint32 {
	return d.counter.Sum()
}

// Probabilities returns eval1's win/loss distribution accumulated so
// far across every recorded game.
func (d *Duel) Probabilities() probabilities.Probabilities {
	return d.counter.Probabilities()
}

// PlayOnce plays two games to completion from the starting position on
// d's own dice source, recording both results into d's running total.
// It is the sequential entry point used where results must land as
// soon as each pair finishes, e.g. pkg/api's per-event SSE progress
// stream. PlayMany is the throughput-oriented, parallel counterpart.
func (d *Duel) PlayOnce() {
	r1, r2 := playPair(d.eval1, d.eval2, d.dice)
	d.counter.Add(r1)
	d.counter.Add(r2)
}

// PlayMany plays n independent pairs of games, sharded across
// GOMAXPROCS workers the same way pkg/rollout.Eval shards its 1296
// dice sequences: each worker owns its own dice generator, seeded from
// d.seed plus the shard's index so a seeded Duel's runs are
// reproducible for a given GOMAXPROCS (the shard count and sizes
// follow GOMAXPROCS, so the dice change with it), and accumulates its own
// ResultCounter to avoid contending on d.counter mid-run. Every
// worker's counter is folded into d.counter via Combine once all have
// finished.
func (d *Duel) PlayMany(n int) {
	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	if workers == 0 {
		return
	}
	shardSize := (n + workers - 1) / workers

	shardCounters := make([]probabilities.ResultCounter, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		lo := w * shardSize
		hi := lo + shardSize
		if hi > n {
			hi = n
		}
		if lo >= hi {
			continue
		}
		wg.Add(1)
		go func(shard, count int) {
			defer wg.Done()
			gen := shardDiceGen(d.seed, shard)
			var local probabilities.ResultCounter
			for i := 0; i < count; i++ {
				r1, r2 := playPair(d.eval1, d.eval2, gen)
				local.Add(r1)
				local.Add(r2)
			}
			shardCounters[shard] = local
		}(w, hi-lo)
	}
	wg.Wait()

	for _, c := range shardCounters {
		d.counter = d.counter.Combine(c)
	}
}

func shardDiceGen(seed uint64, shard int) dicegen.Gen {
	if seed == 0 {
		return dicegen.NewRand()
	}
	return dicegen.NewRandSeeded(seed + uint64(shard))
}

// playPair plays the matched pair of games that make up one duel
// round to completion, sharing one dice roll per iteration between
// them. In the first game eval1 moves on even iterations and eval2 on
// odd ones; in the second game the assignment is swapped. Each game's
// result is returned from eval1's perspective, reversed when the side
// to move in the finished position is eval2's, so summing many rounds gives eval1 and
// eval2 each exactly as many first moves as the other.
func playPair(eval1, eval2 evaluator.Evaluator, gen dicegen.Gen) (result1, result2 position.GameResult) {
	pos1 := position.New()
	pos2 := position.New()
	iteration := 0
	pos1Done, pos2Done := false, false

	for !(pos1Done && pos2Done) {
		roll := gen.Roll()

		if !pos1Done {
			if gs := pos1.GameState(); gs.Over {
				pos1Done = true
				result1 = gs.Result
				if iteration%2 != 0 {
					result1 = result1.Reverse()
				}
			} else if iteration%2 == 0 {
				pos1 = eval1.BestPosition(pos1, roll)
			} else {
				pos1 = eval2.BestPosition(pos1, roll)
			}
		}

		if !pos2Done {
			if gs := pos2.GameState(); gs.Over {
				pos2Done = true
				result2 = gs.Result
				if iteration%2 == 0 {
					result2 = result2.Reverse()
				}
			} else if iteration%2 == 0 {
				pos2 = eval2.BestPosition(pos2, roll)
			} else {
				pos2 = eval1.BestPosition(pos2, roll)
			}
		}

		iteration++
	}
	return result1, result2
}
