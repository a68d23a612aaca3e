// Package hypergammon exhaustively solves hypergammon (the 3-checker
// variant of backgammon): its reachable state space is small enough
// to enumerate, seed with exact terminal results, and relax to a
// fixed point by value iteration, producing an equity table
// pkg/evaluator.HyperEvaluator can serve lookups from directly.
package hypergammon

import (
	"runtime"
	"sync"

	"github.com/go-bkgm/bkgm/pkg/evaluator"
	"github.com/go-bkgm/bkgm/pkg/position"
	"github.com/go-bkgm/bkgm/pkg/probabilities"
)

// shard splits [0, n) into up to runtime.GOMAXPROCS(0) contiguous
// ranges, the same partitioning pkg/rollout uses to spread its own
// fixed-size workload across workers.
func shard(n int) (workers int, shardSize int) {
	workers = runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	if workers == 0 {
		return 0, 0
	}
	return workers, (n + workers - 1) / workers
}

// Reachable enumerates every position reachable from the hypergammon
// starting position by breadth-first search over the 21 weighted
// dice pairs, split into still-ongoing and terminal sets and
// deduplicated by Position equality (itself keyed by the board's
// canonical layout).
func Reachable() (ongoing, terminal []position.Position) {
	start := position.NewHypergammon()
	seen := map[position.Position]struct{}{start: {}}
	classify := func(p position.Position) {
		if p.GameState().Over {
			terminal = append(terminal, p)
		} else {
			ongoing = append(ongoing, p)
		}
	}
	classify(start)

	frontier := []position.Position{start}
	for len(frontier) > 0 {
		var next []position.Position
		for _, p := range frontier {
			if p.GameState().Over {
				continue
			}
			for _, wd := range position.AllUnorderedPairs {
				for _, child := range p.PossiblePositions(wd.Dice) {
					if _, ok := seen[child]; ok {
						continue
					}
					seen[child] = struct{}{}
					classify(child)
					next = append(next, child)
				}
			}
		}
		frontier = next
	}
	return ongoing, terminal
}

// Transition is one dice roll's worth of legal replies from a
// position: every candidate successor PossiblePositions returns for
// that roll, already flipped to the opponent's perspective, together
// with the roll's weight out of 36.
type Transition struct {
	Dice       position.Dice
	Weight     int
	Successors []position.Position
}

// BuildTransitions computes, for every ongoing position, its
// Transition list across all 21 dice pairs. Building a position's
// transitions is independent of every other position's, so the work is
// sharded across GOMAXPROCS workers into per-shard slices (mirroring
// pkg/rollout.Eval's sharding) and merged into a single map once every
// worker has finished — concurrent writes to one map are unsafe, so the
// map itself is only ever touched by the merging goroutine.
func BuildTransitions(ongoing []position.Position) map[position.Position][]Transition {
	workers, shardSize := shard(len(ongoing))
	transitions := make(map[position.Position][]Transition, len(ongoing))
	if workers == 0 {
		return transitions
	}

	results := make([][]Transition, len(ongoing))
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		lo := w * shardSize
		hi := lo + shardSize
		if hi > len(ongoing) {
			hi = len(ongoing)
		}
		if lo >= hi {
			continue
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				p := ongoing[i]
				ts := make([]Transition, 0, len(position.AllUnorderedPairs))
				for _, wd := range position.AllUnorderedPairs {
					ts = append(ts, Transition{
						Dice:       wd.Dice,
						Weight:     wd.Weight,
						Successors: p.PossiblePositions(wd.Dice),
					})
				}
				results[i] = ts
			}
		}(lo, hi)
	}
	wg.Wait()

	for i, p := range ongoing {
		transitions[p] = results[i]
	}
	return transitions
}

// SeedTerminals builds the equity table evaluator.HyperEvaluator
// expects: one Probabilities entry per evaluator.HyperSpace slot,
// exact at every terminal position's dbhash and zero everywhere else
// (Iterate's first pass overwrites every ongoing entry before it is
// ever read as a final answer).
func SeedTerminals(terminal []position.Position) []probabilities.Probabilities {
	table := make([]probabilities.Probabilities, evaluator.HyperSpace)
	for _, p := range terminal {
		gs := p.GameState()
		table[evaluator.DBHash(p)] = probabilities.FromResult(gs.Result)
	}
	return table
}

// Iterate runs iterations passes of value iteration over ongoing,
// using transitions (from BuildTransitions) and table (seeded by
// SeedTerminals) as the starting equity estimates, returning the
// converged table. Each pass is double-buffered: every entry's new
// value is a weighted average, over all 21 dice pairs, of whichever
// successor currently has the lowest equity for the opponent (the
// best reply available to the mover), flipped back to the mover's own
// perspective before weighting.
//
// Every position's update within a pass reads only from current, the
// previous pass's frozen table, so the ongoing positions are
// independent of each other within a pass and are sharded across
// GOMAXPROCS workers the same way BuildTransitions shards its own
// per-position work. Workers write to disjoint indices of next (every
// ongoing position has a distinct DBHash), so no synchronization is
// needed beyond the WaitGroup barrier between passes.
func Iterate(ongoing []position.Position, transitions map[position.Position][]Transition, table []probabilities.Probabilities, iterations int) []probabilities.Probabilities {
	workers, shardSize := shard(len(ongoing))
	current := table
	for pass := 0; pass < iterations; pass++ {
		next := make([]probabilities.Probabilities, len(current))
		copy(next, current)

		if workers == 0 {
			current = next
			continue
		}

		var wg sync.WaitGroup
		for w := 0; w < workers; w++ {
			lo := w * shardSize
			hi := lo + shardSize
			if hi > len(ongoing) {
				hi = len(ongoing)
			}
			if lo >= hi {
				continue
			}
			wg.Add(1)
			go func(lo, hi int) {
				defer wg.Done()
				for idx := lo; idx < hi; idx++ {
					p := ongoing[idx]
					var acc [6]float32
					for _, t := range transitions[p] {
						best := bestSuccessorEquity(current, t.Successors)
						flipped := best.Flip().ToSlice()
						for i, v := range flipped {
							acc[i] += float32(t.Weight) * v
						}
					}
					for i := range acc {
						acc[i] /= 36.0
					}
					next[evaluator.DBHash(p)] = probabilities.FromSlice(acc)
				}
			}(lo, hi)
		}
		wg.Wait()
		current = next
	}
	return current
}

func bestSuccessorEquity(table []probabilities.Probabilities, successors []position.Position) probabilities.Probabilities {
	best := table[evaluator.DBHash(successors[0])]
	bestEquity := best.Equity()
	for _, s := range successors[1:] {
		if p := table[evaluator.DBHash(s)]; p.Equity() < bestEquity {
			best, bestEquity = p, p.Equity()
		}
	}
	return best
}

// Solve runs the full four-phase pipeline and returns the converged
// equity table, ready to be written to disk with
// internal/equitydb.WriteProbabilities.
func Solve(iterations int) []probabilities.Probabilities {
	ongoing, terminal := Reachable()
	transitions := BuildTransitions(ongoing)
	table := SeedTerminals(terminal)
	return Iterate(ongoing, transitions, table, iterations)
}
