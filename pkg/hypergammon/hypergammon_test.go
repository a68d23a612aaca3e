package hypergammon

import (
	"testing"

	"github.com/go-bkgm/bkgm/pkg/evaluator"
	"github.com/go-bkgm/bkgm/pkg/position"
	"github.com/go-bkgm/bkgm/pkg/probabilities"
)

func TestReachableIncludesStartingPosition(t *testing.T) {
	ongoing, terminal := Reachable()
	start := position.NewHypergammon()
	for _, p := range terminal {
		if p == start {
			t.Fatalf("starting position classified as terminal")
		}
	}
	found := false
	for _, p := range ongoing {
		if p == start {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("Reachable did not include the starting position among %d ongoing entries", len(ongoing))
	}
}

func TestReachablePartitionsAreDisjointAndNonEmpty(t *testing.T) {
	ongoing, terminal := Reachable()
	if len(ongoing) == 0 || len(terminal) == 0 {
		t.Fatalf("expected both ongoing and terminal sets to be non-empty, got %d and %d", len(ongoing), len(terminal))
	}
	for _, p := range ongoing {
		if p.GameState().Over {
			t.Errorf("ongoing set contains a terminal position: %+v", p)
		}
	}
	for _, p := range terminal {
		if !p.GameState().Over {
			t.Errorf("terminal set contains a non-terminal position: %+v", p)
		}
	}
}

// DBHash must be injective over the full reachable set: the solver
// relies on every distinct position landing in its own table slot.
func TestDBHashIsBijectiveOverReachableSet(t *testing.T) {
	ongoing, terminal := Reachable()
	seen := make(map[int]position.Position)
	check := func(p position.Position) {
		h := evaluator.DBHash(p)
		if h < 0 || h >= evaluator.HyperSpace {
			t.Fatalf("DBHash(%+v) = %d out of bounds [0,%d)", p, h, evaluator.HyperSpace)
		}
		if other, ok := seen[h]; ok && other != p {
			t.Fatalf("DBHash collision at %d between %+v and %+v", h, other, p)
		}
		seen[h] = p
	}
	for _, p := range ongoing {
		check(p)
	}
	for _, p := range terminal {
		check(p)
	}
}

func TestSeedTerminalsRecordsExactResults(t *testing.T) {
	_, terminal := Reachable()
	table := SeedTerminals(terminal)
	for _, p := range terminal {
		gs := p.GameState()
		want := probabilities.FromResult(gs.Result)
		got := table[evaluator.DBHash(p)]
		if got != want {
			t.Errorf("SeedTerminals table entry for %+v = %+v, want %+v", p, got, want)
		}
	}
}

// BuildTransitions shards ongoing across GOMAXPROCS workers; this
// guards against a sharding bug dropping or duplicating a position's
// entry in the merged map.
func TestBuildTransitionsCoversEveryOngoingPosition(t *testing.T) {
	ongoing, _ := Reachable()
	transitions := BuildTransitions(ongoing)
	if len(transitions) != len(ongoing) {
		t.Fatalf("BuildTransitions produced %d entries, want %d", len(transitions), len(ongoing))
	}
	for _, p := range ongoing {
		ts, ok := transitions[p]
		if !ok {
			t.Fatalf("BuildTransitions missing entry for %+v", p)
		}
		if len(ts) != len(position.AllUnorderedPairs) {
			t.Errorf("transitions for %+v has %d rolls, want %d", p, len(ts), len(position.AllUnorderedPairs))
		}
	}
}

func TestSolveProducesNormalizedDistributionsForOngoingPositions(t *testing.T) {
	ongoing, terminal := Reachable()
	transitions := BuildTransitions(ongoing)
	table := SeedTerminals(terminal)
	result := Iterate(ongoing, transitions, table, 5)

	for _, p := range ongoing {
		got := result[evaluator.DBHash(p)]
		sum := got.WinNormal + got.WinGammon + got.WinBackgammon + got.LoseNormal + got.LoseGammon + got.LoseBackgammon
		if sum < 0.99 || sum > 1.01 {
			t.Errorf("Iterate entry for %+v sums to %v, want ~1", p, sum)
		}
	}
}

func TestSolveLeavesTerminalEntriesExact(t *testing.T) {
	ongoing, terminal := Reachable()
	transitions := BuildTransitions(ongoing)
	table := SeedTerminals(terminal)
	result := Iterate(ongoing, transitions, table, 3)

	for _, p := range terminal {
		gs := p.GameState()
		want := probabilities.FromResult(gs.Result)
		got := result[evaluator.DBHash(p)]
		if got != want {
			t.Errorf("Iterate mutated terminal entry for %+v: got %+v, want %+v", p, got, want)
		}
	}
}
