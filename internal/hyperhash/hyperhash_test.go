package hyperhash

import (
	"math/rand"
	"testing"
)

func TestMCombinationsKnownValues(t *testing.T) {
	tests := []struct {
		nCheckers int
		want      int64
	}{
		{0, 1},
		{1, 26},
		{2, 351},
		{3, 3276},
	}
	for _, tc := range tests {
		if got := MCombinations(tc.nCheckers); got != tc.want {
			t.Errorf("MCombinations(%d) = %d, want %d", tc.nCheckers, got, tc.want)
		}
	}
}

func TestRankUnrankRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	const nCheckers = 3
	space := MCombinations(nCheckers)
	var maxSeen int64 = -1
	for i := 0; i < 5000; i++ {
		var counts [explicitSlots]int
		remaining := nCheckers
		for j := 0; j < explicitSlots; j++ {
			c := r.Intn(remaining + 1)
			counts[j] = c
			remaining -= c
		}
		rank := Rank(counts, nCheckers)
		if rank < 0 || rank >= space {
			t.Fatalf("Rank(%v) = %d, out of [0, %d)", counts, rank, space)
		}
		if rank > maxSeen {
			maxSeen = rank
		}
		back := Unrank(rank, nCheckers)
		if back != counts {
			t.Fatalf("Unrank(Rank(%v)) = %v, want %v", counts, back, counts)
		}
	}
	if maxSeen >= space {
		t.Errorf("max rank seen %d exceeds space %d", maxSeen, space)
	}
}

func TestRankZeroIsAllOff(t *testing.T) {
	var counts [explicitSlots]int
	if got := Rank(counts, 3); got != 0 {
		t.Errorf("Rank(all-zero, 3) = %d, want 0", got)
	}
}

func TestRankAllOnBarIsHighestForThatCheckerCount(t *testing.T) {
	var counts [explicitSlots]int
	counts[explicitSlots-1] = 3
	rank := Rank(counts, 3)
	if want := MCombinations(3) - 1; rank != want {
		t.Errorf("Rank(all-on-bar) = %d, want %d", rank, want)
	}
	back := Unrank(rank, 3)
	if back != counts {
		t.Errorf("Unrank(Rank(all-on-bar)) = %v, want %v", back, counts)
	}
}
