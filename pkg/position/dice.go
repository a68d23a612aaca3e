package position

import "fmt"

// Dice represents an unordered pair of die values (1-6 each). A pair where
// both dice show the same value is a double; everything else is a regular
// roll with a distinguishable high/low die.
type Dice struct {
	High int
	Low  int
}

// NewDice builds a Dice from two arbitrary die values, normalizing order.
func NewDice(a, b int) Dice {
	if a < b {
		a, b = b, a
	}
	return Dice{High: a, Low: b}
}

// IsDouble reports whether both dice show the same value.
func (d Dice) IsDouble() bool {
	return d.High == d.Low
}

// Pips returns the sequence of half-move sizes this roll allows: two
// pips for a regular roll, four repeats of the same pip for a double.
func (d Dice) Pips() []int {
	if d.IsDouble() {
		return []int{d.High, d.High, d.High, d.High}
	}
	return []int{d.High, d.Low}
}

func (d Dice) String() string {
	if d.IsDouble() {
		return fmt.Sprintf("%d%d", d.High, d.High)
	}
	return fmt.Sprintf("%d%d", d.High, d.Low)
}

// WeightedDice pairs an unordered Dice roll with the number of ordered
// (die1, die2) combinations it represents out of 36: 1 for doubles, 2
// otherwise.
type WeightedDice struct {
	Dice   Dice
	Weight int
}

// AllUnorderedPairs is the 21 distinct unordered dice pairs with their
// weight out of 36 ordered rolls. Computed once and shared read-only, as
// required by the "globals" design note: the static dice tables are pure
// constants.
var AllUnorderedPairs = buildUnorderedPairs()

func buildUnorderedPairs() []WeightedDice {
	pairs := make([]WeightedDice, 0, 21)
	for high := 1; high <= 6; high++ {
		for low := 1; low <= high; low++ {
			weight := 2
			if high == low {
				weight = 1
			}
			pairs = append(pairs, WeightedDice{Dice: Dice{High: high, Low: low}, Weight: weight})
		}
	}
	return pairs
}

// AllSingles is the 6 singleton dice values (1-6). Nothing in the
// module uses it: hypergammon.Reachable expands every BFS level,
// including the first, with AllUnorderedPairs.
var AllSingles = []int{1, 2, 3, 4, 5, 6}

// OrderedPair is one of the 1296 ordered two-roll sequences used to drive
// a rollout's first two half-plies.
type OrderedPair struct {
	First  Dice
	Second Dice
}

// All1296 is the 36x36 ordered dice sequence table used by the rollout
// evaluator to guarantee exact 1/1296-weighted fan-out coverage.
var All1296 = buildAll1296()

func buildAll1296() []OrderedPair {
	all := make([]OrderedPair, 0, 1296)
	for a1 := 1; a1 <= 6; a1++ {
		for a2 := 1; a2 <= 6; a2++ {
			d1 := NewDice(a1, a2)
			for b1 := 1; b1 <= 6; b1++ {
				for b2 := 1; b2 <= 6; b2++ {
					d2 := NewDice(b1, b2)
					all = append(all, OrderedPair{First: d1, Second: d2})
				}
			}
		}
	}
	return all
}
