// Package dicegen provides dice sources for rollouts and duels: a
// seeded pseudo-random generator for production use and a scripted
// mock for deterministic tests.
package dicegen

import (
	"math/rand/v2"

	"github.com/go-bkgm/bkgm/pkg/position"
)

// Gen returns a Dice roll. Implementations need not be safe for
// concurrent use; callers that shard work across goroutines should
// give each shard its own Gen.
type Gen interface {
	Roll() position.Dice
}

// Rand is a Gen backed by math/rand/v2's PCG source.
type Rand struct {
	rng *rand.Rand
}

// NewRand returns a Rand seeded from the OS entropy source.
func NewRand() *Rand {
	return &Rand{rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

// NewRandSeeded returns a Rand with a reproducible seed, for rollouts
// and duels that need to replay the same dice stream.
func NewRandSeeded(seed uint64) *Rand {
	return &Rand{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Roll returns a uniformly distributed dice pair.
func (r *Rand) Roll() position.Dice {
	n := r.rng.IntN(36)
	return position.NewDice(n/6+1, n%6+1)
}

// Mock replays a fixed, caller-supplied sequence of rolls. It panics
// if asked for more rolls than it was given, which is almost always a
// sign the test under-provisioned its dice rather than a legitimate
// runtime condition.
type Mock struct {
	dice    []position.Dice
	nCalled int
}

// NewMock returns a Mock that replays dice in order.
func NewMock(dice ...position.Dice) *Mock {
	return &Mock{dice: dice}
}

// Roll returns the next scripted roll.
func (m *Mock) Roll() position.Dice {
	if m.nCalled >= len(m.dice) {
		panic("dicegen: Mock ran out of scripted rolls")
	}
	d := m.dice[m.nCalled]
	m.nCalled++
	return d
}

// AssertExhausted reports whether every scripted roll was consumed.
func (m *Mock) AssertExhausted() bool {
	return m.nCalled == len(m.dice)
}
