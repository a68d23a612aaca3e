// Package probabilities holds the six-way win/loss distribution every
// evaluator produces and the cubeless equity derived from it.
package probabilities

import (
	"fmt"

	"github.com/go-bkgm/bkgm/pkg/position"
)

// Probabilities is a six-way distribution over how a game ends, from
// the perspective of the side to move. The six fields always sum to
// 1.0 for a value actually produced by an evaluator.
type Probabilities struct {
	WinNormal      float32
	WinGammon      float32
	WinBackgammon  float32
	LoseNormal     float32
	LoseGammon     float32
	LoseBackgammon float32
}

func (p Probabilities) String() string {
	return fmt.Sprintf(
		"wn %.2f%%; wg %.2f%%; wb %.2f%%; ln %.2f%%; lg %.2f%%; lb %.2f%%",
		100*p.WinNormal, 100*p.WinGammon, 100*p.WinBackgammon,
		100*p.LoseNormal, 100*p.LoseGammon, 100*p.LoseBackgammon,
	)
}

// New builds a Probabilities from six raw rollout counters, indexed in
// GameResult discriminant order, normalizing by their sum.
func New(results [6]uint32) Probabilities {
	var sum float32
	for _, r := range results {
		sum += float32(r)
	}
	return Probabilities{
		WinNormal:      float32(results[position.WinNormal]) / sum,
		WinGammon:      float32(results[position.WinGammon]) / sum,
		WinBackgammon:  float32(results[position.WinBackgammon]) / sum,
		LoseNormal:     float32(results[position.LoseNormal]) / sum,
		LoseGammon:     float32(results[position.LoseGammon]) / sum,
		LoseBackgammon: float32(results[position.LoseBackgammon]) / sum,
	}
}

// FromResult returns the degenerate distribution that puts all mass on
// a single known terminal result.
func FromResult(result position.GameResult) Probabilities {
	var p Probabilities
	switch result {
	case position.WinNormal:
		p.WinNormal = 1
	case position.WinGammon:
		p.WinGammon = 1
	case position.WinBackgammon:
		p.WinBackgammon = 1
	case position.LoseNormal:
		p.LoseNormal = 1
	case position.LoseGammon:
		p.LoseGammon = 1
	case position.LoseBackgammon:
		p.LoseBackgammon = 1
	}
	return p
}

// Normalized rescales p so its six fields sum to 1.0, leaving their
// relative proportions unchanged. Useful when probabilities have been
// accumulated (e.g. averaged over ply candidates) without the sum
// being tracked separately.
func (p Probabilities) Normalized() Probabilities {
	sum := p.WinNormal + p.WinGammon + p.WinBackgammon + p.LoseNormal + p.LoseGammon + p.LoseBackgammon
	return Probabilities{
		WinNormal:      p.WinNormal / sum,
		WinGammon:      p.WinGammon / sum,
		WinBackgammon:  p.WinBackgammon / sum,
		LoseNormal:     p.LoseNormal / sum,
		LoseGammon:     p.LoseGammon / sum,
		LoseBackgammon: p.LoseBackgammon / sum,
	}
}

// Flip swaps win and loss, turning a distribution seen from the side
// to move into the same distribution seen from the opponent's side.
func (p Probabilities) Flip() Probabilities {
	return Probabilities{
		WinNormal:      p.LoseNormal,
		WinGammon:      p.LoseGammon,
		WinBackgammon:  p.LoseBackgammon,
		LoseNormal:     p.WinNormal,
		LoseGammon:     p.WinGammon,
		LoseBackgammon: p.WinBackgammon,
	}
}

// Equity is the cubeless equity implied by the distribution: +1/-1 for
// a plain win/loss, doubled for a gammon, tripled for a backgammon.
func (p Probabilities) Equity() float32 {
	return (p.WinNormal - p.LoseNormal) +
		2*(p.WinGammon-p.LoseGammon) +
		3*(p.WinBackgammon-p.LoseBackgammon)
}

// ToSlice returns the six fields in GameResult discriminant order.
func (p Probabilities) ToSlice() [6]float32 {
	return [6]float32{p.WinNormal, p.WinGammon, p.WinBackgammon, p.LoseNormal, p.LoseGammon, p.LoseBackgammon}
}

// FromSlice is the inverse of ToSlice, renormalizing by the slice's
// sum so callers can pass unnormalized accumulators.
func FromSlice(v [6]float32) Probabilities {
	var sum float32
	for _, x := range v {
		sum += x
	}
	return Probabilities{
		WinNormal:      v[0] / sum,
		WinGammon:      v[1] / sum,
		WinBackgammon:  v[2] / sum,
		LoseNormal:     v[3] / sum,
		LoseGammon:     v[4] / sum,
		LoseBackgammon: v[5] / sum,
	}
}

// ToGnu returns the 5-element layout gnubg's neural nets and match
// equity tables use: [win, win_gammon(+bg), win_bg, lose_gammon(+bg),
// lose_bg], where win_gammon and lose_gammon are cumulative (include
// the backgammon mass).
func (p Probabilities) ToGnu() [5]float32 {
	winGammon := p.WinGammon + p.WinBackgammon
	loseGammon := p.LoseGammon + p.LoseBackgammon
	return [5]float32{
		p.WinNormal + winGammon,
		winGammon,
		p.WinBackgammon,
		loseGammon,
		p.LoseBackgammon,
	}
}

// FromGnu is the inverse of ToGnu.
func FromGnu(v [5]float32) Probabilities {
	winBg := v[2]
	loseBg := v[4]
	winGammon := v[1] - winBg
	loseGammon := v[3] - loseBg
	winNormal := v[0] - v[1]
	loseNormal := 1 - v[0] - v[3]
	return Probabilities{
		WinNormal:      winNormal,
		WinGammon:      winGammon,
		WinBackgammon:  winBg,
		LoseNormal:     loseNormal,
		LoseGammon:     loseGammon,
		LoseBackgammon: loseBg,
	}
}

// ResultCounter accumulates terminal-game-result counts across many
// playouts, e.g. the 1296-game fan-out a rollout runs per candidate
// move. It is not safe for concurrent use; shard one per worker and
// Combine the results.
type ResultCounter struct {
	results [6]uint32
}

// NewResultCounter builds a counter pre-seeded with the given counts,
// mainly useful in tests.
func NewResultCounter(winNormal, winGammon, winBG, loseNormal, loseGammon, loseBG uint32) ResultCounter {
	return ResultCounter{results: [6]uint32{winNormal, winGammon, winBG, loseNormal, loseGammon, loseBG}}
}

// Add records one occurrence of result.
func (c *ResultCounter) Add(result position.GameResult) {
	c.results[result]++
}

// AddN records amount occurrences of result.
func (c *ResultCounter) AddN(result position.GameResult, amount uint32) {
	c.results[result] += amount
}

// Sum returns the total number of recorded results.
func (c *ResultCounter) Sum() uint32 {
	var sum uint32
	for _, r := range c.results {
		sum += r
	}
	return sum
}

// NumOf returns how many times result has been recorded.
func (c *ResultCounter) NumOf(result position.GameResult) uint32 {
	return c.results[result]
}

// Combine merges another counter's counts into a copy of c, for
// reducing per-worker shards into a single total.
func (c ResultCounter) Combine(other ResultCounter) ResultCounter {
	var out ResultCounter
	for i := range c.results {
		out.results[i] = c.results[i] + other.results[i]
	}
	return out
}

// Probabilities converts the accumulated counts into a normalized
// Probabilities distribution.
func (c ResultCounter) Probabilities() Probabilities {
	return New(c.results)
}
