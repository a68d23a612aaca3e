// Package position implements the backgammon board model: canonical
// encoding, dice legality, and move generation. This is a from-scratch
// Go rendition of the signed single-board representation described by
// the engine's reference implementation, keeping the bit-packing and
// move-generation *technique* of a gnubg-derived evaluator while using
// the simpler, side-to-move-relative board shape the position ID format
// actually requires.
package position

import (
	"errors"
	"fmt"
)

// NumPoints is the number of playable points on a backgammon board.
const NumPoints = 24

// ErrInvalidPositionID is returned when a position ID string fails to
// decode: bad base64, wrong length, or a bit-stream that violates the
// encoding grammar (e.g. too many checkers for one side).
var ErrInvalidPositionID = errors.New("position: invalid position id")

// ErrInvalidMove is returned when a requested move is not among the
// position's legal PossiblePositions for the given dice.
var ErrInvalidMove = errors.New("position: invalid move")

// Position is a backgammon board from the side-to-move's perspective.
// Point 1 is the first point in the on-roll player's home board; points
// are numbered 1-24 toward the opponent's home board. Positive counts
// are the on-roll player's checkers ("X"), negative counts are the
// opponent's ("O"). Board, XBar/OBar and XOff/OOff obey the invariant
// that each side's on-board + bar + off checkers sum to N.
type Position struct {
	Board [NumPoints]int8
	XBar  int8
	OBar  int8
	XOff  int8
	OOff  int8
	N     int8 // 15 for full backgammon, 3 for hypergammon
}

// New returns the standard 15-checker starting position.
func New() Position {
	var p Position
	p.N = 15
	p.Board[23] = 2  // X's back checkers on the 24-point
	p.Board[12] = 5  // X's mid-point
	p.Board[7] = 3   // X's 8-point
	p.Board[5] = 5   // X's 6-point
	p.Board[0] = -2  // O's back checkers on the 1-point (X's view)
	p.Board[11] = -5 // O's mid-point
	p.Board[16] = -3 // O's 17-point
	p.Board[18] = -5 // O's 19-point
	return p
}

// NewHypergammon returns the 3-checker hypergammon starting position: all
// three of X's checkers on the 24-point, all three of O's on the 1-point.
func NewHypergammon() Position {
	var p Position
	p.N = 3
	p.Board[23] = 3
	p.Board[0] = -3
	return p
}

// Pip returns the signed checker count on point i (1-24).
func (p Position) Pip(i int) int {
	return int(p.Board[i-1])
}

// XBarCount, OBarCount, XOffCount and OOffCount expose the bar/off
// counters with the naming spec.md uses (x_bar, o_bar, x_off, o_off).
func (p Position) XBarCount() int { return int(p.XBar) }
func (p Position) OBarCount() int { return int(p.OBar) }
func (p Position) XOffCount() int { return int(p.XOff) }
func (p Position) OOffCount() int { return int(p.OOff) }

// CheckerTotal returns the total number of checkers belonging to X plus O
// that are accounted for anywhere on the board, bar, or off. Used by the
// conservation property: this value never changes across a half-move.
func (p Position) CheckerTotal() int {
	total := int(p.XBar) + int(p.OBar) + int(p.XOff) + int(p.OOff)
	for _, c := range p.Board {
		if c > 0 {
			total += int(c)
		} else {
			total -= int(c)
		}
	}
	return total
}

// GameResult enumerates the six ways a game can end, ordered to match
// the discriminant layout Probabilities and ResultCounter index by.
type GameResult int

const (
	WinNormal GameResult = iota
	WinGammon
	WinBackgammon
	LoseNormal
	LoseGammon
	LoseBackgammon
)

func (r GameResult) String() string {
	switch r {
	case WinNormal:
		return "WinNormal"
	case WinGammon:
		return "WinGammon"
	case WinBackgammon:
		return "WinBackgammon"
	case LoseNormal:
		return "LoseNormal"
	case LoseGammon:
		return "LoseGammon"
	case LoseBackgammon:
		return "LoseBackgammon"
	default:
		return fmt.Sprintf("GameResult(%d)", int(r))
	}
}

// Reverse swaps a win result for the corresponding loss and vice versa.
// Used whenever a terminal result needs to be reinterpreted from the
// other side's point of view (e.g. duel/rollout bookkeeping).
func (r GameResult) Reverse() GameResult {
	switch r {
	case WinNormal:
		return LoseNormal
	case WinGammon:
		return LoseGammon
	case WinBackgammon:
		return LoseBackgammon
	case LoseNormal:
		return WinNormal
	case LoseGammon:
		return WinGammon
	case LoseBackgammon:
		return WinBackgammon
	default:
		return r
	}
}

// GameState describes whether a position is still being played and, if
// not, how it ended.
type GameState struct {
	Over   bool
	Result GameResult
}

// Ongoing is the zero-value GameState for a position that hasn't ended.
var Ongoing = GameState{}

// GameOver builds a finished GameState for the given result.
func GameOver(result GameResult) GameState {
	return GameState{Over: true, Result: result}
}

// GameState reports whether the game has ended for the side on roll and,
// if so, the margin of victory/defeat. The game ends once the on-roll
// side has borne off every checker; gammon/backgammon magnitude is
// determined by how many of the opponent's checkers are off, on the bar,
// or still in the winner's home board.
func (p Position) GameState() GameState {
	if int(p.XOff) == int(p.N) {
		if p.OOff > 0 {
			return GameOver(WinNormal)
		}
		if p.OBar > 0 || p.opponentCheckerInHome() {
			return GameOver(WinBackgammon)
		}
		return GameOver(WinGammon)
	}
	if int(p.OOff) == int(p.N) {
		if p.XOff > 0 {
			return GameOver(LoseNormal)
		}
		if p.XBar > 0 || p.onRollCheckerInOpponentHome() {
			return GameOver(LoseBackgammon)
		}
		return GameOver(LoseGammon)
	}
	return Ongoing
}

// opponentCheckerInHome reports whether O still has a checker in X's
// home board (points 1-6), relevant to backgammon scoring when X bears
// off all checkers first.
func (p Position) opponentCheckerInHome() bool {
	for i := 0; i < 6; i++ {
		if p.Board[i] < 0 {
			return true
		}
	}
	return false
}

// onRollCheckerInOpponentHome reports whether X still has a checker in
// O's home board (points 19-24 from X's view), relevant when O bears off
// all checkers first.
func (p Position) onRollCheckerInOpponentHome() bool {
	for i := 18; i < 24; i++ {
		if p.Board[i] > 0 {
			return true
		}
	}
	return false
}

// Flip reverses point order and negates all counts, swapping the bar/off
// pairs, so that the former opponent becomes the side to move. Flip is
// an involution: p.Flip().Flip() == p.
func (p Position) Flip() Position {
	var f Position
	f.N = p.N
	f.XBar, f.OBar = p.OBar, p.XBar
	f.XOff, f.OOff = p.OOff, p.XOff
	for i := 0; i < NumPoints; i++ {
		f.Board[i] = -p.Board[NumPoints-1-i]
	}
	return f
}

// Equal reports whether two positions are identical in every field. This
// coincides with canonical-ID equality: the 80-bit encoding is the
// authoritative identity, and a correct Position never lets two
// structurally different boards share an ID.
func (p Position) Equal(o Position) bool {
	return p == o
}
