package position

import "sort"

// candidate is an in-progress or finished sequence of half-moves applied
// from the starting position of a PossiblePositions call.
type candidate struct {
	pos        Position
	usedMoves  int
	usedPips   int
}

// PossiblePositions returns every terminal board reachable by playing the
// given dice roll to the fullest extent the rules allow, deduplicated by
// canonical position ID and sorted ascending by that ID. Each returned
// Position has already been flipped, so it is the opponent's turn to
// move in the result.
//
// A legal play uses as many of the roll's pips as possible; if only one
// die can be used, the larger must be used when either is legal alone.
// For non-doubles both half-move orderings are explored and merged by
// canonical ID, since the order itself is not observable in the result.
func (p Position) PossiblePositions(d Dice) []Position {
	var candidates []candidate

	orderings := [][]int{d.Pips()}
	if !d.IsDouble() {
		orderings = append(orderings, []int{d.Low, d.High})
	}
	for _, pips := range orderings {
		generateHalfMoves(pips, p, 0, 0, &candidates)
	}

	maxMoves := 0
	for _, c := range candidates {
		if c.usedMoves > maxMoves {
			maxMoves = c.usedMoves
		}
	}
	maxPips := 0
	for _, c := range candidates {
		if c.usedMoves == maxMoves && c.usedPips > maxPips {
			maxPips = c.usedPips
		}
	}

	seen := make(map[Position]struct{}, len(candidates))
	result := make([]Position, 0, len(candidates))
	for _, c := range candidates {
		if c.usedMoves != maxMoves || c.usedPips != maxPips {
			continue
		}
		flipped := c.pos.Flip()
		if _, ok := seen[flipped]; ok {
			continue
		}
		seen[flipped] = struct{}{}
		result = append(result, flipped)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].PositionID() < result[j].PositionID()
	})
	return result
}

// generateHalfMoves recursively applies the next pip in pips to every
// legal source, appending a candidate whenever a pip cannot be played at
// all (partial play) or the roll is exhausted (full play).
func generateHalfMoves(pips []int, pos Position, usedPips, usedMoves int, out *[]candidate) {
	if len(pips) == 0 {
		*out = append(*out, candidate{pos: pos, usedMoves: usedMoves, usedPips: usedPips})
		return
	}

	pip := pips[0]
	rest := pips[1:]
	played := false

	if pos.XBar > 0 {
		entry := 25 - pip
		if pos.canEnterAt(entry) {
			played = true
			generateHalfMoves(rest, pos.applyBarEntry(pip), usedPips+pip, usedMoves+1, out)
		}
	} else {
		for from := 1; from <= NumPoints; from++ {
			if pos.Board[from-1] > 0 && pos.legalHalfMove(from, pip) {
				played = true
				generateHalfMoves(rest, pos.applyHalfMove(from, pip), usedPips+pip, usedMoves+1, out)
			}
		}
	}

	if !played {
		*out = append(*out, candidate{pos: pos, usedMoves: usedMoves, usedPips: usedPips})
	}
}

// canEnterAt reports whether a checker on the bar may enter at the given
// point: legal unless the opponent holds 2 or more checkers there.
func (p Position) canEnterAt(entry int) bool {
	return p.Board[entry-1] > -2
}

// legalHalfMove reports whether a checker on point "from" may play the
// given pip: a normal move is legal unless it lands on 2+ opponent
// checkers; bearing off requires every checker to already be in the home
// board (points 1-6), and if the die overshoots the point it must be the
// highest occupied home point.
func (p Position) legalHalfMove(from, pip int) bool {
	dest := from - pip
	if dest >= 1 {
		return p.Board[dest-1] > -2
	}

	for pt := 7; pt <= NumPoints; pt++ {
		if p.Board[pt-1] > 0 {
			return false
		}
	}
	if dest == 0 {
		return true
	}
	return p.highestHomePoint() == from
}

// highestHomePoint returns the highest-numbered home-board point (1-6)
// still occupied by the on-roll side, or 0 if none remain.
func (p Position) highestHomePoint() int {
	for pt := 6; pt >= 1; pt-- {
		if p.Board[pt-1] > 0 {
			return pt
		}
	}
	return 0
}

// applyHalfMove returns the position after moving one checker from point
// "from" by "pip" pips, handling hits and bear-off.
func (p Position) applyHalfMove(from, pip int) Position {
	next := p
	next.Board[from-1]--
	dest := from - pip
	if dest <= 0 {
		next.XOff++
		return next
	}
	if next.Board[dest-1] == -1 {
		next.Board[dest-1] = 1
		next.OBar++
	} else {
		next.Board[dest-1]++
	}
	return next
}

// applyBarEntry returns the position after entering a checker from the
// bar at the point "pip" pips from the edge, handling hits.
func (p Position) applyBarEntry(pip int) Position {
	next := p
	next.XBar--
	entry := 25 - pip
	if next.Board[entry-1] == -1 {
		next.Board[entry-1] = 1
		next.OBar++
	} else {
		next.Board[entry-1]++
	}
	return next
}

// ValidateMove reports ErrInvalidMove if `to` is not among the legal
// successors of `from` under the given dice.
func ValidateMove(from Position, to Position, d Dice) error {
	for _, candidate := range from.PossiblePositions(d) {
		if candidate.Equal(to) {
			return nil
		}
	}
	return ErrInvalidMove
}
