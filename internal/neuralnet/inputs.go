package neuralnet

import "github.com/go-bkgm/bkgm/pkg/position"

// NumInputs is the input width of the single net this package
// evaluates: x_off, o_off, then 25 four-bucket slots per side (bar
// first, then points 1-24).
const NumInputs = 202

// NumOutputs is the six-way win/loss distribution every net in this
// package produces.
const NumOutputs = 6

// bucket4 is the four-wide encoding one point's checker count is
// spread across: bucket 1 fires alone for a single checker, bucket 2
// for exactly two, and three or more sets bucket 3 plus the overflow
// count beyond three in bucket 4.
func bucket4(n int8) [4]float32 {
	switch {
	case n <= 0:
		return [4]float32{0, 0, 0, 0}
	case n == 1:
		return [4]float32{1, 0, 0, 0}
	case n == 2:
		return [4]float32{0, 1, 0, 0}
	default:
		return [4]float32{0, 0, 1, float32(n - 3)}
	}
}

// FeatureVector builds the NumInputs-wide input layout a NeuralNet
// expects from a position, from the side-to-move's perspective. The
// field order (x_off, o_off, x's bar then points 1-24, o's bar then
// points 1-24) matches the labeling a reference evaluator's input_vec
// uses, so weight files trained against that labeling load directly.
func FeatureVector(p position.Position) [NumInputs]float32 {
	var v [NumInputs]float32
	v[0] = float32(p.XOff)
	v[1] = float32(p.OOff)

	i := 2
	xBar := bucket4(p.XBar)
	copy(v[i:i+4], xBar[:])
	i += 4
	for pt := 0; pt < position.NumPoints; pt++ {
		var b [4]float32
		if c := p.Board[pt]; c > 0 {
			b = bucket4(c)
		}
		copy(v[i:i+4], b[:])
		i += 4
	}

	oBar := bucket4(p.OBar)
	copy(v[i:i+4], oBar[:])
	i += 4
	for pt := 0; pt < position.NumPoints; pt++ {
		var b [4]float32
		if c := p.Board[pt]; c < 0 {
			b = bucket4(-c)
		}
		copy(v[i:i+4], b[:])
		i += 4
	}

	return v
}
