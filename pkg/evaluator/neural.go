package evaluator

import (
	"fmt"

	"github.com/go-bkgm/bkgm/internal/neuralnet"
	"github.com/go-bkgm/bkgm/pkg/position"
	"github.com/go-bkgm/bkgm/pkg/probabilities"
)

// Predictor stands in for an external tensor runtime: given the
// 202-float feature vector FeatureVector builds, it returns the
// six-way win/loss distribution. internal/neuralnet.NeuralNet
// satisfies this through the netPredictor adapter; a production deployment could instead wire
// in an ONNX or similar runtime without pkg/evaluator needing to
// change.
type Predictor interface {
	Predict(features []float32) [6]float32
}

// netPredictor adapts *neuralnet.NeuralNet to Predictor.
type netPredictor struct {
	net *neuralnet.NeuralNet
}

func (p netPredictor) Predict(features []float32) [6]float32 {
	out := p.net.Evaluate(features)
	var result [6]float32
	copy(result[:], out)
	return result
}

// NeuralEvaluator evaluates positions via a Predictor over the
// 202-float feature encoding internal/neuralnet.FeatureVector builds.
type NeuralEvaluator struct {
	predictor Predictor
}

// NewNeuralEvaluator wraps an arbitrary Predictor.
func NewNeuralEvaluator(predictor Predictor) NeuralEvaluator {
	return NeuralEvaluator{predictor: predictor}
}

// NewNeuralEvaluatorFromWeights loads the reference gonum-backed net
// from path and wraps it as a NeuralEvaluator. Returns
// ErrModelUnavailable if the weights file can't be loaded.
func NewNeuralEvaluatorFromWeights(path string) (NeuralEvaluator, error) {
	net, err := neuralnet.LoadWeights(path)
	if err != nil {
		return NeuralEvaluator{}, fmt.Errorf("%w: %s", ErrModelUnavailable, err)
	}
	return NewNeuralEvaluator(netPredictor{net: net}), nil
}

func (e NeuralEvaluator) Eval(pos position.Position) probabilities.Probabilities {
	if p, ok := terminal(pos); ok {
		return p
	}
	features := neuralnet.FeatureVector(pos)
	out := e.predictor.Predict(features[:])
	return probabilities.Probabilities{
		WinNormal:      out[0],
		WinGammon:      out[1],
		WinBackgammon:  out[2],
		LoseNormal:     out[3],
		LoseGammon:     out[4],
		LoseBackgammon: out[5],
	}
}

func (e NeuralEvaluator) BestPosition(pos position.Position, dice position.Dice) position.Position {
	return bestPosition(e, pos, dice)
}
