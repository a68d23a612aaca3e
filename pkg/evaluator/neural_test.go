package evaluator

import (
	"testing"

	"github.com/go-bkgm/bkgm/internal/neuralnet"
	"github.com/go-bkgm/bkgm/pkg/position"
)

// fakePredictor returns a fixed distribution regardless of input, so the
// wiring between FeatureVector and Predictor can be checked without a
// real weights file.
type fakePredictor struct {
	out [6]float32
}

func (f fakePredictor) Predict(features []float32) [6]float32 {
	return f.out
}

func TestNeuralEvaluatorWiresPredictorOutputThrough(t *testing.T) {
	want := [6]float32{0.5, 0.1, 0.05, 0.2, 0.1, 0.05}
	e := NewNeuralEvaluator(fakePredictor{out: want})
	got := e.Eval(position.New())
	if got.ToSlice() != want {
		t.Errorf("Eval() = %+v, want %+v", got.ToSlice(), want)
	}
}

func TestNeuralEvaluatorReturnsExactTerminal(t *testing.T) {
	e := NewNeuralEvaluator(fakePredictor{out: [6]float32{0.9, 0, 0, 0.1, 0, 0}})
	var p position.Position
	p.N = 1
	p.XOff = 1
	got := e.Eval(p)
	if got.WinNormal+got.WinGammon+got.WinBackgammon != 1 {
		t.Errorf("Eval(terminal) = %+v, want a pure win split ignoring the predictor", got)
	}
}

func TestNeuralEvaluatorFeatureVectorLengthMatchesNet(t *testing.T) {
	v := neuralnet.FeatureVector(position.New())
	if len(v) != neuralnet.NumInputs {
		t.Errorf("FeatureVector length = %d, want %d", len(v), neuralnet.NumInputs)
	}
}
