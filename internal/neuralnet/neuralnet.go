// Package neuralnet implements single-hidden-layer sigmoid network
// inference for position evaluation: the reference implementation
// pkg/evaluator's NeuralEvaluator falls back to when no external model
// runtime is wired in.
package neuralnet

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"gonum.org/v1/gonum/mat"
)

// NeuralNet is a single fully-connected hidden layer with sigmoid
// activations at both layers, the architecture gnubg's neural nets
// use.
type NeuralNet struct {
	CInput      uint32
	CHidden     uint32
	COutput     uint32
	RBetaHidden float32
	RBetaOutput float32

	hiddenWeight *mat.Dense // CHidden x CInput
	outputWeight *mat.Dense // COutput x CHidden
	hiddenBias   *mat.VecDense
	outputBias   *mat.VecDense
}

// Evaluate runs the forward pass and returns the COutput-wide output.
func (nn *NeuralNet) Evaluate(input []float32) []float32 {
	in := make([]float64, len(input))
	for i, x := range input {
		in[i] = float64(x)
	}
	inVec := mat.NewVecDense(len(in), in)

	var hidden mat.VecDense
	hidden.MulVec(nn.hiddenWeight, inVec)
	for i := 0; i < hidden.Len(); i++ {
		activity := float32(hidden.AtVec(i)) + float32(nn.hiddenBias.AtVec(i))
		hidden.SetVec(i, float64(sigmoid(-nn.RBetaHidden*activity)))
	}

	var output mat.VecDense
	output.MulVec(nn.outputWeight, &hidden)
	out := make([]float32, nn.COutput)
	for i := range out {
		activity := float32(output.AtVec(i)) + float32(nn.outputBias.AtVec(i))
		out[i] = sigmoid(-nn.RBetaOutput * activity)
	}
	return out
}

func sigmoid(x float32) float32 {
	return float32(1.0 / (1.0 + math.Exp(float64(x))))
}

// LoadBinary reads a single net from the gnubg-style binary layout:
// three uint32 dimensions, an int32 training flag, two float32 betas,
// then the hidden weights, output weights, hidden thresholds and
// output thresholds in that order, all little-endian. Weight order
// within each block matches gnubg's own traversal: hidden weights are
// stored input-major (all CHidden weights for input 0, then input 1,
// ...), output weights output-major (all CHidden weights for output
// 0, then output 1, ...).
func LoadBinary(r io.Reader) (*NeuralNet, error) {
	nn := &NeuralNet{}
	var nTrained int32

	for _, f := range []any{&nn.CInput, &nn.CHidden, &nn.COutput, &nTrained, &nn.RBetaHidden, &nn.RBetaOutput} {
		if err := binary.Read(r, binary.LittleEndian, f); err != nil {
			return nil, fmt.Errorf("neuralnet: reading header: %w", err)
		}
	}
	if nn.CInput < 1 || nn.CHidden < 1 || nn.COutput < 1 {
		return nil, fmt.Errorf("neuralnet: invalid dimensions %d/%d/%d", nn.CInput, nn.CHidden, nn.COutput)
	}
	if nn.RBetaHidden <= 0 || nn.RBetaOutput <= 0 {
		return nil, fmt.Errorf("neuralnet: invalid beta values %f/%f", nn.RBetaHidden, nn.RBetaOutput)
	}

	hiddenWeight := make([]float64, nn.CInput*nn.CHidden)
	if err := readFloat32sAsFloat64(r, hiddenWeight); err != nil {
		return nil, fmt.Errorf("neuralnet: reading hidden weights: %w", err)
	}
	outputWeight := make([]float64, nn.CHidden*nn.COutput)
	if err := readFloat32sAsFloat64(r, outputWeight); err != nil {
		return nil, fmt.Errorf("neuralnet: reading output weights: %w", err)
	}
	hiddenThreshold := make([]float64, nn.CHidden)
	if err := readFloat32sAsFloat64(r, hiddenThreshold); err != nil {
		return nil, fmt.Errorf("neuralnet: reading hidden thresholds: %w", err)
	}
	outputThreshold := make([]float64, nn.COutput)
	if err := readFloat32sAsFloat64(r, outputThreshold); err != nil {
		return nil, fmt.Errorf("neuralnet: reading output thresholds: %w", err)
	}

	hw := mat.NewDense(int(nn.CHidden), int(nn.CInput), nil)
	for i := 0; i < int(nn.CInput); i++ {
		for j := 0; j < int(nn.CHidden); j++ {
			hw.Set(j, i, hiddenWeight[i*int(nn.CHidden)+j])
		}
	}
	ow := mat.NewDense(int(nn.COutput), int(nn.CHidden), nil)
	for i := 0; i < int(nn.COutput); i++ {
		for j := 0; j < int(nn.CHidden); j++ {
			ow.Set(i, j, outputWeight[i*int(nn.CHidden)+j])
		}
	}

	nn.hiddenWeight = hw
	nn.outputWeight = ow
	nn.hiddenBias = mat.NewVecDense(len(hiddenThreshold), hiddenThreshold)
	nn.outputBias = mat.NewVecDense(len(outputThreshold), outputThreshold)
	return nn, nil
}

func readFloat32sAsFloat64(r io.Reader, dst []float64) error {
	raw := make([]float32, len(dst))
	if err := binary.Read(r, binary.LittleEndian, raw); err != nil {
		return err
	}
	for i, f := range raw {
		dst[i] = float64(f)
	}
	return nil
}
