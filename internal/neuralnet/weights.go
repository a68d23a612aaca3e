package neuralnet

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
)

// Binary weights file constants, kept from the gnubg weights format
// this package's single-net layout is adapted from.
const (
	WeightsMagicBinary   = 472.3782
	WeightsVersionBinary = 1.01
)

// LoadWeights opens a single-net binary weights file at path: a magic
// number, a version, then one LoadBinary-shaped net.
func LoadWeights(path string) (*NeuralNet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("neuralnet: opening weights file: %w", err)
	}
	defer f.Close()
	return LoadWeightsFromReader(f)
}

// LoadWeightsFromReader loads a single net from r, validating the
// magic number and version header before delegating to LoadBinary.
func LoadWeightsFromReader(r io.Reader) (*NeuralNet, error) {
	var magic, version float32
	if err := binary.Read(r, binary.LittleEndian, &magic); err != nil {
		return nil, fmt.Errorf("neuralnet: reading magic number: %w", err)
	}
	if math.Abs(float64(magic)-WeightsMagicBinary) > 0.001 {
		return nil, fmt.Errorf("neuralnet: invalid magic number %f (expected %f)", magic, WeightsMagicBinary)
	}
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return nil, fmt.Errorf("neuralnet: reading version: %w", err)
	}
	if version < 1.0 || version > 2.0 {
		return nil, fmt.Errorf("neuralnet: unsupported weights version %f", version)
	}

	nn, err := LoadBinary(r)
	if err != nil {
		return nil, fmt.Errorf("neuralnet: loading net: %w", err)
	}
	if err := nn.Validate(); err != nil {
		return nil, err
	}
	return nn, nil
}

// Validate checks the loaded net has the input/output width this
// package's FeatureVector and pkg/evaluator's six-way output expect.
func (nn *NeuralNet) Validate() error {
	if nn.CInput != NumInputs {
		return fmt.Errorf("neuralnet: net has %d inputs, expected %d", nn.CInput, NumInputs)
	}
	if nn.COutput != NumOutputs {
		return fmt.Errorf("neuralnet: net has %d outputs, expected %d", nn.COutput, NumOutputs)
	}
	return nil
}

// String returns a summary of the loaded net's shape.
func (nn *NeuralNet) String() string {
	return fmt.Sprintf("NeuralNet{%d -> %d -> %d}", nn.CInput, nn.CHidden, nn.COutput)
}
