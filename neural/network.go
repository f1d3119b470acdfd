// Package neural provides the feed-forward decision networks consulted by
// player state logic.
//
// Networks are loaded once from serialized weight documents and evaluated as
// pure functions. Inference output is advisory: states interpret and
// threshold it, the network itself carries no game rules.
package neural

import (
	"fmt"
	"math"

	"gopkg.in/yaml.v3"
)

// Layer holds the weights and biases of one fully connected layer.
// Weights are row-major: Weights[out][in].
type Layer struct {
	Weights [][]float32 `yaml:"weights"`
	Biases  []float32   `yaml:"biases"`
}

// Network is an immutable feed-forward network. It is never mutated after
// Load and may be shared across goroutines without locking.
type Network struct {
	sizes  []int
	layers []Layer
}

// weightsDoc is the on-disk YAML layout: layer sizes followed by the weight
// matrices and bias vectors.
type weightsDoc struct {
	Sizes  []int   `yaml:"sizes"`
	Layers []Layer `yaml:"layers"`
}

// Load parses a serialized weight document and validates its dimensions.
// Malformed input fails with a load error; it never produces a partially
// usable network.
func Load(data []byte) (*Network, error) {
	var doc weightsDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing weight document: %w", err)
	}

	if len(doc.Sizes) < 2 {
		return nil, fmt.Errorf("weight document needs at least 2 layer sizes, got %d", len(doc.Sizes))
	}
	if len(doc.Layers) != len(doc.Sizes)-1 {
		return nil, fmt.Errorf("weight document has %d layers, want %d for sizes %v",
			len(doc.Layers), len(doc.Sizes)-1, doc.Sizes)
	}

	for i, layer := range doc.Layers {
		in, out := doc.Sizes[i], doc.Sizes[i+1]
		if len(layer.Weights) != out {
			return nil, fmt.Errorf("layer %d: %d weight rows, want %d", i, len(layer.Weights), out)
		}
		for r, row := range layer.Weights {
			if len(row) != in {
				return nil, fmt.Errorf("layer %d row %d: %d weights, want %d", i, r, len(row), in)
			}
		}
		if len(layer.Biases) != out {
			return nil, fmt.Errorf("layer %d: %d biases, want %d", i, len(layer.Biases), out)
		}
	}

	return &Network{sizes: doc.Sizes, layers: doc.Layers}, nil
}

// NumInputs returns the input vector length the network expects.
func (n *Network) NumInputs() int {
	return n.sizes[0]
}

// NumOutputs returns the output vector length.
func (n *Network) NumOutputs() int {
	return n.sizes[len(n.sizes)-1]
}

// Forward computes a deterministic forward pass: weighted sums with tanh on
// hidden layers and a sigmoid on the output layer, so every output lands in
// [0, 1]. No state is retained between calls.
func (n *Network) Forward(inputs []float32) ([]float32, error) {
	if len(inputs) != n.NumInputs() {
		return nil, fmt.Errorf("input vector has %d values, network expects %d", len(inputs), n.NumInputs())
	}

	current := inputs
	for li, layer := range n.layers {
		next := make([]float32, len(layer.Biases))
		for i, row := range layer.Weights {
			sum := layer.Biases[i]
			for j, w := range row {
				sum += w * current[j]
			}
			if li == len(n.layers)-1 {
				next[i] = sigmoid(sum)
			} else {
				next[i] = tanh(sum)
			}
		}
		current = next
	}
	return current, nil
}

// tanh uses a fast rational approximation avoiding float64 conversion.
func tanh(x float32) float32 {
	if x > 4 {
		return 1
	}
	if x < -4 {
		return -1
	}
	x2 := x * x
	return x * (27 + x2) / (27 + 9*x2)
}

// sigmoid maps x to (0, 1).
func sigmoid(x float32) float32 {
	return float32(1 / (1 + math.Exp(float64(-x))))
}
