package neural

import (
	"strings"
	"testing"
)

const validDoc = `
sizes: [2, 3, 1]
layers:
  - weights:
      - [0.5, -0.5]
      - [1.0, 0.25]
      - [-0.75, 0.1]
    biases: [0.1, -0.1, 0.0]
  - weights:
      - [0.3, -0.2, 0.9]
    biases: [0.05]
`

func TestLoad(t *testing.T) {
	net, err := Load([]byte(validDoc))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if net.NumInputs() != 2 {
		t.Errorf("NumInputs = %d, want 2", net.NumInputs())
	}
	if net.NumOutputs() != 1 {
		t.Errorf("NumOutputs = %d, want 1", net.NumOutputs())
	}
}

func TestLoadMalformed(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not yaml", "{{{"},
		{"too few sizes", "sizes: [4]\nlayers: []"},
		{"layer count mismatch", "sizes: [2, 3, 1]\nlayers: []"},
		{"row count mismatch", `
sizes: [2, 2]
layers:
  - weights:
      - [0.1, 0.2]
    biases: [0.0, 0.0]
`},
		{"row width mismatch", `
sizes: [2, 1]
layers:
  - weights:
      - [0.1, 0.2, 0.3]
    biases: [0.0]
`},
		{"bias count mismatch", `
sizes: [2, 1]
layers:
  - weights:
      - [0.1, 0.2]
    biases: [0.0, 0.0]
`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load([]byte(tt.doc)); err == nil {
				t.Error("Load accepted malformed document")
			}
		})
	}
}

func TestForwardDeterministic(t *testing.T) {
	net, err := Load([]byte(validDoc))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	inputs := []float32{0.4, -0.7}
	a, err := net.Forward(inputs)
	if err != nil {
		t.Fatalf("Forward failed: %v", err)
	}
	b, err := net.Forward(inputs)
	if err != nil {
		t.Fatalf("Forward failed: %v", err)
	}
	if a[0] != b[0] {
		t.Errorf("Forward is not deterministic: %f vs %f", a[0], b[0])
	}
}

func TestForwardOutputRange(t *testing.T) {
	net, err := Load([]byte(validDoc))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	out, err := net.Forward([]float32{5, -5})
	if err != nil {
		t.Fatalf("Forward failed: %v", err)
	}
	if out[0] < 0 || out[0] > 1 {
		t.Errorf("sigmoid output out of [0,1]: %f", out[0])
	}
}

func TestForwardInputLength(t *testing.T) {
	net, err := Load([]byte(validDoc))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if _, err := net.Forward([]float32{1}); err == nil {
		t.Error("Forward accepted wrong input length")
	}
}

func TestForNameCaches(t *testing.T) {
	a, err := ForName("forward_decision")
	if err != nil {
		t.Fatalf("ForName failed: %v", err)
	}
	b, err := ForName("forward_decision")
	if err != nil {
		t.Fatalf("ForName failed: %v", err)
	}
	if a != b {
		t.Error("ForName returned different instances for the same name")
	}
}

func TestForNameMissing(t *testing.T) {
	_, err := ForName("no_such_network")
	if err == nil {
		t.Fatal("ForName accepted unknown name")
	}
	if !strings.Contains(err.Error(), "no_such_network") {
		t.Errorf("error does not name the network: %v", err)
	}
}

func TestEmbeddedNetworksLoad(t *testing.T) {
	for _, name := range []string{
		"forward_decision",
		"midfielder_decision",
		"defender_decision",
		"goalkeeper_decision",
	} {
		net, err := ForName(name)
		if err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		if net.NumInputs() != 6 {
			t.Errorf("%s: NumInputs = %d, want 6", name, net.NumInputs())
		}
	}
}

func BenchmarkForward(b *testing.B) {
	net, err := ForName("forward_decision")
	if err != nil {
		b.Fatalf("ForName failed: %v", err)
	}
	inputs := make([]float32, net.NumInputs())
	for i := range inputs {
		inputs[i] = 0.5
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := net.Forward(inputs); err != nil {
			b.Fatal(err)
		}
	}
}
