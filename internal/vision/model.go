package vision

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
)

// ErrShape is returned when an input tensor does not match the model's
// expected input dimension.
var ErrShape = errors.New("tensor shape mismatch")

// ErrModelFormat is returned when a model file cannot be parsed.
var ErrModelFormat = errors.New("invalid model file")

// modelMagic identifies an exported model container.
var modelMagic = [4]byte{'A', 'G', 'N', 'T'}

const modelVersion = 1

// Limits guarding against corrupt headers allocating absurd amounts.
const (
	maxLayers   = 64
	maxLayerDim = 1 << 22
)

// layer is one fully connected layer: out = weights·in + bias.
// Weights are row-major, one row per output unit.
type layer struct {
	in, out int
	weights []float32
	bias    []float32
}

// Model is a frozen feed-forward network exported by the training
// pipeline. It is loaded once at startup and is safe for concurrent use:
// Predict only reads the weights.
type Model struct {
	layers []layer
}

// Load reads a model container from path. Any parse failure is fatal to
// the caller by contract; the model is never reloaded per request.
func Load(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open model file: %w", err)
	}
	defer f.Close()

	m, err := read(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("model file %s: %w", path, err)
	}
	return m, nil
}

func read(r io.Reader) (*Model, error) {
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelFormat, err)
	}
	if magic != modelMagic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrModelFormat, magic)
	}

	var version, layerCount uint32
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelFormat, err)
	}
	if version != modelVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrModelFormat, version)
	}
	if err := binary.Read(r, binary.LittleEndian, &layerCount); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelFormat, err)
	}
	if layerCount == 0 || layerCount > maxLayers {
		return nil, fmt.Errorf("%w: layer count %d", ErrModelFormat, layerCount)
	}

	m := &Model{layers: make([]layer, 0, layerCount)}
	prevOut := -1
	for i := uint32(0); i < layerCount; i++ {
		var in, out uint32
		if err := binary.Read(r, binary.LittleEndian, &in); err != nil {
			return nil, fmt.Errorf("%w: layer %d header: %v", ErrModelFormat, i, err)
		}
		if err := binary.Read(r, binary.LittleEndian, &out); err != nil {
			return nil, fmt.Errorf("%w: layer %d header: %v", ErrModelFormat, i, err)
		}
		if in == 0 || out == 0 || in > maxLayerDim || out > maxLayerDim {
			return nil, fmt.Errorf("%w: layer %d dims %dx%d", ErrModelFormat, i, in, out)
		}
		if prevOut >= 0 && int(in) != prevOut {
			return nil, fmt.Errorf("%w: layer %d input %d does not chain with previous output %d", ErrModelFormat, i, in, prevOut)
		}

		l := layer{
			in:      int(in),
			out:     int(out),
			weights: make([]float32, int(in)*int(out)),
			bias:    make([]float32, out),
		}
		if err := binary.Read(r, binary.LittleEndian, l.weights); err != nil {
			return nil, fmt.Errorf("%w: layer %d weights: %v", ErrModelFormat, i, err)
		}
		if err := binary.Read(r, binary.LittleEndian, l.bias); err != nil {
			return nil, fmt.Errorf("%w: layer %d bias: %v", ErrModelFormat, i, err)
		}

		m.layers = append(m.layers, l)
		prevOut = int(out)
	}

	return m, nil
}

// InputDim returns the expected input tensor length.
func (m *Model) InputDim() int { return m.layers[0].in }

// Classes returns the size of the output distribution.
func (m *Model) Classes() int { return m.layers[len(m.layers)-1].out }

// Predict runs one forward pass over the tensor, applies softmax, and
// returns the argmax index with its probability.
func (m *Model) Predict(tensor []float32) (int, float64, error) {
	if len(tensor) != m.InputDim() {
		return 0, 0, fmt.Errorf("%w: got %d values, model expects %d", ErrShape, len(tensor), m.InputDim())
	}

	v := make([]float64, len(tensor))
	for i, x := range tensor {
		v[i] = float64(x)
	}

	for i, l := range m.layers {
		v = l.forward(v)
		if i < len(m.layers)-1 {
			relu(v)
		}
	}

	probs := softmax(v)
	idx := 0
	for i, p := range probs {
		if p > probs[idx] {
			idx = i
		}
	}
	return idx, probs[idx], nil
}

func (l layer) forward(in []float64) []float64 {
	out := make([]float64, l.out)
	for row := 0; row < l.out; row++ {
		sum := float64(l.bias[row])
		w := l.weights[row*l.in : (row+1)*l.in]
		for col, x := range in {
			sum += float64(w[col]) * x
		}
		out[row] = sum
	}
	return out
}

func relu(v []float64) {
	for i, x := range v {
		if x < 0 {
			v[i] = 0
		}
	}
}

// softmax is computed against the max logit for numeric stability.
func softmax(v []float64) []float64 {
	maxLogit := v[0]
	for _, x := range v[1:] {
		if x > maxLogit {
			maxLogit = x
		}
	}

	out := make([]float64, len(v))
	var sum float64
	for i, x := range v {
		e := math.Exp(x - maxLogit)
		out[i] = e
		sum += e
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}

// ConfidencePercent converts a probability into the user-facing percent
// value, rounded to two decimal places.
func ConfidencePercent(p float64) float64 {
	return math.Round(p*10000) / 100
}
