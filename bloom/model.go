package bloom

import (
	"context"
	"errors"
	"math"
	"math/rand"
)

// regressor is a small feed-forward network mapping a look-back window of
// scaled values to the next scaled value: window -> tanh hidden layer ->
// linear output, trained with plain SGD. It is built fresh per forecast call
// and its weights are initialized from a fixed seed, so training and
// inference are deterministic for identical input.
type regressor struct {
	inputSize  int
	hiddenSize int

	w1 [][]float64 // hiddenSize x inputSize
	b1 []float64
	w2 []float64 // hiddenSize
	b2 float64

	learningRate float64
}

const (
	regressorHidden = 32
	regressorEpochs = 8
	regressorLR     = 0.05
	regressorSeed   = 42
)

func newRegressor(inputSize int) *regressor {
	rng := rand.New(rand.NewSource(regressorSeed))
	m := &regressor{
		inputSize:    inputSize,
		hiddenSize:   regressorHidden,
		w1:           make([][]float64, regressorHidden),
		b1:           make([]float64, regressorHidden),
		w2:           make([]float64, regressorHidden),
		learningRate: regressorLR,
	}
	// Xavier-style init keeps tanh units out of saturation.
	scale1 := math.Sqrt(1.0 / float64(inputSize))
	scale2 := math.Sqrt(1.0 / float64(regressorHidden))
	for h := 0; h < m.hiddenSize; h++ {
		m.w1[h] = make([]float64, inputSize)
		for i := range m.w1[h] {
			m.w1[h][i] = (rng.Float64()*2 - 1) * scale1
		}
		m.w2[h] = (rng.Float64()*2 - 1) * scale2
	}
	return m
}

// train runs SGD over the pairs in order for a fixed number of epochs,
// checking for cancellation between epochs.
func (m *regressor) train(ctx context.Context, inputs [][]float64, targets []float64) error {
	if len(inputs) == 0 || len(inputs) != len(targets) {
		return errors.New("empty or mismatched training set")
	}
	hidden := make([]float64, m.hiddenSize)
	for epoch := 0; epoch < regressorEpochs; epoch++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		for n, x := range inputs {
			out := m.forward(x, hidden)
			// Squared-error gradient.
			dOut := out - targets[n]
			for h := 0; h < m.hiddenSize; h++ {
				dHidden := dOut * m.w2[h] * (1 - hidden[h]*hidden[h])
				m.w2[h] -= m.learningRate * dOut * hidden[h]
				for i, xi := range x {
					m.w1[h][i] -= m.learningRate * dHidden * xi
				}
				m.b1[h] -= m.learningRate * dHidden
			}
			m.b2 -= m.learningRate * dOut
		}
	}
	return nil
}

// predict returns the next scaled value for one window.
func (m *regressor) predict(x []float64) float64 {
	hidden := make([]float64, m.hiddenSize)
	return m.forward(x, hidden)
}

func (m *regressor) forward(x []float64, hidden []float64) float64 {
	for h := 0; h < m.hiddenSize; h++ {
		sum := m.b1[h]
		for i, xi := range x {
			sum += m.w1[h][i] * xi
		}
		hidden[h] = math.Tanh(sum)
	}
	out := m.b2
	for h := 0; h < m.hiddenSize; h++ {
		out += m.w2[h] * hidden[h]
	}
	return out
}
