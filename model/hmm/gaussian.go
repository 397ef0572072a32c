package hmm

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	"github.com/Polarbeargo/AIND-Recognizer/floatx"
)

const (
	smallSD       = 0.01
	smallVariance = smallSD * smallSD
	minNumSamples = 2.0
)

// Gaussian is a multivariate Gaussian distribution with diagonal covariance,
// used as the output distribution of one HMM state. Exported fields are the
// persisted parameters; derived fields are rebuilt by Initialize.
type Gaussian struct {
	NE     int       `json:"num_elements"`
	Mean   []float64 `json:"mean"`
	StdDev []float64 `json:"sd"`

	variance    []float64
	varianceInv []float64
	sumx        []float64
	sumxsq      []float64
	tmpArray    []float64
	nSamples    float64
	const1      float64 // -(NE/2)log(2PI) Depends only on NE.
	const2      float64 // const1 - sum(log sigma_i) Also depends on variance.
}

func newGaussian(numElements int) *Gaussian {

	g := &Gaussian{NE: numElements}
	g.Initialize()
	return g
}

// Initialize allocates derived fields and recomputes the log-probability
// constants from the persisted parameters. Must be called after a model is
// read back from a file.
func (g *Gaussian) Initialize() error {

	if g.NE < 1 {
		return errors.Errorf("gaussian has invalid dimension %d", g.NE)
	}
	if g.Mean == nil {
		g.Mean = make([]float64, g.NE)
	}
	if g.StdDev == nil {
		g.StdDev = make([]float64, g.NE)
		floatx.Apply(floatx.SetValueFunc(smallSD), g.StdDev, nil)
	}
	if len(g.Mean) != g.NE || len(g.StdDev) != g.NE {
		return errors.Errorf("gaussian parameter length mismatch for dimension %d", g.NE)
	}

	g.variance = make([]float64, g.NE)
	g.varianceInv = make([]float64, g.NE)
	g.sumx = make([]float64, g.NE)
	g.sumxsq = make([]float64, g.NE)
	g.tmpArray = make([]float64, g.NE)

	floatx.Apply(floatx.Sq, g.StdDev, g.variance)
	g.const1 = -float64(g.NE) * math.Log(2.0*math.Pi) / 2.0
	g.setVariance(g.variance)
	return nil
}

func (g *Gaussian) logProb(obs []float64) (v float64) {

	for i, x := range obs {
		s := g.Mean[i] - x
		v += s * s * g.varianceInv[i] / 2.0
	}
	v = g.const2 - v
	return
}

// update accumulates the weighted sufficient statistics for one frame.
func (g *Gaussian) update(obs []float64, w float64) {

	floatx.Apply(floatx.ScaleFunc(w), obs, g.tmpArray)
	floats.Add(g.sumx, g.tmpArray)
	floatx.Apply(floatx.Sq, obs, g.tmpArray)
	floats.Scale(w, g.tmpArray)
	floats.Add(g.sumxsq, g.tmpArray)
	g.nSamples += w
}

// estimate recomputes mean and variance from the accumulated statistics.
// Callers must check numSamples first; starved states keep their parameters.
func (g *Gaussian) estimate() {

	floatx.Apply(floatx.ScaleFunc(1.0/g.nSamples), g.sumx, g.Mean)

	// sigma_sq = 1/n sumxsq - mean^2, floored to keep the model invertible.
	floatx.Apply(floatx.Sq, g.Mean, g.tmpArray)
	floatx.Apply(floatx.ScaleFunc(1.0/g.nSamples), g.sumxsq, g.variance)
	floats.Sub(g.variance, g.tmpArray)
	floatx.Apply(floatx.FloorFunc(smallVariance), g.variance, nil)

	g.setVariance(g.variance)
}

func (g *Gaussian) clear() {

	floatx.Clear(g.sumx)
	floatx.Clear(g.sumxsq)
	g.nSamples = 0
}

func (g *Gaussian) numSamples() float64 { return g.nSamples }

func (g *Gaussian) setVariance(variance []float64) {

	copy(g.variance, variance)
	floatx.Apply(floatx.Inv, g.variance, g.varianceInv)
	floatx.Apply(floatx.Sqrt, g.variance, g.StdDev)

	floatx.Apply(floatx.Log, g.variance, g.tmpArray)
	g.const2 = g.const1 - floats.Sum(g.tmpArray)/2.0
}
