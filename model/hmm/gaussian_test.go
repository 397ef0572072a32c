package hmm

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/stat"
)

const epsilon = 0.004

func TestGaussianLogProb(t *testing.T) {

	g := newGaussian(3)
	copy(g.Mean, []float64{0.5, 1, 2})
	g.setVariance([]float64{1, 1, 1})

	obs := []float64{1, 1, 1}
	p := g.logProb(obs)
	t.Logf("LogProb: %f", p)

	expected := -3.3818
	if math.Abs(p-expected) > epsilon {
		t.Errorf("Wrong LogProb. Expected: [%f], Got: [%f]", expected, p)
	}
}

func TestGaussianEstimate(t *testing.T) {

	g := newGaussian(1)

	samples := []float64{1.2, 0.8, 1.1, 0.9, 1.0, 1.3, 0.7}
	for _, v := range samples {
		g.update([]float64{v}, 1.0)
	}
	g.estimate()

	mean, std := stat.MeanStdDev(samples, nil)
	if math.Abs(g.Mean[0]-mean) > epsilon {
		t.Errorf("mean: expected %f, got %f", mean, g.Mean[0])
	}
	// estimate uses the biased variance, stat.MeanStdDev the unbiased one.
	n := float64(len(samples))
	biased := std * math.Sqrt((n-1)/n)
	if math.Abs(g.StdDev[0]-biased) > epsilon {
		t.Errorf("sd: expected %f, got %f", biased, g.StdDev[0])
	}
}

func TestGaussianVarianceFloor(t *testing.T) {

	g := newGaussian(1)
	for i := 0; i < 5; i++ {
		g.update([]float64{2.0}, 1.0) // zero variance
	}
	g.estimate()

	if g.StdDev[0] < smallSD {
		t.Errorf("variance not floored: sd %e", g.StdDev[0])
	}
}

func TestGaussianClear(t *testing.T) {

	g := newGaussian(2)
	g.update([]float64{1, 2}, 1.0)
	g.clear()
	if g.numSamples() != 0 || g.sumx[0] != 0 {
		t.Errorf("clear did not reset accumulators")
	}
}
