// Package floatx provides shape helpers and elementwise transforms for
// slices of float64. It complements gonum/floats, which operates on flat
// vectors and has no notion of 2D slice allocation or checking.
package floatx

import "math"

type Error string

func (err Error) Error() string { return string(err) }

const (
	ErrZeroLength = Error("floatx: zero length in slice definition")
	ErrLength     = Error("floatx: length mismatch")
)

// ApplyFunc transforms the element v found at index n.
type ApplyFunc func(n int, v float64) float64

var Log = func(n int, v float64) float64 { return math.Log(v) }
var Exp = func(n int, v float64) float64 { return math.Exp(v) }
var Sq = func(n int, v float64) float64 { return v * v }
var Sqrt = func(n int, v float64) float64 { return math.Sqrt(v) }
var Inv = func(n int, v float64) float64 { return 1.0 / v }

func ScaleFunc(f float64) ApplyFunc {
	return func(n int, v float64) float64 { return v * f }
}
func SetValueFunc(f float64) ApplyFunc {
	return func(n int, v float64) float64 { return f }
}

// FloorFunc floors values at f.
func FloorFunc(f float64) ApplyFunc {
	return func(n int, v float64) float64 {
		if v < f {
			return f
		}
		return v
	}
}

func MakeFloat2D(n1, n2 int) [][]float64 {

	s := make([][]float64, n1)
	for i := 0; i < n1; i++ {
		s[i] = make([]float64, n2)
	}

	return s
}

// Check2D panics on ragged or empty slices and returns the dimensions.
func Check2D(s [][]float64) (n1, n2 int) {

	n1 = len(s)
	if n1 == 0 {
		panic(ErrZeroLength)
	}

	n2 = len(s[0])
	if n2 == 0 {
		panic(ErrZeroLength)
	}
	for _, row := range s {
		if len(row) != n2 {
			panic(ErrLength)
		}
	}

	return n1, n2
}

// Apply function to 1D slice. If out slice is nil, the function is applied in place.
func Apply(fn ApplyFunc, in, out []float64) []float64 {

	n := len(in)
	if n == 0 {
		panic(ErrZeroLength)
	}
	if out == nil {
		out = in
	}
	if len(out) != n {
		panic(ErrLength)
	}
	for i, v := range in {
		out[i] = fn(i, v)
	}
	return out
}

func Clear(s []float64) {
	for i := range s {
		s[i] = 0
	}
}

func Clear2D(s [][]float64) {
	for _, row := range s {
		Clear(row)
	}
}
