package recognizer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Polarbeargo/AIND-Recognizer/model"
)

type stubScorer struct {
	logL float64
	err  error
}

func (s *stubScorer) LogProb(x [][]float64, lengths []int) (float64, error) {
	return s.logL, s.err
}

func item(id string) Item {
	return Item{ID: id, X: [][]float64{{1, 2}}, Lengths: []int{1}}
}

func TestRecognize(t *testing.T) {

	set := NewModelSet()
	require.NoError(t, set.Add("cat", &stubScorer{logL: -50}))
	require.NoError(t, set.Add("dog", &stubScorer{logL: -10}))

	preds := Recognize(set, []Item{item("0"), item("1")})
	require.Len(t, preds, 2)

	for _, p := range preds {
		assert.True(t, p.OK)
		assert.Equal(t, "dog", p.Guess)
		assert.Equal(t, -50.0, p.Scores["cat"])
		assert.Equal(t, -10.0, p.Scores["dog"])
	}
}

func TestRecognizeTieBreak(t *testing.T) {

	// Two classes with identical scores: the first one added must keep
	// the guess, whichever it is.
	first := NewModelSet()
	require.NoError(t, first.Add("cat", &stubScorer{logL: -10}))
	require.NoError(t, first.Add("dog", &stubScorer{logL: -10}))

	second := NewModelSet()
	require.NoError(t, second.Add("dog", &stubScorer{logL: -10}))
	require.NoError(t, second.Add("cat", &stubScorer{logL: -10}))

	assert.Equal(t, "cat", Recognize(first, []Item{item("0")})[0].Guess)
	assert.Equal(t, "dog", Recognize(second, []Item{item("0")})[0].Guess)

	// Without a tie the insertion order must not matter.
	firstClear := NewModelSet()
	require.NoError(t, firstClear.Add("cat", &stubScorer{logL: -20}))
	require.NoError(t, firstClear.Add("dog", &stubScorer{logL: -10}))

	secondClear := NewModelSet()
	require.NoError(t, secondClear.Add("dog", &stubScorer{logL: -10}))
	require.NoError(t, secondClear.Add("cat", &stubScorer{logL: -20}))

	assert.Equal(t, "dog", Recognize(firstClear, []Item{item("0")})[0].Guess)
	assert.Equal(t, "dog", Recognize(secondClear, []Item{item("0")})[0].Guess)
}

func TestRecognizeScoringFailure(t *testing.T) {

	set := NewModelSet()
	require.NoError(t, set.Add("cat", &stubScorer{err: model.Scoringf("dim mismatch")}))
	require.NoError(t, set.Add("dog", &stubScorer{logL: -1e9}))

	preds := Recognize(set, []Item{item("0")})
	p := preds[0]

	// The failed class records -Inf and never wins.
	assert.True(t, math.IsInf(p.Scores["cat"], -1))
	assert.Equal(t, "dog", p.Guess)
	assert.True(t, p.OK)
}

func TestRecognizeNoUsableModel(t *testing.T) {

	set := NewModelSet()
	require.NoError(t, set.Add("cat", &stubScorer{err: model.Scoringf("broken")}))

	preds := Recognize(set, []Item{item("0")})
	p := preds[0]

	assert.False(t, p.OK)
	assert.Equal(t, "", p.Guess)
	assert.True(t, math.IsInf(p.Scores["cat"], -1))
}

func TestModelSetAdd(t *testing.T) {

	set := NewModelSet()
	require.NoError(t, set.Add("cat", &stubScorer{}))
	assert.Error(t, set.Add("cat", &stubScorer{}))
	assert.Error(t, set.Add("dog", nil))
	assert.Equal(t, []string{"cat"}, set.Labels())
}
