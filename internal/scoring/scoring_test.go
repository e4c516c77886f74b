package scoring

import (
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/closest/internal/models"
)

func answersOf(values ...int) []*models.Answer {
	answers := make([]*models.Answer, len(values))
	for i, v := range values {
		answers[i] = &models.Answer{ID: int64(i + 1), RoundID: 1, UserName: "p", Value: v, SubmittedAt: time.Unix(0, 0)}
	}
	return answers
}

func TestScoreThreePlayers(t *testing.T) {
	// Alice 40, Bob 60, Carol 50
	res, err := Score(answersOf(40, 60, 50))
	require.NoError(t, err)

	want := &Result{Mean: 50, WinningValue: 50, WinnerIDs: []int64{3}, Total: 3}
	if diff := cmp.Diff(want, res); diff != "" {
		t.Errorf("Score() mismatch (-want +got):\n%s", diff)
	}
}

func TestScoreTiesAreAllWinners(t *testing.T) {
	// mean 50, 40 and 60 are equally far
	res, err := Score(answersOf(40, 60))
	require.NoError(t, err)

	assert.Equal(t, 50, res.WinningValue)
	assert.Equal(t, []int64{1, 2}, res.WinnerIDs)
}

func TestScoreWinnerIDsAscendingRegardlessOfOrder(t *testing.T) {
	answers := []*models.Answer{
		{ID: 9, Value: 10},
		{ID: 2, Value: 30},
		{ID: 5, Value: 10},
	}
	res, err := Score(answers)
	require.NoError(t, err)

	// mean 16.67 -> 17; 10 is 7 away, 30 is 13 away
	assert.Equal(t, 17, res.WinningValue)
	assert.Equal(t, []int64{5, 9}, res.WinnerIDs)
}

func TestScoreNoAnswers(t *testing.T) {
	_, err := Score(nil)
	assert.ErrorIs(t, err, ErrNoAnswers)

	_, err = Mean([]int{})
	assert.ErrorIs(t, err, ErrNoAnswers)
}

func TestWinningValueRoundsHalfToEven(t *testing.T) {
	cases := map[float64]int{
		0:      0,
		0.5:    0,
		1.5:    2,
		2.5:    2,
		49.5:   50,
		50.5:   50,
		50.51:  51,
		99.5:   100,
		100:    100,
		33.333: 33,
	}
	for mean, want := range cases {
		assert.Equal(t, want, WinningValue(mean), "mean %v", mean)
	}
}

func TestMeanIsOrderIndependent(t *testing.T) {
	a, err := Mean([]int{1, 2, 100, 7})
	require.NoError(t, err)
	b, err := Mean([]int{100, 7, 2, 1})
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.InDelta(t, 27.5, a, 1e-12)
}

func TestHistogram(t *testing.T) {
	d, err := Histogram(answersOf(40, 60, 50))
	require.NoError(t, err)

	assert.Len(t, d.Counts, 101)
	assert.Equal(t, 3, d.Total())
	for v, c := range d.Counts {
		switch v {
		case 40, 50, 60:
			assert.Equal(t, 1, c, "value %d", v)
		default:
			assert.Zero(t, c, "value %d", v)
		}
	}
}

func TestHistogramEdges(t *testing.T) {
	d, err := Histogram(answersOf(0, 100, 100))
	require.NoError(t, err)
	assert.Equal(t, 1, d.Counts[0])
	assert.Equal(t, 2, d.Counts[100])
}

func TestHistogramRejectsCorruptValue(t *testing.T) {
	_, err := Histogram(answersOf(10, 101))
	assert.Error(t, err)
}

// Randomized answer sets must always satisfy the winner and histogram invariants.
func TestScoreInvariants(t *testing.T) {
	faker := gofakeit.New(42)

	for iter := 0; iter < 200; iter++ {
		n := faker.IntRange(1, 60)
		answers := make([]*models.Answer, n)
		for i := range answers {
			answers[i] = &models.Answer{
				ID:       int64(faker.IntRange(1, 1_000_000)*100 + i),
				UserName: faker.FirstName(),
				Value:    faker.IntRange(models.MinAnswerValue, models.MaxAnswerValue),
			}
		}

		res, err := Score(answers)
		require.NoError(t, err)
		require.Equal(t, n, res.Total)
		require.NotEmpty(t, res.WinnerIDs)
		require.GreaterOrEqual(t, res.WinningValue, models.MinAnswerValue)
		require.LessOrEqual(t, res.WinningValue, models.MaxAnswerValue)

		winners := make(map[int64]bool, len(res.WinnerIDs))
		for _, id := range res.WinnerIDs {
			winners[id] = true
		}
		best := -1
		for _, a := range answers {
			d := Distance(a.Value, res.WinningValue)
			if winners[a.ID] {
				if best == -1 {
					best = d
				}
				require.Equal(t, best, d)
			}
		}
		for _, a := range answers {
			if !winners[a.ID] {
				require.Greater(t, Distance(a.Value, res.WinningValue), best)
			}
		}

		again, err := Score(answers)
		require.NoError(t, err)
		require.Empty(t, cmp.Diff(res, again))

		hist, err := Histogram(answers)
		require.NoError(t, err)
		require.Equal(t, n, hist.Total())
	}
}
