// Package scoring turns a set of answers into a winning value, a winner set and
// a dense histogram. Everything here is a pure function of its input.
package scoring

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/KirkDiggler/closest/internal/models"
)

// ErrNoAnswers is returned when there is nothing to score
var ErrNoAnswers = errors.New("no answers to score")

// Result is the outcome of scoring a set of answers
type Result struct {
	// Mean is sum/count computed in float64 from an exact integer sum
	Mean float64

	// WinningValue is the target answers are judged against
	WinningValue int

	// WinnerIDs are the ids of every answer tied for the minimum distance, ascending
	WinnerIDs []int64

	// Total is the number of answers scored
	Total int
}

// Mean returns the arithmetic mean of values. The sum is accumulated as an
// int64 so the result only depends on the multiset of values, not their order.
func Mean(values []int) (float64, error) {
	if len(values) == 0 {
		return 0, ErrNoAnswers
	}
	var sum int64
	for _, v := range values {
		sum += int64(v)
	}
	return float64(sum) / float64(len(values)), nil
}

// WinningValue maps a mean to the target value: the nearest integer, with
// halves rounded to the even neighbour, clamped to the answer domain.
func WinningValue(mean float64) int {
	v := int(math.RoundToEven(mean))
	if v < models.MinAnswerValue {
		return models.MinAnswerValue
	}
	if v > models.MaxAnswerValue {
		return models.MaxAnswerValue
	}
	return v
}

// Distance is how far value is from target
func Distance(value, target int) int {
	if value > target {
		return value - target
	}
	return target - value
}

// Score computes the mean, winning value and winner set for answers
func Score(answers []*models.Answer) (*Result, error) {
	if len(answers) == 0 {
		return nil, ErrNoAnswers
	}

	var sum int64
	for _, a := range answers {
		sum += int64(a.Value)
	}
	mean := float64(sum) / float64(len(answers))
	target := WinningValue(mean)

	best := math.MaxInt
	winners := make([]int64, 0, 1)
	for _, a := range answers {
		d := Distance(a.Value, target)
		switch {
		case d < best:
			best = d
			winners = append(winners[:0], a.ID)
		case d == best:
			winners = append(winners, a.ID)
		}
	}
	slices.Sort(winners)

	return &Result{
		Mean:         mean,
		WinningValue: target,
		WinnerIDs:    winners,
		Total:        len(answers),
	}, nil
}

// Histogram counts answers per value. The result always has one bucket per
// value in the domain. A stored value outside the domain is reported rather
// than dropped.
func Histogram(answers []*models.Answer) (models.Distribution, error) {
	var d models.Distribution
	for _, a := range answers {
		if a.Value < models.MinAnswerValue || a.Value > models.MaxAnswerValue {
			return models.Distribution{}, fmt.Errorf("answer %d has out of range value %d", a.ID, a.Value)
		}
		d.Counts[a.Value-models.MinAnswerValue]++
	}
	return d, nil
}
