package messaging

import (
	"context"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/closest/internal/common/errs"
	"github.com/KirkDiggler/closest/internal/models"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	svc, err := NewService(&ServiceConfig{Rand: rand.New(rand.NewSource(1))})
	require.NoError(t, err)
	return svc
}

func TestGetGuessMessageMentionsPlayer(t *testing.T) {
	svc := newTestService(t)

	for _, v := range []int{0, 17, 50, 100} {
		out, err := svc.GetGuessMessage(context.Background(), &GetGuessMessageInput{PlayerName: "Alice", Value: v})
		require.NoError(t, err)
		assert.Contains(t, out.Message, "Alice")
		assert.Equal(t, ToneFunny, out.Tone)
	}
}

func TestGetGuessMessageConcurrent(t *testing.T) {
	svc := newTestService(t)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				out, err := svc.GetGuessMessage(context.Background(), &GetGuessMessageInput{PlayerName: "Alice", Value: i % 101})
				assert.NoError(t, err)
				assert.Contains(t, out.Message, "Alice")
			}
		}()
	}
	wg.Wait()
}

func TestGetRoundStatusMessage(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	open, err := svc.GetRoundStatusMessage(ctx, &GetRoundStatusMessageInput{RoundID: 3, Status: models.RoundStatusOpen})
	require.NoError(t, err)
	assert.Equal(t, "Round #3 is open", open.Title)

	closed, err := svc.GetRoundStatusMessage(ctx, &GetRoundStatusMessageInput{RoundID: 3, Status: models.RoundStatusClosed, AnswersCount: 1})
	require.NoError(t, err)
	assert.Equal(t, "Round #3 is closed", closed.Title)
	assert.Contains(t, closed.Message, "1 guess")

	_, err = svc.GetRoundStatusMessage(ctx, &GetRoundStatusMessageInput{RoundID: 3, Status: "paused"})
	assert.Error(t, err)
}

func TestGetResultsMessage(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	single, err := svc.GetResultsMessage(ctx, &GetResultsMessageInput{RoundID: 1, WinningValue: 50, TotalAnswers: 3, WinnerNames: []string{"Carol"}})
	require.NoError(t, err)
	assert.Contains(t, single.Message, "Carol")
	assert.Contains(t, single.Message, "50")

	tie, err := svc.GetResultsMessage(ctx, &GetResultsMessageInput{RoundID: 1, WinningValue: 50, TotalAnswers: 4, WinnerNames: []string{"Alice", "Bob", "Carol"}})
	require.NoError(t, err)
	assert.Contains(t, tie.Message, "Alice, Bob and Carol")

	empty, err := svc.GetResultsMessage(ctx, &GetResultsMessageInput{RoundID: 1})
	require.NoError(t, err)
	assert.NotEmpty(t, empty.Message)
}

func TestGetErrorMessage(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	closed, err := svc.GetErrorMessage(ctx, &GetErrorMessageInput{Kind: errs.KindRoundClosed, Detail: "round 2 is closed"})
	require.NoError(t, err)
	assert.Equal(t, "Round Closed", closed.Title)
	assert.Contains(t, closed.Message, "(round 2 is closed)")

	// Internal details stay out of chat
	internal, err := svc.GetErrorMessage(ctx, &GetErrorMessageInput{Kind: errs.KindInternal, Detail: "dial tcp: refused"})
	require.NoError(t, err)
	assert.NotContains(t, internal.Message, "dial tcp")
}

func TestJoinNames(t *testing.T) {
	assert.Equal(t, "", joinNames(nil))
	assert.Equal(t, "A", joinNames([]string{"A"}))
	assert.Equal(t, "A and B", joinNames([]string{"A", "B"}))
	assert.Equal(t, "A, B and C", joinNames([]string{"A", "B", "C"}))
}
