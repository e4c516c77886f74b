package answer

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/closest/internal/models"
	"github.com/KirkDiggler/closest/internal/repositories/round"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr        *miniredis.Miniredis
	client    *redis.Client
	repo      Repository
	roundRepo round.Repository
	ctx       context.Context
	testNow   time.Time
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	// Create a new miniredis server for each test
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	repo, err := NewRedis(&Config{RedisClient: s.client})
	s.Require().NoError(err)
	s.repo = repo

	roundRepo, err := round.NewRedis(&round.Config{RedisClient: s.client})
	s.Require().NoError(err)
	s.roundRepo = roundRepo

	s.ctx = context.Background()
	s.testNow = time.Date(2025, 4, 5, 10, 0, 0, 0, time.UTC)
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) openRound() int64 {
	r, err := s.roundRepo.CreateRound(s.ctx, &round.CreateRoundInput{
		Status:    models.RoundStatusOpen,
		CreatedAt: s.testNow,
	})
	s.Require().NoError(err)
	return r.ID
}

func (s *RedisRepositoryTestSuite) setStatus(roundID int64, status models.RoundStatus) {
	_, err := s.roundRepo.UpdateRoundStatus(s.ctx, &round.UpdateRoundStatusInput{RoundID: roundID, Status: status})
	s.Require().NoError(err)
}

func (s *RedisRepositoryTestSuite) insert(roundID int64, name string, value int) *models.Answer {
	a, err := s.repo.InsertAnswer(s.ctx, &InsertAnswerInput{
		RoundID:     roundID,
		UserName:    name,
		Value:       value,
		SubmittedAt: s.testNow,
	})
	s.Require().NoError(err)
	return a
}

func (s *RedisRepositoryTestSuite) TestInsertAndGetAnswer() {
	roundID := s.openRound()

	a := s.insert(roundID, "Alice", 40)
	s.Equal(int64(1), a.ID)
	s.Equal(roundID, a.RoundID)
	s.Equal("Alice", a.UserName)
	s.Equal(40, a.Value)

	got, err := s.repo.GetAnswer(s.ctx, &GetAnswerInput{AnswerID: a.ID})
	s.Require().NoError(err)
	s.Equal(a.ID, got.ID)
	s.Equal("Alice", got.UserName)
	s.True(s.testNow.Equal(got.SubmittedAt))
}

func (s *RedisRepositoryTestSuite) TestGetAnswerNotFound() {
	_, err := s.repo.GetAnswer(s.ctx, &GetAnswerInput{AnswerID: 99})
	s.ErrorIs(err, ErrAnswerNotFound)
}

func (s *RedisRepositoryTestSuite) TestInsertIntoMissingRound() {
	_, err := s.repo.InsertAnswer(s.ctx, &InsertAnswerInput{RoundID: 42, UserName: "Alice", Value: 1, SubmittedAt: s.testNow})
	s.ErrorIs(err, ErrRoundNotFound)

	s.False(s.mr.Exists(roundAnswersKey(42)))
}

func (s *RedisRepositoryTestSuite) TestInsertIntoClosedRound() {
	roundID := s.openRound()
	s.insert(roundID, "Alice", 40)
	s.setStatus(roundID, models.RoundStatusClosed)

	_, err := s.repo.InsertAnswer(s.ctx, &InsertAnswerInput{RoundID: roundID, UserName: "Dave", Value: 10, SubmittedAt: s.testNow})
	s.ErrorIs(err, ErrRoundClosed)

	count, err := s.repo.CountAnswersByRound(s.ctx, &CountAnswersByRoundInput{RoundID: roundID})
	s.Require().NoError(err)
	s.Equal(1, count.Count)

	// Reopening accepts answers again, with fresh IDs
	s.setStatus(roundID, models.RoundStatusOpen)
	a := s.insert(roundID, "Dave", 10)
	s.Greater(a.ID, int64(2))
}

func (s *RedisRepositoryTestSuite) TestInsertAnswersIsAllOrNothing() {
	roundID := s.openRound()

	out, err := s.repo.InsertAnswers(s.ctx, &InsertAnswersInput{
		RoundID: roundID,
		Answers: []*NewAnswer{
			{UserName: "Alice", Value: 40, SubmittedAt: s.testNow},
			{UserName: "Bob", Value: 60, SubmittedAt: s.testNow},
			{UserName: "Carol", Value: 50, SubmittedAt: s.testNow},
		},
	})
	s.Require().NoError(err)
	s.Require().Len(out.Answers, 3)
	s.Equal([]int64{1, 2, 3}, answerIDs(out.Answers))
	s.Equal("Carol", out.Answers[2].UserName)

	s.setStatus(roundID, models.RoundStatusClosed)

	_, err = s.repo.InsertAnswers(s.ctx, &InsertAnswersInput{
		RoundID: roundID,
		Answers: []*NewAnswer{
			{UserName: "Dave", Value: 1, SubmittedAt: s.testNow},
			{UserName: "Erin", Value: 2, SubmittedAt: s.testNow},
		},
	})
	s.ErrorIs(err, ErrRoundClosed)

	all, err := s.repo.ListAllAnswers(s.ctx, &ListAllAnswersInput{})
	s.Require().NoError(err)
	s.Len(all.Answers, 3)
	s.False(s.mr.Exists(answerKey(4)))
	s.False(s.mr.Exists(answerKey(5)))

	_, err = s.repo.InsertAnswers(s.ctx, &InsertAnswersInput{RoundID: roundID})
	s.Error(err)
}

func (s *RedisRepositoryTestSuite) TestListAnswers() {
	r1 := s.openRound()
	r2 := s.openRound()
	a1 := s.insert(r1, "Alice", 40)
	b1 := s.insert(r2, "Bob", 60)
	a2 := s.insert(r1, "Carol", 50)

	byRound, err := s.repo.ListAnswersByRound(s.ctx, &ListAnswersByRoundInput{RoundID: r1})
	s.Require().NoError(err)
	s.Equal([]int64{a1.ID, a2.ID}, answerIDs(byRound.Answers))

	all, err := s.repo.ListAllAnswers(s.ctx, &ListAllAnswersInput{})
	s.Require().NoError(err)
	s.Equal([]int64{a1.ID, b1.ID, a2.ID}, answerIDs(all.Answers))

	page, err := s.repo.ListAnswers(s.ctx, &ListAnswersInput{Limit: 2})
	s.Require().NoError(err)
	s.Equal([]int64{a2.ID, b1.ID}, answerIDs(page.Answers))

	filtered, err := s.repo.ListAnswers(s.ctx, &ListAnswersInput{RoundID: &r1, Limit: 10, Offset: 1})
	s.Require().NoError(err)
	s.Equal([]int64{a1.ID}, answerIDs(filtered.Answers))

	empty, err := s.repo.ListAnswersByRound(s.ctx, &ListAnswersByRoundInput{RoundID: 77})
	s.Require().NoError(err)
	s.NotNil(empty.Answers)
	s.Empty(empty.Answers)
}

func (s *RedisRepositoryTestSuite) TestGetAnswersByIDs() {
	r1 := s.openRound()
	r2 := s.openRound()
	a1 := s.insert(r1, "Alice", 40)
	b1 := s.insert(r2, "Bob", 60)
	a2 := s.insert(r1, "Carol", 50)

	out, err := s.repo.GetAnswersByIDs(s.ctx, &GetAnswersByIDsInput{
		AnswerIDs: []int64{a2.ID, 99, a1.ID, b1.ID, a2.ID},
	})
	s.Require().NoError(err)
	s.Equal([]int64{a1.ID, b1.ID, a2.ID}, answerIDs(out.Answers))
	s.Equal("Carol", out.Answers[2].UserName)

	empty, err := s.repo.GetAnswersByIDs(s.ctx, &GetAnswersByIDsInput{})
	s.Require().NoError(err)
	s.NotNil(empty.Answers)
	s.Empty(empty.Answers)
}

func (s *RedisRepositoryTestSuite) TestUpdateAnswer() {
	roundID := s.openRound()
	a := s.insert(roundID, "Alice", 40)

	name := "Alicia"
	updated, err := s.repo.UpdateAnswer(s.ctx, &UpdateAnswerInput{AnswerID: a.ID, UserName: &name})
	s.Require().NoError(err)
	s.Equal("Alicia", updated.UserName)
	s.Equal(40, updated.Value)

	value := 45
	updated, err = s.repo.UpdateAnswer(s.ctx, &UpdateAnswerInput{AnswerID: a.ID, Value: &value})
	s.Require().NoError(err)
	s.Equal("Alicia", updated.UserName)
	s.Equal(45, updated.Value)

	got, err := s.repo.GetAnswer(s.ctx, &GetAnswerInput{AnswerID: a.ID})
	s.Require().NoError(err)
	s.Equal(45, got.Value)

	_, err = s.repo.UpdateAnswer(s.ctx, &UpdateAnswerInput{AnswerID: 999, Value: &value})
	s.ErrorIs(err, ErrAnswerNotFound)
}

func (s *RedisRepositoryTestSuite) TestDeleteAnswer() {
	roundID := s.openRound()
	a := s.insert(roundID, "Alice", 40)
	s.insert(roundID, "Bob", 60)

	out, err := s.repo.DeleteAnswer(s.ctx, &DeleteAnswerInput{AnswerID: a.ID})
	s.Require().NoError(err)
	s.True(out.Deleted)

	count, err := s.repo.CountAnswersByRound(s.ctx, &CountAnswersByRoundInput{RoundID: roundID})
	s.Require().NoError(err)
	s.Equal(1, count.Count)

	out, err = s.repo.DeleteAnswer(s.ctx, &DeleteAnswerInput{AnswerID: a.ID})
	s.Require().NoError(err)
	s.False(out.Deleted)
}

func (s *RedisRepositoryTestSuite) TestDeleteAnswersByRound() {
	r1 := s.openRound()
	r2 := s.openRound()
	s.insert(r1, "Alice", 40)
	s.insert(r1, "Bob", 60)
	kept := s.insert(r2, "Carol", 50)

	_, err := s.roundRepo.DeleteRound(s.ctx, &round.DeleteRoundInput{RoundID: r1})
	s.Require().NoError(err)

	out, err := s.repo.DeleteAnswersByRound(s.ctx, &DeleteAnswersByRoundInput{RoundID: r1})
	s.Require().NoError(err)
	s.Equal(2, out.Deleted)

	all, err := s.repo.ListAllAnswers(s.ctx, &ListAllAnswersInput{})
	s.Require().NoError(err)
	s.Equal([]int64{kept.ID}, answerIDs(all.Answers))
	s.False(s.mr.Exists(roundAnswersKey(r1)))

	// The deleted round no longer accepts answers
	_, err = s.repo.InsertAnswer(s.ctx, &InsertAnswerInput{RoundID: r1, UserName: "Dave", Value: 1, SubmittedAt: s.testNow})
	s.ErrorIs(err, ErrRoundNotFound)

	out, err = s.repo.DeleteAnswersByRound(s.ctx, &DeleteAnswersByRoundInput{RoundID: r1})
	s.Require().NoError(err)
	s.Zero(out.Deleted)
}

// Closing a round while submissions are in flight must leave exactly the
// accepted answers stored, and none accepted after the close returned.
func (s *RedisRepositoryTestSuite) TestCloseRacesWithSubmissions() {
	roundID := s.openRound()

	const submitters = 50
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
		rejected int
	)

	start := make(chan struct{})
	for i := 0; i < submitters; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, err := s.repo.InsertAnswer(s.ctx, &InsertAnswerInput{
				RoundID:     roundID,
				UserName:    "player",
				Value:       i % 101,
				SubmittedAt: s.testNow,
			})

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				accepted++
			case errors.Is(err, ErrRoundClosed):
				rejected++
			default:
				s.Failf("unexpected error", "%v", err)
			}
		}(i)
	}

	close(start)
	s.setStatus(roundID, models.RoundStatusClosed)
	wg.Wait()

	s.Equal(submitters, accepted+rejected)

	count, err := s.repo.CountAnswersByRound(s.ctx, &CountAnswersByRoundInput{RoundID: roundID})
	s.Require().NoError(err)
	s.Equal(accepted, count.Count)

	_, err = s.repo.InsertAnswer(s.ctx, &InsertAnswerInput{RoundID: roundID, UserName: "late", Value: 1, SubmittedAt: s.testNow})
	s.ErrorIs(err, ErrRoundClosed)

	count, err = s.repo.CountAnswersByRound(s.ctx, &CountAnswersByRoundInput{RoundID: roundID})
	s.Require().NoError(err)
	s.Equal(accepted, count.Count)
}

func answerIDs(answers []*models.Answer) []int64 {
	ids := make([]int64, len(answers))
	for i, a := range answers {
		ids[i] = a.ID
	}
	return ids
}
