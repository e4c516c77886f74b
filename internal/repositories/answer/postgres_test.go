package answer

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/closest/internal/models"
	"github.com/KirkDiggler/closest/internal/repositories/postgres/pgtest"
	"github.com/KirkDiggler/closest/internal/repositories/round"
)

type PostgresRepositoryTestSuite struct {
	suite.Suite
	pool      *pgxpool.Pool
	repo      Repository
	roundRepo round.Repository
	ctx       context.Context
	testNow   time.Time
}

func (s *PostgresRepositoryTestSuite) SetupSuite() {
	if testing.Short() {
		s.T().Skip("skipping postgres container tests in short mode")
	}
	s.pool = pgtest.Start(s.T())

	repo, err := NewPostgres(&PostgresConfig{Pool: s.pool})
	s.Require().NoError(err)
	s.repo = repo

	roundRepo, err := round.NewPostgres(&round.PostgresConfig{Pool: s.pool})
	s.Require().NoError(err)
	s.roundRepo = roundRepo

	s.ctx = context.Background()
	s.testNow = time.Date(2025, 4, 5, 10, 0, 0, 0, time.UTC)
}

func (s *PostgresRepositoryTestSuite) SetupTest() {
	pgtest.Truncate(s.T(), s.pool)
}

func TestPostgresRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(PostgresRepositoryTestSuite))
}

func (s *PostgresRepositoryTestSuite) openRound() int64 {
	r, err := s.roundRepo.CreateRound(s.ctx, &round.CreateRoundInput{Status: models.RoundStatusOpen, CreatedAt: s.testNow})
	s.Require().NoError(err)
	return r.ID
}

func (s *PostgresRepositoryTestSuite) TestInsertListUpdateDelete() {
	roundID := s.openRound()

	out, err := s.repo.InsertAnswers(s.ctx, &InsertAnswersInput{
		RoundID: roundID,
		Answers: []*NewAnswer{
			{UserName: "Alice", Value: 40, SubmittedAt: s.testNow},
			{UserName: "Bob", Value: 60, SubmittedAt: s.testNow},
		},
	})
	s.Require().NoError(err)
	s.Require().Len(out.Answers, 2)
	s.Less(out.Answers[0].ID, out.Answers[1].ID)

	listed, err := s.repo.ListAnswersByRound(s.ctx, &ListAnswersByRoundInput{RoundID: roundID})
	s.Require().NoError(err)
	s.Equal(answerIDs(out.Answers), answerIDs(listed.Answers))

	byID, err := s.repo.GetAnswersByIDs(s.ctx, &GetAnswersByIDsInput{
		AnswerIDs: []int64{out.Answers[1].ID, out.Answers[1].ID + 1000, out.Answers[0].ID},
	})
	s.Require().NoError(err)
	s.Equal(answerIDs(out.Answers), answerIDs(byID.Answers))

	page, err := s.repo.ListAnswers(s.ctx, &ListAnswersInput{RoundID: &roundID, Limit: 1})
	s.Require().NoError(err)
	s.Equal([]int64{out.Answers[1].ID}, answerIDs(page.Answers))

	value := 55
	updated, err := s.repo.UpdateAnswer(s.ctx, &UpdateAnswerInput{AnswerID: out.Answers[0].ID, Value: &value})
	s.Require().NoError(err)
	s.Equal("Alice", updated.UserName)
	s.Equal(55, updated.Value)

	deleted, err := s.repo.DeleteAnswer(s.ctx, &DeleteAnswerInput{AnswerID: out.Answers[0].ID})
	s.Require().NoError(err)
	s.True(deleted.Deleted)

	_, err = s.repo.GetAnswer(s.ctx, &GetAnswerInput{AnswerID: out.Answers[0].ID})
	s.ErrorIs(err, ErrAnswerNotFound)
}

func (s *PostgresRepositoryTestSuite) TestInsertRejectsMissingAndClosedRounds() {
	_, err := s.repo.InsertAnswer(s.ctx, &InsertAnswerInput{RoundID: 999, UserName: "Alice", Value: 1, SubmittedAt: s.testNow})
	s.ErrorIs(err, ErrRoundNotFound)

	roundID := s.openRound()
	_, err = s.roundRepo.UpdateRoundStatus(s.ctx, &round.UpdateRoundStatusInput{RoundID: roundID, Status: models.RoundStatusClosed})
	s.Require().NoError(err)

	_, err = s.repo.InsertAnswer(s.ctx, &InsertAnswerInput{RoundID: roundID, UserName: "Dave", Value: 1, SubmittedAt: s.testNow})
	s.ErrorIs(err, ErrRoundClosed)
}

func (s *PostgresRepositoryTestSuite) TestDeletingRoundCascades() {
	roundID := s.openRound()
	_, err := s.repo.InsertAnswer(s.ctx, &InsertAnswerInput{RoundID: roundID, UserName: "Alice", Value: 1, SubmittedAt: s.testNow})
	s.Require().NoError(err)

	_, err = s.roundRepo.DeleteRound(s.ctx, &round.DeleteRoundInput{RoundID: roundID})
	s.Require().NoError(err)

	all, err := s.repo.ListAllAnswers(s.ctx, &ListAllAnswersInput{})
	s.Require().NoError(err)
	s.Empty(all.Answers)
}

func (s *PostgresRepositoryTestSuite) TestCloseRacesWithSubmissions() {
	roundID := s.openRound()

	const submitters = 20
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
	)

	for i := 0; i < submitters; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.repo.InsertAnswer(s.ctx, &InsertAnswerInput{RoundID: roundID, UserName: "player", Value: i, SubmittedAt: s.testNow})
			if err != nil && !errors.Is(err, ErrRoundClosed) {
				s.Failf("unexpected error", "%v", err)
				return
			}
			if err == nil {
				mu.Lock()
				accepted++
				mu.Unlock()
			}
		}(i)
	}

	_, err := s.roundRepo.UpdateRoundStatus(s.ctx, &round.UpdateRoundStatusInput{RoundID: roundID, Status: models.RoundStatusClosed})
	s.Require().NoError(err)
	wg.Wait()

	count, err := s.repo.CountAnswersByRound(s.ctx, &CountAnswersByRoundInput{RoundID: roundID})
	s.Require().NoError(err)
	s.Equal(accepted, count.Count)
}
