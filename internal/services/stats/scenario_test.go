package stats

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/closest/internal/common/clock"
	"github.com/KirkDiggler/closest/internal/common/errs"
	"github.com/KirkDiggler/closest/internal/models"
	answerRepo "github.com/KirkDiggler/closest/internal/repositories/answer"
	roundRepo "github.com/KirkDiggler/closest/internal/repositories/round"
	answerService "github.com/KirkDiggler/closest/internal/services/answer"
	roundService "github.com/KirkDiggler/closest/internal/services/round"
)

// ScenarioTestSuite runs the services together over an in-memory Redis
type ScenarioTestSuite struct {
	suite.Suite
	mr      *miniredis.Miniredis
	client  *redis.Client
	rounds  roundService.Service
	answers answerService.Service
	stats   Service
	ctx     context.Context
}

func (s *ScenarioTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr
	s.client = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s.ctx = context.Background()

	rr, err := roundRepo.NewRedis(&roundRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)
	ar, err := answerRepo.NewRedis(&answerRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)

	s.rounds, err = roundService.New(&roundService.Config{RoundRepo: rr, AnswerRepo: ar, Clock: &clock.DefaultClock{}})
	s.Require().NoError(err)
	s.answers, err = answerService.New(&answerService.Config{AnswerRepo: ar, Clock: &clock.DefaultClock{}})
	s.Require().NoError(err)
	s.stats, err = New(&Config{RoundRepo: rr, AnswerRepo: ar})
	s.Require().NoError(err)
}

func (s *ScenarioTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestScenarioTestSuite(t *testing.T) {
	suite.Run(t, new(ScenarioTestSuite))
}

func (s *ScenarioTestSuite) newRound() int64 {
	out, err := s.rounds.CreateRound(s.ctx, &roundService.CreateRoundInput{})
	s.Require().NoError(err)
	s.Require().Equal(models.RoundStatusOpen, out.Round.Status)
	return out.Round.ID
}

func (s *ScenarioTestSuite) submit(roundID int64, name, raw string) (*models.Answer, error) {
	out, err := s.answers.SubmitAnswer(s.ctx, &answerService.SubmitAnswerInput{RoundID: roundID, UserName: name, RawValue: raw})
	if err != nil {
		return nil, err
	}
	return out.Answer, nil
}

func (s *ScenarioTestSuite) close(roundID int64) {
	_, err := s.rounds.SetStatus(s.ctx, &roundService.SetStatusInput{RoundID: roundID, Status: models.RoundStatusClosed})
	s.Require().NoError(err)
}

func (s *ScenarioTestSuite) TestThreePlayersThenLateSubmission() {
	roundID := s.newRound()

	_, err := s.submit(roundID, "Alice", "40")
	s.Require().NoError(err)
	_, err = s.submit(roundID, "Bob", "60")
	s.Require().NoError(err)
	carol, err := s.submit(roundID, "Carol", "50")
	s.Require().NoError(err)

	stats, err := s.stats.ComputeWinningStats(s.ctx, &ComputeWinningStatsInput{RoundID: roundID})
	s.Require().NoError(err)
	s.Equal(50.0, stats.Stats.Mean)
	s.Equal(50, stats.Stats.WinningValue)
	s.Equal([]int64{carol.ID}, stats.Stats.WinnerIDs)
	s.Equal(3, stats.Stats.TotalAnswers)

	dist, err := s.stats.ComputeDistribution(s.ctx, &ComputeDistributionInput{RoundID: roundID})
	s.Require().NoError(err)
	for v, c := range dist.Distribution.Counts {
		switch v {
		case 40, 50, 60:
			s.Equal(1, c, "value %d", v)
		default:
			s.Zero(c, "value %d", v)
		}
	}
	s.Equal(3, dist.Distribution.Total())

	// Idempotent with no writes in between
	again, err := s.stats.ComputeWinningStats(s.ctx, &ComputeWinningStatsInput{RoundID: roundID})
	s.Require().NoError(err)
	s.Equal(stats.Stats, again.Stats)

	s.close(roundID)

	_, err = s.submit(roundID, "Dave", "10")
	s.Equal(errs.KindRoundClosed, errs.KindOf(err))

	view, err := s.stats.GetRoundView(s.ctx, &GetRoundViewInput{RoundID: roundID})
	s.Require().NoError(err)
	s.Equal(3, *view.View.TotalAnswers)
	s.Require().Len(view.View.Winners, 1)
	s.Equal("Carol", view.View.Winners[0].UserName)
}

func (s *ScenarioTestSuite) TestRoundWithoutAnswers() {
	roundID := s.newRound()

	_, err := s.stats.ComputeWinningStats(s.ctx, &ComputeWinningStatsInput{RoundID: roundID})
	s.Equal(errs.KindNotFound, errs.KindOf(err))

	_, err = s.stats.ComputeDistribution(s.ctx, &ComputeDistributionInput{RoundID: roundID})
	s.Equal(errs.KindNotFound, errs.KindOf(err))

	_, err = s.stats.ComputeWinningStats(s.ctx, &ComputeWinningStatsInput{RoundID: roundID + 100})
	s.Equal(errs.KindNotFound, errs.KindOf(err))
}

func (s *ScenarioTestSuite) TestBatchWithOneInvalidItem() {
	roundID := s.newRound()

	_, err := s.answers.SubmitAnswers(s.ctx, &answerService.SubmitAnswersInput{
		RoundID: roundID,
		Items: []*answerService.SubmissionItem{
			{UserName: "Alice", RawValue: "40"},
			{UserName: "Bob", RawValue: "60"},
			{UserName: "", RawValue: "50"},
			{UserName: "Dave", RawValue: "10"},
			{UserName: "Erin", RawValue: "20"},
		},
	})
	var batchErr *answerService.BatchError
	s.Require().ErrorAs(err, &batchErr)
	s.Equal(2, batchErr.Index)
	s.Equal("userName must not be empty", batchErr.Err.Message)

	// Atomic policy: none of the valid items were stored
	view, err := s.stats.GetRoundView(s.ctx, &GetRoundViewInput{RoundID: roundID})
	s.Require().NoError(err)
	s.Zero(*view.View.AnswersCount)
}

func (s *ScenarioTestSuite) TestDeletedRoundLeavesGeneralStats() {
	kept := s.newRound()
	dropped := s.newRound()

	_, err := s.submit(kept, "Alice", "30")
	s.Require().NoError(err)
	_, err = s.submit(dropped, "Bob", "90")
	s.Require().NoError(err)

	out, err := s.rounds.DeleteRound(s.ctx, &roundService.DeleteRoundInput{RoundID: dropped})
	s.Require().NoError(err)
	s.True(out.Deleted)
	s.Equal(1, out.AnswersDeleted)

	general, err := s.stats.GetGeneralView(s.ctx, &GetGeneralViewInput{})
	s.Require().NoError(err)
	s.Equal(1, general.View.TotalAnswers)
	s.Equal(30, *general.View.WinningValue)
}

// Random rounds must always satisfy the winner and distribution invariants
func (s *ScenarioTestSuite) TestRandomRoundsKeepInvariants() {
	faker := gofakeit.New(7)

	for i := 0; i < 20; i++ {
		roundID := s.newRound()
		n := faker.IntRange(1, 30)
		for j := 0; j < n; j++ {
			_, err := s.submit(roundID, faker.FirstName(), faker.Numerify("##"))
			s.Require().NoError(err)
		}
		s.close(roundID)

		stats, err := s.stats.ComputeWinningStats(s.ctx, &ComputeWinningStatsInput{RoundID: roundID})
		s.Require().NoError(err)
		s.Equal(n, stats.Stats.TotalAnswers)
		s.NotEmpty(stats.Stats.WinnerIDs)

		dist, err := s.stats.ComputeDistribution(s.ctx, &ComputeDistributionInput{RoundID: roundID})
		s.Require().NoError(err)
		s.Equal(n, dist.Distribution.Total())
	}
}
