package stats

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/KirkDiggler/closest/internal/common/errs"
	"github.com/KirkDiggler/closest/internal/metrics"
	"github.com/KirkDiggler/closest/internal/models"
	answerRepo "github.com/KirkDiggler/closest/internal/repositories/answer"
	roundRepo "github.com/KirkDiggler/closest/internal/repositories/round"
	"github.com/KirkDiggler/closest/internal/scoring"
)

const tracerName = "github.com/KirkDiggler/closest/internal/services/stats"

// service implements the Service interface
type service struct {
	roundRepo  roundRepo.Repository
	answerRepo answerRepo.Repository
	metrics    metrics.Recorder
	tracer     trace.Tracer
	logger     *slog.Logger
}

// New creates a new stats service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.RoundRepo == nil {
		return nil, ErrNilRoundRepo
	}

	if cfg.AnswerRepo == nil {
		return nil, ErrNilAnswerRepo
	}

	recorder := cfg.Metrics
	if recorder == nil {
		recorder = metrics.Noop{}
	}

	tracer := cfg.Tracer
	if tracer == nil {
		tracer = otel.Tracer(tracerName)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &service{
		roundRepo:  cfg.RoundRepo,
		answerRepo: cfg.AnswerRepo,
		metrics:    recorder,
		tracer:     tracer,
		logger:     logger.With("service", "stats"),
	}, nil
}

// ComputeWinningStats scores the current answers of a round
func (s *service) ComputeWinningStats(ctx context.Context, input *ComputeWinningStatsInput) (*ComputeWinningStatsOutput, error) {
	if input == nil {
		return nil, errs.New(errs.KindInvalidInput, "input cannot be nil")
	}

	ctx, span, done := s.begin(ctx, "StatsService.ComputeWinningStats", "round_stats",
		attribute.Int64("round.id", input.RoundID))
	defer done()

	if _, err := s.getRound(ctx, input.RoundID); err != nil {
		return nil, s.fail(ctx, span, err)
	}

	answers, err := s.roundAnswers(ctx, input.RoundID)
	if err != nil {
		return nil, s.fail(ctx, span, err)
	}

	result, err := scoreRound(input.RoundID, answers)
	if err != nil {
		return nil, s.fail(ctx, span, err)
	}

	span.SetAttributes(attribute.Int("answers.total", result.Total))

	return &ComputeWinningStatsOutput{
		Stats: &models.WinningStats{
			RoundID:      input.RoundID,
			Mean:         result.Mean,
			WinningValue: result.WinningValue,
			WinnerIDs:    result.WinnerIDs,
			TotalAnswers: result.Total,
		},
	}, nil
}

// ListWinners scores a round and loads its winning answers
func (s *service) ListWinners(ctx context.Context, input *ListWinnersInput) (*ListWinnersOutput, error) {
	if input == nil {
		return nil, errs.New(errs.KindInvalidInput, "input cannot be nil")
	}

	ctx, span, done := s.begin(ctx, "StatsService.ListWinners", "round_winners",
		attribute.Int64("round.id", input.RoundID))
	defer done()

	if _, err := s.getRound(ctx, input.RoundID); err != nil {
		return nil, s.fail(ctx, span, err)
	}

	answers, err := s.roundAnswers(ctx, input.RoundID)
	if err != nil {
		return nil, s.fail(ctx, span, err)
	}

	result, err := scoreRound(input.RoundID, answers)
	if err != nil {
		return nil, s.fail(ctx, span, err)
	}

	winners, err := s.answerRepo.GetAnswersByIDs(ctx, &answerRepo.GetAnswersByIDsInput{AnswerIDs: result.WinnerIDs})
	if err != nil {
		return nil, s.fail(ctx, span, errs.Internal(err, "failed to get winning answers"))
	}

	span.SetAttributes(attribute.Int("winners.total", len(winners.Answers)))

	return &ListWinnersOutput{
		WinningValue: result.WinningValue,
		Winners:      winners.Answers,
	}, nil
}

// ComputeGeneralWinningStats scores every stored answer. No answers at all is
// not an error, the mean and winning value are simply absent.
func (s *service) ComputeGeneralWinningStats(ctx context.Context, input *ComputeGeneralWinningStatsInput) (*ComputeGeneralWinningStatsOutput, error) {
	if input == nil {
		return nil, errs.New(errs.KindInvalidInput, "input cannot be nil")
	}

	ctx, span, done := s.begin(ctx, "StatsService.ComputeGeneralWinningStats", "general_stats")
	defer done()

	answers, err := s.allAnswers(ctx)
	if err != nil {
		return nil, s.fail(ctx, span, err)
	}

	return &ComputeGeneralWinningStatsOutput{Stats: generalStats(answers)}, nil
}

// ComputeDistribution returns the histogram of a round with at least one answer
func (s *service) ComputeDistribution(ctx context.Context, input *ComputeDistributionInput) (*ComputeDistributionOutput, error) {
	if input == nil {
		return nil, errs.New(errs.KindInvalidInput, "input cannot be nil")
	}

	ctx, span, done := s.begin(ctx, "StatsService.ComputeDistribution", "round_distribution",
		attribute.Int64("round.id", input.RoundID))
	defer done()

	if _, err := s.getRound(ctx, input.RoundID); err != nil {
		return nil, s.fail(ctx, span, err)
	}

	answers, err := s.roundAnswers(ctx, input.RoundID)
	if err != nil {
		return nil, s.fail(ctx, span, err)
	}

	result, err := scoreRound(input.RoundID, answers)
	if err != nil {
		return nil, s.fail(ctx, span, err)
	}

	dist, err := histogram(answers)
	if err != nil {
		return nil, s.fail(ctx, span, err)
	}
	roundID := input.RoundID
	dist.RoundID = &roundID

	return &ComputeDistributionOutput{Distribution: dist, WinningValue: result.WinningValue}, nil
}

// ComputeGeneralDistribution returns the histogram of every stored answer
func (s *service) ComputeGeneralDistribution(ctx context.Context, input *ComputeGeneralDistributionInput) (*ComputeGeneralDistributionOutput, error) {
	if input == nil {
		return nil, errs.New(errs.KindInvalidInput, "input cannot be nil")
	}

	ctx, span, done := s.begin(ctx, "StatsService.ComputeGeneralDistribution", "general_distribution")
	defer done()

	answers, err := s.allAnswers(ctx)
	if err != nil {
		return nil, s.fail(ctx, span, err)
	}

	dist, err := histogram(answers)
	if err != nil {
		return nil, s.fail(ctx, span, err)
	}

	return &ComputeGeneralDistributionOutput{
		Distribution: dist,
		WinningValue: generalStats(answers).WinningValue,
	}, nil
}

// GetRoundView hides results while a round is open. Everything shown for a
// closed round comes from a single read of its answers.
func (s *service) GetRoundView(ctx context.Context, input *GetRoundViewInput) (*GetRoundViewOutput, error) {
	if input == nil {
		return nil, errs.New(errs.KindInvalidInput, "input cannot be nil")
	}

	ctx, span, done := s.begin(ctx, "StatsService.GetRoundView", "round_view",
		attribute.Int64("round.id", input.RoundID))
	defer done()

	round, err := s.getRound(ctx, input.RoundID)
	if err != nil {
		return nil, s.fail(ctx, span, err)
	}

	view := &models.RoundView{RoundID: round.ID, Status: round.Status}

	if round.Status.IsOpen() {
		count, err := s.answerRepo.CountAnswersByRound(ctx, &answerRepo.CountAnswersByRoundInput{RoundID: round.ID})
		if err != nil {
			return nil, s.fail(ctx, span, errs.Internal(err, "failed to count answers"))
		}
		view.AnswersCount = &count.Count
		return &GetRoundViewOutput{View: view}, nil
	}

	answers, err := s.roundAnswers(ctx, round.ID)
	if err != nil {
		return nil, s.fail(ctx, span, err)
	}

	total := len(answers)
	view.TotalAnswers = &total
	view.Winners = []*models.Answer{}
	view.Distribution = []models.DistributionEntry{}

	if total == 0 {
		return &GetRoundViewOutput{View: view}, nil
	}

	result, err := scoring.Score(answers)
	if err != nil {
		return nil, s.fail(ctx, span, errs.Internal(err, "failed to score round"))
	}

	dist, err := histogram(answers)
	if err != nil {
		return nil, s.fail(ctx, span, err)
	}

	view.Mean = &result.Mean
	view.WinningValue = &result.WinningValue
	view.Winners = winnersOf(answers, result.WinnerIDs)
	view.Distribution = dist.NonZero()

	return &GetRoundViewOutput{View: view}, nil
}

// GetGeneralView combines the all rounds stats and histogram from one read
func (s *service) GetGeneralView(ctx context.Context, input *GetGeneralViewInput) (*GetGeneralViewOutput, error) {
	if input == nil {
		return nil, errs.New(errs.KindInvalidInput, "input cannot be nil")
	}

	ctx, span, done := s.begin(ctx, "StatsService.GetGeneralView", "general_view")
	defer done()

	answers, err := s.allAnswers(ctx)
	if err != nil {
		return nil, s.fail(ctx, span, err)
	}

	dist, err := histogram(answers)
	if err != nil {
		return nil, s.fail(ctx, span, err)
	}

	general := generalStats(answers)

	return &GetGeneralViewOutput{
		View: &models.GeneralView{
			Mean:         general.Mean,
			WinningValue: general.WinningValue,
			TotalAnswers: general.TotalAnswers,
			Distribution: dist.NonZero(),
		},
	}, nil
}

// begin starts a span and returns a func that ends it and records the latency
func (s *service) begin(ctx context.Context, spanName, operation string, attrs ...attribute.KeyValue) (context.Context, trace.Span, func()) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, spanName, trace.WithAttributes(attrs...))
	return ctx, span, func() {
		s.metrics.ObserveComputation(operation, time.Since(start))
		span.End()
	}
}

func (s *service) getRound(ctx context.Context, roundID int64) (*models.Round, error) {
	round, err := s.roundRepo.GetRound(ctx, &roundRepo.GetRoundInput{RoundID: roundID})
	if err != nil {
		if errors.Is(err, roundRepo.ErrRoundNotFound) {
			return nil, errs.Newf(errs.KindNotFound, "round %d not found", roundID)
		}
		return nil, errs.Internal(err, "failed to get round")
	}
	return round, nil
}

func (s *service) roundAnswers(ctx context.Context, roundID int64) ([]*models.Answer, error) {
	out, err := s.answerRepo.ListAnswersByRound(ctx, &answerRepo.ListAnswersByRoundInput{RoundID: roundID})
	if err != nil {
		return nil, errs.Internal(err, "failed to list answers")
	}
	return out.Answers, nil
}

func (s *service) allAnswers(ctx context.Context) ([]*models.Answer, error) {
	out, err := s.answerRepo.ListAllAnswers(ctx, &answerRepo.ListAllAnswersInput{})
	if err != nil {
		return nil, errs.Internal(err, "failed to list answers")
	}
	return out.Answers, nil
}

func scoreRound(roundID int64, answers []*models.Answer) (*scoring.Result, error) {
	result, err := scoring.Score(answers)
	if err != nil {
		if errors.Is(err, scoring.ErrNoAnswers) {
			return nil, errs.Newf(errs.KindNotFound, "round %d has no answers yet", roundID)
		}
		return nil, errs.Internal(err, "failed to score round")
	}
	return result, nil
}

func generalStats(answers []*models.Answer) *models.GeneralStats {
	stats := &models.GeneralStats{TotalAnswers: len(answers)}
	result, err := scoring.Score(answers)
	if err != nil {
		return stats
	}
	stats.Mean = &result.Mean
	stats.WinningValue = &result.WinningValue
	return stats
}

func histogram(answers []*models.Answer) (*models.Distribution, error) {
	dist, err := scoring.Histogram(answers)
	if err != nil {
		return nil, errs.Internal(err, "stored answer is out of range")
	}
	return &dist, nil
}

// winnersOf picks the winning answers out of answers, keeping ID order
func winnersOf(answers []*models.Answer, winnerIDs []int64) []*models.Answer {
	byID := make(map[int64]*models.Answer, len(answers))
	for _, a := range answers {
		byID[a.ID] = a
	}

	winners := make([]*models.Answer, 0, len(winnerIDs))
	for _, id := range winnerIDs {
		if a, ok := byID[id]; ok {
			winners = append(winners, a)
		}
	}
	return winners
}

// fail marks the span and logs internal errors, returning err unchanged
func (s *service) fail(ctx context.Context, span trace.Span, err error) error {
	kind := errs.KindOf(err)
	span.SetAttributes(attribute.String("error.kind", string(kind)))
	if kind == errs.KindInternal {
		span.RecordError(err)
		span.SetStatus(codes.Error, errs.MessageOf(err))
		s.logger.ErrorContext(ctx, "stats computation failed", "error", err)
	}
	return err
}
