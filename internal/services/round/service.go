package round

import (
	"context"
	"errors"
	"log/slog"

	"github.com/KirkDiggler/closest/internal/common/clock"
	"github.com/KirkDiggler/closest/internal/common/errs"
	"github.com/KirkDiggler/closest/internal/metrics"
	"github.com/KirkDiggler/closest/internal/models"
	answerRepo "github.com/KirkDiggler/closest/internal/repositories/answer"
	roundRepo "github.com/KirkDiggler/closest/internal/repositories/round"
)

// service implements the Service interface
type service struct {
	roundRepo  roundRepo.Repository
	answerRepo answerRepo.Repository
	clock      clock.Clock
	metrics    metrics.Recorder
	logger     *slog.Logger
}

// New creates a new round service
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

	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	recorder := cfg.Metrics
	if recorder == nil {
		recorder = metrics.Noop{}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &service{
		roundRepo:  cfg.RoundRepo,
		answerRepo: cfg.AnswerRepo,
		clock:      cfg.Clock,
		metrics:    recorder,
		logger:     logger.With("service", "round"),
	}, nil
}

// CreateRound starts a new round
func (s *service) CreateRound(ctx context.Context, input *CreateRoundInput) (*CreateRoundOutput, error) {
	if input == nil {
		return nil, errs.New(errs.KindInvalidInput, "input cannot be nil")
	}

	status := input.Status
	if status == "" {
		status = models.RoundStatusOpen
	}

	if !status.IsValid() {
		return nil, errs.Newf(errs.KindInvalidInput, "status must be %q or %q", models.RoundStatusOpen, models.RoundStatusClosed)
	}

	round, err := s.roundRepo.CreateRound(ctx, &roundRepo.CreateRoundInput{
		Status:    status,
		CreatedAt: s.clock.Now(),
	})
	if err != nil {
		return nil, errs.Internal(err, "failed to create round")
	}

	s.logger.InfoContext(ctx, "round created", "round_id", round.ID, "status", round.Status)

	return &CreateRoundOutput{Round: round}, nil
}

// GetRound returns a round by ID
func (s *service) GetRound(ctx context.Context, input *GetRoundInput) (*GetRoundOutput, error) {
	if input == nil {
		return nil, errs.New(errs.KindInvalidInput, "input cannot be nil")
	}

	round, err := s.roundRepo.GetRound(ctx, &roundRepo.GetRoundInput{RoundID: input.RoundID})
	if err != nil {
		return nil, s.mapRepoError(err, input.RoundID, "failed to get round")
	}

	return &GetRoundOutput{Round: round}, nil
}

// ListRounds returns a page of rounds newest first
func (s *service) ListRounds(ctx context.Context, input *ListRoundsInput) (*ListRoundsOutput, error) {
	if input == nil {
		return nil, errs.New(errs.KindInvalidInput, "input cannot be nil")
	}

	limit := input.Limit
	if limit == 0 {
		limit = DefaultListLimit
	}

	if limit < 0 || limit > MaxListLimit {
		return nil, errs.Newf(errs.KindInvalidInput, "limit must be between 1 and %d", MaxListLimit)
	}

	if input.Offset < 0 {
		return nil, errs.New(errs.KindInvalidInput, "offset cannot be negative")
	}

	if input.Status != nil && !input.Status.IsValid() {
		return nil, errs.Newf(errs.KindInvalidInput, "unknown status %q", *input.Status)
	}

	out, err := s.roundRepo.ListRounds(ctx, &roundRepo.ListRoundsInput{
		Limit:  limit,
		Offset: input.Offset,
		Status: input.Status,
	})
	if err != nil {
		return nil, errs.Internal(err, "failed to list rounds")
	}

	return &ListRoundsOutput{Rounds: out.Rounds}, nil
}

// SetStatus moves a round between open and closed
func (s *service) SetStatus(ctx context.Context, input *SetStatusInput) (*SetStatusOutput, error) {
	if input == nil {
		return nil, errs.New(errs.KindInvalidInput, "input cannot be nil")
	}

	if !input.Status.IsValid() {
		return nil, errs.Newf(errs.KindInvalidInput, "status must be %q or %q", models.RoundStatusOpen, models.RoundStatusClosed)
	}

	current, err := s.roundRepo.GetRound(ctx, &roundRepo.GetRoundInput{RoundID: input.RoundID})
	if err != nil {
		return nil, s.mapRepoError(err, input.RoundID, "failed to get round")
	}

	if current.Status == input.Status {
		return &SetStatusOutput{Round: current, Changed: false}, nil
	}

	updated, err := s.roundRepo.UpdateRoundStatus(ctx, &roundRepo.UpdateRoundStatusInput{
		RoundID: input.RoundID,
		Status:  input.Status,
	})
	if err != nil {
		return nil, s.mapRepoError(err, input.RoundID, "failed to update round status")
	}

	s.metrics.RoundStatusChanged(updated.Status)
	s.logger.InfoContext(ctx, "round status changed",
		"round_id", updated.ID,
		"from", current.Status,
		"to", updated.Status)

	return &SetStatusOutput{Round: updated, Changed: true}, nil
}

// DeleteRound removes the round first so in-flight submissions fail with
// not found, then removes its answers. The answer cleanup also runs when the
// round is already gone so a previously interrupted delete can be finished.
func (s *service) DeleteRound(ctx context.Context, input *DeleteRoundInput) (*DeleteRoundOutput, error) {
	if input == nil {
		return nil, errs.New(errs.KindInvalidInput, "input cannot be nil")
	}

	out, err := s.roundRepo.DeleteRound(ctx, &roundRepo.DeleteRoundInput{RoundID: input.RoundID})
	if err != nil {
		return nil, errs.Internal(err, "failed to delete round")
	}

	cascade, err := s.answerRepo.DeleteAnswersByRound(ctx, &answerRepo.DeleteAnswersByRoundInput{RoundID: input.RoundID})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to delete answers of round", "round_id", input.RoundID, "error", err)
		return nil, errs.Internal(err, "failed to delete answers of round")
	}

	if out.Deleted {
		s.logger.InfoContext(ctx, "round deleted", "round_id", input.RoundID, "answers_deleted", cascade.Deleted)
	}

	return &DeleteRoundOutput{
		Deleted:        out.Deleted,
		AnswersDeleted: cascade.Deleted,
	}, nil
}

// CanAccept always reads the stored round so the answer reflects the status now
func (s *service) CanAccept(ctx context.Context, input *CanAcceptInput) (*CanAcceptOutput, error) {
	if input == nil {
		return nil, errs.New(errs.KindInvalidInput, "input cannot be nil")
	}

	round, err := s.roundRepo.GetRound(ctx, &roundRepo.GetRoundInput{RoundID: input.RoundID})
	if err != nil {
		return nil, s.mapRepoError(err, input.RoundID, "failed to get round")
	}

	return &CanAcceptOutput{Round: round, Accepting: round.CanAccept()}, nil
}

func (s *service) mapRepoError(err error, roundID int64, message string) error {
	switch {
	case errors.Is(err, roundRepo.ErrRoundNotFound):
		return errs.Newf(errs.KindNotFound, "round %d not found", roundID)
	case errors.Is(err, roundRepo.ErrConcurrentUpdate):
		return errs.Newf(errs.KindConflict, "round %d was modified concurrently, try again", roundID)
	default:
		return errs.Internal(err, message)
	}
}
