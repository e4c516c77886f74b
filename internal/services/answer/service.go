package answer

import (
	"context"
	"errors"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/KirkDiggler/closest/internal/common/clock"
	"github.com/KirkDiggler/closest/internal/common/errs"
	"github.com/KirkDiggler/closest/internal/metrics"
	"github.com/KirkDiggler/closest/internal/models"
	answerRepo "github.com/KirkDiggler/closest/internal/repositories/answer"
)

const tracerName = "github.com/KirkDiggler/closest/internal/services/answer"

// service implements the Service interface
type service struct {
	answerRepo answerRepo.Repository
	clock      clock.Clock
	validate   *validator.Validate
	metrics    metrics.Recorder
	tracer     trace.Tracer
	logger     *slog.Logger
}

// New creates a new answer service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
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

	tracer := cfg.Tracer
	if tracer == nil {
		tracer = otel.Tracer(tracerName)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &service{
		answerRepo: cfg.AnswerRepo,
		clock:      cfg.Clock,
		validate:   validator.New(),
		metrics:    recorder,
		tracer:     tracer,
		logger:     logger.With("service", "answer"),
	}, nil
}

// SubmitAnswer validates the input before touching the store, then relies on
// the store to check the round is open in the same step as the write
func (s *service) SubmitAnswer(ctx context.Context, input *SubmitAnswerInput) (*SubmitAnswerOutput, error) {
	if input == nil {
		return nil, errs.New(errs.KindInvalidInput, "input cannot be nil")
	}

	ctx, span := s.tracer.Start(ctx, "AnswerService.SubmitAnswer",
		trace.WithAttributes(attribute.Int64("round.id", input.RoundID)))
	defer span.End()

	name, value, err := s.validateSubmission(input.UserName, input.RawValue)
	if err != nil {
		return nil, s.reject(ctx, span, input.RoundID, err)
	}

	a, err := s.answerRepo.InsertAnswer(ctx, &answerRepo.InsertAnswerInput{
		RoundID:     input.RoundID,
		UserName:    name,
		Value:       value,
		SubmittedAt: s.clock.Now(),
	})
	if err != nil {
		return nil, s.reject(ctx, span, input.RoundID, mapInsertError(err, input.RoundID))
	}

	s.metrics.AnswersAccepted(1)
	span.SetAttributes(attribute.Int64("answer.id", a.ID))
	s.logger.DebugContext(ctx, "answer accepted", "round_id", a.RoundID, "answer_id", a.ID)

	return &SubmitAnswerOutput{Answer: a}, nil
}

// SubmitAnswers is atomic: every item is validated first and the first
// failure aborts the batch before anything is stored
func (s *service) SubmitAnswers(ctx context.Context, input *SubmitAnswersInput) (*SubmitAnswersOutput, error) {
	if input == nil {
		return nil, errs.New(errs.KindInvalidInput, "input cannot be nil")
	}

	ctx, span := s.tracer.Start(ctx, "AnswerService.SubmitAnswers",
		trace.WithAttributes(
			attribute.Int64("round.id", input.RoundID),
			attribute.Int("batch.size", len(input.Items)),
		))
	defer span.End()

	if len(input.Items) == 0 {
		return nil, s.reject(ctx, span, input.RoundID, errs.New(errs.KindInvalidInput, "batch must contain at least one answer"))
	}

	if len(input.Items) > MaxBatchSize {
		return nil, s.reject(ctx, span, input.RoundID, errs.Newf(errs.KindInvalidInput, "batch must contain at most %d answers", MaxBatchSize))
	}

	now := s.clock.Now()
	pending := make([]*answerRepo.NewAnswer, len(input.Items))
	for i, item := range input.Items {
		if item == nil {
			return nil, s.reject(ctx, span, input.RoundID, &BatchError{
				Index: i,
				Err:   errs.New(errs.KindInvalidInput, "answer must not be null"),
			})
		}

		name, value, err := s.validateSubmission(item.UserName, item.RawValue)
		if err != nil {
			var itemErr *errs.Error
			if !errors.As(err, &itemErr) {
				itemErr = errs.Wrap(errs.KindInvalidInput, err, "invalid answer")
			}
			return nil, s.reject(ctx, span, input.RoundID, &BatchError{Index: i, Err: itemErr})
		}

		pending[i] = &answerRepo.NewAnswer{UserName: name, Value: value, SubmittedAt: now}
	}

	out, err := s.answerRepo.InsertAnswers(ctx, &answerRepo.InsertAnswersInput{
		RoundID: input.RoundID,
		Answers: pending,
	})
	if err != nil {
		return nil, s.reject(ctx, span, input.RoundID, mapInsertError(err, input.RoundID))
	}

	s.metrics.AnswersAccepted(len(out.Answers))
	s.logger.InfoContext(ctx, "answer batch accepted", "round_id", input.RoundID, "count", len(out.Answers))

	return &SubmitAnswersOutput{Answers: out.Answers}, nil
}

// GetAnswer returns an answer by ID
func (s *service) GetAnswer(ctx context.Context, input *GetAnswerInput) (*GetAnswerOutput, error) {
	if input == nil {
		return nil, errs.New(errs.KindInvalidInput, "input cannot be nil")
	}

	a, err := s.answerRepo.GetAnswer(ctx, &answerRepo.GetAnswerInput{AnswerID: input.AnswerID})
	if err != nil {
		return nil, mapAnswerError(err, input.AnswerID, "failed to get answer")
	}

	return &GetAnswerOutput{Answer: a}, nil
}

// ListAnswers returns a page of answers newest first
func (s *service) ListAnswers(ctx context.Context, input *ListAnswersInput) (*ListAnswersOutput, error) {
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

	out, err := s.answerRepo.ListAnswers(ctx, &answerRepo.ListAnswersInput{
		RoundID: input.RoundID,
		Limit:   limit,
		Offset:  input.Offset,
	})
	if err != nil {
		return nil, errs.Internal(err, "failed to list answers")
	}

	return &ListAnswersOutput{Answers: out.Answers}, nil
}

// UpdateAnswer applies the same validation as a submission to each given field
func (s *service) UpdateAnswer(ctx context.Context, input *UpdateAnswerInput) (*UpdateAnswerOutput, error) {
	if input == nil {
		return nil, errs.New(errs.KindInvalidInput, "input cannot be nil")
	}

	if input.UserName == nil && input.RawValue == nil {
		return nil, errs.New(errs.KindInvalidInput, "nothing to update, give userName and/or answer")
	}

	// Placeholders satisfy the validator for whichever field is not changing
	sub := &submission{UserName: "-", Value: models.MinAnswerValue}
	update := &answerRepo.UpdateAnswerInput{AnswerID: input.AnswerID}

	if input.UserName != nil {
		name := NormalizeUserName(*input.UserName)
		sub.UserName = name
		update.UserName = &name
	}

	if input.RawValue != nil {
		value, err := ParseValue(*input.RawValue)
		if err != nil {
			return nil, err
		}
		sub.Value = value
		update.Value = &value
	}

	if err := s.checkSubmission(sub); err != nil {
		return nil, err
	}

	a, err := s.answerRepo.UpdateAnswer(ctx, update)
	if err != nil {
		return nil, mapAnswerError(err, input.AnswerID, "failed to update answer")
	}

	s.logger.InfoContext(ctx, "answer updated", "answer_id", a.ID, "round_id", a.RoundID)

	return &UpdateAnswerOutput{Answer: a}, nil
}

// DeleteAnswer removes a single answer
func (s *service) DeleteAnswer(ctx context.Context, input *DeleteAnswerInput) (*DeleteAnswerOutput, error) {
	if input == nil {
		return nil, errs.New(errs.KindInvalidInput, "input cannot be nil")
	}

	out, err := s.answerRepo.DeleteAnswer(ctx, &answerRepo.DeleteAnswerInput{AnswerID: input.AnswerID})
	if err != nil {
		return nil, errs.Internal(err, "failed to delete answer")
	}

	if out.Deleted {
		s.logger.InfoContext(ctx, "answer deleted", "answer_id", input.AnswerID)
	}

	return &DeleteAnswerOutput{Deleted: out.Deleted}, nil
}

// reject records a refused submission and returns err unchanged
func (s *service) reject(ctx context.Context, span trace.Span, roundID int64, err error) error {
	kind := errs.KindOf(err)
	s.metrics.AnswerRejected(kind)
	span.SetAttributes(attribute.String("error.kind", string(kind)))

	if kind == errs.KindInternal {
		span.RecordError(err)
		span.SetStatus(codes.Error, "submission failed")
		s.logger.ErrorContext(ctx, "submission failed", "round_id", roundID, "error", err)
	} else {
		s.logger.DebugContext(ctx, "submission rejected", "round_id", roundID, "kind", kind, "reason", errs.MessageOf(err))
	}

	return err
}

func mapInsertError(err error, roundID int64) error {
	switch {
	case errors.Is(err, answerRepo.ErrRoundNotFound):
		return errs.Newf(errs.KindNotFound, "round %d not found", roundID)
	case errors.Is(err, answerRepo.ErrRoundClosed):
		return errs.Newf(errs.KindRoundClosed, "round %d is closed", roundID)
	default:
		return errs.Internal(err, "failed to store answer")
	}
}

func mapAnswerError(err error, answerID int64, message string) error {
	switch {
	case errors.Is(err, answerRepo.ErrAnswerNotFound):
		return errs.Newf(errs.KindNotFound, "answer %d not found", answerID)
	case errors.Is(err, answerRepo.ErrConcurrentUpdate):
		return errs.Newf(errs.KindConflict, "answer %d was modified concurrently, try again", answerID)
	default:
		return errs.Internal(err, message)
	}
}
