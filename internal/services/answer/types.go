package answer

import (
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"github.com/KirkDiggler/closest/internal/common/clock"
	"github.com/KirkDiggler/closest/internal/metrics"
	"github.com/KirkDiggler/closest/internal/models"
	answerRepo "github.com/KirkDiggler/closest/internal/repositories/answer"
)

const (
	// MaxBatchSize is the most items a single batch may carry
	MaxBatchSize = 100

	// DefaultListLimit is used when a listing does not ask for a page size
	DefaultListLimit = 50

	// MaxListLimit caps the page size of a listing
	MaxListLimit = 500
)

// Config holds configuration for the answer service
type Config struct {
	// AnswerRepo is the repository for answer data
	AnswerRepo answerRepo.Repository

	// Clock provides submission timestamps
	Clock clock.Clock

	// Metrics is optional
	Metrics metrics.Recorder

	// Tracer is optional, defaults to the global provider
	Tracer trace.Tracer

	// Logger is optional, defaults to slog.Default()
	Logger *slog.Logger
}

// SubmitAnswerInput defines the input for submitting an answer
type SubmitAnswerInput struct {
	RoundID  int64
	UserName string

	// RawValue is the answer as typed, parsed as a base 10 integer
	RawValue string
}

// SubmitAnswerOutput defines the output for submitting an answer
type SubmitAnswerOutput struct {
	Answer *models.Answer
}

// SubmissionItem is one entry of a batch
type SubmissionItem struct {
	UserName string
	RawValue string
}

// SubmitAnswersInput defines the input for a batch submission
type SubmitAnswersInput struct {
	RoundID int64
	Items   []*SubmissionItem
}

// SubmitAnswersOutput defines the output for a batch submission
type SubmitAnswersOutput struct {
	// Answers are in the same order as the submitted items
	Answers []*models.Answer
}

// GetAnswerInput defines the input for getting an answer
type GetAnswerInput struct {
	AnswerID int64
}

// GetAnswerOutput defines the output for getting an answer
type GetAnswerOutput struct {
	Answer *models.Answer
}

// ListAnswersInput defines the input for listing answers
type ListAnswersInput struct {
	// RoundID restricts the listing to one round when set
	RoundID *int64

	// Limit defaults to DefaultListLimit when zero
	Limit  int
	Offset int
}

// ListAnswersOutput defines the output for listing answers
type ListAnswersOutput struct {
	Answers []*models.Answer
}

// UpdateAnswerInput defines the input for correcting an answer
type UpdateAnswerInput struct {
	AnswerID int64

	// At least one of UserName and RawValue must be set
	UserName *string
	RawValue *string
}

// UpdateAnswerOutput defines the output for correcting an answer
type UpdateAnswerOutput struct {
	Answer *models.Answer
}

// DeleteAnswerInput defines the input for deleting an answer
type DeleteAnswerInput struct {
	AnswerID int64
}

// DeleteAnswerOutput defines the output for deleting an answer
type DeleteAnswerOutput struct {
	Deleted bool
}
