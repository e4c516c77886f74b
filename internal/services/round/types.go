package round

import (
	"log/slog"

	"github.com/KirkDiggler/closest/internal/common/clock"
	"github.com/KirkDiggler/closest/internal/metrics"
	"github.com/KirkDiggler/closest/internal/models"
	answerRepo "github.com/KirkDiggler/closest/internal/repositories/answer"
	roundRepo "github.com/KirkDiggler/closest/internal/repositories/round"
)

const (
	// DefaultListLimit is used when a listing does not ask for a page size
	DefaultListLimit = 50

	// MaxListLimit caps the page size of a listing
	MaxListLimit = 500
)

// Config holds configuration for the round service
type Config struct {
	// RoundRepo is the repository for round data
	RoundRepo roundRepo.Repository

	// AnswerRepo is used to cascade round deletion
	AnswerRepo answerRepo.Repository

	// Clock provides creation timestamps
	Clock clock.Clock

	// Metrics is optional
	Metrics metrics.Recorder

	// Logger is optional, defaults to slog.Default()
	Logger *slog.Logger
}

// CreateRoundInput defines the input for creating a round
type CreateRoundInput struct {
	// Status is the initial status, open when empty
	Status models.RoundStatus
}

// CreateRoundOutput defines the output for creating a round
type CreateRoundOutput struct {
	Round *models.Round
}

// GetRoundInput defines the input for getting a round
type GetRoundInput struct {
	RoundID int64
}

// GetRoundOutput defines the output for getting a round
type GetRoundOutput struct {
	Round *models.Round
}

// ListRoundsInput defines the input for listing rounds
type ListRoundsInput struct {
	// Status filters the listing when set
	Status *models.RoundStatus

	// Limit defaults to DefaultListLimit when zero
	Limit  int
	Offset int
}

// ListRoundsOutput defines the output for listing rounds
type ListRoundsOutput struct {
	Rounds []*models.Round
}

// SetStatusInput defines the input for changing a round status
type SetStatusInput struct {
	RoundID int64
	Status  models.RoundStatus
}

// SetStatusOutput defines the output for changing a round status
type SetStatusOutput struct {
	Round *models.Round

	// Changed is false when the round already had the requested status
	Changed bool
}

// DeleteRoundInput defines the input for deleting a round
type DeleteRoundInput struct {
	RoundID int64
}

// DeleteRoundOutput defines the output for deleting a round
type DeleteRoundOutput struct {
	// Deleted is false when the round did not exist
	Deleted bool

	// AnswersDeleted is the number of answers removed with the round
	AnswersDeleted int
}

// CanAcceptInput defines the input for checking a round
type CanAcceptInput struct {
	RoundID int64
}

// CanAcceptOutput defines the output for checking a round
type CanAcceptOutput struct {
	Round     *models.Round
	Accepting bool
}
