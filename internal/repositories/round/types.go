package round

import (
	"errors"
	"time"

	"github.com/KirkDiggler/closest/internal/models"
)

var (
	// ErrRoundNotFound is returned when a round is not found
	ErrRoundNotFound = errors.New("round not found")

	// ErrConcurrentUpdate is returned when a round changed while it was being updated
	ErrConcurrentUpdate = errors.New("round was modified concurrently")
)

type CreateRoundInput struct {
	Status    models.RoundStatus
	CreatedAt time.Time
}

type GetRoundInput struct {
	RoundID int64
}

type UpdateRoundStatusInput struct {
	RoundID int64
	Status  models.RoundStatus
}

type DeleteRoundInput struct {
	RoundID int64
}

type DeleteRoundOutput struct {
	Deleted bool
}

type ListRoundsInput struct {
	Limit  int
	Offset int

	// Status filters the listing when set
	Status *models.RoundStatus
}

type ListRoundsOutput struct {
	Rounds []*models.Round
}
