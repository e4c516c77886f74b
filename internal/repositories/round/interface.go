package round

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/closest/internal/repositories/round Repository

import (
	"context"

	"github.com/KirkDiggler/closest/internal/models"
)

// Repository defines the interface for round persistence
type Repository interface {
	// CreateRound persists a new round and assigns its ID
	CreateRound(ctx context.Context, input *CreateRoundInput) (*models.Round, error)

	// GetRound retrieves a round by ID
	GetRound(ctx context.Context, input *GetRoundInput) (*models.Round, error)

	// UpdateRoundStatus sets the status of a round and returns the stored round
	UpdateRoundStatus(ctx context.Context, input *UpdateRoundStatusInput) (*models.Round, error)

	// DeleteRound removes a round, reporting whether it existed
	DeleteRound(ctx context.Context, input *DeleteRoundInput) (*DeleteRoundOutput, error)

	// ListRounds retrieves rounds newest first
	ListRounds(ctx context.Context, input *ListRoundsInput) (*ListRoundsOutput, error)
}
