package round

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/closest/internal/services/round Service

import "context"

// Service defines the interface for round lifecycle operations
type Service interface {
	// CreateRound starts a new round, open unless a status is given
	CreateRound(ctx context.Context, input *CreateRoundInput) (*CreateRoundOutput, error)

	// GetRound returns a round by ID
	GetRound(ctx context.Context, input *GetRoundInput) (*GetRoundOutput, error)

	// ListRounds returns rounds newest first
	ListRounds(ctx context.Context, input *ListRoundsInput) (*ListRoundsOutput, error)

	// SetStatus opens or closes a round. Setting the current status is a no-op.
	SetStatus(ctx context.Context, input *SetStatusInput) (*SetStatusOutput, error)

	// DeleteRound removes a round and every answer in it
	DeleteRound(ctx context.Context, input *DeleteRoundInput) (*DeleteRoundOutput, error)

	// CanAccept reads the round and reports whether it accepts answers now
	CanAccept(ctx context.Context, input *CanAcceptInput) (*CanAcceptOutput, error)
}
