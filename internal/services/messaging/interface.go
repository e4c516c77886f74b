package messaging

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/closest/internal/services/messaging Service

import "context"

// Service is the interface for the messaging service
type Service interface {
	// GetGuessMessage returns the reply a player sees after their guess is accepted
	GetGuessMessage(ctx context.Context, input *GetGuessMessageInput) (*GetGuessMessageOutput, error)

	// GetRoundStatusMessage returns an announcement for a round being opened or closed
	GetRoundStatusMessage(ctx context.Context, input *GetRoundStatusMessageInput) (*GetRoundStatusMessageOutput, error)

	// GetResultsMessage returns the headline for a closed round's results
	GetResultsMessage(ctx context.Context, input *GetResultsMessageInput) (*GetResultsMessageOutput, error)

	// GetErrorMessage returns a user-friendly error message
	GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error)
}
