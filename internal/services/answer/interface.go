package answer

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/closest/internal/services/answer Service

import "context"

// Service defines the interface for answer submission and administration
type Service interface {
	// SubmitAnswer validates and stores one answer in an open round
	SubmitAnswer(ctx context.Context, input *SubmitAnswerInput) (*SubmitAnswerOutput, error)

	// SubmitAnswers validates every item then stores all of them or none.
	// A validation failure is returned as a *BatchError.
	SubmitAnswers(ctx context.Context, input *SubmitAnswersInput) (*SubmitAnswersOutput, error)

	// GetAnswer returns an answer by ID
	GetAnswer(ctx context.Context, input *GetAnswerInput) (*GetAnswerOutput, error)

	// ListAnswers returns answers newest first, optionally for one round
	ListAnswers(ctx context.Context, input *ListAnswersInput) (*ListAnswersOutput, error)

	// UpdateAnswer corrects the name and/or value of a stored answer
	UpdateAnswer(ctx context.Context, input *UpdateAnswerInput) (*UpdateAnswerOutput, error)

	// DeleteAnswer removes a single answer
	DeleteAnswer(ctx context.Context, input *DeleteAnswerInput) (*DeleteAnswerOutput, error)
}
