package answer

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/closest/internal/repositories/answer Repository

import (
	"context"

	"github.com/KirkDiggler/closest/internal/models"
)

// Repository defines the interface for answer persistence
type Repository interface {
	// InsertAnswer stores one answer if its round exists and is open
	InsertAnswer(ctx context.Context, input *InsertAnswerInput) (*models.Answer, error)

	// InsertAnswers stores every answer or none of them. The round status is
	// checked in the same atomic step as the write.
	InsertAnswers(ctx context.Context, input *InsertAnswersInput) (*InsertAnswersOutput, error)

	// GetAnswer retrieves an answer by ID
	GetAnswer(ctx context.Context, input *GetAnswerInput) (*models.Answer, error)

	// GetAnswersByIDs retrieves the answers with the given IDs ascending by ID.
	// IDs that do not exist are skipped.
	GetAnswersByIDs(ctx context.Context, input *GetAnswersByIDsInput) (*ListAnswersOutput, error)

	// ListAnswersByRound retrieves every answer of a round, ascending by ID
	ListAnswersByRound(ctx context.Context, input *ListAnswersByRoundInput) (*ListAnswersOutput, error)

	// ListAllAnswers retrieves every stored answer, ascending by ID
	ListAllAnswers(ctx context.Context, input *ListAllAnswersInput) (*ListAnswersOutput, error)

	// ListAnswers retrieves a page of answers newest first
	ListAnswers(ctx context.Context, input *ListAnswersInput) (*ListAnswersOutput, error)

	// CountAnswersByRound returns the number of answers in a round
	CountAnswersByRound(ctx context.Context, input *CountAnswersByRoundInput) (*CountAnswersByRoundOutput, error)

	// UpdateAnswer changes the name and/or value of an answer
	UpdateAnswer(ctx context.Context, input *UpdateAnswerInput) (*models.Answer, error)

	// DeleteAnswer removes a single answer, reporting whether it existed
	DeleteAnswer(ctx context.Context, input *DeleteAnswerInput) (*DeleteAnswerOutput, error)

	// DeleteAnswersByRound removes every answer of a round
	DeleteAnswersByRound(ctx context.Context, input *DeleteAnswersByRoundInput) (*DeleteAnswersByRoundOutput, error)
}
