package answer

import (
	"errors"
	"time"

	"github.com/KirkDiggler/closest/internal/models"
)

var (
	// ErrAnswerNotFound is returned when an answer is not found
	ErrAnswerNotFound = errors.New("answer not found")

	// ErrRoundNotFound is returned when inserting into a round that does not exist
	ErrRoundNotFound = errors.New("round not found")

	// ErrRoundClosed is returned when inserting into a round that is not open
	ErrRoundClosed = errors.New("round is closed")

	// ErrConcurrentUpdate is returned when an answer changed while it was being updated
	ErrConcurrentUpdate = errors.New("answer was modified concurrently")
)

// NewAnswer is an answer that has not been assigned an ID yet.
// UserName and Value must already be validated.
type NewAnswer struct {
	UserName    string
	Value       int
	SubmittedAt time.Time
}

type InsertAnswerInput struct {
	RoundID     int64
	UserName    string
	Value       int
	SubmittedAt time.Time
}

type InsertAnswersInput struct {
	RoundID int64
	Answers []*NewAnswer
}

type InsertAnswersOutput struct {
	// Answers are the stored answers in input order
	Answers []*models.Answer
}

type GetAnswerInput struct {
	AnswerID int64
}

type GetAnswersByIDsInput struct {
	AnswerIDs []int64
}

type ListAnswersByRoundInput struct {
	RoundID int64
}

type ListAllAnswersInput struct{}

type ListAnswersInput struct {
	// RoundID restricts the listing to one round when set
	RoundID *int64
	Limit   int
	Offset  int
}

type ListAnswersOutput struct {
	Answers []*models.Answer
}

type CountAnswersByRoundInput struct {
	RoundID int64
}

type CountAnswersByRoundOutput struct {
	Count int
}

type UpdateAnswerInput struct {
	AnswerID int64

	// Nil fields are left unchanged
	UserName *string
	Value    *int
}

type DeleteAnswerInput struct {
	AnswerID int64
}

type DeleteAnswerOutput struct {
	Deleted bool
}

type DeleteAnswersByRoundInput struct {
	RoundID int64
}

type DeleteAnswersByRoundOutput struct {
	Deleted int
}
