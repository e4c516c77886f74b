package messaging

import (
	"math/rand"

	"github.com/KirkDiggler/closest/internal/common/errs"
	"github.com/KirkDiggler/closest/internal/models"
)

// MessageTone represents the tone of a message
type MessageTone string

const (
	// ToneNeutral is a neutral tone
	ToneNeutral MessageTone = "neutral"

	// ToneFunny is a humorous tone
	ToneFunny MessageTone = "funny"

	// ToneCelebration is a celebratory tone
	ToneCelebration MessageTone = "celebration"
)

// GetGuessMessageInput contains parameters for a guess acknowledgement
type GetGuessMessageInput struct {
	// PlayerName is the name of the player who guessed
	PlayerName string

	// Value is the accepted guess
	Value int

	// PreferredTone is the preferred tone for the message (optional)
	PreferredTone MessageTone
}

// GetGuessMessageOutput contains the guess acknowledgement
type GetGuessMessageOutput struct {
	Message string
	Tone    MessageTone
}

// GetRoundStatusMessageInput is the input for GetRoundStatusMessage
type GetRoundStatusMessageInput struct {
	RoundID int64
	Status  models.RoundStatus

	// AnswersCount is the number of guesses at the time of the change
	AnswersCount int
}

// GetRoundStatusMessageOutput is the output for GetRoundStatusMessage
type GetRoundStatusMessageOutput struct {
	Title   string
	Message string
}

// GetResultsMessageInput is the input for GetResultsMessage
type GetResultsMessageInput struct {
	RoundID      int64
	WinningValue int
	TotalAnswers int

	// WinnerNames are in winner ID order
	WinnerNames []string
}

// GetResultsMessageOutput is the output for GetResultsMessage
type GetResultsMessageOutput struct {
	Title   string
	Message string
}

// GetErrorMessageInput contains parameters for getting an error message
type GetErrorMessageInput struct {
	// Kind is the kind of the failure
	Kind errs.Kind

	// Detail is the message carried by the error, shown after the flavour line
	Detail string
}

// GetErrorMessageOutput contains the result of getting an error message
type GetErrorMessageOutput struct {
	Title   string
	Message string
}

// ServiceConfig contains configuration for the messaging service
type ServiceConfig struct {
	// Rand selects among message variants. Seeded from the clock when nil.
	Rand *rand.Rand
}
