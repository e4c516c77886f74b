package messaging

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/KirkDiggler/closest/internal/common/errs"
	"github.com/KirkDiggler/closest/internal/models"
)

// service implements the Service interface
type service struct {
	// Random number generator for selecting random messages. Interactions
	// are handled concurrently and *rand.Rand is not safe for that.
	mu   sync.Mutex
	rand *rand.Rand
}

// NewService creates a new messaging service
func NewService(config *ServiceConfig) (Service, error) {
	var r *rand.Rand
	if config != nil {
		r = config.Rand
	}

	if r == nil {
		// Create a new random source with the current time as seed
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &service{rand: r}, nil
}

// GetGuessMessage returns the reply a player sees after their guess is accepted
func (s *service) GetGuessMessage(ctx context.Context, input *GetGuessMessageInput) (*GetGuessMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	tone := input.PreferredTone
	if tone == "" {
		tone = ToneFunny
	}

	var messages []string
	switch {
	case input.Value == models.MinAnswerValue:
		messages = []string{
			fmt.Sprintf("A bold 0 from %s. Either genius or chaos, we'll find out.", input.PlayerName),
			fmt.Sprintf("%s went all the way down to 0. Respect the commitment.", input.PlayerName),
		}
	case input.Value == models.MaxAnswerValue:
		messages = []string{
			fmt.Sprintf("%s says 100. Someone has to drag the average up.", input.PlayerName),
			fmt.Sprintf("Maximum effort from %s: 100 on the board.", input.PlayerName),
		}
	case input.Value == 50:
		messages = []string{
			fmt.Sprintf("%s played it right down the middle with 50.", input.PlayerName),
			fmt.Sprintf("50 from %s. The safest bet in the house.", input.PlayerName),
		}
	default:
		messages = []string{
			fmt.Sprintf("Got it, %s. %d is locked in.", input.PlayerName, input.Value),
			fmt.Sprintf("%d from %s. Now we wait and see where the crowd lands.", input.Value, input.PlayerName),
			fmt.Sprintf("Noted, %s! Your %d is in the hat.", input.PlayerName, input.Value),
			fmt.Sprintf("%s guessed %d. Bold? Sensible? The mean will decide.", input.PlayerName, input.Value),
		}
	}

	return &GetGuessMessageOutput{
		Message: s.pick(messages),
		Tone:    tone,
	}, nil
}

// GetRoundStatusMessage returns an announcement for a round being opened or closed
func (s *service) GetRoundStatusMessage(ctx context.Context, input *GetRoundStatusMessageInput) (*GetRoundStatusMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	switch input.Status {
	case models.RoundStatusOpen:
		return &GetRoundStatusMessageOutput{
			Title: fmt.Sprintf("Round #%d is open", input.RoundID),
			Message: s.pick([]string{
				"Pick a whole number from 0 to 100. Whoever lands closest to the crowd's average wins.",
				"Guessing is open! 0 to 100, closest to the average takes it.",
				"Time to read the room. Guess 0 to 100 and aim for the average.",
			}),
		}, nil
	case models.RoundStatusClosed:
		return &GetRoundStatusMessageOutput{
			Title: fmt.Sprintf("Round #%d is closed", input.RoundID),
			Message: s.pick([]string{
				fmt.Sprintf("Pencils down! %s collected.", pluralize(input.AnswersCount, "guess", "guesses")),
				fmt.Sprintf("That's a wrap with %s. Results are in.", pluralize(input.AnswersCount, "guess", "guesses")),
			}),
		}, nil
	default:
		return nil, fmt.Errorf("unknown round status %q", input.Status)
	}
}

// GetResultsMessage returns the headline for a closed round's results
func (s *service) GetResultsMessage(ctx context.Context, input *GetResultsMessageInput) (*GetResultsMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	title := fmt.Sprintf("Round #%d results", input.RoundID)

	if input.TotalAnswers == 0 || len(input.WinnerNames) == 0 {
		return &GetResultsMessageOutput{
			Title: title,
			Message: s.pick([]string{
				"Nobody guessed. A perfect round, technically.",
				"Zero guesses. The average is a mystery for the ages.",
			}),
		}, nil
	}

	names := joinNames(input.WinnerNames)
	var messages []string
	if len(input.WinnerNames) == 1 {
		messages = []string{
			fmt.Sprintf("%s wins, closest to %d!", names, input.WinningValue),
			fmt.Sprintf("The crowd said %d and %s read it best.", input.WinningValue, names),
			fmt.Sprintf("Nobody got nearer to %d than %s. Take a bow.", input.WinningValue, names),
		}
	} else {
		messages = []string{
			fmt.Sprintf("A tie! %s all landed just as close to %d.", names, input.WinningValue),
			fmt.Sprintf("Shared glory at %d for %s.", input.WinningValue, names),
		}
	}

	return &GetResultsMessageOutput{
		Title:   title,
		Message: s.pick(messages),
	}, nil
}

// GetErrorMessage returns a user-friendly error message
func (s *service) GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	var title string
	var messages []string

	switch input.Kind {
	case errs.KindRoundClosed:
		title = "Round Closed"
		messages = []string{
			"Too late! This round has already closed.",
			"The doors are shut on this one. Catch the next round!",
		}
	case errs.KindNotFound:
		title = "Not Found"
		messages = []string{
			"I looked everywhere and came up empty.",
			"That doesn't seem to exist. Double-check the round number?",
		}
	case errs.KindInvalidInput:
		title = "Invalid Guess"
		messages = []string{
			"That doesn't look like a whole number from 0 to 100.",
			"Nice try, but guesses have to be whole numbers from 0 to 100.",
		}
	case errs.KindConflict:
		title = "Try Again"
		messages = []string{
			"Someone else changed this round at the same moment. Give it another go.",
		}
	default:
		title = "Something Went Wrong"
		messages = []string{
			"Something broke on my end. Try again in a moment.",
			"The numbers got tangled. Please try again shortly.",
		}
	}

	message := s.pick(messages)
	if input.Detail != "" && input.Kind != errs.KindInternal && input.Kind != "" {
		message = message + " (" + input.Detail + ")"
	}

	return &GetErrorMessageOutput{
		Title:   title,
		Message: message,
	}, nil
}

func (s *service) pick(messages []string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return messages[s.rand.Intn(len(messages))]
}

func pluralize(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}

// joinNames renders "A", "A and B" or "A, B and C"
func joinNames(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	default:
		return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
	}
}
