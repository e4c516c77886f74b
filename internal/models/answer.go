package models

import (
	"time"
)

const (
	// MinAnswerValue is the lowest value a player may guess
	MinAnswerValue = 0

	// MaxAnswerValue is the highest value a player may guess
	MaxAnswerValue = 100
)

// Answer represents one player's guess in a round
type Answer struct {
	// ID is the unique identifier for the answer, assigned on insert
	ID int64 `json:"id"`

	// RoundID is the round the answer belongs to
	RoundID int64 `json:"roundId"`

	// UserName is the trimmed display name of the player
	UserName string `json:"userName"`

	// Value is the guessed integer in [MinAnswerValue, MaxAnswerValue]
	Value int `json:"value"`

	// SubmittedAt is when the answer was accepted
	SubmittedAt time.Time `json:"submittedAt"`
}
