package models

import (
	"time"
)

// RoundStatus represents whether a round accepts answers
type RoundStatus string

const (
	// RoundStatusOpen indicates a round is accepting answers
	RoundStatusOpen RoundStatus = "open"

	// RoundStatusClosed indicates a round is closed and its results can be shown
	RoundStatusClosed RoundStatus = "closed"
)

// IsValid reports whether s is one of the two known statuses
func (s RoundStatus) IsValid() bool {
	return s == RoundStatusOpen || s == RoundStatusClosed
}

// IsOpen reports whether the round accepts answers
func (s RoundStatus) IsOpen() bool {
	return s == RoundStatusOpen
}

// Round represents one instance of the guessing game
type Round struct {
	// ID is the unique identifier for the round, never reused
	ID int64 `json:"id"`

	// CreatedAt is when the round was created
	CreatedAt time.Time `json:"createdAt"`

	// Status is the current state of the round
	Status RoundStatus `json:"status"`
}

// CanAccept reports whether an answer may be accepted into the round right now
func (r *Round) CanAccept() bool {
	return r != nil && r.Status.IsOpen()
}
