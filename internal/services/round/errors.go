package round

// RoundError is a custom error type for round service construction errors
type RoundError string

// Error implements the error interface
func (e RoundError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrNilConfig     RoundError = "config cannot be nil"
	ErrNilRoundRepo  RoundError = "round repository cannot be nil"
	ErrNilAnswerRepo RoundError = "answer repository cannot be nil"
	ErrNilClock      RoundError = "clock cannot be nil"
)
