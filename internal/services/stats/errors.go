package stats

// StatsError is a custom error type for stats service construction errors
type StatsError string

// Error implements the error interface
func (e StatsError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrNilConfig     StatsError = "config cannot be nil"
	ErrNilRoundRepo  StatsError = "round repository cannot be nil"
	ErrNilAnswerRepo StatsError = "answer repository cannot be nil"
)
