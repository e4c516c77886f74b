package answer

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/KirkDiggler/closest/internal/common/errs"
	"github.com/KirkDiggler/closest/internal/models"
)

// MaxUserNameLength is the longest accepted user name, in characters
const MaxUserNameLength = 64

// submission is a parsed answer checked with validator tags
type submission struct {
	UserName string `validate:"required,max=64"`
	Value    int    `validate:"min=0,max=100"`
}

// NormalizeUserName trims surrounding whitespace from a user name
func NormalizeUserName(name string) string {
	return strings.TrimSpace(name)
}

// ParseValue parses a raw answer as a base 10 integer, ignoring surrounding
// whitespace. It does not check the range.
func ParseValue(raw string) (int, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, errs.New(errs.KindInvalidInput, "answer must not be empty")
	}

	v, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, errs.Newf(errs.KindInvalidInput, "answer %q is not a whole number", trimmed)
	}

	return v, nil
}

// validateSubmission turns raw input into a name and value that are safe to
// store, or an invalid input error
func (s *service) validateSubmission(userName, rawValue string) (string, int, error) {
	name := NormalizeUserName(userName)

	// Name problems are reported ahead of value problems
	if err := s.checkSubmission(&submission{UserName: name, Value: models.MinAnswerValue}); err != nil {
		return "", 0, err
	}

	value, err := ParseValue(rawValue)
	if err != nil {
		return "", 0, err
	}

	if err := s.checkSubmission(&submission{UserName: name, Value: value}); err != nil {
		return "", 0, err
	}

	return name, value, nil
}

func (s *service) checkSubmission(sub *submission) error {
	err := s.validate.Struct(sub)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return errs.Wrap(errs.KindInvalidInput, err, "invalid answer")
	}

	fe := fieldErrs[0]
	switch fe.Field() {
	case "UserName":
		if fe.Tag() == "required" {
			return errs.New(errs.KindInvalidInput, "userName must not be empty")
		}
		return errs.Newf(errs.KindInvalidInput, "userName must be at most %d characters", MaxUserNameLength)
	case "Value":
		return errs.Newf(errs.KindInvalidInput, "answer must be between %d and %d", models.MinAnswerValue, models.MaxAnswerValue)
	default:
		return errs.Wrap(errs.KindInvalidInput, err, "invalid answer")
	}
}
