package engine

import (
	"errors"
	"fmt"

	"github.com/julianstephens/wellpath/internal/constants"
)

var (
	// ErrInvalidDayIndex is matched by every InvalidDayIndexError.
	ErrInvalidDayIndex = errors.New("invalid day index")
	// ErrProfileIncomplete is matched by every ProfileIncompleteError.
	ErrProfileIncomplete = errors.New("profile incomplete")
)

// InvalidDayIndexError is returned when a day outside [1,30] is requested.
type InvalidDayIndexError struct {
	Day int
}

func (e *InvalidDayIndexError) Error() string {
	return fmt.Sprintf("invalid day index %d: must be between %d and %d", e.Day, constants.FirstDay, constants.ChallengeDays)
}

func (e *InvalidDayIndexError) Is(target error) bool { return target == ErrInvalidDayIndex }

// UserMessage is the text shown to the user instead of the raw error.
func (e *InvalidDayIndexError) UserMessage() string {
	if e.Day < constants.FirstDay {
		return "challenge not yet started"
	}
	return "no more days in this challenge"
}

// ProfileIncompleteError names the profile field the engine could not do without.
type ProfileIncompleteError struct {
	Field string
}

func (e *ProfileIncompleteError) Error() string {
	return fmt.Sprintf("profile incomplete: missing or invalid %s", e.Field)
}

func (e *ProfileIncompleteError) Is(target error) bool { return target == ErrProfileIncomplete }

func (e *ProfileIncompleteError) UserMessage() string {
	return "please finish onboarding before starting the challenge"
}

// CheckDay validates a 1-based challenge day.
func CheckDay(day int) error {
	if day < constants.FirstDay || day > constants.ChallengeDays {
		return &InvalidDayIndexError{Day: day}
	}
	return nil
}
