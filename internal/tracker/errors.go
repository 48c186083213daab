package tracker

import (
	"errors"
	"fmt"
)

// ErrUnknownTask is matched by every UnknownTaskError.
var ErrUnknownTask = errors.New("unknown task")

// UnknownTaskError is returned when a completion names a task outside the day's set.
type UnknownTaskError struct {
	TaskID string
}

func (e *UnknownTaskError) Error() string {
	return fmt.Sprintf("unknown task %q", e.TaskID)
}

func (e *UnknownTaskError) Is(target error) bool { return target == ErrUnknownTask }

// UserMessage never includes the task id.
func (e *UnknownTaskError) UserMessage() string {
	return "unable to complete this task"
}
