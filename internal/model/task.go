package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation = errors.New("model: validation failed")
	ErrInvalidID  = errors.New("model: invalid task id")
)

// ValidationError reports the first field of a task payload that failed
// validation. It matches ErrValidation with errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("model: invalid %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

type Task struct {
	ID        int64  `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	Time      string `json:"time" yaml:"time"`
	Frequency string `json:"frequency" yaml:"frequency"`
	Completed bool   `json:"completed" yaml:"completed"`
	Favorite  bool   `json:"favorite" yaml:"favorite"`
}

// Input returns the editable fields of t.
func (t Task) Input() TaskInput {
	return TaskInput{Name: t.Name, Time: t.Time, Frequency: t.Frequency}
}

func (t Task) Validate() error {
	if t.ID <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidID, t.ID)
	}
	return t.Input().Validate()
}

// Apply copies the normalized fields of in onto t.
func (t *Task) Apply(in TaskInput) {
	n := in.Normalize()
	t.Name = n.Name
	t.Time = n.Time
	t.Frequency = n.Frequency
}

func (t Task) String() string {
	flags := make([]string, 0, 2)
	if t.Completed {
		flags = append(flags, "done")
	}
	if t.Favorite {
		flags = append(flags, "fav")
	}
	out := fmt.Sprintf("#%d %s %s", t.ID, t.Time, t.Name)
	if t.Frequency != "" {
		out += " (" + t.Frequency + ")"
	}
	if len(flags) > 0 {
		out += " [" + strings.Join(flags, ",") + "]"
	}
	return out
}
