package model

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var clockPattern = regexp.MustCompile(`^\d{2}:\d{2}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("hhmm", validateClock); err != nil {
		panic(fmt.Sprintf("failed to register hhmm validator: %v", err))
	}
	return v
}

// TaskInput is the create/update payload produced by the form, the command
// palette and the CLI.
type TaskInput struct {
	Name      string `validate:"required"`
	Time      string `validate:"required,hhmm"`
	Frequency string
}

func (in TaskInput) Normalize() TaskInput {
	return TaskInput{
		Name:      strings.TrimSpace(in.Name),
		Time:      strings.TrimSpace(in.Time),
		Frequency: strings.TrimSpace(in.Frequency),
	}
}

func (in TaskInput) Validate() error {
	err := validate.Struct(in.Normalize())
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &ValidationError{Field: "task", Message: err.Error()}
	}
	fe := verrs[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return &ValidationError{Field: field, Message: "is required"}
	case "hhmm":
		return &ValidationError{Field: field, Message: fmt.Sprintf("%q is not a HH:MM time", fe.Value())}
	default:
		return &ValidationError{Field: field, Message: fmt.Sprintf("failed %s", fe.Tag())}
	}
}

// ValidClock reports whether s is a 24-hour HH:MM time of day.
func ValidClock(s string) bool {
	if !clockPattern.MatchString(s) {
		return false
	}
	h, _ := strconv.Atoi(s[:2])
	m, _ := strconv.Atoi(s[3:])
	return h < 24 && m < 60
}

func validateClock(fl validator.FieldLevel) bool {
	return ValidClock(fl.Field().String())
}
