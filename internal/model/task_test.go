package model

import (
	"errors"
	"testing"
)

func TestTaskInputValidateSuccess(t *testing.T) {
	in := TaskInput{Name: "  Take medicine ", Time: "14:30", Frequency: "daily"}
	if err := in.Validate(); err != nil {
		t.Fatalf("expected valid input, got error: %v", err)
	}
}

func TestTaskInputValidateRejectsBlankName(t *testing.T) {
	in := TaskInput{Name: "   ", Time: "09:00"}
	err := in.Validate()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got: %v", err)
	}
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Field != "name" {
		t.Fatalf("expected name validation error, got: %v", err)
	}
}

func TestTaskInputValidateRejectsBadTime(t *testing.T) {
	cases := []string{"", "9:00", "24:00", "12:60", "12-30", "1230", "ab:cd", "12:30:00"}
	for _, tc := range cases {
		err := TaskInput{Name: "x", Time: tc}.Validate()
		var ve *ValidationError
		if !errors.As(err, &ve) || ve.Field != "time" {
			t.Fatalf("time %q: expected time validation error, got %v", tc, err)
		}
	}
}

func TestValidClock(t *testing.T) {
	valid := []string{"00:00", "09:05", "23:59", "12:00"}
	for _, item := range valid {
		if !ValidClock(item) {
			t.Fatalf("expected valid clock: %q", item)
		}
	}
	if ValidClock("7:30") {
		t.Fatal("expected single digit hour to be rejected")
	}
}

func TestTaskValidateRequiresID(t *testing.T) {
	task := Task{Name: "n", Time: "10:00"}
	if err := task.Validate(); !errors.Is(err, ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got: %v", err)
	}
	task.ID = 1
	if err := task.Validate(); err != nil {
		t.Fatalf("expected valid task, got: %v", err)
	}
}

func TestTaskApplyNormalizes(t *testing.T) {
	task := Task{ID: 1, Name: "old", Time: "08:00", Completed: true}
	task.Apply(TaskInput{Name: " new ", Time: " 09:15", Frequency: " weekdays "})
	if task.Name != "new" || task.Time != "09:15" || task.Frequency != "weekdays" {
		t.Fatalf("unexpected task after apply: %+v", task)
	}
	if !task.Completed {
		t.Fatal("apply must not touch flags")
	}
}

func TestTaskString(t *testing.T) {
	task := Task{ID: 7, Name: "Gym", Time: "18:30", Frequency: "weekdays", Favorite: true}
	if got := task.String(); got != "#7 18:30 Gym (weekdays) [fav]" {
		t.Fatalf("unexpected string: %q", got)
	}
}
