package model

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidFilter = errors.New("model: invalid filter mode")

type FilterMode string

const (
	FilterAll       FilterMode = "all"
	FilterPending   FilterMode = "pending"
	FilterCompleted FilterMode = "completed"
	FilterFavorites FilterMode = "favorites"
)

// FilterModes returns the modes in tab order.
func FilterModes() []FilterMode {
	return []FilterMode{FilterAll, FilterPending, FilterCompleted, FilterFavorites}
}

func (f FilterMode) IsValid() bool {
	switch f {
	case FilterAll, FilterPending, FilterCompleted, FilterFavorites:
		return true
	default:
		return false
	}
}

func (f FilterMode) Label() string {
	switch f {
	case FilterPending:
		return "Pending"
	case FilterCompleted:
		return "Completed"
	case FilterFavorites:
		return "Favorites"
	default:
		return "All"
	}
}

// Next cycles to the following mode in tab order.
func (f FilterMode) Next() FilterMode {
	modes := FilterModes()
	for i, m := range modes {
		if m == f {
			return modes[(i+1)%len(modes)]
		}
	}
	return FilterAll
}

func ParseFilterMode(raw string) (FilterMode, error) {
	mode := FilterMode(strings.ToLower(strings.TrimSpace(raw)))
	switch mode {
	case "":
		return FilterAll, nil
	case "done":
		return FilterCompleted, nil
	case "fav", "favorite":
		return FilterFavorites, nil
	}
	if !mode.IsValid() {
		return FilterAll, fmt.Errorf("%w: %q", ErrInvalidFilter, raw)
	}
	return mode, nil
}

// Project selects the tasks visible under mode, keeping their order. Unknown
// modes behave like FilterAll. The result is never nil.
func Project(tasks []Task, mode FilterMode) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if mode.matches(t) {
			out = append(out, t)
		}
	}
	return out
}

func (f FilterMode) matches(t Task) bool {
	switch f {
	case FilterPending:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	case FilterFavorites:
		return t.Favorite
	default:
		return true
	}
}
