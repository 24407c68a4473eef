package models

import "fmt"

// Filter is a per-list display mode restricting which tasks are shown.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// ParseFilter converts a raw value into a Filter. An empty value maps to
// FilterAll.
func ParseFilter(s string) (Filter, error) {
	if s == "" {
		return FilterAll, nil
	}
	f := Filter(s)
	if !f.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidFilter, s)
	}
	return f, nil
}

// Valid reports whether f is one of the known filters.
func (f Filter) Valid() bool {
	switch f {
	case FilterAll, FilterActive, FilterCompleted:
		return true
	}
	return false
}

// Matches reports whether a task with the given completion flag is
// visible under f.
func (f Filter) Matches(isDone bool) bool {
	switch f {
	case FilterActive:
		return !isDone
	case FilterCompleted:
		return isDone
	default:
		return true
	}
}

// Apply returns the tasks visible under f, preserving order.
// FilterAll returns the input unchanged.
func (f Filter) Apply(tasks []Task) []Task {
	if f == FilterAll || f == "" {
		return tasks
	}
	visible := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Matches(t.IsDone) {
			visible = append(visible, t)
		}
	}
	return visible
}
