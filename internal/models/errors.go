package models

import "errors"

var (
	// ErrNotFound is returned when an operation references a list or task
	// that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidTitle is returned when a title is empty after trimming or
	// longer than MaxTitleLength.
	ErrInvalidTitle = errors.New("invalid title")

	// ErrInvalidFilter is returned for filter values other than all,
	// active and completed.
	ErrInvalidFilter = errors.New("invalid filter")
)
