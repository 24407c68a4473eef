package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	// MaxTitleLength is the inclusive upper bound on title length, in runes.
	MaxTitleLength = 20

	// RecommendedTitleLength is the length above which a title is accepted
	// but flagged with a hint.
	RecommendedTitleLength = 10
)

// Task represents a single task within a list.
type Task struct {
	ID        string    `json:"id"`
	ListID    string    `json:"list_id"`
	Title     string    `json:"title"`
	IsDone    bool      `json:"is_done"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NormalizeTitle trims the title and checks it against the length bounds.
// It returns the trimmed title that should be stored.
func NormalizeTitle(title string) (string, error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return "", fmt.Errorf("%w: title is required", ErrInvalidTitle)
	}
	if utf8.RuneCountInString(trimmed) > MaxTitleLength {
		return "", fmt.Errorf("%w: title must be %d characters or fewer", ErrInvalidTitle, MaxTitleLength)
	}
	return trimmed, nil
}

// TitleHint returns a non-fatal message for titles that are valid but
// longer than RecommendedTitleLength. It returns "" otherwise.
func TitleHint(title string) string {
	n := utf8.RuneCountInString(strings.TrimSpace(title))
	if n > RecommendedTitleLength && n <= MaxTitleLength {
		return "title should be shorter"
	}
	return ""
}
