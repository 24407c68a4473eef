package models

import "time"

// List is a named, filterable collection of tasks.
type List struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Filter    Filter    `json:"filter"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Summary holds task counts for a list.
type Summary struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Completed int `json:"completed"`
}

// Summarize counts tasks by completion state.
func Summarize(tasks []Task) Summary {
	s := Summary{Total: len(tasks)}
	for _, t := range tasks {
		if t.IsDone {
			s.Completed++
		} else {
			s.Active++
		}
	}
	return s
}

// NothingDone reports whether no task in the summary is completed.
func (s Summary) NothingDone() bool {
	return s.Completed == 0
}
