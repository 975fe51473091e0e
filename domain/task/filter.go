package task

import "strings"

// Filter selects tasks for /list. Empty fields place no constraint.
type Filter struct {
	Task          string   `json:"task,omitempty"`
	Who           string   `json:"who,omitempty"`
	Category      string   `json:"category,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	ShowCompleted bool     `json:"show_completed,omitempty"`
}

// All returns a filter that matches every task, completed ones included.
func All() Filter {
	return Filter{ShowCompleted: true}
}

// Matches reports whether t satisfies every constraint in f. Text constraints
// are case-insensitive substring tests; the tags constraint is satisfied by
// any shared tag. Completed tasks only match when ShowCompleted is set.
func (f Filter) Matches(t *Task) bool {
	if t.Completed && !f.ShowCompleted {
		return false
	}
	if !containsFold(t.Description, f.Task) {
		return false
	}
	if !containsFold(t.Who, f.Who) {
		return false
	}
	if !containsFold(t.Category, f.Category) {
		return false
	}
	if len(f.Tags) > 0 && !HasAnyTag(t.TagList(), f.Tags) {
		return false
	}
	return true
}

func containsFold(s, sub string) bool {
	if sub == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
