package task

import "strings"

// Filter narrows a task list. Zero fields match everything.
type Filter struct {
	Search   string
	Status   Status
	Priority Priority
}

func (f Filter) Match(t *Task) bool {
	if q := strings.ToLower(f.Search); q != "" {
		if !strings.Contains(strings.ToLower(t.ProjectName), q) &&
			!strings.Contains(strings.ToLower(t.Dataset), q) {
			return false
		}
	}
	if f.Status != "" && t.Status != f.Status {
		return false
	}
	if f.Priority != "" && t.Priority != f.Priority {
		return false
	}
	return true
}

func (f Filter) Apply(tasks []*Task) []*Task {
	var out []*Task
	for _, t := range tasks {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

type Counts struct {
	Total         int
	InProgress    int
	PendingReview int
	Returned      int
	Completed     int
}

func Count(tasks []*Task) Counts {
	c := Counts{Total: len(tasks)}
	for _, t := range tasks {
		switch t.Status {
		case StatusInProgress:
			c.InProgress++
		case StatusPendingReview:
			c.PendingReview++
		case StatusReturned:
			c.Returned++
		case StatusCompleted:
			c.Completed++
		}
	}
	return c
}
