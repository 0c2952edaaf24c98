package task

import "context"

// Store is the shared collection of assigned tasks.
type Store interface {
	// ReadAll never fails: an absent or malformed payload yields the default set.
	ReadAll(ctx context.Context) []*Task
	ReadPersisted(ctx context.Context) ([]*Task, bool)
	WriteAll(ctx context.Context, tasks []*Task) error
	Update(ctx context.Context, id string, fn func(*Task) error) (*Task, error)
	Append(ctx context.Context, t *Task) error
}

// Notifier is told after every successful write so that readers in this and
// other contexts can refresh.
type Notifier interface {
	Changed(ctx context.Context)
}

type NopNotifier struct{}

func (NopNotifier) Changed(context.Context) {}
