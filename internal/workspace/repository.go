package workspace

import "context"

// DraftRepository stores in-progress workspace state per task.
type DraftRepository interface {
	Get(ctx context.Context, taskID string) (*Draft, error)
	Save(ctx context.Context, d *Draft) error
	Delete(ctx context.Context, taskID string) error
}
