package repositoryimpl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/kazz187/labelguild/internal/task"
	"github.com/kazz187/labelguild/pkg/cerr"
	"github.com/kazz187/labelguild/pkg/storage"
)

const DefaultTasksKey = "annotator-assigned-tasks"

// YAMLRepository keeps the whole task collection in a single YAML entry.
type YAMLRepository struct {
	storage  storage.Storage
	path     string
	notifier task.Notifier

	// mu serializes read-modify-write cycles within this process.
	mu sync.Mutex
}

func NewYAMLRepository(s storage.Storage, key string, notifier task.Notifier) *YAMLRepository {
	if key == "" {
		key = DefaultTasksKey
	}
	if notifier == nil {
		notifier = task.NopNotifier{}
	}
	return &YAMLRepository{
		storage:  s,
		path:     Path(key),
		notifier: notifier,
	}
}

// Path returns the storage path of the collection stored under key.
func Path(key string) string {
	if strings.HasSuffix(key, ".yaml") {
		return key
	}
	return key + ".yaml"
}

func (r *YAMLRepository) StoragePath() string {
	return r.path
}

func (r *YAMLRepository) ReadAll(ctx context.Context) []*task.Task {
	persisted, ok := r.ReadPersisted(ctx)
	if !ok {
		return task.DefaultTasks()
	}
	return task.Merge(persisted, task.DefaultTasks(), task.PreferPersisted)
}

// ReadPersisted reports false when nothing usable is stored, including when
// the storage itself fails.
func (r *YAMLRepository) ReadPersisted(ctx context.Context) ([]*task.Task, bool) {
	tasks, ok, err := r.load(ctx)
	if err != nil {
		slog.Warn("task store: read failed, using defaults", "path", r.path, "error", err)
		return nil, false
	}
	return tasks, ok
}

// load separates a storage failure from an absent or malformed payload,
// which both yield no records.
func (r *YAMLRepository) load(ctx context.Context) ([]*task.Task, bool, error) {
	data, err := r.storage.Read(ctx, r.path)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	tasks, err := Decode(data)
	if err != nil {
		slog.Warn("task store: malformed payload, using defaults", "path", r.path, "error", err)
		return nil, false, nil
	}
	return tasks, true, nil
}

// Decode parses a persisted payload. Entries without an id are dropped.
func Decode(data []byte) ([]*task.Task, error) {
	var raw []*task.Task
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	tasks := make([]*task.Task, 0, len(raw))
	for _, t := range raw {
		if t == nil || t.ID == "" {
			continue
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func (r *YAMLRepository) WriteAll(ctx context.Context, tasks []*task.Task) error {
	if err := r.write(ctx, tasks); err != nil {
		return err
	}
	r.notifier.Changed(ctx)
	return nil
}

func (r *YAMLRepository) write(ctx context.Context, tasks []*task.Task) error {
	if tasks == nil {
		tasks = []*task.Task{}
	}
	data, err := yaml.Marshal(tasks)
	if err != nil {
		return cerr.NewError(cerr.Internal, "server error", fmt.Errorf("failed to marshal tasks: %w", err))
	}
	if err := r.storage.Write(ctx, r.path, data); err != nil {
		return cerr.WrapStorageWriteError(cerr.TaskCollection(r.path), err)
	}
	return nil
}

// Update applies fn to one task. Only the records already persisted and the
// changed one are written back; untouched defaults stay implicit.
func (r *YAMLRepository) Update(ctx context.Context, id string, fn func(*task.Task) error) (*task.Task, error) {
	t, err := r.update(ctx, id, fn)
	if err != nil {
		return nil, err
	}
	r.notifier.Changed(ctx)
	return t, nil
}

func (r *YAMLRepository) update(ctx context.Context, id string, fn func(*task.Task) error) (*task.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	persisted, err := r.loadForWrite(ctx)
	if err != nil {
		return nil, err
	}
	t, ok := task.Find(persisted, id)
	if !ok {
		if t, ok = task.Find(task.DefaultTasks(), id); !ok {
			return nil, cerr.NewError(cerr.NotFound, fmt.Sprintf("task %s not found", id), nil)
		}
		persisted = append(persisted, t)
	}
	if err := fn(t); err != nil {
		return nil, err
	}
	if err := r.write(ctx, persisted); err != nil {
		return nil, err
	}
	return t.Clone(), nil
}

func (r *YAMLRepository) Append(ctx context.Context, t *task.Task) error {
	if err := r.insert(ctx, t); err != nil {
		return err
	}
	r.notifier.Changed(ctx)
	return nil
}

func (r *YAMLRepository) insert(ctx context.Context, t *task.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	persisted, err := r.loadForWrite(ctx)
	if err != nil {
		return err
	}
	if _, ok := task.Find(task.Merge(persisted, task.DefaultTasks(), task.PreferPersisted), t.ID); ok {
		return cerr.NewError(cerr.AlreadyExists, fmt.Sprintf("task %s already exists", t.ID), nil)
	}
	return r.write(ctx, append(persisted, t.Clone()))
}

// loadForWrite is load for read-modify-write cycles: a failed read is an
// error here, never an empty collection.
func (r *YAMLRepository) loadForWrite(ctx context.Context) ([]*task.Task, error) {
	persisted, _, err := r.load(ctx)
	if err != nil {
		return nil, cerr.WrapStorageReadError(cerr.TaskCollection(r.path), err)
	}
	return task.Merge(persisted, nil, task.PreferPersisted), nil
}
