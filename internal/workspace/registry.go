package workspace

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/kazz187/labelguild/internal/task"
	"github.com/kazz187/labelguild/internal/tasksync"
	"github.com/kazz187/labelguild/pkg/cerr"
)

type Session struct {
	ID         string
	TaskID     string
	OpenedAt   time.Time
	Controller *Controller

	lastSeen atomic.Int64
}

// LastSeen is the time of the last open or lookup of the session.
func (s *Session) LastSeen() time.Time {
	return time.Unix(0, s.lastSeen.Load())
}

func (s *Session) touch(now time.Time) {
	s.lastSeen.Store(now.UnixNano())
}

// Registry keeps the workspaces opened through the API. Every session is a
// separate context reading the shared store.
type Registry struct {
	store    task.Store
	resolver *Resolver
	opts     []Option
	now      func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewRegistry(store task.Store, opts ...Option) *Registry {
	return &Registry{
		store:    store,
		resolver: NewResolver(store),
		opts:     opts,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

func (r *Registry) Open(ctx context.Context, taskID string) *Session {
	view := r.resolver.Resolve(ctx, taskID)
	s := &Session{
		ID:         ulid.Make().String(),
		TaskID:     taskID,
		OpenedAt:   r.now(),
		Controller: NewController(ctx, r.store, view, r.opts...),
	}
	s.touch(s.OpenedAt)
	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()

	slog.Info("workspace opened", "session_id", s.ID, "task_id", taskID, "source", view.Source)
	return s
}

func (r *Registry) Get(id string) (*Session, error) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return nil, cerr.NewError(cerr.NotFound, fmt.Sprintf("workspace session %s not found", id), nil)
	}
	s.touch(r.now())
	return s, nil
}

func (r *Registry) Close(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return cerr.NewError(cerr.NotFound, fmt.Sprintf("workspace session %s not found", id), nil)
	}
	delete(r.sessions, id)
	return nil
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// ReloadAll re-resolves every open session against the current store.
func (r *Registry) ReloadAll(ctx context.Context) {
	r.mu.RLock()
	sessions := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		sessions = append(sessions, s)
	}
	r.mu.RUnlock()
	if len(sessions) == 0 {
		return
	}

	persisted, ok := r.store.ReadPersisted(ctx)
	for _, s := range sessions {
		if s.Controller.Reload(ctx, ResolveIn(persisted, ok, s.TaskID)) {
			slog.Info("workspace reset after store change", "session_id", s.ID, "task_id", s.TaskID)
		}
	}
}

// Expire drops sessions that have not been used for longer than idle and
// returns how many were dropped.
func (r *Registry) Expire(idle time.Duration) int {
	cutoff := r.now().Add(-idle)
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for id, s := range r.sessions {
		if s.LastSeen().Before(cutoff) {
			delete(r.sessions, id)
			slog.Info("workspace expired", "session_id", id, "task_id", s.TaskID, "last_seen", s.LastSeen())
			n++
		}
	}
	return n
}

// RunExpiry sweeps idle sessions until ctx is done. A non-positive idle
// keeps sessions until they are closed.
func (r *Registry) RunExpiry(ctx context.Context, idle time.Duration) {
	if idle <= 0 {
		return
	}
	ticker := time.NewTicker(max(idle/4, time.Second))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Expire(idle)
		}
	}
}

// Run keeps sessions in step with the store until ctx is done.
func (r *Registry) Run(ctx context.Context, sub tasksync.Subscriber) {
	tasksync.Watch(ctx, sub, r.ReloadAll)
}
