// Package tasksync propagates task store changes between the contexts that
// share one store. Signals carry no data; receivers re-read the store.
package tasksync

import (
	"context"
	"log/slog"

	"github.com/oklog/ulid/v2"
	"github.com/sourcegraph/conc/pool"

	"github.com/kazz187/labelguild/internal/eventbus"
	"github.com/kazz187/labelguild/internal/task"
	"github.com/kazz187/labelguild/pkg/panicerr"
)

// Signal is a cross-context change notification. Origin is empty when the
// channel cannot tell who wrote.
type Signal struct {
	Origin string
}

// Emitter announces a local write to other contexts.
type Emitter interface {
	Emit(ctx context.Context, origin string) error
}

// Source delivers signals raised by other contexts until ctx is done.
type Source interface {
	Listen(ctx context.Context, out chan<- Signal) error
}

// Channel is both ends of one cross-context transport.
type Channel interface {
	Emitter
	Source
}

var _ task.Notifier = (*Hub)(nil)

type Hub struct {
	origin   string
	bus      *eventbus.Bus
	emitters []Emitter
	sources  []Source
}

type Option func(*Hub)

func WithOrigin(origin string) Option {
	return func(h *Hub) {
		h.origin = origin
	}
}

func WithChannel(c Channel) Option {
	return func(h *Hub) {
		h.emitters = append(h.emitters, c)
		h.sources = append(h.sources, c)
	}
}

func NewHub(bus *eventbus.Bus, opts ...Option) *Hub {
	h := &Hub{
		origin: ulid.Make().String(),
		bus:    bus,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Hub) Origin() string {
	return h.origin
}

// Changed publishes tasks.updated in this context, then tells every emitter.
func (h *Hub) Changed(ctx context.Context) {
	h.bus.PublishNew(eventbus.EventTypeTasksUpdated, "", h.origin, nil)
	for _, e := range h.emitters {
		if err := e.Emit(ctx, h.origin); err != nil {
			slog.Error("task sync: emit failed", "origin", h.origin, "error", err)
		}
	}
}

func (h *Hub) Subscribe(bufSize int) (string, <-chan *eventbus.Event) {
	return h.bus.Subscribe(bufSize)
}

func (h *Hub) Unsubscribe(id string) {
	h.bus.Unsubscribe(id)
}

// Run listens on every source until ctx is done. Signals from this hub's own
// origin are dropped; the rest are published as storage.changed.
func (h *Hub) Run(ctx context.Context) error {
	signals := make(chan Signal, 16)
	p := pool.New().WithErrors().WithContext(ctx)
	for _, src := range h.sources {
		src := src
		p.Go(panicerr.SafeContext(sourceName(src), func(ctx context.Context) error {
			err := src.Listen(ctx, signals)
			if err != nil && ctx.Err() == nil {
				slog.Error("task sync: source stopped", "source", sourceName(src), "error", err)
			}
			return err
		}))
	}
	p.Go(func(ctx context.Context) error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case sig := <-signals:
				if sig.Origin != "" && sig.Origin == h.origin {
					continue
				}
				h.bus.PublishNew(eventbus.EventTypeStorageChanged, "", sig.Origin, nil)
			}
		}
	})
	slog.Info("task sync started", "origin", h.origin, "sources", len(h.sources))
	return p.Wait()
}

func sourceName(src Source) string {
	switch src.(type) {
	case *RedisChannel:
		return "redis"
	case *FileWatcher:
		return "file"
	case *Poller:
		return "poll"
	default:
		return "custom"
	}
}

// send delivers sig unless ctx ends first.
func send(ctx context.Context, out chan<- Signal, sig Signal) {
	select {
	case out <- sig:
	case <-ctx.Done():
	}
}
