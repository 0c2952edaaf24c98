package event

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/kazz187/labelguild/internal/eventbus"
)

// Journal appends bus events to one NDJSON file per day, giving managers an
// audit trail of assignments and review decisions.
type Journal struct {
	dir string
	mu  sync.Mutex
}

type journalEntry struct {
	*eventbus.Event
	LoggedAt time.Time `json:"logged_at"`
}

func NewJournal(dir string) (*Journal, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}
	return &Journal{dir: dir}, nil
}

func (j *Journal) path(day time.Time) string {
	return filepath.Join(j.dir, fmt.Sprintf("events_%s.ndjson", day.Format("2006-01-02")))
}

func (j *Journal) Append(e *eventbus.Event) error {
	data, err := json.Marshal(journalEntry{Event: e, LoggedAt: time.Now()})
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	f, err := os.OpenFile(j.path(e.CreatedAt), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	defer f.Close()
	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write journal: %w", err)
	}
	return nil
}

// Read returns the events recorded on day, optionally narrowed to types.
func (j *Journal) Read(day time.Time, types ...eventbus.EventType) ([]*eventbus.Event, error) {
	f, err := os.Open(j.path(day))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	defer f.Close()

	var events []*eventbus.Event
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		if len(sc.Bytes()) == 0 {
			continue
		}
		var entry journalEntry
		if err := json.Unmarshal(sc.Bytes(), &entry); err != nil || entry.Event == nil {
			slog.Warn("journal: skipping malformed line", "path", f.Name(), "error", err)
			continue
		}
		if len(types) > 0 && !slices.Contains(types, entry.Type) {
			continue
		}
		events = append(events, entry.Event)
	}
	if err := sc.Err(); err != nil {
		return events, fmt.Errorf("failed to read journal: %w", err)
	}
	return events, nil
}

// Run records every event published on bus until ctx is done.
func (j *Journal) Run(ctx context.Context, bus *eventbus.Bus) {
	subID, ch := bus.Subscribe(256)
	defer bus.Unsubscribe(subID)

	slog.Info("event journal started", "dir", j.dir)
	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-ch:
			if !ok {
				return
			}
			if err := j.Append(e); err != nil {
				slog.Error("journal: failed to record event", "event_id", e.ID, "type", e.Type, "error", err)
			}
		}
	}
}
