package tasksync

import (
	"context"
	"crypto/sha256"
	"errors"
	"log/slog"
	"time"

	"github.com/kazz187/labelguild/pkg/storage"
)

const DefaultPollInterval = 2 * time.Second

// Poller re-reads the store entry on an interval. Used with backends that
// cannot push notifications, such as S3.
type Poller struct {
	storage  storage.Storage
	path     string
	interval time.Duration
	hash     contentHash
}

func NewPoller(s storage.Storage, path string, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{
		storage:  s,
		path:     path,
		interval: interval,
	}
}

func (p *Poller) Emit(ctx context.Context, _ string) error {
	sum, err := p.read(ctx)
	if err != nil {
		return err
	}
	p.hash.set(sum)
	return nil
}

func (p *Poller) Listen(ctx context.Context, out chan<- Signal) error {
	if sum, err := p.read(ctx); err == nil {
		p.hash.observe(sum)
	}
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			sum, err := p.read(ctx)
			if err != nil {
				if ctx.Err() == nil {
					slog.Warn("task sync: poll failed", "path", p.path, "error", err)
				}
				continue
			}
			if p.hash.observe(sum) {
				send(ctx, out, Signal{})
			}
		}
	}
}

func (p *Poller) read(ctx context.Context) ([sha256.Size]byte, error) {
	data, err := p.storage.Read(ctx, p.path)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return absent, nil
		}
		return absent, err
	}
	return sha256.Sum256(data), nil
}
