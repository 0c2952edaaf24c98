package tasksync

import (
	"crypto/sha256"
	"sync"
)

// absent stands for a store entry that does not exist.
var absent [sha256.Size]byte

// contentHash remembers the last content seen by a watcher. Emit records the
// writer's own content so that its write is not reported back to it.
type contentHash struct {
	mu    sync.Mutex
	sum   [sha256.Size]byte
	known bool
}

func (c *contentHash) set(sum [sha256.Size]byte) {
	c.mu.Lock()
	c.sum = sum
	c.known = true
	c.mu.Unlock()
}

// observe records sum and reports whether it differs from the previous one.
// The first observation is a baseline and never reports a change.
func (c *contentHash) observe(sum [sha256.Size]byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	changed := c.known && c.sum != sum
	c.sum = sum
	c.known = true
	return changed
}
