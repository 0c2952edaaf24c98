package clog

import (
	"context"
	"maps"
	"sync"
)

const (
	ErrorAttributeKey = "error.message"
	StackAttributeKey = "error.stack"

	TaskIDKey    = "task_id"
	SessionIDKey = "session_id"
	SourceKey    = "source"
)

// bag collects attributes while a request is handled; the access log
// emitted at the end carries all of them.
type bag struct {
	mu    sync.RWMutex
	attrs map[string]any
}

type bagKey struct{}

func ContextWithSlog(ctx context.Context) context.Context {
	return context.WithValue(ctx, bagKey{}, &bag{attrs: make(map[string]any)})
}

func bagFrom(ctx context.Context) *bag {
	b, _ := ctx.Value(bagKey{}).(*bag)
	return b
}

func AddAttribute(ctx context.Context, key string, value any) {
	AddAttributes(ctx, map[string]any{key: value})
}

// AddAttributes merges attributes into the request bag. Nested maps are
// merged key by key. Without a bag this is a no-op.
func AddAttributes(ctx context.Context, attributes map[string]any) {
	b := bagFrom(ctx)
	if b == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	mergeMaps(b.attrs, attributes)
}

// AddTaskID tags the request with the task it touches. Empty ids are skipped.
func AddTaskID(ctx context.Context, taskID string) {
	if taskID != "" {
		AddAttribute(ctx, TaskIDKey, taskID)
	}
}

// AddSession tags the request with a workspace session and its task.
func AddSession(ctx context.Context, sessionID, taskID string) {
	AddAttribute(ctx, SessionIDKey, sessionID)
	AddTaskID(ctx, taskID)
}

func mergeMaps(dst, src map[string]any) {
	for k, v := range src {
		vMap, ok := v.(map[string]any)
		if !ok {
			dst[k] = v
			continue
		}
		if dstMap, ok := dst[k].(map[string]any); ok {
			mergeMaps(dstMap, vMap)
			continue
		}
		dst[k] = maps.Clone(vMap)
	}
}

func AddError(ctx context.Context, err error) {
	AddAttribute(ctx, ErrorAttributeKey, err)
}

func AddStack(ctx context.Context, stack string) {
	AddAttribute(ctx, StackAttributeKey, stack)
}

// GetAttributes returns a copy of the request bag, or nil outside a request.
func GetAttributes(ctx context.Context) map[string]any {
	b := bagFrom(ctx)
	if b == nil {
		return nil
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	return maps.Clone(b.attrs)
}

func getString(ctx context.Context, key string) string {
	s, _ := GetAttributes(ctx)[key].(string)
	return s
}

func GetStack(ctx context.Context) string {
	return getString(ctx, StackAttributeKey)
}

func GetTaskID(ctx context.Context) string {
	return getString(ctx, TaskIDKey)
}
