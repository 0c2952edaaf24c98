package tasksync

import (
	"context"

	"github.com/kazz187/labelguild/internal/eventbus"
	"github.com/kazz187/labelguild/internal/task"
)

type Subscriber interface {
	Subscribe(bufSize int) (string, <-chan *eventbus.Event)
	Unsubscribe(id string)
}

// Watch calls refresh once immediately and again after every store change
// signal, until ctx is done. It blocks.
func Watch(ctx context.Context, sub Subscriber, refresh func(context.Context)) {
	id, ch := sub.Subscribe(16)
	defer sub.Unsubscribe(id)

	refresh(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-ch:
			if !ok {
				return
			}
			if !ev.IsStoreChange() {
				continue
			}
			refresh(ctx)
		}
	}
}

// Follow hands the full task collection to apply, replacing whatever the
// caller held before, each time Watch refreshes.
func Follow(ctx context.Context, sub Subscriber, store task.Store, apply func([]*task.Task)) {
	Watch(ctx, sub, func(ctx context.Context) {
		apply(store.ReadAll(ctx))
	})
}
