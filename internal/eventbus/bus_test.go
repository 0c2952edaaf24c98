package eventbus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_PublishFansOut(t *testing.T) {
	b := New()
	id1, ch1 := b.Subscribe(4)
	id2, ch2 := b.Subscribe(4)
	defer b.Unsubscribe(id1)
	defer b.Unsubscribe(id2)

	ev := b.PublishNew(EventTypeTasksUpdated, "", "origin-a", nil)

	got1 := <-ch1
	got2 := <-ch2
	assert.Same(t, ev, got1)
	assert.Same(t, ev, got2)
	assert.NotEmpty(t, ev.ID)
	assert.True(t, ev.IsStoreChange())
}

func TestBus_FullBufferDrops(t *testing.T) {
	b := New()
	id, ch := b.Subscribe(1)
	defer b.Unsubscribe(id)

	b.PublishNew(EventTypeTasksUpdated, "", "", nil)
	b.PublishNew(EventTypeStorageChanged, "", "", nil)

	first := <-ch
	assert.Equal(t, EventTypeTasksUpdated, first.Type)
	select {
	case ev := <-ch:
		t.Fatalf("unexpected event %v", ev.Type)
	default:
	}
}

func TestBus_UnsubscribeClosesChannel(t *testing.T) {
	b := New()
	id, ch := b.Subscribe(1)
	require.Equal(t, 1, b.SubscriberCount())

	b.Unsubscribe(id)
	_, ok := <-ch
	assert.False(t, ok)
	assert.Equal(t, 0, b.SubscriberCount())

	// Second unsubscribe is a no-op.
	b.Unsubscribe(id)
	ev := b.PublishNew(EventTypeTaskAssigned, "task-1", "", nil)
	assert.False(t, ev.IsStoreChange())
}
