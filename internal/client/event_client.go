package client

import (
	"context"
	"errors"
	"fmt"

	"connectrpc.com/connect"

	labelguildv1 "github.com/kazz187/labelguild/api/labelguildv1"
	"github.com/kazz187/labelguild/api/labelguildv1/labelguildv1connect"
	"github.com/kazz187/labelguild/pkg/cerr"
)

type EventClient struct {
	client labelguildv1connect.EventServiceClient
}

func NewEventClient(cfg Config) *EventClient {
	return &EventClient{
		client: labelguildv1connect.NewEventServiceClient(cfg.httpClient(), cfg.BaseURL, cfg.options()...),
	}
}

// Subscribe streams events to fn until ctx is done, the stream ends, or fn
// returns an error. Cancellation is not reported as an error.
func (c *EventClient) Subscribe(ctx context.Context, eventTypes []string, fn func(*labelguildv1.Event) error) error {
	stream, err := c.client.SubscribeEvents(ctx, connect.NewRequest(&labelguildv1.SubscribeEventsRequest{EventTypes: eventTypes}))
	if err != nil {
		return fmt.Errorf("failed to subscribe events: %w", err)
	}
	defer stream.Close()

	for stream.Receive() {
		if err := fn(stream.Msg()); err != nil {
			return err
		}
	}
	if err := stream.Err(); err != nil {
		if ctx.Err() != nil || errors.Is(err, context.Canceled) || cerr.CodeOf(err) == cerr.Canceled {
			return nil
		}
		return fmt.Errorf("event stream: %w", err)
	}
	return nil
}
