package event

import (
	"context"

	"connectrpc.com/connect"

	labelguildv1 "github.com/kazz187/labelguild/api/labelguildv1"
	"github.com/kazz187/labelguild/api/labelguildv1/labelguildv1connect"
	"github.com/kazz187/labelguild/internal/eventbus"
)

var _ labelguildv1connect.EventServiceHandler = (*Server)(nil)

type Server struct {
	eventBus *eventbus.Bus
}

func NewServer(eventBus *eventbus.Bus) *Server {
	return &Server{eventBus: eventBus}
}

func (s *Server) SubscribeEvents(ctx context.Context, req *connect.Request[labelguildv1.SubscribeEventsRequest], stream *connect.ServerStream[labelguildv1.Event]) error {
	subID, ch := s.eventBus.Subscribe(64)
	defer s.eventBus.Unsubscribe(subID)

	typeFilter := make(map[eventbus.EventType]struct{}, len(req.Msg.EventTypes))
	for _, et := range req.Msg.EventTypes {
		typeFilter[eventbus.EventType(et)] = struct{}{}
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-ch:
			if !ok {
				return nil
			}
			if len(typeFilter) > 0 {
				if _, match := typeFilter[event.Type]; !match {
					continue
				}
			}
			if err := stream.Send(ToWire(event)); err != nil {
				return err
			}
		}
	}
}

func ToWire(e *eventbus.Event) *labelguildv1.Event {
	return &labelguildv1.Event{
		ID:         e.ID,
		Type:       string(e.Type),
		ResourceID: e.ResourceID,
		Origin:     e.Origin,
		Metadata:   e.Metadata,
		CreatedAt:  e.CreatedAt,
	}
}
