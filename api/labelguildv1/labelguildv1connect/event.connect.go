package labelguildv1connect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	labelguildv1 "github.com/kazz187/labelguild/api/labelguildv1"
)

const EventServiceName = "labelguild.v1.EventService"

const EventServiceSubscribeEventsProcedure = "/labelguild.v1.EventService/SubscribeEvents"

type EventServiceClient interface {
	SubscribeEvents(context.Context, *connect.Request[labelguildv1.SubscribeEventsRequest]) (*connect.ServerStreamForClient[labelguildv1.Event], error)
}

func NewEventServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) EventServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	return &eventServiceClient{
		subscribeEvents: connect.NewClient[labelguildv1.SubscribeEventsRequest, labelguildv1.Event](httpClient, baseURL+EventServiceSubscribeEventsProcedure, clientOptions(opts)...),
	}
}

type eventServiceClient struct {
	subscribeEvents *connect.Client[labelguildv1.SubscribeEventsRequest, labelguildv1.Event]
}

func (c *eventServiceClient) SubscribeEvents(ctx context.Context, req *connect.Request[labelguildv1.SubscribeEventsRequest]) (*connect.ServerStreamForClient[labelguildv1.Event], error) {
	return c.subscribeEvents.CallServerStream(ctx, req)
}

type EventServiceHandler interface {
	SubscribeEvents(context.Context, *connect.Request[labelguildv1.SubscribeEventsRequest], *connect.ServerStream[labelguildv1.Event]) error
}

func NewEventServiceHandler(svc EventServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	subscribeEvents := connect.NewServerStreamHandler(EventServiceSubscribeEventsProcedure, svc.SubscribeEvents, handlerOptions(opts)...)
	return "/" + EventServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case EventServiceSubscribeEventsProcedure:
			subscribeEvents.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}
