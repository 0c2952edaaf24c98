package clog

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/proto"
)

// Attributer is implemented by request messages that name the task or
// workspace session they act on.
type Attributer interface {
	LogAttrs() map[string]any
}

type slogConnectInterceptor struct{}

// NewSlogConnectInterceptor writes one access log per unary call and one per
// event stream, tagged with whatever the request and the handler added to
// the attribute bag.
func NewSlogConnectInterceptor() connect.Interceptor {
	return slogConnectInterceptor{}
}

func (slogConnectInterceptor) WrapUnary(next connect.UnaryFunc) connect.UnaryFunc {
	return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		if req.Spec().IsClient {
			return next(ctx, req)
		}
		start := time.Now()
		ctx = begin(ctx, req.Spec())
		AddAttribute(ctx, "method", req.HTTPMethod())
		if a, ok := req.Any().(Attributer); ok {
			AddAttributes(ctx, a.LogAttrs())
		}
		resp, err := next(ctx, req)
		finish(ctx, start, err)
		return resp, err
	}
}

func (slogConnectInterceptor) WrapStreamingClient(next connect.StreamingClientFunc) connect.StreamingClientFunc {
	return next
}

func (slogConnectInterceptor) WrapStreamingHandler(next connect.StreamingHandlerFunc) connect.StreamingHandlerFunc {
	return func(ctx context.Context, conn connect.StreamingHandlerConn) error {
		start := time.Now()
		ctx = begin(ctx, conn.Spec())
		slog.InfoContext(ctx, "Connected")
		err := next(ctx, conn)
		finish(ctx, start, err)
		return err
	}
}

func begin(ctx context.Context, spec connect.Spec) context.Context {
	ctx = ContextWithSlog(ctx)
	AddAttributes(ctx, map[string]any{
		"procedure":   spec.Procedure,
		"stream_type": spec.StreamType.String(),
	})
	return ctx
}

func finish(ctx context.Context, start time.Time, err error) {
	AddAttribute(ctx, "duration", time.Since(start))
	if err == nil {
		AddAttribute(ctx, "code", "ok")
		slog.InfoContext(ctx, "Finished")
		return
	}
	var connectErr *connect.Error
	if !errors.As(err, &connectErr) {
		connectErr = connect.NewError(connect.CodeUnknown, err)
	}
	AddAttribute(ctx, "code", connectErr.Code().String())
	if details := connectErr.Details(); len(details) > 0 {
		msgs := make([]proto.Message, 0, len(details))
		for _, d := range details {
			if v, err := d.Value(); err == nil {
				msgs = append(msgs, v)
			}
		}
		AddAttribute(ctx, "err_details", msgs)
	}
	slog.Log(ctx, ConnectCodeToLevel(connectErr.Code()), connectErr.Message())
}
