package cerr

import (
	"context"
	"errors"
	"net"

	"connectrpc.com/connect"

	"github.com/kazz187/labelguild/pkg/clog"
)

func (e *Error) ConnectError() *connect.Error {
	connectErr := connect.NewError(e.Code.ConnectCode(), errors.New(e.Msg))
	for _, msg := range e.Details {
		detail, err := connect.NewErrorDetail(msg)
		if err != nil {
			continue
		}
		connectErr.AddDetail(detail)
	}
	return connectErr
}

func isCanceled(err error) bool {
	if errors.Is(err, context.Canceled) {
		return true
	}
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr) && dnsErr.Err == "operation was canceled"
}

// normalize turns any handler error into an *Error and records the cause on
// the request log. A client that went away is not an error worth a stack.
func normalize(ctx context.Context, err error) *Error {
	if isCanceled(err) {
		return NewError(Canceled, "connection closed", err)
	}
	clog.AddError(ctx, err)
	var e *Error
	if !errors.As(err, &e) {
		return NewError(Unknown, "unknown error", err)
	}
	if e.Stack != "" {
		clog.AddStack(ctx, e.Stack)
	}
	return e
}

// ExtractConnectError converts a handler error into the connect error sent
// to the caller. Only Msg and Details leave the server.
func ExtractConnectError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	var connectErr *connect.Error
	if !isCanceled(err) && errors.As(err, &connectErr) {
		return connectErr
	}
	return normalize(ctx, err).ConnectError()
}

type convertConnectErrorInterceptor struct{}

// NewConvertConnectErrorInterceptor applies ExtractConnectError to every
// handler of the task, workspace and event services.
func NewConvertConnectErrorInterceptor() connect.Interceptor {
	return convertConnectErrorInterceptor{}
}

func (convertConnectErrorInterceptor) WrapUnary(next connect.UnaryFunc) connect.UnaryFunc {
	return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		resp, err := next(ctx, req)
		if req.Spec().IsClient {
			return resp, err
		}
		return resp, ExtractConnectError(ctx, err)
	}
}

func (convertConnectErrorInterceptor) WrapStreamingClient(next connect.StreamingClientFunc) connect.StreamingClientFunc {
	return next
}

func (convertConnectErrorInterceptor) WrapStreamingHandler(next connect.StreamingHandlerFunc) connect.StreamingHandlerFunc {
	return func(ctx context.Context, conn connect.StreamingHandlerConn) error {
		return ExtractConnectError(ctx, next(ctx, conn))
	}
}
