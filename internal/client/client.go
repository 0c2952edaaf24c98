package client

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

// Config addresses a labelguild server.
type Config struct {
	BaseURL    string
	APIKey     string
	HTTPClient connect.HTTPClient
}

func (c Config) httpClient() connect.HTTPClient {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c Config) options() []connect.ClientOption {
	return []connect.ClientOption{connect.WithInterceptors(&apiKeyInterceptor{apiKey: c.APIKey})}
}

type apiKeyInterceptor struct {
	apiKey string
}

func (i *apiKeyInterceptor) WrapUnary(next connect.UnaryFunc) connect.UnaryFunc {
	return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		if i.apiKey != "" {
			req.Header().Set("X-API-Key", i.apiKey)
		}
		return next(ctx, req)
	}
}

func (i *apiKeyInterceptor) WrapStreamingClient(next connect.StreamingClientFunc) connect.StreamingClientFunc {
	return func(ctx context.Context, spec connect.Spec) connect.StreamingClientConn {
		conn := next(ctx, spec)
		if i.apiKey != "" {
			conn.RequestHeader().Set("X-API-Key", i.apiKey)
		}
		return conn
	}
}

func (i *apiKeyInterceptor) WrapStreamingHandler(next connect.StreamingHandlerFunc) connect.StreamingHandlerFunc {
	return next
}
