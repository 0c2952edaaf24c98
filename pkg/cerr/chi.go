package cerr

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/kazz187/labelguild/pkg/clog"
)

// reply is filled in by a JSON route handler and written by the middleware
// once the handler returns.
type reply struct {
	body any
	err  error
}

type replyKey struct{}

func replyFrom(ctx context.Context) *reply {
	r, _ := ctx.Value(replyKey{}).(*reply)
	return r
}

func SetJSONResponse(ctx context.Context, body any) {
	if r := replyFrom(ctx); r != nil {
		r.body = body
	}
}

func SetJSONError(ctx context.Context, err error) {
	if r := replyFrom(ctx); r != nil {
		r.err = err
	}
}

func SetNewJSONError(ctx context.Context, code Code, msg string, err error) {
	SetJSONError(ctx, NewError(code, msg, err))
}

// NewConvertConnectErrorChiMiddleware serves the JSON routes with the same
// error contract as the connect services: {"code", "message", "details"}
// with the HTTP status of the code.
func NewConvertConnectErrorChiMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
			rp := &reply{}
			ctx := context.WithValue(r.Context(), replyKey{}, rp)
			next.ServeHTTP(rw, r.WithContext(ctx))
			switch {
			case rp.err != nil:
				writeJSONError(ctx, rw, normalize(ctx, rp.err))
			case rp.body != nil:
				writeJSON(ctx, rw, http.StatusOK, rp.body)
			}
		})
	}
}

type httpError struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

func writeJSONError(ctx context.Context, rw http.ResponseWriter, e *Error) {
	writeJSON(ctx, rw, e.Code.HTTPCode(), httpError{
		Code:    e.Code.String(),
		Message: e.Msg,
		Details: e.DetailMessages(),
	})
}

func writeJSON(ctx context.Context, rw http.ResponseWriter, status int, body any) {
	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(body); err != nil {
		clog.AddError(ctx, err)
		status = http.StatusInternalServerError
		buf = bytes.NewBufferString(`{"code":"internal","message":"server error"}` + "\n")
	}
	rw.Header().Set("Content-Type", "application/json; charset=utf-8")
	rw.WriteHeader(status)
	if _, err := rw.Write(buf.Bytes()); err != nil {
		clog.AddError(ctx, errors.Join(errors.New("failed to write response"), err))
	}
}
