package cerr

import (
	"errors"
	"fmt"
	"net/http"

	"connectrpc.com/connect"
)

// Code classifies an Error. Values equal the Connect/gRPC status codes, so
// conversion in both directions is a cast.
type Code int

const (
	OK                 = Code(0)
	Canceled           = Code(connect.CodeCanceled)
	Unknown            = Code(connect.CodeUnknown)
	InvalidArgument    = Code(connect.CodeInvalidArgument)
	DeadlineExceeded   = Code(connect.CodeDeadlineExceeded)
	NotFound           = Code(connect.CodeNotFound)
	AlreadyExists      = Code(connect.CodeAlreadyExists)
	PermissionDenied   = Code(connect.CodePermissionDenied)
	ResourceExhausted  = Code(connect.CodeResourceExhausted)
	FailedPrecondition = Code(connect.CodeFailedPrecondition)
	Aborted            = Code(connect.CodeAborted)
	OutOfRange         = Code(connect.CodeOutOfRange)
	Unimplemented      = Code(connect.CodeUnimplemented)
	Internal           = Code(connect.CodeInternal)
	Unavailable        = Code(connect.CodeUnavailable)
	DataLoss           = Code(connect.CodeDataLoss)
	Unauthenticated    = Code(connect.CodeUnauthenticated)
)

type codeInfo struct {
	name   string
	status int
}

var codeInfos = [...]codeInfo{
	OK:                 {"ok", http.StatusOK},
	Canceled:           {"canceled", 499},
	Unknown:            {"unknown", http.StatusInternalServerError},
	InvalidArgument:    {"invalid_argument", http.StatusBadRequest},
	DeadlineExceeded:   {"deadline_exceeded", http.StatusGatewayTimeout},
	NotFound:           {"not_found", http.StatusNotFound},
	AlreadyExists:      {"already_exists", http.StatusConflict},
	PermissionDenied:   {"permission_denied", http.StatusForbidden},
	ResourceExhausted:  {"resource_exhausted", http.StatusTooManyRequests},
	FailedPrecondition: {"failed_precondition", http.StatusPreconditionFailed},
	Aborted:            {"aborted", http.StatusConflict},
	OutOfRange:         {"out_of_range", http.StatusBadRequest},
	Unimplemented:      {"unimplemented", http.StatusNotImplemented},
	Internal:           {"internal", http.StatusInternalServerError},
	Unavailable:        {"unavailable", http.StatusServiceUnavailable},
	DataLoss:           {"data_loss", http.StatusInternalServerError},
	Unauthenticated:    {"unauthenticated", http.StatusUnauthorized},
}

func (c Code) valid() bool {
	return c >= 0 && int(c) < len(codeInfos)
}

// CodeOf classifies err: an *Error keeps its code, anything else goes through
// connect.CodeOf so errors returned by the labelguild clients map back too.
func CodeOf(err error) Code {
	if err == nil {
		return OK
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return Code(connect.CodeOf(err))
}

func (c Code) ConnectCode() connect.Code {
	if c == OK {
		return 0
	}
	if !c.valid() {
		return connect.CodeUnknown
	}
	return connect.Code(c)
}

func (c Code) HTTPCode() int {
	if !c.valid() {
		return http.StatusInternalServerError
	}
	return codeInfos[c].status
}

func (c Code) String() string {
	if !c.valid() {
		return fmt.Sprintf("code_%d", int(c))
	}
	return codeInfos[c].name
}
