package clog

import (
	"log/slog"

	"connectrpc.com/connect"
)

// Client mistakes and expected outcomes such as a missing task or an
// incomplete checklist are logged at info; everything else is an error.
var connectLevels = map[connect.Code]slog.Level{
	connect.CodeCanceled:           slog.LevelInfo,
	connect.CodeInvalidArgument:    slog.LevelInfo,
	connect.CodeDeadlineExceeded:   slog.LevelInfo,
	connect.CodeNotFound:           slog.LevelInfo,
	connect.CodeAlreadyExists:      slog.LevelInfo,
	connect.CodePermissionDenied:   slog.LevelInfo,
	connect.CodeFailedPrecondition: slog.LevelInfo,
	connect.CodeAborted:            slog.LevelInfo,
	connect.CodeOutOfRange:         slog.LevelInfo,
	connect.CodeUnauthenticated:    slog.LevelInfo,
}

func ConnectCodeToLevel(code connect.Code) slog.Level {
	if l, ok := connectLevels[code]; ok {
		return l
	}
	return slog.LevelError
}

func HTTPStatusToLevel(status int) slog.Level {
	switch {
	case status == 499:
		return slog.LevelInfo
	case status >= 100 && status < 400:
		return slog.LevelInfo
	case status >= 400 && status < 500:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
