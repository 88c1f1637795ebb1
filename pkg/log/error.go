package log

import (
	"fmt"
	"log/slog"
)

// Error formats err with its stack trace, if any.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "")
	}

	return slog.String("error", fmt.Sprintf("%+v", err))
}

// Reason formats err on a single line, without stack trace. Use it for
// expected failures logged below the error level.
func Reason(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "")
	}

	return slog.String("error", err.Error())
}
