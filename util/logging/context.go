package logging

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

type loggerKey struct{}

// ErrNoLoggerInContext is returned when a command runs without the logger
// set up by the root command.
var ErrNoLoggerInContext = errors.New("no logger in context")

// ContextWithLogger carries log to the commands of the cli app.
func ContextWithLogger(ctx context.Context, log *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, log)
}

func LoggerFromContext(ctx context.Context) (*zap.Logger, error) {
	log, ok := ctx.Value(loggerKey{}).(*zap.Logger)
	if !ok {
		return nil, ErrNoLoggerInContext
	}

	return log, nil
}
