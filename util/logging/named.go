package logging

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// NamedLogger returns a decorator giving the logger of a module its own
// name, nested under the app name.
func NamedLogger(name string) func(*zap.Logger) *zap.Logger {
	return func(log *zap.Logger) *zap.Logger {
		return log.Named(name)
	}
}

// DecorateLogger names the logger seen by the fx module it is used in.
func DecorateLogger(name string) fx.Option {
	return fx.Decorate(NamedLogger(name))
}
