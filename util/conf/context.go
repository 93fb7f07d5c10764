package conf

import (
	"context"
	"errors"
	"fmt"
)

type configKey struct{}

var ErrNoConfigInContext = errors.New("no config in context")

// ContextWithConfig carries the parsed config to the commands of the cli
// app.
func ContextWithConfig[C any](ctx context.Context, config C) context.Context {
	return context.WithValue(ctx, configKey{}, config)
}

// ConfigFromContext returns the config stored by ContextWithConfig. It fails
// if the stored config is not a C.
func ConfigFromContext[C any](ctx context.Context) (C, error) {
	var c C

	v := ctx.Value(configKey{})
	if v == nil {
		return c, ErrNoConfigInContext
	}

	c, ok := v.(C)
	if !ok {
		return c, fmt.Errorf("config in context is %T, not %T", v, c)
	}

	return c, nil
}
