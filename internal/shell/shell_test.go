package shell_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/zap/zaptest"

	"github.com/termii-notify/smsadmin/internal/shell"
)

type greeter struct {
	stopped bool
}

func TestShell_Exec(t *testing.T) {
	g := &greeter{}

	s := shell.New(zaptest.NewLogger(t), fx.Supply(g))

	var populated *greeter
	var ran bool

	err := s.Exec(context.Background(), func(ctx context.Context) error {
		ran = true
		assert.Same(t, g, populated)
		assert.False(t, g.stopped)
		return nil
	},
		fx.Populate(&populated),
		fx.Invoke(func(lc fx.Lifecycle, g *greeter) {
			lc.Append(fx.StopHook(func() { g.stopped = true }))
		}),
	)

	require.NoError(t, err)
	assert.True(t, ran)
	assert.True(t, g.stopped)
}

func TestShell_ExecError(t *testing.T) {
	s := shell.New(zaptest.NewLogger(t))

	expected := errors.New("boom")

	err := s.Exec(context.Background(), func(context.Context) error {
		return expected
	})

	assert.ErrorIs(t, err, expected)
}

func TestShell_ExecStartFailure(t *testing.T) {
	s := shell.New(zaptest.NewLogger(t))

	err := s.Exec(context.Background(), func(context.Context) error {
		t.Fatal("must not run")
		return nil
	}, fx.Invoke(func(*greeter) {}))

	exitErr, ok := shell.AsExitError(err)
	require.True(t, ok)
	assert.Equal(t, 1, exitErr.ExitCode)
}

func TestAsExitError(t *testing.T) {
	_, ok := shell.AsExitError(nil)
	assert.False(t, ok)

	_, ok = shell.AsExitError(errors.New("plain"))
	assert.False(t, ok)

	wrapped := fmt.Errorf("run: %w", shell.NewExitError(3))
	exitErr, ok := shell.AsExitError(wrapped)
	require.True(t, ok)
	assert.Equal(t, 3, exitErr.ExitCode)
	assert.True(t, shell.IsExitError(wrapped))
}
