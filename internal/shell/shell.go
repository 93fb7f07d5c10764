package shell

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

type Shell struct {
	log     *zap.Logger
	options []fx.Option
}

func New(log *zap.Logger, options ...fx.Option) *Shell {
	return &Shell{
		log:     log,
		options: options,
	}
}

// Run starts the application and blocks until it receives a shutdown
// signal. The returned ExitError carries the exit code of the signal.
func (s *Shell) Run(ctx context.Context, options ...fx.Option) error {
	// 0. after run ends, flush the logger
	defer s.log.Sync()

	// 1. create shell context
	shellCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	// 2. create execution context
	appCtx, cancelApp := context.WithCancel(ctx)
	defer cancelApp()

	// 3. create fx application with app context
	fxApp := s.createFxApp(appCtx, options...)

	// 4. start the application, exit on error
	if err := s.start(shellCtx, fxApp); err != nil {
		return err
	}

	// 5. wait for done signal by OS
	sig := <-fxApp.Wait()

	// 6. gracefully shutdown the app, exit on error
	if err := s.stop(shellCtx, fxApp); err != nil {
		return err
	}

	// 7. return with the exit code of the signal
	return NewExitError(sig.ExitCode)
}

// Exec starts the application, runs fn and stops the application again.
// Use fx.Populate in options to hand dependencies to fn.
func (s *Shell) Exec(ctx context.Context, fn func(context.Context) error, options ...fx.Option) error {
	defer s.log.Sync()

	appCtx, cancelApp := context.WithCancel(ctx)
	defer cancelApp()

	fxApp := s.createFxApp(appCtx, options...)

	if err := s.start(ctx, fxApp); err != nil {
		return err
	}

	fnErr := fn(appCtx)

	if err := s.stop(ctx, fxApp); err != nil {
		return err
	}

	return fnErr
}

func (s *Shell) start(ctx context.Context, fxApp *fx.App) error {
	startCtx, cancel := context.WithTimeout(ctx, fxApp.StartTimeout())
	defer cancel()

	if err := fxApp.Start(startCtx); err != nil {
		s.log.Error("failed to start", zap.Error(err))
		return NewExitError(1)
	}

	return nil
}

func (s *Shell) stop(ctx context.Context, fxApp *fx.App) error {
	stopCtx, cancel := context.WithTimeout(ctx, fxApp.StopTimeout())
	defer cancel()

	if err := fxApp.Stop(stopCtx); err != nil {
		s.log.Error("failed to stop", zap.Error(err))
		return NewExitError(1)
	}

	return nil
}

func (s *Shell) createFxApp(ctx context.Context, options ...fx.Option) *fx.App {
	// 1. create fx application
	return fx.New(
		// 2. inject global execution context
		fx.Supply(fx.Annotate(ctx, fx.As(new(context.Context)))),

		// 3. inject the logger
		fx.Supply(s.log),

		// 4. use the logger also for fx' logs
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.ZapLogger{Logger: s.log.Named("fx")}
		}),

		// 5. provide shared options
		fx.Options(s.options...),

		// 6. provide command options
		fx.Options(options...),
	)
}
