package admin

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/termii-notify/smsadmin/internal/session"
	"github.com/termii-notify/smsadmin/internal/ui"
)

// Module provides the admin routes. It expects a form registry and the
// settings schema to be provided.
func Module(config session.Config) fx.Option {
	return fx.Module("admin",
		// provide session config
		fx.Supply(config),
		// provide session verifier
		fx.Provide(session.NewVerifier),
		// provide renderer
		fx.Provide(func(log *zap.Logger) (*ui.Renderer, error) {
			return ui.NewRenderer(log.Named("ui"))
		}),
		// provide handlers
		fx.Provide(NewSettingsHandler),
		fx.Provide(NewDismissHandler),
		// provide routes
		fx.Provide(NewSettingsRoute),
		fx.Provide(NewDismissRoute),
		fx.Provide(NewHealthRoute),
	)
}
