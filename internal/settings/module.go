package settings

import (
	"go.uber.org/fx"

	"github.com/termii-notify/smsadmin/internal/settings/schema"
	"github.com/termii-notify/smsadmin/util/logging"
)

// Module provides the settings client.
func Module(config Config) fx.Option {
	return fx.Module(
		"settings",
		// rename logger for module
		logging.DecorateLogger("settings"),
		// provide client config
		fx.Supply(config),
		// provide schemas
		fx.Provide(schema.New),
		// provide client
		fx.Provide(NewClient),
		// expose client through its interface
		fx.Provide(func(c *HttpClient) Client { return c }),
	)
}
