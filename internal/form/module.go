package form

import (
	"go.uber.org/fx"

	"github.com/termii-notify/smsadmin/util/logging"
)

// Module provides the form registry.
func Module(config Config) fx.Option {
	return fx.Module(
		"form",
		// rename logger for module
		logging.DecorateLogger("form"),
		// provide registry config
		fx.Supply(config),
		// provide registry
		fx.Provide(NewLifecycleRegistry),
	)
}
