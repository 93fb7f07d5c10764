package lambda

import (
	"go.uber.org/fx"

	"github.com/termii-notify/smsadmin/internal/admin"
	"github.com/termii-notify/smsadmin/util/logging"
)

func Module(config Config) fx.Option {
	return fx.Module(
		"lambda",
		// provide lambda config
		fx.Supply(config),
		// rename logger for module
		logging.DecorateLogger("lambda"),
		// provide handlers
		admin.Module(config.Session),
		// provide handler
		fx.Provide(NewLifecycleHandler),
		// invoke handler
		fx.Invoke(func(*LambdaHandler) {}),
	)
}
