package serve

import (
	"go.uber.org/fx"

	"github.com/termii-notify/smsadmin/internal/admin"
	"github.com/termii-notify/smsadmin/internal/server"
	"github.com/termii-notify/smsadmin/internal/session"
	"github.com/termii-notify/smsadmin/util/logging"
)

func Module(config Config) fx.Option {
	return fx.Module(
		"serve",
		// rename logger for module
		logging.DecorateLogger("serve"),
		// provide handlers
		admin.Module(config.Session),
		// provide server
		server.Module(config.Http),
	)
}

type Config struct {
	// Session configures session token verification.
	Session session.Config

	// Http configures the http server.
	Http server.HttpConfig
}
