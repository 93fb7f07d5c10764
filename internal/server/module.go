package server

import "go.uber.org/fx"

// Module runs the standalone http server for the lifetime of the app,
// serving every route of the "routes" group.
func Module(config HttpConfig) fx.Option {
	return fx.Module("server",
		// provide listen address
		fx.Supply(config),
		// provide server bound to the lifecycle
		fx.Provide(NewLifecycleServer),
		// force construction, nothing else depends on it
		fx.Invoke(func(*HttpServer) {}),
	)
}
