package server

import (
	"net/http"

	"go.uber.org/fx"
)

// Route is an http handler registered on the mux under Pattern.
type Route struct {
	Pattern string
	Handler http.Handler
}

// RouteResult adds a Route to the "routes" group served by NewMux.
type RouteResult struct {
	fx.Out

	Route *Route `group:"routes"`
}

func AsRoute(pattern string, handler http.Handler) RouteResult {
	return RouteResult{
		Route: &Route{Pattern: pattern, Handler: handler},
	}
}
