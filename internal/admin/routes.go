package admin

import (
	"net/http"

	"github.com/termii-notify/smsadmin/internal/server"
)

func NewSettingsRoute(handler *SettingsHandler) server.RouteResult {
	return server.AsRoute(SettingsPath, handler)
}

func NewDismissRoute(handler *DismissHandler) server.RouteResult {
	return server.AsRoute(DismissPath, handler)
}

func NewHealthRoute() server.RouteResult {
	return server.AsRoute("/health", http.HandlerFunc(HealthHandler))
}
