package config

import (
	"github.com/termii-notify/smsadmin/internal/form"
	"github.com/termii-notify/smsadmin/internal/server"
	"github.com/termii-notify/smsadmin/internal/session"
	"github.com/termii-notify/smsadmin/internal/settings"
	"github.com/termii-notify/smsadmin/util/conf"
)

type Config struct {
	// LogLevel is the log level for the application
	LogLevel string `conf:"log_level"`

	// LogFormat is the log format for the application
	LogFormat string `conf:"log_format"`

	// Backend is the settings backend configuration
	Backend settings.Config `conf:"backend"`

	// Forms bounds the settings forms kept in memory
	Forms form.Config `conf:"forms"`

	// Shopify holds the app credentials used to verify session tokens
	Shopify session.Config `conf:"shopify"`

	// Http is the standalone http server configuration
	Http server.HttpConfig `conf:"http"`
}

var DefaultConfig = conf.JoinDefaults(
	conf.DefaultConfig{
		"log_level":  "info",
		"log_format": "production",

		// read by the lambda command only
		"lambda_proxy_source": "API_GW_V2",
	},
	conf.MergeDefaults("backend", settings.DefaultConfig),
	conf.MergeDefaults("forms", form.DefaultConfig),
	conf.MergeDefaults("http", server.DefaultConfig),
)
