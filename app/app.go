package app

import (
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	"github.com/termii-notify/smsadmin/config"
	"github.com/termii-notify/smsadmin/internal/form"
	"github.com/termii-notify/smsadmin/internal/settings"
	"github.com/termii-notify/smsadmin/internal/shell"
	"github.com/termii-notify/smsadmin/util/conf"
	"github.com/termii-notify/smsadmin/util/logging"
)

// New creates the shell shared by all commands. It provides the settings
// client and the form registry.
func New(ctx *cli.Context) (*shell.Shell, error) {
	log, err := logging.LoggerFromContext(ctx.Context)
	if err != nil {
		return nil, err
	}

	config, err := conf.ConfigFromContext[config.Config](ctx.Context)
	if err != nil {
		return nil, err
	}

	sharedModule := fx.Module(
		"shared",
		// provide global config
		fx.Supply(config),
		// provide settings client
		settings.Module(config.Backend),
		// provide forms
		form.Module(config.Forms),
	)

	return shell.New(log, sharedModule), nil
}
