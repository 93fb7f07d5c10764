package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/termii-notify/smsadmin/app"
	"github.com/termii-notify/smsadmin/app/serve"
	"github.com/termii-notify/smsadmin/config"
	"github.com/termii-notify/smsadmin/util/logging"
)

var (
	serveCmdDescription = `The serve command starts a http server that renders the
settings page for the shop embedding it. The page loads the
settings of the shop from the backend and saves changed
templates back to it.

The command will launch the http server and blocks indefin-
itely, processing incoming http requests.`
	serveCmd = &cli.Command{
		Name:        "serve",
		Usage:       "Start a http server serving the settings page.",
		Description: serveCmdDescription,
		Action:      serveAction,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "host",
				Aliases:  []string{"H"},
				Usage:    "The host to listen on.",
				Value:    "localhost",
				Category: "http",
				EnvVars:  []string{"HTTP_HOST"},
			},
			&cli.IntFlag{
				Name:     "port",
				Aliases:  []string{"P"},
				Usage:    "The port to listen on.",
				Value:    8080,
				Category: "http",
				EnvVars:  []string{"HTTP_PORT", "PORT"},
			},
			&cli.BoolFlag{
				Name:     "h2c",
				Usage:    "Enable HTTP/2 cleartext upgrade.",
				Value:    false,
				Category: "http",
				EnvVars:  []string{"HTTP_H2C"},
			},
		},
	}
)

func serveAction(ctx *cli.Context) error {
	log, err := logging.LoggerFromContext(ctx.Context)
	if err != nil {
		return err
	}

	app, err := app.New(ctx)
	if err != nil {
		return err
	}

	cfg, err := parseConfig[config.Config](ctx)
	if err != nil {
		return err
	}

	log.Info("starting http server")

	return app.Run(ctx.Context, serve.Module(serve.Config{
		Session: cfg.Shopify,
		Http:    cfg.Http,
	}))
}

func init() {
	rootApp.Commands = append(rootApp.Commands, serveCmd)
}
