package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/termii-notify/smsadmin/config"
	"github.com/termii-notify/smsadmin/internal/shell"
	"github.com/termii-notify/smsadmin/util/conf"
	"github.com/termii-notify/smsadmin/util/logging"
)

var (
	appName  = "smsadmin"
	appUsage = `Serves the SMS notification settings page embedded in the
Shopify admin, and manages shop settings from the command line.`
	rootApp = &cli.App{
		Name:            appName,
		Usage:           appUsage,
		HideHelpCommand: true,
		Flags: []cli.Flag{
			// general flags
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "set the log level. Options: debug, info, warn, error, panic, fatal.",
				EnvVars: []string{"LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "log-format",
				Usage:   "set the log format. Options: production, development.",
				EnvVars: []string{"LOG_FORMAT"},
			},
			&cli.PathFlag{
				Name:    "config",
				Usage:   "load configuration from a json file.",
				EnvVars: []string{"CONFIG_FILE"},
			},
			&cli.PathFlag{
				Name:    "env-file",
				Usage:   "load environment variables from a dotenv file, if it exists.",
				Value:   ".env",
				EnvVars: []string{"ENV_FILE"},
			},
			// backend flags
			&cli.StringFlag{
				Name:     "backend-url",
				Usage:    "the base url of the settings backend.",
				Aliases:  []string{"b"},
				Category: "backend",
				EnvVars:  []string{"BACKEND_URL"},
			},
			// shopify flags
			&cli.StringFlag{
				Name:     "shopify-api-key",
				Usage:    "the api key of the app, expected as session token audience.",
				Category: "shopify",
				EnvVars:  []string{"SHOPIFY_API_KEY"},
			},
			&cli.StringFlag{
				Name:     "shopify-api-secret",
				Usage:    "the api secret of the app. Session tokens are ignored if unset.",
				Category: "shopify",
				EnvVars:  []string{"SHOPIFY_API_SECRET"},
			},
		},
		Before: func(ctx *cli.Context) error {
			// create the logger
			log, err := logging.New(appName, ctx.String("log-level"), ctx.String("log-format"))
			if err != nil {
				return err
			}

			// inject logger into cli context
			ctx.Context = logging.ContextWithLogger(ctx.Context, log)

			// parse config using defaults, files, env and flags
			cfg, err := parseConfig[config.Config](ctx)
			if err != nil {
				return err
			}

			// inject the config into the cli context
			ctx.Context = conf.ContextWithConfig(ctx.Context, cfg)

			return nil
		},
		After: func(ctx *cli.Context) error {
			log, err := logging.LoggerFromContext(ctx.Context)
			if err != nil {
				return err
			}

			_ = log.Sync()

			return nil
		},
	}
)

// cliMap maps flag names to nested config keys.
var cliMap = map[string]string{
	"backend-url":        "backend.url",
	"shopify-api-key":    "shopify.api_key",
	"shopify-api-secret": "shopify.api_secret",
	"host":               "http.host",
	"port":               "http.port",
	"h2c":                "http.h2c",
}

// envMap maps the env vars of every flag of app to the config key of that
// flag, so a dotenv file can use the same names the flags read.
func envMap(app *cli.App) map[string]string {
	m := make(map[string]string)

	add := func(flags []cli.Flag) {
		for _, f := range flags {
			ef, ok := f.(interface{ GetEnvVars() []string })
			if !ok {
				continue
			}

			name := f.Names()[0]
			key, ok := cliMap[name]
			if !ok {
				key = strings.ReplaceAll(name, "-", "_")
			}

			for _, e := range ef.GetEnvVars() {
				m[e] = key
			}
		}
	}

	var walk func([]*cli.Command)
	walk = func(cmds []*cli.Command) {
		for _, c := range cmds {
			add(c.Flags)
			walk(c.Subcommands)
		}
	}

	add(app.Flags)
	walk(app.Commands)

	return m
}

func parseConfig[C any](ctx *cli.Context) (C, error) {
	log, err := logging.LoggerFromContext(ctx.Context)
	if err != nil {
		var c C
		return c, err
	}

	return conf.Parse[C](conf.ParseOptions{
		Cli:      ctx,
		CliMap:   cliMap,
		Defaults: config.DefaultConfig,
		EnvMap:   envMap(ctx.App),
		EnvFile:  ctx.Path("env-file"),
		FileName: ctx.Path("config"),
		Log:      log,
	})
}

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:               "version",
		Usage:              "print the version",
		DisableDefaultText: true,
	}
}

type ExecuteParams struct {
	Version  string
	Compiled time.Time
}

// Execute runs the app with the process arguments and returns the exit code.
func Execute(params ExecuteParams) int {
	rootApp.Version = params.Version
	rootApp.Compiled = params.Compiled

	return run(context.Background(), os.Args)
}

func run(ctx context.Context, args []string) int {
	err := rootApp.RunContext(ctx, args)

	// if app exited without error, return
	if err == nil {
		return 0
	}

	// if app exited with ExitError, exit with given exit code
	if exitErr, ok := shell.AsExitError(err); ok {
		return exitErr.ExitCode
	}

	fmt.Fprintf(os.Stderr, "exit error: %s\n", err.Error())

	// otherwise, exit with exit code 1
	return 1
}
