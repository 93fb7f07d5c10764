package cliflags_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/termii-notify/smsadmin/util/cliflags"
)

func readFlags(t *testing.T, env map[string]string, args ...string) map[string]any {
	t.Helper()

	for k, v := range env {
		t.Setenv(k, v)
	}

	var mp map[string]any

	app := &cli.App{
		Name: "test",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "backend-url", EnvVars: []string{"CLIFLAGS_TEST_BACKEND_URL"}},
			&cli.StringFlag{Name: "log-level", Value: "info"},
		},
		Commands: []*cli.Command{
			{
				Name: "serve",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "port", Value: 8080},
					&cli.BoolFlag{Name: "h2c"},
				},
				Action: func(ctx *cli.Context) error {
					provider := cliflags.Provider(ctx, ".", func(s string) string {
						if s == "backend-url" {
							return "backend.url"
						}
						return strings.ReplaceAll(s, "-", "_")
					})

					var err error
					mp, err = provider.Read()
					return err
				},
			},
		},
	}

	require.NoError(t, app.Run(append([]string{"test"}, args...)))

	return mp
}

func TestProvider_SetFlags(t *testing.T) {
	mp := readFlags(t, nil, "--backend-url", "https://backend.example.com", "serve", "--port", "9000")

	assert.Equal(t, map[string]any{
		"backend": map[string]any{"url": "https://backend.example.com"},
		"port":    9000,
	}, mp)
}

func TestProvider_EnvFlags(t *testing.T) {
	mp := readFlags(t, map[string]string{"CLIFLAGS_TEST_BACKEND_URL": "https://env.example.com"}, "serve", "--h2c")

	assert.Equal(t, map[string]any{
		"backend": map[string]any{"url": "https://env.example.com"},
		"h2c":     true,
	}, mp)
}

func TestProvider_DefaultsAreSkipped(t *testing.T) {
	mp := readFlags(t, nil, "serve")

	assert.Empty(t, mp)
}

func TestProvider_ReadBytes(t *testing.T) {
	_, err := (&cliflags.CLIFlags{}).ReadBytes()
	assert.Error(t, err)
}
