package cmd

import (
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/termii-notify/smsadmin/config"
	"github.com/termii-notify/smsadmin/util/conf"
)

func TestEnvMap(t *testing.T) {
	m := envMap(rootApp)

	assert.Equal(t, "backend.url", m["BACKEND_URL"])
	assert.Equal(t, "shopify.api_key", m["SHOPIFY_API_KEY"])
	assert.Equal(t, "shopify.api_secret", m["SHOPIFY_API_SECRET"])
	assert.Equal(t, "http.port", m["HTTP_PORT"])
	assert.Equal(t, "http.port", m["PORT"])
	assert.Equal(t, "lambda_proxy_source", m["LAMBDA_PROXY_SOURCE"])
	assert.Equal(t, "log_level", m["LOG_LEVEL"])
}

func TestParseConfig_EnvFileUsesFlagEnvNames(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte(
		"BACKEND_URL=https://backend.example.com\n"+
			"SHOPIFY_API_KEY=key\n"+
			"SHOPIFY_API_SECRET=s3cret\n",
	), 0o600))

	cfg, err := conf.Parse[config.Config](conf.ParseOptions{
		Defaults: config.DefaultConfig,
		EnvMap:   envMap(rootApp),
		EnvFile:  envFile,
	})
	require.NoError(t, err)

	assert.Equal(t, "https://backend.example.com", cfg.Backend.URL)
	assert.Equal(t, "key", cfg.Shopify.ApiKey)
	assert.Equal(t, "s3cret", cfg.Shopify.ApiSecret)
}

func TestSettingsShow_BackendFromEnvFile(t *testing.T) {
	srv := httptest.NewServer(settingsBackend(t, nil))
	t.Cleanup(srv.Close)

	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("BACKEND_URL="+srv.URL+"\n"), 0o600))

	out := captureOutput(t)

	code := run(context.Background(), []string{
		"smsadmin",
		"--log-level", "error",
		"--env-file", envFile,
		"settings", "show", "--shop", "foo",
	})

	assert.Equal(t, 0, code)
	assert.Equal(t, "MyShop", decodeOutput(t, out).TermiiSenderID)
}
