package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureOutput redirects the app output to a buffer for the test.
func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()

	out := new(bytes.Buffer)
	prev := rootApp.Writer
	rootApp.Writer = out
	t.Cleanup(func() { rootApp.Writer = prev })

	return out
}

func runWithBackend(t *testing.T, backend http.HandlerFunc, args ...string) (int, *bytes.Buffer) {
	t.Helper()

	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	out := captureOutput(t)

	base := []string{
		"smsadmin",
		"--log-level", "error",
		"--env-file", filepath.Join(t.TempDir(), ".env"),
		"--backend-url", srv.URL,
	}

	code := run(context.Background(), append(base, args...))

	return code, out
}

func decodeOutput(t *testing.T, out *bytes.Buffer) settingsOutput {
	t.Helper()

	var printed settingsOutput
	require.NoError(t, json.Unmarshal(out.Bytes(), &printed))

	return printed
}

func settingsBackend(t *testing.T, saved *map[string]string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/settings", r.URL.Path)
		assert.Equal(t, "foo.myshopify.com", r.URL.Query().Get("shop"))

		if r.Method == http.MethodPost {
			body, _ := io.ReadAll(r.Body)
			require.NoError(t, json.Unmarshal(body, saved))
			w.WriteHeader(http.StatusOK)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"termii_configured": true,
			"termii_sender_id": "MyShop",
			"order_confirmation_template": "remote order",
			"fulfillment_template": "remote fulfillment"
		}`))
	}
}

func TestSettingsShow(t *testing.T) {
	code, out := runWithBackend(t, settingsBackend(t, nil), "settings", "show", "--shop", "foo")

	assert.Equal(t, 0, code)
	assert.Equal(t, settingsOutput{
		Shop:                      "foo.myshopify.com",
		TermiiConfigured:          true,
		TermiiSenderID:            "MyShop",
		OrderConfirmationTemplate: "remote order",
		FulfillmentTemplate:       "remote fulfillment",
	}, decodeOutput(t, out))
}

func TestSettingsShow_BackendError(t *testing.T) {
	code, out := runWithBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"shop not found"}`))
	}, "settings", "show", "--shop", "foo.myshopify.com")

	assert.Equal(t, 1, code)
	assert.Equal(t, "shop not found", decodeOutput(t, out).Error)
}

func TestSettingsSave_KeepsOmittedTemplate(t *testing.T) {
	saved := map[string]string{}

	code, out := runWithBackend(t, settingsBackend(t, &saved),
		"settings", "save", "--shop", "foo", "--order-confirmation", "new order",
	)

	assert.Equal(t, 0, code)
	assert.True(t, decodeOutput(t, out).Saved)
	assert.Equal(t, map[string]string{
		"order_confirmation_template": "new order",
		"fulfillment_template":        "remote fulfillment",
	}, saved)
}
