package settings_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/termii-notify/smsadmin/internal/settings"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *settings.HttpClient {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := settings.NewClient(settings.ClientParams{
		Config: settings.Config{URL: srv.URL},
		Log:    zaptest.NewLogger(t),
	})
	require.NoError(t, err)

	return client
}

func TestNewClient_InvalidURL(t *testing.T) {
	for _, raw := range []string{"", "ftp://backend", "://nope"} {
		_, err := settings.NewClient(settings.ClientParams{
			Config: settings.Config{URL: raw},
		})
		assert.Error(t, err, raw)
	}
}

func TestGet_Success(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, settings.Path, r.URL.Path)
		assert.Equal(t, "foo.myshopify.com", r.URL.Query().Get("shop"))
		assert.Equal(t, "foo.myshopify.com", r.Header.Get(settings.ShopHeader))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"termii_configured": true,
			"termii_sender_id": "MyShop",
			"order_confirmation_template": "confirmed {{order_number}}"
		}`))
	})

	s, err := client.Get(context.Background(), "foo.myshopify.com")
	require.NoError(t, err)

	require.NotNil(t, s.TermiiConfigured)
	assert.True(t, *s.TermiiConfigured)
	assert.Equal(t, "MyShop", s.TermiiSenderID)
	assert.Equal(t, "confirmed {{order_number}}", s.OrderConfirmationTemplate)
	assert.Empty(t, s.FulfillmentTemplate)
}

func TestGet_OmittedConfiguredIsNil(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"termii_sender_id": ""}`))
	})

	s, err := client.Get(context.Background(), "foo.myshopify.com")
	require.NoError(t, err)
	assert.Nil(t, s.TermiiConfigured)
}

func TestGet_APIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"detail":"shop not found"}`))
	})

	_, err := client.Get(context.Background(), "foo.myshopify.com")

	var apiErr *settings.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, "shop not found", apiErr.Detail)
}

func TestGet_APIErrorWithoutDetail(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message":"nope"}`))
	})

	_, err := client.Get(context.Background(), "foo.myshopify.com")

	var apiErr *settings.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Empty(t, apiErr.Detail)
}

func TestGet_UnparsableErrorBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<html>oops</html>`))
	})

	_, err := client.Get(context.Background(), "foo.myshopify.com")
	require.Error(t, err)

	var apiErr *settings.APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestGet_InvalidBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"termii_configured":"yes"}`))
	})

	_, err := client.Get(context.Background(), "foo.myshopify.com")
	assert.Error(t, err)
}

func TestSave_SendsDraft(t *testing.T) {
	var received settings.Draft

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "foo.myshopify.com", r.URL.Query().Get("shop"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &received))

		_, _ = w.Write([]byte(`not even json`))
	})

	draft := settings.Draft{
		OrderConfirmationTemplate: "a {{customer_name}}",
		FulfillmentTemplate:       "b {{order_number}}",
	}

	require.NoError(t, client.Save(context.Background(), "foo.myshopify.com", draft))
	assert.Equal(t, draft, received)
}

func TestSave_APIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail":"Invalid templates"}`))
	})

	err := client.Save(context.Background(), "foo.myshopify.com", settings.Draft{})

	var apiErr *settings.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Invalid templates", apiErr.Detail)
}

func TestGet_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client, err := settings.NewClient(settings.ClientParams{
		Config: settings.Config{URL: url},
	})
	require.NoError(t, err)

	_, err = client.Get(context.Background(), "foo.myshopify.com")
	assert.Error(t, err)
}
