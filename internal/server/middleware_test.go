package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

func TestFrameAncestors(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		referrer string
		expected string
	}{
		{"query", "/admin/settings?shop=foo", "", "frame-ancestors https://foo.myshopify.com https://admin.shopify.com;"},
		{"referrer", "/admin/settings", "https://bar.myshopify.com/admin", "frame-ancestors https://bar.myshopify.com https://admin.shopify.com;"},
		{"foreign referrer", "/admin/settings", "https://evil.com/", "frame-ancestors *;"},
		{"nothing", "/admin/settings", "", "frame-ancestors *;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.referrer != "" {
				r.Header.Set("Referer", tt.referrer)
			}

			assert.Equal(t, tt.expected, FrameAncestors(r))
		})
	}
}

func TestEmbedding_RemovesFrameOptions(t *testing.T) {
	w := httptest.NewRecorder()
	w.Header().Set("X-Frame-Options", "DENY")

	h := Embedding()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/settings?shop=foo", nil))

	assert.Empty(t, w.Header().Get("X-Frame-Options"))
	assert.Contains(t, w.Header().Get("Content-Security-Policy"), "https://foo.myshopify.com")
}

func TestLogging_RecordsStatusAndSize(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	h := Logging(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		fields := entries[0].ContextMap()
		assert.Equal(t, int64(http.StatusTeapot), fields["status"])
		assert.Equal(t, int64(len("short and stout")), fields["size"])
		assert.Equal(t, "/health", fields["path"])
	}
}

func TestRecovery(t *testing.T) {
	h := Recovery(zaptest.NewLogger(t))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestNewMux_Routes(t *testing.T) {
	routes := []*Route{
		{Pattern: "/health", Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})},
	}

	mux := NewMux(routes, zaptest.NewLogger(t))

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "frame-ancestors *;", w.Header().Get("Content-Security-Policy"))
}
