package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/felixge/httpsnoop"
	sentryhttp "github.com/getsentry/sentry-go/http"
	"go.uber.org/zap"

	"github.com/termii-notify/smsadmin/internal/shop"
)

// AdminOrigin is the origin of the admin that embeds the app.
const AdminOrigin = "https://admin.shopify.com"

// Middleware wraps a handler.
type Middleware func(http.Handler) http.Handler

// Chain applies middlewares to h, the first one being the outermost.
func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}

	return h
}

type responseSnooper struct {
	w      http.ResponseWriter
	status int
	size   int
}

func (s *responseSnooper) Write(b []byte) (int, error) {
	size, err := s.w.Write(b)
	s.size += size
	return size, err
}

func (s *responseSnooper) WriteHeader(status int) {
	s.w.WriteHeader(status)
	s.status = status
}

func makeSnooper(w http.ResponseWriter) (*responseSnooper, http.ResponseWriter) {
	snooper := &responseSnooper{
		w:      w,
		status: http.StatusOK,
	}

	hooks := httpsnoop.Hooks{
		Write: func(httpsnoop.WriteFunc) httpsnoop.WriteFunc {
			return snooper.Write
		},
		WriteHeader: func(httpsnoop.WriteHeaderFunc) httpsnoop.WriteHeaderFunc {
			return snooper.WriteHeader
		},
	}

	return snooper, httpsnoop.Wrap(w, hooks)
}

// Logging logs every request once it has been served.
func Logging(log *zap.Logger) Middleware {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			snooper, w := makeSnooper(w)

			h.ServeHTTP(w, r)

			log.Info("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("remote", r.RemoteAddr),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("status", snooper.status),
				zap.Int("size", snooper.size),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}

// Embedding allows the admin of the requesting shop to frame responses.
func Embedding() Middleware {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Security-Policy", FrameAncestors(r))
			w.Header().Del("X-Frame-Options")

			h.ServeHTTP(w, r)
		})
	}
}

// FrameAncestors returns the content security policy for r. Requests that
// carry no shop may be framed by anyone.
func FrameAncestors(r *http.Request) string {
	domain := r.URL.Query().Get(shop.QueryParam)
	if domain == "" {
		domain, _ = shop.FromReferrer(r.Referer())
	}

	if domain == "" {
		return "frame-ancestors *;"
	}

	return fmt.Sprintf("frame-ancestors https://%s %s;", shop.Normalize(domain), AdminOrigin)
}

// Recovery reports panics to sentry and answers with a 500.
func Recovery(log *zap.Logger) Middleware {
	sentryHandler := sentryhttp.New(sentryhttp.Options{Repanic: true})

	return func(h http.Handler) http.Handler {
		reported := sentryHandler.Handle(h)

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					if err == http.ErrAbortHandler {
						panic(err)
					}
					log.Error("handler panicked", zap.Any("panic", err), zap.String("path", r.URL.Path))
					http.Error(w, "internal server error", http.StatusInternalServerError)
				}
			}()

			reported.ServeHTTP(w, r)
		})
	}
}
