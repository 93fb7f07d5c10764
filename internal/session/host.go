package session

import (
	"errors"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/termii-notify/smsadmin/internal/shop"
)

// HostContext is everything the settings form reads from the page it is
// embedded in. It is built once per request and passed explicitly.
type HostContext struct {
	// Query is the query of the page url.
	Query url.Values

	// Session is the verified host session, nil if none.
	Session *Session

	// Referrer is the referrer of the page.
	Referrer string

	// Locale is the requested ui locale, empty for the default.
	Locale string
}

// ShopSources returns the sources shop domain resolution consults.
func (h HostContext) ShopSources() shop.Sources {
	src := shop.Sources{
		Query:    h.Query,
		Referrer: h.Referrer,
	}
	if h.Session != nil {
		src.Session = h.Session.Shop
	}

	return src
}

// Shop resolves the shop domain of the host.
func (h HostContext) Shop() (string, bool) {
	return shop.Resolve(h.ShopSources())
}

// HostFromRequest builds the host context of r. Invalid session tokens are
// logged and otherwise ignored.
func HostFromRequest(r *http.Request, verifier *Verifier, log *zap.Logger) HostContext {
	host := HostContext{
		Query:    r.URL.Query(),
		Referrer: r.Referer(),
		Locale:   r.URL.Query().Get("lang"),
	}

	if !verifier.Enabled() {
		return host
	}

	s, err := verifier.FromRequest(r)
	switch {
	case err == nil:
		host.Session = s
	case errors.Is(err, ErrNoToken):
	default:
		log.Debug("ignoring session token", zap.Error(err))
	}

	return host
}
