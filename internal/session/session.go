// Package session verifies the session tokens the embedding admin hands to
// the app and exposes the host context the settings form works with.
package session

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrNoToken      = errors.New("no session token")
	ErrInvalidToken = errors.New("invalid session token")
	ErrDisabled     = errors.New("session verification disabled")
)

// TokenQueryParam is the query parameter the admin passes the session token in.
const TokenQueryParam = "id_token"

// Session is the verified host session.
type Session struct {
	// Shop is the shop domain the session was issued for.
	Shop string

	// User is the subject of the token, the id of the admin user.
	User string

	ExpiresAt time.Time
}

// Config configures session token verification.
type Config struct {
	// ApiKey is the app's client id, expected as token audience.
	ApiKey string `conf:"api_key"`

	// ApiSecret is the app's client secret, used to verify token signatures.
	ApiSecret string `conf:"api_secret"`
}

type claims struct {
	jwt.RegisteredClaims
	Dest string `json:"dest"`
}

// Verifier verifies session tokens.
type Verifier struct {
	config Config
	now    func() time.Time
}

func NewVerifier(config Config) *Verifier {
	return &Verifier{
		config: config,
		now:    time.Now,
	}
}

// Enabled reports whether tokens can be verified at all.
func (v *Verifier) Enabled() bool {
	return v != nil && v.config.ApiSecret != ""
}

// Verify parses and validates a session token.
func (v *Verifier) Verify(token string) (*Session, error) {
	if !v.Enabled() {
		return nil, ErrDisabled
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrNoToken
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(v.now),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(5 * time.Second),
	}
	if v.config.ApiKey != "" {
		opts = append(opts, jwt.WithAudience(v.config.ApiKey))
	}

	var parsed claims
	_, err := jwt.ParseWithClaims(token, &parsed, func(*jwt.Token) (any, error) {
		return []byte(v.config.ApiSecret), nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	shop, err := shopFromDest(parsed.Dest)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	s := &Session{
		Shop: shop,
		User: parsed.Subject,
	}
	if parsed.ExpiresAt != nil {
		s.ExpiresAt = parsed.ExpiresAt.Time.UTC()
	}

	return s, nil
}

// FromRequest verifies the token carried by r, read from the Authorization
// bearer header first and the id_token query parameter second.
func (v *Verifier) FromRequest(r *http.Request) (*Session, error) {
	return v.Verify(TokenFromRequest(r))
}

// TokenFromRequest returns the raw session token carried by r, if any.
func TokenFromRequest(r *http.Request) string {
	if r == nil {
		return ""
	}

	if auth := r.Header.Get("Authorization"); auth != "" {
		if token, ok := strings.CutPrefix(auth, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}

	return strings.TrimSpace(r.URL.Query().Get(TokenQueryParam))
}

func shopFromDest(dest string) (string, error) {
	if dest == "" {
		return "", errors.New("dest claim is required")
	}

	u, err := url.Parse(dest)
	if err != nil {
		return "", fmt.Errorf("parse dest claim: %w", err)
	}

	if u.Scheme != "https" || u.Hostname() == "" {
		return "", fmt.Errorf("dest claim %q is not an https origin", dest)
	}

	return u.Hostname(), nil
}
