// Package shop resolves the domain of the shop an admin page is opened for.
package shop

import (
	"errors"
	"net/url"
	"regexp"
	"strings"
)

// DomainSuffix is the suffix every shop domain carries.
const DomainSuffix = ".myshopify.com"

// QueryParam is the query parameter the admin passes the shop in.
const QueryParam = "shop"

var ErrUnresolved = errors.New("unable to resolve shop domain")

// referrerPattern matches an admin origin of the form https://<label>.myshopify.com.
var referrerPattern = regexp.MustCompile(`^https://([a-zA-Z0-9][a-zA-Z0-9-]*(?:\.[a-zA-Z0-9][a-zA-Z0-9-]*)*\.myshopify\.com)(?:[/?#:]|$)`)

// Sources holds the places a shop domain can be read from, in the order
// they are consulted.
type Sources struct {
	// Query is the query of the current page url.
	Query url.Values

	// Session is the shop carried by the host session, if any.
	Session string

	// Referrer is the referrer of the current page.
	Referrer string
}

// Resolve returns the normalized shop domain of the first source that yields
// a non-empty value. The second return value is false if no source did.
func Resolve(src Sources) (string, bool) {
	if domain := strings.TrimSpace(src.Query.Get(QueryParam)); domain != "" {
		return Normalize(domain), true
	}

	if domain := strings.TrimSpace(src.Session); domain != "" {
		return Normalize(domain), true
	}

	if domain, ok := FromReferrer(src.Referrer); ok {
		return Normalize(domain), true
	}

	return "", false
}

// MustResolve is like Resolve but returns ErrUnresolved instead of a bool.
func MustResolve(src Sources) (string, error) {
	domain, ok := Resolve(src)
	if !ok {
		return "", ErrUnresolved
	}

	return domain, nil
}

// FromReferrer extracts the shop domain from an admin referrer url.
func FromReferrer(referrer string) (string, bool) {
	referrer = strings.TrimSpace(referrer)
	if referrer == "" {
		return "", false
	}

	match := referrerPattern.FindStringSubmatch(referrer)
	if match == nil {
		return "", false
	}

	return match[1], true
}

// Normalize appends DomainSuffix to bare shop labels. Values that already
// contain the suffix are returned unchanged.
func Normalize(domain string) string {
	if domain == "" || strings.Contains(domain, DomainSuffix) {
		return domain
	}

	return domain + DomainSuffix
}
