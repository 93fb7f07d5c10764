package ui

import (
	"net/http"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// LangParam is the query parameter used to select a language.
const LangParam = "lang"

var supported = []language.Tag{
	language.English,
}

var matcher = language.NewMatcher(supported)

// DefaultTag returns the language used when nothing else matches.
func DefaultTag() language.Tag {
	return supported[0]
}

// ResolveTag picks the ui language from an explicit locale, falling back to
// the Accept-Language header of r.
func ResolveTag(locale string, r *http.Request) language.Tag {
	if locale = strings.TrimSpace(locale); locale != "" {
		if tag, err := language.Parse(locale); err == nil {
			return match(tag)
		}
	}

	if r != nil {
		if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
			if tags, _, err := language.ParseAcceptLanguage(accept); err == nil && len(tags) > 0 {
				return match(tags...)
			}
		}
	}

	return DefaultTag()
}

// Printer returns a message printer for tag.
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag)
}

func match(tags ...language.Tag) language.Tag {
	_, index, _ := matcher.Match(tags...)
	return supported[index]
}
