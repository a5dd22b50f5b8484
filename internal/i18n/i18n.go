// Package i18n holds the customer-facing delivery messages.
package i18n

import (
	"net/http"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// LangParam is the query parameter used to select a language.
const LangParam = "lang"

// Message keys.
const (
	KeyDateAvailable    = "delivery.date_available"
	KeyDateUnavailable  = "delivery.date_unavailable"
	KeyDateRequired     = "delivery.date_required"
	KeyInvalidFormat    = "delivery.invalid_format"
	KeySecurityFailed   = "delivery.security_failed"
	KeyCheckError       = "delivery.check_error"
	KeyDeliveryDate     = "delivery.label"
	KeySelectDate       = "delivery.select_date"
	KeyDeliveryDateSave = "delivery.saved"
)

var russian = language.Russian

var supportedTags = []language.Tag{
	language.English,
	russian,
}

var tagMatcher = language.NewMatcher(supportedTags)

func Default() language.Tag {
	return language.English
}

// Printer returns a message printer for the supplied tag.
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag)
}

// ResolveTag picks the response language from the lang query parameter or
// the Accept-Language header.
func ResolveTag(r *http.Request) language.Tag {
	if r == nil {
		return Default()
	}
	if v := strings.TrimSpace(r.URL.Query().Get(LangParam)); v != "" {
		if tag, err := language.Parse(v); err == nil {
			matched, _, _ := tagMatcher.Match(tag)
			return base(matched)
		}
	}
	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil {
			matched, _, _ := tagMatcher.Match(tags...)
			return base(matched)
		}
	}
	return Default()
}

// base strips matcher extensions (e.g. "ru-u-rg-ruzzzz") so catalog lookups
// hit the registered tags.
func base(tag language.Tag) language.Tag {
	b, _ := tag.Base()
	ru, _ := russian.Base()
	switch b {
	case ru:
		return russian
	default:
		return language.English
	}
}
