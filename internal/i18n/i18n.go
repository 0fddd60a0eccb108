// Package i18n matches request locales and formats amounts and dates for
// notifications and certificates.
package i18n

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Default is the locale certificates are issued in when nothing better is known.
var Default = language.MustParse("en-IN")

// Supported lists the locales with dedicated date layouts. The first entry
// is the matcher fallback.
var Supported = []language.Tag{
	language.MustParse("en-IN"),
	language.AmericanEnglish,
	language.BritishEnglish,
	language.MustParse("hi-IN"),
	language.MustParse("id-ID"),
}

var matcher = language.NewMatcher(Supported)

var dateLayouts = map[string]string{
	"en-IN": "2/1/2006",
	"en-US": "1/2/2006",
	"en-GB": "02/01/2006",
	"hi-IN": "2/1/2006",
	"id-ID": "2/1/2006",
}

var countryLocales = map[string]string{
	"IN": "en-IN",
	"US": "en-US",
	"GB": "en-GB",
	"ID": "id-ID",
}

// Match resolves free-form locale strings (a tag or an Accept-Language
// header) to a supported tag. Empty or unparsable input yields fallback.
func Match(raw string, fallback language.Tag) language.Tag {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}
	tags, _, err := language.ParseAcceptLanguage(raw)
	if err != nil || len(tags) == 0 {
		return fallback
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return fallback
	}
	return Supported[idx]
}

// ForCountry maps an ISO country code to its certificate locale.
func ForCountry(country string) (language.Tag, bool) {
	code, ok := countryLocales[strings.ToUpper(strings.TrimSpace(country))]
	if !ok {
		return language.Und, false
	}
	return language.MustParse(code), true
}

// Amount renders a rupee amount with locale digit grouping, e.g. ₹1,500.
func Amount(tag language.Tag, amount int64) string {
	return message.NewPrinter(tag).Sprintf("₹%d", amount)
}

// Number renders n with locale digit grouping.
func Number(tag language.Tag, n int64) string {
	return message.NewPrinter(tag).Sprintf("%d", n)
}

// Date renders t as a short numeric date for tag.
func Date(tag language.Tag, t time.Time) string {
	layout, ok := dateLayouts[tag.String()]
	if !ok {
		layout = dateLayouts[Match(tag.String(), Default).String()]
	}
	if layout == "" {
		layout = dateLayouts["en-IN"]
	}
	return t.Format(layout)
}

// Title title-cases labels such as donation types.
func Title(tag language.Tag, s string) string {
	return cases.Title(tag).String(strings.ToLower(s))
}
