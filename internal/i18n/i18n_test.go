package i18n

import (
	"testing"
	"time"

	"golang.org/x/text/language"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "empty uses fallback", raw: "", want: "en-IN"},
		{name: "exact tag", raw: "en-US", want: "en-US"},
		{name: "accept-language list", raw: "id-ID,en;q=0.8", want: "id-ID"},
		{name: "garbage uses fallback", raw: ";;;", want: "en-IN"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Match(tc.raw, Default).String(); got != tc.want {
				t.Fatalf("Match(%q) = %q, want %q", tc.raw, got, tc.want)
			}
		})
	}
}

func TestForCountry(t *testing.T) {
	tag, ok := ForCountry("in")
	if !ok || tag.String() != "en-IN" {
		t.Fatalf("ForCountry(in) = %v, %v", tag, ok)
	}
	if _, ok := ForCountry("ZZ"); ok {
		t.Fatalf("unexpected match for unknown country")
	}
}

func TestAmountGroupsDigits(t *testing.T) {
	if got := Amount(language.AmericanEnglish, 1500); got != "₹1,500" {
		t.Fatalf("Amount = %q", got)
	}
	if got := Amount(language.AmericanEnglish, 500); got != "₹500" {
		t.Fatalf("Amount = %q", got)
	}
}

func TestDateLayouts(t *testing.T) {
	d := time.Date(2026, 10, 5, 12, 0, 0, 0, time.UTC)
	if got := Date(Default, d); got != "5/10/2026" {
		t.Fatalf("en-IN date = %q", got)
	}
	if got := Date(language.AmericanEnglish, d); got != "10/5/2026" {
		t.Fatalf("en-US date = %q", got)
	}
}

func TestTitle(t *testing.T) {
	if got := Title(language.English, "VOLUNTEERING"); got != "Volunteering" {
		t.Fatalf("Title = %q", got)
	}
}
