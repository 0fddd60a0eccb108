package certificate

import (
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/text/language"

	"aidconnect/internal/domain"
	"aidconnect/internal/i18n"
)

// Certificate bundles everything needed to display or print one donation
// certificate.
type Certificate struct {
	Donation domain.CompletedDonation `json:"donation"`
	Payload  VerificationPayload      `json:"payload"`
	CodeURL  string                   `json:"code_url"`
	View     View                     `json:"view"`
}

type ServiceOptions struct {
	Codes   CodeService
	Fetcher CodeFetcher
	Now     func() time.Time
	Logger  zerolog.Logger
}

// Service prepares certificates and their canvases.
type Service struct {
	codes   CodeService
	fetcher CodeFetcher
	now     func() time.Time
	logger  zerolog.Logger
}

func NewService(opts ServiceOptions) *Service {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Service{codes: opts.Codes, fetcher: opts.Fetcher, now: opts.Now, logger: opts.Logger}
}

// Prepare builds the payload, code URL and view for d.
func (s *Service) Prepare(d domain.CompletedDonation, tag language.Tag) (Certificate, error) {
	if tag == language.Und {
		tag = i18n.Default
	}
	payload := BuildPayload(d)
	codeURL, err := s.codes.URL(payload)
	if err != nil {
		return Certificate{}, err
	}
	return Certificate{
		Donation: d,
		Payload:  payload,
		CodeURL:  codeURL,
		View:     NewView(d, codeURL, tag, s.now()),
	}, nil
}

// Localize re-renders the view of c for another locale.
func (s *Service) Localize(c Certificate, tag language.Tag) Certificate {
	if tag == language.Und || tag.String() == c.View.Locale {
		return c
	}
	c.View = NewView(c.Donation, c.CodeURL, tag, s.now())
	return c
}

// Canvas returns a rasterizer for c.
func (s *Service) Canvas(c Certificate) *Canvas {
	return NewCanvas(c.View, s.fetcher, s.logger)
}
