package httpapi

import (
	stdhttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"golang.org/x/text/language"

	"aidconnect/internal/http/handlers"
	"aidconnect/internal/middleware"
)

// RouterOptions configures the middleware stack.
type RouterOptions struct {
	Logger          zerolog.Logger
	AllowedOrigins  []string
	RateLimitPerMin int
	DefaultLocale   language.Tag
	CountryLookup   middleware.CountryLookup
}

func NewRouter(app *handlers.App, opts RouterOptions) stdhttp.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		chimiddleware.RealIP,
		middleware.Logger(opts.Logger),
		chimiddleware.Recoverer,
		middleware.CORS(opts.AllowedOrigins),
		middleware.I18N(opts.DefaultLocale, opts.CountryLookup),
	)

	r.Get("/v1/healthz", app.Health)
	r.Get("/v1/verify", app.Verify)

	r.Route("/v1/ngos", func(r chi.Router) {
		r.Get("/", app.ListNGOs)
		r.Get("/{id}", app.GetNGO)
	})

	r.Route("/v1/sessions", func(r chi.Router) {
		r.With(middleware.RateLimit(opts.RateLimitPerMin, time.Minute)).Post("/", app.CreateSession)
		r.Route("/{sid}", func(r chi.Router) {
			r.Get("/", app.GetSession)
			r.Delete("/", app.DeleteSession)
			r.With(middleware.RateLimit(opts.RateLimitPerMin, time.Minute)).Post("/donations", app.SubmitDonation)

			r.Get("/notifications", app.ListNotifications)
			r.Post("/notifications", app.AddNotification)
			r.Delete("/notifications/{nid}", app.DismissNotification)

			r.Get("/certificate", app.GetCertificate)
			r.Get("/certificate.pdf", app.CertificatePDF)
			r.Get("/certificate/preview", app.CertificatePreview)
			r.Get("/certificate/bundle.zip", app.CertificateBundle)
		})
	})

	return r
}
