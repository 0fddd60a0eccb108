package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"aidconnect/internal/adapter/repo"
	"aidconnect/internal/adapter/static"
	"aidconnect/internal/certificate"
	"aidconnect/internal/document"
	"aidconnect/internal/domain"
	"aidconnect/internal/donation"
	httpapi "aidconnect/internal/http"
	"aidconnect/internal/http/handlers"
	"aidconnect/internal/infra"
	"aidconnect/internal/infra/geoip"
	"aidconnect/internal/session"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	logger := infra.NewLogger(cfg.AppEnv)
	ctx := context.Background()

	directory, pool, err := openDirectory(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open ngo directory")
	}
	if pool != nil {
		defer pool.Close()
	}

	resolver, err := geoip.Open(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip disabled")
	}
	defer resolver.Close()

	certs := certificate.NewService(certificate.ServiceOptions{
		Codes:   certificate.CodeService{BaseURL: cfg.QRServiceURL, Size: cfg.QRSize},
		Fetcher: certificate.NewHTTPFetcher(certificate.HTTPFetcherOptions{Timeout: cfg.QRFetchTimeout}),
		Logger:  logger,
	})
	sessions, err := session.NewRegistry(session.Options{
		Config: session.Config{
			TTL:                 cfg.SessionTTL,
			NotificationDefault: cfg.NotificationDuration,
			NotificationExit:    cfg.NotificationExit,
			DefaultLocale:       cfg.DefaultLocale,
			Timing: donation.Timing{
				Processing:    cfg.ProcessingDelay,
				Impact:        cfg.ImpactDelay,
				SuccessNotice: cfg.SuccessNoticeTTL,
				ImpactNotice:  cfg.ImpactNoticeTTL,
			},
		},
		Directory:    directory,
		Certificates: certs,
		Logger:       logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build session registry")
	}
	sessions.Start()

	app := &handlers.App{
		Sessions:     sessions,
		Directory:    directory,
		Certificates: certs,
		Documents: document.NewPaginator(document.Options{
			Scale:      cfg.RasterScale,
			PageWidth:  cfg.PageWidthMM,
			PageHeight: cfg.PageHeightMM,
			Logger:     logger,
		}),
		PreviewWidth: 640,
		Logger:       logger,
	}
	router := httpapi.NewRouter(app, httpapi.RouterOptions{
		Logger:          logger,
		AllowedOrigins:  cfg.CORSAllowedOrigins,
		RateLimitPerMin: cfg.RateLimitPerMin,
		DefaultLocale:   cfg.DefaultLocale,
		CountryLookup:   resolver.Lookup(),
	})
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Str("addr", server.Addr()).Msg("api listening")
		if err := server.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	sessions.Shutdown()
	logger.Info().Msg("server stopped")
}

// openDirectory serves NGOs from PostgreSQL when DATABASE_URL is set, seeding
// an empty table from the YAML directory, and from YAML otherwise.
func openDirectory(ctx context.Context, cfg *infra.Config, logger infra.Logger) (domain.NGODirectory, *pgxpool.Pool, error) {
	seed, err := static.Load(cfg.NGOSeedPath)
	if err != nil {
		return nil, nil, err
	}
	if !cfg.UsesDatabase() {
		logger.Info().Msg("ngo directory: yaml")
		return seed, nil, nil
	}

	pool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	ngos := repo.NewNGORepository(infra.NewSQLRunner(pool, logger))
	if err := ngos.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}
	n, err := ngos.Count(ctx)
	if err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("count ngos: %w", err)
	}
	if n == 0 {
		items, _ := seed.List(ctx)
		if err := ngos.Seed(ctx, items); err != nil {
			pool.Close()
			return nil, nil, err
		}
		logger.Info().Int("ngos", len(items)).Msg("ngo directory: seeded")
	}
	logger.Info().Msg("ngo directory: postgres")
	return ngos, pool, nil
}
