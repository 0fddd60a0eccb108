package infra

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv             string
	Port               string
	DatabaseURL        string
	NGOSeedPath        string
	GeoIPDBPath        string
	DefaultLocale      language.Tag
	CORSAllowedOrigins []string
	HTTPReadTimeout    time.Duration
	HTTPWriteTimeout   time.Duration
	HTTPIdleTimeout    time.Duration
	RateLimitPerMin    int

	ProcessingDelay      time.Duration
	ImpactDelay          time.Duration
	SuccessNoticeTTL     time.Duration
	ImpactNoticeTTL      time.Duration
	NotificationDuration time.Duration
	NotificationExit     time.Duration

	QRServiceURL   string
	QRSize         int
	QRFetchTimeout time.Duration
	RasterScale    int
	PageWidthMM    float64
	PageHeightMM   float64
	SessionTTL     time.Duration
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
func LoadConfig() (*Config, error) {
	locale, err := language.Parse(getEnv("DEFAULT_LOCALE", "en-IN"))
	if err != nil {
		return nil, fmt.Errorf("DEFAULT_LOCALE: %w", err)
	}
	pageWidth, err := getEnvFloat("PAGE_WIDTH_MM", 210)
	if err != nil {
		return nil, err
	}
	pageHeight, err := getEnvFloat("PAGE_HEIGHT_MM", 295)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		AppEnv:             getEnv("APP_ENV", "development"),
		Port:               getEnv("PORT", "8080"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		NGOSeedPath:        os.Getenv("NGO_SEED_PATH"),
		GeoIPDBPath:        os.Getenv("GEOIP_DB_PATH"),
		DefaultLocale:      locale,
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		HTTPReadTimeout:    time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout:   time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 30)),
		HTTPIdleTimeout:    time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		RateLimitPerMin:    getEnvInt("RATE_LIMIT_PER_MINUTE", 30),

		ProcessingDelay:      getEnvMillis("PROCESSING_DELAY_MS", 2000),
		ImpactDelay:          getEnvMillis("IMPACT_DELAY_MS", 2000),
		SuccessNoticeTTL:     getEnvMillis("SUCCESS_NOTICE_MS", 8000),
		ImpactNoticeTTL:      getEnvMillis("IMPACT_NOTICE_MS", 10000),
		NotificationDuration: getEnvMillis("NOTIFICATION_DURATION_MS", 5000),
		NotificationExit:     getEnvMillis("NOTIFICATION_EXIT_MS", 300),

		QRServiceURL:   getEnv("QR_SERVICE_URL", "https://api.qrserver.com/v1/create-qr-code/"),
		QRSize:         getEnvInt("QR_SIZE", 100),
		QRFetchTimeout: time.Second * time.Duration(getEnvInt("QR_FETCH_TIMEOUT_SECONDS", 5)),
		RasterScale:    getEnvInt("RASTER_SCALE", 2),
		PageWidthMM:    pageWidth,
		PageHeightMM:   pageHeight,
		SessionTTL:     time.Minute * time.Duration(getEnvInt("SESSION_TTL_MINUTES", 30)),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	positive := []struct {
		name string
		v    time.Duration
	}{
		{"PROCESSING_DELAY_MS", c.ProcessingDelay},
		{"IMPACT_DELAY_MS", c.ImpactDelay},
		{"SUCCESS_NOTICE_MS", c.SuccessNoticeTTL},
		{"IMPACT_NOTICE_MS", c.ImpactNoticeTTL},
		{"NOTIFICATION_DURATION_MS", c.NotificationDuration},
		{"QR_FETCH_TIMEOUT_SECONDS", c.QRFetchTimeout},
		{"SESSION_TTL_MINUTES", c.SessionTTL},
	}
	for _, p := range positive {
		if p.v <= 0 {
			return fmt.Errorf("%s must be positive", p.name)
		}
	}
	if c.NotificationExit < 0 {
		return fmt.Errorf("NOTIFICATION_EXIT_MS must not be negative")
	}
	if c.RasterScale < 1 {
		return fmt.Errorf("RASTER_SCALE must be at least 1")
	}
	if c.QRSize <= 0 {
		return fmt.Errorf("QR_SIZE must be positive")
	}
	if c.PageWidthMM <= 0 || c.PageHeightMM <= 0 {
		return fmt.Errorf("PAGE_WIDTH_MM and PAGE_HEIGHT_MM must be positive")
	}
	if c.RateLimitPerMin < 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must not be negative")
	}
	return nil
}

// UsesDatabase reports whether the NGO directory lives in PostgreSQL.
func (c *Config) UsesDatabase() bool {
	return strings.TrimSpace(c.DatabaseURL) != ""
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

// getEnvInt returns fallback for unparsable values; range checks happen in validate.
func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return i
		}
		return -1
	}
	return fallback
}

func getEnvMillis(key string, fallback int) time.Duration {
	return time.Millisecond * time.Duration(getEnvInt(key, fallback))
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
