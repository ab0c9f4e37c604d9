package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds runtime configuration loaded from environment variables.
type Config struct {
	Port              string
	GatewayDriver     string
	DatabaseURL       string
	MigrationsDir     string
	JWTSecret         string
	JWTIssuer         string
	SessionTTLSeconds int64
	CookieSecret      string
	CookieSecure      bool

	StorageDriver    string
	MediaStoragePath string
	MediaBucket      string
	GCSBucket        string

	SettingsLocalPath   string
	SettingsSyncSeconds int
	DefaultNotifyEmail  string

	EmailAPIURL     string
	EmailFromName   string
	EmailTimeoutSec int

	GeminiAPIKey string
	GeminiModel  string

	// SeedAdminEmail and SeedAdminPassword create an admin at startup when
	// the in-memory gateway is used.
	SeedAdminEmail    string
	SeedAdminPassword string

	LogLevel string
	LogFile  string

	CorsOrigins []string
}

func Load() Config {
	driver := strings.ToLower(envOr("GATEWAY_DRIVER", "postgres"))
	databaseURL := envOr("DATABASE_URL", "")
	if driver == "postgres" {
		databaseURL = mustEnv("DATABASE_URL")
	}
	return Config{
		Port:              envOr("PORT", "8080"),
		GatewayDriver:     driver,
		DatabaseURL:       databaseURL,
		MigrationsDir:     envOr("MIGRATIONS_DIR", "migrations"),
		JWTSecret:         mustEnv("JWT_SECRET"),
		JWTIssuer:         envOr("JWT_ISSUER", "dnl-site"),
		SessionTTLSeconds: int64(envOrInt("SESSION_TTL_SECONDS", 28800)),
		CookieSecret:      envOr("COOKIE_SECRET", ""),
		CookieSecure:      envOrBool("COOKIE_SECURE", false),

		StorageDriver:    strings.ToLower(envOr("STORAGE_DRIVER", "local")),
		MediaStoragePath: envOr("MEDIA_STORAGE_PATH", "storage/media"),
		MediaBucket:      envOr("MEDIA_BUCKET", "siteDNL"),
		GCSBucket:        envOr("GCS_BUCKET", ""),

		SettingsLocalPath:   envOr("SETTINGS_LOCAL_PATH", "storage/settings.local.yaml"),
		SettingsSyncSeconds: envOrInt("SETTINGS_SYNC_SECONDS", 300),
		DefaultNotifyEmail:  envOr("DEFAULT_NOTIFICATION_EMAIL", "contacto@dnlremodelacoes.pt"),

		EmailAPIURL:     envOr("EMAIL_API_URL", "https://api.web3forms.com/submit"),
		EmailFromName:   envOr("EMAIL_FROM_NAME", "DNL Site"),
		EmailTimeoutSec: envOrInt("EMAIL_TIMEOUT_SECONDS", 15),

		GeminiAPIKey: envOr("GEMINI_API_KEY", envOr("API_KEY", "")),
		GeminiModel:  envOr("GEMINI_MODEL", "gemini-3-flash-preview"),

		SeedAdminEmail:    envOr("SEED_ADMIN_EMAIL", ""),
		SeedAdminPassword: envOr("SEED_ADMIN_PASSWORD", ""),

		LogLevel: envOr("LOG_LEVEL", "info"),
		LogFile:  envOr("LOG_FILE", "storage/logs/app.log"),

		CorsOrigins: parseCSV(envOr("CORS_ORIGINS", "")),
	}
}

func mustEnv(key string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		panic("missing env var: " + key)
	}
	return value
}

func envOr(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func envOrInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(key string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

func parseCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		value := strings.TrimSpace(part)
		if value != "" {
			items = append(items, value)
		}
	}
	return items
}
