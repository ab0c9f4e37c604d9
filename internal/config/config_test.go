package config

import "testing"

func TestLoad_MemoryDriver(t *testing.T) {
	t.Setenv("GATEWAY_DRIVER", "Memory")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "segredo")
	t.Setenv("CORS_ORIGINS", "https://dnl.pt, ,http://localhost:5173")
	t.Setenv("SETTINGS_SYNC_SECONDS", "not-a-number")
	t.Setenv("COOKIE_SECURE", "yes")

	cfg := Load()
	if cfg.GatewayDriver != "memory" {
		t.Fatalf("expected memory driver, got %q", cfg.GatewayDriver)
	}
	if len(cfg.CorsOrigins) != 2 || cfg.CorsOrigins[1] != "http://localhost:5173" {
		t.Fatalf("unexpected origins %v", cfg.CorsOrigins)
	}
	if cfg.SettingsSyncSeconds != 300 {
		t.Fatalf("expected fallback interval, got %d", cfg.SettingsSyncSeconds)
	}
	if !cfg.CookieSecure {
		t.Fatalf("expected secure cookies")
	}
	if cfg.EmailAPIURL != "https://api.web3forms.com/submit" {
		t.Fatalf("unexpected email endpoint %q", cfg.EmailAPIURL)
	}
}

func TestLoad_PostgresRequiresDatabaseURL(t *testing.T) {
	t.Setenv("GATEWAY_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "segredo")
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for missing DATABASE_URL")
		}
	}()
	Load()
}
