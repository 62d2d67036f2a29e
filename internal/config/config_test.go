package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.ServerPort == "" {
		t.Fatalf("expected default server port")
	}
	if cfg.PostgresURL == "" {
		t.Fatalf("expected default postgres url")
	}
	if cfg.AutoCheckinRadiusKm != 0.93 {
		t.Fatalf("expected 0.5 nm auto check-in radius, got %v", cfg.AutoCheckinRadiusKm)
	}
	if cfg.CheckinExpiryHours != 8 {
		t.Fatalf("expected 8 hour expiry, got %v", cfg.CheckinExpiryHours)
	}
	if cfg.VerificationIntervalHours != 2 {
		t.Fatalf("expected 2 hour verification interval, got %v", cfg.VerificationIntervalHours)
	}
	if cfg.RegionRestrictionEnabled {
		t.Fatalf("expected region restriction disabled by default")
	}
	if cfg.FallbackLat != 18.32 || cfg.FallbackLng != -64.62 {
		t.Fatalf("unexpected fallback point: %v, %v", cfg.FallbackLat, cfg.FallbackLng)
	}
	if cfg.RegionMinLat >= cfg.RegionMaxLat || cfg.RegionMinLng >= cfg.RegionMaxLng {
		t.Fatalf("service region box is degenerate")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", ":9000")
	t.Setenv("POSTGRES_URL", "postgres://example")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("REGION_RESTRICTION_ENABLED", "true")
	t.Setenv("CHECKIN_EXPIRY_HOURS", "4")

	cfg := Load()
	if cfg.ServerPort != ":9000" {
		t.Fatalf("expected override port")
	}
	if cfg.PostgresURL != "postgres://example" {
		t.Fatalf("expected override postgres")
	}
	if cfg.RedisAddr != "redis:6379" {
		t.Fatalf("expected override redis")
	}
	if cfg.JWTSecret != "secret" {
		t.Fatalf("expected override secret")
	}
	if !cfg.RegionRestrictionEnabled {
		t.Fatalf("expected region restriction enabled")
	}
	if cfg.CheckinExpiryHours != 4 {
		t.Fatalf("expected override expiry")
	}
}
