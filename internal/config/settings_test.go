package config_test

import (
	"testing"
	"time"

	"github.com/saulo-duarte/taskflow/internal/config"
)

func TestLoad(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		s, err := config.Load()
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if s.PageSize != 10 {
			t.Errorf("expected default page size 10, got %d", s.PageSize)
		}
		if s.ShutdownTimeout != 5*time.Second {
			t.Errorf("expected 5s shutdown timeout, got %s", s.ShutdownTimeout)
		}
		if s.DatabaseDriver != config.DriverPostgres {
			t.Errorf("expected postgres driver, got %s", s.DatabaseDriver)
		}
	})

	t.Run("Overrides", func(t *testing.T) {
		t.Setenv("APP_ENV", config.EnvProd)
		t.Setenv("PAGE_SIZE", "25")
		t.Setenv("DATABASE_DRIVER", config.DriverSQLite)
		t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com,https://b.example.com")

		s, err := config.Load()
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if s.IsLocal() {
			t.Errorf("expected prod env")
		}
		if s.PageSize != 25 {
			t.Errorf("expected page size 25, got %d", s.PageSize)
		}
		if len(s.AllowedOrigins) != 2 || s.AllowedOrigins[1] != "https://b.example.com" {
			t.Errorf("unexpected origins %v", s.AllowedOrigins)
		}
		if config.Current() != s {
			t.Errorf("Current should return the last loaded settings")
		}
	})
}
