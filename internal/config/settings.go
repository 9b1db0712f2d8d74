package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

type Settings struct {
	Env             string        `env:"APP_ENV" env-default:"local"`
	HTTPAddr        string        `env:"HTTP_ADDR" env-default:":8080"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"5s"`
	LogLevel        string        `env:"LOG_LEVEL" env-default:"info"`
	TimeZone        string        `env:"APP_TIMEZONE" env-default:"Local"`

	DatabaseDriver string `env:"DATABASE_DRIVER" env-default:"postgres"`
	DatabaseDSN    string `env:"DATABASE_DSN"`

	StorageDir   string `env:"STORAGE_DIR" env-default:"storage"`
	AssetVersion string `env:"ASSET_VERSION" env-default:"1"`
	PageSize     int    `env:"PAGE_SIZE" env-default:"10"`

	CookieDomain   string   `env:"COOKIE_DOMAIN"`
	CookieSecure   bool     `env:"COOKIE_SECURE" env-default:"true"`
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" env-separator:","`

	Google GoogleSettings
}

type GoogleSettings struct {
	ClientID     string `env:"GOOGLE_CLIENT_ID"`
	ClientSecret string `env:"GOOGLE_CLIENT_SECRET"`
	RedirectURL  string `env:"GOOGLE_REDIRECT_URL" env-default:"http://localhost:8080/auth/google/callback"`
}

var current *Settings

// Load reads Settings from the environment and makes them the process-wide
// settings returned by Current.
func Load() (*Settings, error) {
	s := new(Settings)
	if err := cleanenv.ReadEnv(s); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}
	if s.PageSize <= 0 {
		s.PageSize = 10
	}
	current = s
	return s, nil
}

// Current returns the loaded settings, or the defaults when Load was never called.
func Current() *Settings {
	if current == nil {
		s := &Settings{}
		_ = cleanenv.ReadEnv(s)
		if s.PageSize <= 0 {
			s.PageSize = 10
		}
		current = s
	}
	return current
}

func (s *Settings) IsLocal() bool {
	return s.Env == EnvLocal
}
