// Package config loads service settings from defaults, an optional
// storeadmin.yaml and the environment.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Data sources.
const (
	SourceUpstream = "upstream"
	SourcePostgres = "postgres"
)

// Keys double as environment variable names once upper-cased.
const (
	KeyPort            = "app_port"
	KeyEnv             = "app_env"
	KeyLogLevel        = "log_level"
	KeyUpstreamURL     = "upstream_url"
	KeyUpstreamTimeout = "upstream_timeout"
	KeyDataSource      = "data_source"
	KeyDatabaseURL     = "database_url"
	KeyJWTSecret       = "jwt_secret"
	KeyConfirmTTL      = "confirm_ttl"
	KeyWorkingHours    = "working_hours"
	KeyTopN            = "top_n"
	KeyShutdownTimeout = "shutdown_timeout"
)

// Config is the resolved service configuration.
type Config struct {
	Port            string
	Env             string
	LogLevel        string
	UpstreamURL     string
	UpstreamTimeout time.Duration
	DataSource      string
	DatabaseURL     string
	JWTSecret       string
	ConfirmTTL      time.Duration
	WorkingHours    WorkingHours
	TopN            int
	ShutdownTimeout time.Duration
}

// Development reports whether the service runs in development mode.
func (c Config) Development() bool { return c.Env == "development" }

// WorkingHours is an inclusive window of local hours. The zero value is
// always open.
type WorkingHours struct {
	Open, Close int
	Enabled     bool
}

// Contains reports whether t falls inside the window.
func (w WorkingHours) Contains(t time.Time) bool {
	if !w.Enabled {
		return true
	}
	h := t.Hour()
	return h >= w.Open && h <= w.Close
}

// ParseWorkingHours reads "8-23". An empty string disables the window.
func ParseWorkingHours(s string) (WorkingHours, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return WorkingHours{}, nil
	}
	from, to, ok := strings.Cut(s, "-")
	if !ok {
		return WorkingHours{}, fmt.Errorf("working hours %q: want OPEN-CLOSE", s)
	}
	open, err := strconv.Atoi(strings.TrimSpace(from))
	if err != nil {
		return WorkingHours{}, fmt.Errorf("working hours %q: %w", s, err)
	}
	closing, err := strconv.Atoi(strings.TrimSpace(to))
	if err != nil {
		return WorkingHours{}, fmt.Errorf("working hours %q: %w", s, err)
	}
	if open < 0 || closing > 23 || open > closing {
		return WorkingHours{}, fmt.Errorf("working hours %q: want 0 <= OPEN <= CLOSE <= 23", s)
	}
	return WorkingHours{Open: open, Close: closing, Enabled: true}, nil
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyPort, "8080")
	v.SetDefault(KeyEnv, "development")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyUpstreamURL, "http://localhost:8081")
	v.SetDefault(KeyUpstreamTimeout, "10s")
	v.SetDefault(KeyDataSource, SourceUpstream)
	v.SetDefault(KeyConfirmTTL, "5m")
	v.SetDefault(KeyWorkingHours, "")
	v.SetDefault(KeyTopN, 5)
	v.SetDefault(KeyShutdownTimeout, "10s")
}

// Load reads storeadmin.yaml from the given directories (if present) and the
// environment.
func Load(paths ...string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)
	v.AutomaticEnv()

	v.SetConfigName("storeadmin")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	if len(paths) > 0 {
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}
	return New(v)
}

// New resolves and validates a Config from v.
func New(v *viper.Viper) (*Config, error) {
	hours, hoursErr := ParseWorkingHours(v.GetString(KeyWorkingHours))
	cfg := &Config{
		Port:            v.GetString(KeyPort),
		Env:             v.GetString(KeyEnv),
		LogLevel:        v.GetString(KeyLogLevel),
		UpstreamURL:     v.GetString(KeyUpstreamURL),
		UpstreamTimeout: v.GetDuration(KeyUpstreamTimeout),
		DataSource:      strings.ToLower(v.GetString(KeyDataSource)),
		DatabaseURL:     v.GetString(KeyDatabaseURL),
		JWTSecret:       v.GetString(KeyJWTSecret),
		ConfirmTTL:      v.GetDuration(KeyConfirmTTL),
		WorkingHours:    hours,
		TopN:            v.GetInt(KeyTopN),
		ShutdownTimeout: v.GetDuration(KeyShutdownTimeout),
	}
	if err := errors.Join(hoursErr, cfg.Validate()); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	switch c.DataSource {
	case SourceUpstream:
		if c.UpstreamURL == "" {
			errs = append(errs, errors.New("UPSTREAM_URL is required for the upstream data source"))
		}
	case SourcePostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres data source"))
		}
	default:
		errs = append(errs, fmt.Errorf("DATA_SOURCE %q: want %s or %s", c.DataSource, SourceUpstream, SourcePostgres))
	}
	if c.UpstreamTimeout <= 0 {
		errs = append(errs, errors.New("UPSTREAM_TIMEOUT must be positive"))
	}
	if c.ConfirmTTL <= 0 {
		errs = append(errs, errors.New("CONFIRM_TTL must be positive"))
	}
	if c.TopN <= 0 {
		errs = append(errs, errors.New("TOP_N must be positive"))
	}
	return errors.Join(errs...)
}
