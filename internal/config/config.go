// Package config loads the service configuration from the environment.
//
// Values come from process environment variables (a `.env` file is loaded
// first when present), are mapped into typed structs with koanf, defaulted,
// and validated so the process fails fast on bad configuration.
//
// Two naming schemes are read:
//   - the legacy DATABASE_URL and PORT variables
//   - ACME_ prefixed keys where "__" separates nesting levels, e.g.
//     ACME_SERVER__PORT -> server.port -> Config.Server.Port
//
// Prefixed keys win over legacy ones.
package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Loads a `.env` file into the process environment, if one exists.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "ACME_"

// Config is the root configuration object.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	API           APIConfig            `koanf:"api"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig holds HTTP server settings. Timeouts are in seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required,min=1"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required,min=1"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required,min=1"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`
}

// DatabaseConfig describes how to reach PostgreSQL. Either URL or the
// individual connection fields must be set; URL wins when both are present.
type DatabaseConfig struct {
	URL      string `koanf:"url"`
	Host     string `koanf:"host" validate:"required_without=URL"`
	Port     int    `koanf:"port"`
	User     string `koanf:"user" validate:"required_without=URL"`
	Password string `koanf:"password"`
	Name     string `koanf:"name" validate:"required_without=URL"`
	SSLMode  string `koanf:"ssl_mode"`

	MaxOpenConns    int           `koanf:"max_open_conns" validate:"min=1"`
	MinConns        int           `koanf:"min_conns" validate:"min=0,ltefield=MaxOpenConns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `koanf:"conn_max_idle_time"`

	// QueryTimeout bounds every repository statement.
	QueryTimeout time.Duration `koanf:"query_timeout" validate:"min=0"`
}

// DSN returns the connection string handed to pgx.
func (c DatabaseConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}

	hostPort := c.Host
	if c.Port != 0 {
		hostPort = net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
	}

	dsn := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   hostPort,
		Path:   "/" + c.Name,
	}
	if c.SSLMode != "" {
		dsn.RawQuery = url.Values{"sslmode": []string{c.SSLMode}}.Encode()
	}
	return dsn.String()
}

// APIConfig tunes request semantics that are a product decision rather than
// an infrastructure one.
type APIConfig struct {
	// StrictNotFound makes PUT on an unknown employee id answer 404. When
	// false the legacy behaviour is kept: 200 with an empty body.
	StrictNotFound *bool `koanf:"strict_not_found"`
}

// IsStrictNotFound reports the effective StrictNotFound setting.
func (c APIConfig) IsStrictNotFound() bool {
	return c.StrictNotFound == nil || *c.StrictNotFound
}

// legacyKeys maps the unprefixed DATABASE_URL and PORT variables.
var legacyKeys = map[string]string{
	"DATABASE_URL": "database.url",
	"PORT":         "server.port",
}

func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "__", ".")
}

// LoadConfig reads, defaults and validates the configuration.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider("", ".", func(s string) string {
		return legacyKeys[s]
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("loading legacy env variables: %w", err)
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading %s env variables: %w", envPrefix, err)
	}

	// Unmarshal decodes into the existing Observability value, so keys left
	// unset keep their defaults, including the boolean switches.
	mainConfig := &Config{Observability: DefaultObservabilityConfig()}
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	applyDefaults(mainConfig)

	validate := validator.New()
	if err := validate.Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	mainConfig.Observability.ServiceName = "acme-hr-directory"
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}

// applyDefaults fills every optional value that was left unset.
func applyDefaults(cfg *Config) {
	if cfg.Primary.Env == "" {
		cfg.Primary.Env = "development"
	}

	s := &cfg.Server
	if s.Port == "" {
		s.Port = "3000"
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 30
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = 30
	}
	if s.IdleTimeout == 0 {
		s.IdleTimeout = 60
	}
	if len(s.CORSAllowedOrigins) == 0 {
		s.CORSAllowedOrigins = []string{"*"}
	}

	db := &cfg.Database
	if db.URL == "" && db.Host == "" {
		db.URL = "postgres://localhost/acme_hr_directory"
	}
	if db.URL == "" {
		if db.Port == 0 {
			db.Port = 5432
		}
		if db.SSLMode == "" {
			db.SSLMode = "disable"
		}
	}
	if db.MaxOpenConns == 0 {
		db.MaxOpenConns = 10
	}
	if db.ConnMaxLifetime == 0 {
		db.ConnMaxLifetime = time.Hour
	}
	if db.ConnMaxIdleTime == 0 {
		db.ConnMaxIdleTime = 30 * time.Minute
	}
	if db.QueryTimeout == 0 {
		db.QueryTimeout = 5 * time.Second
	}

	defaults := DefaultObservabilityConfig()
	if cfg.Observability == nil {
		cfg.Observability = defaults
		return
	}

	o := cfg.Observability
	if o.ServiceName == "" {
		o.ServiceName = defaults.ServiceName
	}
	if o.Environment == "" {
		o.Environment = defaults.Environment
	}
	if o.Logging.Level == "" {
		o.Logging.Level = defaults.Logging.Level
	}
	if o.Logging.Format == "" {
		o.Logging.Format = defaults.Logging.Format
	}
	if o.Logging.SlowQueryThreshold == 0 {
		o.Logging.SlowQueryThreshold = defaults.Logging.SlowQueryThreshold
	}
	if o.HealthChecks.Timeout == 0 {
		o.HealthChecks.Timeout = defaults.HealthChecks.Timeout
	}
	if len(o.HealthChecks.Checks) == 0 {
		o.HealthChecks.Checks = defaults.HealthChecks.Checks
	}
}
