package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Webhook   WebhookConfig   `mapstructure:"webhook"`
	Events    EventsConfig    `mapstructure:"events"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Ledger    LedgerConfig    `mapstructure:"ledger"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // debug, release, test
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN builds a postgres:// URL. Credentials are escaped so passwords may
// contain reserved characters.
func (d DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
		Path:     "/" + d.DBName,
		RawQuery: url.Values{"sslmode": {d.SSLMode}}.Encode(),
	}
	return u.String()
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r RedisConfig) Addr() string {
	return net.JoinHostPort(r.Host, strconv.Itoa(r.Port))
}

type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	Expiry time.Duration `mapstructure:"expiry"`
	Issuer string        `mapstructure:"issuer"`
}

type WebhookConfig struct {
	URL     string        `mapstructure:"url"` // empty disables delivery
	Secret  string        `mapstructure:"secret"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type EventsConfig struct {
	Stream string `mapstructure:"stream"`
	MaxLen int64  `mapstructure:"max_len"`
}

type RateLimitConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type LedgerConfig struct {
	Operators          []string      `mapstructure:"operators"`
	VerifyInvariants   bool          `mapstructure:"verify_invariants"`
	IdempotencyTTL     time.Duration `mapstructure:"idempotency_ttl"`
	DefaultCreditLimit string        `mapstructure:"default_credit_limit"` // decimal coins, empty = unlimited
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// defaults covers every key so AutomaticEnv can resolve AURA_* overrides
// for keys absent from the file.
var defaults = map[string]any{
	"server.host":             "0.0.0.0",
	"server.port":             8080,
	"server.mode":             "debug",
	"server.shutdown_timeout": "10s",

	"database.enabled":           false,
	"database.host":              "localhost",
	"database.port":              5432,
	"database.user":              "postgres",
	"database.password":          "postgres",
	"database.dbname":            "aura_ledger",
	"database.sslmode":           "disable",
	"database.max_conns":         20,
	"database.min_conns":         5,
	"database.conn_max_lifetime": "30m",

	"redis.enabled":  false,
	"redis.host":     "localhost",
	"redis.port":     6379,
	"redis.password": "",
	"redis.db":       0,

	"jwt.secret": "",
	"jwt.expiry": "24h",
	"jwt.issuer": "aura-ledger",

	"webhook.url":     "",
	"webhook.secret":  "",
	"webhook.timeout": "5s",

	"events.stream":  "aura:ledger:events",
	"events.max_len": 10000,

	"ratelimit.enabled": true,

	"ledger.operators":            []string{},
	"ledger.verify_invariants":    true,
	"ledger.idempotency_ttl":      "24h",
	"ledger.default_credit_limit": "",

	"log.level":  "info",
	"log.pretty": false,
}

// Load reads path (or ./config.yaml, ./config/config.yaml when empty) and
// applies AURA_* environment overrides, e.g. AURA_LEDGER_OPERATORS.
func Load(path string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("AURA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The file is optional; env vars can suffice.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	// AURA_LEDGER_OPERATORS arrives as one comma-separated string.
	cfg.Ledger.Operators = splitList(cfg.Ledger.Operators)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports every setting that has no safe default.
func (c *Config) Validate() error {
	var errs []error
	if c.JWT.Secret != "" && len(c.JWT.Secret) < 32 {
		errs = append(errs, errors.New("jwt.secret must be at least 32 bytes"))
	}
	if c.Webhook.URL != "" && c.Webhook.Secret == "" {
		errs = append(errs, errors.New("webhook.secret is required when webhook.url is set"))
	}
	if c.Database.MinConns > c.Database.MaxConns && c.Database.MaxConns > 0 {
		errs = append(errs, fmt.Errorf("database.min_conns (%d) exceeds database.max_conns (%d)",
			c.Database.MinConns, c.Database.MaxConns))
	}
	if c.Events.MaxLen < 0 {
		errs = append(errs, errors.New("events.max_len must not be negative"))
	}
	return errors.Join(errs...)
}

func splitList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
