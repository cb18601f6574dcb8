package config

import (
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "LEDGERDASH"

const (
	KeyAPIURL       = "api_url"
	KeyAPIToken     = "api_token"
	KeyDBPath       = "db_path"
	KeyListenAddr   = "listen_addr"
	KeyWebAddr      = "web_addr"
	KeyPeriodFactor = "period_factor"
	KeyLogLevel     = "log_level"
)

type Config struct {
	// APIURL is the root of the ledger REST API, e.g.
	// "http://localhost:5000/api". Every request path is appended to it.
	APIURL   string
	APIToken string

	// Local backend
	DBPath     string
	ListenAddr string

	// Browser terminal
	WebAddr string

	// PeriodFactor estimates last period's balance for accounts that carry
	// no previous balance.
	PeriodFactor float64

	LogLevel string
}

// Load reads .env files (if present) then LEDGERDASH_* environment
// variables on top of the defaults. Real environment variables win over
// .env values.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		_ = godotenv.Load()
	} else if err := godotenv.Load(envFiles...); err != nil {
		return nil, fmt.Errorf("load env files: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyAPIURL, "http://localhost:5000/api")
	v.SetDefault(KeyAPIToken, "")
	v.SetDefault(KeyDBPath, "ledgerdash.db")
	v.SetDefault(KeyListenAddr, ":5000")
	v.SetDefault(KeyWebAddr, "localhost:8833")
	v.SetDefault(KeyPeriodFactor, 0.9)
	v.SetDefault(KeyLogLevel, "info")

	return &Config{
		APIURL:       strings.TrimRight(v.GetString(KeyAPIURL), "/"),
		APIToken:     v.GetString(KeyAPIToken),
		DBPath:       v.GetString(KeyDBPath),
		ListenAddr:   v.GetString(KeyListenAddr),
		WebAddr:      v.GetString(KeyWebAddr),
		PeriodFactor: v.GetFloat64(KeyPeriodFactor),
		LogLevel:     strings.ToLower(v.GetString(KeyLogLevel)),
	}, nil
}

// Validate reports every problem at once rather than stopping at the first.
func (c *Config) Validate() error {
	var problems []string

	if u, err := url.Parse(c.APIURL); err != nil {
		problems = append(problems, fmt.Sprintf("invalid api url '%s': %v", c.APIURL, err))
	} else if u.Scheme != "http" && u.Scheme != "https" {
		problems = append(problems, fmt.Sprintf("invalid api url '%s': scheme must be http or https", c.APIURL))
	} else if u.Host == "" {
		problems = append(problems, fmt.Sprintf("invalid api url '%s': missing host", c.APIURL))
	}

	if c.DBPath == "" {
		problems = append(problems, "database path cannot be empty")
	}

	for name, addr := range map[string]string{"listen": c.ListenAddr, "web": c.WebAddr} {
		if _, _, err := net.SplitHostPort(addr); err != nil {
			problems = append(problems, fmt.Sprintf("invalid %s address '%s': %v", name, addr, err))
		}
	}

	if c.PeriodFactor <= 0 {
		problems = append(problems, fmt.Sprintf("invalid period factor %v: must be greater than 0", c.PeriodFactor))
	}

	if _, err := ParseLevel(c.LogLevel); err != nil {
		problems = append(problems, err.Error())
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(problems, "\n  - "))
	}
	return nil
}

func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("invalid log level '%s': must be one of debug, info, warn, error", s)
}
