package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	AppPort string `yaml:"app_port"`

	AuthType string `yaml:"auth_type"`

	SessionName      string `yaml:"session_name"`
	SessionDuration  int    `yaml:"session_duration"`
	SessionStore     string `yaml:"session_store"`
	SessionFile      string `yaml:"session_file"`
	SessionRetention int    `yaml:"session_retention"`

	Redis RedisConfig `yaml:"redis"`

	DatabaseDSN string `yaml:"database_dsn"`

	// LogFormat is "json" or "text"; text lines are PII-redacted.
	LogFormat string `yaml:"log_format"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// SessionTTL returns the session time-to-live. Zero means sessions never expire.
func (c Config) SessionTTL() time.Duration {
	if c.SessionDuration <= 0 {
		return 0
	}
	return time.Duration(c.SessionDuration) * time.Second
}

func (c Config) RetentionTTL() time.Duration {
	if c.SessionRetention <= 0 {
		return 0
	}
	return time.Duration(c.SessionRetention) * time.Second
}

func defaults() Config {
	return Config{
		AppPort:      "5000",
		SessionName:  "_my_session_id",
		SessionStore: "file",
		SessionFile:  "sessions.db",
		LogFormat:    "json",
	}
}

// Load builds the configuration from the optional YAML file named by
// CONFIG_FILE, then applies environment overrides.
func Load() (Config, error) {

	cfg := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	setString(&cfg.AppPort, "APP_PORT")
	setString(&cfg.AuthType, "AUTH_TYPE")

	setString(&cfg.SessionName, "SESSION_NAME")
	setInt(&cfg.SessionDuration, "SESSION_DURATION")
	setString(&cfg.SessionStore, "SESSION_STORE")
	setString(&cfg.SessionFile, "SESSION_FILE")
	setInt(&cfg.SessionRetention, "SESSION_RETENTION")

	setString(&cfg.Redis.Addr, "REDIS_ADDR")
	setString(&cfg.Redis.Password, "REDIS_PASSWORD")
	setInt(&cfg.Redis.DB, "REDIS_DB")

	setString(&cfg.DatabaseDSN, "DATABASE_DSN")

	setString(&cfg.LogFormat, "LOG_FORMAT")

	return cfg, nil

}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

// setInt treats an unparsable value as 0.
func setInt(dst *int, key string) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		n = 0
	}
	*dst = n
}
