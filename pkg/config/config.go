// Package config loads the service configuration from YAML with
// environment-variable expansion and validates it before anything is wired.
package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mockstage/mockstage/pkg/models"
)

// Duration decodes YAML strings like "30s" or "5m" into a time.Duration
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config is the umbrella configuration object for the whole service
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Interview InterviewConfig `yaml:"interview"`
	Proctor   ProctorConfig   `yaml:"proctor"`
	Database  DatabaseConfig  `yaml:"database"`
}

// ServerConfig holds the HTTP listener settings
type ServerConfig struct {
	Host            string   `yaml:"host"`
	Port            int      `yaml:"port"`
	ShutdownTimeout Duration `yaml:"shutdown_timeout"`
}

// Addr returns the listen address in host:port form
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// InterviewConfig holds the agent's grading curve
type InterviewConfig struct {
	WeakScoreThreshold   float64 `yaml:"weak_score_threshold"`
	StrongScoreThreshold float64 `yaml:"strong_score_threshold"`
	AdjustMinAnswers     int     `yaml:"adjust_min_answers"`
	AdjustUpThreshold    float64 `yaml:"adjust_up_threshold"`
	AdjustDownThreshold  float64 `yaml:"adjust_down_threshold"`
	AdaptiveDifficulty   *bool   `yaml:"adaptive_difficulty"`
}

// Adaptive reports whether adaptive difficulty is enabled; nil means on
func (i InterviewConfig) Adaptive() bool {
	return i.AdaptiveDifficulty == nil || *i.AdaptiveDifficulty
}

// ProctorConfig selects the proctoring sensitivity profile
type ProctorConfig struct {
	Sensitivity models.Sensitivity `yaml:"sensitivity"`
}

// DatabaseConfig holds the PostgreSQL connection settings. When Enabled is
// false the service runs on the in-memory store.
type DatabaseConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`

	MaxOpenConns    int      `yaml:"max_open_conns"`
	MaxIdleConns    int      `yaml:"max_idle_conns"`
	ConnMaxLifetime Duration `yaml:"conn_max_lifetime"`
	ConnMaxIdleTime Duration `yaml:"conn_max_idle_time"`
}

// Default returns the configuration used when no file overrides it
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ShutdownTimeout: Duration(10 * time.Second),
		},
		Interview: InterviewConfig{
			WeakScoreThreshold:   65,
			StrongScoreThreshold: 80,
			AdjustMinAnswers:     3,
			AdjustUpThreshold:    85,
			AdjustDownThreshold:  45,
		},
		Proctor: ProctorConfig{
			Sensitivity: models.SensitivityMedium,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "mockstage",
			Database:        "mockstage",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: Duration(5 * time.Minute),
			ConnMaxIdleTime: Duration(5 * time.Minute),
		},
	}
}

// Validate checks cross-field invariants after loading
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Interview.WeakScoreThreshold >= c.Interview.StrongScoreThreshold {
		return fmt.Errorf("interview.weak_score_threshold (%.1f) must be below strong_score_threshold (%.1f)",
			c.Interview.WeakScoreThreshold, c.Interview.StrongScoreThreshold)
	}
	if c.Interview.AdjustDownThreshold >= c.Interview.AdjustUpThreshold {
		return fmt.Errorf("interview.adjust_down_threshold (%.1f) must be below adjust_up_threshold (%.1f)",
			c.Interview.AdjustDownThreshold, c.Interview.AdjustUpThreshold)
	}
	if c.Interview.AdjustMinAnswers < 1 {
		return fmt.Errorf("interview.adjust_min_answers must be at least 1, got %d", c.Interview.AdjustMinAnswers)
	}
	if !c.Proctor.Sensitivity.IsValid() {
		return fmt.Errorf("proctor.sensitivity must be low, medium or high, got %q", c.Proctor.Sensitivity)
	}
	if c.Database.Enabled {
		if c.Database.Host == "" {
			return fmt.Errorf("database.host must not be empty when the database is enabled")
		}
		if c.Database.Database == "" {
			return fmt.Errorf("database.database must not be empty when the database is enabled")
		}
	}
	return nil
}
