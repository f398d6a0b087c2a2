// Package config loads the application configuration from a YAML file with
// environment overrides for secrets.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	User       string           `mapstructure:"user"`
	Store      StoreConfig      `mapstructure:"store"`
	Database   DatabaseConfig   `mapstructure:"database"`
	PocketBase PocketBaseConfig `mapstructure:"pocketbase"`
	Chunks     ChunksConfig     `mapstructure:"chunks"`
	SRS        SRSConfig        `mapstructure:"srs"`
	Garden     GardenConfig     `mapstructure:"garden"`
	Daemon     DaemonConfig     `mapstructure:"daemon"`
	Templates  TemplatesConfig  `mapstructure:"templates"`
	Outputs    OutputsConfig    `mapstructure:"outputs"`
}

// StoreConfig selects where learner state lives.
type StoreConfig struct {
	Backend string `mapstructure:"backend" validate:"oneof=mysql pocketbase"`
}

type DatabaseConfig struct {
	Host            string            `mapstructure:"host"`
	Port            int               `mapstructure:"port"`
	Database        string            `mapstructure:"database"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_seconds"`
}

type PocketBaseConfig struct {
	URL           string `mapstructure:"url" validate:"omitempty,url"`
	Token         string `mapstructure:"token"`
	RetryAttempts uint   `mapstructure:"retry_attempts"`
}

type ChunksConfig struct {
	PackDirectories []string `mapstructure:"pack_directories"`
}

// SRSConfig tunes the review scheduler. Zero values fall back to the
// scheduler's built-in defaults.
type SRSConfig struct {
	FailurePenalty          float64 `mapstructure:"failure_penalty"`
	AcquisitionRepetitions  int     `mapstructure:"acquisition_repetitions"`
	AcquisitionEase         float64 `mapstructure:"acquisition_ease"`
	MaxIntervalDays         int     `mapstructure:"max_interval_days"`
	ConfidenceSmoothing     float64 `mapstructure:"confidence_smoothing"`
	ConfidenceRecencyWeight float64 `mapstructure:"confidence_recency_weight"`
}

// GardenConfig tunes the tree lifecycle engine. Zero values fall back to
// the engine's built-in defaults.
type GardenConfig struct {
	DecayPerDay        int `mapstructure:"decay_per_day"`
	LowHealthThreshold int `mapstructure:"low_health_threshold"`
	GraceDays          int `mapstructure:"grace_days"`
}

type DaemonConfig struct {
	DecayAt string `mapstructure:"decay_at" validate:"timeofday"`
}

type TemplatesConfig struct {
	ProgressReportTemplate string `mapstructure:"progress_report_template" validate:"omitempty,file"`
}

type OutputsConfig struct {
	ReportDirectory string `mapstructure:"report_directory"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/lexigarden")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("user", "default")
	v.SetDefault("store.backend", "mysql")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.database", "lexigarden")
	v.SetDefault("database.username", "lexigarden")
	v.SetDefault("pocketbase.retry_attempts", 3)
	v.SetDefault("chunks.pack_directories", []string{"chunks"})
	v.SetDefault("srs.failure_penalty", 0.2)
	v.SetDefault("srs.acquisition_repetitions", 3)
	v.SetDefault("srs.acquisition_ease", 2.0)
	v.SetDefault("srs.max_interval_days", 365)
	v.SetDefault("srs.confidence_smoothing", 0.3)
	v.SetDefault("srs.confidence_recency_weight", 0.6)
	v.SetDefault("garden.decay_per_day", 10)
	v.SetDefault("garden.low_health_threshold", 25)
	v.SetDefault("garden.grace_days", 7)
	v.SetDefault("daemon.decay_at", "03:00")
	// Template is optional - if not specified, will use embedded fallback template
	v.SetDefault("templates.progress_report_template", "")
	v.SetDefault("outputs.report_directory", filepath.Join("outputs", "reports"))

	// Bind secrets to environment variables only (not from config file)
	if err := v.BindEnv("database.password", "LEXIGARDEN_DATABASE_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind LEXIGARDEN_DATABASE_PASSWORD environment variable: %w", err)
	}
	if err := v.BindEnv("pocketbase.token", "LEXIGARDEN_POCKETBASE_TOKEN"); err != nil {
		return nil, fmt.Errorf("failed to bind LEXIGARDEN_POCKETBASE_TOKEN environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}
