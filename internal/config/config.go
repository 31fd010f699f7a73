package config

import (
	"fmt"
	"path/filepath"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Storage backends.
const (
	StorageYAML     = "yaml"
	StorageDatabase = "database"
)

type Config struct {
	Learner   LearnerConfig   `mapstructure:"learner"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Quiz      QuizConfig      `mapstructure:"quiz"`
	Reminder  ReminderConfig  `mapstructure:"reminder"`
	Outputs   OutputsConfig   `mapstructure:"outputs"`
	Templates TemplatesConfig `mapstructure:"templates"`
}

type LearnerConfig struct {
	ID       string `mapstructure:"id" validate:"required"`
	Timezone string `mapstructure:"timezone" validate:"required,timezone"`
}

type StorageConfig struct {
	Backend       string `mapstructure:"backend" validate:"oneof=yaml database"`
	YAMLDirectory string `mapstructure:"yaml_directory"`
}

type DatabaseConfig struct {
	Driver          string            `mapstructure:"driver" validate:"oneof=mysql sqlite3 pgx"`
	Path            string            `mapstructure:"path"`
	Host            string            `mapstructure:"host"`
	Port            int               `mapstructure:"port" validate:"min=0,max=65535"`
	Database        string            `mapstructure:"database"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_seconds"`
	ConnectAttempts uint              `mapstructure:"connect_attempts"`
}

type QuizConfig struct {
	Category  string `mapstructure:"category"`
	Direction string `mapstructure:"direction" validate:"oneof=term translation"`
	Strategy  string `mapstructure:"strategy" validate:"oneof=duplicate weighted"`
}

type ReminderConfig struct {
	At string `mapstructure:"at" validate:"datetime=15:04"`
}

type OutputsConfig struct {
	ReportDirectory string `mapstructure:"report_directory"`
}

type TemplatesConfig struct {
	ReportTemplate string `mapstructure:"report_template" validate:"omitempty,file"`
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
		v.AddConfigPath("$HOME/.config/vocly")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

// Load is a shorthand for NewConfigLoader(configFile) followed by Load.
func Load(configFile string) (*Config, error) {
	loader, err := NewConfigLoader(configFile)
	if err != nil {
		return nil, err
	}
	return loader.Load()
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("learner.id", "default")
	v.SetDefault("learner.timezone", "UTC")
	v.SetDefault("storage.backend", StorageYAML)
	v.SetDefault("storage.yaml_directory", filepath.Join("data", "learners"))
	v.SetDefault("database.driver", "sqlite3")
	v.SetDefault("database.path", filepath.Join("data", "vocly.db"))
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.database", "vocly")
	v.SetDefault("database.username", "vocly")
	v.SetDefault("database.connect_attempts", 3)
	v.SetDefault("quiz.category", "all")
	v.SetDefault("quiz.direction", "term")
	v.SetDefault("quiz.strategy", "duplicate")
	v.SetDefault("reminder.at", "09:00")
	v.SetDefault("outputs.report_directory", "reports")
	// Template is optional - if not specified, will use embedded fallback template
	v.SetDefault("templates.report_template", "")

	// Bind database password to environment variable
	if err := v.BindEnv("database.password", "DB_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind DB_PASSWORD environment variable: %w", err)
	}
	if err := v.BindEnv("learner.id", "VOCLY_LEARNER"); err != nil {
		return nil, fmt.Errorf("failed to bind VOCLY_LEARNER environment variable: %w", err)
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
