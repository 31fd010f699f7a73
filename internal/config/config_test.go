package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultConfig() *Config {
	return &Config{
		Learner: LearnerConfig{
			ID:       "default",
			Timezone: "UTC",
		},
		Storage: StorageConfig{
			Backend:       StorageYAML,
			YAMLDirectory: filepath.Join("data", "learners"),
		},
		Database: DatabaseConfig{
			Driver:          "sqlite3",
			Path:            filepath.Join("data", "vocly.db"),
			Host:            "localhost",
			Port:            3306,
			Database:        "vocly",
			Username:        "vocly",
			ConnectAttempts: 3,
		},
		Quiz: QuizConfig{
			Category:  "all",
			Direction: "term",
			Strategy:  "duplicate",
		},
		Reminder: ReminderConfig{
			At: "09:00",
		},
		Outputs: OutputsConfig{
			ReportDirectory: "reports",
		},
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name              string
		configContent     string
		useExplicitPath   bool
		env               map[string]string
		wantErr           bool
		want              func() *Config
		wantErrorContains []string
	}{
		{
			name:            "no config file uses defaults",
			useExplicitPath: false,
			want:            defaultConfig,
		},
		{
			name: "valid config file with custom values",
			configContent: `learner:
  id: anna
  timezone: Europe/Berlin
storage:
  backend: database
database:
  driver: mysql
  host: db.internal
  port: 3307
  database: srs
  username: anna
  tls: true
  params:
    charset: utf8mb4
  max_open_conns: 10
quiz:
  category: Travel
  direction: translation
  strategy: weighted
reminder:
  at: "18:30"
outputs:
  report_directory: custom/reports
`,
			useExplicitPath: false,
			want: func() *Config {
				cfg := defaultConfig()
				cfg.Learner = LearnerConfig{ID: "anna", Timezone: "Europe/Berlin"}
				cfg.Storage.Backend = StorageDatabase
				cfg.Database.Driver = "mysql"
				cfg.Database.Host = "db.internal"
				cfg.Database.Port = 3307
				cfg.Database.Database = "srs"
				cfg.Database.Username = "anna"
				cfg.Database.TLS = true
				cfg.Database.Params = map[string]string{"charset": "utf8mb4"}
				cfg.Database.MaxOpenConns = 10
				cfg.Quiz = QuizConfig{Category: "Travel", Direction: "translation", Strategy: "weighted"}
				cfg.Reminder.At = "18:30"
				cfg.Outputs.ReportDirectory = "custom/reports"
				return cfg
			},
		},
		{
			name: "invalid YAML format",
			configContent: `learner:
  id: anna
  invalid yaml format here [[[
`,
			useExplicitPath: false,
			wantErr:         true,
			wantErrorContains: []string{
				"configuration file found but could not be read",
				"Please check the file format and permissions",
			},
		},
		{
			name: "invalid config structure uses defaults",
			configContent: `wrong_key:
  some_value: test
`,
			useExplicitPath: false,
			want:            defaultConfig,
		},
		{
			name: "explicit config file path",
			configContent: `storage:
  yaml_directory: explicit/learners
`,
			useExplicitPath: true,
			want: func() *Config {
				cfg := defaultConfig()
				cfg.Storage.YAMLDirectory = "explicit/learners"
				return cfg
			},
		},
		{
			name:            "password and learner come from the environment",
			configContent:   "database:\n  password: from-file\n",
			useExplicitPath: true,
			env: map[string]string{
				"DB_PASSWORD":   "secret",
				"VOCLY_LEARNER": "ben",
			},
			want: func() *Config {
				cfg := defaultConfig()
				cfg.Database.Password = "secret"
				cfg.Learner.ID = "ben"
				return cfg
			},
		},
		{
			name: "unknown storage backend",
			configContent: `storage:
  backend: s3
`,
			useExplicitPath:   true,
			wantErr:           true,
			wantErrorContains: []string{"invalid configuration", "backend"},
		},
		{
			name: "unknown database driver",
			configContent: `database:
  driver: oracle
`,
			useExplicitPath:   true,
			wantErr:           true,
			wantErrorContains: []string{"invalid configuration", "driver"},
		},
		{
			name: "invalid quiz direction and strategy",
			configContent: `quiz:
  direction: sideways
  strategy: random
`,
			useExplicitPath:   true,
			wantErr:           true,
			wantErrorContains: []string{"direction", "strategy"},
		},
		{
			name: "invalid timezone",
			configContent: `learner:
  timezone: Mars/Olympus
`,
			useExplicitPath:   true,
			wantErr:           true,
			wantErrorContains: []string{"learner.timezone must be an IANA time zone"},
		},
		{
			name: "invalid reminder time",
			configContent: `reminder:
  at: "25:99"
`,
			useExplicitPath:   true,
			wantErr:           true,
			wantErrorContains: []string{"reminder.at must be a time of day"},
		},
		{
			name: "missing report template file",
			configContent: `templates:
  report_template: does/not/exist.md.tmpl
`,
			useExplicitPath:   true,
			wantErr:           true,
			wantErrorContains: []string{"templates.report_template must be an existing and readable file"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir := t.TempDir()
			t.Setenv("HOME", tempDir)
			t.Setenv("DB_PASSWORD", "")
			t.Setenv("VOCLY_LEARNER", "")
			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			var configPath string
			if tt.useExplicitPath {
				configPath = filepath.Join(tempDir, "config.yml")
				err := os.WriteFile(configPath, []byte(tt.configContent), 0644)
				require.NoError(t, err)
			} else {
				if tt.configContent != "" {
					err := os.WriteFile(filepath.Join(tempDir, "config.yaml"), []byte(tt.configContent), 0644)
					require.NoError(t, err)
				}

				originalDir, err := os.Getwd()
				require.NoError(t, err)
				defer func() {
					err := os.Chdir(originalDir)
					require.NoError(t, err)
				}()

				err = os.Chdir(tempDir)
				require.NoError(t, err)
				configPath = ""
			}

			got, err := Load(configPath)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)
				for _, wantMsg := range tt.wantErrorContains {
					assert.Contains(t, err.Error(), wantMsg)
				}
				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, tt.want(), got)
		})
	}
}

func TestLoad_ExistingReportTemplate(t *testing.T) {
	tempDir := t.TempDir()
	templatePath := filepath.Join(tempDir, "report.md.tmpl")
	require.NoError(t, os.WriteFile(templatePath, []byte("# {{ .Learner }}"), 0644))

	configPath := filepath.Join(tempDir, "config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte("templates:\n  report_template: "+templatePath+"\n"), 0644))

	got, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, templatePath, got.Templates.ReportTemplate)
}
