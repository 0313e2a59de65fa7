package app

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/hxeb/hxebclass/internal/orgdb"
	"github.com/hxeb/hxebclass/pkg/constants"
	"github.com/hxeb/hxebclass/pkg/errors"
)

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files. It is
// built once per command and not modified afterwards, apart from flags.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Logging configuration
	LogLevel    string // --log-level flag
	EnvLogLevel string // LOG_LEVEL
	LogFormat   string
	LogOutput   string

	// Season whose arrangements are listed and synced.
	SeasonID int

	DB        orgdb.Config
	Classroom ClassroomConfig
	Sync      SyncConfig
}

// ClassroomConfig configures the Classroom API client.
type ClassroomConfig struct {
	Endpoint        string
	CredentialsFile string
	Subject         string // user impersonated by a service account
	AccessToken     string // static token, used instead of credential detection
	Timeout         time.Duration
	PageSize        int
}

// SyncConfig configures sync runs.
type SyncConfig struct {
	TeacherWhitelist   []string
	DescriptionHeading bool
	MetricsFile        string
}

// envBindings maps config keys to the environment variables they also read.
// The HXEB_* names are the ones deployed hosts already export.
var envBindings = map[string][]string{
	"season_id":                  {"HXEBCLASS_SEASON_ID", "SEASON_ID"},
	"db.driver":                  {"HXEBCLASS_DB_DRIVER"},
	"db.dsn":                     {"HXEBCLASS_DB_DSN"},
	"db.host":                    {"HXEBCLASS_DB_HOST", "HXEB_DB_HOST"},
	"db.port":                    {"HXEBCLASS_DB_PORT", "HXEB_DB_PORT"},
	"db.user":                    {"HXEBCLASS_DB_USER", "HXEB_DB_USER"},
	"db.password":                {"HXEBCLASS_DB_PASSWORD", "HXEB_DB_PASSWORD"},
	"db.name":                    {"HXEBCLASS_DB_NAME", "HXEB_DB_NAME"},
	"classroom.endpoint":         {"HXEBCLASS_CLASSROOM_ENDPOINT"},
	"classroom.credentials_file": {"HXEBCLASS_CLASSROOM_CREDENTIALS_FILE"},
	"classroom.subject":          {"HXEBCLASS_CLASSROOM_SUBJECT"},
	"classroom.access_token":     {"HXEBCLASS_CLASSROOM_ACCESS_TOKEN"},
	"classroom.timeout":          {"HXEBCLASS_CLASSROOM_TIMEOUT"},
	"classroom.page_size":        {"HXEBCLASS_CLASSROOM_PAGE_SIZE"},
	"sync.teacher_whitelist":     {"HXEBCLASS_SYNC_TEACHER_WHITELIST"},
	"sync.description_heading":   {"HXEBCLASS_SYNC_DESCRIPTION_HEADING"},
	"sync.metrics_file":          {"HXEBCLASS_SYNC_METRICS_FILE"},
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables
// 3. .env files
// 4. Config file (configFile, or .hxebclass.yaml in $HOME or the working directory)
// 5. Defaults
func LoadConfig(configFile string) (*Config, error) {
	// .env files must be loaded before env bindings are read.
	loadEnvFiles()

	v := viper.New()
	setDefaults(v)
	for key, envs := range envBindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, errors.NewConfigError(key, "failed to bind environment", err)
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".hxebclass")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// An explicit --config must exist; the search paths are optional.
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, errors.NewConfigError("config", "failed to read "+configFile, err)
		}
	}

	config := &Config{
		ConfigFile: v.ConfigFileUsed(),

		EnvLogLevel: os.Getenv("LOG_LEVEL"),
		LogFormat:   getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput:   getEnvOrDefault("LOG_OUTPUT", "stderr"),

		SeasonID: v.GetInt("season_id"),

		DB: orgdb.Config{
			Driver:   v.GetString("db.driver"),
			DSN:      v.GetString("db.dsn"),
			Host:     v.GetString("db.host"),
			Port:     v.GetInt("db.port"),
			User:     v.GetString("db.user"),
			Password: v.GetString("db.password"),
			Name:     v.GetString("db.name"),
		},

		Classroom: ClassroomConfig{
			Endpoint:        v.GetString("classroom.endpoint"),
			CredentialsFile: v.GetString("classroom.credentials_file"),
			Subject:         v.GetString("classroom.subject"),
			AccessToken:     v.GetString("classroom.access_token"),
			Timeout:         v.GetDuration("classroom.timeout"),
			PageSize:        v.GetInt("classroom.page_size"),
		},

		Sync: SyncConfig{
			TeacherWhitelist:   splitList(v.GetStringSlice("sync.teacher_whitelist")),
			DescriptionHeading: v.GetBool("sync.description_heading"),
			MetricsFile:        v.GetString("sync.metrics_file"),
		},
	}

	if config.Classroom.Timeout <= 0 {
		return nil, errors.NewConfigError("classroom.timeout", "must be positive", nil)
	}
	if config.Classroom.PageSize <= 0 {
		return nil, errors.NewConfigError("classroom.page_size", "must be positive", nil)
	}

	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("db.driver", constants.DriverSQLServer)
	v.SetDefault("classroom.endpoint", constants.ClassroomEndpoint)
	v.SetDefault("classroom.timeout", constants.DefaultHTTPTimeout)
	v.SetDefault("classroom.page_size", constants.DefaultPageSize)
	v.SetDefault("sync.description_heading", false)
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// loadEnvFiles loads environment variables from .env files.
// Variables already set in the environment are not overridden, so the
// first file to set a variable wins.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}

// splitList flattens whitelist entries given either as a YAML list or as a
// comma or space separated environment value.
func splitList(values []string) []string {
	var out []string
	for _, value := range values {
		for _, item := range strings.FieldsFunc(value, func(r rune) bool {
			return r == ',' || r == ' ' || r == ';'
		}) {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
	}
	return out
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
