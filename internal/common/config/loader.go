// internal/common/config/loader.go
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DefaultCount  = 100
	DefaultTable  = "personnel"
	DefaultLevel  = "warn"
	DefaultFormat = "console"
)

// Load reads config.yaml from ./configs or the working directory, then the
// environment specific overlay, then environment variables. A missing file is
// not an error. The result is not checked; each command validates the
// sections it uses.
func Load() (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}
	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig() // overlay is optional

	return build(v)
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return build(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only resolves keys viper already knows about.
	v.SetDefault("app.name", "datagrid-tools")
	v.SetDefault("app.environment", "development")
	v.SetDefault("generator.count", DefaultCount)
	v.SetDefault("generator.table", DefaultTable)
	v.SetDefault("generator.escape_literals", false)
	v.SetDefault("generator.registry_path", "")
	v.SetDefault("generator.metrics_file", "")
	v.SetDefault("validator.metrics_file", "")
	v.SetDefault("logging.level", DefaultLevel)
	v.SetDefault("logging.format", DefaultFormat)
	return v
}

func build(v *viper.Viper) (*Config, error) {
	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	// generator.seed has no default so an unset seed stays distinguishable.
	if v.IsSet("generator.seed") {
		cfg.Generator.Seed = v.GetInt64("generator.seed")
		cfg.Generator.Seeded = true
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// loadEnvFile loads the first .env found walking up to the project root.
// It must stay silent: stdout carries generated SQL.
func loadEnvFile() string {
	possiblePaths := []string{".env", "../.env", "../../.env"}
	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return path
			}
		}
	}
	return ""
}

// Find project root by looking for go.mod
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// expandEnvVars resolves ${VAR} placeholders in string values.
func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		strVal, ok := v.Get(key).(string)
		if !ok {
			continue
		}
		if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
			if expanded := os.ExpandEnv(strVal); expanded != strVal && expanded != "" {
				v.Set(key, expanded)
			}
		}
	}
}

// applyDefaults sets default values for optional configuration fields
func applyDefaults(cfg *Config) {
	if cfg.Generator.Table == "" {
		cfg.Generator.Table = DefaultTable
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLevel
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = DefaultFormat
	}
}

// ValidateGenerator checks the sections personnel-gen depends on.
func ValidateGenerator(cfg *Config) error {
	if cfg.Generator.Count < 1 {
		return fmt.Errorf("invalid configuration: generator.count must be at least 1, got %d", cfg.Generator.Count)
	}
	if cfg.Generator.Table == "" {
		return errors.New("invalid configuration: generator.table must not be empty")
	}
	return validateLogging(cfg)
}

// ValidateValidator checks the sections catalog-validator depends on. The
// generator section is ignored.
func ValidateValidator(cfg *Config) error {
	return validateLogging(cfg)
}

func validateLogging(cfg *Config) error {
	switch cfg.Logging.Format {
	case "console", "json":
		return nil
	default:
		return fmt.Errorf("invalid configuration: logging.format must be console or json, got %q", cfg.Logging.Format)
	}
}

// Default returns the configuration used when no file or environment is present.
func Default() *Config {
	cfg := &Config{
		App:       AppConfig{Name: "datagrid-tools", Environment: "development"},
		Generator: GeneratorConfig{Count: DefaultCount},
	}
	applyDefaults(cfg)
	return cfg
}
