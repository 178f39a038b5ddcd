// internal/common/config/config.go
package config

// Config is the main application configuration struct.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Generator GeneratorConfig `mapstructure:"generator"`
	Validator ValidatorConfig `mapstructure:"validator"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// GeneratorConfig holds settings for personnel-gen.
type GeneratorConfig struct {
	Count          int    `mapstructure:"count"`
	Table          string `mapstructure:"table"`
	Seed           int64  `mapstructure:"seed"`
	EscapeLiterals bool   `mapstructure:"escape_literals"`
	RegistryPath   string `mapstructure:"registry_path"`
	MetricsFile    string `mapstructure:"metrics_file"`

	// Seeded is true when a seed was given in the file or the environment.
	Seeded bool `mapstructure:"-"`
}

// ValidatorConfig holds settings for catalog-validator.
type ValidatorConfig struct {
	MetricsFile string `mapstructure:"metrics_file"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}
