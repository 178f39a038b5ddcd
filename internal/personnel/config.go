// internal/personnel/config.go
package personnel

import "datagrid-tools/internal/common/config"

type Config struct {
	Count          int
	Table          string
	Seed           int64
	Seeded         bool
	EscapeLiterals bool
}

func LoadConfig(cfg config.GeneratorConfig) *Config {
	return &Config{
		Count:          cfg.Count,
		Table:          cfg.Table,
		Seed:           cfg.Seed,
		Seeded:         cfg.Seeded,
		EscapeLiterals: cfg.EscapeLiterals,
	}
}
