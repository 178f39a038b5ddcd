package main

import (
	"io"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"datagrid-tools/internal/common/config"
	apperrors "datagrid-tools/internal/common/errors"
	"datagrid-tools/internal/common/logger"
	"datagrid-tools/internal/common/metrics"
	"datagrid-tools/internal/personnel"
	"datagrid-tools/pkg/registry"
)

// options are the command line flags. They override config values only when
// given explicitly.
type options struct {
	configPath     string
	count          int
	seed           int64
	escapeLiterals bool
	registryPath   string
	metricsFile    string
	logLevel       string
}

type app struct {
	stdout io.Writer
	stderr io.Writer
	opts   options
	log    logger.Logger
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "personnel-gen",
		Short:         "Render a random personnel INSERT statement (extended columns)",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.generate(cmd, personnel.ModeExtended)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.opts.configPath, "config", "", "Path to a config.yaml file")
	flags.IntVar(&a.opts.count, "count", config.DefaultCount, "Number of rows to render")
	flags.Int64Var(&a.opts.seed, "seed", 0, "Seed for reproducible output")
	flags.BoolVar(&a.opts.escapeLiterals, "escape-literals", false, "Quote string literals for PostgreSQL")
	flags.StringVar(&a.opts.registryPath, "registry", "", "Path to a lookup registry JSON document")
	flags.StringVar(&a.opts.metricsFile, "metrics-file", "", "Write Prometheus metrics in textfile format to this path")
	flags.StringVar(&a.opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	root.AddCommand(
		a.modeCmd(personnel.ModeBasic, "Render the basic column set"),
		a.modeCmd(personnel.ModeExtended, "Render the extended column set with role, bonus, rating and tenure"),
	)
	return root
}

func (a *app) modeCmd(mode personnel.Mode, short string) *cobra.Command {
	return &cobra.Command{
		Use:   string(mode),
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.generate(cmd, mode)
		},
	}
}

func (a *app) generate(cmd *cobra.Command, mode personnel.Mode) error {
	cfg, err := a.loadConfig(cmd)
	if err != nil {
		return err
	}

	a.log = logger.NewStructured(cfg.Logging.Level, cfg.Logging.Format).WithFields(map[string]interface{}{
		"runId":   uuid.NewString(),
		"command": "personnel-gen",
		"mode":    string(mode),
	})
	a.log.Debug("configuration loaded", map[string]interface{}{
		"count":          cfg.Generator.Count,
		"table":          cfg.Generator.Table,
		"seeded":         cfg.Generator.Seeded,
		"escapeLiterals": cfg.Generator.EscapeLiterals,
	})

	reg, err := loadRegistry(cfg.Generator.RegistryPath)
	if err != nil {
		return err
	}

	var rec *metrics.Recorder
	if cfg.Generator.MetricsFile != "" {
		rec = metrics.New()
	}

	handler := personnel.NewHandler(personnel.LoadConfig(cfg.Generator), reg, rec, a.log)
	if err := handler.Execute(a.stdout, mode); err != nil {
		return err
	}

	if rec != nil {
		if err := rec.WriteTextfile(cfg.Generator.MetricsFile); err != nil {
			return apperrors.NewMetricsExportError(cfg.Generator.MetricsFile, err)
		}
	}
	return nil
}

func (a *app) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if a.opts.configPath != "" {
		cfg, err = config.LoadFromFile(a.opts.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, apperrors.NewConfigInvalidError(err)
	}

	flags := cmd.Flags()
	if flags.Changed("count") {
		cfg.Generator.Count = a.opts.count
	}
	if flags.Changed("seed") {
		cfg.Generator.Seed = a.opts.seed
		cfg.Generator.Seeded = true
	}
	if flags.Changed("escape-literals") {
		cfg.Generator.EscapeLiterals = a.opts.escapeLiterals
	}
	if flags.Changed("registry") {
		cfg.Generator.RegistryPath = a.opts.registryPath
	}
	if flags.Changed("metrics-file") {
		cfg.Generator.MetricsFile = a.opts.metricsFile
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = a.opts.logLevel
	}

	if err := config.ValidateGenerator(cfg); err != nil {
		return nil, apperrors.NewConfigInvalidError(err)
	}
	return cfg, nil
}

func loadRegistry(path string) (*registry.LookupRegistry, error) {
	if path == "" {
		return registry.Default(), nil
	}
	return registry.LoadRegistry(path)
}
