package main

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"datagrid-tools/internal/catalog"
	"datagrid-tools/internal/common/config"
	apperrors "datagrid-tools/internal/common/errors"
	"datagrid-tools/internal/common/logger"
	"datagrid-tools/internal/common/metrics"
)

type options struct {
	configPath  string
	metricsFile string
	logLevel    string
}

type app struct {
	stdout io.Writer
	stderr io.Writer
	opts   options
	log    logger.Logger
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "catalog-validator <schema_path> <catalog_path> [<catalog_path> ...]",
		Short:         "Validate JSON catalogs against a JSON Schema",
		Args:          a.checkArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.validate(cmd, args[0], args[1:])
		},
	}

	flags := root.Flags()
	flags.StringVar(&a.opts.configPath, "config", "", "Path to a config.yaml file")
	flags.StringVar(&a.opts.metricsFile, "metrics-file", "", "Write Prometheus metrics in textfile format to this path")
	flags.StringVar(&a.opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	return root
}

// checkArgs rejects an invocation without at least one catalog before any
// file is touched.
func (a *app) checkArgs(_ *cobra.Command, args []string) error {
	if len(args) < 2 {
		fmt.Fprintln(a.stdout, usageLine)
		return apperrors.NewUsageError(fmt.Sprintf("expected a schema and at least one catalog, got %d argument(s)", len(args)))
	}
	return nil
}

func (a *app) validate(cmd *cobra.Command, schemaPath string, catalogPaths []string) error {
	cfg, ignored, err := a.loadConfig(cmd)
	if err != nil {
		return err
	}

	a.log = logger.NewStructured(cfg.Logging.Level, cfg.Logging.Format).WithFields(map[string]interface{}{
		"runId":   uuid.NewString(),
		"command": "catalog-validator",
	})
	if ignored != nil {
		a.log.WithError(ignored).Debug("ignoring unusable configuration, using defaults", nil)
	}
	a.log.Debug("validating catalogs", map[string]interface{}{
		"schema":   schemaPath,
		"catalogs": len(catalogPaths),
	})

	var rec *metrics.Recorder
	if cfg.Validator.MetricsFile != "" {
		rec = metrics.New()
	}

	report, runErr := catalog.NewValidator(a.stdout, rec, a.log).ValidateAll(schemaPath, catalogPaths)
	if runErr == nil && !report.AllValid() {
		runErr = apperrors.NewCatalogInvalidError(report.Failed(), len(report.Results))
	}

	if rec != nil {
		if err := rec.WriteTextfile(cfg.Validator.MetricsFile); err != nil && runErr == nil {
			runErr = apperrors.NewMetricsExportError(cfg.Validator.MetricsFile, err)
		}
	}
	return runErr
}

// loadConfig reads the configuration. An explicit --config must load and
// check out. A file found on the search path that does not is replaced by the
// defaults, and the reason is returned as ignored.
func (a *app) loadConfig(cmd *cobra.Command) (cfg *config.Config, ignored error, err error) {
	if a.opts.configPath != "" {
		cfg, err = config.LoadFromFile(a.opts.configPath)
		if err == nil {
			err = config.ValidateValidator(cfg)
		}
		if err != nil {
			return nil, nil, apperrors.NewConfigInvalidError(err)
		}
	} else {
		cfg, err = config.Load()
		if err == nil {
			err = config.ValidateValidator(cfg)
		}
		if err != nil {
			ignored = err
			cfg = config.Default()
		}
	}

	if cmd.Flags().Changed("metrics-file") {
		cfg.Validator.MetricsFile = a.opts.metricsFile
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Logging.Level = a.opts.logLevel
	}
	return cfg, ignored, nil
}
