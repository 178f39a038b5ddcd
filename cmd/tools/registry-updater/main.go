// cmd/tools/registry-updater/main.go
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	apperrors "datagrid-tools/internal/common/errors"
	"datagrid-tools/internal/common/logger"
	"datagrid-tools/pkg/registry"
)

const defaultRegistryPath = "configs/lookup-registry.json"

type options struct {
	path       string
	pool       string
	value      string
	roleCode   string
	roleTitles []string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if args == nil {
		args = []string{}
	}
	opts := &options{}

	root := &cobra.Command{
		Use:           "registry-updater",
		Short:         "Maintain lookup registry overrides for personnel-gen",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.PersistentFlags().StringVar(&opts.path, "path", defaultRegistryPath, "Path to registry file")
	root.AddCommand(exportCmd(opts, stdout), addCmd(opts, stdout), validateCmd(opts, stdout))
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if err != nil {
		if _, ok := apperrors.AsStandardError(err); !ok {
			fmt.Fprintf(stderr, "error: %v\n", err)
			err = apperrors.NewUsageError(err.Error())
		}
	}
	return apperrors.NewErrorHandler(logger.NewStructured("warn", "console"), stderr).Handle(err)
}

func exportCmd(opts *options, stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Write the built-in registry to --path as a starting point",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg := registry.Default()
			reg.Version = time.Now().UTC().Format("2006.01.02")
			if err := saveRegistry(reg, opts.path); err != nil {
				return err
			}
			fmt.Fprintf(stdout, "Exported registry to %s\n", opts.path)
			return nil
		},
	}
}

func addCmd(opts *options, stdout io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a value to one of the registry pools",
		Example: `  registry-updater add --pool names --value Greta
  registry-updater add --pool departments --value LEGAL --role-code LAW --role-title Counsel --role-title Paralegal`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.pool == "" || opts.value == "" {
				return apperrors.NewUsageError("--pool and --value are required")
			}
			reg, err := registry.LoadRegistry(opts.path)
			if err != nil {
				return err
			}
			if err := addValue(reg, opts); err != nil {
				return err
			}
			if err := saveRegistry(reg, opts.path); err != nil {
				return err
			}
			fmt.Fprintf(stdout, "Added %s to %s\n", opts.value, opts.pool)
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.pool, "pool", "", "Pool to extend (names, surnames, departments, tags, certifications)")
	cmd.Flags().StringVar(&opts.value, "value", "", "Value to add")
	cmd.Flags().StringVar(&opts.roleCode, "role-code", "", "Role code of a new department")
	cmd.Flags().StringArrayVar(&opts.roleTitles, "role-title", nil, "Role title of a new department (repeatable)")
	return cmd
}

func validateCmd(opts *options, stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the registry file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := registry.LoadRegistry(opts.path)
			if err != nil {
				return err
			}
			fmt.Fprintf(stdout, "Registry validation passed. Found %d names, %d surnames and %d departments.\n",
				len(reg.Names), len(reg.Surnames), len(reg.Departments))
			return nil
		},
	}
}

func addValue(reg *registry.LookupRegistry, opts *options) error {
	switch opts.pool {
	case "names":
		reg.Names = append(reg.Names, opts.value)
	case "surnames":
		reg.Surnames = append(reg.Surnames, opts.value)
	case "tags":
		reg.Tags = append(reg.Tags, opts.value)
	case "certifications":
		reg.Certifications = append(reg.Certifications, opts.value)
	case "departments":
		if opts.roleCode == "" || len(opts.roleTitles) == 0 {
			return apperrors.NewUsageError("a new department needs --role-code and at least one --role-title")
		}
		reg.Departments = append(reg.Departments, opts.value)
		reg.RoleCodes[opts.value] = opts.roleCode
		reg.RoleTitles[opts.value] = opts.roleTitles
	default:
		return apperrors.NewUsageError(fmt.Sprintf("unknown pool: %s", opts.pool))
	}
	return nil
}

// saveRegistry re-checks reg and writes it as indented JSON.
func saveRegistry(reg *registry.LookupRegistry, path string) error {
	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return apperrors.NewOutputWriteFailedError(err)
	}
	if _, err := registry.Parse(data); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return apperrors.NewOutputWriteFailedError(err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return apperrors.NewOutputWriteFailedError(err)
	}
	return nil
}
