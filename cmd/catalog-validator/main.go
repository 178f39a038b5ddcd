// cmd/catalog-validator/main.go
package main

import (
	"fmt"
	"io"
	"os"

	apperrors "datagrid-tools/internal/common/errors"
	"datagrid-tools/internal/common/logger"
)

const usageLine = "Usage: catalog-validator <schema_path> <catalog_path1> <catalog_path2> ..."

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	a := &app{
		stdout: stdout,
		stderr: stderr,
		log:    logger.NewNoOpLogger(),
	}
	if args == nil {
		args = []string{}
	}

	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if err != nil {
		if _, ok := apperrors.AsStandardError(err); !ok {
			fmt.Fprintf(stderr, "error: %v\n", err)
			fmt.Fprintln(stdout, usageLine)
			err = apperrors.NewUsageError(err.Error())
		}
	}
	return apperrors.NewErrorHandler(a.log, stderr).Handle(err)
}
