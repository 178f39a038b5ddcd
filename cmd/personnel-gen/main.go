// cmd/personnel-gen/main.go
package main

import (
	"fmt"
	"io"
	"os"

	apperrors "datagrid-tools/internal/common/errors"
	"datagrid-tools/internal/common/logger"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	a := &app{
		stdout: stdout,
		stderr: stderr,
		log:    logger.NewNoOpLogger(),
	}

	if args == nil {
		// cobra falls back to os.Args for a nil slice
		args = []string{}
	}

	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if err != nil {
		if _, ok := apperrors.AsStandardError(err); !ok {
			// cobra argument and flag errors
			fmt.Fprintf(stderr, "error: %v\n", err)
			fmt.Fprint(stderr, root.UsageString())
			err = apperrors.NewUsageError(err.Error())
		}
	}
	return apperrors.NewErrorHandler(a.log, stderr).Handle(err)
}
