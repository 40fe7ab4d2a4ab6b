package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/zurustar/gamerscript/pkg/app"
	"github.com/zurustar/gamerscript/pkg/interpreter"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the application and returns the process exit status.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	application := app.New(app.WithStdin(stdin), app.WithStdout(stdout), app.WithStderr(stderr))
	if err := application.Run(args); err != nil {
		var exitErr *interpreter.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.Code
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
