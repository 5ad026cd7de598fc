package main

import (
	"errors"
	"io"
	"os"

	"github.com/aretw0/dag2langgraph/internal/cli"
)

func main() {
	os.Exit(execute(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// execute runs the root command and maps its outcome to an exit code.
func execute(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	rootCmd.SetArgs(args)
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.Execute()
	if err == nil {
		return cli.ExitOK
	}

	// ExitErrors were already reported by the command.
	var exitErr *cli.ExitError
	if !errors.As(err, &exitErr) {
		printerFor(stderr).Error(err)
	}
	return cli.ExitCode(err)
}

// printerFor colors w only when it is a terminal.
func printerFor(w io.Writer) *cli.Printer {
	if f, ok := w.(*os.File); ok {
		return cli.NewPrinter(f, cli.ColorEnabled(f))
	}
	return cli.NewPrinter(w, false)
}
