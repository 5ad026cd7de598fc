package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/dag2langgraph"
	"github.com/aretw0/dag2langgraph/internal/cli"
	"github.com/aretw0/dag2langgraph/pkg/domain"
)

var validateCmd = &cobra.Command{
	Use:   "validate INPUT...",
	Short: "Check DAG documents without converting them",
	Long: `Validates each document and prints OK or the validation message per file.
Exits with 1 if any document is invalid and with 2 if any could not be read or parsed.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringP("format", "f", "", "Input format: json or yaml (default: from each file extension)")
}

func runValidate(cmd *cobra.Command, args []string) error {
	conv := dag2langgraph.New(dag2langgraph.WithLogger(logger))
	printer := printerFor(cmd.OutOrStdout())

	code := cli.ExitOK
	failed := 0
	for _, input := range args {
		err := validateOne(cmd, conv, input)
		if err == nil {
			printer.OK(input)
			continue
		}

		failed++
		code = max(code, cli.ExitCode(err))
		if _, ok := domain.KindOf(err); ok {
			printer.Fail(input, err.Error())
		} else {
			printer.Fail(input, "error: "+err.Error())
		}
	}

	if failed > 0 {
		return &cli.ExitError{Code: code, Err: fmt.Errorf("%d of %d documents failed validation", failed, len(args))}
	}
	return nil
}

func validateOne(cmd *cobra.Command, conv *dag2langgraph.Converter, input string) error {
	format, err := inputFormat(cmd, input)
	if err != nil {
		return err
	}
	data, err := cli.ReadInput(input, cmd.InOrStdin())
	if err != nil {
		return err
	}
	return conv.Validate(cmd.Context(), data, format)
}
