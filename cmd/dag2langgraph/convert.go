package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/dag2langgraph/internal/cli"
	"github.com/aretw0/dag2langgraph/pkg/codec"
	"github.com/aretw0/dag2langgraph/pkg/domain"
)

var convertCmd = &cobra.Command{
	Use:   "convert INPUT",
	Short: "Convert a DAG document into runtime JSON",
	Long: `Reads a DAG document (JSON or YAML, "-" for stdin), validates it and writes
the runtime graph as JSON to stdout or to the file given with --output.

On a validation failure the error message is printed to stderr and the
command exits with status 1.

YAML input: quote ids, names and entry points that look like numbers,
booleans or null (entry_point: "42"). Unquoted, they are not strings and
the document is rejected.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
	addConvertFlags(convertCmd)
}

func addConvertFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", "", "Output file (default stdout)")
	cmd.Flags().StringP("format", "f", "", "Input format: json or yaml (default: from the file extension)")
	cmd.Flags().Int("indent", 2, "Spaces per indentation level, 0 for compact output")
}

func runConvert(cmd *cobra.Command, args []string) error {
	input := args[0]
	output, _ := cmd.Flags().GetString("output")

	format, err := inputFormat(cmd, input)
	if err != nil {
		return err
	}

	data, err := cli.ReadInput(input, cmd.InOrStdin())
	if err != nil {
		return err
	}

	conv, closeCache, err := cli.NewConverter(cmd.Context(), cfg, logger, nil)
	if err != nil {
		return err
	}
	defer closeCache()

	out, err := conv.ConvertDocument(cmd.Context(), data, format, cfg.Indent)
	if err != nil {
		if _, ok := domain.KindOf(err); ok {
			printerFor(cmd.ErrOrStderr()).Message(err)
			return &cli.ExitError{Code: cli.ExitValidation, Err: err}
		}
		return err
	}

	if err := cli.WriteOutput(output, out, cmd.OutOrStdout()); err != nil {
		return err
	}
	logger.Debug("Converted document", "input", input, "output", output, "bytes", len(out))
	return nil
}

// inputFormat honors --format and otherwise infers the format from path.
func inputFormat(cmd *cobra.Command, path string) (codec.Format, error) {
	name, _ := cmd.Flags().GetString("format")
	if name == "" {
		return codec.FormatFromPath(path), nil
	}
	format, err := codec.ParseFormat(name)
	if err != nil {
		return "", fmt.Errorf("invalid --format: %w", err)
	}
	return format, nil
}
