package main

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/aretw0/dag2langgraph/internal/config"
	"github.com/aretw0/dag2langgraph/internal/logging"
)

var (
	cfg    *config.Config
	logger *slog.Logger
)

// flagKeys maps command line flags to the config keys they override.
var flagKeys = map[string]string{
	"log-level":  "log_level",
	"log-format": "log_format",
	"indent":     "indent",
	"addr":       "http.addr",
	"cache":      "cache.backend",
	"cache-ttl":  "cache.ttl",
	"cache-max":  "cache.max_entries",
	"redis-addr": "cache.redis.addr",
}

var rootCmd = &cobra.Command{
	Use:   "dag2langgraph [INPUT]",
	Short: "Convert DAG documents into LangGraph runtime graphs",
	Long: `dag2langgraph validates a directed acyclic graph of function and tool nodes
and converts it into the node table and edge list consumed by the LangGraph runtime.

Running it with a single INPUT is the same as "dag2langgraph convert INPUT".

Exit codes: 0 success, 1 validation failure, 2 I/O or parse failure.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		return runConvert(cmd, args)
	},
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format: text or json")

	addConvertFlags(rootCmd)
}

// setup loads the configuration and builds the logger shared by every command.
func setup(cmd *cobra.Command) error {
	overrides := map[string]any{}
	cmd.Flags().Visit(func(f *pflag.Flag) {
		if key, ok := flagKeys[f.Name]; ok {
			overrides[key] = f.Value.String()
		}
	})

	path, _ := cmd.Flags().GetString("config")
	loaded, err := config.Loader{Path: path, Overrides: overrides}.Load()
	if err != nil {
		return err
	}

	level, err := logging.ParseLevel(loaded.LogLevel)
	if err != nil {
		return err
	}
	cfg = loaded
	logger = logging.NewWithWriter(cmd.ErrOrStderr(), level, logging.Format(loaded.LogFormat))
	return nil
}
