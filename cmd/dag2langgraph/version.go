package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/dag2langgraph"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of dag2langgraph",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "dag2langgraph version %s\n", strings.TrimSpace(dag2langgraph.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
