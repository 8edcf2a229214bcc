package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/textbook-engine/internal/engine"
)

var extractCmd = &cobra.Command{
	Use:   "extract <filename>",
	Short: "Preview the series metadata inferred from one filename",
	Long: `Extract runs the pattern recognizers against a single filename and
prints the inferred series info. The file does not need to exist; only
the name is examined. Useful for single-file uploads and for previewing
a manual override.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		info := engine.ExtractSeriesInfo(args[0])
		return yaml.NewEncoder(os.Stdout).Encode(info)
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)
}
