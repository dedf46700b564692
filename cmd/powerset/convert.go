package main

import (
	"strings"

	"github.com/aretw0/powerset/internal/cli"
	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert [file]",
	Short: "Convert an NFA into a DFA",
	Long: `Reads an NFA from a file (text, YAML or JSON), from stdin ('-') or from the
catalog (--name), runs subset construction and prints the DFA.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := baseOptions(cmd)
		if len(args) > 0 {
			opts.Path = args[0]
		}
		opts.Name, _ = cmd.Flags().GetString("name")
		opts.Format, _ = cmd.Flags().GetString("format")
		opts.Trace, _ = cmd.Flags().GetBool("trace")
		watch, _ := cmd.Flags().GetBool("watch")

		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()

		if watch {
			return cli.RunWatch(sigCtx, opts)
		}
		return cli.RunConvert(sigCtx, opts)
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringP("name", "n", "", "Catalog entry to convert instead of a file")
	convertCmd.Flags().StringP("format", "f", cli.FormatText, "Output format: "+strings.Join(cli.Formats, ", "))
	convertCmd.Flags().BoolP("trace", "t", false, "Print the construction trace to stderr")
	convertCmd.Flags().BoolP("watch", "w", false, "Convert again whenever the file changes")
	addConstructionFlags(convertCmd)
}
