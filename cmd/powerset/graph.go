package main

import (
	"fmt"

	"github.com/aretw0/powerset/internal/cli"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph [file]",
	Short: "Export the DFA as a diagram",
	Long:  `Converts the NFA and outputs a Mermaid flowchart (graph LR) or Graphviz DOT text of the DFA.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := baseOptions(cmd)
		if len(args) > 0 {
			opts.Path = args[0]
		}
		opts.Name, _ = cmd.Flags().GetString("name")
		opts.Format, _ = cmd.Flags().GetString("format")
		if opts.Format != cli.FormatMermaid && opts.Format != cli.FormatDOT {
			return fmt.Errorf("graph supports mermaid or dot, got %q", opts.Format)
		}

		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()
		return cli.RunConvert(sigCtx, opts)
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)

	graphCmd.Flags().StringP("name", "n", "", "Catalog entry to draw instead of a file")
	graphCmd.Flags().StringP("format", "f", cli.FormatMermaid, "Diagram format: mermaid or dot")
	addConstructionFlags(graphCmd)
}
