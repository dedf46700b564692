package main

import (
	"github.com/aretw0/powerset/internal/adapters/file"
	"github.com/aretw0/powerset/internal/cli"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start an interactive conversion session",
	Long: `Starts an interactive session: load an NFA, convert it, look at the DFA, its
diagram or the construction trace, then reset and start over.
With --session the session is saved and resumed across runs. Set
POWERSET_SESSION_KEY (32 bytes, hex or base64) to store it encrypted.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := cli.SessionOptions{Options: baseOptions(cmd)}
		opts.SessionID, _ = cmd.Flags().GetString("session")
		opts.StoreDir, _ = cmd.Flags().GetString("store")
		opts.Fresh, _ = cmd.Flags().GetBool("fresh")
		opts.Quiet, _ = cmd.Flags().GetBool("quiet")

		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()
		return cli.RunSession(sigCtx, opts)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("session", "s", "", "Save the session under this ID and resume it next time")
	runCmd.Flags().String("store", file.DefaultPath, "Directory holding saved sessions")
	runCmd.Flags().Bool("fresh", false, "Discard the saved session before starting")
	runCmd.Flags().BoolP("quiet", "q", false, "No banner and no prompt, for scripted input")
	addConstructionFlags(runCmd)
}
