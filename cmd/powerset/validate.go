package main

import (
	"fmt"

	"github.com/aretw0/powerset/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file...]",
	Short: "Check NFA definitions for consistency",
	Long: `Builds each definition and reports structural problems, then crawls it from the
start state and warns about unreachable states and states that can never accept.
Without files, every catalog entry is checked.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cli.RunValidate(cmd.Context(), args, baseOptions(cmd)); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "All definitions are valid! ✅")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
