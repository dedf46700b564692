package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/powerset"
	"github.com/aretw0/powerset/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of powerset",
	Run: func(cmd *cobra.Command, args []string) {
		if banner, _ := cmd.Flags().GetBool("banner"); banner {
			tui.PrintBanner(cmd.OutOrStdout(), strings.TrimSpace(powerset.Version))
			return
		}
		fmt.Fprintf(cmd.OutOrStdout(), "powerset version %s\n", strings.TrimSpace(powerset.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().Bool("banner", false, "Print the banner too")
}
