package main

import (
	"fmt"
	"os"

	"github.com/aretw0/powerset/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "powerset",
	Short: "Powerset converts NFAs into DFAs by subset construction",
	Long: `Powerset turns a nondeterministic finite automaton (epsilon transitions allowed)
into an equivalent deterministic one, and shows how it got there.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("catalog", os.Getenv("POWERSET_CATALOG"), "Directory of Markdown automata used as the catalog")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error); empty disables logging")
}

// addConstructionFlags registers the flags that tune subset construction.
func addConstructionFlags(cmd *cobra.Command) {
	cmd.Flags().Int("limit", 0, "Fail once more than this many DFA states are discovered (0 = no limit)")
	addCommonConstructionFlags(cmd)
}

// addServiceConstructionFlags is addConstructionFlags with a finite default limit.
func addServiceConstructionFlags(cmd *cobra.Command) {
	cmd.Flags().Int("limit", cli.DefaultServiceLimit, "Fail once more than this many DFA states are discovered (negative = no limit)")
	addCommonConstructionFlags(cmd)
}

func addCommonConstructionFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("total", false, "Add an explicit dead state so every (state, symbol) has a transition")
	cmd.Flags().Int("parallel", 1, "Workers expanding each subset's symbols")
}

// baseOptions reads the persistent and construction flags.
func baseOptions(cmd *cobra.Command) cli.Options {
	opts := cli.Options{}
	opts.CatalogDir, _ = cmd.Flags().GetString("catalog")
	opts.LogLevel, _ = cmd.Flags().GetString("log-level")
	opts.Limit, _ = cmd.Flags().GetInt("limit")
	opts.Total, _ = cmd.Flags().GetBool("total")
	opts.Parallelism, _ = cmd.Flags().GetInt("parallel")
	opts.In = cmd.InOrStdin()
	opts.Out = cmd.OutOrStdout()
	opts.ErrOut = cmd.ErrOrStderr()
	return opts
}

// envOr returns the environment variable key, or fallback when unset.
func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
