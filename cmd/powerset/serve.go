package main

import (
	"time"

	"github.com/aretw0/powerset/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Serves conversions, sessions, the catalog and Prometheus metrics over HTTP.
Sessions live in memory unless --redis (or POWERSET_REDIS_URL) points at a Redis server.
Redis sessions are encrypted when POWERSET_SESSION_KEY is set.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := cli.ServeOptions{Options: baseOptions(cmd)}
		opts.Addr, _ = cmd.Flags().GetString("addr")
		opts.RedisURL, _ = cmd.Flags().GetString("redis")
		opts.SessionTTL, _ = cmd.Flags().GetDuration("session-ttl")
		if opts.LogLevel == "" {
			opts.LogLevel = "info"
		}

		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()
		return cli.RunServe(sigCtx, opts)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", envOr("POWERSET_ADDR", ":8080"), "Address to listen on")
	serveCmd.Flags().String("redis", envOr("POWERSET_REDIS_URL", ""), "Redis URL for shared sessions, e.g. redis://localhost:6379/0")
	serveCmd.Flags().Duration("session-ttl", 24*time.Hour, "How long idle sessions are kept in Redis")
	addServiceConstructionFlags(serveCmd)
}
