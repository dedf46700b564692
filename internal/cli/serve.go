package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/aretw0/powerset"
	"github.com/aretw0/powerset/internal/logging"
	httpAdapter "github.com/aretw0/powerset/pkg/adapters/http"
	mcpAdapter "github.com/aretw0/powerset/pkg/adapters/mcp"
	"github.com/aretw0/powerset/pkg/adapters/memory"
	redisAdapter "github.com/aretw0/powerset/pkg/adapters/redis"
	"github.com/aretw0/powerset/pkg/observability"
	"github.com/aretw0/powerset/pkg/ports"
	"github.com/aretw0/powerset/pkg/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// shutdownTimeout bounds how long outstanding requests may take after a stop signal.
const shutdownTimeout = 5 * time.Second

// ServeOptions configures the HTTP server.
type ServeOptions struct {
	Options
	Addr       string
	RedisURL   string
	SessionTTL time.Duration
}

// RunServe starts the HTTP API and blocks until ctx is cancelled or the listener fails.
func RunServe(ctx context.Context, opts ServeOptions) error {
	opts.defaults()

	level, err := logging.ParseLevel(opts.LogLevel)
	if err != nil {
		return err
	}
	logger := logging.NewJSON(opts.ErrOut, level)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := observability.NewMetrics(reg)

	conv, err := powerset.New(opts.CatalogDir,
		powerset.WithLogger(logger),
		powerset.WithLimit(serviceLimit(opts.Limit)),
		powerset.WithParallelism(opts.Parallelism),
		powerset.WithTotal(opts.Total),
		powerset.WithConstructionHooks(metrics.Hooks()),
		powerset.WithConstructionHooks(observability.LoggingHooks(logger)),
	)
	if err != nil {
		return fmt.Errorf("error initializing converter: %w", err)
	}

	store, sessionOpts, closeStore, err := setupSessionStore(ctx, opts)
	if err != nil {
		return err
	}
	defer closeStore()

	sessionOpts = append(sessionOpts,
		session.WithLogger(logger),
		session.WithConvertOptions(conv.Options()...),
	)
	sessions := session.NewManager(store, sessionOpts...)

	handler := httpAdapter.NewHandler(conv, sessions,
		httpAdapter.WithLogger(logger),
		httpAdapter.WithMetricsHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})),
	)

	srv := &http.Server{
		Addr:              opts.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("Starting Powerset Server", "addr", srv.Addr, "catalog", opts.CatalogDir)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		logger.Info("Start shutdown")

		// Give outstanding requests a deadline for completion.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Graceful shutdown did not complete", "timeout", shutdownTimeout, "err", err)
			if err := srv.Close(); err != nil {
				return fmt.Errorf("error killing server: %w", err)
			}
		}
		logger.Info("Powerset Server stopped gracefully")
		return nil
	}
}

// setupSessionStore picks Redis when a URL is configured, memory otherwise.
// With Redis, sessions are also guarded by a distributed lock so several
// server replicas can share them, and sealed when EnvSessionKey is set.
func setupSessionStore(ctx context.Context, opts ServeOptions) (ports.SessionStore, []session.Option, func(), error) {
	if opts.RedisURL == "" {
		return memory.NewStore(), nil, func() {}, nil
	}

	var storeOpts []redisAdapter.Option
	if opts.SessionTTL > 0 {
		storeOpts = append(storeOpts, redisAdapter.WithTTL(opts.SessionTTL))
	}
	store, err := redisAdapter.NewFromURL(opts.RedisURL, storeOpts...)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := store.Ping(ctx); err != nil {
		_ = store.Close()
		return nil, nil, nil, fmt.Errorf("redis unreachable: %w", err)
	}

	sealed, err := sealStore(store)
	if err != nil {
		_ = store.Close()
		return nil, nil, nil, err
	}

	locker := redisAdapter.NewLocker(store.Client(), store.Prefix())
	closeFn := func() { _ = store.Close() }
	return sealed, []session.Option{session.WithLocker(locker)}, closeFn, nil
}

// MCPOptions configures the MCP server.
type MCPOptions struct {
	Options
	Transport string // "stdio" or "sse"
	Port      int
}

// RunMCP starts the MCP server on the chosen transport.
func RunMCP(ctx context.Context, opts MCPOptions) error {
	opts.defaults()

	// Stdout carries JSON-RPC, so logs must go to Stderr.
	level, err := logging.ParseLevel(opts.LogLevel)
	if err != nil {
		return err
	}
	logger := logging.NewJSON(os.Stderr, level)

	conv, err := powerset.New(opts.CatalogDir,
		powerset.WithLogger(logger),
		powerset.WithLimit(serviceLimit(opts.Limit)),
		powerset.WithTotal(opts.Total),
	)
	if err != nil {
		return fmt.Errorf("error initializing converter: %w", err)
	}

	srv := mcpAdapter.NewServer(conv, logger)
	switch opts.Transport {
	case "", "stdio":
		logger.Info("Starting Powerset MCP Server (Stdio)")
		return srv.ServeStdio()
	case "sse":
		logger.Info("Starting Powerset MCP Server (SSE)", "port", opts.Port)
		return srv.ServeSSE(ctx, opts.Port)
	default:
		return fmt.Errorf("unknown transport %q, supported: stdio, sse", opts.Transport)
	}
}
