package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/aretw0/dag2langgraph/internal/cli"
	httpAdapter "github.com/aretw0/dag2langgraph/pkg/adapters/http"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the conversion HTTP server",
	Long: `Exposes the converter over HTTP:

  POST /convert   convert a DAG document (JSON, or YAML with a yaml Content-Type)
  POST /validate  validate a DAG document
  GET  /healthz   liveness probe
  GET  /metrics   Prometheus metrics`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := cli.WithShutdown(cmd.Context())
		defer stop()

		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)

		conv, closeCache, err := cli.NewConverter(ctx, cfg, logger, reg)
		if err != nil {
			return err
		}
		defer closeCache()

		handler := httpAdapter.NewHandler(conv,
			httpAdapter.WithIndent(cfg.Indent),
			httpAdapter.WithMaxBodyBytes(cfg.HTTP.MaxBodyBytes),
			httpAdapter.WithMetricsHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})),
			httpAdapter.WithLogger(logger),
		)

		ln, err := net.Listen("tcp", cfg.HTTP.Addr)
		if err != nil {
			return err
		}
		logger.Info("Starting dag2langgraph server", "addr", ln.Addr().String(), "cache", cfg.Cache.Backend)

		if err := serveHTTP(ctx, ln, handler, cfg.HTTP.ShutdownTimeout); err != nil {
			return err
		}
		logger.Info("Server stopped gracefully", "signal", cli.ShutdownSignal(ctx))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", ":8080", "Address to listen on")
	serveCmd.Flags().String("cache", "none", "Result cache backend: none, memory or redis")
	serveCmd.Flags().Duration("cache-ttl", 0, "Result cache entry lifetime, 0 keeps entries forever")
	serveCmd.Flags().Int("cache-max", 10000, "Maximum entries of the memory cache")
	serveCmd.Flags().String("redis-addr", "localhost:6379", "Redis address for the redis cache backend")
}

// serveHTTP serves handler on ln until ctx is done, then shuts down within timeout.
func serveHTTP(ctx context.Context, ln net.Listener, handler http.Handler, timeout time.Duration) error {
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- srv.Serve(ln)
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err

	case <-ctx.Done():
		// Give outstanding requests a deadline for completion.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Graceful shutdown did not complete", "timeout", timeout, "error", err)
			return srv.Close()
		}
		return nil
	}
}
