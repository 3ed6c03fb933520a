// Command burrowd runs the Burrow resolver daemon: the management REST API
// plus optional resolution history persistence.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/avisser/burrow/internal/api"
	"github.com/avisser/burrow/internal/api/handlers"
	"github.com/avisser/burrow/internal/config"
	"github.com/avisser/burrow/internal/history"
	"github.com/avisser/burrow/internal/logging"
	"github.com/avisser/burrow/internal/resolver"
	"github.com/avisser/burrow/internal/transport"
)

// historyKeep bounds the history table; everything older is pruned hourly.
const historyKeep = 10000

func main() {
	var (
		configPath = flag.String("config", "", "Path to YAML configuration file (or set BURROW_CONFIG)")
		host       = flag.String("host", "", "Override API bind host")
		port       = flag.Int("port", 0, "Override API bind port")
		jsonLogs   = flag.Bool("json-logs", false, "Enable JSON structured logging")
		debug      = flag.Bool("debug", false, "Enable debug logging")
	)
	flag.Parse()

	cfg, err := config.Load(config.ResolveConfigPath(*configPath))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if *host != "" {
		cfg.API.Host = *host
	}
	if *port != 0 {
		cfg.API.Port = *port
	}
	cfg.API.Enabled = true
	if *jsonLogs {
		cfg.Logging.Format = "json"
	}
	if *debug {
		cfg.Logging.Level = "DEBUG"
	}

	logger := logging.Configure(logging.Config{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		IncludePID: cfg.Logging.IncludePID,
		Fields:     cfg.Logging.Fields,
	})
	logger.Info("Burrow starting",
		"api_host", cfg.API.Host,
		"api_port", cfg.API.Port,
		"root_server", cfg.Resolver.RootServer,
		"max_hops", cfg.Resolver.MaxHops,
	)

	var store *history.Store
	if cfg.History.Enabled {
		store, err = history.Open(cfg.History.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open history store: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()
		logger.Info("history store open", "path", cfg.History.Path)
	}

	tr := transport.New(transport.Config{
		Timeout:         cfg.Resolver.TimeoutParsed,
		RecvSize:        cfg.Resolver.RecvSize,
		RecvBufferBytes: cfg.Resolver.RecvBufferBytes,
		SendBufferBytes: cfg.Resolver.SendBufferBytes,
	})
	res := resolver.New(tr, cfg.Resolver.RootIP, cfg.Resolver.MaxHops, logger)

	h := handlers.New(res, store, logger)
	server := api.New(&cfg, h, logger)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("api listening", "addr", server.Addr())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if store != nil {
		go pruneLoop(rootCtx, store, logger)
	}

	select {
	case err := <-errCh:
		fmt.Fprintf(os.Stderr, "api server exited with error: %v\n", err)
		os.Exit(1)
	case <-rootCtx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
		os.Exit(1)
	}
	logger.Info("bye")
}

func pruneLoop(ctx context.Context, store *history.Store, logger *slog.Logger) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := store.Prune(ctx, historyKeep)
			if err != nil {
				logger.Error("history prune failed", "error", err)
				continue
			}
			if removed > 0 {
				logger.Info("history pruned", "removed", removed)
			}
		}
	}
}
