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

	"github.com/mark3labs/mcp-go/server"

	"github.com/hazyhaar/toolhost/internal/analysis"
	"github.com/hazyhaar/toolhost/internal/api"
	"github.com/hazyhaar/toolhost/internal/config"
	"github.com/hazyhaar/toolhost/internal/db"
	"github.com/hazyhaar/toolhost/internal/mcp"
	"github.com/hazyhaar/toolhost/internal/metrics"
	"github.com/hazyhaar/toolhost/internal/mockdata"
	"github.com/hazyhaar/toolhost/internal/tools"
	"github.com/hazyhaar/toolhost/pkg/audit"
	"github.com/hazyhaar/toolhost/pkg/trace"
)

var version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		cmdServe(os.Args[2:])
	case "version":
		fmt.Printf("toolhost %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`toolhost — MCP tool server over SSE

Usage:
  toolhost serve [--config config.toml] [--addr :8080]
  toolhost version
  toolhost help

Commands:
  serve     Start the HTTP server
  version   Print version
  help      Show this help

Environment:
  PORT, LOG_FILE, LOG_LEVEL, DB_PATH, PYRIGHT_ROOT, PYRIGHT_BIN`)
}

func cmdServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", "", "path to config.toml")
	addr := fs.String("addr", "", "listen address (overrides config)")
	fs.Parse(args)

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatal("loading config", err)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	logger := newLogger(cfg.Log.Level)
	slog.SetDefault(logger)

	store := db.New(cfg.Database.Path, db.WithTracer(trace.New(logger, trace.DefaultSlowThreshold)))
	defer store.Close()

	runner, err := analysis.New(cfg.Analysis.Root, cfg.Analysis.Binary)
	if err != nil {
		fatal("configuring analysis", err)
	}

	data := mockdata.Default()
	reg := tools.NewRegistry()
	dispatcher := tools.New(reg, store, data, runner, audit.NewFileLogger(cfg.Log.File))
	mcpSrv := mcp.NewServer(reg, dispatcher.Call, data, version)

	httpSrv := &http.Server{
		Addr:              cfg.Server.Addr,
		ReadHeaderTimeout: 10 * time.Second,
	}
	sse := server.NewSSEServer(mcpSrv,
		server.WithBaseURL(cfg.Server.BaseURL),
		server.WithSSEEndpoint(api.PathSSE),
		server.WithMessageEndpoint(api.PathMessage),
		server.WithHTTPServer(httpSrv),
	)

	a := api.New(mcp.Name, version, sse.SSEHandler(), sse.MessageHandler(),
		api.WithMetrics(metrics.Handler()),
		api.WithMessageRateLimit(cfg.Server.MessageRateLimit),
		api.WithAnalysisRoot(runner.Root),
	)
	httpSrv.Handler = a.Handler()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("toolhost listening",
			"version", version,
			"addr", cfg.Server.Addr,
			"database", cfg.Database.Path,
			"call_log", cfg.Log.File,
			"analysis_root", runner.Root,
			"tools", len(reg.List()),
		)
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			fatal("server error", err)
		}
	case <-ctx.Done():
		slog.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	// Closes every SSE session, then drains httpSrv.
	if err := sse.Shutdown(shutdownCtx); err != nil {
		slog.Warn("shutdown", "error", err)
	}
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func fatal(msg string, err error) {
	slog.Error(msg, "error", err)
	os.Exit(1)
}
