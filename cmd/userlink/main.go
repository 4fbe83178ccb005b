// Command userlink runs the MCP proxy for Jira, Confluence, Teams and
// Outlook. Credentials arrive per request in HTTP headers; the process
// itself holds none.
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

	mcpserver "github.com/mark3labs/mcp-go/server"
	"golang.org/x/sync/errgroup"

	"github.com/golovatskygroup/mcp-userlink/internal/config"
	"github.com/golovatskygroup/mcp-userlink/internal/headers"
	"github.com/golovatskygroup/mcp-userlink/internal/server"
)

func main() {
	configPath := flag.String("config", "", "path to an optional YAML config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	// Logs go to stderr; on stdio transport stdout belongs to the
	// protocol.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(log)

	srv := server.New(&cfg, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch cfg.Transport {
	case config.TransportStdio:
		log.Info("serving", "transport", cfg.Transport)
		return mcpserver.ServeStdio(srv.MCP())
	case config.TransportStreamableHTTP:
		return serveHTTP(ctx, cfg, srv, log)
	}
	return fmt.Errorf("unsupported transport %q", cfg.Transport)
}

func serveHTTP(ctx context.Context, cfg config.Config, srv *server.Server, log *slog.Logger) error {
	httpSrv := mcpserver.NewStreamableHTTPServer(srv.MCP(),
		mcpserver.WithHTTPContextFunc(headers.HTTPContextFunc),
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("serving", "transport", cfg.Transport, "addr", cfg.Addr())
		if err := httpSrv.Start(cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPTimeout)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	})

	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
