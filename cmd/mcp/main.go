// Command mcp serves the docreader tools over stdio.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/markdave123-py/docreader/internal/api/mcptools"
	"github.com/markdave123-py/docreader/internal/app"
	"github.com/markdave123-py/docreader/internal/config"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("config", "error", err)
		os.Exit(1)
	}

	// stdout carries the protocol; logs go to stderr.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	srv := mcp.NewServer(&mcp.Implementation{Name: "docreader", Version: "0.1.0"}, nil)
	mcptools.Register(srv, app.NewReader(cfg, logger))

	if err := srv.Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
		logger.Error("mcp server", "error", err)
		os.Exit(1)
	}
}
