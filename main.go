// Command reanchord serves annotation tracking over HTTP.
//
//	go run . -config reanchor.yaml
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/jsnanigans/reanchor/internal/config"
	"github.com/jsnanigans/reanchor/internal/server"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file")
	addr := flag.String("addr", "", "Listen address, overrides the config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	logger, err := cfg.Logger()
	if err != nil {
		log.Fatalf("Error building logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx, cfg.Addr, cfg.MaxBodyBytes, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
