package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	apiConfig "investment_projection/pkg/api/config"
	"investment_projection/pkg/api/projection"
	"investment_projection/pkg/api/server"
	"investment_projection/pkg/api/web"
	"investment_projection/pkg/core/bootstrap"
	"investment_projection/pkg/core/config"
	"investment_projection/pkg/core/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "[FATAL] config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[FATAL] logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mgr, err := bootstrap.Manager(ctx, cfg)
	if err != nil {
		log.Fatal("failed to initialise providers", "error", err)
	}
	gen, err := bootstrap.Generator(cfg, mgr)
	if err != nil {
		log.Fatal("failed to initialise projection generator", "error", err)
	}
	log.Info("prompt template loaded", "path", cfg.PromptTemplatePath)
	log.Info("upstream configured",
		"provider", mgr.GetActiveProvider(),
		"model", mgr.Model(mgr.GetActiveProvider()),
		"available", mgr.Available(),
		"timeout", cfg.UpstreamTimeout.String(),
	)

	webHandler, err := web.NewHandler(server.ProjectionPath)
	if err != nil {
		log.Fatal("failed to render landing page", "error", err)
	}

	router := server.NewRouter(server.RouterConfig{
		ProjectionHandler: projection.NewHandler(gen, log, cfg.MaxInterestsLength),
		ConfigHandler:     apiConfig.NewHandler(mgr),
		WebHandler:        webHandler,
		Log:               log,
	})

	log.Info("routes registered",
		"index", "GET /",
		"health", "GET /health",
		"config", "GET /api/config",
		"projection", "POST "+server.ProjectionPath,
	)

	if err := server.New(cfg.Addr(), router, cfg.ShutdownTimeout, log).Run(ctx); err != nil {
		log.Error("server failed", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
