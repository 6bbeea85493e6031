package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/mgomezmartin/ticketera/internal/archive"
	"github.com/mgomezmartin/ticketera/internal/common"
	"github.com/mgomezmartin/ticketera/internal/empleados"
)

func main() {
	cfg := common.LoadConfig()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	ctx := context.Background()
	store, err := archive.Open(ctx, cfg.ArchiveDSN(), logger)
	if err != nil {
		logger.Error("gestiond.connect.failed", "err", err)
		os.Exit(1)
	}
	defer store.Close()

	repo := empleados.NewRepository(store.DB(), logger)
	if err := repo.EnsureSchema(ctx); err != nil {
		logger.Error("gestiond.schema.failed", "err", err)
		os.Exit(1)
	}

	router := gin.Default()
	empleados.NewHandler(repo, logger).RegisterRoutes(router)

	logger.Info("gestiond.listen", "addr", cfg.Server.HTTPAddr)
	if err := router.Run(cfg.Server.HTTPAddr); err != nil {
		logger.Error("gestiond.serve.failed", "err", err)
		os.Exit(1)
	}
}
