package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/mgomezmartin/ticketera/internal/archive"
	"github.com/mgomezmartin/ticketera/internal/common"
	"github.com/mgomezmartin/ticketera/internal/empleados"
)

// dbinit bootstraps the archive and staff tables so the other binaries can
// assume they exist.
func main() {
	cfg := common.LoadConfig()

	dsn := flag.String("db-url", cfg.ArchiveDSN(), "target database (Postgres DSN or SQLite file)")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	ctx := context.Background()
	store, err := archive.Open(ctx, *dsn, logger)
	if err != nil {
		logger.Error("dbinit.connect.failed", "err", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := store.EnsureSchema(ctx); err != nil {
		logger.Error("dbinit.archive.failed", "err", err)
		os.Exit(1)
	}
	logger.Info("dbinit.archive.ok")

	repo := empleados.NewRepository(store.DB(), logger)
	if err := repo.EnsureSchema(ctx); err != nil {
		logger.Error("dbinit.staff.failed", "err", err)
		os.Exit(1)
	}
	logger.Info("dbinit.staff.ok")

	invoices, items, err := store.Counts(ctx)
	if err != nil {
		logger.Error("dbinit.counts.failed", "err", err)
		os.Exit(1)
	}
	fmt.Printf("Base de datos lista: %d facturas, %d items\n", invoices, items)
}
