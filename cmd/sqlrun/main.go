package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/mgomezmartin/ticketera/internal/common"
	"github.com/mgomezmartin/ticketera/internal/sqlrun"
)

func main() {
	cfg := common.LoadConfig()

	var (
		sqlPath = flag.String("sql", "InsertUnderlineTicket.sql", "path to the .sql script")
		dsn     = flag.String("db-url", cfg.ArchiveDSN(), "target database (Postgres DSN or SQLite file)")
		verbose = flag.Bool("verbose", false, "log each statement before executing it")
	)
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	script, err := os.ReadFile(*sqlPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Archivo SQL no encontrado: %s\n", *sqlPath)
		os.Exit(1)
	}

	ctx := context.Background()
	db, err := sqlrun.Open(ctx, *dsn, logger)
	if err != nil {
		logger.Error("sqlrun.connect.failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	statements := sqlrun.SplitStatements(string(script))
	runner := &sqlrun.Runner{DB: db, Logger: logger, Verbose: *verbose}
	res := runner.Run(ctx, statements)

	fmt.Printf("Ejecución finalizada. Statements ejecutados: %d, fallos: %d.\n", res.Executed, res.Failed)
	if res.Failed > 0 {
		os.Exit(1)
	}
}
