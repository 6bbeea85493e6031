package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/mgomezmartin/ticketera/internal/archive"
	"github.com/mgomezmartin/ticketera/internal/batch"
	"github.com/mgomezmartin/ticketera/internal/common"
	"github.com/mgomezmartin/ticketera/internal/emitter"
	"github.com/mgomezmartin/ticketera/internal/export"
	"github.com/mgomezmartin/ticketera/internal/parser"
	"github.com/mgomezmartin/ticketera/internal/resolver"
	"github.com/mgomezmartin/ticketera/internal/rules"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	cfg := common.LoadConfig()

	// Parse CLI flags; config supplies the defaults
	var (
		dir       = flag.String("dir", cfg.Batch.Dir, "directory with receipt files")
		pattern   = flag.String("pattern", cfg.Batch.Pattern, "receipt filename pattern")
		sqlFile   = flag.String("sql-file", "", "write the normalized SQL script to this path (append)")
		out       = flag.String("out", "", "write an XLSX batch summary to this path")
		dbFile    = flag.String("db-file", cfg.Database.File, "archive SQLite file (ignored when DB_URL is set)")
		rulesFile = flag.String("rules", "", "JSON rule override file")
		dryRun    = flag.Bool("dry-run", false, "parse and report only, write nothing")
		verbose   = flag.Bool("verbose", false, "per-file progress")
		sku       = flag.Bool("sku-products", false, "key products by a SKU hash of the description")
		onDup     = flag.String("on-duplicate-ticket", string(emitter.TicketAppend), "duplicate ticket policy: append or skip")
	)
	flag.Parse()

	// Setup logger
	level := cfg.SlogLevel()
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx := context.Background()
	runID := uuid.New()
	logger.Info("batch.start", "run_id", runID, "dir", *dir, "pattern", *pattern)

	policy, err := emitter.ParsePolicy(*onDup)
	if err != nil {
		printError("Error: %v\n", err)
		os.Exit(1)
	}

	ruleSet := rules.Default()
	if *rulesFile != "" {
		ruleSet, err = rules.Load(*rulesFile)
		if err != nil {
			logger.Error("batch.rules.failed", "file", *rulesFile, "err", err)
			os.Exit(1)
		}
		logger.Info("batch.rules.ok", "file", *rulesFile)
	}

	processor := batch.NewProcessor(logger, parser.New(ruleSet))
	invoices, stats, err := processor.ParseDirectory(*dir, *pattern)
	if err != nil {
		logger.Error("batch.parse.aborted", "err", err)
		os.Exit(1)
	}
	if len(invoices) == 0 {
		fmt.Printf("No se encontraron facturas en %s\n", *dir)
		return
	}
	logger.Info("batch.parse.done",
		"run_id", runID,
		"files", len(invoices),
		"scanned", stats.Scanned,
		"matched", stats.Matched,
	)

	if *dryRun {
		if err := batch.WriteSummary(os.Stdout, invoices); err != nil {
			printError("Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	switch {
	case *sqlFile != "":
		var opts []resolver.Option
		if *sku {
			opts = append(opts, resolver.WithSKUProducts())
		}
		script := emitter.NewScript(resolver.New(opts...), policy)
		if err := script.AppendFile(*sqlFile, invoices, time.Now()); err != nil {
			logger.Error("batch.emit.failed", "file", *sqlFile, "err", err)
			os.Exit(1)
		}
		logger.Info("batch.emit.ok", "file", *sqlFile, "tickets", len(invoices))
		fmt.Printf("Script SQL escrito en %s\n", *sqlFile)

	case *out != "":
		xlsx, err := export.TicketsXLSX(invoices, logger)
		if err != nil {
			logger.Error("batch.export.failed", "err", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*out, xlsx, 0o644); err != nil {
			logger.Error("batch.export.failed", "file", *out, "err", err)
			os.Exit(1)
		}
		logger.Info("batch.export.ok", "file", *out, "tickets", len(invoices))
		fmt.Printf("Resumen XLSX escrito en %s\n", *out)

	default:
		dsn := cfg.ArchiveDSN()
		if cfg.Database.DSN == "" {
			dsn = *dbFile
		}
		store, err := archive.Open(ctx, dsn, logger)
		if err != nil {
			logger.Error("batch.archive.failed", "err", err)
			os.Exit(1)
		}
		defer store.Close()

		if err := store.EnsureSchema(ctx); err != nil {
			logger.Error("batch.archive.failed", "err", err)
			os.Exit(1)
		}
		for i := range invoices {
			id, err := store.InsertInvoice(ctx, runID, &invoices[i])
			if err != nil {
				logger.Error("batch.archive.failed", "file", invoices[i].SourceFile, "err", err)
				os.Exit(1)
			}
			logger.Debug("batch.archive.ok", "id", id, "file", invoices[i].SourceFile)
		}
		fmt.Printf("Insertadas %d facturas en %s\n", len(invoices), dsn)
	}
}
