// Package sqlrun executes a finished SQL script against a live database,
// statement by statement. Unlike the batch core, a failed statement does not
// abort the run: it is logged, counted, and the runner moves on.
package sqlrun

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Result aggregates one script run.
type Result struct {
	Executed int
	Failed   int
}

// SplitStatements splits a script on ';', stripping comment-only lines and
// blank fragments. It assumes no stored-procedure delimiters in the script,
// which holds for everything the emitter produces.
func SplitStatements(script string) []string {
	raw := strings.Split(script, ";")
	statements := make([]string, 0, len(raw))
	for _, frag := range raw {
		var kept []string
		for _, line := range strings.Split(frag, "\n") {
			if strings.HasPrefix(strings.TrimSpace(line), "--") {
				continue
			}
			kept = append(kept, strings.TrimRight(line, " \t\r"))
		}
		stmt := strings.TrimSpace(strings.Join(kept, "\n"))
		if stmt != "" {
			statements = append(statements, stmt)
		}
	}
	return statements
}

// Runner executes statements over one connection.
type Runner struct {
	DB      *sqlx.DB
	Logger  *slog.Logger
	Verbose bool
}

// Open connects to the target database: pgx for Postgres DSNs, the pure-Go
// sqlite driver for file paths.
func Open(ctx context.Context, dsn string, logger *slog.Logger) (*sqlx.DB, error) {
	driver := "sqlite"
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		driver = "pgx"
	}
	db, err := sqlx.ConnectContext(ctx, driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", driver, err)
	}
	if driver == "sqlite" {
		db.SetMaxOpenConns(1)
	}
	return db, nil
}

// Run executes every statement in order, continuing past individual
// failures, and returns the success/failure tally.
func (r *Runner) Run(ctx context.Context, statements []string) Result {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var res Result
	for i, stmt := range statements {
		if r.Verbose {
			head := strings.ReplaceAll(stmt, "\n", " ")
			if len(head) > 200 {
				head = head[:200]
			}
			logger.Info("sqlrun.exec", "statement", i+1, "total", len(statements), "head", head)
		}
		if _, err := r.DB.ExecContext(ctx, stmt); err != nil {
			res.Failed++
			logger.Error("sqlrun.exec.failed", "statement", i+1, "err", err)
			continue
		}
		res.Executed++
	}
	logger.Info("sqlrun.done", "executed", res.Executed, "failed", res.Failed)
	return res
}
