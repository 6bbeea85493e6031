// Package batch coordinates one run over a directory of receipts: list the
// matching files in name order, parse each one, and hand the ordered batch
// to whichever output was requested.
package batch

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/mgomezmartin/ticketera/internal/entity"
	"github.com/mgomezmartin/ticketera/internal/ingest"
	"github.com/mgomezmartin/ticketera/internal/parser"
)

// Processor parses all receipts of one directory scan.
type Processor struct {
	Logger *slog.Logger
	Parser *parser.Parser
}

func NewProcessor(logger *slog.Logger, p *parser.Parser) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	if p == nil {
		p = parser.New(nil)
	}
	return &Processor{Logger: logger, Parser: p}
}

// ParseDirectory reads and parses every matching file, in name order. An
// unreadable file aborts the whole batch; per-field extraction misses do
// not. Zero matches returns an empty slice, not an error.
func (p *Processor) ParseDirectory(dir, pattern string) ([]entity.Invoice, ingest.DirStats, error) {
	files, stats, err := ingest.ListFiles(dir, pattern)
	if err != nil {
		p.Logger.Error("batch.scan.failed", "dir", dir, "err", err)
		return nil, stats, err
	}
	p.Logger.Info("batch.scan.ok",
		"dir", dir,
		"scanned", stats.Scanned,
		"matched", stats.Matched,
		"skipped", stats.Skipped,
	)

	invoices := make([]entity.Invoice, 0, len(files))
	for _, path := range files {
		text, err := ingest.ReadFile(path)
		if err != nil {
			p.Logger.Error("batch.parse.failed", "file", path, "err", err)
			return nil, stats, err
		}
		inv := p.Parser.Parse(text, filepath.Base(path))
		p.Logger.Debug("batch.parse.ok",
			"file", inv.SourceFile,
			"ticket", inv.TicketNumber,
			"items", len(inv.Items),
		)
		invoices = append(invoices, inv)
	}
	return invoices, stats, nil
}

// WriteSummary prints the dry-run report: one line per file with the fields
// a human needs to sanity-check extraction before committing to a write.
func WriteSummary(w io.Writer, invoices []entity.Invoice) error {
	if _, err := fmt.Fprintln(w, "Resumen (dry-run):"); err != nil {
		return err
	}
	for i := range invoices {
		inv := &invoices[i]
		if _, err := fmt.Fprintf(w, "%s: ticket=%s fecha=%s total=%.2f items=%d\n",
			inv.SourceFile, inv.TicketNumber, inv.Date, inv.Total, len(inv.Items)); err != nil {
			return err
		}
	}
	return nil
}
