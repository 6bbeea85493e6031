// Package archive is the lightweight two-table invoice store: one parent row
// per receipt plus one child row per surviving line item, appended fresh on
// every run. It is meant for quick archival, not reporting; the normalized
// schema lives in the emitter's script output.
package archive

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/mgomezmartin/ticketera/internal/entity"
)

// Store wraps the archive database connection.
type Store struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// IsPostgresDSN reports whether dsn addresses a PostgreSQL server; anything
// else is treated as a SQLite file path (":memory:" included).
func IsPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// Open connects to the archive database. Postgres DSNs go through the pgx
// stdlib driver, everything else through the pure-Go sqlite driver.
func Open(ctx context.Context, dsn string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	driver := "sqlite"
	if IsPostgresDSN(dsn) {
		driver = "pgx"
	}
	logger.Info("archive.open", "driver", driver)
	db, err := sqlx.ConnectContext(ctx, driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect archive db: %w", err)
	}
	if driver == "sqlite" {
		// modernc's in-memory databases are per-connection.
		db.SetMaxOpenConns(1)
	}
	return &Store{db: db, logger: logger}, nil
}

// NewWithDB wraps an existing connection (used by tests and dbinit).
func NewWithDB(db *sqlx.DB, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{db: db, logger: logger}
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) postgres() bool {
	return s.db.DriverName() == "pgx"
}

// EnsureSchema creates the invoices and items tables when missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	serial := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if s.postgres() {
		serial = "BIGSERIAL PRIMARY KEY"
	}

	invoices := fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS invoices (
	id %s,
	lote TEXT,
	tienda TEXT,
	direccion TEXT,
	cif TEXT,
	telefono TEXT,
	fecha TEXT,
	hora TEXT,
	cajero TEXT,
	ticket TEXT,
	subtotal REAL,
	iva REAL,
	total REAL,
	forma_pago TEXT,
	autorizacion TEXT,
	archivo TEXT,
	raw_text TEXT
)`, serial)

	items := fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS items (
	id %s,
	invoice_id BIGINT,
	cantidad REAL,
	descripcion TEXT,
	unidad TEXT,
	importe REAL,
	FOREIGN KEY(invoice_id) REFERENCES invoices(id)
)`, serial)

	for _, ddl := range []string{invoices, items} {
		if _, err := s.db.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("ensure archive schema: %w", err)
		}
	}
	return nil
}

// InsertInvoice appends one parent row with its items and returns the new
// parent id. batchID tags every row of the run for later inspection.
func (s *Store) InsertInvoice(ctx context.Context, batchID uuid.UUID, inv *entity.Invoice) (int64, error) {
	const insertParent = `INSERT INTO invoices
	(lote, tienda, direccion, cif, telefono, fecha, hora, cajero, ticket,
	 subtotal, iva, total, forma_pago, autorizacion, archivo, raw_text)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	args := []any{
		batchID.String(), inv.StoreName, inv.Address, inv.TaxID, inv.Phone,
		inv.Date, inv.Time, inv.Cashier, inv.TicketNumber,
		inv.Subtotal, inv.Tax, inv.Total,
		inv.PaymentMethod, inv.Authorization, inv.SourceFile, inv.RawText,
	}

	var invoiceID int64
	if s.postgres() {
		query := s.db.Rebind(insertParent + " RETURNING id")
		if err := s.db.QueryRowxContext(ctx, query, args...).Scan(&invoiceID); err != nil {
			return 0, fmt.Errorf("insert invoice: %w", err)
		}
	} else {
		res, err := s.db.ExecContext(ctx, insertParent, args...)
		if err != nil {
			return 0, fmt.Errorf("insert invoice: %w", err)
		}
		invoiceID, err = res.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("invoice id: %w", err)
		}
	}

	insertItem := s.db.Rebind(`INSERT INTO items
	(invoice_id, cantidad, descripcion, unidad, importe)
	VALUES (?, ?, ?, ?, ?)`)
	for i := range inv.Items {
		it := &inv.Items[i]
		if _, err := s.db.ExecContext(ctx, insertItem,
			invoiceID, it.Quantity, it.Description, it.Unit, it.Amount); err != nil {
			return 0, fmt.Errorf("insert item %d: %w", i+1, err)
		}
	}
	return invoiceID, nil
}

// Counts returns the parent and child row totals; used by dbinit and tests.
func (s *Store) Counts(ctx context.Context) (invoices, items int64, err error) {
	if err = s.db.GetContext(ctx, &invoices, "SELECT COUNT(*) FROM invoices"); err != nil {
		return 0, 0, fmt.Errorf("count invoices: %w", err)
	}
	if err = s.db.GetContext(ctx, &items, "SELECT COUNT(*) FROM items"); err != nil {
		return 0, 0, fmt.Errorf("count items: %w", err)
	}
	return invoices, items, nil
}

// DB exposes the underlying connection for collaborators that share the
// archive database (dbinit, the staff service in single-DB setups).
func (s *Store) DB() *sqlx.DB {
	return s.db
}
