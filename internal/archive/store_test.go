package archive

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mgomezmartin/ticketera/internal/entity"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(context.Background(), ":memory:", nil)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	require.NoError(t, store.EnsureSchema(context.Background()))
	return store
}

func TestIsPostgresDSN(t *testing.T) {
	assert.True(t, IsPostgresDSN("postgres://user@localhost/db"))
	assert.True(t, IsPostgresDSN("postgresql://user@localhost/db"))
	assert.False(t, IsPostgresDSN("facturas.db"))
	assert.False(t, IsPostgresDSN(":memory:"))
}

func TestInsertInvoiceRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	batchID := uuid.New()

	inv := entity.Invoice{
		SourceFile:    "factura_001.txt",
		StoreName:     "Tienda Central",
		Address:       "Calle Mayor 1 28001 Madrid",
		TaxID:         "B12345678",
		Date:          "02/05/2024",
		Time:          "18:45",
		Cashier:       "007 - Ana Ruiz",
		TicketNumber:  "T-0001",
		Subtotal:      4.70,
		Tax:           0.99,
		Total:         4.70,
		PaymentMethod: "Tarjeta",
		RawText:       "FACTURA ...",
		Items: []entity.LineItem{
			{Quantity: 2, Description: "Pan integral", Amount: 2.40},
			{Quantity: 1, Description: "Leche entera", Unit: "1L", Amount: 2.30},
		},
	}

	id, err := store.InsertInvoice(ctx, batchID, &inv)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	var row struct {
		Lote   string  `db:"lote"`
		Tienda string  `db:"tienda"`
		Ticket string  `db:"ticket"`
		Total  float64 `db:"total"`
	}
	require.NoError(t, store.DB().Get(&row,
		"SELECT lote, tienda, ticket, total FROM invoices WHERE id = ?", id))
	assert.Equal(t, batchID.String(), row.Lote)
	assert.Equal(t, "Tienda Central", row.Tienda)
	assert.Equal(t, "T-0001", row.Ticket)
	assert.InDelta(t, 4.70, row.Total, 0.001)

	var descriptions []string
	require.NoError(t, store.DB().Select(&descriptions,
		"SELECT descripcion FROM items WHERE invoice_id = ? ORDER BY id", id))
	assert.Equal(t, []string{"Pan integral", "Leche entera"}, descriptions)
}

func TestCounts(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	invoices, items, err := store.Counts(ctx)
	require.NoError(t, err)
	assert.Zero(t, invoices)
	assert.Zero(t, items)

	batchID := uuid.New()
	for _, ticket := range []string{"T-0001", "T-0002"} {
		inv := entity.Invoice{
			TicketNumber: ticket,
			Items:        []entity.LineItem{{Quantity: 1, Description: "Pan", Amount: 1.20}},
		}
		_, err := store.InsertInvoice(ctx, batchID, &inv)
		require.NoError(t, err)
	}

	invoices, items, err = store.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), invoices)
	assert.Equal(t, int64(2), items)
}

func TestEnsureSchemaIsIdempotent(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.EnsureSchema(context.Background()))
}
