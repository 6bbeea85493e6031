package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = `Tienda Central
Calle Mayor 1
28001 Madrid
Tel: 912345678
CIF: B12345678

Fecha: 05/03/2024 Hora: 14:32
Cajero: 007 - Ana Ruiz
Ticket: T-0001

CANT DESCRIPCION                IMPORTE
2 Pan integral (500g) 3,50€
1 Leche entera 1,20€
nota sin importe
SUBTOTAL 4,70€
IVA (21%) 0,99€
TOTAL A PAGAR 4,70€
FORMA DE PAGO: Tarjeta
Autorización: A1B2C3
`

func TestParseRoundTrip(t *testing.T) {
	inv := New(nil).Parse(fixture, "factura_0001.txt")

	assert.Equal(t, "factura_0001.txt", inv.SourceFile)
	assert.Equal(t, "Tienda Central", inv.StoreName)
	assert.Equal(t, "Calle Mayor 1 28001 Madrid Tel: 912345678 CIF: B12345678", inv.Address)
	assert.Equal(t, "B12345678", inv.TaxID)
	assert.Equal(t, "912345678", inv.Phone)
	assert.Equal(t, "05/03/2024", inv.Date)
	assert.Equal(t, "14:32", inv.Time)
	assert.Equal(t, "007 - Ana Ruiz", inv.Cashier)
	assert.Equal(t, "007", inv.CashierCode)
	assert.Equal(t, "Ana Ruiz", inv.CashierName)
	assert.Equal(t, "T-0001", inv.TicketNumber)
	assert.Equal(t, "Tarjeta", inv.PaymentMethod)
	assert.Equal(t, "A1B2C3", inv.Authorization)
	assert.InDelta(t, 4.70, inv.Subtotal, 1e-9)
	assert.InDelta(t, 0.99, inv.Tax, 1e-9)
	assert.InDelta(t, 4.70, inv.Total, 1e-9)

	require.Len(t, inv.Items, 2)
	assert.InDelta(t, 2.0, inv.Items[0].Quantity, 1e-9)
	assert.Equal(t, "Pan integral (500g)", inv.Items[0].Description)
	assert.InDelta(t, 3.50, inv.Items[0].Amount, 1e-9)
	assert.Equal(t, "500g", inv.Items[0].Unit)
	assert.Equal(t, "Leche entera", inv.Items[1].Description)
	assert.Empty(t, inv.Items[1].Unit)
}

func TestParseMalformedLineIsDropped(t *testing.T) {
	inv := New(nil).Parse(fixture, "f.txt")
	// "nota sin importe" has no trailing amount-with-euro marker and must
	// not displace its siblings.
	require.Len(t, inv.Items, 2)
}

func TestParseMissingFieldsDefault(t *testing.T) {
	inv := New(nil).Parse("Solo Tienda\n", "f.txt")

	assert.Equal(t, "Solo Tienda", inv.StoreName)
	assert.Empty(t, inv.Address)
	assert.Empty(t, inv.TaxID)
	assert.Empty(t, inv.Date)
	assert.Empty(t, inv.Time)
	assert.Empty(t, inv.TicketNumber)
	assert.Zero(t, inv.Subtotal)
	assert.Zero(t, inv.Tax)
	assert.Zero(t, inv.Total)
	assert.Empty(t, inv.Items)
}

func TestParseNoItemHeader(t *testing.T) {
	text := "Tienda\n\n2 Pan 3,50€\nSUBTOTAL 3,50€\n"
	inv := New(nil).Parse(text, "f.txt")
	assert.Empty(t, inv.Items, "no header means no item block")
}

func TestParseItemBlockEndsAtSeparator(t *testing.T) {
	text := `Tienda
CANT DESCRIPCION
1 Agua 0,50€
----------
1 Fuera del bloque 9,99€
TOTAL A PAGAR 0,50€
`
	inv := New(nil).Parse(text, "f.txt")
	require.Len(t, inv.Items, 1)
	assert.Equal(t, "Agua", inv.Items[0].Description)
}

func TestParseDateRequiresTime(t *testing.T) {
	text := "Tienda\nFecha: 05/03/2024\n"
	inv := New(nil).Parse(text, "f.txt")
	assert.Empty(t, inv.Date, "date without time must not match")
	assert.Empty(t, inv.Time)
}

func TestParseCashierWithoutCode(t *testing.T) {
	text := "Tienda\nCajero: Ana Ruiz\n"
	inv := New(nil).Parse(text, "f.txt")
	assert.Empty(t, inv.CashierCode)
	assert.Equal(t, "Ana Ruiz", inv.CashierName)
}
