// Package export produces an XLSX workbook summarizing one parsed batch,
// one row per ticket, for review outside the database.
package export

import (
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/mgomezmartin/ticketera/internal/entity"
)

const sheet = "Tickets"

var headers = []string{
	"Archivo",
	"Ticket",
	"Fecha",
	"Hora",
	"Tienda",
	"Cajero",
	"Articulos",
	"Subtotal",
	"IVA",
	"Total",
	"Forma de pago",
}

// TicketsXLSX renders the batch as workbook bytes.
func TicketsXLSX(invoices []entity.Invoice, logger *slog.Logger) ([]byte, error) {
	if logger == nil {
		logger = slog.Default()
	}

	f := excelize.NewFile()
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	row := 2
	for i := range invoices {
		inv := &invoices[i]
		values := []any{
			inv.SourceFile,
			inv.TicketNumber,
			inv.Date,
			inv.Time,
			inv.StoreName,
			inv.Cashier,
			len(inv.Items),
			inv.Subtotal,
			inv.Tax,
			inv.Total,
			inv.PaymentMethod,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
		row++
	}

	// Drop the default sheet so the workbook opens on Tickets.
	if idx, _ := f.GetSheetIndex("Sheet1"); idx != -1 {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	logger.Info("export.xlsx.ok", "tickets", len(invoices))
	return buf.Bytes(), nil
}
