// Package emitter turns a batch of parsed invoices plus resolver state into
// load artifacts. The script emitter writes a dependency-ordered, idempotent
// MySQL script over the normalized schema; identifiers always come from the
// resolver, never from the emitter itself.
package emitter

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mgomezmartin/ticketera/internal/entity"
	"github.com/mgomezmartin/ticketera/internal/resolver"
)

// TicketPolicy decides what happens when a ticket number already exists in
// the target tables across runs.
type TicketPolicy string

const (
	// TicketAppend always appends ticket rows (collisions are the caller's
	// concern).
	TicketAppend TicketPolicy = "append"
	// TicketSkip guards ticket, line and payment inserts by their natural
	// keys so re-loading an overlapping batch does not duplicate them.
	TicketSkip TicketPolicy = "skip"
)

// ParsePolicy validates a policy flag value.
func ParsePolicy(s string) (TicketPolicy, error) {
	switch TicketPolicy(s) {
	case TicketAppend, TicketSkip:
		return TicketPolicy(s), nil
	}
	return "", fmt.Errorf("unknown duplicate-ticket policy %q (want append or skip)", s)
}

// Script emits normalized, idempotent load statements for one batch.
type Script struct {
	res        *resolver.Resolver
	policy     TicketPolicy
	nextTicket int64
}

// NewScript returns a Script sharing res's key->id maps. The emitter is
// batch-scoped like the resolver and must not be reused across runs.
func NewScript(res *resolver.Resolver, policy TicketPolicy) *Script {
	if policy == "" {
		policy = TicketAppend
	}
	return &Script{res: res, policy: policy, nextTicket: 1}
}

// WriteHeader writes the per-run comment banner.
func (e *Script) WriteHeader(w io.Writer, sources []string, now time.Time) error {
	var b strings.Builder
	b.WriteString("-- ------------------------------------------------------------\n")
	b.WriteString("-- SQL generado por ticket-batch (append)\n")
	b.WriteString("-- Generado: " + now.Format("2006-01-02 15:04:05") + "\n")
	b.WriteString("-- Facturas: " + strings.Join(sources, ",") + "\n")
	b.WriteString("-- ------------------------------------------------------------\n\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteSchema writes the DROP/CREATE statements for the six normalized
// tables in dependency order. Emitted once per destination file.
func (e *Script) WriteSchema(w io.Writer) error {
	const schema = "SET NAMES utf8mb4;\n\n" +
		"DROP TABLE IF EXISTS `pago`;\n" +
		"DROP TABLE IF EXISTS `ticket_linea`;\n" +
		"DROP TABLE IF EXISTS `ticket`;\n" +
		"DROP TABLE IF EXISTS `producto`;\n" +
		"DROP TABLE IF EXISTS `empleado`;\n" +
		"DROP TABLE IF EXISTS `sucursal`;\n\n" +
		"CREATE TABLE `sucursal` (\n" +
		"  `id` INT AUTO_INCREMENT PRIMARY KEY,\n" +
		"  `nombre` VARCHAR(255),\n" +
		"  `direccion` TEXT,\n" +
		"  `cif` VARCHAR(64),\n" +
		"  `telefono` VARCHAR(32)\n" +
		") ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;\n\n" +
		"CREATE TABLE `empleado` (\n" +
		"  `id` INT AUTO_INCREMENT PRIMARY KEY,\n" +
		"  `codigo` VARCHAR(64),\n" +
		"  `nombre` VARCHAR(255),\n" +
		"  `sucursal_id` INT,\n" +
		"  FOREIGN KEY (`sucursal_id`) REFERENCES `sucursal`(`id`)\n" +
		") ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;\n\n" +
		"CREATE TABLE `producto` (\n" +
		"  `id` INT AUTO_INCREMENT PRIMARY KEY,\n" +
		"  `descripcion` TEXT,\n" +
		"  `sku` VARCHAR(16),\n" +
		"  `unidad` VARCHAR(32),\n" +
		"  `precio_unitario` DECIMAL(12,4)\n" +
		") ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;\n\n" +
		"CREATE TABLE `ticket` (\n" +
		"  `id` INT AUTO_INCREMENT PRIMARY KEY,\n" +
		"  `sucursal_id` INT,\n" +
		"  `empleado_id` INT,\n" +
		"  `fecha` VARCHAR(32),\n" +
		"  `hora` VARCHAR(16),\n" +
		"  `numero` VARCHAR(128),\n" +
		"  `subtotal` DECIMAL(12,2),\n" +
		"  `iva` DECIMAL(12,2),\n" +
		"  `total` DECIMAL(12,2),\n" +
		"  `forma_pago` VARCHAR(64),\n" +
		"  `autorizacion` VARCHAR(64),\n" +
		"  FOREIGN KEY (`sucursal_id`) REFERENCES `sucursal`(`id`),\n" +
		"  FOREIGN KEY (`empleado_id`) REFERENCES `empleado`(`id`)\n" +
		") ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;\n\n" +
		"CREATE TABLE `ticket_linea` (\n" +
		"  `id` INT AUTO_INCREMENT PRIMARY KEY,\n" +
		"  `ticket_id` INT,\n" +
		"  `producto_id` INT,\n" +
		"  `cantidad` DECIMAL(12,3),\n" +
		"  `precio_unitario` DECIMAL(12,4),\n" +
		"  `importe` DECIMAL(12,2),\n" +
		"  `linea` INT,\n" +
		"  FOREIGN KEY (`ticket_id`) REFERENCES `ticket`(`id`),\n" +
		"  FOREIGN KEY (`producto_id`) REFERENCES `producto`(`id`)\n" +
		") ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;\n\n" +
		"CREATE TABLE `pago` (\n" +
		"  `id` INT AUTO_INCREMENT PRIMARY KEY,\n" +
		"  `ticket_id` INT,\n" +
		"  `metodo` VARCHAR(64),\n" +
		"  `autorizacion` VARCHAR(64),\n" +
		"  `importe` DECIMAL(12,2),\n" +
		"  FOREIGN KEY (`ticket_id`) REFERENCES `ticket`(`id`)\n" +
		") ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;\n\n"
	_, err := io.WriteString(w, schema)
	return err
}

// WriteBatch emits the per-invoice statement blocks in batch order.
func (e *Script) WriteBatch(w io.Writer, invoices []entity.Invoice) error {
	if _, err := io.WriteString(w, "SET FOREIGN_KEY_CHECKS = 0;\n\n"); err != nil {
		return err
	}
	for i := range invoices {
		if err := e.writeInvoice(w, &invoices[i]); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "SET FOREIGN_KEY_CHECKS = 1;\n")
	return err
}

func (e *Script) writeInvoice(w io.Writer, inv *entity.Invoice) error {
	var b strings.Builder

	branchKey := resolver.BranchKey{Name: inv.StoreName, Address: inv.Address, TaxID: inv.TaxID}
	branchID, created := e.res.Branch(branchKey)
	if created {
		b.WriteString(insertIfAbsent("sucursal",
			[]string{"id", "nombre", "direccion", "cif", "telefono"},
			[]Literal{Int(branchID), Str(inv.StoreName), Str(inv.Address), Str(inv.TaxID), Str(inv.Phone)},
			[]match{
				{"nombre", Str(inv.StoreName)},
				{"direccion", Str(inv.Address)},
				{"cif", Str(inv.TaxID)},
			}) + "\n")
	}

	empKey := resolver.EmployeeKey{BranchID: branchID, Code: inv.CashierCode, Name: inv.CashierName}
	empID, created := e.res.Employee(empKey)
	if created {
		b.WriteString(insertIfAbsent("empleado",
			[]string{"id", "codigo", "nombre", "sucursal_id"},
			[]Literal{Int(empID), Str(inv.CashierCode), Str(inv.CashierName), Int(branchID)},
			[]match{
				{"codigo", Str(inv.CashierCode)},
				{"nombre", Str(inv.CashierName)},
				{"sucursal_id", Int(branchID)},
			}) + "\n")
	}

	ticketID := e.nextTicket
	e.nextTicket++
	ticketCols := []string{"id", "sucursal_id", "empleado_id", "fecha", "hora", "numero",
		"subtotal", "iva", "total", "forma_pago", "autorizacion"}
	ticketVals := []Literal{
		Int(ticketID), Int(branchID), Int(empID),
		Str(inv.Date), Str(inv.Time), Str(inv.TicketNumber),
		Num(inv.Subtotal), Num(inv.Tax), Num(inv.Total),
		Str(inv.PaymentMethod), Str(inv.Authorization),
	}
	if e.policy == TicketSkip {
		b.WriteString(insertIfAbsent("ticket", ticketCols, ticketVals,
			[]match{{"numero", Str(inv.TicketNumber)}}) + "\n")
	} else {
		b.WriteString(insert("ticket", ticketCols, ticketVals) + "\n")
	}

	for i := range inv.Items {
		item := &inv.Items[i]
		lineNo := int64(i + 1)

		productID, created := e.res.Product(item.Description)
		if created {
			b.WriteString(insertIfAbsent("producto",
				[]string{"id", "descripcion", "sku", "unidad", "precio_unitario"},
				[]Literal{Int(productID), Str(strings.TrimSpace(item.Description)),
					e.skuLiteral(item.Description), Str(item.Unit), UnitPrice(unitPrice(item))},
				[]match{{"descripcion", Str(strings.TrimSpace(item.Description))}}) + "\n")
		}

		lineCols := []string{"ticket_id", "producto_id", "cantidad", "precio_unitario", "importe", "linea"}
		lineVals := []Literal{
			Int(ticketID), Int(productID), Num(item.Quantity),
			UnitPrice(unitPrice(item)), Num(item.Amount), Int(lineNo),
		}
		if e.policy == TicketSkip {
			b.WriteString(insertUnless("ticket_linea", lineCols, lineVals, "ticket_linea",
				[]match{{"ticket_id", Int(ticketID)}, {"linea", Int(lineNo)}}) + "\n")
		} else {
			b.WriteString(insert("ticket_linea", lineCols, lineVals) + "\n")
		}
	}

	if inv.HasPayment() {
		payCols := []string{"ticket_id", "metodo", "autorizacion", "importe"}
		payVals := []Literal{Int(ticketID), Str(inv.PaymentMethod), Str(inv.Authorization), Num(inv.Total)}
		if e.policy == TicketSkip {
			b.WriteString(insertUnless("pago", payCols, payVals, "pago",
				[]match{{"ticket_id", Int(ticketID)}}) + "\n")
		} else {
			b.WriteString(insert("pago", payCols, payVals) + "\n")
		}
	}

	b.WriteString("\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func (e *Script) skuLiteral(description string) Literal {
	key := e.res.ProductKey(description)
	if key == strings.TrimSpace(description) {
		return Null
	}
	return Str(key)
}

// unitPrice is amount/quantity when the quantity is non-zero, otherwise it
// falls back to the amount.
func unitPrice(item *entity.LineItem) float64 {
	if item.Quantity != 0 {
		return item.Amount / item.Quantity
	}
	return item.Amount
}

// AppendFile appends one batch to the script at path, creating it (with the
// header and schema) when absent or empty. The schema is only ever written
// to a fresh file so repeated loads stay idempotent.
func (e *Script) AppendFile(path string, invoices []entity.Invoice, now time.Time) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open script: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat script: %w", err)
	}

	w := bufio.NewWriter(f)
	sources := make([]string, len(invoices))
	for i := range invoices {
		sources[i] = invoices[i].SourceFile
	}
	if err := e.WriteHeader(w, sources, now); err != nil {
		return err
	}
	if info.Size() == 0 {
		if err := e.WriteSchema(w); err != nil {
			return err
		}
	}
	if err := e.WriteBatch(w, invoices); err != nil {
		return err
	}
	return w.Flush()
}
