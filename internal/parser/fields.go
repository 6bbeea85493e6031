package parser

import (
	"strings"

	"github.com/mgomezmartin/ticketera/internal/entity"
	"github.com/mgomezmartin/ticketera/internal/rules"
)

// extractFields fills the scalar fields of inv from the receipt text using
// the labeled rules. Every rule is independently optional: a miss leaves
// the documented default ("" or 0) and extraction continues.
func extractFields(rs *rules.RuleSet, lines []string, joined string, inv *entity.Invoice) {
	inv.StoreName, inv.Address = headerBlock(lines, rs.AddressLines)

	inv.TaxID = rs.Field(rules.FieldTaxID, joined)
	inv.Phone = strings.TrimSpace(rs.Field(rules.FieldPhone, joined))
	inv.TicketNumber = rs.Field(rules.FieldTicketNumber, joined)
	inv.Authorization = rs.Field(rules.FieldAuthorization, joined)
	inv.PaymentMethod = strings.TrimSpace(rs.Field(rules.FieldPaymentMethod, joined))

	// Date and time must co-occur in a single combined pattern.
	if m := rs.DateTime.FindStringSubmatch(joined); m != nil {
		inv.Date = m[1]
		inv.Time = m[2]
	}

	inv.Cashier = strings.TrimSpace(rs.Field(rules.FieldCashier, joined))
	inv.CashierCode, inv.CashierName = splitCashier(inv.Cashier)

	inv.Subtotal = NormalizeNumber(rs.Field(rules.FieldSubtotal, joined))
	inv.Tax = NormalizeNumber(rs.Field(rules.FieldTax, joined))
	inv.Total = NormalizeNumber(rs.Field(rules.FieldTotal, joined))
}

// headerBlock returns the store name (first non-empty line, trimmed) and the
// address: the non-empty lines among the addressLines lines that follow it,
// space-joined.
func headerBlock(lines []string, addressLines int) (store, address string) {
	start := -1
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			store = strings.TrimSpace(line)
			start = i
			break
		}
	}
	if start < 0 {
		return "", ""
	}

	var parts []string
	for i := start + 1; i <= start+addressLines && i < len(lines); i++ {
		if s := strings.TrimSpace(lines[i]); s != "" {
			parts = append(parts, s)
		}
	}
	return store, strings.Join(parts, " ")
}

// splitCashier splits "007 - Ana Ruiz" into code and name. Without a hyphen
// delimiter the whole text is the name and the code stays empty.
func splitCashier(cashier string) (code, name string) {
	if cashier == "" {
		return "", ""
	}
	before, after, found := strings.Cut(cashier, "-")
	if !found {
		return "", cashier
	}
	return strings.TrimSpace(before), strings.TrimSpace(after)
}
