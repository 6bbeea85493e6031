package entity

// Invoice is one parsed receipt for data transfer between layers.
// Text fields default to "" and amounts to 0 when a pattern did not match;
// the parser never fails on a missing field.
type Invoice struct {
	SourceFile    string     `json:"source_file"`
	StoreName     string     `json:"store_name"`
	Address       string     `json:"address"`
	TaxID         string     `json:"tax_id"`
	Phone         string     `json:"phone,omitempty"`
	Date          string     `json:"date"`
	Time          string     `json:"time"`
	Cashier       string     `json:"cashier"`
	CashierCode   string     `json:"cashier_code"`
	CashierName   string     `json:"cashier_name"`
	TicketNumber  string     `json:"ticket_number"`
	Items         []LineItem `json:"items"`
	Subtotal      float64    `json:"subtotal"`
	Tax           float64    `json:"tax"`
	Total         float64    `json:"total"`
	PaymentMethod string     `json:"payment_method"`
	Authorization string     `json:"authorization"`
	RawText       string     `json:"-"`
}

// LineItem is one purchased item parsed from the item block.
type LineItem struct {
	Quantity    float64 `json:"quantity"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	// Unit is the parenthesized unit label embedded in the description
	// (e.g. "500g" from "Pan integral (500g)"), empty when absent.
	Unit string `json:"unit,omitempty"`
}

// HasPayment reports whether any payment-related field was extracted.
// The emitter only writes a pago row when this is true.
func (inv *Invoice) HasPayment() bool {
	return inv.PaymentMethod != "" || inv.Authorization != "" || inv.Total != 0
}
