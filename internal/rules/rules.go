package rules

import (
	"fmt"
	"os"
	"regexp"
)

// Field names accepted in a rule override file. Every field rule is a single
// pattern with at least one capture group; the first group is the extracted
// value. date_time is special: it needs two groups (date, then time).
const (
	FieldTaxID         = "tax_id"
	FieldPhone         = "phone"
	FieldCashier       = "cashier"
	FieldTicketNumber  = "ticket_number"
	FieldPaymentMethod = "payment_method"
	FieldAuthorization = "authorization"
	FieldSubtotal      = "subtotal"
	FieldTax           = "tax"
	FieldTotal         = "total"
)

// RuleSet holds every extraction pattern the parser applies to a receipt.
// A missing match is never an error; the parser falls back to "" or 0.
type RuleSet struct {
	// Single-capture labeled field rules, keyed by the Field* names above.
	Fields map[string]*regexp.Regexp

	// DateTime extracts date and time jointly; both must co-occur.
	DateTime *regexp.Regexp

	// ItemLine matches one item row: quantity, description, amount.
	ItemLine *regexp.Regexp

	// UnitLabel extracts a trailing parenthesized unit from a description.
	UnitLabel *regexp.Regexp

	// QuantityMarker and DescriptionMarker identify the item-block header
	// line. The quantity marker is matched verbatim, the description marker
	// case-insensitively.
	QuantityMarker    string
	DescriptionMarker string

	// FooterMarkers end the item block (case-insensitive substring match),
	// as does a line matched by Separator.
	FooterMarkers []string
	Separator     *regexp.Regexp

	// AddressLines is how many lines after the store name are inspected
	// for the address.
	AddressLines int
}

// Default returns the built-in rule set for the observed ticket format
// (Spanish POS receipts with euro amounts).
func Default() *RuleSet {
	return &RuleSet{
		Fields: map[string]*regexp.Regexp{
			FieldTaxID:         regexp.MustCompile(`CIF:\s*(\S+)`),
			FieldPhone:         regexp.MustCompile(`(?i)Tel(?:[ée]fono)?\.?:\s*([0-9][0-9 .()+-]*)`),
			FieldCashier:       regexp.MustCompile(`Cajero:\s*([^\n]+)`),
			FieldTicketNumber:  regexp.MustCompile(`Ticket:\s*(\S+)`),
			FieldPaymentMethod: regexp.MustCompile(`(?i)FORMA DE PAGO:\s*(.+)`),
			FieldAuthorization: regexp.MustCompile(`Autorizaci[oó]n:\s*(\S+)`),
			FieldSubtotal:      regexp.MustCompile(`(?i)SUBTOTAL\s+([0-9]+[.,][0-9]{2})\s*€`),
			FieldTax:           regexp.MustCompile(`(?i)IVA[^\n]*?([0-9]+[.,][0-9]{2})\s*€`),
			FieldTotal:         regexp.MustCompile(`(?i)TOTAL A PAGAR\s+([0-9]+[.,][0-9]{2})\s*€`),
		},
		DateTime: regexp.MustCompile(`Fecha:\s*([0-9]{1,2}/[0-9]{1,2}/[0-9]{4})\s*Hora:\s*([0-9]{1,2}:[0-9]{2})`),
		ItemLine: regexp.MustCompile(`^\s*([0-9]+(?:[.,][0-9]+)?)\s+(.+?)\s+([0-9]+[.,][0-9]{2})\s*€`),
		UnitLabel: regexp.MustCompile(`\(([^()]+)\)\s*$`),

		QuantityMarker:    "CANT",
		DescriptionMarker: "DESCRIP",
		FooterMarkers:     []string{"SUBTOTAL", "TOTAL A PAGAR"},
		Separator:         regexp.MustCompile(`^\s*[_\-]{3,}\s*$`),
		AddressLines:      4,
	}
}

// Field runs a single-capture field rule and returns the first capture
// group, or "" when the rule is absent or did not match.
func (rs *RuleSet) Field(name, text string) string {
	re, ok := rs.Fields[name]
	if !ok {
		return ""
	}
	m := re.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return m[1]
}

func compileField(name, pattern string, minGroups int) (*regexp.Regexp, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("rule %s: %w", name, err)
	}
	if re.NumSubexp() < minGroups {
		return nil, fmt.Errorf("rule %s: pattern needs %d capture group(s), has %d", name, minGroups, re.NumSubexp())
	}
	return re, nil
}

// Load reads a JSON rule override file, validates it against the rules
// schema, and returns Default() with the overridden patterns compiled in.
func Load(path string) (*RuleSet, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}
	return Parse(raw)
}
