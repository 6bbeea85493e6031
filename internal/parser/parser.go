// Package parser turns the free-form text of one point-of-sale receipt into
// a structured Invoice. Extraction is best-effort throughout: a field whose
// pattern does not match degrades to its zero default, and only an unreadable
// source file is a hard failure for the caller.
package parser

import (
	"strings"

	"github.com/mgomezmartin/ticketera/internal/entity"
	"github.com/mgomezmartin/ticketera/internal/rules"
)

// Parser applies one RuleSet to receipt texts.
type Parser struct {
	rules *rules.RuleSet
}

// New returns a Parser over rs, falling back to the default rule set when
// rs is nil.
func New(rs *rules.RuleSet) *Parser {
	if rs == nil {
		rs = rules.Default()
	}
	return &Parser{rules: rs}
}

// Parse extracts all scalar fields and line items from text and attaches
// sourceFile. It performs no I/O and never fails for recoverable issues.
func (p *Parser) Parse(text, sourceFile string) entity.Invoice {
	rawLines := strings.Split(text, "\n")
	lines := make([]string, len(rawLines))
	for i, l := range rawLines {
		lines[i] = strings.TrimRight(l, " \t\r")
	}
	joined := strings.Join(lines, "\n")

	inv := entity.Invoice{
		SourceFile: sourceFile,
		RawText:    joined,
	}
	extractFields(p.rules, lines, joined, &inv)
	inv.Items = extractItems(p.rules, lines)
	return inv
}
