package emitter

import (
	"fmt"
	"strconv"
	"strings"
)

// Literal is a fully rendered SQL value. Statement shape (table, columns,
// ordering) and value escaping are kept apart: builders accept only
// Literals, and Literals are produced only by the constructors below.
type Literal string

// Str renders a quoted string literal with embedded quotes doubled.
func Str(s string) Literal {
	return Literal("'" + strings.ReplaceAll(s, "'", "''") + "'")
}

// Num renders an amount with two decimal places.
func Num(f float64) Literal {
	return Literal(fmt.Sprintf("%.2f", f))
}

// UnitPrice renders a unit price with four decimal places.
func UnitPrice(f float64) Literal {
	return Literal(fmt.Sprintf("%.4f", f))
}

// Int renders an integer id.
func Int(n int64) Literal {
	return Literal(strconv.FormatInt(n, 10))
}

// Null is the SQL NULL literal.
const Null = Literal("NULL")

func quoteIdent(name string) string {
	return "`" + name + "`"
}

func identList(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = quoteIdent(n)
	}
	return strings.Join(quoted, ",")
}

func literalList(values []Literal) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ",")
}

// insert builds a plain INSERT statement.
func insert(table string, columns []string, values []Literal) string {
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s);",
		quoteIdent(table), identList(columns), literalList(values))
}

// match is one column/value equality predicate of a natural key.
type match struct {
	column string
	value  Literal
}

// insertUnless builds an insert guarded by the absence of a row in
// guardTable satisfying every match predicate. With guardTable == table and
// the natural key as predicates this is the insert-if-absent pattern.
func insertUnless(table string, columns []string, values []Literal, guardTable string, matches []match) string {
	preds := make([]string, len(matches))
	for i, m := range matches {
		preds[i] = quoteIdent(m.column) + "=" + string(m.value)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) SELECT %s FROM DUAL WHERE NOT EXISTS (SELECT 1 FROM %s WHERE %s);",
		quoteIdent(table), identList(columns), literalList(values),
		quoteIdent(guardTable), strings.Join(preds, " AND "))
}

// insertIfAbsent is insertUnless keyed on the target table itself.
func insertIfAbsent(table string, columns []string, values []Literal, matches []match) string {
	return insertUnless(table, columns, values, table, matches)
}
