package parser

import (
	"strconv"
	"strings"
)

// NormalizeNumber converts a locale-ambiguous decimal string to a float64.
// A comma, when present, is the decimal separator and any periods are
// thousands separators ("1.234,56" -> 1234.56). Without a comma, multiple
// periods are thousands separators and are stripped. Extraction is
// best-effort: anything unparsable yields 0.
func NormalizeNumber(s string) float64 {
	s = strings.TrimSpace(s)
	switch {
	case strings.Contains(s, ","):
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	case strings.Count(s, ".") > 1:
		s = strings.ReplaceAll(s, ".", "")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
