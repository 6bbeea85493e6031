package parser

import (
	"strings"

	"github.com/mgomezmartin/ticketera/internal/entity"
	"github.com/mgomezmartin/ticketera/internal/rules"
)

// extractItems isolates the item block and parses each line inside it.
// The header is the line containing both the quantity marker and the
// description marker (the latter case-insensitively); the footer is the
// first following line with a footer marker or a dashed separator. Lines
// that do not match the item shape are dropped silently.
func extractItems(rs *rules.RuleSet, lines []string) []entity.LineItem {
	start := -1
	for i, line := range lines {
		upper := strings.ToUpper(line)
		if strings.Contains(line, rs.QuantityMarker) &&
			strings.Contains(upper, strings.ToUpper(rs.DescriptionMarker)) {
			start = i + 1
			break
		}
	}
	if start < 0 {
		return nil
	}

	end := len(lines)
	for i := start; i < len(lines); i++ {
		if isFooter(rs, lines[i]) {
			end = i
			break
		}
	}

	var items []entity.LineItem
	for _, line := range lines[start:end] {
		m := rs.ItemLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		desc := strings.TrimSpace(m[2])
		item := entity.LineItem{
			Quantity:    NormalizeNumber(m[1]),
			Description: desc,
			Amount:      NormalizeNumber(m[3]),
		}
		if um := rs.UnitLabel.FindStringSubmatch(desc); um != nil {
			item.Unit = strings.TrimSpace(um[1])
		}
		items = append(items, item)
	}
	return items
}

func isFooter(rs *rules.RuleSet, line string) bool {
	upper := strings.ToUpper(line)
	for _, marker := range rs.FooterMarkers {
		if strings.Contains(upper, strings.ToUpper(marker)) {
			return true
		}
	}
	return rs.Separator.MatchString(line)
}
