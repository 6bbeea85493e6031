package rules

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ruleFile mirrors the JSON override document.
type ruleFile struct {
	Fields   map[string]string `json:"fields"`
	DateTime string            `json:"date_time"`
	Items    *itemRules        `json:"items"`
}

type itemRules struct {
	Line              string   `json:"line"`
	QuantityMarker    string   `json:"quantity_marker"`
	DescriptionMarker string   `json:"description_marker"`
	FooterMarkers     []string `json:"footer_markers"`
}

// buildRulesSchema returns the JSON-Schema for rule override files as a
// generic map. Validated locally before any pattern is compiled.
func buildRulesSchema() map[string]any {
	pattern := map[string]any{"type": "string", "minLength": 1}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"fields": map[string]any{
				"type": "object",
				"additionalProperties": false,
				"properties": map[string]any{
					FieldTaxID:         pattern,
					FieldPhone:         pattern,
					FieldCashier:       pattern,
					FieldTicketNumber:  pattern,
					FieldPaymentMethod: pattern,
					FieldAuthorization: pattern,
					FieldSubtotal:      pattern,
					FieldTax:           pattern,
					FieldTotal:         pattern,
				},
			},
			"date_time": pattern,
			"items": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"properties": map[string]any{
					"line":               pattern,
					"quantity_marker":    pattern,
					"description_marker": pattern,
					"footer_markers": map[string]any{
						"type":     "array",
						"items":    pattern,
						"minItems": 1,
					},
				},
			},
		},
	}
}

func validateAgainstSchema(raw []byte) error {
	b, err := json.Marshal(buildRulesSchema())
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("rules.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("rules.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("unmarshal rules: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("rules file does not match schema: %w", err)
	}
	return nil
}

// Parse validates and applies a JSON rule override on top of Default().
func Parse(raw []byte) (*RuleSet, error) {
	if err := validateAgainstSchema(raw); err != nil {
		return nil, err
	}

	var rf ruleFile
	if err := json.Unmarshal(raw, &rf); err != nil {
		return nil, fmt.Errorf("decode rules: %w", err)
	}

	rs := Default()
	for name, pat := range rf.Fields {
		re, err := compileField(name, pat, 1)
		if err != nil {
			return nil, err
		}
		rs.Fields[name] = re
	}
	if rf.DateTime != "" {
		re, err := compileField("date_time", rf.DateTime, 2)
		if err != nil {
			return nil, err
		}
		rs.DateTime = re
	}
	if rf.Items != nil {
		if rf.Items.Line != "" {
			re, err := compileField("items.line", rf.Items.Line, 3)
			if err != nil {
				return nil, err
			}
			rs.ItemLine = re
		}
		if rf.Items.QuantityMarker != "" {
			rs.QuantityMarker = rf.Items.QuantityMarker
		}
		if rf.Items.DescriptionMarker != "" {
			rs.DescriptionMarker = rf.Items.DescriptionMarker
		}
		if len(rf.Items.FooterMarkers) > 0 {
			rs.FooterMarkers = rf.Items.FooterMarkers
		}
	}
	return rs, nil
}
