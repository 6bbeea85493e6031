package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultFieldRules(t *testing.T) {
	rs := Default()

	assert.Equal(t, "B12345678", rs.Field(FieldTaxID, "CIF: B12345678"))
	assert.Equal(t, "T-42", rs.Field(FieldTicketNumber, "Ticket: T-42"))
	assert.Equal(t, "A1B2", rs.Field(FieldAuthorization, "Autorización: A1B2"))
	assert.Equal(t, "A1B2", rs.Field(FieldAuthorization, "Autorizacion: A1B2"))
	assert.Empty(t, rs.Field(FieldTaxID, "sin etiqueta"))
	assert.Empty(t, rs.Field("unknown_rule", "CIF: X"))
}

func TestParseOverride(t *testing.T) {
	raw := []byte(`{
		"fields": {"ticket_number": "N[uú]m\\.?:\\s*(\\S+)"},
		"items": {"quantity_marker": "UDS", "footer_markers": ["IMPORTE TOTAL"]}
	}`)
	rs, err := Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, "77", rs.Field(FieldTicketNumber, "Núm: 77"))
	assert.Equal(t, "UDS", rs.QuantityMarker)
	assert.Equal(t, []string{"IMPORTE TOTAL"}, rs.FooterMarkers)
	// untouched rules keep their defaults
	assert.Equal(t, "B1", rs.Field(FieldTaxID, "CIF: B1"))
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte(`{"patterns": {}}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema")
}

func TestParseRejectsUnknownField(t *testing.T) {
	_, err := Parse([]byte(`{"fields": {"no_such_field": "x(.)"}}`))
	require.Error(t, err)
}

func TestParseRejectsMissingCaptureGroup(t *testing.T) {
	_, err := Parse([]byte(`{"fields": {"ticket_number": "Ticket: \\S+"}}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "capture group")
}

func TestParseRejectsBadRegex(t *testing.T) {
	_, err := Parse([]byte(`{"date_time": "([0-9]+"}`))
	require.Error(t, err)
}

func TestParseRejectsNonJSON(t *testing.T) {
	_, err := Parse([]byte(`not json`))
	require.Error(t, err)
}
