package render

import (
	"bytes"
	"testing"

	"privat-rates/internal/entity"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResultSet() entity.ResultSet {
	return entity.ResultSet{
		{Date: "17.10.2026", Rates: entity.DailyRates{
			entity.USD: {Sale: decimal.RequireFromString("41.25"), Purchase: decimal.RequireFromString("40.8")},
			entity.EUR: {Sale: decimal.RequireFromString("40.0"), Purchase: decimal.RequireFromString("39.5")},
		}},
		{Date: "18.10.2026", Rates: entity.DailyRates{}},
	}
}

func TestText(t *testing.T) {
	expected := "[{'17.10.2026': {'EUR': {'sale': 40.0, 'purchase': 39.5}, 'USD': {'sale': 41.25, 'purchase': 40.8}}}, {'18.10.2026': {}}]"
	assert.Equal(t, expected, Text(sampleResultSet()))
}

func TestText_Empty(t *testing.T) {
	assert.Equal(t, "[]", Text(nil))
}

func TestWrite_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatText, sampleResultSet()))
	assert.Equal(t, Text(sampleResultSet())+"\n", buf.String())
}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, sampleResultSet()))
	assert.JSONEq(t, `[
		{"17.10.2026": {"EUR": {"sale": 40, "purchase": 39.5}, "USD": {"sale": 41.25, "purchase": 40.8}}},
		{"18.10.2026": {}}
	]`, buf.String())
}

func TestWrite_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, "yaml", sampleResultSet())
	assert.ErrorContains(t, err, `unknown output format "yaml"`)
	assert.Empty(t, buf.String())
}

func TestValidFormat(t *testing.T) {
	assert.True(t, ValidFormat(FormatText))
	assert.True(t, ValidFormat(FormatJSON))
	assert.False(t, ValidFormat("xml"))
}
