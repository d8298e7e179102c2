package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPersonalInfoJSONIsFlat(t *testing.T) {
	info := PersonalInfo{
		ID:        "abc",
		Email:     "a@b.com",
		Timestamp: "Tue Oct 14 08:23:00 UTC 2026",
		Fields: map[string]Value{
			"nombreCompleto": StringValue("Juan Pérez"),
			"edad":           NumberValue(33),
			"activo":         BoolValue(true),
			"email":          StringValue("spoofed@x.com"),
		},
	}

	data, err := json.Marshal(info)
	require.NoError(t, err)

	var flat map[string]any
	require.NoError(t, json.Unmarshal(data, &flat))
	assert.Equal(t, "abc", flat["id"])
	assert.Equal(t, "a@b.com", flat["email"], "reserved keys come from the record, not Fields")
	assert.Equal(t, "Juan Pérez", flat["nombreCompleto"])
	assert.Equal(t, float64(33), flat["edad"])
	assert.Equal(t, true, flat["activo"])
}

func TestPersonalInfoUnmarshalSkipsNonScalars(t *testing.T) {
	var info PersonalInfo
	err := json.Unmarshal([]byte(`{
		"id": "1", "email": "a@b.com", "timestamp": "now",
		"edad": 40, "nacionalidad": "Colombiana",
		"hijos": [1, 2], "direccion": {"calle": "x"}, "notas": null
	}`), &info)
	require.NoError(t, err)

	assert.Equal(t, "1", info.ID)
	assert.Equal(t, "a@b.com", info.Email)
	assert.Len(t, info.Fields, 2)
	assert.Equal(t, IntValue(40), info.Fields["edad"])
	assert.Equal(t, StringValue("Colombiana"), info.Fields["nacionalidad"])
}

func TestValueOf(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want Value
	}{
		{"string", "Ana", StringValue("Ana")},
		{"bool", true, BoolValue(true)},
		{"float", 1.5, NumberValue(1.5)},
		{"int", 7, IntValue(7)},
		{"integer json number", json.Number("12345678"), IntValue(12345678)},
		{"integer beyond 2^53", json.Number("9007199254740993"), IntValue(9007199254740993)},
		{"fractional json number", json.Number("2.25"), NumberValue(2.25)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := ValueOf(tt.raw)
			require.True(t, ok)
			assert.Equal(t, tt.want, v)
		})
	}

	for _, raw := range []any{nil, []any{"x"}, map[string]any{}, json.Number("1e400")} {
		_, ok := ValueOf(raw)
		assert.False(t, ok, "%#v", raw)
	}

	var bad Value
	assert.ErrorIs(t, bad.UnmarshalJSON([]byte(`{"a":1}`)), ErrUnsupportedValue)
}

func TestLargeIntegerRoundTrip(t *testing.T) {
	var info PersonalInfo
	require.NoError(t, json.Unmarshal([]byte(`{"id":"1","documento":9007199254740993}`), &info))
	assert.Equal(t, IntValue(9007199254740993), info.Fields["documento"])

	data, err := json.Marshal(info)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"documento":9007199254740993`)
}

func TestExpenseSummaryValuesOrder(t *testing.T) {
	s := ExpenseSummary{ArriendoHipo: 1, Services: 2, Alimentacion: 3, Transporte: 4, Otros: 5}
	assert.Equal(t, []float64{1, 2, 3, 4, 5}, s.Values())
	assert.Len(t, ExpenseCategories, len(s.Values()))
}

func TestFinancialRecordUnmarshalLabel(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"stored label", `{"id":"1","fuenteIngreso":"Salario"}`, "Salario"},
		{"empty label is kept", `{"id":"1","fuenteIngreso":""}`, ""},
		{"missing label", `{"id":"1"}`, DefaultIncomeSource},
		{"null label", `{"id":"1","fuenteIngreso":null}`, DefaultIncomeSource},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec FinancialRecord
			require.NoError(t, json.Unmarshal([]byte(tt.data), &rec))
			assert.Equal(t, "1", rec.ID)
			assert.Equal(t, tt.want, rec.FuenteIngreso)
		})
	}
}
