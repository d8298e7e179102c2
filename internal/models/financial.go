package models

import "encoding/json"

// DefaultIncomeSource is stored when a submission names no income source.
const DefaultIncomeSource = "No especificado"

// ExpenseCategories are the chart labels of the five expense fields, in the
// order of ExpenseSummary.Values.
var ExpenseCategories = []string{
	"Arriendo/Hipoteca",
	"Servicios",
	"Alimentación",
	"Transporte",
	"Otros",
}

// ExpenseSummary holds the submitted figures and the derived totals.
type ExpenseSummary struct {
	Ingreso      float64 `json:"ingreso"`
	ArriendoHipo float64 `json:"arriendoHipo"`
	Services     float64 `json:"services"`
	Alimentacion float64 `json:"alimentacion"`
	Transporte   float64 `json:"transporte"`
	Otros        float64 `json:"otros"`

	// TotalGastos is the sum of the five expense categories.
	TotalGastos float64 `json:"totalGastos"`

	// Disponible is Ingreso minus TotalGastos; negative when overspent.
	Disponible float64 `json:"disponible"`
}

// Values returns the expense categories in ExpenseCategories order.
func (s ExpenseSummary) Values() []float64 {
	return []float64{s.ArriendoHipo, s.Services, s.Alimentacion, s.Transporte, s.Otros}
}

// FinancialRecord is the single financial snapshot kept per identity.
// Saving again for the same Email rewrites Timestamp, FuenteIngreso and Gastos
// in place and keeps the ID.
type FinancialRecord struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	Timestamp     string `json:"timestamp"`
	FuenteIngreso string `json:"fuenteIngreso"`

	// Gastos is nil only for malformed legacy entries.
	Gastos *ExpenseSummary `json:"gastos,omitempty"`
}

func (f *FinancialRecord) GetID() string { return f.ID }
func (f *FinancialRecord) SetID(id string) { f.ID = id }

// UnmarshalJSON fills a missing or null fuenteIngreso with DefaultIncomeSource.
// An empty label is kept as is.
func (f *FinancialRecord) UnmarshalJSON(data []byte) error {
	type plain FinancialRecord
	aux := struct {
		*plain
		FuenteIngreso *string `json:"fuenteIngreso"`
	}{plain: (*plain)(f)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	f.FuenteIngreso = DefaultIncomeSource
	if aux.FuenteIngreso != nil {
		f.FuenteIngreso = *aux.FuenteIngreso
	}
	return nil
}
