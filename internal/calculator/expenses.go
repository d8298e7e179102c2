package calculator

// ExpenseInput holds the raw monthly figures a user submits.
type ExpenseInput struct {
	Ingreso      float64
	ArriendoHipo float64
	Services     float64
	Alimentacion float64
	Transporte   float64
	Otros        float64
}

// ExpenseTotals are the fields derived from an ExpenseInput.
type ExpenseTotals struct {
	TotalGastos float64
	Disponible  float64
}

// ComputeExpenseSummary sums the five expense categories and subtracts them
// from the income. Disponible is negative when expenses exceed income.
// A result that overflows float64 is reported as 0.
func ComputeExpenseSummary(in ExpenseInput) ExpenseTotals {
	total := in.ArriendoHipo + in.Services + in.Alimentacion + in.Transporte + in.Otros
	return ExpenseTotals{
		TotalGastos: finite(total),
		Disponible:  finite(in.Ingreso - total),
	}
}
