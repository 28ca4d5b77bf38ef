package engine

import "github.com/Dan9191/gcare-service/internal/models"

const (
	// StressIncomeFactor scales income under the stress shock
	StressIncomeFactor = 0.8
	// StressRateShock is added to every annual rate, in percentage points
	StressRateShock = 2.0
)

// StressTest recomputes obligations with income cut by 20% and every debt
// reamortized at its rate plus two points. Expenses are not shocked.
func StressTest(income models.IncomeRecord, expenses models.ExpenseRecord, debts []models.DebtAccount) models.StressedMetrics {
	totalExpenses := expenses.Total()
	stressedIncome := income.Total() * StressIncomeFactor

	var payments float64
	for _, d := range debts {
		rate := d.Rate + StressRateShock
		if monthlyRate(rate) == 0 || d.Term <= 0 {
			// cannot reamortize, keep the stated instalment
			payments += d.Instalment
			continue
		}
		payments += PMT(d.Balance, rate, d.Term)
	}

	return models.StressedMetrics{
		Income:           stressedIncome,
		DebtPayments:     payments,
		ExpenseRatio:     percentOf(totalExpenses, stressedIncome),
		DebtServiceRatio: percentOf(payments, stressedIncome),
		Surplus:          stressedIncome - totalExpenses - payments,
	}
}
