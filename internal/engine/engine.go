package engine

import "github.com/Dan9191/gcare-service/internal/models"

// Calculate produces the full metrics bundle: aggregates, risk
// classification and the stressed sub-result.
func Calculate(s models.Snapshot, country models.CountryRiskProfile) models.Metrics {
	m := Aggregate(s.Profile, s.Income, s.Expenses, s.Debts, country)
	m.RiskPoints = RiskPoints(m, s.Debts, s.Profile, country)
	m.RiskLevel = LevelForPoints(m.RiskPoints)
	m.Stressed = StressTest(s.Income, s.Expenses, s.Debts)
	return m
}

// ExpenseBreakdown lists the non-zero expense categories in canonical order
func ExpenseBreakdown(expenses models.ExpenseRecord) []models.ExpenseSlice {
	out := []models.ExpenseSlice{}
	for i, v := range expenses.Amounts() {
		if v > 0 {
			out = append(out, models.ExpenseSlice{Name: models.ExpenseCategories[i].Label, Value: v})
		}
	}
	return out
}

// Compare lines up the current position against the simulated scenarios.
// Nil scenarios are skipped.
func Compare(m models.Metrics, r *models.RestructureResult, c *models.ConsolidationResult) []models.ScenarioComparison {
	rows := []models.ScenarioComparison{{
		Name:    "Current",
		Payment: m.TotalDebtPayments,
		Surplus: m.Surplus,
	}}
	if r != nil {
		rows = append(rows, models.ScenarioComparison{Name: "Restructure", Payment: r.MonthlyPayment, Surplus: r.Surplus})
	}
	if c != nil {
		rows = append(rows, models.ScenarioComparison{Name: "Consolidate", Payment: c.MonthlyPaymentWithFees, Surplus: c.Surplus})
	}
	return rows
}

// Evaluate runs every component over a snapshot. Scenarios are simulated
// only when there is at least one debt.
func Evaluate(s models.Snapshot, registry *Registry) models.Report {
	country := registry.Lookup(s.Profile.Country)
	m := Calculate(s, country)

	report := models.Report{
		Country:          country.Code,
		CountryName:      country.Name,
		Currency:         country.CurrencyCode,
		Metrics:          m,
		Recommendations:  Recommend(m, s.Debts),
		ExpenseBreakdown: ExpenseBreakdown(s.Expenses),
	}

	if len(s.Debts) > 0 {
		r := Restructure(m, s.Debts, s.ScenarioConfig)
		c := Consolidate(m, s.Debts, s.ScenarioConfig)
		report.Restructure = &r
		report.Consolidation = &c
	}
	report.Comparison = Compare(m, report.Restructure, report.Consolidation)
	return report
}
