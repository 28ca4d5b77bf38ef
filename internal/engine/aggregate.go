package engine

import "github.com/Dan9191/gcare-service/internal/models"

// percentOf returns part/whole*100, or 0 when whole is not positive
func percentOf(part, whole float64) float64 {
	if whole <= 0 {
		return 0
	}
	return part / whole * 100
}

// Aggregate derives totals, ratios and exposures from raw inputs. Risk level,
// risk points and the stressed block are left zero; Calculate layers them on.
func Aggregate(profile models.Profile, income models.IncomeRecord, expenses models.ExpenseRecord, debts []models.DebtAccount, country models.CountryRiskProfile) models.Metrics {
	m := models.Metrics{
		TotalIncome:           income.Total(),
		TotalExpenses:         expenses.Total(),
		EssentialExpenses:     expenses.EssentialTotal(),
		DiscretionaryExpenses: expenses.DiscretionaryTotal(),
		AccountCount:          len(debts),
	}

	for _, d := range debts {
		m.TotalDebtPayments += d.Instalment
		m.TotalBalance += d.Balance
		switch {
		case d.Type.Secured():
			m.SecuredCount++
			m.SecuredExposure += d.Balance
		case d.Type.Unsecured():
			m.UnsecuredCount++
			m.UnsecuredExposure += d.Balance
		}
		if d.Status.InArrears() {
			m.ArrearsCount++
		}
	}

	m.ExpenseRatio = percentOf(m.TotalExpenses, m.TotalIncome)
	m.DebtServiceRatio = percentOf(m.TotalDebtPayments, m.TotalIncome)
	m.EssentialExpenseRatio = percentOf(m.EssentialExpenses, m.TotalIncome)
	m.DiscretionaryExpenseRatio = percentOf(m.DiscretionaryExpenses, m.TotalIncome)
	m.TotalOutgoings = m.TotalExpenses + m.TotalDebtPayments
	m.Surplus = m.TotalIncome - m.TotalOutgoings

	m.UnsecuredExposureRatio = percentOf(m.UnsecuredExposure, m.TotalBalance)
	if len(debts) > 0 {
		m.UnsecuredRatioCount = float64(m.UnsecuredCount) / float64(len(debts)) * 100
	}
	m.WeightedAvgRate = weightedAvgRate(debts, m.TotalBalance)

	return m
}

// weightedAvgRate is the balance-weighted mean rate. Each rate is scaled by
// its balance share so a single debt yields its own rate exactly. With no
// positive balance the plain mean is used.
func weightedAvgRate(debts []models.DebtAccount, totalBalance float64) float64 {
	if len(debts) == 0 {
		return 0
	}
	if totalBalance <= 0 {
		var sum float64
		for _, d := range debts {
			sum += d.Rate
		}
		return sum / float64(len(debts))
	}
	var avg float64
	for _, d := range debts {
		avg += d.Balance / totalBalance * d.Rate
	}
	return avg
}
