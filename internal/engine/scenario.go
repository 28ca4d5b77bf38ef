package engine

import (
	"math"

	"github.com/Dan9191/gcare-service/internal/models"
)

// ConsolidationBaseRate is used when the debts carry no weighted average rate
const ConsolidationBaseRate = 10.0

// Restructure simulates extending every term and reducing every rate.
// Metrics supplies the income, expense and current payment totals.
func Restructure(m models.Metrics, debts []models.DebtAccount, cfg models.ScenarioConfig) models.RestructureResult {
	res := models.RestructureResult{
		Debts: make([]models.RestructuredDebt, 0, len(debts)),
	}

	for _, d := range debts {
		newTerm := int(math.Round(float64(d.Term) * cfg.RestructureTermExtensionFactor))
		newRate := math.Max(d.Rate*cfg.RestructureRateReductionFactor, cfg.RestructureMinRate)
		instalment := PMT(d.Balance, newRate, newTerm)
		totalPaid := instalment * float64(newTerm)

		row := models.RestructuredDebt{
			ID:            d.ID,
			Provider:      d.Provider,
			NewTerm:       newTerm,
			NewRate:       newRate,
			NewInstalment: instalment,
			TotalPaid:     totalPaid,
			TotalInterest: totalPaid - d.Balance,
		}
		res.Debts = append(res.Debts, row)
		res.MonthlyPayment += row.NewInstalment
		res.TotalInterestRestructured += row.TotalInterest
	}

	res.Surplus = m.TotalIncome - m.TotalExpenses - res.MonthlyPayment
	res.SavingsPerMonth = m.TotalDebtPayments - res.MonthlyPayment
	res.CurrentTotalInterest = ApproxCurrentInterest(debts)
	res.InterestSavingsTotal = res.CurrentTotalInterest - res.TotalInterestRestructured
	return res
}

// Consolidate simulates pooling every debt into a single facility priced at
// a discount to the weighted average rate.
func Consolidate(m models.Metrics, debts []models.DebtAccount, cfg models.ScenarioConfig) models.ConsolidationResult {
	if len(debts) == 0 {
		return models.ConsolidationResult{
			Surplus: m.TotalIncome - m.TotalExpenses,
		}
	}

	var totalBalance float64
	for _, d := range debts {
		totalBalance += d.Balance
	}

	base := m.WeightedAvgRate
	if base == 0 || math.IsNaN(base) {
		base = ConsolidationBaseRate
	}
	rate := base * cfg.ConsolidationRateDiscountFactor
	term := cfg.ConsolidationTerm

	payment := PMT(totalBalance, rate, term)
	withFees := payment + cfg.ConsolidationMonthlyAdminFee
	totalPaid := withFees*float64(term) + cfg.ConsolidationOriginationFee
	current := ApproxCurrentInterest(debts)

	return models.ConsolidationResult{
		TotalBalance:           totalBalance,
		Rate:                   rate,
		Term:                   term,
		MonthlyPayment:         payment,
		MonthlyPaymentWithFees: withFees,
		Surplus:                m.TotalIncome - m.TotalExpenses - withFees,
		SavingsPerMonth:        m.TotalDebtPayments - withFees,
		TotalInterestAndFees:   totalPaid - totalBalance,
		CurrentTotalInterest:   current,
		InterestSavingsTotal:   current - (totalPaid - totalBalance),
	}
}
