// Package report renders evaluated reports for people and other systems.
// Amounts are rounded half away from zero with shopspring/decimal so that
// the XML export, the text summary and emails agree to the cent.
package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"github.com/Dan9191/gcare-service/internal/models"
)

// Money formats an amount with two decimals
func Money(v float64) string {
	return decimal.NewFromFloat(v).Round(2).StringFixed(2)
}

// Percent formats a ratio with one decimal
func Percent(v float64) string {
	return decimal.NewFromFloat(v).Round(1).StringFixed(1)
}

// XML builds the XML export of a report
func XML(name string, r models.Report) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("assessment")
	if name != "" {
		root.CreateAttr("name", name)
	}
	country := root.CreateElement("country")
	country.CreateAttr("code", string(r.Country))
	country.CreateAttr("currency", r.Currency)
	country.SetText(r.CountryName)

	writeMetrics(root.CreateElement("metrics"), r.Metrics)

	if r.Restructure != nil {
		el := root.CreateElement("restructure")
		el.CreateElement("monthlyPayment").SetText(Money(r.Restructure.MonthlyPayment))
		el.CreateElement("surplus").SetText(Money(r.Restructure.Surplus))
		el.CreateElement("savingsPerMonth").SetText(Money(r.Restructure.SavingsPerMonth))
		el.CreateElement("interestSavingsTotal").SetText(Money(r.Restructure.InterestSavingsTotal))
		debts := el.CreateElement("debts")
		for _, d := range r.Restructure.Debts {
			debt := debts.CreateElement("debt")
			debt.CreateAttr("id", d.ID)
			debt.CreateAttr("provider", d.Provider)
			debt.CreateElement("term").SetText(strconv.Itoa(d.NewTerm))
			debt.CreateElement("rate").SetText(Percent(d.NewRate))
			debt.CreateElement("instalment").SetText(Money(d.NewInstalment))
			debt.CreateElement("totalInterest").SetText(Money(d.TotalInterest))
		}
	}

	if r.Consolidation != nil {
		c := r.Consolidation
		el := root.CreateElement("consolidation")
		el.CreateElement("rate").SetText(Percent(c.Rate))
		el.CreateElement("term").SetText(strconv.Itoa(c.Term))
		el.CreateElement("monthlyPayment").SetText(Money(c.MonthlyPaymentWithFees))
		el.CreateElement("surplus").SetText(Money(c.Surplus))
		el.CreateElement("savingsPerMonth").SetText(Money(c.SavingsPerMonth))
		el.CreateElement("interestSavingsTotal").SetText(Money(c.InterestSavingsTotal))
	}

	recs := root.CreateElement("recommendations")
	for _, rec := range r.Recommendations {
		el := recs.CreateElement("recommendation")
		el.CreateAttr("kind", string(rec.Kind))
		el.SetText(rec.Text)
	}

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("failed to write XML report: %w", err)
	}
	return out, nil
}

func writeMetrics(el *etree.Element, m models.Metrics) {
	risk := el.CreateElement("risk")
	risk.CreateAttr("points", strconv.Itoa(m.RiskPoints))
	risk.SetText(string(m.RiskLevel))

	el.CreateElement("totalIncome").SetText(Money(m.TotalIncome))
	el.CreateElement("totalExpenses").SetText(Money(m.TotalExpenses))
	el.CreateElement("totalDebtPayments").SetText(Money(m.TotalDebtPayments))
	el.CreateElement("surplus").SetText(Money(m.Surplus))
	el.CreateElement("debtServiceRatio").SetText(Percent(m.DebtServiceRatio))
	el.CreateElement("expenseRatio").SetText(Percent(m.ExpenseRatio))
	el.CreateElement("unsecuredExposureRatio").SetText(Percent(m.UnsecuredExposureRatio))
	el.CreateElement("weightedAvgRate").SetText(Percent(m.WeightedAvgRate))
	el.CreateElement("arrearsCount").SetText(strconv.Itoa(m.ArrearsCount))

	stressed := el.CreateElement("stressed")
	stressed.CreateElement("income").SetText(Money(m.Stressed.Income))
	stressed.CreateElement("debtPayments").SetText(Money(m.Stressed.DebtPayments))
	stressed.CreateElement("debtServiceRatio").SetText(Percent(m.Stressed.DebtServiceRatio))
	stressed.CreateElement("surplus").SetText(Money(m.Stressed.Surplus))
}

// Text renders a plain-text summary of a report
func Text(name string, r models.Report) string {
	var b strings.Builder
	m := r.Metrics
	cur := r.Currency

	if name != "" {
		fmt.Fprintf(&b, "%s\n", name)
	}
	fmt.Fprintf(&b, "Country: %s (%s)\n", r.CountryName, r.Country)
	fmt.Fprintf(&b, "Risk: %s (%d points)\n\n", m.RiskLevel, m.RiskPoints)

	fmt.Fprintf(&b, "Income:          %s %s\n", Money(m.TotalIncome), cur)
	fmt.Fprintf(&b, "Expenses:        %s %s\n", Money(m.TotalExpenses), cur)
	fmt.Fprintf(&b, "Debt payments:   %s %s\n", Money(m.TotalDebtPayments), cur)
	fmt.Fprintf(&b, "Surplus:         %s %s\n", Money(m.Surplus), cur)
	fmt.Fprintf(&b, "Debt service:    %s%%\n", Percent(m.DebtServiceRatio))
	fmt.Fprintf(&b, "Expense ratio:   %s%%\n", Percent(m.ExpenseRatio))
	fmt.Fprintf(&b, "Unsecured share: %s%%\n", Percent(m.UnsecuredExposureRatio))
	fmt.Fprintf(&b, "Stressed surplus: %s %s\n", Money(m.Stressed.Surplus), cur)

	if len(r.Comparison) > 1 {
		b.WriteString("\nScenarios:\n")
		for _, row := range r.Comparison {
			fmt.Fprintf(&b, "  %-12s payment %s, surplus %s\n", row.Name, Money(row.Payment), Money(row.Surplus))
		}
	}

	if len(r.Recommendations) > 0 {
		b.WriteString("\nRecommendations:\n")
		for _, rec := range r.Recommendations {
			fmt.Fprintf(&b, "  [%s] %s\n", rec.Kind, rec.Text)
		}
	}
	return b.String()
}
