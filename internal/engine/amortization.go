package engine

import (
	"math"

	"github.com/Dan9191/gcare-service/internal/models"
)

// PMT returns the level monthly instalment that repays balance over
// termMonths at annualRatePercent. A zero rate or non-positive term falls
// back to straight-line repayment over max(termMonths, 1) months. When the
// compound factor overflows the instalment converges to interest only.
func PMT(balance, annualRatePercent float64, termMonths int) float64 {
	r := monthlyRate(annualRatePercent)
	n := termMonths
	if r == 0 || n <= 0 {
		return balance / float64(max(n, 1))
	}
	growth := math.Pow(1+r, float64(n))
	switch {
	case math.IsInf(growth, 1), math.IsInf(r*growth, 1):
		return balance * r
	case growth == 1:
		return balance / float64(n)
	}
	return balance * (r * growth) / (growth - 1)
}

func monthlyRate(annualRatePercent float64) float64 {
	return annualRatePercent / 100 / 12
}

// ApproxCurrentInterest estimates the interest still payable on debts by
// reamortizing each one at its existing balance, rate and term. The stated
// instalment is ignored, so this is an estimate and not the contractual
// interest. Debts with a zero rate or non-positive term contribute nothing.
func ApproxCurrentInterest(debts []models.DebtAccount) float64 {
	var total float64
	for _, d := range debts {
		if monthlyRate(d.Rate) == 0 || d.Term <= 0 {
			continue
		}
		instalment := PMT(d.Balance, d.Rate, d.Term)
		total += instalment*float64(d.Term) - d.Balance
	}
	return total
}
