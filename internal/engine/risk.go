package engine

import "github.com/Dan9191/gcare-service/internal/models"

// RiskPoints applies the additive scoring rules in their fixed order.
// The total is not clamped and goes negative through the credit score bonus.
func RiskPoints(m models.Metrics, debts []models.DebtAccount, profile models.Profile, country models.CountryRiskProfile) int {
	points := 0

	switch {
	case m.DebtServiceRatio > country.DTI.MediumMax:
		points += 3
	case m.DebtServiceRatio > country.DTI.LowMax:
		points += 2
	case m.DebtServiceRatio > 0:
		points++
	}

	switch {
	case m.ExpenseRatio > country.ExpenseRatio.MediumMax:
		points += 2
	case m.ExpenseRatio > country.ExpenseRatio.LowMax:
		points++
	}

	switch {
	case m.ArrearsCount > 2:
		points += 3
	case m.ArrearsCount > 0:
		points += 2
	}

	switch {
	case m.UnsecuredExposureRatio > country.UnsecuredExposureRatio.MediumMax:
		points += 2
	case m.UnsecuredExposureRatio > country.UnsecuredExposureRatio.LowMax:
		points++
	}

	switch {
	case len(debts) > 8:
		points += 2
	case len(debts) > 5:
		points++
	}

	if cs := profile.CreditScore; cs != nil {
		switch {
		case *cs < 550:
			points += 2
		case *cs < 650:
			points++
		case *cs > 750:
			points--
		}
	}

	return points
}

// LevelForPoints maps a point total to a risk level
func LevelForPoints(points int) models.RiskLevel {
	switch {
	case points >= 7:
		return models.RiskHigh
	case points >= 4:
		return models.RiskMedium
	default:
		return models.RiskLow
	}
}

// ScoreRisk classifies a metrics bundle against the country thresholds
func ScoreRisk(m models.Metrics, debts []models.DebtAccount, profile models.Profile, country models.CountryRiskProfile) models.RiskLevel {
	return LevelForPoints(RiskPoints(m, debts, profile, country))
}
