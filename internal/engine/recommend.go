package engine

import (
	"fmt"

	"github.com/Dan9191/gcare-service/internal/models"
)

// Recommendation thresholds are fixed and independent of the country profile.
const (
	prudentialDTI          = 40.0
	expensePressureRatio   = 50.0
	unsecuredConcentration = 60.0
	facilityCountThreshold = 6
)

// Recommend evaluates the advisory rules in order. Each rule fires
// independently; the result is ordered by rule, not by severity.
func Recommend(m models.Metrics, debts []models.DebtAccount) []models.Recommendation {
	recs := []models.Recommendation{}

	if m.DebtServiceRatio > prudentialDTI {
		recs = append(recs, models.Recommendation{
			Kind: models.KindWarning,
			Text: "Your debt-to-income ratio exceeds common international prudential thresholds (around 40%). Consider restructuring or consolidation to reduce monthly obligations.",
		})
	}

	if m.ExpenseRatio > expensePressureRatio {
		recs = append(recs, models.Recommendation{
			Kind: models.KindInfo,
			Text: "Essential expenses consume over 50% of income. Review discretionary categories to create additional resilience and room for savings.",
		})
	}

	if m.UnsecuredExposureRatio > unsecuredConcentration {
		recs = append(recs, models.Recommendation{
			Kind: models.KindWarning,
			Text: "A high proportion of your total debt exposure is unsecured credit. This is usually more expensive and riskier than secured lending.",
		})
	}

	if m.ArrearsCount > 0 {
		recs = append(recs, models.Recommendation{
			Kind: models.KindAlert,
			Text: fmt.Sprintf("%d account(s) are in arrears or default. Engage with credit providers early to agree realistic repayment arrangements and avoid further deterioration.", m.ArrearsCount),
		})
	}

	if m.Surplus > 0 && m.RiskLevel == models.RiskLow {
		recs = append(recs, models.Recommendation{
			Kind: models.KindSuccess,
			Text: "Your current profile shows a healthy surplus and low risk. Prioritise building emergency reserves equal to 3-6 months of essential expenses and avoid unnecessary new credit.",
		})
	}

	if len(debts) > facilityCountThreshold {
		recs = append(recs, models.Recommendation{
			Kind: models.KindInfo,
			Text: "You hold multiple credit facilities. Consolidating or closing unused limits may simplify administration and reduce the risk of missed payments.",
		})
	}

	if m.Stressed.Surplus < 0 {
		recs = append(recs, models.Recommendation{
			Kind: models.KindWarning,
			Text: "Under a moderate stress test (income -20% and interest rates +2%), your position turns negative. This indicates vulnerability to economic shocks.",
		})
	}

	return recs
}
