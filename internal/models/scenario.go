package models

// ScenarioConfig parameterizes the restructure and consolidation simulations
type ScenarioConfig struct {
	RestructureTermExtensionFactor  float64 `json:"restructure_term_extension_factor"`
	RestructureRateReductionFactor  float64 `json:"restructure_rate_reduction_factor"`
	RestructureMinRate              float64 `json:"restructure_min_rate"`
	ConsolidationTerm               int     `json:"consolidation_term"`
	ConsolidationRateDiscountFactor float64 `json:"consolidation_rate_discount_factor"`
	ConsolidationOriginationFee     float64 `json:"consolidation_origination_fee"`
	ConsolidationMonthlyAdminFee    float64 `json:"consolidation_monthly_admin_fee"`
}

// DefaultScenarioConfig returns the default simulation parameters
func DefaultScenarioConfig() ScenarioConfig {
	return ScenarioConfig{
		RestructureTermExtensionFactor:  1.5,
		RestructureRateReductionFactor:  0.85,
		RestructureMinRate:              5,
		ConsolidationTerm:               60,
		ConsolidationRateDiscountFactor: 0.75,
		ConsolidationOriginationFee:     0,
		ConsolidationMonthlyAdminFee:    0,
	}
}

// RestructuredDebt is the per-account outcome of a restructure simulation
type RestructuredDebt struct {
	ID            string  `json:"id"`
	Provider      string  `json:"provider"`
	NewTerm       int     `json:"new_term"`
	NewRate       float64 `json:"new_rate"`
	NewInstalment float64 `json:"new_instalment"`
	TotalPaid     float64 `json:"total_paid"`
	TotalInterest float64 `json:"total_interest"`
}

// RestructureResult summarizes a restructure simulation.
// CurrentTotalInterest is an estimate obtained by reamortizing every debt at its
// existing balance, rate and term, not the contractual interest.
type RestructureResult struct {
	Debts                     []RestructuredDebt `json:"debts"`
	MonthlyPayment            float64            `json:"monthly_payment"`
	Surplus                   float64            `json:"surplus"`
	SavingsPerMonth           float64            `json:"savings_per_month"`
	TotalInterestRestructured float64            `json:"total_interest_restructured"`
	CurrentTotalInterest      float64            `json:"current_total_interest"`
	InterestSavingsTotal      float64            `json:"interest_savings_total"`
}

// ConsolidationResult summarizes a consolidation simulation.
// CurrentTotalInterest is the same estimate used by RestructureResult.
type ConsolidationResult struct {
	TotalBalance           float64 `json:"total_balance"`
	Rate                   float64 `json:"rate"`
	Term                   int     `json:"term"`
	MonthlyPayment         float64 `json:"monthly_payment"`
	MonthlyPaymentWithFees float64 `json:"monthly_payment_with_fees"`
	Surplus                float64 `json:"surplus"`
	SavingsPerMonth        float64 `json:"savings_per_month"`
	TotalInterestAndFees   float64 `json:"total_interest_and_fees"`
	CurrentTotalInterest   float64 `json:"current_total_interest"`
	InterestSavingsTotal   float64 `json:"interest_savings_total"`
}
