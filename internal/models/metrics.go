package models

// RiskLevel is the outcome of risk scoring
type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// StressedMetrics represents obligations under the fixed income/rate shock
type StressedMetrics struct {
	Income           float64 `json:"income"`
	DebtPayments     float64 `json:"debt_payments"`
	ExpenseRatio     float64 `json:"expense_ratio"`
	DebtServiceRatio float64 `json:"debt_service_ratio"`
	Surplus          float64 `json:"surplus"`
}

// Metrics represents the affordability and exposure analytics of a snapshot.
// All ratios are percentages.
type Metrics struct {
	TotalIncome               float64         `json:"total_income"`
	TotalExpenses             float64         `json:"total_expenses"`
	TotalDebtPayments         float64         `json:"total_debt_payments"`
	TotalOutgoings            float64         `json:"total_outgoings"`
	ExpenseRatio              float64         `json:"expense_ratio"`
	DebtServiceRatio          float64         `json:"debt_service_ratio"`
	Surplus                   float64         `json:"surplus"`
	ArrearsCount              int             `json:"arrears_count"`
	AccountCount              int             `json:"account_count"`
	SecuredCount              int             `json:"secured_count"`
	UnsecuredCount            int             `json:"unsecured_count"`
	UnsecuredRatioCount       float64         `json:"unsecured_ratio_count"`
	TotalBalance              float64         `json:"total_balance"`
	SecuredExposure           float64         `json:"secured_exposure"`
	UnsecuredExposure         float64         `json:"unsecured_exposure"`
	UnsecuredExposureRatio    float64         `json:"unsecured_exposure_ratio"`
	WeightedAvgRate           float64         `json:"weighted_avg_rate"`
	EssentialExpenses         float64         `json:"essential_expenses"`
	DiscretionaryExpenses     float64         `json:"discretionary_expenses"`
	EssentialExpenseRatio     float64         `json:"essential_expense_ratio"`
	DiscretionaryExpenseRatio float64         `json:"discretionary_expense_ratio"`
	RiskPoints                int             `json:"risk_points"`
	RiskLevel                 RiskLevel       `json:"risk_level"`
	Stressed                  StressedMetrics `json:"stressed"`
}
