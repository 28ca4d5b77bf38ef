package models

// Snapshot is one complete set of engine inputs
type Snapshot struct {
	Profile        Profile        `json:"profile"`
	Income         IncomeRecord   `json:"income"`
	Expenses       ExpenseRecord  `json:"expenses"`
	Debts          []DebtAccount  `json:"debts"`
	ScenarioConfig ScenarioConfig `json:"scenario_config"`
}

// ExpenseSlice is one non-zero expense category for charting
type ExpenseSlice struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// ScenarioComparison compares monthly payment and surplus across scenarios
type ScenarioComparison struct {
	Name    string  `json:"name"`
	Payment float64 `json:"payment"`
	Surplus float64 `json:"surplus"`
}

// Report is the evaluated output bundle for a snapshot.
// Restructure and Consolidation are nil when there are no debts.
type Report struct {
	Country          CountryCode          `json:"country"`
	CountryName      string               `json:"country_name"`
	Currency         string               `json:"currency"`
	Metrics          Metrics              `json:"metrics"`
	Restructure      *RestructureResult   `json:"restructure,omitempty"`
	Consolidation    *ConsolidationResult `json:"consolidation,omitempty"`
	Recommendations  []Recommendation     `json:"recommendations"`
	ExpenseBreakdown []ExpenseSlice       `json:"expense_breakdown"`
	Comparison       []ScenarioComparison `json:"comparison"`
}
