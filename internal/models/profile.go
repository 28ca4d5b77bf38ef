package models

// CountryCode identifies a jurisdiction in the country risk registry
type CountryCode string

const (
	CountryZA CountryCode = "ZA"
	CountryGB CountryCode = "GB"
	CountryUS CountryCode = "US"
	CountryEU CountryCode = "EU"
	CountryAU CountryCode = "AU"
)

// Profile describes the household being assessed
type Profile struct {
	Name          string      `json:"name"`
	Country       CountryCode `json:"country"`
	MaritalStatus string      `json:"marital_status"`
	Dependants    int         `json:"dependants"`
	CreditScore   *float64    `json:"credit_score,omitempty"` // nil when absent or not numeric
}

// IncomeRecord holds monthly income by source
type IncomeRecord struct {
	Salary  float64 `json:"salary"`
	Bonuses float64 `json:"bonuses"`
	Other   float64 `json:"other"`
}

// Total returns the sum of all income sources
func (i IncomeRecord) Total() float64 {
	return i.Salary + i.Bonuses + i.Other
}

// ExpenseRecord holds monthly living expenses by fixed category
type ExpenseRecord struct {
	Housing       float64 `json:"housing"`
	Utilities     float64 `json:"utilities"`
	Food          float64 `json:"food"`
	Transport     float64 `json:"transport"`
	Insurance     float64 `json:"insurance"`
	Education     float64 `json:"education"`
	Healthcare    float64 `json:"healthcare"`
	Discretionary float64 `json:"discretionary"`
}

// ExpenseCategory names one of the fixed expense categories
type ExpenseCategory struct {
	Key       string
	Label     string
	Essential bool
}

// ExpenseCategories lists the categories in their canonical order.
// The first seven are essential, the last one is discretionary.
var ExpenseCategories = []ExpenseCategory{
	{Key: "housing", Label: "Housing", Essential: true},
	{Key: "utilities", Label: "Utilities", Essential: true},
	{Key: "food", Label: "Food", Essential: true},
	{Key: "transport", Label: "Transport", Essential: true},
	{Key: "insurance", Label: "Insurance", Essential: true},
	{Key: "education", Label: "Education", Essential: true},
	{Key: "healthcare", Label: "Healthcare", Essential: true},
	{Key: "discretionary", Label: "Discretionary", Essential: false},
}

// Amounts returns the category amounts in canonical order
func (e ExpenseRecord) Amounts() []float64 {
	return []float64{
		e.Housing, e.Utilities, e.Food, e.Transport,
		e.Insurance, e.Education, e.Healthcare, e.Discretionary,
	}
}

// Total returns the sum of all eight categories
func (e ExpenseRecord) Total() float64 {
	var total float64
	for _, v := range e.Amounts() {
		total += v
	}
	return total
}

// EssentialTotal returns the sum of the essential categories
func (e ExpenseRecord) EssentialTotal() float64 {
	var total float64
	for i, v := range e.Amounts() {
		if ExpenseCategories[i].Essential {
			total += v
		}
	}
	return total
}

// DiscretionaryTotal returns the sum of the discretionary categories
func (e ExpenseRecord) DiscretionaryTotal() float64 {
	var total float64
	for i, v := range e.Amounts() {
		if !ExpenseCategories[i].Essential {
			total += v
		}
	}
	return total
}
