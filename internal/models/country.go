package models

// Band holds low/medium upper bounds of a percentage ratio
type Band struct {
	LowMax    float64 `json:"low_max"`
	MediumMax float64 `json:"medium_max"`
}

// CountryRiskProfile holds the prudential thresholds of a jurisdiction
type CountryRiskProfile struct {
	Code                   CountryCode `json:"code"`
	Name                   string      `json:"name"`
	CurrencyCode           string      `json:"currency_code"`
	DTI                    Band        `json:"dti"`
	ExpenseRatio           Band        `json:"expense_ratio"`
	UnsecuredExposureRatio Band        `json:"unsecured_exposure_ratio"`
}
