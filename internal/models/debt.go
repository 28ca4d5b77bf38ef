package models

// DebtType classifies a credit facility
type DebtType string

const (
	DebtHome     DebtType = "home"
	DebtVehicle  DebtType = "vehicle"
	DebtPersonal DebtType = "personal"
	DebtCard     DebtType = "card"
	DebtMicro    DebtType = "micro"
	DebtStore    DebtType = "store"
	DebtOther    DebtType = "other"
)

// Secured reports whether the facility is collateralized
func (t DebtType) Secured() bool {
	return t == DebtHome || t == DebtVehicle
}

// Unsecured reports whether the facility is unsecured credit.
// DebtOther is neither secured nor unsecured.
func (t DebtType) Unsecured() bool {
	switch t {
	case DebtPersonal, DebtCard, DebtMicro, DebtStore:
		return true
	}
	return false
}

// DebtStatus is the repayment standing of an account
type DebtStatus string

const (
	StatusCurrent    DebtStatus = "current"
	StatusArrears    DebtStatus = "arrears"
	StatusDefault    DebtStatus = "default"
	StatusLegal      DebtStatus = "legal"
	StatusWrittenOff DebtStatus = "written-off"
)

// InArrears reports whether the status counts towards the arrears metric.
// Legal and written-off accounts are deliberately excluded.
func (s DebtStatus) InArrears() bool {
	return s == StatusArrears || s == StatusDefault
}

// DebtAccount represents one outstanding credit facility
type DebtAccount struct {
	ID         string     `json:"id"`
	Provider   string     `json:"provider"`
	Type       DebtType   `json:"type"`
	Balance    float64    `json:"balance"`
	Instalment float64    `json:"instalment"`
	Rate       float64    `json:"rate"` // annual, percent
	Status     DebtStatus `json:"status"`
	Term       int        `json:"term"` // months
}
