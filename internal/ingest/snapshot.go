// Package ingest normalizes loosely typed assessment input into the clean
// records the engine expects. It is the only place where malformed numbers
// are coerced.
package ingest

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/Dan9191/gcare-service/internal/models"
)

// DefaultTermMonths replaces a missing or non-positive debt term
const DefaultTermMonths = 12

// RawProfile is the profile as submitted
type RawProfile struct {
	Name          string `json:"name"`
	Country       string `json:"country"`
	MaritalStatus string `json:"marital_status"`
	Dependants    Number `json:"dependants"`
	CreditScore   Number `json:"credit_score"`
}

// RawIncome is the income record as submitted
type RawIncome struct {
	Salary  Number `json:"salary"`
	Bonuses Number `json:"bonuses"`
	Other   Number `json:"other"`
}

// RawExpenses is the expense record as submitted
type RawExpenses struct {
	Housing       Number `json:"housing"`
	Utilities     Number `json:"utilities"`
	Food          Number `json:"food"`
	Transport     Number `json:"transport"`
	Insurance     Number `json:"insurance"`
	Education     Number `json:"education"`
	Healthcare    Number `json:"healthcare"`
	Discretionary Number `json:"discretionary"`
}

// RawDebt is a debt account as submitted
type RawDebt struct {
	ID         Text   `json:"id"`
	Provider   string `json:"provider"`
	Type       string `json:"type"`
	Balance    Number `json:"balance"`
	Instalment Number `json:"instalment"`
	Rate       Number `json:"rate"`
	Status     string `json:"status"`
	Term       Number `json:"term"`
}

// RawScenarioConfig is the scenario configuration as submitted
type RawScenarioConfig struct {
	RestructureTermExtensionFactor  Number `json:"restructure_term_extension_factor"`
	RestructureRateReductionFactor  Number `json:"restructure_rate_reduction_factor"`
	RestructureMinRate              Number `json:"restructure_min_rate"`
	ConsolidationTerm               Number `json:"consolidation_term"`
	ConsolidationRateDiscountFactor Number `json:"consolidation_rate_discount_factor"`
	ConsolidationOriginationFee     Number `json:"consolidation_origination_fee"`
	ConsolidationMonthlyAdminFee    Number `json:"consolidation_monthly_admin_fee"`
}

// RawSnapshot is a complete submission
type RawSnapshot struct {
	Profile        RawProfile         `json:"profile"`
	Income         RawIncome          `json:"income"`
	Expenses       RawExpenses        `json:"expenses"`
	Debts          []RawDebt          `json:"debts"`
	ScenarioConfig *RawScenarioConfig `json:"scenario_config"`
}

// Decode reads a JSON submission and normalizes it. Only a malformed
// document shape is an error; bad numeric fields are coerced.
func Decode(r io.Reader) (models.Snapshot, error) {
	var raw RawSnapshot
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return raw.Normalize(), nil
}

// Normalize converts the submission into engine input
func (raw RawSnapshot) Normalize() models.Snapshot {
	s := models.Snapshot{
		Profile: raw.Profile.Normalize(),
		Income: models.IncomeRecord{
			Salary:  amount(raw.Income.Salary),
			Bonuses: amount(raw.Income.Bonuses),
			Other:   amount(raw.Income.Other),
		},
		Expenses: models.ExpenseRecord{
			Housing:       amount(raw.Expenses.Housing),
			Utilities:     amount(raw.Expenses.Utilities),
			Food:          amount(raw.Expenses.Food),
			Transport:     amount(raw.Expenses.Transport),
			Insurance:     amount(raw.Expenses.Insurance),
			Education:     amount(raw.Expenses.Education),
			Healthcare:    amount(raw.Expenses.Healthcare),
			Discretionary: amount(raw.Expenses.Discretionary),
		},
		Debts:          make([]models.DebtAccount, 0, len(raw.Debts)),
		ScenarioConfig: models.DefaultScenarioConfig(),
	}

	for i, d := range raw.Debts {
		s.Debts = append(s.Debts, d.Normalize(i))
	}
	if raw.ScenarioConfig != nil {
		s.ScenarioConfig = raw.ScenarioConfig.Normalize()
	}
	return s
}

// Normalize converts the submitted profile
func (p RawProfile) Normalize() models.Profile {
	out := models.Profile{
		Name:          strings.TrimSpace(p.Name),
		Country:       models.CountryCode(strings.ToUpper(strings.TrimSpace(p.Country))),
		MaritalStatus: strings.ToLower(strings.TrimSpace(p.MaritalStatus)),
		Dependants:    int(math.Max(0, math.Round(p.Dependants.Or(0)))),
	}
	if p.CreditScore.Valid {
		score := p.CreditScore.Value
		out.CreditScore = &score
	}
	return out
}

// Normalize converts the submitted debt at position i of its list
func (d RawDebt) Normalize(i int) models.DebtAccount {
	id := strings.TrimSpace(string(d.ID))
	if id == "" {
		id = strconv.Itoa(i + 1)
	}
	return models.DebtAccount{
		ID:         id,
		Provider:   strings.TrimSpace(d.Provider),
		Type:       NormalizeDebtType(d.Type),
		Balance:    amount(d.Balance),
		Instalment: amount(d.Instalment),
		Rate:       amount(d.Rate),
		Status:     NormalizeDebtStatus(d.Status),
		Term:       term(d.Term),
	}
}

// Normalize converts the submitted scenario configuration, replacing each
// out-of-range field with its default
func (c RawScenarioConfig) Normalize() models.ScenarioConfig {
	return ScenarioConfigOrDefault(models.ScenarioConfig{
		RestructureTermExtensionFactor:  c.RestructureTermExtensionFactor.Or(-1),
		RestructureRateReductionFactor:  c.RestructureRateReductionFactor.Or(-1),
		RestructureMinRate:              c.RestructureMinRate.Or(-1),
		ConsolidationTerm:               int(math.Round(c.ConsolidationTerm.Or(-1))),
		ConsolidationRateDiscountFactor: c.ConsolidationRateDiscountFactor.Or(-1),
		ConsolidationOriginationFee:     c.ConsolidationOriginationFee.Or(-1),
		ConsolidationMonthlyAdminFee:    c.ConsolidationMonthlyAdminFee.Or(-1),
	})
}

// ScenarioConfigOrDefault replaces every out-of-range field with its default.
// A zero config, as found on records saved without one, becomes the defaults.
func ScenarioConfigOrDefault(cfg models.ScenarioConfig) models.ScenarioConfig {
	def := models.DefaultScenarioConfig()
	if cfg == (models.ScenarioConfig{}) {
		return def
	}
	if !(cfg.RestructureTermExtensionFactor > 0) {
		cfg.RestructureTermExtensionFactor = def.RestructureTermExtensionFactor
	}
	if !(cfg.RestructureRateReductionFactor > 0 && cfg.RestructureRateReductionFactor <= 1) {
		cfg.RestructureRateReductionFactor = def.RestructureRateReductionFactor
	}
	if !(cfg.RestructureMinRate >= 0) {
		cfg.RestructureMinRate = def.RestructureMinRate
	}
	if cfg.ConsolidationTerm <= 0 {
		cfg.ConsolidationTerm = def.ConsolidationTerm
	}
	if !(cfg.ConsolidationRateDiscountFactor > 0 && cfg.ConsolidationRateDiscountFactor <= 1) {
		cfg.ConsolidationRateDiscountFactor = def.ConsolidationRateDiscountFactor
	}
	if !(cfg.ConsolidationOriginationFee >= 0) {
		cfg.ConsolidationOriginationFee = def.ConsolidationOriginationFee
	}
	if !(cfg.ConsolidationMonthlyAdminFee >= 0) {
		cfg.ConsolidationMonthlyAdminFee = def.ConsolidationMonthlyAdminFee
	}
	return cfg
}

// amount coerces a missing or negative amount to 0
func amount(n Number) float64 {
	if !n.Valid || n.Value < 0 {
		return 0
	}
	return n.Value
}

func term(n Number) int {
	months := int(math.Round(n.Or(0)))
	if months <= 0 {
		return DefaultTermMonths
	}
	return months
}
