package ingest

import (
	"strings"

	"github.com/Dan9191/gcare-service/internal/models"
)

var debtTypes = map[string]models.DebtType{
	"home":            models.DebtHome,
	"home_loan":       models.DebtHome,
	"mortgage":        models.DebtHome,
	"bond":            models.DebtHome,
	"vehicle":         models.DebtVehicle,
	"vehicle_finance": models.DebtVehicle,
	"car":             models.DebtVehicle,
	"personal":        models.DebtPersonal,
	"personal_loan":   models.DebtPersonal,
	"card":            models.DebtCard,
	"credit_card":     models.DebtCard,
	"micro":           models.DebtMicro,
	"micro_loan":      models.DebtMicro,
	"store":           models.DebtStore,
	"store_credit":    models.DebtStore,
	"other":           models.DebtOther,
}

var debtStatuses = map[string]models.DebtStatus{
	"current":      models.StatusCurrent,
	"arrears":      models.StatusArrears,
	"in_arrears":   models.StatusArrears,
	"default":      models.StatusDefault,
	"defaulted":    models.StatusDefault,
	"legal":        models.StatusLegal,
	"legal_action": models.StatusLegal,
	"written_off":  models.StatusWrittenOff,
	"writtenoff":   models.StatusWrittenOff,
}

func normalizeKey(s string) string {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.ReplaceAll(key, " ", "_")
	return strings.ReplaceAll(key, "-", "_")
}

// NormalizeDebtType maps common spellings to a DebtType. Unknown types
// become DebtOther so they count in totals but in neither exposure bucket.
func NormalizeDebtType(s string) models.DebtType {
	if t, ok := debtTypes[normalizeKey(s)]; ok {
		return t
	}
	return models.DebtOther
}

// NormalizeDebtStatus maps common spellings to a DebtStatus. Unknown
// statuses are treated as current.
func NormalizeDebtStatus(s string) models.DebtStatus {
	if st, ok := debtStatuses[normalizeKey(s)]; ok {
		return st
	}
	return models.StatusCurrent
}
