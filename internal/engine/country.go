// Package engine implements the household financial assessment calculations:
// aggregation, risk scoring, stress testing, scenario simulation and
// recommendations. Every function is pure and deterministic.
package engine

import (
	"sort"

	"github.com/Dan9191/gcare-service/internal/models"
)

// DefaultCountry is used when a profile names an unknown jurisdiction
const DefaultCountry = models.CountryZA

// Registry is an immutable table of country risk profiles
type Registry struct {
	profiles map[models.CountryCode]models.CountryRiskProfile
}

// NewRegistry builds the registry of built-in country profiles
func NewRegistry() *Registry {
	standard := func(code models.CountryCode, name, currency string) models.CountryRiskProfile {
		return models.CountryRiskProfile{
			Code:                   code,
			Name:                   name,
			CurrencyCode:           currency,
			DTI:                    models.Band{LowMax: 30, MediumMax: 45},
			ExpenseRatio:           models.Band{LowMax: 50, MediumMax: 65},
			UnsecuredExposureRatio: models.Band{LowMax: 35, MediumMax: 55},
		}
	}

	return &Registry{profiles: map[models.CountryCode]models.CountryRiskProfile{
		models.CountryZA: {
			Code:                   models.CountryZA,
			Name:                   "South Africa",
			CurrencyCode:           "ZAR",
			DTI:                    models.Band{LowMax: 25, MediumMax: 40},
			ExpenseRatio:           models.Band{LowMax: 45, MediumMax: 60},
			UnsecuredExposureRatio: models.Band{LowMax: 40, MediumMax: 60},
		},
		models.CountryGB: standard(models.CountryGB, "United Kingdom", "GBP"),
		models.CountryUS: standard(models.CountryUS, "United States", "USD"),
		models.CountryEU: standard(models.CountryEU, "European Union", "EUR"),
		models.CountryAU: standard(models.CountryAU, "Australia", "AUD"),
	}}
}

// Lookup returns the profile for code, falling back to the default country.
// It never fails.
func (r *Registry) Lookup(code models.CountryCode) models.CountryRiskProfile {
	if p, ok := r.profiles[code]; ok {
		return p
	}
	return r.profiles[DefaultCountry]
}

// Known reports whether code is a built-in jurisdiction
func (r *Registry) Known(code models.CountryCode) bool {
	_, ok := r.profiles[code]
	return ok
}

// Profiles returns all profiles ordered by code
func (r *Registry) Profiles() []models.CountryRiskProfile {
	out := make([]models.CountryRiskProfile, 0, len(r.profiles))
	for _, p := range r.profiles {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}
