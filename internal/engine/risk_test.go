package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Dan9191/gcare-service/internal/models"
)

func debtsOfLen(n int) []models.DebtAccount {
	return make([]models.DebtAccount, n)
}

func TestRiskPoints_RuleTable(t *testing.T) {
	za := NewRegistry().Lookup(models.CountryZA)

	tests := []struct {
		name    string
		metrics models.Metrics
		debts   int
		score   *float64
		points  int
		level   models.RiskLevel
	}{
		{name: "nothing owed", points: 0, level: models.RiskLow},
		{name: "dti at low max", metrics: models.Metrics{DebtServiceRatio: 25}, points: 1, level: models.RiskLow},
		{name: "dti above low max", metrics: models.Metrics{DebtServiceRatio: 25.01}, points: 2, level: models.RiskLow},
		{name: "dti above medium max", metrics: models.Metrics{DebtServiceRatio: 40.5}, points: 3, level: models.RiskLow},
		{name: "expense at low max", metrics: models.Metrics{ExpenseRatio: 45}, points: 0, level: models.RiskLow},
		{name: "expense above medium max", metrics: models.Metrics{ExpenseRatio: 61}, points: 2, level: models.RiskLow},
		{name: "one arrears", metrics: models.Metrics{ArrearsCount: 1}, points: 2, level: models.RiskLow},
		{name: "three arrears", metrics: models.Metrics{ArrearsCount: 3}, points: 3, level: models.RiskLow},
		{name: "unsecured above low max", metrics: models.Metrics{UnsecuredExposureRatio: 41}, points: 1, level: models.RiskLow},
		{name: "six accounts", debts: 6, points: 1, level: models.RiskLow},
		{name: "nine accounts", debts: 9, points: 2, level: models.RiskLow},
		{
			name:    "medium boundary",
			metrics: models.Metrics{DebtServiceRatio: 30, ExpenseRatio: 50, UnsecuredExposureRatio: 50},
			points:  4,
			level:   models.RiskMedium,
		},
		{
			name:    "high boundary",
			metrics: models.Metrics{DebtServiceRatio: 41, ExpenseRatio: 61, ArrearsCount: 1},
			points:  7,
			level:   models.RiskHigh,
		},
		{
			name:    "everything maxed",
			metrics: models.Metrics{DebtServiceRatio: 80, ExpenseRatio: 90, ArrearsCount: 4, UnsecuredExposureRatio: 100},
			debts:   10,
			score:   floatPtr(420),
			points:  14,
			level:   models.RiskHigh,
		},
		{name: "excellent score goes negative", score: floatPtr(800), points: -1, level: models.RiskLow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := models.Profile{CreditScore: tt.score}
			debts := debtsOfLen(tt.debts)
			assert.Equal(t, tt.points, RiskPoints(tt.metrics, debts, profile, za))
			assert.Equal(t, tt.level, ScoreRisk(tt.metrics, debts, profile, za))
		})
	}
}

func TestRiskPoints_CreditScore(t *testing.T) {
	za := NewRegistry().Lookup(models.CountryZA)

	tests := []struct {
		score *float64
		want  int
	}{
		{score: nil, want: 0},
		{score: floatPtr(0), want: 2},
		{score: floatPtr(549), want: 2},
		{score: floatPtr(550), want: 1},
		{score: floatPtr(649.9), want: 1},
		{score: floatPtr(650), want: 0},
		{score: floatPtr(750), want: 0},
		{score: floatPtr(751), want: -1},
	}
	for _, tt := range tests {
		got := RiskPoints(models.Metrics{}, nil, models.Profile{CreditScore: tt.score}, za)
		assert.Equal(t, tt.want, got)
	}
}

func TestRiskPoints_CountryThresholds(t *testing.T) {
	r := NewRegistry()
	m := models.Metrics{DebtServiceRatio: 28, ExpenseRatio: 48, UnsecuredExposureRatio: 38}

	assert.Equal(t, 3, RiskPoints(m, nil, models.Profile{}, r.Lookup(models.CountryZA)))
	assert.Equal(t, 2, RiskPoints(m, nil, models.Profile{}, r.Lookup(models.CountryGB)))
}

func levelRank(l models.RiskLevel) int {
	switch l {
	case models.RiskHigh:
		return 2
	case models.RiskMedium:
		return 1
	}
	return 0
}

func TestScoreRisk_Monotonic(t *testing.T) {
	r := NewRegistry()
	base := models.Metrics{DebtServiceRatio: 20, ExpenseRatio: 50, ArrearsCount: 0, UnsecuredExposureRatio: 30}

	for _, country := range r.Profiles() {
		t.Run(string(country.Code)+" debt service ratio", func(t *testing.T) {
			prev := -1
			for v := 0.0; v <= 120; v += 0.25 {
				m := base
				m.DebtServiceRatio = v
				rank := levelRank(ScoreRisk(m, nil, models.Profile{}, country))
				assert.GreaterOrEqual(t, rank, prev, "dti %v", v)
				prev = rank
			}
		})

		t.Run(string(country.Code)+" arrears count", func(t *testing.T) {
			prev := -1
			for n := 0; n <= 10; n++ {
				m := base
				m.ArrearsCount = n
				rank := levelRank(ScoreRisk(m, nil, models.Profile{}, country))
				assert.GreaterOrEqual(t, rank, prev, "arrears %d", n)
				prev = rank
			}
		})

		t.Run(string(country.Code)+" unsecured exposure ratio", func(t *testing.T) {
			prev := -1
			for v := 0.0; v <= 100; v += 0.5 {
				m := base
				m.UnsecuredExposureRatio = v
				points := RiskPoints(m, nil, models.Profile{}, country)
				assert.GreaterOrEqual(t, points, prev, "unsecured %v", v)
				prev = points
			}
		})
	}
}
