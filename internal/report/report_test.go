package report

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dan9191/gcare-service/internal/engine"
	"github.com/Dan9191/gcare-service/internal/models"
)

func sampleReport() models.Report {
	s := models.Snapshot{
		Profile:  models.Profile{Name: "Thandi", Country: models.CountryZA},
		Income:   models.IncomeRecord{Salary: 20000},
		Expenses: models.ExpenseRecord{Housing: 5000, Food: 3000, Transport: 1000},
		Debts: []models.DebtAccount{{
			ID: "1", Provider: "Bank A", Type: models.DebtPersonal,
			Balance: 50000, Instalment: 1733, Rate: 15, Term: 36, Status: models.StatusCurrent,
		}},
		ScenarioConfig: models.DefaultScenarioConfig(),
	}
	return engine.Evaluate(s, engine.NewRegistry())
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "1733.00", Money(1733))
	assert.Equal(t, "0.13", Money(0.125))
	assert.Equal(t, "-3200.00", Money(-3200))
	assert.Equal(t, "0.00", Money(0))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "8.7", Percent(8.665))
	assert.Equal(t, "45.0", Percent(45))
	assert.Equal(t, "100.0", Percent(100))
}

func TestXML(t *testing.T) {
	out, err := XML("March review", sampleReport())
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out))

	root := doc.SelectElement("assessment")
	require.NotNil(t, root)
	assert.Equal(t, "March review", root.SelectAttrValue("name", ""))

	country := root.FindElement("./country")
	require.NotNil(t, country)
	assert.Equal(t, "ZA", country.SelectAttrValue("code", ""))
	assert.Equal(t, "ZAR", country.SelectAttrValue("currency", ""))

	risk := root.FindElement("./metrics/risk")
	require.NotNil(t, risk)
	assert.Equal(t, "LOW", risk.Text())
	assert.Equal(t, "3", risk.SelectAttrValue("points", ""))

	assert.Equal(t, "20000.00", root.FindElement("./metrics/totalIncome").Text())
	assert.Equal(t, "45.0", root.FindElement("./metrics/expenseRatio").Text())

	debts := root.FindElements("./restructure/debts/debt")
	require.Len(t, debts, 1)
	assert.Equal(t, "Bank A", debts[0].SelectAttrValue("provider", ""))
	assert.Equal(t, "54", debts[0].FindElement("./term").Text())

	assert.NotNil(t, root.FindElement("./consolidation/monthlyPayment"))
	assert.Len(t, root.FindElements("./recommendations/recommendation"), len(sampleReport().Recommendations))
}

func TestXML_NoDebtsOmitsScenarios(t *testing.T) {
	r := engine.Evaluate(models.Snapshot{
		Profile:        models.Profile{Country: models.CountryGB},
		Income:         models.IncomeRecord{Salary: 3000},
		ScenarioConfig: models.DefaultScenarioConfig(),
	}, engine.NewRegistry())

	out, err := XML("", r)
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out))
	root := doc.SelectElement("assessment")
	require.NotNil(t, root)
	assert.Nil(t, root.SelectAttr("name"))
	assert.Nil(t, root.FindElement("./restructure"))
	assert.Nil(t, root.FindElement("./consolidation"))
}

func TestText(t *testing.T) {
	out := Text("March review", sampleReport())

	assert.Contains(t, out, "March review\n")
	assert.Contains(t, out, "Country: South Africa (ZA)")
	assert.Contains(t, out, "Risk: LOW (3 points)")
	assert.Contains(t, out, "Income:          20000.00 ZAR")
	assert.Contains(t, out, "Expense ratio:   45.0%")
	assert.Contains(t, out, "Scenarios:")
	assert.Contains(t, out, "Consolidate")
}

func TestRender_VeryLongTerm(t *testing.T) {
	s := models.Snapshot{
		Profile:  models.Profile{Country: models.CountryZA},
		Income:   models.IncomeRecord{Salary: 20000},
		Expenses: models.ExpenseRecord{Housing: 5000},
		Debts: []models.DebtAccount{{
			ID: "1", Type: models.DebtPersonal, Balance: 50000, Instalment: 700, Rate: 15, Term: 100000,
		}},
		ScenarioConfig: models.DefaultScenarioConfig(),
	}
	r := engine.Evaluate(s, engine.NewRegistry())

	assert.NotPanics(t, func() { Text("Long", r) })
	out, err := XML("Long", r)
	require.NoError(t, err)
	assert.Contains(t, string(out), "<monthlyPayment>")
}
