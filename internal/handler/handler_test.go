package handler

import (
	"context"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dan9191/gcare-service/internal/config"
	"github.com/Dan9191/gcare-service/internal/engine"
	"github.com/Dan9191/gcare-service/internal/models"
	"github.com/Dan9191/gcare-service/internal/repository"
	"github.com/Dan9191/gcare-service/internal/service"
)

type fakeService struct {
	registry    *engine.Registry
	assessments map[uuid.UUID]*models.Assessment
	emailed     []uuid.UUID
}

func newFakeService() *fakeService {
	return &fakeService{registry: engine.NewRegistry(), assessments: map[uuid.UUID]*models.Assessment{}}
}

func (f *fakeService) Register(_ context.Context, username, email, _ string) (*models.User, error) {
	if email == "" {
		return nil, service.ErrInvalidInput
	}
	if email == "taken@example.com" {
		return nil, repository.ErrConflict
	}
	return &models.User{ID: 1, Username: username, Email: email, PasswordHash: "hash"}, nil
}

func (f *fakeService) Login(_ context.Context, email, password string) (string, error) {
	if password != "pa55word" {
		return "", service.ErrInvalidCredentials
	}
	return "token-for-" + email, nil
}

func (f *fakeService) Countries() []models.CountryRiskProfile {
	return f.registry.Profiles()
}

func (f *fakeService) Evaluate(_ context.Context, s models.Snapshot) (models.Report, error) {
	return engine.Evaluate(s, f.registry), nil
}

func (f *fakeService) SaveAssessment(_ context.Context, userID int64, id uuid.UUID, name string, s models.Snapshot) (*models.Assessment, error) {
	if id == uuid.Nil {
		id = uuid.New()
	} else if a, ok := f.assessments[id]; !ok || a.UserID != userID {
		return nil, repository.ErrNotFound
	}
	a := &models.Assessment{ID: id, UserID: userID, Name: name, Snapshot: s, RiskLevel: engine.Evaluate(s, f.registry).Metrics.RiskLevel}
	f.assessments[id] = a
	return a, nil
}

func (f *fakeService) GetAssessment(_ context.Context, userID int64, id uuid.UUID) (*models.Assessment, error) {
	a, ok := f.assessments[id]
	if !ok || a.UserID != userID {
		return nil, repository.ErrNotFound
	}
	return a, nil
}

func (f *fakeService) ListAssessments(_ context.Context, userID int64) ([]models.AssessmentSummary, error) {
	out := []models.AssessmentSummary{}
	for _, a := range f.assessments {
		if a.UserID == userID {
			out = append(out, models.AssessmentSummary{ID: a.ID, Name: a.Name, RiskLevel: a.RiskLevel})
		}
	}
	return out, nil
}

func (f *fakeService) DeleteAssessment(ctx context.Context, userID int64, id uuid.UUID) error {
	if _, err := f.GetAssessment(ctx, userID, id); err != nil {
		return err
	}
	delete(f.assessments, id)
	return nil
}

func (f *fakeService) AssessmentReport(ctx context.Context, userID int64, id uuid.UUID) (*models.Assessment, models.Report, error) {
	a, err := f.GetAssessment(ctx, userID, id)
	if err != nil {
		return nil, models.Report{}, err
	}
	return a, engine.Evaluate(a.Snapshot, f.registry), nil
}

func (f *fakeService) EmailAssessment(ctx context.Context, userID int64, id uuid.UUID) error {
	if _, err := f.GetAssessment(ctx, userID, id); err != nil {
		return err
	}
	f.emailed = append(f.emailed, id)
	return nil
}

const secret = "test-secret"

func setup() (*mux.Router, *fakeService) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	svc := newFakeService()
	cfg := &config.Config{JWTSecret: secret}
	return NewRouter(NewHandler(svc, log), cfg, log), svc
}

func bearer(t *testing.T, userID string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	s, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return "Bearer " + s
}

func do(router http.Handler, method, path, auth, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

const snapshotBody = `{
	"profile": {"name": "Thandi", "country": "za", "credit_score": ""},
	"income": {"salary": "20000"},
	"expenses": {"housing": 5000, "food": 3000, "transport": 1000},
	"debts": [{"provider": "Bank A", "type": "Personal Loan", "balance": 50000, "instalment": 1733, "rate": 15, "term": 36, "status": "current"}]
}`

func TestEvaluate(t *testing.T) {
	router, _ := setup()

	w := do(router, "POST", "/evaluate", "", snapshotBody)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var report models.Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, models.CountryZA, report.Country)
	assert.Equal(t, models.RiskLow, report.Metrics.RiskLevel)
	assert.Equal(t, 20000.0, report.Metrics.TotalIncome)
	require.NotNil(t, report.Restructure)
	assert.Len(t, report.Comparison, 3)
}

func TestEvaluate_MalformedBody(t *testing.T) {
	router, _ := setup()
	assert.Equal(t, http.StatusBadRequest, do(router, "POST", "/evaluate", "", `[1,2`).Code)
}

func TestCountries(t *testing.T) {
	router, _ := setup()

	w := do(router, "GET", "/countries", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var profiles []models.CountryRiskProfile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profiles))
	assert.Len(t, profiles, 5)
}

func TestRegisterAndLogin(t *testing.T) {
	router, _ := setup()

	w := do(router, "POST", "/register", "", `{"username":"jo","email":"jo@example.com","password":"pa55word"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NotContains(t, w.Body.String(), "hash")

	w = do(router, "POST", "/register", "", `{"username":"jo","password":"pa55word"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(router, "POST", "/register", "", `{"username":"jo","email":"taken@example.com","password":"pa55word"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(router, "POST", "/login", "", `{"email":"jo@example.com","password":"pa55word"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"token":"token-for-jo@example.com"}`, w.Body.String())

	w = do(router, "POST", "/login", "", `{"email":"jo@example.com","password":"nope"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAssessments_RequireAuth(t *testing.T) {
	router, _ := setup()
	assert.Equal(t, http.StatusUnauthorized, do(router, "GET", "/assessments", "", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(router, "POST", "/assessments", "Bearer nope", "{}").Code)
}

func TestAssessments_Lifecycle(t *testing.T) {
	router, svc := setup()
	auth := bearer(t, "7")

	w := do(router, "POST", "/assessments", auth, `{"name":"Budget","snapshot":`+snapshotBody+`}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var created models.Assessment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, int64(7), created.UserID)
	assert.Equal(t, "Budget", created.Name)
	assert.Equal(t, models.DebtPersonal, created.Snapshot.Debts[0].Type)
	assert.Equal(t, "1", created.Snapshot.Debts[0].ID)
	path := "/assessments/" + created.ID.String()

	w = do(router, "GET", "/assessments", auth, "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []models.AssessmentSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	assert.Equal(t, http.StatusOK, do(router, "GET", path, auth, "").Code)
	assert.Equal(t, http.StatusNotFound, do(router, "GET", path, bearer(t, "8"), "").Code)

	w = do(router, "PUT", path, auth, `{"name":"Renamed","snapshot":`+snapshotBody+`}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Renamed", svc.assessments[created.ID].Name)

	w = do(router, "GET", path+"/report", auth, "")
	require.Equal(t, http.StatusOK, w.Code)
	var report models.Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, models.RiskLow, report.Metrics.RiskLevel)

	w = do(router, "GET", path+"/report.xml", auth, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/xml", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), `<assessment name="Renamed">`)

	assert.Equal(t, http.StatusAccepted, do(router, "POST", path+"/email", auth, "").Code)
	assert.Equal(t, []uuid.UUID{created.ID}, svc.emailed)

	assert.Equal(t, http.StatusNoContent, do(router, "DELETE", path, auth, "").Code)
	assert.Equal(t, http.StatusNotFound, do(router, "DELETE", path, auth, "").Code)
}

func TestAssessments_BadRequests(t *testing.T) {
	router, _ := setup()
	auth := bearer(t, "7")

	assert.Equal(t, http.StatusBadRequest, do(router, "GET", "/assessments/not-a-uuid", auth, "").Code)
	assert.Equal(t, http.StatusBadRequest, do(router, "POST", "/assessments", auth, "{").Code)
	assert.Equal(t, http.StatusNotFound, do(router, "PUT", "/assessments/"+uuid.NewString(), auth, `{"snapshot":{}}`).Code)
}

func TestWriteJSON_EncodingFailure(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	h := NewHandler(newFakeService(), log)

	w := httptest.NewRecorder()
	h.writeJSON(w, http.StatusOK, map[string]float64{"surplus": math.NaN()})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotEqual(t, "application/json", w.Header().Get("Content-Type"))
}
