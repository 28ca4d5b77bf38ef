package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/Dan9191/gcare-service/internal/ingest"
	"github.com/Dan9191/gcare-service/internal/middleware"
	"github.com/Dan9191/gcare-service/internal/models"
	"github.com/Dan9191/gcare-service/internal/report"
	"github.com/Dan9191/gcare-service/internal/repository"
	"github.com/Dan9191/gcare-service/internal/service"
)

// Service is the business layer used by the handlers
type Service interface {
	Register(ctx context.Context, username, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	Countries() []models.CountryRiskProfile
	Evaluate(ctx context.Context, snapshot models.Snapshot) (models.Report, error)
	SaveAssessment(ctx context.Context, userID int64, id uuid.UUID, name string, snapshot models.Snapshot) (*models.Assessment, error)
	GetAssessment(ctx context.Context, userID int64, id uuid.UUID) (*models.Assessment, error)
	ListAssessments(ctx context.Context, userID int64) ([]models.AssessmentSummary, error)
	DeleteAssessment(ctx context.Context, userID int64, id uuid.UUID) error
	AssessmentReport(ctx context.Context, userID int64, id uuid.UUID) (*models.Assessment, models.Report, error)
	EmailAssessment(ctx context.Context, userID int64, id uuid.UUID) error
}

type Handler struct {
	svc Service
	log *logrus.Logger
}

func NewHandler(svc Service, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type assessmentRequest struct {
	Name     string             `json:"name"`
	Snapshot ingest.RawSnapshot `json:"snapshot"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		h.log.Errorf("Failed to encode response: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

// writeError maps service errors to status codes
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, service.ErrInvalidCredentials):
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
	case errors.Is(err, service.ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, repository.ErrConflict):
		http.Error(w, "already exists", http.StatusConflict)
	case errors.Is(err, repository.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	default:
		h.log.Errorf("Request failed: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func assessmentID(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	return id, err == nil
}

func userID(r *http.Request) int64 {
	id, _ := middleware.UserIDFromContext(r.Context())
	return id
}

// Register handles user registration
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	user, err := h.svc.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, user)
}

// Login handles user authentication
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	token, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// Countries lists the supported jurisdictions
func (h *Handler) Countries(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.svc.Countries())
}

// Evaluate returns the report for a submitted snapshot without storing it
func (h *Handler) Evaluate(w http.ResponseWriter, r *http.Request) {
	snapshot, err := ingest.Decode(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	report, err := h.svc.Evaluate(r.Context(), snapshot)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, report)
}

func (h *Handler) saveAssessment(w http.ResponseWriter, r *http.Request, id uuid.UUID, status int) {
	var req assessmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	a, err := h.svc.SaveAssessment(r.Context(), userID(r), id, req.Name, req.Snapshot.Normalize())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, status, a)
}

// CreateAssessment stores a new assessment
func (h *Handler) CreateAssessment(w http.ResponseWriter, r *http.Request) {
	h.saveAssessment(w, r, uuid.Nil, http.StatusCreated)
}

// UpdateAssessment replaces a stored assessment
func (h *Handler) UpdateAssessment(w http.ResponseWriter, r *http.Request) {
	id, ok := assessmentID(r)
	if !ok {
		http.Error(w, "invalid assessment id", http.StatusBadRequest)
		return
	}
	h.saveAssessment(w, r, id, http.StatusOK)
}

// ListAssessments lists the caller's assessments
func (h *Handler) ListAssessments(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.ListAssessments(r.Context(), userID(r))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, list)
}

// GetAssessment loads a stored assessment
func (h *Handler) GetAssessment(w http.ResponseWriter, r *http.Request) {
	id, ok := assessmentID(r)
	if !ok {
		http.Error(w, "invalid assessment id", http.StatusBadRequest)
		return
	}
	a, err := h.svc.GetAssessment(r.Context(), userID(r), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, a)
}

// DeleteAssessment removes a stored assessment
func (h *Handler) DeleteAssessment(w http.ResponseWriter, r *http.Request) {
	id, ok := assessmentID(r)
	if !ok {
		http.Error(w, "invalid assessment id", http.StatusBadRequest)
		return
	}
	if err := h.svc.DeleteAssessment(r.Context(), userID(r), id); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AssessmentReport evaluates a stored assessment
func (h *Handler) AssessmentReport(w http.ResponseWriter, r *http.Request) {
	id, ok := assessmentID(r)
	if !ok {
		http.Error(w, "invalid assessment id", http.StatusBadRequest)
		return
	}
	_, rep, err := h.svc.AssessmentReport(r.Context(), userID(r), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, rep)
}

// AssessmentReportXML exports a stored assessment's report as XML
func (h *Handler) AssessmentReportXML(w http.ResponseWriter, r *http.Request) {
	id, ok := assessmentID(r)
	if !ok {
		http.Error(w, "invalid assessment id", http.StatusBadRequest)
		return
	}
	a, rep, err := h.svc.AssessmentReport(r.Context(), userID(r), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	doc, err := report.XML(a.Name, rep)
	if err != nil {
		h.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(http.StatusOK)
	w.Write(doc)
}

// EmailAssessment sends a stored assessment's report to the caller
func (h *Handler) EmailAssessment(w http.ResponseWriter, r *http.Request) {
	id, ok := assessmentID(r)
	if !ok {
		http.Error(w, "invalid assessment id", http.StatusBadRequest)
		return
	}
	if err := h.svc.EmailAssessment(r.Context(), userID(r), id); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}
