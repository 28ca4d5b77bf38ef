package handler

import (
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/Dan9191/gcare-service/internal/config"
	"github.com/Dan9191/gcare-service/internal/middleware"
)

// NewRouter wires every route
func NewRouter(h *Handler, cfg *config.Config, log *logrus.Logger) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.Logging(log))

	// Public routes
	r.HandleFunc("/register", h.Register).Methods("POST")
	r.HandleFunc("/login", h.Login).Methods("POST")
	r.HandleFunc("/countries", h.Countries).Methods("GET")
	r.HandleFunc("/evaluate", h.Evaluate).Methods("POST")

	// Protected routes
	authRouter := r.PathPrefix("/assessments").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(cfg))
	authRouter.HandleFunc("", h.CreateAssessment).Methods("POST")
	authRouter.HandleFunc("", h.ListAssessments).Methods("GET")
	authRouter.HandleFunc("/{id}", h.GetAssessment).Methods("GET")
	authRouter.HandleFunc("/{id}", h.UpdateAssessment).Methods("PUT")
	authRouter.HandleFunc("/{id}", h.DeleteAssessment).Methods("DELETE")
	authRouter.HandleFunc("/{id}/report", h.AssessmentReport).Methods("GET")
	authRouter.HandleFunc("/{id}/report.xml", h.AssessmentReportXML).Methods("GET")
	authRouter.HandleFunc("/{id}/email", h.EmailAssessment).Methods("POST")

	return r
}
