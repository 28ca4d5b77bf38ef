package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Dan9191/gcare-service/internal/models"
)

// assessmentName picks the given name, else the profile name, else a timestamped default
func (s *Service) assessmentName(name string, snapshot models.Snapshot) string {
	if name = strings.TrimSpace(name); name != "" {
		return name
	}
	if snapshot.Profile.Name != "" {
		return snapshot.Profile.Name
	}
	return "Assessment " + s.now().Format("2006-01-02 15:04")
}

func requireUser(userID int64) error {
	if userID <= 0 {
		return ErrForbidden
	}
	return nil
}

// SaveAssessment creates an assessment when id is uuid.Nil and replaces the
// user's existing assessment otherwise.
func (s *Service) SaveAssessment(ctx context.Context, userID int64, id uuid.UUID, name string, snapshot models.Snapshot) (*models.Assessment, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}

	report, err := s.Evaluate(ctx, snapshot)
	if err != nil {
		return nil, err
	}

	a := &models.Assessment{
		ID:        id,
		UserID:    userID,
		Name:      s.assessmentName(name, snapshot),
		Snapshot:  snapshot,
		RiskLevel: report.Metrics.RiskLevel,
	}

	if id == uuid.Nil {
		if err := s.repo.CreateAssessment(ctx, a); err != nil {
			return nil, err
		}
		s.log.Infof("Assessment %s created for user %d", a.ID, userID)
		return a, nil
	}

	if err := s.repo.UpdateAssessment(ctx, a); err != nil {
		return nil, err
	}
	s.log.Infof("Assessment %s updated for user %d", a.ID, userID)
	return a, nil
}

// GetAssessment loads one of the user's assessments
func (s *Service) GetAssessment(ctx context.Context, userID int64, id uuid.UUID) (*models.Assessment, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	return s.repo.GetAssessment(ctx, id, userID)
}

// ListAssessments lists the user's assessments
func (s *Service) ListAssessments(ctx context.Context, userID int64) ([]models.AssessmentSummary, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	return s.repo.ListAssessments(ctx, userID)
}

// DeleteAssessment removes one of the user's assessments
func (s *Service) DeleteAssessment(ctx context.Context, userID int64, id uuid.UUID) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	if err := s.repo.DeleteAssessment(ctx, id, userID); err != nil {
		return err
	}
	s.log.Infof("Assessment %s deleted for user %d", id, userID)
	return nil
}

// AssessmentReport evaluates a stored assessment
func (s *Service) AssessmentReport(ctx context.Context, userID int64, id uuid.UUID) (*models.Assessment, models.Report, error) {
	a, err := s.GetAssessment(ctx, userID, id)
	if err != nil {
		return nil, models.Report{}, err
	}
	report, err := s.Evaluate(ctx, a.Snapshot)
	if err != nil {
		return nil, models.Report{}, err
	}
	return a, report, nil
}

// EmailAssessment sends the report of a stored assessment to its owner
func (s *Service) EmailAssessment(ctx context.Context, userID int64, id uuid.UUID) error {
	a, report, err := s.AssessmentReport(ctx, userID, id)
	if err != nil {
		return err
	}
	user, err := s.repo.FindUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.mailer.SendAssessmentSummary(ctx, user.Email, user.Username, a.Name, report); err != nil {
		return fmt.Errorf("failed to email assessment %s: %w", id, err)
	}
	return nil
}
