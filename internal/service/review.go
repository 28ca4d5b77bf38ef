package service

import (
	"context"

	"github.com/Dan9191/gcare-service/internal/models"
	"github.com/Dan9191/gcare-service/internal/utils/email"
)

type owner struct {
	email    string
	username string
	entries  []email.DigestEntry
}

// needsReview flags high risk or a deficit under stress
func needsReview(r models.Report) bool {
	return r.Metrics.RiskLevel == models.RiskHigh || r.Metrics.Stressed.Surplus < 0
}

// ReviewStoredAssessments re-evaluates every stored assessment and emails each
// owner a digest of the flagged ones. It returns the number of digests sent.
// A failed delivery is logged and does not stop the remaining owners.
func (s *Service) ReviewStoredAssessments(ctx context.Context) (int, error) {
	stored, err := s.repo.ListOwnedAssessments(ctx)
	if err != nil {
		return 0, err
	}

	var order []int64
	owners := map[int64]*owner{}
	for _, item := range stored {
		a := item.Assessment
		report, err := s.Evaluate(ctx, a.Snapshot)
		if err != nil {
			s.log.Warnf("Failed to evaluate assessment %s: %v", a.ID, err)
			continue
		}
		if report.Metrics.RiskLevel != a.RiskLevel {
			s.log.Debugf("Assessment %s risk changed from %s to %s", a.ID, a.RiskLevel, report.Metrics.RiskLevel)
		}
		if !needsReview(report) {
			continue
		}

		o, ok := owners[a.UserID]
		if !ok {
			o = &owner{email: item.Email, username: item.Username}
			owners[a.UserID] = o
			order = append(order, a.UserID)
		}
		o.entries = append(o.entries, email.DigestEntry{
			Name:            a.Name,
			RiskLevel:       report.Metrics.RiskLevel,
			StressedSurplus: report.Metrics.Stressed.Surplus,
			Currency:        report.Currency,
		})
	}

	sent := 0
	for _, id := range order {
		if err := ctx.Err(); err != nil {
			return sent, err
		}
		o := owners[id]
		if err := s.mailer.SendReviewDigest(ctx, o.email, o.username, o.entries); err != nil {
			s.log.Errorf("Failed to send review digest to user %d: %v", id, err)
			continue
		}
		sent++
	}

	s.log.Infof("Reviewed %d assessments, sent %d digests", len(stored), sent)
	return sent, nil
}
