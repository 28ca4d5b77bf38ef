package models

import (
	"time"

	"github.com/google/uuid"
)

// Assessment represents a saved snapshot owned by a user
type Assessment struct {
	ID        uuid.UUID `json:"id"`
	UserID    int64     `json:"user_id"`
	Name      string    `json:"name"`
	Snapshot  Snapshot  `json:"snapshot"`
	RiskLevel RiskLevel `json:"risk_level"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AssessmentSummary is the listing view of a saved assessment
type AssessmentSummary struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	RiskLevel RiskLevel `json:"risk_level" db:"risk_level"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
