package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Dan9191/gcare-service/internal/ingest"
	"github.com/Dan9191/gcare-service/internal/models"
	"github.com/Dan9191/gcare-service/internal/utils"
)

var (
	// ErrNotFound is returned when a row does not exist or belongs to another user
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a unique column already holds the value
	ErrConflict = errors.New("already exists")
)

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

// Repository provides database operations
type Repository struct {
	db      *sqlx.DB
	sealKey []byte
}

// NewRepository initializes a new repository. Snapshots are sealed with sealKey at rest.
func NewRepository(db *sqlx.DB, sealKey []byte) *Repository {
	return &Repository{db: db, sealKey: sealKey}
}

// CreateUser creates a new user in the database
func (r *Repository) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO gcare.users (username, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRowxContext(ctx, query, user.Username, user.Email, user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if isUniqueViolation(err) {
		return fmt.Errorf("user %s %w", user.Email, ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindUserByEmail retrieves a user by email
func (r *Repository) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findUser(ctx, "email = $1", email)
}

// FindUserByID retrieves a user by id
func (r *Repository) FindUserByID(ctx context.Context, id int64) (*models.User, error) {
	return r.findUser(ctx, "id = $1", id)
}

func (r *Repository) findUser(ctx context.Context, where string, arg any) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, username, email, password_hash, created_at, updated_at
		FROM gcare.users
		WHERE ` + where
	err := r.db.GetContext(ctx, user, query, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

type assessmentRow struct {
	ID        uuid.UUID `db:"id"`
	UserID    int64     `db:"user_id"`
	Name      string    `db:"name"`
	RiskLevel string    `db:"risk_level"`
	Snapshot  []byte    `db:"snapshot"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r *Repository) seal(id uuid.UUID, s models.Snapshot) ([]byte, error) {
	payload, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	sealed, err := utils.Seal(payload, r.sealKey, []byte(id.String()))
	if err != nil {
		return nil, fmt.Errorf("failed to seal snapshot: %w", err)
	}
	return sealed, nil
}

func (r *Repository) toAssessment(row assessmentRow) (*models.Assessment, error) {
	payload, err := utils.Open(row.Snapshot, r.sealKey, []byte(row.ID.String()))
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot %s: %w", row.ID, err)
	}
	var s models.Snapshot
	if err := json.Unmarshal(payload, &s); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot %s: %w", row.ID, err)
	}
	s.ScenarioConfig = ingest.ScenarioConfigOrDefault(s.ScenarioConfig)

	return &models.Assessment{
		ID:        row.ID,
		UserID:    row.UserID,
		Name:      row.Name,
		Snapshot:  s,
		RiskLevel: models.RiskLevel(row.RiskLevel),
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}, nil
}

// CreateAssessment stores a new assessment and assigns its id when unset
func (r *Repository) CreateAssessment(ctx context.Context, a *models.Assessment) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	sealed, err := r.seal(a.ID, a.Snapshot)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO gcare.assessments (id, user_id, name, risk_level, snapshot, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING created_at, updated_at`
	err = r.db.QueryRowxContext(ctx, query, a.ID, a.UserID, a.Name, string(a.RiskLevel), sealed).
		Scan(&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create assessment: %w", err)
	}
	return nil
}

// UpdateAssessment replaces an assessment in place. CreatedAt is preserved.
func (r *Repository) UpdateAssessment(ctx context.Context, a *models.Assessment) error {
	sealed, err := r.seal(a.ID, a.Snapshot)
	if err != nil {
		return err
	}

	query := `
		UPDATE gcare.assessments
		SET name = $3, risk_level = $4, snapshot = $5, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND user_id = $2
		RETURNING created_at, updated_at`
	err = r.db.QueryRowxContext(ctx, query, a.ID, a.UserID, a.Name, string(a.RiskLevel), sealed).
		Scan(&a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("assessment %s %w", a.ID, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to update assessment: %w", err)
	}
	return nil
}

// GetAssessment retrieves one of the user's assessments
func (r *Repository) GetAssessment(ctx context.Context, id uuid.UUID, userID int64) (*models.Assessment, error) {
	var row assessmentRow
	query := `
		SELECT id, user_id, name, risk_level, snapshot, created_at, updated_at
		FROM gcare.assessments
		WHERE id = $1 AND user_id = $2`
	err := r.db.GetContext(ctx, &row, query, id, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("assessment %s %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find assessment: %w", err)
	}
	return r.toAssessment(row)
}

// ListAssessments lists the user's assessments, most recently updated first
func (r *Repository) ListAssessments(ctx context.Context, userID int64) ([]models.AssessmentSummary, error) {
	list := []models.AssessmentSummary{}
	query := `
		SELECT id, name, risk_level, created_at, updated_at
		FROM gcare.assessments
		WHERE user_id = $1
		ORDER BY updated_at DESC`
	if err := r.db.SelectContext(ctx, &list, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}
	return list, nil
}

// DeleteAssessment removes one of the user's assessments
func (r *Repository) DeleteAssessment(ctx context.Context, id uuid.UUID, userID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM gcare.assessments WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete assessment: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete assessment: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("assessment %s %w", id, ErrNotFound)
	}
	return nil
}

// OwnedAssessment pairs a stored assessment with its owner's contact details
type OwnedAssessment struct {
	Assessment models.Assessment
	Email      string
	Username   string
}

// ListOwnedAssessments returns every stored assessment with its owner
func (r *Repository) ListOwnedAssessments(ctx context.Context) ([]OwnedAssessment, error) {
	var rows []struct {
		assessmentRow
		Email    string `db:"email"`
		Username string `db:"username"`
	}
	query := `
		SELECT a.id, a.user_id, a.name, a.risk_level, a.snapshot, a.created_at, a.updated_at, u.email, u.username
		FROM gcare.assessments a
		JOIN gcare.users u ON u.id = a.user_id
		ORDER BY a.user_id, a.updated_at DESC`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}

	out := make([]OwnedAssessment, 0, len(rows))
	for _, row := range rows {
		a, err := r.toAssessment(row.assessmentRow)
		if err != nil {
			return nil, err
		}
		out = append(out, OwnedAssessment{Assessment: *a, Email: row.Email, Username: row.Username})
	}
	return out, nil
}
