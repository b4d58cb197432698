package sessions

import (
	"context"
	"errors"
	"time"

	"github.com/evamarchetti/lessonplanner-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository exposes session persistence. Expiry is passive: expired rows
// stay in the table and are filtered out on lookup.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a sessions repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new session row.
func (r *Repository) Create(ctx context.Context, session *models.Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

// FindActive returns the session only when it exists and has not expired;
// a missing or expired session yields (nil, nil).
func (r *Repository) FindActive(ctx context.Context, id string, now time.Time) (*models.Session, error) {
	var session models.Session
	err := r.db.WithContext(ctx).
		Where("id = ? AND expires_at > ?", id, now).
		First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// Delete removes the session row; deleting an absent row is not an error.
func (r *Repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Session{}, "id = ?", id).Error
}
