package plans

import (
	"context"

	"github.com/evamarchetti/lessonplanner-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository persists a user's private saved plans. Plans are append-only:
// there is no update or delete path.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a plans repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a saved plan row.
func (r *Repository) Create(ctx context.Context, plan *models.LessonPlan) error {
	return r.db.WithContext(ctx).Create(plan).Error
}

// ListByUser returns all of the user's plans, newest first.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.LessonPlan, error) {
	var rows []models.LessonPlan
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CommunityRepository persists publicly shared plans.
type CommunityRepository struct {
	db *gorm.DB
}

// NewCommunityRepository constructs a community repo bound to the provided GORM DB.
func NewCommunityRepository(db *gorm.DB) *CommunityRepository {
	return &CommunityRepository{db: db}
}

// Create inserts a shared plan row.
func (r *CommunityRepository) Create(ctx context.Context, plan *models.CommunityPlan) error {
	return r.db.WithContext(ctx).Create(plan).Error
}

// ListRecent returns up to limit shared plans ordered by share time descending.
func (r *CommunityRepository) ListRecent(ctx context.Context, limit int) ([]models.CommunityPlan, error) {
	var rows []models.CommunityPlan
	err := r.db.WithContext(ctx).
		Order("shared_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
