package settings

import (
	"context"

	"github.com/google/uuid"

	"github.com/evamarchetti/lessonplanner-backend/pkg/db/models"
	pkgerrors "github.com/evamarchetti/lessonplanner-backend/pkg/errors"
)

// Store is the persistence surface for per-user settings.
type Store interface {
	Get(ctx context.Context, userID uuid.UUID) (*models.Setting, error)
	Upsert(ctx context.Context, setting *models.Setting) error
}

// SaveRequest carries both settings fields. An empty field clears the stored
// value rather than preserving it.
type SaveRequest struct {
	APIKey  string `json:"apiKey"`
	GPTLink string `json:"gptLink"`
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Get returns the caller's settings row, or nil when none has been saved yet.
func (s *Service) Get(ctx context.Context, userID uuid.UUID) (*models.Setting, error) {
	setting, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading settings")
	}
	return setting, nil
}

// Save overwrites the caller's settings row. Both fields are written
// unconditionally, so the last save wins in full.
func (s *Service) Save(ctx context.Context, userID uuid.UUID, req SaveRequest) error {
	setting := &models.Setting{
		UserID:  userID,
		APIKey:  nullable(req.APIKey),
		GPTLink: nullable(req.GPTLink),
	}
	if err := s.store.Upsert(ctx, setting); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "saving settings")
	}
	return nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
