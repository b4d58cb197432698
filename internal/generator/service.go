package generator

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/evamarchetti/lessonplanner-backend/pkg/db/models"
	pkgerrors "github.com/evamarchetti/lessonplanner-backend/pkg/errors"
)

// SettingsStore gives the generator read access to per-user settings for key
// resolution.
type SettingsStore interface {
	Get(ctx context.Context, userID uuid.UUID) (*models.Setting, error)
}

// Request carries the lesson parameters. UseAPIKey switches the completion
// call to the caller's stored key instead of the deployment default.
type Request struct {
	Subject           string `json:"subject" validate:"required"`
	GradeLevel        string `json:"gradeLevel" validate:"required"`
	LearningObjective string `json:"learningObjective" validate:"required"`
	UseAPIKey         bool   `json:"useApiKey"`
}

// Service turns a generation request into a structured lesson plan document.
type Service struct {
	client     ChatClient
	settings   SettingsStore
	defaultKey string
	now        func() time.Time
	newID      func() uuid.UUID
}

func NewService(client ChatClient, settings SettingsStore, defaultKey string) *Service {
	return &Service{
		client:     client,
		settings:   settings,
		defaultKey: defaultKey,
		now:        time.Now,
		newID:      uuid.New,
	}
}

// Generate resolves the API key, calls the completion API and parses the
// reply into a plan document stamped with an id and creation time.
func (s *Service) Generate(ctx context.Context, userID uuid.UUID, req Request) (map[string]any, error) {
	apiKey, err := s.resolveKey(ctx, userID, req.UseAPIKey)
	if err != nil {
		return nil, err
	}
	if apiKey == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "No API key configured")
	}

	content, err := s.client.Complete(ctx, apiKey, systemPrompt, buildPrompt(req.Subject, req.GradeLevel, req.LearningObjective))
	if err != nil {
		return nil, err
	}

	var plan map[string]any
	if err := json.Unmarshal([]byte(content), &plan); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "completion reply is not valid JSON")
	}
	if plan == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "completion reply is not a JSON object")
	}

	plan["id"] = s.newID().String()
	plan["createdAt"] = s.now().UTC().Format(time.RFC3339)

	return plan, nil
}

func (s *Service) resolveKey(ctx context.Context, userID uuid.UUID, useStoredKey bool) (string, error) {
	key := s.defaultKey
	if !useStoredKey {
		return key, nil
	}

	setting, err := s.settings.Get(ctx, userID)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading settings")
	}
	if setting != nil && setting.APIKey != nil && *setting.APIKey != "" {
		key = *setting.APIKey
	}
	return key, nil
}
