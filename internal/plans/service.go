package plans

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/evamarchetti/lessonplanner-backend/pkg/db/models"
	dbtypes "github.com/evamarchetti/lessonplanner-backend/pkg/db/types"
	pkgerrors "github.com/evamarchetti/lessonplanner-backend/pkg/errors"
)

// CommunityListLimit caps how many shared plans the public feed returns.
const CommunityListLimit = 50

// Store is the persistence surface for a user's private plans.
type Store interface {
	Create(ctx context.Context, plan *models.LessonPlan) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.LessonPlan, error)
}

// CommunityStore is the persistence surface for publicly shared plans.
type CommunityStore interface {
	Create(ctx context.Context, plan *models.CommunityPlan) error
	ListRecent(ctx context.Context, limit int) ([]models.CommunityPlan, error)
}

// planFields are the scalar columns denormalized out of the plan document.
type planFields struct {
	Title             string `json:"title"`
	Subject           string `json:"subject"`
	GradeLevel        string `json:"gradeLevel"`
	LearningObjective string `json:"learningObjective"`
}

// Service owns saving, listing and sharing of lesson plan documents.
type Service struct {
	store     Store
	community CommunityStore
}

func NewService(store Store, community CommunityStore) *Service {
	return &Service{store: store, community: community}
}

// Save stores the full plan document alongside denormalized scalar columns
// and returns the new row id.
func (s *Service) Save(ctx context.Context, userID uuid.UUID, doc json.RawMessage) (uuid.UUID, error) {
	fields, err := extractFields(doc)
	if err != nil {
		return uuid.Nil, err
	}

	plan := &models.LessonPlan{
		UserID:            userID,
		Title:             fields.Title,
		Subject:           fields.Subject,
		GradeLevel:        fields.GradeLevel,
		LearningObjective: fields.LearningObjective,
		PlanData:          dbtypes.JSONDocument(doc),
	}
	if err := s.store.Create(ctx, plan); err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "saving plan")
	}
	return plan.ID, nil
}

// List returns the caller's saved plans newest first, each expanded from its
// stored document with the row id attached as dbId.
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]map[string]any, error) {
	rows, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing plans")
	}

	out := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		doc, err := expandDocument(row.PlanData)
		if err != nil {
			return nil, err
		}
		doc["dbId"] = row.ID.String()
		out = append(out, doc)
	}
	return out, nil
}

// Share publishes a plan to the community feed. The sharer is recorded as
// the local part of their email at share time.
func (s *Service) Share(ctx context.Context, user *models.User, doc json.RawMessage) (uuid.UUID, error) {
	fields, err := extractFields(doc)
	if err != nil {
		return uuid.Nil, err
	}

	plan := &models.CommunityPlan{
		UserID:            user.ID,
		SharedBy:          emailLocalPart(user.Email),
		Title:             fields.Title,
		Subject:           fields.Subject,
		GradeLevel:        fields.GradeLevel,
		LearningObjective: fields.LearningObjective,
		PlanData:          dbtypes.JSONDocument(doc),
	}
	if err := s.community.Create(ctx, plan); err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "sharing plan")
	}
	return plan.ID, nil
}

// Community returns the newest shared plans, capped at CommunityListLimit,
// each expanded with the row id, sharer and share time attached.
func (s *Service) Community(ctx context.Context) ([]map[string]any, error) {
	rows, err := s.community.ListRecent(ctx, CommunityListLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing community plans")
	}

	out := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		doc, err := expandDocument(row.PlanData)
		if err != nil {
			return nil, err
		}
		doc["dbId"] = row.ID.String()
		doc["sharedBy"] = row.SharedBy
		doc["sharedAt"] = row.SharedAt.UTC().Format(time.RFC3339)
		out = append(out, doc)
	}
	return out, nil
}

func extractFields(doc json.RawMessage) (*planFields, error) {
	var obj map[string]any
	if err := json.Unmarshal(doc, &obj); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "plan document is not valid JSON")
	}
	if obj == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "plan document must be a JSON object")
	}
	var fields planFields
	if err := json.Unmarshal(doc, &fields); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "plan document is not valid JSON")
	}
	return &fields, nil
}

func expandDocument(data dbtypes.JSONDocument) (map[string]any, error) {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "stored plan document is corrupt")
	}
	if doc == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "stored plan document is not an object")
	}
	return doc, nil
}

func emailLocalPart(email string) string {
	if i := strings.Index(email, "@"); i >= 0 {
		return email[:i]
	}
	return email
}
