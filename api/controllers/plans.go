package controllers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/evamarchetti/lessonplanner-backend/api/middleware"
	"github.com/evamarchetti/lessonplanner-backend/api/responses"
	"github.com/evamarchetti/lessonplanner-backend/api/validators"
	"github.com/evamarchetti/lessonplanner-backend/pkg/db/models"
	"github.com/evamarchetti/lessonplanner-backend/pkg/logger"
)

// PlansService is the slice of the plans service the controllers need.
type PlansService interface {
	Save(ctx context.Context, userID uuid.UUID, doc json.RawMessage) (uuid.UUID, error)
	List(ctx context.Context, userID uuid.UUID) ([]map[string]any, error)
	Share(ctx context.Context, user *models.User, doc json.RawMessage) (uuid.UUID, error)
	Community(ctx context.Context) ([]map[string]any, error)
}

// PlansList returns the caller's saved plans, newest first.
func PlansList(svc PlansService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middleware.UserFromContext(r.Context())

		plans, err := svc.List(r.Context(), user.ID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteJSON(w, http.StatusOK, map[string]any{"plans": plans})
	}
}

// PlansSave stores the posted plan document for the caller.
func PlansSave(svc PlansService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middleware.UserFromContext(r.Context())

		doc, err := validators.ReadJSONDocument(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := svc.Save(r.Context(), user.ID, doc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteJSON(w, http.StatusOK, map[string]any{"success": true, "id": id.String()})
	}
}

// CommunityList returns the newest publicly shared plans. It is open to
// anonymous callers.
func CommunityList(svc PlansService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		plans, err := svc.Community(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteJSON(w, http.StatusOK, map[string]any{"plans": plans})
	}
}

// CommunityShare publishes the posted plan document to the community feed.
func CommunityShare(svc PlansService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middleware.UserFromContext(r.Context())

		doc, err := validators.ReadJSONDocument(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := svc.Share(r.Context(), user, doc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteJSON(w, http.StatusOK, map[string]any{"success": true, "id": id.String()})
	}
}
