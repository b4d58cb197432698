package controllers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/evamarchetti/lessonplanner-backend/api/middleware"
	"github.com/evamarchetti/lessonplanner-backend/api/responses"
	"github.com/evamarchetti/lessonplanner-backend/api/validators"
	settingssvc "github.com/evamarchetti/lessonplanner-backend/internal/settings"
	"github.com/evamarchetti/lessonplanner-backend/pkg/db/models"
	"github.com/evamarchetti/lessonplanner-backend/pkg/logger"
)

// SettingsService is the slice of the settings service the controllers need.
type SettingsService interface {
	Get(ctx context.Context, userID uuid.UUID) (*models.Setting, error)
	Save(ctx context.Context, userID uuid.UUID, req settingssvc.SaveRequest) error
}

// SettingsGet returns the caller's stored settings, or an empty object when
// nothing has been saved yet.
func SettingsGet(svc SettingsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middleware.UserFromContext(r.Context())

		setting, err := svc.Get(r.Context(), user.ID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if setting == nil {
			responses.WriteJSON(w, http.StatusOK, map[string]any{})
			return
		}
		responses.WriteJSON(w, http.StatusOK, setting)
	}
}

// SettingsSave overwrites the caller's settings row.
func SettingsSave(svc SettingsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middleware.UserFromContext(r.Context())

		var payload settingssvc.SaveRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Save(r.Context(), user.ID, payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteJSON(w, http.StatusOK, map[string]any{"success": true})
	}
}
