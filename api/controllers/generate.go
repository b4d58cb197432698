package controllers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/evamarchetti/lessonplanner-backend/api/middleware"
	"github.com/evamarchetti/lessonplanner-backend/api/responses"
	"github.com/evamarchetti/lessonplanner-backend/api/validators"
	"github.com/evamarchetti/lessonplanner-backend/internal/generator"
	"github.com/evamarchetti/lessonplanner-backend/pkg/logger"
)

// GeneratorService is the slice of the generator the controller needs.
type GeneratorService interface {
	Generate(ctx context.Context, userID uuid.UUID, req generator.Request) (map[string]any, error)
}

// Generate produces a lesson plan document from the completion API. The
// result is returned to the caller and not persisted.
func Generate(svc GeneratorService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middleware.UserFromContext(r.Context())

		var payload generator.Request
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		plan, err := svc.Generate(r.Context(), user.ID, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteJSON(w, http.StatusOK, map[string]any{"lessonPlan": plan})
	}
}
