package middleware

import (
	"net/http"

	"github.com/evamarchetti/lessonplanner-backend/api/responses"
	pkgerrors "github.com/evamarchetti/lessonplanner-backend/pkg/errors"
	"github.com/evamarchetti/lessonplanner-backend/pkg/logger"
)

// RequireUser rejects anonymous requests with a 401 before the handler runs.
func RequireUser(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if UserFromContext(r.Context()) == nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "Unauthorized"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
