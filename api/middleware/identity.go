package middleware

import (
	"context"
	"net/http"

	"github.com/evamarchetti/lessonplanner-backend/pkg/db/models"
	"github.com/evamarchetti/lessonplanner-backend/pkg/logger"
)

// SessionResolver maps a session cookie value to its user. A nil user with a
// nil error means the request is anonymous.
type SessionResolver interface {
	Resolve(ctx context.Context, sessionID string) (*models.User, error)
}

// Identity resolves the session cookie into a user and attaches it to the
// request context. Resolution failures degrade to anonymous rather than
// failing the request; protected routes reject anonymous callers downstream.
func Identity(resolver SessionResolver, cookieName string, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			cookie, err := r.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			user, err := resolver.Resolve(ctx, cookie.Value)
			if err != nil {
				if logg != nil {
					logg.Warn(ctx, "session resolution failed, treating request as anonymous")
				}
				next.ServeHTTP(w, r)
				return
			}
			if user == nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx = WithUser(ctx, user)
			if logg != nil {
				ctx = logg.WithUserID(ctx, user.ID.String())
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
