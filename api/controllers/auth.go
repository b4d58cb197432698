package controllers

import (
	"context"
	"net/http"

	"github.com/evamarchetti/lessonplanner-backend/api/middleware"
	"github.com/evamarchetti/lessonplanner-backend/api/responses"
	"github.com/evamarchetti/lessonplanner-backend/internal/auth"
	"github.com/evamarchetti/lessonplanner-backend/pkg/config"
	"github.com/evamarchetti/lessonplanner-backend/pkg/db/models"
	pkgerrors "github.com/evamarchetti/lessonplanner-backend/pkg/errors"
	"github.com/evamarchetti/lessonplanner-backend/pkg/logger"
)

const stateCookieName = "oauth_state"

// AuthService is the slice of the auth service the controllers need.
type AuthService interface {
	LoginURL(state string) string
	HandleCallback(ctx context.Context, code string) (*models.User, *models.Session, error)
	Logout(ctx context.Context, sessionID string) error
}

// GoogleLogin issues a state cookie and redirects to the provider's consent
// screen.
func GoogleLogin(svc AuthService, cfg *config.Config, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state, err := auth.NewState()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     stateCookieName,
			Value:    state,
			Path:     "/",
			MaxAge:   600,
			HttpOnly: true,
			Secure:   cfg.Session.CookieSecure,
			SameSite: http.SameSiteLaxMode,
		})

		http.Redirect(w, r, svc.LoginURL(state), http.StatusFound)
	}
}

// GoogleCallback verifies the state cookie, completes the code exchange and
// opens the session before redirecting back to the app.
func GoogleCallback(svc AuthService, cfg *config.Config, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clearCookie(w, stateCookieName, cfg.Session.CookieSecure)

		state := r.URL.Query().Get("state")
		stateCookie, err := r.Cookie(stateCookieName)
		if err != nil || state == "" || stateCookie.Value != state {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "Invalid OAuth state"))
			return
		}

		code := r.URL.Query().Get("code")
		if code == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "No code provided"))
			return
		}

		_, session, err := svc.HandleCallback(r.Context(), code)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     cfg.Session.CookieName,
			Value:    session.ID,
			Path:     "/",
			MaxAge:   cfg.Session.MaxAge(),
			HttpOnly: true,
			Secure:   cfg.Session.CookieSecure,
			SameSite: http.SameSiteLaxMode,
		})

		http.Redirect(w, r, "/", http.StatusFound)
	}
}

// Me reports the authenticated user, or null for anonymous callers. It never
// returns 401.
func Me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middleware.UserFromContext(r.Context())
		if user == nil {
			responses.WriteJSON(w, http.StatusOK, map[string]any{"user": nil})
			return
		}
		responses.WriteJSON(w, http.StatusOK, map[string]any{"user": user})
	}
}

// Logout deletes the session row if one exists and expires the cookie.
func Logout(svc AuthService, cfg *config.Config, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie(cfg.Session.CookieName); err == nil && cookie.Value != "" {
			if err := svc.Logout(r.Context(), cookie.Value); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}

		clearCookie(w, cfg.Session.CookieName, cfg.Session.CookieSecure)
		responses.WriteJSON(w, http.StatusOK, map[string]any{"success": true})
	}
}

func clearCookie(w http.ResponseWriter, name string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
