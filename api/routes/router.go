package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/evamarchetti/lessonplanner-backend/api/controllers"
	"github.com/evamarchetti/lessonplanner-backend/api/middleware"
	"github.com/evamarchetti/lessonplanner-backend/api/responses"
	"github.com/evamarchetti/lessonplanner-backend/pkg/config"
	"github.com/evamarchetti/lessonplanner-backend/pkg/db"
	pkgerrors "github.com/evamarchetti/lessonplanner-backend/pkg/errors"
	"github.com/evamarchetti/lessonplanner-backend/pkg/logger"
	"github.com/evamarchetti/lessonplanner-backend/pkg/metrics"
)

// AuthService combines the handler surface with session resolution for the
// identity middleware.
type AuthService interface {
	controllers.AuthService
	middleware.SessionResolver
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	httpMetrics *metrics.HTTPMetrics,
	metricsHandler http.Handler,
	authService AuthService,
	settingsService controllers.SettingsService,
	generatorService controllers.GeneratorService,
	plansService controllers.PlansService,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)
	if httpMetrics != nil {
		r.Use(middleware.Metrics(httpMetrics))
	}

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		responses.WriteError(req.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "Not Found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		responses.WriteError(req.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "Not Found"))
	})

	r.Get("/healthz", controllers.HealthLive(cfg))
	r.Get("/readyz", controllers.HealthReady(cfg, dbP))
	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.Identity(authService, cfg.Session.CookieName, logg))

		r.Get("/auth/google", controllers.GoogleLogin(authService, cfg, logg))
		r.Get("/auth/google/callback", controllers.GoogleCallback(authService, cfg, logg))
		r.Get("/auth/me", controllers.Me())
		r.Post("/auth/logout", controllers.Logout(authService, cfg, logg))

		r.Get("/community-plans", controllers.CommunityList(plansService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireUser(logg))

			r.Get("/settings", controllers.SettingsGet(settingsService, logg))
			r.Post("/settings", controllers.SettingsSave(settingsService, logg))

			r.Post("/generate", controllers.Generate(generatorService, logg))

			r.Get("/plans", controllers.PlansList(plansService, logg))
			r.Post("/plans", controllers.PlansSave(plansService, logg))

			r.Post("/community-plans", controllers.CommunityShare(plansService, logg))
		})
	})

	return r
}
