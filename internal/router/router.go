package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"assessment-genie/internal/config"
	"assessment-genie/internal/handler"
	"assessment-genie/internal/middleware"
)

type Handlers struct {
	Auth      *handler.AuthHandler
	Blueprint *handler.BlueprintHandler
	Topic     *handler.TopicHandler
}

func New(cfg *config.Config, authMiddleware *middleware.AuthMiddleware, h Handlers) http.Handler {
	r := chi.NewRouter()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.SecurityHeaders)
	r.Use(rateLimitMiddleware.Handler)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api/v1", func(api chi.Router) {
		api.Use(middleware.Timeout(cfg.RequestTimeout))

		api.Route("/auth", func(auth chi.Router) {
			auth.Post("/signup", h.Auth.Signup)
			auth.Post("/login", h.Auth.Login)
			auth.Post("/google", h.Auth.Google)
			auth.With(authMiddleware.RequireAuth).Get("/me", h.Auth.Me)
		})

		api.With(authMiddleware.RequireAuth).Post("/blueprints", h.Blueprint.Create)
		api.With(authMiddleware.RequireAuth).Get("/blueprints", h.Blueprint.List)

		api.With(authMiddleware.RequireAuth).Post("/topic-requests", h.Topic.Create)
		api.With(authMiddleware.RequireAuth, authMiddleware.RequireRoles("admin")).Get("/topic-requests", h.Topic.List)
		api.With(authMiddleware.RequireAuth, authMiddleware.RequireRoles("admin")).Put("/topic-requests/{id}/status", h.Topic.UpdateStatus)
	})

	return r
}
