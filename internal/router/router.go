package router

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"go-auth-api/internal/config"
	"go-auth-api/internal/handler"
	"go-auth-api/internal/middleware"
)

type HealthChecker func(ctx context.Context) error

func New(
	cfg *config.Config,
	authMiddleware *middleware.AuthMiddleware,
	authHandler *handler.AuthHandler,
	health HealthChecker,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		if health != nil {
			if err := health(req.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("unavailable"))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api/auth", func(api chi.Router) {
		api.Use(middleware.Timeout(cfg.RequestTimeout))

		api.Post("/signup", authHandler.Signup)
		api.Post("/login", authHandler.Login)
		api.With(authMiddleware.RequireAuth).Get("/protected", authHandler.Protected)
		api.With(authMiddleware.RequireAuth).Get("/me", authHandler.Me)
	})

	return r
}
