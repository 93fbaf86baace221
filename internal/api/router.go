package api

import (
	"net/http"
	"time"

	"telco_dash/internal/api/handler"
	authmw "telco_dash/internal/api/middleware"
	"telco_dash/internal/app/service"
	"telco_dash/internal/domain"
	"telco_dash/internal/platform/config"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func NewRouter(auth domain.Authenticator) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// The dashboard SPA runs on a different dev origin and sends the
	// session cookie, so CORS must allow credentials.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   config.AppConfig.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// Server-mode sessions are signed tokens the middleware can verify
	// before a handler runs. Local-mode sessions are storage markers only
	// the local service can resolve, so its routes rely on the
	// service-level checks alone; every operation enforces them either
	// way.
	var sessionGuard, adminGuard []func(http.Handler) http.Handler
	if _, ok := auth.(*service.AuthService); ok {
		sessionGuard = []func(http.Handler) http.Handler{authmw.Verifier, authmw.Authenticator}
		adminGuard = append(sessionGuard, authmw.AdminOnly)
	}

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	authHandler := handler.NewAuthHandler(auth)
	userHandler := handler.NewUserHandler(auth)

	r.Route("/api", func(api chi.Router) {
		api.Route("/auth", func(ar chi.Router) {
			authHandler.RegisterRoutes(ar, sessionGuard...)
		})

		api.Route("/users", func(users chi.Router) {
			users.Use(adminGuard...)
			userHandler.RegisterRoutes(users)
		})
	})

	return r
}
