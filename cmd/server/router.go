package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mockmate/mockmate-api/internal/api"
	apiMiddleware "github.com/mockmate/mockmate-api/internal/api/middleware"
)

// setupRouter configures the application router with all routes and
// middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(apiMiddleware.Trace(app.logger))
	r.Use(apiMiddleware.Metrics)

	authHandler := api.NewAuthHandler(
		app.userStore,
		app.jwtService,
		app.passwordHasher,
		app.passwordVerifier,
		app.logger,
	)
	questionHandler := api.NewQuestionHandler(
		app.rotationService,
		app.generator,
		app.fallback,
		app.logger,
	)
	attemptHandler := api.NewAttemptHandler(
		app.attemptService,
		app.analyticsService,
		app.logger,
	)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/topics", questionHandler.GetTopics)
			r.Get("/questions/{topic}", questionHandler.GetQuestions)
			r.Post("/questions/generate", questionHandler.GenerateQuestion)

			r.Post("/attempts", attemptHandler.SubmitAttempt)
			r.Get("/attempts", attemptHandler.ListAttempts)
			r.Get("/analytics", attemptHandler.GetAnalytics)
		})
	})

	r.Get("/health", app.healthHandler)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
