package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/repfit/repfit-server/internal/api/handlers"
	"github.com/repfit/repfit-server/internal/api/middleware"
	"github.com/repfit/repfit-server/internal/service"
)

func NewRouter(services *service.Services) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth)
	userHandler := handlers.NewUserHandler(services.User)
	routineHandler := handlers.NewRoutineHandler(services.Routine)
	logHandler := handlers.NewLogHandler(services.Log)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public auth routes
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(services.Auth))

			r.Route("/users/me", func(r chi.Router) {
				r.Get("/", userHandler.Me)
				r.Patch("/", userHandler.UpdateMe)
				r.Delete("/", userHandler.DeleteMe)
			})

			r.Route("/routines", func(r chi.Router) {
				r.Post("/", routineHandler.Create)
				r.Get("/", routineHandler.List)
				r.Get("/{routineID}", routineHandler.Get)
				r.Patch("/{routineID}", routineHandler.Update)
				r.Delete("/{routineID}", routineHandler.Delete)

				r.Post("/{routineID}/exercises", routineHandler.AddExercise)
				r.Patch("/{routineID}/exercises/{exerciseID}", routineHandler.UpdateExercise)
				r.Delete("/{routineID}/exercises/{exerciseID}", routineHandler.DeleteExercise)
			})

			r.Route("/logs", func(r chi.Router) {
				r.Post("/", logHandler.Create)
				r.Get("/", logHandler.List)
				r.Get("/{logID}", logHandler.Get)
				r.Patch("/{logID}", logHandler.Update)
				r.Delete("/{logID}", logHandler.Delete)

				r.Post("/{logID}/workouts", logHandler.AddWorkout)
				r.Delete("/{logID}/workouts/{workoutID}", logHandler.DeleteWorkout)
			})
		})
	})

	return r
}
