package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/isdelr/scribe-be/internal/api/handlers"
	"github.com/isdelr/scribe-be/internal/services"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"
)

// Options tunes the router for the deployment environment.
type Options struct {
	AllowedOrigins []string
	SecureCookies  bool
}

// NewRouter creates and configures a new Chi router.
func NewRouter(
	opts Options,
	userService services.UserServiceProvider,
	challengeService services.ChallengeServiceProvider,
	progressService services.ProgressServiceProvider,
) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(hlog.NewHandler(log.Logger))
	r.Use(hlog.AccessHandler(accessLog))
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService, opts.SecureCookies)
	challengeHandler := handlers.NewChallengeHandler(challengeService)
	progressHandler := handlers.NewProgressHandler(progressService, userService)

	r.Route("/api", func(r chi.Router) {
		r.Post("/register", userHandler.Register)
		r.Post("/login", userHandler.Login)
		r.Get("/profile", userHandler.Profile)

		r.Route("/challenges", func(r chi.Router) {
			r.Get("/", challengeHandler.Search)
			r.Post("/", challengeHandler.Create)
			r.Get("/{id}", challengeHandler.Get)
		})

		r.Route("/progress", func(r chi.Router) {
			r.Get("/", progressHandler.Get)
			r.Post("/add", progressHandler.Add)
		})
	})

	return r
}

func accessLog(r *http.Request, status, size int, duration time.Duration) {
	hlog.FromRequest(r).Info().
		Str("request_id", middleware.GetReqID(r.Context())).
		Str("method", r.Method).
		Str("url", r.URL.String()).
		Int("status", status).
		Int("size", size).
		Dur("duration", duration).
		Msg("Handled request")
}
