package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/openhouselabs/openhouse-backend/api/controllers"
	"github.com/openhouselabs/openhouse-backend/api/middleware"
	"github.com/openhouselabs/openhouse-backend/internal/auth"
	"github.com/openhouselabs/openhouse-backend/internal/listings"
	"github.com/openhouselabs/openhouse-backend/internal/showings"
	"github.com/openhouselabs/openhouse-backend/pkg/config"
	"github.com/openhouselabs/openhouse-backend/pkg/logger"
	"github.com/openhouselabs/openhouse-backend/pkg/redis"
)

// Dependencies carries everything the router needs. Redis is optional; when
// nil the auth endpoints run without rate limiting.
type Dependencies struct {
	Config         *config.Config
	Logger         *logger.Logger
	DB             controllers.Pinger
	Redis          *redis.Client
	AgentRepo      middleware.AgentFinder
	AuthService    auth.Service
	ListingService listings.Service
	ShowingService showings.Service
}

// New assembles the full route table.
func New(deps Dependencies) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(middleware.Recoverer(logg))
	r.Use(middleware.RequestID(logg))
	r.Use(middleware.Logging(logg))
	r.Use(middleware.CORS(cfg.CORS))

	r.Get("/health/live", controllers.HealthLive())
	r.Get("/health/ready", controllers.HealthReady(deps.DB, logg))

	requireAuth := middleware.Auth(cfg.JWT, deps.AgentRepo, logg)

	loginLimit := noopMiddleware
	registerLimit := noopMiddleware
	if deps.Redis != nil {
		rl := cfg.AuthRateLimit
		loginLimit = middleware.AuthRateLimit(
			middleware.NewAuthRateLimitPolicy("login", rl.LoginWindow, rl.LoginIPLimit, rl.LoginEmailLimit),
			deps.Redis, logg)
		registerLimit = middleware.AuthRateLimit(
			middleware.NewAuthRateLimitPolicy("register", rl.RegisterWindow, rl.RegisterIPLimit, rl.RegisterEmailLimit),
			deps.Redis, logg)
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(registerLimit).Post("/register", controllers.AuthRegister(deps.AuthService, logg))
			r.With(loginLimit).Post("/login", controllers.AuthLogin(deps.AuthService, logg))
			r.With(requireAuth).Get("/me", controllers.AuthMe(deps.AuthService, logg))
		})

		r.Route("/listings", func(r chi.Router) {
			r.Get("/", controllers.ListListings(deps.ListingService, logg))
			r.Get("/{id}", controllers.GetListing(deps.ListingService, logg))

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/", controllers.CreateListing(deps.ListingService, logg))
				r.Put("/{id}", controllers.UpdateListing(deps.ListingService, logg))
				r.Patch("/{id}", controllers.UpdateListing(deps.ListingService, logg))
				r.Delete("/{id}", controllers.DeleteListing(deps.ListingService, logg))
			})
		})

		r.Route("/showings", func(r chi.Router) {
			r.Post("/", controllers.CreateShowing(deps.ShowingService, logg))
			r.Get("/{id}", controllers.GetShowing(deps.ShowingService, logg))

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Get("/", controllers.ListShowings(deps.ShowingService, logg))
				r.Get("/count/pending", controllers.PendingShowingsCount(deps.ShowingService, logg))
				r.Patch("/{id}", controllers.UpdateShowingStatus(deps.ShowingService, logg))
				r.Patch("/{id}/status", controllers.UpdateShowingStatus(deps.ShowingService, logg))
				r.Patch("/{id}/feedback", controllers.UpdateShowingFeedback(deps.ShowingService, logg))
				r.Delete("/{id}", controllers.DeleteShowing(deps.ShowingService, logg))
			})
		})
	})

	return r
}

func noopMiddleware(next http.Handler) http.Handler { return next }
