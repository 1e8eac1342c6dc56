package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/ndcacricket/registration-system/handlers"
	"github.com/ndcacricket/registration-system/middleware"
	"github.com/ndcacricket/registration-system/services"
)

type Handlers struct {
	Auth       *handlers.AuthHandler
	Tournament *handlers.TournamentHandler
	Team       *handlers.TeamHandler
	Player     *handlers.PlayerHandler
	News       *handlers.NewsHandler
	Enrollment *handlers.EnrollmentHandler
	Dashboard  *handlers.DashboardHandler
	Live       *handlers.LiveHandler
}

type Options struct {
	AllowedOrigins []string
	JWTSecret      string
	// UploadDir is served under /uploads/ when set; with the R2 driver files
	// are fetched from the bucket's public URL instead and the prefix stays
	// unmounted.
	UploadDir string
}

func SetupRoutes(router *chi.Mux, h Handlers, opts Options) {
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Route("/auth", func(r chi.Router) {
		r.Post("/admin/login", h.Auth.AdminLoginHandler)
		r.Post("/captain/login", h.Auth.CaptainLoginHandler)
		r.Post("/logout", h.Auth.LogoutHandler)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(opts.JWTSecret))
			r.Get("/me", h.Auth.MeHandler)
		})
	})

	router.Route("/tournaments", func(r chi.Router) {
		r.Get("/", h.Tournament.ListHandler)
		r.Get("/names", h.Tournament.ListNamesHandler)
		r.Get("/{id}", h.Tournament.GetByIDHandler)
		r.Post("/", h.Tournament.CreateHandler)
		r.Put("/{id}", h.Tournament.UpdateHandler)
		r.Delete("/{id}", h.Tournament.DeleteHandler)
	})

	router.Route("/teams", func(r chi.Router) {
		r.Get("/", h.Team.ListHandler)
		r.Get("/{id}", h.Team.GetByIDHandler)
		r.Post("/", h.Team.RegisterHandler)
		r.Put("/{id}", h.Team.UpdateHandler)
		r.Delete("/{id}", h.Team.DeleteHandler)
	})

	router.Route("/players", func(r chi.Router) {
		r.Get("/", h.Player.ListHandler)
		r.Get("/{id}", h.Player.GetByIDHandler)
		r.Post("/", h.Player.RegisterHandler)
		r.Put("/{id}", h.Player.UpdateHandler)
		r.Patch("/{id}/status", h.Player.UpdateStatusHandler)
		r.Delete("/{id}", h.Player.DeleteHandler)
	})

	router.Route("/news", func(r chi.Router) {
		r.Get("/", h.News.ListHandler)
		r.Get("/{id}", h.News.GetByIDHandler)
		r.Post("/", h.News.PublishHandler)
		r.Patch("/{id}", h.News.PatchHandler)
		r.Delete("/{id}", h.News.DeleteHandler)
	})

	router.Route("/enrollments", func(r chi.Router) {
		r.Post("/", h.Enrollment.EnrollHandler)
		r.Get("/player/{playerID}", h.Enrollment.ListByPlayerHandler)
		r.Get("/tournament/{tournamentID}", h.Enrollment.ListByTournamentHandler)
	})

	router.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(opts.JWTSecret))
		r.Use(middleware.Authorize(services.RoleAdmin))
		r.Get("/dashboard/stats", h.Dashboard.StatsHandler)
	})

	router.Get("/ws", h.Live.ServeWS)

	if opts.UploadDir != "" {
		fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(opts.UploadDir)))
		router.Handle("/uploads/*", fileServer)
	}

	router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/openapi.json"),
	))
	router.Handle("/docs/*", http.StripPrefix("/docs/", http.FileServer(http.Dir("docs"))))
}
