package routes

import (
	"log/slog"
	"net/http"

	"github.com/Dosada05/sports-portal/handlers"
	"github.com/Dosada05/sports-portal/metrics"
	"github.com/Dosada05/sports-portal/middleware"
	"github.com/Dosada05/sports-portal/models"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // Alias to avoid conflict
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Handlers собирает все обработчики, которые подключаются к роутеру.
type Handlers struct {
	Auth             *handlers.AuthHandler
	Captain          *handlers.CaptainHandler
	DepartmentPlayer *handlers.DepartmentPlayerHandler
	Player           *handlers.PlayerHandler
	Team             *handlers.TeamHandler
	Match            *handlers.MatchHandler
	Schedule         *handlers.ScheduleHandler
	Rule             *handlers.RuleHandler
	Announcement     *handlers.AnnouncementHandler
	Gallery          *handlers.GalleryHandler
	Verification     *handlers.VerificationHandler
	Dashboard        *handlers.DashboardHandler
	WebSocket        *handlers.WebSocketHandler
}

type Options struct {
	Logger         *slog.Logger
	Authenticator  middleware.Authenticator
	Metrics        *metrics.Metrics
	AuthLimiter    *middleware.IPRateLimiter
	AllowedOrigins []string
}

func SetupRoutes(h Handlers, opts Options) http.Handler {
	router := chi.NewRouter()

	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(middleware.RequestLogger(opts.Logger))
	router.Use(chiMiddleware.Recoverer)
	if opts.Metrics != nil {
		router.Use(opts.Metrics.Middleware)
	}
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authenticate := middleware.Authenticate(opts.Authenticator)

	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	if opts.Metrics != nil {
		router.Handle("/metrics", opts.Metrics.Handler())
	}
	router.Get("/ws/matches", h.WebSocket.ServeWs)

	router.Route("/api", func(r chi.Router) {
		// Вход и регистрация, ограничены по IP
		r.Route("/auth", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				if opts.AuthLimiter != nil {
					r.Use(opts.AuthLimiter.Middleware)
				}
				r.Post("/admin/login", h.Auth.AdminLogin)
				r.Post("/captain/login", h.Auth.CaptainLogin)
				r.Post("/captain/register", h.Auth.CaptainRegister)
				r.Post("/player/login", h.Auth.PlayerLogin)
				r.Post("/player/register", h.Auth.PlayerRegister)
			})
			r.With(authenticate).Post("/logout", h.Auth.Logout)
		})

		// Публичные маршруты
		r.Get("/teams", h.Team.List)
		r.Get("/teams/{id}", h.Team.Get)
		r.Get("/matches", h.Match.List)
		r.Get("/matches/{id}", h.Match.Get)
		r.Get("/schedule", h.Schedule.List)
		r.Get("/schedule/{id}", h.Schedule.Get)
		r.Get("/rules", h.Rule.List)
		r.Get("/rules/{id}", h.Rule.Get)
		r.With(authenticate, middleware.Authorize(models.RoleAdmin)).Post("/rules/preview", h.Rule.Preview)
		r.Get("/announcements", h.Announcement.List)
		r.Get("/announcements/{id}", h.Announcement.Get)
		r.Get("/gallery", h.Gallery.List)
		r.Get("/gallery/{id}", h.Gallery.Get)

		r.Route("/captain", func(r chi.Router) {
			r.Use(authenticate)
			r.Use(middleware.Authorize(models.RoleCaptain))

			r.Get("/me", h.Captain.Me)
			r.Put("/me", h.Captain.UpdateMe)
			r.Route("/players", departmentPlayerRoutes(h.DepartmentPlayer))
		})

		r.Route("/player", func(r chi.Router) {
			r.Use(authenticate)
			r.Use(middleware.Authorize(models.RolePlayer))

			r.Get("/me", h.Player.Me)
			r.Put("/me", h.Player.UpdateMe)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(authenticate)
			r.Use(middleware.Authorize(models.RoleAdmin))

			r.Get("/me", h.Auth.AdminMe)
			r.Get("/dashboard", h.Dashboard.Stats)
			r.Post("/verify", h.Verification.Verify)

			r.Route("/captains", func(r chi.Router) {
				r.Get("/", h.Captain.List)
				r.Post("/", h.Captain.Create)
				r.Post("/bulk-status", h.Captain.BulkStatus)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.Captain.Get)
					r.Put("/", h.Captain.Update)
					r.Delete("/", h.Captain.Delete)
					r.Patch("/status", h.Captain.UpdateStatus)
					r.Get("/id-card.png", h.Captain.IDCard)
				})
			})

			r.Route("/department-players", func(r chi.Router) {
				r.Get("/export.xlsx", h.DepartmentPlayer.Export)
				r.Get("/sports", h.DepartmentPlayer.Sports)
				r.Post("/bulk-status", h.DepartmentPlayer.BulkStatus)
				r.Patch("/{id}/status", h.DepartmentPlayer.UpdateStatus)
				r.Get("/{id}/id-card.png", h.DepartmentPlayer.IDCard)
				departmentPlayerRoutes(h.DepartmentPlayer)(r)
			})

			r.Route("/players", func(r chi.Router) {
				r.Get("/", h.Player.List)
				r.Post("/", h.Player.Create)
				r.Post("/bulk-status", h.Player.BulkStatus)
				r.Get("/{id}", h.Player.Get)
				r.Put("/{id}", h.Player.Update)
				r.Patch("/{id}/status", h.Player.UpdateStatus)
				r.Delete("/{id}", h.Player.Delete)
			})

			r.Route("/teams", func(r chi.Router) {
				r.Post("/", h.Team.Create)
				r.Put("/{id}", h.Team.Update)
				r.Post("/{id}/image", h.Team.UploadImage)
				r.Delete("/{id}", h.Team.Delete)
			})

			r.Route("/matches", func(r chi.Router) {
				r.Post("/", h.Match.Create)
				r.Put("/{id}", h.Match.Update)
				r.Patch("/{id}/score", h.Match.UpdateScore)
				r.Delete("/{id}", h.Match.Delete)
			})

			r.Route("/schedule", func(r chi.Router) {
				r.Post("/", h.Schedule.Create)
				r.Put("/{id}", h.Schedule.Update)
				r.Delete("/{id}", h.Schedule.Delete)
			})

			r.Route("/rules", func(r chi.Router) {
				r.Post("/", h.Rule.Create)
				r.Put("/{id}", h.Rule.Update)
				r.Delete("/{id}", h.Rule.Delete)
			})

			r.Route("/announcements", func(r chi.Router) {
				r.Post("/", h.Announcement.Create)
				r.Put("/{id}", h.Announcement.Update)
				r.Delete("/{id}", h.Announcement.Delete)
			})

			r.Route("/gallery", func(r chi.Router) {
				r.Post("/", h.Gallery.Create)
				r.Put("/{id}", h.Gallery.Update)
				r.Delete("/{id}", h.Gallery.Delete)
			})
		})
	})

	return router
}

// departmentPlayerRoutes is shared by the captain and admin areas; ownership is
// checked in the service using the actor from the token.
func departmentPlayerRoutes(h *handlers.DepartmentPlayerHandler) func(r chi.Router) {
	return func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	}
}
