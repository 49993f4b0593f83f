package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/chronicleberg/chronicle-be/internal/api/handlers"
	"github.com/chronicleberg/chronicle-be/internal/auth"
	"github.com/chronicleberg/chronicle-be/internal/models"
	"github.com/chronicleberg/chronicle-be/internal/monitoring"
	"github.com/chronicleberg/chronicle-be/internal/services"
	"github.com/chronicleberg/chronicle-be/internal/websocket"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(
	corsOrigin string,
	authMW *auth.Middleware,
	hub *websocket.Hub,
	userService services.UserServiceProvider,
	blogService services.BlogServiceProvider,
	eventService services.EventServiceProvider,
	statUpdater *monitoring.StatUpdater,
) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{corsOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService)
	blogHandler := handlers.NewBlogHandler(blogService)
	eventHandler := handlers.NewEventHandler(eventService)
	statsHandler := handlers.NewStatsHandler(statUpdater)
	wsHandler := handlers.NewWebSocketHandler(hub)

	// API versioning
	r.Route("/api/v1", func(r chi.Router) {
		// Activity feed
		r.Get("/ws", wsHandler.Serve)

		// Registration and sessions
		r.Post("/register", userHandler.Register)
		r.Post("/login", userHandler.Login)
		r.Post("/logout", userHandler.Logout)
		r.Get("/authors", userHandler.GetAuthors)

		r.Group(func(r chi.Router) {
			r.Use(authMW.Authenticate)
			r.Get("/me", userHandler.GetMe)
		})

		// Blogs
		r.Route("/blogs", func(r chi.Router) {
			r.Get("/", blogHandler.GetAll)
			r.Get("/{id}", blogHandler.Get)

			r.Group(func(r chi.Router) {
				r.Use(authMW.Authenticate)
				r.Get("/mine", blogHandler.GetMine)

				r.Group(func(r chi.Router) {
					r.Use(auth.RequireRoles(models.RoleAuthor, models.RoleAdmin))
					r.Post("/", blogHandler.Create)
					r.Put("/{id}", blogHandler.Update)
					r.Delete("/{id}", blogHandler.Delete)
				})
			})
		})

		// Admin surface
		r.Group(func(r chi.Router) {
			r.Use(authMW.Authenticate)
			r.Use(auth.RequireRoles(models.RoleAdmin))
			r.Get("/events", eventHandler.GetRecent)
			r.Get("/admin/stats", statsHandler.Get)
		})
	})

	return r
}
