package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/chronicleberg/chronicle-be/internal/api"
	"github.com/chronicleberg/chronicle-be/internal/assets"
	"github.com/chronicleberg/chronicle-be/internal/auth"
	"github.com/chronicleberg/chronicle-be/internal/config"
	"github.com/chronicleberg/chronicle-be/internal/database"
	"github.com/chronicleberg/chronicle-be/internal/logger"
	"github.com/chronicleberg/chronicle-be/internal/monitoring"
	"github.com/chronicleberg/chronicle-be/internal/services"
	"github.com/chronicleberg/chronicle-be/internal/store"
	"github.com/chronicleberg/chronicle-be/internal/websocket"
)

func main() {
	logger.Init()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	// Set up the remote media store
	assetStore, err := assets.NewS3Store(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize asset store")
	}

	// Set up stores
	userStore := store.NewSQLiteUserStore(db)
	blogStore := store.NewSQLiteBlogStore(db)
	eventStore := store.NewSQLiteEventStore(db)
	orphanStore := store.NewSQLiteOrphanStore(db)

	// Set up WebSocket Hub
	hub := websocket.NewHub()
	go hub.Run()

	// Set up services
	tokenService := auth.NewService(cfg.JWTSecret, cfg.JWTExpiry)
	eventService := services.NewEventService(eventStore, hub)
	userService := services.NewUserService(userStore, assetStore, tokenService, eventService)
	blogService := services.NewBlogService(blogStore, assetStore, orphanStore, eventService)
	authMW := auth.NewMiddleware(tokenService, userStore)

	// Set up and run the orphaned-asset sweeper
	sweeper, err := monitoring.NewSweeper(orphanStore, assetStore, eventService, cfg.SweepSchedule)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid sweep schedule")
	}
	go sweeper.Run()

	// Set up and run the background stats updater
	statUpdater := monitoring.NewStatUpdater(userStore, blogStore, hub)
	go statUpdater.Run()

	// Set up router
	router := api.NewRouter(cfg.CORSOrigin, authMW, hub, userService, blogService, eventService, statUpdater)

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	sweeper.Stop()
	statUpdater.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
