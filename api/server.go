package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rpupo63/crpix-studio-backend/auth"
	"github.com/rpupo63/crpix-studio-backend/config"
	"github.com/rpupo63/crpix-studio-backend/database"
	"github.com/rpupo63/crpix-studio-backend/services"
	"github.com/rs/zerolog/log"
)

type Server struct {
	*http.Server
	startupTime time.Time
	sessions    *sessionStore
}

func NewServer(database database.Database, objects services.ObjectStore) (Server, error) {
	c := config.New()

	port := config.GetString(c, "PORT", "8080")
	address := fmt.Sprintf("0.0.0.0:%s", port) // Bind to 0.0.0.0 for external access

	startupTime := time.Now()

	router, sessions := newRouter(backendFor(database, objects), withConfig(c), withStartupTime(startupTime))

	// Get timeout values from config with sensible defaults
	readTimeout := config.GetDuration(c, "READ_TIMEOUT_SECONDS", time.Second, 180)
	writeTimeout := config.GetDuration(c, "WRITE_TIMEOUT_SECONDS", time.Second, 180)
	idleTimeout := config.GetDuration(c, "IDLE_TIMEOUT_SECONDS", time.Second, 180)

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  readTimeout,  // Timeout for reading the entire request
		WriteTimeout: writeTimeout, // Timeout for writing the response
		IdleTimeout:  idleTimeout,  // Timeout for idle connections
	}

	return Server{server, startupTime, sessions}, nil
}

type router struct {
	config      map[string]string
	startupTime time.Time
}

func withConfig(c map[string]string) func(*router) {
	return func(r *router) {
		r.config = c
	}
}

func withStartupTime(startupTime time.Time) func(*router) {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

func newRouter(b backend, opts ...func(*router)) (*chi.Mux, *sessionStore) {
	var router router
	for _, opt := range opts {
		opt(&router)
	}
	if router.startupTime.IsZero() {
		router.startupTime = time.Now()
	}

	chiRouter := chi.NewRouter()
	chiRouter.Use(middleware.RequestID)
	chiRouter.Use(middleware.RealIP)
	chiRouter.Use(LogInternalServerErrors)
	chiRouter.Use(RecordRequestMetrics)

	authenticator := auth.New(auth.Config{
		Username: config.GetString(router.config, "ADMIN_USERNAME", ""),
		Password: config.GetString(router.config, "ADMIN_PASSWORD", ""),
		Secret:   config.GetString(router.config, "JWT_SECRET", ""),
		TTL:      config.GetDuration(router.config, "ADMIN_SESSION_HOURS", time.Hour, 24),
	})
	sessions := newSessionStore(
		config.GetDuration(router.config, "VIEW_SESSION_MINUTES", time.Minute, 60),
		uint64(config.GetInt(router.config, "VIEW_SESSION_CAPACITY", 10000)),
		b.projects, b.videos,
	)

	// Initialize all handlers
	handlers := initializeHandlers(
		b,
		authenticator,
		config.GetString(router.config, "SITE_URL", "https://crpix.in"),
		int64(config.GetInt(router.config, "MAX_UPLOAD_MB", 40))<<20,
		router.startupTime,
	)

	// Initialize auth middleware
	authMiddleware := newAuthMiddleware(authenticator)

	// Apply CORS middleware
	acceptedOrigins := config.GetList(router.config, "ACCEPTED_ORIGINS")
	chiRouter.Use(CORSCheckMiddleware(acceptedOrigins))
	if len(acceptedOrigins) > 0 {
		chiRouter.Use(corsMiddleware(acceptedOrigins))
	}

	// Setup all route types
	setupSiteRoutes(chiRouter, handlers, sessions)
	setupAdminRoutes(chiRouter, handlers, authMiddleware, sessions)

	return chiRouter, sessions
}

func (s Server) Start(errChannel chan<- error) {
	s.sessions.start()
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
	s.sessions.stop()
}
