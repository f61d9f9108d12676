package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/crpix-studio-backend/metrics"
)

// setupSiteRoutes sets up the public routes
func setupSiteRoutes(r chi.Router, handlers *routeHandlers, sessions *sessionStore) {
	r.Get("/health", handlers.siteHandler.health())
	r.Handle("/metrics", metrics.Handler())
	r.Get("/robots.txt", handlers.siteHandler.robots())
	r.Get("/sitemap.xml", handlers.siteHandler.sitemap())

	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Get("/api/categories", handlers.siteHandler.listCategories())
		r.Get("/api/media/{tab}", handlers.siteHandler.getMediaPage())

		// Gallery view endpoints
		r.Group(func(r chi.Router) {
			r.Use(sessions.middleware)

			r.Get("/api/gallery", handlers.galleryHandler.getView())
			r.Post("/api/gallery/tab/{tab}", handlers.galleryHandler.selectTab())
			r.Post("/api/gallery/quick", handlers.galleryHandler.quickSelect())
			r.Post("/api/gallery/filter/open", handlers.galleryHandler.openFilter())
			r.Post("/api/gallery/filter/toggle", handlers.galleryHandler.toggleFilter())
			r.Post("/api/gallery/filter/apply", handlers.galleryHandler.applyFilter())
			r.Post("/api/gallery/filter/cancel", handlers.galleryHandler.cancelFilter())
			r.Post("/api/gallery/more", handlers.galleryHandler.loadMore())
		})
	})
}

// setupAdminRoutes sets up the admin panel. Everything under /admin except
// the login page needs an admin session.
func setupAdminRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware, sessions *sessionStore) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)
		r.Use(authMiddleware.authenticate)

		r.Get("/login", handlers.authHandler.loginPage())
		r.Post("/login", handlers.authHandler.login())

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.requireAdmin)
			r.Use(sessions.middleware)

			r.Get("/", handlers.authHandler.session())
			r.Post("/logout", handlers.authHandler.logout())
			r.Get("/session", handlers.authHandler.session())

			// Category Handler endpoints
			r.Get("/api/categories", handlers.categoryHandler.getAllCategories())
			r.Post("/api/categories", handlers.categoryHandler.createCategory())
			r.Delete("/api/categories/{categoryID}", handlers.categoryHandler.deleteCategory())

			// Project Handler endpoints
			r.Get("/api/projects", handlers.projectHandler.getAllProjects())
			r.Post("/api/projects/more", handlers.projectHandler.loadMoreProjects())
			r.Post("/api/projects", handlers.projectHandler.createProject())
			r.Delete("/api/projects/{projectID}", handlers.projectHandler.deleteProject())

			// Video Handler endpoints
			r.Get("/api/videos", handlers.videoHandler.getAllVideos())
			r.Post("/api/videos/more", handlers.videoHandler.loadMoreVideos())
			r.Post("/api/videos", handlers.videoHandler.createVideo())
			r.Get("/api/videos/preview", handlers.videoHandler.previewVideo())
			r.Delete("/api/videos/{videoID}", handlers.videoHandler.deleteVideo())
		})
	})
}
