package api

import (
	"time"

	"github.com/rpupo63/crpix-studio-backend/auth"
	"github.com/rpupo63/crpix-studio-backend/database"
	"github.com/rpupo63/crpix-studio-backend/services"
)

// backend bundles the stores the handlers work against
type backend struct {
	categories services.CategoryStore
	projects   services.ProjectStore
	videos     services.VideoStore
	objects    services.ObjectStore
}

func backendFor(db database.Database, objects services.ObjectStore) backend {
	return backend{
		categories: db.CategoryRepo(),
		projects:   db.ProjectRepo(),
		videos:     db.VideoRepo(),
		objects:    objects,
	}
}

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(b backend, authenticator *auth.Authenticator, siteURL string, maxUploadBytes int64, startupTime time.Time) *routeHandlers {
	categories := services.NewCategoryService(b.categories)
	publisher := services.NewPublisher(b.projects, b.videos, b.objects)

	return &routeHandlers{
		siteHandler:     newSiteHandler(categories, b.projects, b.videos, siteURL, startupTime),
		galleryHandler:  newGalleryHandler(),
		authHandler:     newAuthHandler(authenticator),
		categoryHandler: newCategoryHandler(categories),
		projectHandler:  newProjectHandler(publisher, b.projects, maxUploadBytes),
		videoHandler:    newVideoHandler(publisher, b.videos),
	}
}
