package api

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/rpupo63/crpix-studio-backend/errs"
	"github.com/rpupo63/crpix-studio-backend/listing"
	"github.com/rpupo63/crpix-studio-backend/models"
	"github.com/rpupo63/crpix-studio-backend/pagination"
	"github.com/rpupo63/crpix-studio-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type projectHandler struct {
	responder      Responder
	logger         zerolog.Logger
	publisher      *services.Publisher
	projects       services.ProjectStore
	maxUploadBytes int64
}

func newProjectHandler(publisher *services.Publisher, projects services.ProjectStore, maxUploadBytes int64) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:      NewResponder(logger),
		logger:         logger,
		publisher:      publisher,
		projects:       projects,
		maxUploadBytes: maxUploadBytes,
	}
}

// getAllProjects reloads the admin project list from page 0
// @Summary List projects
// @Description Resets the caller's admin project list and loads the first page with the exact total
// @Tags Projects
// @Produce json
// @Success 200 {object} listing.Page[models.Project]
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error fetching projects"
// @Router /admin/api/projects [get]
func (h projectHandler) getAllProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pager := ctxGetVisitor(r.Context()).projects
		pager.Reset(pagination.AdminMedia, services.ProjectPages(h.projects))
		page, err := pager.Load(r.Context())
		h.writePage(w, page, err)
	}
}

// loadMoreProjects appends the next page to the admin project list
// @Summary Load more projects
// @Tags Projects
// @Produce json
// @Success 200 {object} listing.Page[models.Project]
// @Failure 409 {object} ErrorResponse "Conflict - A page is still loading"
// @Router /admin/api/projects/more [post]
func (h projectHandler) loadMoreProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := ctxGetVisitor(r.Context()).projects.Load(r.Context())
		h.writePage(w, page, err)
	}
}

// createProject uploads the images and publishes a project
// @Summary Publish project
// @Description Multipart form with title, category, optional description and 1 to 4 images. The first image becomes the thumbnail.
// @Tags Projects
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Title"
// @Param category formData string true "Category"
// @Param description formData string false "Description"
// @Param images formData file true "Images (1-4)"
// @Success 201 {object} models.Project
// @Failure 400 {object} ErrorResponse "Bad Request - Missing fields or too many images"
// @Failure 413 {object} ErrorResponse "Request Entity Too Large"
// @Failure 502 {object} ErrorResponse "Bad Gateway - Upload failed"
// @Router /admin/api/projects [post]
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				h.responder.WriteError(w, errs.NewMaxBodySizeExceededError(maxErr.Limit))
				return
			}
			h.responder.WriteError(w, errs.NewMalformedPayloadError("multipart", err))
			return
		}
		defer r.MultipartForm.RemoveAll()

		var headers []*multipart.FileHeader
		if r.MultipartForm.File != nil {
			headers = r.MultipartForm.File["images"]
		}

		uploads := make([]services.Upload, 0, len(headers))
		for _, fh := range headers {
			f, err := fh.Open()
			if err != nil {
				h.responder.WriteError(w, errs.NewMalformedPayloadError("image", err))
				return
			}
			defer f.Close()

			contentType := fh.Header.Get("Content-Type")
			if contentType == "" {
				contentType = "application/octet-stream"
			}
			uploads = append(uploads, services.Upload{
				Filename:    fh.Filename,
				ContentType: contentType,
				Size:        fh.Size,
				Body:        f,
			})
		}

		project, err := h.publisher.PublishProject(r.Context(), services.ProjectDraft{
			Title:       r.FormValue("title"),
			Category:    r.FormValue("category"),
			Description: r.FormValue("description"),
			Images:      uploads,
		})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSONStatus(w, http.StatusCreated, project)
	}
}

// deleteProject removes a project row; its images stay in storage
// @Summary Delete project
// @Description Requires confirm=true; without it answers 428 with the confirmation prompt
// @Tags Projects
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Param confirm query bool true "Explicit confirmation"
// @Success 200 {object} DeletedResponse
// @Failure 404 {object} ErrorResponse "Not Found"
// @Failure 428 {object} ErrorResponse "Precondition Required - Confirmation needed"
// @Router /admin/api/projects/{projectID} [delete]
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlID(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := confirmed(r, confirmDeleteProject); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.publisher.DeleteProject(r.Context(), id); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		pager := ctxGetVisitor(r.Context()).projects
		pager.Remove(id)
		h.responder.WriteJSON(w, DeletedResponse{
			MessageResponse: MessageResponse{Message: "Project deleted successfully", Status: "ok"},
			Total:           pager.Snapshot().Total,
		})
	}
}

func (h projectHandler) writePage(w http.ResponseWriter, page listing.Page[*models.Project], err error) {
	if err := pageError("projects", err); err != nil {
		h.responder.WriteError(w, err)
		return
	}
	if page.Items == nil {
		page.Items = []*models.Project{}
	}
	h.responder.WriteJSON(w, page)
}
