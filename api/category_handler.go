package api

import (
	"net/http"

	"github.com/rpupo63/crpix-studio-backend/models"
	"github.com/rpupo63/crpix-studio-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type categoryHandler struct {
	responder  Responder
	logger     zerolog.Logger
	categories *services.CategoryService
}

func newCategoryHandler(categories *services.CategoryService) categoryHandler {
	logger := log.With().Str("handlerName", "categoryHandler").Logger()

	return categoryHandler{
		responder:  NewResponder(logger),
		logger:     logger,
		categories: categories,
	}
}

// CategoryCollection is the admin category list
type CategoryCollection struct {
	Categories []*models.Category `json:"categories"`
	Total      int                `json:"total"`
}

// getAllCategories lists categories for the admin panel
// @Summary List categories
// @Tags Categories
// @Produce json
// @Success 200 {object} CategoryCollection
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error fetching categories"
// @Router /admin/api/categories [get]
func (h categoryHandler) getAllCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := h.categories.List(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if categories == nil {
			categories = []*models.Category{}
		}
		h.responder.WriteJSON(w, CategoryCollection{Categories: categories, Total: len(categories)})
	}
}

// createCategory adds a category
// @Summary Create category
// @Tags Categories
// @Accept json
// @Produce json
// @Param request body CategoryRequest true "Category"
// @Success 201 {object} models.Category
// @Failure 400 {object} ErrorResponse "Bad Request - Empty name"
// @Failure 409 {object} ErrorResponse "Conflict - Duplicate name"
// @Router /admin/api/categories [post]
func (h categoryHandler) createCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CategoryRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		category, err := h.categories.Create(r.Context(), req.Name)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSONStatus(w, http.StatusCreated, category)
	}
}

// deleteCategory removes a category. Projects and videos keep its name.
// @Summary Delete category
// @Description Requires confirm=true; without it answers 428 with the confirmation prompt
// @Tags Categories
// @Produce json
// @Param categoryID path string true "Category ID" format(uuid)
// @Param confirm query bool true "Explicit confirmation"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} ErrorResponse "Not Found"
// @Failure 428 {object} ErrorResponse "Precondition Required - Confirmation needed"
// @Router /admin/api/categories/{categoryID} [delete]
func (h categoryHandler) deleteCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlID(r, "categoryID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := confirmed(r, confirmDeleteCategory); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.categories.Delete(r.Context(), id); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, MessageResponse{Message: "Category deleted", Status: "ok"})
	}
}
