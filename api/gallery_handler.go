package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/crpix-studio-backend/errs"
	"github.com/rpupo63/crpix-studio-backend/gallery"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type galleryHandler struct {
	responder Responder
	logger    zerolog.Logger
}

func newGalleryHandler() galleryHandler {
	logger := log.With().Str("handlerName", "galleryHandler").Logger()

	return galleryHandler{
		responder: NewResponder(logger),
		logger:    logger,
	}
}

// getView returns the caller's gallery view, loading the first page on the first visit
// @Summary Get gallery view
// @Description Returns the selected tab, the active filter and the items loaded so far
// @Tags Gallery
// @Produce json
// @Success 200 {object} gallery.State "Gallery view"
// @Failure 409 {object} ErrorResponse "Conflict - A page is still loading"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error fetching items"
// @Router /api/gallery [get]
func (h galleryHandler) getView() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view := ctxGetVisitor(r.Context()).gallery
		st, err := view.Ensure(r.Context())
		h.writeState(w, st, err)
	}
}

// selectTab switches between the image gallery and videos
// @Summary Select tab
// @Description Switches collection, resets the filter to All and loads page 0. Selecting the current tab changes nothing.
// @Tags Gallery
// @Produce json
// @Param tab path string true "gallery or videos"
// @Success 200 {object} gallery.State "Gallery view"
// @Failure 400 {object} ErrorResponse "Bad Request - Unknown tab"
// @Router /api/gallery/tab/{tab} [post]
func (h galleryHandler) selectTab() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tab, err := gallery.ParseTab(chi.URLParam(r, "tab"))
		if err != nil {
			h.responder.WriteError(w, errs.NewInvalidFieldError("tab", err.Error()))
			return
		}

		view := ctxGetVisitor(r.Context()).gallery
		st, err := view.SelectTab(r.Context(), tab)
		h.writeState(w, st, err)
	}
}

// quickSelect applies one category from the quick-select row
// @Summary Quick-select category
// @Description Replaces the filter with a single category (or All) and reloads from page 0
// @Tags Gallery
// @Accept json
// @Produce json
// @Param request body FilterRequest true "Category"
// @Success 200 {object} gallery.State "Gallery view"
// @Failure 400 {object} ErrorResponse "Bad Request - Missing category"
// @Router /api/gallery/quick [post]
func (h galleryHandler) quickSelect() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req FilterRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		view := ctxGetVisitor(r.Context()).gallery
		st, err := view.SelectQuick(r.Context(), req.Category)
		h.writeState(w, st, err)
	}
}

// openFilter opens the multi-select modal
// @Summary Open filter modal
// @Tags Gallery
// @Produce json
// @Success 200 {object} gallery.State "Gallery view with working set"
// @Router /api/gallery/filter/open [post]
func (h galleryHandler) openFilter() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view := ctxGetVisitor(r.Context()).gallery
		h.responder.WriteJSON(w, view.OpenFilterModal())
	}
}

// toggleFilter flips one category in the modal's working set
// @Summary Toggle category in working set
// @Tags Gallery
// @Accept json
// @Produce json
// @Param request body FilterRequest true "Category"
// @Success 200 {object} gallery.State "Gallery view with working set"
// @Failure 409 {object} ErrorResponse "Conflict - Filter modal is not open"
// @Router /api/gallery/filter/toggle [post]
func (h galleryHandler) toggleFilter() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req FilterRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		view := ctxGetVisitor(r.Context()).gallery
		st, err := view.ToggleInWorkingSet(req.Category)
		h.writeState(w, st, err)
	}
}

// applyFilter commits the working set
// @Summary Apply filter
// @Description Commits the working set and closes the modal. Reloads from page 0 only when the filter changed.
// @Tags Gallery
// @Produce json
// @Success 200 {object} gallery.State "Gallery view"
// @Failure 409 {object} ErrorResponse "Conflict - Filter modal is not open"
// @Router /api/gallery/filter/apply [post]
func (h galleryHandler) applyFilter() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view := ctxGetVisitor(r.Context()).gallery
		st, err := view.ApplyWorkingSet(r.Context())
		h.writeState(w, st, err)
	}
}

// cancelFilter closes the modal without changing the filter
// @Summary Cancel filter
// @Tags Gallery
// @Produce json
// @Success 200 {object} gallery.State "Gallery view"
// @Router /api/gallery/filter/cancel [post]
func (h galleryHandler) cancelFilter() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view := ctxGetVisitor(r.Context()).gallery
		h.responder.WriteJSON(w, view.Cancel())
	}
}

// loadMore fetches the next page
// @Summary Load more
// @Description Appends the next page. Does nothing once the last page was short.
// @Tags Gallery
// @Produce json
// @Success 200 {object} gallery.State "Gallery view"
// @Failure 409 {object} ErrorResponse "Conflict - A page is still loading"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error fetching items"
// @Router /api/gallery/more [post]
func (h galleryHandler) loadMore() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view := ctxGetVisitor(r.Context()).gallery
		st, err := view.LoadMore(r.Context())
		h.writeState(w, st, err)
	}
}

func (h galleryHandler) writeState(w http.ResponseWriter, st gallery.State, err error) {
	switch {
	case errors.Is(err, gallery.ErrModalClosed):
		h.responder.WriteError(w, errs.NewConflictError(err.Error()))
		return
	case errors.Is(err, gallery.ErrEmptyCategory):
		h.responder.WriteError(w, errs.NewMissingRequiredFieldError("category"))
		return
	}

	if err := pageError(st.Tab.Collection(), err); err != nil {
		h.responder.WriteError(w, err)
		return
	}
	h.responder.WriteJSON(w, st)
}
