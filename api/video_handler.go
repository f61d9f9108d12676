package api

import (
	"net/http"

	"github.com/rpupo63/crpix-studio-backend/errs"
	"github.com/rpupo63/crpix-studio-backend/listing"
	"github.com/rpupo63/crpix-studio-backend/media"
	"github.com/rpupo63/crpix-studio-backend/models"
	"github.com/rpupo63/crpix-studio-backend/pagination"
	"github.com/rpupo63/crpix-studio-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type videoHandler struct {
	responder Responder
	logger    zerolog.Logger
	publisher *services.Publisher
	videos    services.VideoStore
}

func newVideoHandler(publisher *services.Publisher, videos services.VideoStore) videoHandler {
	logger := log.With().Str("handlerName", "videoHandler").Logger()

	return videoHandler{
		responder: NewResponder(logger),
		logger:    logger,
		publisher: publisher,
		videos:    videos,
	}
}

// VideoPreview describes what a link would embed as
type VideoPreview struct {
	media.Link
	Supported bool   `json:"supported"`
	Thumbnail string `json:"thumbnail,omitempty"`
	EmbedURL  string `json:"embed_url,omitempty"`
}

// getAllVideos reloads the admin video list from page 0
// @Summary List videos
// @Tags Videos
// @Produce json
// @Success 200 {object} listing.Page[models.Video]
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error fetching videos"
// @Router /admin/api/videos [get]
func (h videoHandler) getAllVideos() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pager := ctxGetVisitor(r.Context()).videos
		pager.Reset(pagination.AdminVideos, services.VideoPages(h.videos))
		page, err := pager.Load(r.Context())
		h.writePage(w, page, err)
	}
}

// loadMoreVideos appends the next page to the admin video list
// @Summary Load more videos
// @Tags Videos
// @Produce json
// @Success 200 {object} listing.Page[models.Video]
// @Failure 409 {object} ErrorResponse "Conflict - A page is still loading"
// @Router /admin/api/videos/more [post]
func (h videoHandler) loadMoreVideos() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := ctxGetVisitor(r.Context()).videos.Load(r.Context())
		h.writePage(w, page, err)
	}
}

// createVideo publishes a YouTube or Instagram link
// @Summary Publish video
// @Tags Videos
// @Accept json
// @Produce json
// @Param request body services.VideoDraft true "Video"
// @Success 201 {object} models.Video
// @Failure 400 {object} ErrorResponse "Bad Request - Missing fields or unsupported link"
// @Router /admin/api/videos [post]
func (h videoHandler) createVideo() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var draft services.VideoDraft
		if err := decodeJSON(w, r, &draft); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		video, err := h.publisher.PublishVideo(r.Context(), draft)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSONStatus(w, http.StatusCreated, video)
	}
}

// previewVideo detects the platform of a link for the upload form
// @Summary Preview video link
// @Tags Videos
// @Produce json
// @Param link query string true "Video URL"
// @Success 200 {object} VideoPreview
// @Failure 400 {object} ErrorResponse "Bad Request - Missing link"
// @Router /admin/api/videos/preview [get]
func (h videoHandler) previewVideo() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := r.URL.Query().Get("link")
		if raw == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("link"))
			return
		}

		link := media.ParseLink(raw)
		h.responder.WriteJSON(w, VideoPreview{
			Link:      link,
			Supported: link.Supported(),
			Thumbnail: link.Thumbnail(),
			EmbedURL:  link.EmbedURL(),
		})
	}
}

// deleteVideo removes a video
// @Summary Delete video
// @Description Requires confirm=true; without it answers 428 with the confirmation prompt
// @Tags Videos
// @Produce json
// @Param videoID path string true "Video ID" format(uuid)
// @Param confirm query bool true "Explicit confirmation"
// @Success 200 {object} DeletedResponse
// @Failure 404 {object} ErrorResponse "Not Found"
// @Failure 428 {object} ErrorResponse "Precondition Required - Confirmation needed"
// @Router /admin/api/videos/{videoID} [delete]
func (h videoHandler) deleteVideo() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlID(r, "videoID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := confirmed(r, confirmDeleteVideo); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.publisher.DeleteVideo(r.Context(), id); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		pager := ctxGetVisitor(r.Context()).videos
		pager.Remove(id)
		h.responder.WriteJSON(w, DeletedResponse{
			MessageResponse: MessageResponse{Message: "Video deleted successfully", Status: "ok"},
			Total:           pager.Snapshot().Total,
		})
	}
}

func (h videoHandler) writePage(w http.ResponseWriter, page listing.Page[*models.Video], err error) {
	if err := pageError("videos", err); err != nil {
		h.responder.WriteError(w, err)
		return
	}
	if page.Items == nil {
		page.Items = []*models.Video{}
	}
	h.responder.WriteJSON(w, page)
}
