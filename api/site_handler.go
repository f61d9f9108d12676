package api

import (
	"encoding/xml"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/crpix-studio-backend/errs"
	"github.com/rpupo63/crpix-studio-backend/gallery"
	"github.com/rpupo63/crpix-studio-backend/pagination"
	"github.com/rpupo63/crpix-studio-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type siteHandler struct {
	responder   Responder
	logger      zerolog.Logger
	categories  *services.CategoryService
	projects    gallery.ProjectFinder
	videos      gallery.VideoFinder
	siteURL     string
	startupTime time.Time
}

func newSiteHandler(categories *services.CategoryService, projects gallery.ProjectFinder, videos gallery.VideoFinder, siteURL string, startupTime time.Time) siteHandler {
	logger := log.With().Str("handlerName", "siteHandler").Logger()

	return siteHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		categories:  categories,
		projects:    projects,
		videos:      videos,
		siteURL:     strings.TrimSuffix(siteURL, "/"),
		startupTime: startupTime,
	}
}

// HealthResponse reports liveness
type HealthResponse struct {
	Status    string `json:"status" example:"ok"`
	StartedAt string `json:"started_at"`
	Uptime    string `json:"uptime" example:"1h2m3s"`
}

// MediaPage is one stateless page of a collection
type MediaPage struct {
	Tab     gallery.Tab      `json:"tab"`
	Filter  []string         `json:"filter"`
	Page    int              `json:"page"`
	Range   pagination.Range `json:"range"`
	Items   []gallery.Item   `json:"items"`
	HasMore bool             `json:"has_more"`
}

// health reports that the server is up
// @Summary Health check
// @Tags Site
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h siteHandler) health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, HealthResponse{
			Status:    "ok",
			StartedAt: h.startupTime.UTC().Format(time.RFC3339),
			Uptime:    time.Since(h.startupTime).Round(time.Second).String(),
		})
	}
}

// robots keeps crawlers out of the admin panel
// @Summary robots.txt
// @Tags Site
// @Produce plain
// @Router /robots.txt [get]
func (h siteHandler) robots() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprintf(w, "User-Agent: *\nAllow: /\nDisallow: /admin/\n\nSitemap: %s/sitemap.xml\n", h.siteURL)
	}
}

type sitemapURL struct {
	Loc        string  `xml:"loc"`
	LastMod    string  `xml:"lastmod"`
	ChangeFreq string  `xml:"changefreq"`
	Priority   float64 `xml:"priority"`
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// sitemap lists the public site
// @Summary sitemap.xml
// @Tags Site
// @Produce xml
// @Router /sitemap.xml [get]
func (h siteHandler) sitemap() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		set := sitemapURLSet{
			XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
			URLs: []sitemapURL{{
				Loc:        h.siteURL,
				LastMod:    time.Now().UTC().Format(time.RFC3339),
				ChangeFreq: "weekly",
				Priority:   1,
			}},
		}
		out, err := xml.MarshalIndent(set, "", "  ")
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to build sitemap", err))
			return
		}
		w.Header().Set("Content-Type", "application/xml; charset=utf-8")
		w.Write([]byte(xml.Header))
		w.Write(out)
	}
}

// listCategories returns the filter choices, All first
// @Summary List filter categories
// @Description Returns "All" followed by every category name, newest first
// @Tags Site
// @Produce json
// @Success 200 {array} string
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error fetching categories"
// @Router /api/categories [get]
func (h siteHandler) listCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		names, err := h.categories.Names(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, append([]string{gallery.All}, names...))
	}
}

// getMediaPage loads one page without touching the caller's view
// @Summary Get media page
// @Description Loads page N of a tab, optionally constrained to categories
// @Tags Site
// @Produce json
// @Param tab path string true "gallery or videos"
// @Param page query int false "Zero-based page"
// @Param category query []string false "Category names; omit or All for no constraint"
// @Success 200 {object} MediaPage
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid tab or page"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error fetching items"
// @Router /api/media/{tab} [get]
func (h siteHandler) getMediaPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tab, err := gallery.ParseTab(chi.URLParam(r, "tab"))
		if err != nil {
			h.responder.WriteError(w, errs.NewInvalidFieldError("tab", err.Error()))
			return
		}

		page := 0
		if raw := r.URL.Query().Get("page"); raw != "" {
			page, err = strconv.Atoi(raw)
			if err != nil || page < 0 {
				h.responder.WriteError(w, errs.NewInvalidFieldError("page", "must be a non-negative integer"))
				return
			}
		}

		filter := []string{gallery.All}
		var categories []string
		for _, c := range r.URL.Query()["category"] {
			c = strings.TrimSpace(c)
			if c != "" && c != gallery.All {
				categories = append(categories, c)
			}
		}
		if len(categories) > 0 {
			filter = categories
		}

		items, rng, err := gallery.LoadPage(r.Context(), h.projects, h.videos, tab, categories, page)
		if err := pageError(tab.Collection(), err); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if items == nil {
			items = []gallery.Item{}
		}

		h.responder.WriteJSON(w, MediaPage{
			Tab:     tab,
			Filter:  filter,
			Page:    page,
			Range:   rng,
			Items:   items,
			HasMore: len(items) == rng.BatchSize,
		})
	}
}
