package api

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jellydator/ttlcache/v3"
	"github.com/rpupo63/crpix-studio-backend/gallery"
	"github.com/rpupo63/crpix-studio-backend/listing"
	"github.com/rpupo63/crpix-studio-backend/models"
	"github.com/rpupo63/crpix-studio-backend/pagination"
	"github.com/rpupo63/crpix-studio-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const viewCookie = "crpix_view"

// visitor is the server-held state of one browser: the public gallery view
// and, for admins, the paged project and video lists.
type visitor struct {
	gallery  *gallery.View
	projects *listing.Pager[*models.Project]
	videos   *listing.Pager[*models.Video]
}

// sessionStore keeps visitor state in memory, keyed by the crpix_view
// cookie. Entries expire after ttl without a request.
type sessionStore struct {
	cache    *ttlcache.Cache[string, *visitor]
	ttl      time.Duration
	projects services.ProjectStore
	videos   services.VideoStore
	logger   zerolog.Logger
}

// newSessionStore keeps at most capacity visitors; past that the least
// recently used one is dropped.
func newSessionStore(ttl time.Duration, capacity uint64, projects services.ProjectStore, videos services.VideoStore) *sessionStore {
	cache := ttlcache.New[string, *visitor](
		ttlcache.WithTTL[string, *visitor](ttl),
		ttlcache.WithCapacity[string, *visitor](capacity),
	)
	s := &sessionStore{
		cache:    cache,
		ttl:      ttl,
		projects: projects,
		videos:   videos,
		logger:   log.With().Str("handlerName", "sessionStore").Logger(),
	}
	cache.OnEviction(func(_ context.Context, reason ttlcache.EvictionReason, item *ttlcache.Item[string, *visitor]) {
		if reason == ttlcache.EvictionReasonCapacityReached {
			s.logger.Debug().Str("session", item.Key()).Msg("view session dropped, store full")
			return
		}
		s.logger.Debug().Str("session", item.Key()).Msg("view session expired")
	})
	return s
}

// start runs the expiry loop until stop is called.
func (s *sessionStore) start() {
	go s.cache.Start()
}

func (s *sessionStore) stop() {
	s.cache.Stop()
}

func (s *sessionStore) newVisitor() *visitor {
	return &visitor{
		gallery:  gallery.NewView(s.projects, s.videos),
		projects: listing.NewPager(pagination.AdminMedia, services.ProjectPages(s.projects)),
		videos:   listing.NewPager(pagination.AdminVideos, services.VideoPages(s.videos)),
	}
}

// middleware attaches the caller's visitor state to the request context,
// creating it and setting the cookie on first sight.
func (s *sessionStore) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie(viewCookie); err == nil {
			if item := s.cache.Get(c.Value); item != nil {
				next.ServeHTTP(w, r.WithContext(ctxWithVisitor(r.Context(), item.Value())))
				return
			}
		}

		id := uuid.NewString()
		v := s.newVisitor()
		s.cache.Set(id, v, ttlcache.DefaultTTL)
		http.SetCookie(w, &http.Cookie{
			Name:     viewCookie,
			Value:    id,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
			Secure:   r.TLS != nil,
		})
		next.ServeHTTP(w, r.WithContext(ctxWithVisitor(r.Context(), v)))
	})
}
