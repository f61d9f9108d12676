package services

import (
	"context"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/crpix-studio-backend/errs"
	"github.com/rpupo63/crpix-studio-backend/listing"
	"github.com/rpupo63/crpix-studio-backend/metrics"
	"github.com/rpupo63/crpix-studio-backend/models"
	"github.com/rpupo63/crpix-studio-backend/pagination"
	"github.com/rpupo63/crpix-studio-backend/storage"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

type ObjectStore interface {
	Upload(ctx context.Context, name, contentType string, body io.Reader, size int64) (storage.Object, error)
	PublicURL(obj storage.Object) string
}

type ProjectStore interface {
	FindPage(ctx context.Context, categories []string, rng pagination.Range) ([]*models.Project, error)
	Count(ctx context.Context) (int64, error)
	Add(ctx context.Context, project *models.Project) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type VideoStore interface {
	FindPage(ctx context.Context, categories []string, rng pagination.Range) ([]*models.Video, error)
	Count(ctx context.Context) (int64, error)
	Add(ctx context.Context, video *models.Video) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Upload is one image file of a project draft.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type ProjectDraft struct {
	Title       string   `json:"title" validate:"required"`
	Category    string   `json:"category" validate:"required"`
	Description string   `json:"description"`
	Images      []Upload `json:"images" validate:"required,min=1,maximages"`
}

type VideoDraft struct {
	Title       string `json:"title" validate:"required"`
	Category    string `json:"category" validate:"required"`
	Link        string `json:"link" validate:"required,videolink"`
	Description string `json:"description"`
}

// Publisher creates and deletes projects and videos.
type Publisher struct {
	projects  ProjectStore
	videos    VideoStore
	objects   ObjectStore
	validator *Validator
	now       func() time.Time
	logger    zerolog.Logger
}

func NewPublisher(projects ProjectStore, videos VideoStore, objects ObjectStore) *Publisher {
	return &Publisher{
		projects:  projects,
		videos:    videos,
		objects:   objects,
		validator: NewValidator(),
		now:       time.Now,
		logger:    log.With().Str("service", "publisher").Logger(),
	}
}

// PublishProject uploads every image concurrently, then writes one project
// row whose thumbnail is the first image. If any upload fails no row is
// written; objects already stored are left in the bucket.
func (p *Publisher) PublishProject(ctx context.Context, draft ProjectDraft) (project *models.Project, err error) {
	defer func() { metrics.RecordPublish("project", err) }()

	draft.Title = strings.TrimSpace(draft.Title)
	draft.Category = strings.TrimSpace(draft.Category)
	draft.Description = strings.TrimSpace(draft.Description)
	if err := p.validator.Validate(draft, "Please fill all required fields (Title, Category, Images)"); err != nil {
		return nil, err
	}

	names := objectNames(p.now(), draft.Images)
	urls := make([]string, len(draft.Images))

	var (
		mu     sync.Mutex
		stored []string
	)
	// a failed upload does not cancel its siblings
	var g errgroup.Group
	for i, img := range draft.Images {
		g.Go(func() error {
			obj, err := p.objects.Upload(ctx, names[i], img.ContentType, img.Body, img.Size)
			metrics.RecordUpload(err)
			if err != nil {
				return errs.NewStorageError("upload", img.Filename, err)
			}
			urls[i] = p.objects.PublicURL(obj)

			mu.Lock()
			stored = append(stored, obj.Key)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		p.logOrphans(stored, err)
		return nil, errs.NewPartialFailureError("publish project", stored, err).
			WithHint("Failed to publish project. Check console.")
	}

	project = &models.Project{
		Title:        draft.Title,
		Description:  draft.Description,
		Category:     draft.Category,
		ThumbnailURL: urls[0],
		Images:       urls,
	}
	if err := p.projects.Add(ctx, project); err != nil {
		p.logOrphans(stored, err)
		return nil, errs.NewDatabaseError("add", "project", err).
			WithHint("Failed to publish project. Check console.")
	}

	p.logger.Info().
		Str("id", project.ID.String()).
		Str("category", project.Category).
		Int("images", len(urls)).
		Msg("project published")
	return project, nil
}

// PublishVideo records a YouTube or Instagram link. Unsupported links are
// rejected before the store is called.
func (p *Publisher) PublishVideo(ctx context.Context, draft VideoDraft) (video *models.Video, err error) {
	defer func() { metrics.RecordPublish("video", err) }()

	draft.Title = strings.TrimSpace(draft.Title)
	draft.Category = strings.TrimSpace(draft.Category)
	draft.Link = strings.TrimSpace(draft.Link)
	draft.Description = strings.TrimSpace(draft.Description)
	if err := p.validator.Validate(draft, "Please fill all required fields (Title, Category, Link)"); err != nil {
		return nil, err
	}

	video = &models.Video{
		Title:       draft.Title,
		Description: draft.Description,
		Category:    draft.Category,
		Link:        draft.Link,
	}
	if err := p.videos.Add(ctx, video); err != nil {
		p.logger.Error().Err(err).Str("link", draft.Link).Msg("failed to add video")
		return nil, errs.NewDatabaseError("add", "video", err).WithHint("Failed to publish video.")
	}

	p.logger.Info().Str("id", video.ID.String()).Str("category", video.Category).Msg("video published")
	return video, nil
}

// DeleteProject removes the row only; its images stay in storage.
func (p *Publisher) DeleteProject(ctx context.Context, id uuid.UUID) error {
	if err := p.projects.Delete(ctx, id); err != nil {
		p.logger.Error().Err(err).Str("id", id.String()).Msg("failed to delete project")
		return errs.NewDatabaseError("delete", "project", err).WithHint("Failed to delete project")
	}
	return nil
}

func (p *Publisher) DeleteVideo(ctx context.Context, id uuid.UUID) error {
	if err := p.videos.Delete(ctx, id); err != nil {
		p.logger.Error().Err(err).Str("id", id.String()).Msg("failed to delete video")
		return errs.NewDatabaseError("delete", "video", err).WithHint("Failed to delete video")
	}
	return nil
}

// ProjectPages loads admin project pages with the exact row count.
func ProjectPages(store ProjectStore) listing.Loader[*models.Project] {
	return func(ctx context.Context, rng pagination.Range) (listing.Batch[*models.Project], error) {
		rows, err := store.FindPage(ctx, nil, rng)
		if err != nil {
			return listing.Batch[*models.Project]{}, errs.NewDatabaseError("list", "projects", err).WithHint("Failed to load projects")
		}
		total, err := store.Count(ctx)
		if err != nil {
			return listing.Batch[*models.Project]{}, errs.NewDatabaseError("count", "projects", err).WithHint("Failed to load projects")
		}
		return listing.Batch[*models.Project]{Items: rows, Total: total}, nil
	}
}

// VideoPages loads admin video pages with the exact row count.
func VideoPages(store VideoStore) listing.Loader[*models.Video] {
	return func(ctx context.Context, rng pagination.Range) (listing.Batch[*models.Video], error) {
		rows, err := store.FindPage(ctx, nil, rng)
		if err != nil {
			return listing.Batch[*models.Video]{}, errs.NewDatabaseError("list", "videos", err).WithHint("Failed to load videos")
		}
		total, err := store.Count(ctx)
		if err != nil {
			return listing.Batch[*models.Video]{}, errs.NewDatabaseError("count", "videos", err).WithHint("Failed to load videos")
		}
		return listing.Batch[*models.Video]{Items: rows, Total: total}, nil
	}
}

func (p *Publisher) logOrphans(keys []string, cause error) {
	if len(keys) == 0 {
		return
	}
	p.logger.Warn().Err(cause).Strs("objects", keys).Msg("publish failed, uploaded objects left orphaned")
}

// objectNames names each upload. Two files whose names sanitize to the same
// string get consecutive timestamps so neither overwrites the other.
func objectNames(now time.Time, uploads []Upload) []string {
	names := make([]string, len(uploads))
	taken := make(map[string]bool, len(uploads))
	for i, u := range uploads {
		t := now
		name := storage.ObjectName(t, u.Filename)
		for taken[name] {
			t = t.Add(time.Millisecond)
			name = storage.ObjectName(t, u.Filename)
		}
		taken[name] = true
		names[i] = name
	}
	return names
}
