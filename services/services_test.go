package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/crpix-studio-backend/errs"
	"github.com/rpupo63/crpix-studio-backend/models"
	"github.com/rpupo63/crpix-studio-backend/pagination"
	"github.com/rpupo63/crpix-studio-backend/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type memObjects struct {
	mu      sync.Mutex
	objects map[string][]byte
	failOn  string
	delay   time.Duration
}

func newMemObjects() *memObjects {
	return &memObjects{objects: map[string][]byte{}}
}

func (m *memObjects) Upload(ctx context.Context, name, contentType string, body io.Reader, size int64) (storage.Object, error) {
	if m.failOn != "" && strings.Contains(name, m.failOn) {
		return storage.Object{}, errors.New("storage unavailable")
	}
	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return storage.Object{}, ctx.Err()
		}
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return storage.Object{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[name] = data
	return storage.Object{Bucket: "images", Key: name}, nil
}

func (m *memObjects) PublicURL(obj storage.Object) string {
	return storage.PublicURL("https://cdn.example/images", obj.Key)
}

func (m *memObjects) keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for k := range m.objects {
		out = append(out, k)
	}
	return out
}

type memProjects struct {
	added   []*models.Project
	deleted []uuid.UUID
	err     error
}

func (m *memProjects) FindPage(ctx context.Context, categories []string, rng pagination.Range) ([]*models.Project, error) {
	return m.added, m.err
}

func (m *memProjects) Count(ctx context.Context) (int64, error) {
	return int64(len(m.added)), m.err
}

func (m *memProjects) Add(ctx context.Context, project *models.Project) error {
	if m.err != nil {
		return m.err
	}
	project.ID = uuid.New()
	m.added = append(m.added, project)
	return nil
}

func (m *memProjects) Delete(ctx context.Context, id uuid.UUID) error {
	if m.err != nil {
		return m.err
	}
	m.deleted = append(m.deleted, id)
	return nil
}

type memVideos struct {
	added []*models.Video
	err   error
}

func (m *memVideos) FindPage(ctx context.Context, categories []string, rng pagination.Range) ([]*models.Video, error) {
	return m.added, m.err
}

func (m *memVideos) Count(ctx context.Context) (int64, error) {
	return int64(len(m.added)), m.err
}

func (m *memVideos) Add(ctx context.Context, video *models.Video) error {
	if m.err != nil {
		return m.err
	}
	video.ID = uuid.New()
	m.added = append(m.added, video)
	return nil
}

func (m *memVideos) Delete(ctx context.Context, id uuid.UUID) error {
	return m.err
}

func upload(name string) Upload {
	return Upload{Filename: name, ContentType: "image/jpeg", Size: 3, Body: bytes.NewReader([]byte("img"))}
}

func newTestPublisher(projects *memProjects, videos *memVideos, objects *memObjects) *Publisher {
	p := NewPublisher(projects, videos, objects)
	p.now = func() time.Time { return time.UnixMilli(1718000000123) }
	return p
}

func TestPublishProject(t *testing.T) {
	projects, objects := &memProjects{}, newMemObjects()
	p := newTestPublisher(projects, &memVideos{}, objects)

	project, err := p.PublishProject(context.Background(), ProjectDraft{
		Title:    "  Beach Wedding ",
		Category: "Weddings",
		Images:   []Upload{upload("first shot.jpg"), upload("second.jpg"), upload("third.jpg")},
	})
	require.NoError(t, err)

	assert.Equal(t, "Beach Wedding", project.Title)
	assert.Equal(t, []string{
		"https://cdn.example/images/1718000000123-first_shot.jpg",
		"https://cdn.example/images/1718000000123-second.jpg",
		"https://cdn.example/images/1718000000123-third.jpg",
	}, []string(project.Images))
	assert.Equal(t, project.Images[0], project.ThumbnailURL)
	assert.Len(t, projects.added, 1)
	assert.Len(t, objects.keys(), 3)
}

// The second of three uploads fails: nothing is written and the first
// image stays in storage.
func TestPublishProjectUploadFailure(t *testing.T) {
	projects, objects := &memProjects{}, newMemObjects()
	objects.failOn = "second"
	p := newTestPublisher(projects, &memVideos{}, objects)

	_, err := p.PublishProject(context.Background(), ProjectDraft{
		Title:    "Beach Wedding",
		Category: "Weddings",
		Images:   []Upload{upload("first.jpg"), upload("second.jpg"), upload("third.jpg")},
	})
	require.Error(t, err)

	var apiErr *errs.ApiErr
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Failed to publish project. Check console.", apiErr.Hint)
	assert.ErrorIs(t, err, errs.ErrPartialFailure)

	assert.Empty(t, projects.added)
	assert.Contains(t, objects.keys(), "1718000000123-first.jpg")
	assert.NotContains(t, objects.keys(), "1718000000123-second.jpg")
}

// Uploads still in flight when a sibling fails run to completion.
func TestPublishProjectFailureKeepsSlowUploads(t *testing.T) {
	projects, objects := &memProjects{}, newMemObjects()
	objects.failOn = "second"
	objects.delay = 50 * time.Millisecond
	p := newTestPublisher(projects, &memVideos{}, objects)

	_, err := p.PublishProject(context.Background(), ProjectDraft{
		Title:    "Beach Wedding",
		Category: "Weddings",
		Images:   []Upload{upload("first.jpg"), upload("second.jpg"), upload("third.jpg")},
	})
	require.ErrorIs(t, err, errs.ErrPartialFailure)

	assert.Empty(t, projects.added)
	assert.ElementsMatch(t,
		[]string{"1718000000123-first.jpg", "1718000000123-third.jpg"},
		objects.keys())
}

func TestPublishProjectValidation(t *testing.T) {
	tests := []struct {
		name  string
		draft ProjectDraft
		field string
		hint  string
	}{
		{"missing title", ProjectDraft{Category: "Weddings", Images: []Upload{upload("a.jpg")}}, "title", "Please fill all required fields (Title, Category, Images)"},
		{"blank category", ProjectDraft{Title: "T", Category: "  ", Images: []Upload{upload("a.jpg")}}, "category", "Please fill all required fields (Title, Category, Images)"},
		{"no images", ProjectDraft{Title: "T", Category: "Weddings"}, "images", "Please fill all required fields (Title, Category, Images)"},
		{"empty image list", ProjectDraft{Title: "T", Category: "Weddings", Images: []Upload{}}, "images", "Please fill all required fields (Title, Category, Images)"},
		{"five images", ProjectDraft{Title: "T", Category: "Weddings", Images: []Upload{
			upload("1.jpg"), upload("2.jpg"), upload("3.jpg"), upload("4.jpg"), upload("5.jpg"),
		}}, "images", "Maximum 4 images allowed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			projects, objects := &memProjects{}, newMemObjects()
			p := newTestPublisher(projects, &memVideos{}, objects)

			_, err := p.PublishProject(context.Background(), tt.draft)
			var apiErr *errs.ApiErr
			require.ErrorAs(t, err, &apiErr)
			assert.True(t, errs.IsBadRequest(err))
			assert.Equal(t, tt.field, apiErr.Field)
			assert.Equal(t, tt.hint, apiErr.Hint)

			// nothing reaches storage or the database
			assert.Empty(t, objects.keys())
			assert.Empty(t, projects.added)
		})
	}
}

func TestPublishProjectDatabaseFailure(t *testing.T) {
	projects, objects := &memProjects{err: errors.New("dial tcp: connection refused")}, newMemObjects()
	p := newTestPublisher(projects, &memVideos{}, objects)

	_, err := p.PublishProject(context.Background(), ProjectDraft{
		Title: "T", Category: "Weddings", Images: []Upload{upload("a.jpg")},
	})
	assert.True(t, errs.IsDatabaseConnectionError(err))
	assert.Len(t, objects.keys(), 1)
}

func TestObjectNamesAreUnique(t *testing.T) {
	now := time.UnixMilli(1000)
	names := objectNames(now, []Upload{upload("a b.jpg"), upload("a_b.jpg"), upload("c.jpg")})
	assert.Equal(t, []string{"1000-a_b.jpg", "1001-a_b.jpg", "1000-c.jpg"}, names)
}

func TestPublishVideo(t *testing.T) {
	videos := &memVideos{}
	p := newTestPublisher(&memProjects{}, videos, newMemObjects())

	video, err := p.PublishVideo(context.Background(), VideoDraft{
		Title:    "Highlights",
		Category: "Events",
		Link:     " https://www.instagram.com/reel/Cabc123/ ",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://www.instagram.com/reel/Cabc123/", video.Link)
	assert.Len(t, videos.added, 1)
}

func TestPublishVideoValidation(t *testing.T) {
	tests := []struct {
		name  string
		draft VideoDraft
		field string
		hint  string
	}{
		{"missing link", VideoDraft{Title: "T", Category: "Events"}, "link", "Please fill all required fields (Title, Category, Link)"},
		{"missing title", VideoDraft{Category: "Events", Link: "https://youtu.be/abc"}, "title", "Please fill all required fields (Title, Category, Link)"},
		{"vimeo link", VideoDraft{Title: "T", Category: "Events", Link: "https://vimeo.com/123"}, "link", "Please provide a valid YouTube or Instagram link."},
		{"youtube without id", VideoDraft{Title: "T", Category: "Events", Link: "https://youtube.com/watch?v="}, "link", "Please provide a valid YouTube or Instagram link."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			videos := &memVideos{}
			p := newTestPublisher(&memProjects{}, videos, newMemObjects())

			_, err := p.PublishVideo(context.Background(), tt.draft)
			var apiErr *errs.ApiErr
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.field, apiErr.Field)
			assert.Equal(t, tt.hint, apiErr.Hint)
			assert.Empty(t, videos.added)
		})
	}
}

func TestDeleteProjectNotFound(t *testing.T) {
	p := newTestPublisher(&memProjects{err: gorm.ErrRecordNotFound}, &memVideos{}, newMemObjects())
	err := p.DeleteProject(context.Background(), uuid.New())
	assert.True(t, errs.IsNotFound(err))
}

func TestProjectPagesCarriesTotal(t *testing.T) {
	projects := &memProjects{added: []*models.Project{{ID: uuid.New()}, {ID: uuid.New()}}}
	batch, err := ProjectPages(projects)(context.Background(), pagination.Range{From: 0, To: 15, BatchSize: 16})
	require.NoError(t, err)
	assert.Len(t, batch.Items, 2)
	assert.Equal(t, int64(2), batch.Total)
}

type memCategories struct {
	rows    []*models.Category
	deleted []uuid.UUID
	err     error
}

func (m *memCategories) FindAll(ctx context.Context) ([]*models.Category, error) {
	return m.rows, m.err
}

func (m *memCategories) Names(ctx context.Context) ([]string, error) {
	names := make([]string, 0, len(m.rows))
	for _, c := range m.rows {
		names = append(names, c.Name)
	}
	return names, m.err
}

func (m *memCategories) Add(ctx context.Context, c *models.Category) error {
	if m.err != nil {
		return m.err
	}
	for _, existing := range m.rows {
		if existing.Name == c.Name {
			return gorm.ErrDuplicatedKey
		}
	}
	c.ID = uuid.New()
	m.rows = append(m.rows, c)
	return nil
}

func (m *memCategories) Delete(ctx context.Context, id uuid.UUID) error {
	m.deleted = append(m.deleted, id)
	return m.err
}

func TestCategoryCreate(t *testing.T) {
	store := &memCategories{}
	s := NewCategoryService(store)

	c, err := s.Create(context.Background(), "  Weddings ")
	require.NoError(t, err)
	assert.Equal(t, "Weddings", c.Name)

	_, err = s.Create(context.Background(), "Weddings")
	var apiErr *errs.ApiErr
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, errs.IsUniqueConstraintViolationError(err))
	assert.Equal(t, "Failed to add category. Name might be duplicate.", apiErr.Hint)

	_, err = s.Create(context.Background(), "   ")
	assert.True(t, errs.IsMissingRequiredFieldError(err))
	assert.Len(t, store.rows, 1)
}

func TestCategoryDelete(t *testing.T) {
	store := &memCategories{}
	s := NewCategoryService(store)
	id := uuid.New()

	require.NoError(t, s.Delete(context.Background(), id))
	assert.Equal(t, []uuid.UUID{id}, store.deleted)

	store.err = errors.New("boom")
	err := s.Delete(context.Background(), id)
	var apiErr *errs.ApiErr
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Failed to delete category", apiErr.Hint)
}
