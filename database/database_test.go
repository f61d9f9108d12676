package database

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/rpupo63/crpix-studio-backend/models"
	"github.com/rpupo63/crpix-studio-backend/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func projectRows(projects ...models.Project) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "title", "description", "category", "thumbnail_url", "images", "created_at"})
	for _, p := range projects {
		rows.AddRow(p.ID, p.Title, p.Description, p.Category, p.ThumbnailURL, []byte(`["`+p.ThumbnailURL+`"]`), p.CreatedAt)
	}
	return rows
}

func TestProjectRepo_FindPage_FirstPageAllCategories(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProjectRepo(db)

	p := models.Project{ID: uuid.New(), Title: "Wedding", Category: "Weddings", ThumbnailURL: "https://cdn/a.jpg", CreatedAt: time.Now()}
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "projects" ORDER BY created_at DESC LIMIT`)).
		WillReturnRows(projectRows(p))

	got, err := repo.FindPage(context.Background(), nil, pagination.Range{From: 0, To: 15, BatchSize: 16})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, p.ID, got[0].ID)
	assert.Equal(t, []string{"https://cdn/a.jpg"}, []string(got[0].Images))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectRepo_FindPage_FilteredLaterPage(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProjectRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "projects" WHERE category IN ($1,$2) ORDER BY created_at DESC LIMIT`)).
		WithArgs("Weddings", "Portraits", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(projectRows())

	got, err := repo.FindPage(context.Background(), []string{"Weddings", "Portraits"}, pagination.Range{From: 16, To: 23, BatchSize: 8})
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectRepo_Count(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProjectRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "projects"`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))

	total, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(42), total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVideoRepo_FindPage(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewVideoRepo(db)

	id := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "videos" WHERE category IN ($1) ORDER BY created_at DESC LIMIT`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "description", "category", "link", "created_at"}).
			AddRow(id, "Reel", "", "Events", "https://youtu.be/abc123", time.Now()))

	got, err := repo.FindPage(context.Background(), []string{"Events"}, pagination.Range{From: 0, To: 7, BatchSize: 8})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, id, got[0].ID)
	assert.Equal(t, "https://youtu.be/abc123", got[0].Link)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryRepo_FindAll(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCategoryRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "categories" ORDER BY created_at DESC`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at"}).
			AddRow(uuid.New(), "Weddings", time.Now()).
			AddRow(uuid.New(), "Portraits", time.Now().Add(-time.Hour)))

	got, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Weddings", got[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryRepo_Names(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCategoryRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "name" FROM "categories" ORDER BY created_at DESC`)).
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("Weddings").AddRow("Portraits"))

	got, err := repo.Names(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Weddings", "Portraits"}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryRepo_Add(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCategoryRepo(db)

	id := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "categories"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(id))

	c := &models.Category{Name: "Weddings"}
	require.NoError(t, repo.Add(context.Background(), c))
	assert.Equal(t, id, c.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Removing a category touches only the categories table; media tagged with
// the name stay as they are.
func TestCategoryRepo_Delete_LeavesMediaAlone(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCategoryRepo(db)

	id := uuid.New()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "categories" WHERE id = $1`)).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), id))
	// any UPDATE/DELETE on projects or videos would be an unexpected call
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_MissingRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewVideoRepo(db)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "videos"`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectRepo_Add(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProjectRepo(db)

	id := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "projects"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(id))

	p := &models.Project{
		Title:        "Sunset",
		Category:     "Outdoor",
		ThumbnailURL: "https://cdn/1.jpg",
		Images:       []string{"https://cdn/1.jpg", "https://cdn/2.jpg"},
	}
	require.NoError(t, repo.Add(context.Background(), p))
	assert.Equal(t, id, p.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
