package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/crpix-studio-backend/models"
	"gorm.io/gorm"
)

type CategoryRepo struct {
	db *gorm.DB
}

func NewCategoryRepo(db *gorm.DB) *CategoryRepo {
	return &CategoryRepo{db}
}

// FindAll returns every category, newest first
func (r *CategoryRepo) FindAll(ctx context.Context) ([]*models.Category, error) {
	var categories []*models.Category
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&categories).Error
	return categories, err
}

// Names returns the category names, newest first
func (r *CategoryRepo) Names(ctx context.Context) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).Model(&models.Category{}).Order("created_at DESC").Pluck("name", &names).Error
	return names, err
}

// Add inserts a new category and fills in its id and creation time
func (r *CategoryRepo) Add(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

// Delete removes a category by id. Projects and videos keep the name.
func (r *CategoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, &models.Category{}, id)
}
