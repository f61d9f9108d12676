package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/crpix-studio-backend/models"
	"github.com/rpupo63/crpix-studio-backend/pagination"
	"gorm.io/gorm"
)

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// FindPage returns the projects in rng, newest first, restricted to the
// given categories when any are passed
func (r *ProjectRepo) FindPage(ctx context.Context, categories []string, rng pagination.Range) ([]*models.Project, error) {
	var projects []*models.Project
	err := pageQuery(r.db.WithContext(ctx).Model(&models.Project{}), categories, rng).Find(&projects).Error
	return projects, err
}

// Count returns how many projects exist
func (r *ProjectRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Project{}).Count(&total).Error
	return total, err
}

// Add inserts a new project into the database
func (r *ProjectRepo) Add(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

// Delete removes the project row. Stored images are left in place.
func (r *ProjectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, &models.Project{}, id)
}
