package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/crpix-studio-backend/models"
	"github.com/rpupo63/crpix-studio-backend/pagination"
	"gorm.io/gorm"
)

type VideoRepo struct {
	db *gorm.DB
}

func NewVideoRepo(db *gorm.DB) *VideoRepo {
	return &VideoRepo{db}
}

// FindPage returns the videos in rng, newest first, restricted to the
// given categories when any are passed
func (r *VideoRepo) FindPage(ctx context.Context, categories []string, rng pagination.Range) ([]*models.Video, error) {
	var videos []*models.Video
	err := pageQuery(r.db.WithContext(ctx).Model(&models.Video{}), categories, rng).Find(&videos).Error
	return videos, err
}

// Count returns how many videos exist
func (r *VideoRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Video{}).Count(&total).Error
	return total, err
}

// Add inserts a new video into the database
func (r *VideoRepo) Add(ctx context.Context, video *models.Video) error {
	return r.db.WithContext(ctx).Create(video).Error
}

// Delete removes a video by id
func (r *VideoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, &models.Video{}, id)
}
