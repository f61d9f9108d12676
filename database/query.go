package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/crpix-studio-backend/pagination"
	"gorm.io/gorm"
)

// pageQuery orders newest first, applies the category constraint and
// slices the inclusive range.
func pageQuery(tx *gorm.DB, categories []string, rng pagination.Range) *gorm.DB {
	tx = tx.Order("created_at DESC")
	if len(categories) > 0 {
		tx = tx.Where("category IN ?", categories)
	}
	return tx.Offset(rng.Offset()).Limit(rng.Limit())
}

// deleteByID removes one row by primary key. A missing row is reported as
// gorm.ErrRecordNotFound.
func deleteByID(ctx context.Context, db *gorm.DB, model any, id uuid.UUID) error {
	res := db.WithContext(ctx).Delete(model, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
