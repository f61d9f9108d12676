package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// MaxProjectImages is how many images a single project may carry.
const MaxProjectImages = 4

// Project is a published photo set. ThumbnailURL is always Images[0].
type Project struct {
	ID           uuid.UUID                   `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Title        string                      `json:"title" db:"title" gorm:"type:text;not null"`
	Description  string                      `json:"description" db:"description" gorm:"type:text;not null;default:''"`
	Category     string                      `json:"category" db:"category" gorm:"type:text;not null;index:idx_projects_category"`
	ThumbnailURL string                      `json:"thumbnail_url" db:"thumbnail_url" gorm:"type:text;not null"`
	Images       datatypes.JSONSlice[string] `json:"images" db:"images" gorm:"type:jsonb;not null"`
	CreatedAt    time.Time                   `json:"created_at" db:"created_at" gorm:"type:timestamptz;not null;autoCreateTime;index:idx_projects_created_at,sort:desc"`
}

func (p Project) Key() uuid.UUID {
	return p.ID
}
