package models

import (
	"time"

	"github.com/google/uuid"
)

// Video is an embedded YouTube or Instagram clip. Nothing is uploaded for it.
type Video struct {
	ID          uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Title       string    `json:"title" db:"title" gorm:"type:text;not null"`
	Description string    `json:"description" db:"description" gorm:"type:text;not null;default:''"`
	Category    string    `json:"category" db:"category" gorm:"type:text;not null;index:idx_videos_category"`
	Link        string    `json:"link" db:"link" gorm:"type:text;not null"`
	CreatedAt   time.Time `json:"created_at" db:"created_at" gorm:"type:timestamptz;not null;autoCreateTime;index:idx_videos_created_at,sort:desc"`
}

func (v Video) Key() uuid.UUID {
	return v.ID
}
