package models

import (
	"time"

	"github.com/google/uuid"
)

// Category is a gallery filter label. Projects and videos reference it by
// name, not by id, so deleting a category leaves their category text as is.
type Category struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Name      string    `json:"name" db:"name" gorm:"type:text;not null;unique"`
	CreatedAt time.Time `json:"created_at" db:"created_at" gorm:"type:timestamptz;not null;autoCreateTime"`
}
