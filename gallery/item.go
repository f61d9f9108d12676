package gallery

import (
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/crpix-studio-backend/media"
	"github.com/rpupo63/crpix-studio-backend/models"
)

type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
)

// Item is what the public gallery renders for one project or video.
type Item struct {
	ID          uuid.UUID      `json:"id"`
	Kind        Kind           `json:"kind"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Category    string         `json:"category"`
	Thumbnail   string         `json:"thumbnail,omitempty"`
	Images      []string       `json:"images,omitempty"`
	Link        string         `json:"link,omitempty"`
	Platform    media.Platform `json:"platform,omitempty"`
	EmbedURL    string         `json:"embed_url,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

func (i Item) Key() uuid.UUID {
	return i.ID
}

func FromProject(p *models.Project) Item {
	return Item{
		ID:          p.ID,
		Kind:        KindImage,
		Title:       p.Title,
		Description: p.Description,
		Category:    p.Category,
		Thumbnail:   p.ThumbnailURL,
		Images:      []string(p.Images),
		CreatedAt:   p.CreatedAt,
	}
}

func FromVideo(v *models.Video) Item {
	link := media.ParseLink(v.Link)
	return Item{
		ID:          v.ID,
		Kind:        KindVideo,
		Title:       v.Title,
		Description: v.Description,
		Category:    v.Category,
		Thumbnail:   link.Thumbnail(),
		Link:        v.Link,
		Platform:    link.Platform,
		EmbedURL:    link.EmbedURL(),
		CreatedAt:   v.CreatedAt,
	}
}
