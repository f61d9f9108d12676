package media

import (
	"fmt"
	"regexp"
	"strings"
)

// Platform is where an embedded video is hosted.
type Platform string

const (
	YouTube   Platform = "youtube"
	Instagram Platform = "instagram"
	Unknown   Platform = "unknown"
)

var youTubeID = regexp.MustCompile(`(?:youtu\.be/|youtube\.com/watch\?v=|youtube\.com/embed/)([^#&?]*)`)

// Link is a recognised video link.
type Link struct {
	Raw      string   `json:"link"`
	Platform Platform `json:"platform"`
	// ID is the YouTube video id. Instagram embeds use the full URL.
	ID string `json:"id,omitempty"`
}

// ParseLink detects the platform of a video link. Links that are neither
// YouTube nor Instagram come back with Platform Unknown.
func ParseLink(raw string) Link {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Link{Platform: Unknown}
	}

	if m := youTubeID.FindStringSubmatch(raw); m != nil && m[1] != "" {
		return Link{Raw: raw, Platform: YouTube, ID: m[1]}
	}

	if strings.Contains(raw, "instagram.com/reel/") || strings.Contains(raw, "instagram.com/p/") {
		return Link{Raw: raw, Platform: Instagram}
	}

	return Link{Raw: raw, Platform: Unknown}
}

func (l Link) Supported() bool {
	return l.Platform == YouTube || l.Platform == Instagram
}

// Thumbnail returns the preview image for YouTube links, empty otherwise.
func (l Link) Thumbnail() string {
	if l.Platform != YouTube {
		return ""
	}
	return fmt.Sprintf("https://img.youtube.com/vi/%s/hqdefault.jpg", l.ID)
}

// EmbedURL returns the iframe source for the link.
func (l Link) EmbedURL() string {
	switch l.Platform {
	case YouTube:
		return fmt.Sprintf("https://www.youtube.com/embed/%s", l.ID)
	case Instagram:
		base := l.Raw
		if i := strings.IndexAny(base, "?#"); i >= 0 {
			base = base[:i]
		}
		return strings.TrimSuffix(base, "/") + "/embed"
	default:
		return ""
	}
}
