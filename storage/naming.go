package storage

import (
	"fmt"
	"regexp"
	"time"
)

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9.]`)

// ObjectName builds the stored name for an upload:
// {epoch millis}-{original name with every char outside [a-zA-Z0-9.] replaced by _}.
func ObjectName(now time.Time, filename string) string {
	return fmt.Sprintf("%d-%s", now.UnixMilli(), unsafeNameChars.ReplaceAllString(filename, "_"))
}
