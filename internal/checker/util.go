package checker

import (
	"fmt"
	"regexp"
	"time"
)

var invalidFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// screenshotObjectName builds a filesystem/bucket safe object name for
// the evidence screenshot, e.g. "Cloud_Gateway_Fiber_20260830T151204.png".
func screenshotObjectName(product string, at time.Time) string {
	base := invalidFilenameChars.ReplaceAllString(product, "_")
	return fmt.Sprintf("%s_%s.png", base, at.UTC().Format("20060102T150405"))
}
