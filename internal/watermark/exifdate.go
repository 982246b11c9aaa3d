package watermark

import (
	"os"
	"strings"
	"time"

	exif "github.com/dsoprea/go-exif/v3"
)

// EXIF date-time strings use colons in the date part.
const exifTimeLayout = "2006:01:02 15:04:05"

// Capture-date fields in priority order.
var dateTagOrder = []string{"DateTimeOriginal", "DateTimeDigitized", "DateTime"}

// ResolveDate extracts the capture date embedded in the image at path
// and formats it per cfg.DateFormat. Absent, unreadable, or malformed
// metadata degrades to cfg.UnknownText; no failure escapes this
// function.
func ResolveDate(path string, cfg Config) string {
	captured, ok := captureTime(path)
	if !ok {
		return cfg.UnknownText
	}
	return captured.Format(layoutFor(cfg.DateFormat))
}

func captureTime(path string) (captured time.Time, ok bool) {
	// go-exif panics on some malformed TIFF structures.
	defer func() {
		if r := recover(); r != nil {
			ok = false
		}
	}()

	f, err := os.Open(path)
	if err != nil {
		return time.Time{}, false
	}
	defer f.Close()

	tags, _, err := exif.GetFlatExifDataUniversalSearchWithReadSeeker(f, nil, true)
	if err != nil {
		return time.Time{}, false
	}

	values := make(map[string]string, len(tags))
	for _, tag := range tags {
		if _, seen := values[tag.TagName]; !seen {
			values[tag.TagName] = strings.TrimSpace(tag.Formatted)
		}
	}

	for _, name := range dateTagOrder {
		raw, found := values[name]
		if !found || raw == "" {
			continue
		}
		if t, err := time.Parse(exifTimeLayout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// "%%" must come first so a literal percent never collides with a token.
var strftimeTokens = strings.NewReplacer(
	"%%", "%",
	"%Y", "2006",
	"%y", "06",
	"%m", "01",
	"%d", "02",
	"%H", "15",
	"%M", "04",
	"%S", "05",
)

// layoutFor accepts either strftime-style tokens (%Y-%m-%d) or a Go
// reference layout (2006-01-02) and returns a Go layout.
func layoutFor(pattern string) string {
	if strings.Contains(pattern, "%") {
		return strftimeTokens.Replace(pattern)
	}
	return pattern
}
