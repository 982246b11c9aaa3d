package watermark

import (
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Fallback tiers, in the order they are attempted.
const (
	TierCustom   = "custom"
	TierSystem   = "system"
	TierEmbedded = "embedded"
	TierBitmap   = "bitmap"
)

var systemFontPaths = []string{
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/TTF/DejaVuSans.ttf",
	"/System/Library/Fonts/Supplemental/Arial.ttf",
	"/Library/Fonts/Arial.ttf",
	`C:\Windows\Fonts\arial.ttf`,
}

// FontHandle wraps a parsed font so every worker can mint its own
// face: the parsed sfnt data is safe to share, an opentype.Face is not.
type FontHandle struct {
	parsed *opentype.Font // nil once only the fixed-size bitmap face remains
	size   float64
	tier   string
}

// Tier reports which fallback level supplied the font, for logging.
func (h *FontHandle) Tier() string { return h.tier }

// NewFace returns a fresh face for exclusive use by one goroutine.
func (h *FontHandle) NewFace() font.Face {
	if h.parsed == nil {
		return basicfont.Face7x13
	}
	face, err := opentype.NewFace(h.parsed, &opentype.FaceOptions{
		Size:    h.size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return basicfont.Face7x13
	}
	return face
}

// ResolveFont loads a renderable font at the requested size, trying the
// custom path, then well-known system fonts, then the embedded Go
// Regular, and finally a fixed-size bitmap face. It never fails.
func ResolveFont(customPath string, size int) *FontHandle {
	pts := float64(size)

	if customPath != "" {
		if parsed, err := parseFontFile(customPath); err == nil {
			return &FontHandle{parsed: parsed, size: pts, tier: TierCustom}
		}
	}

	for _, path := range systemFontPaths {
		if parsed, err := parseFontFile(path); err == nil {
			return &FontHandle{parsed: parsed, size: pts, tier: TierSystem}
		}
	}

	if parsed, err := opentype.Parse(goregular.TTF); err == nil {
		return &FontHandle{parsed: parsed, size: pts, tier: TierEmbedded}
	}

	// Fixed-size face; the requested size is ignored here.
	return &FontHandle{tier: TierBitmap}
}

func parseFontFile(path string) (*opentype.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return opentype.Parse(data)
}
