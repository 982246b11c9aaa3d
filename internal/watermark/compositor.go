package watermark

import (
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"

	"golang.org/x/image/bmp"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/tiff"

	"datemark/pkg/imgutil"
)

// Stamp composites the watermark text onto the image at srcPath and
// writes the result to destPath, preserving the source encoding family.
// The text is cfg.Text when set, otherwise the resolved capture date.
func Stamp(srcPath, destPath string, cfg Config, fh *FontHandle) error {
	kind := imgutil.KindForPath(srcPath)
	if kind == imgutil.KindUnknown {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(srcPath))
	}

	text := cfg.Text
	if text == "" {
		text = ResolveDate(srcPath, cfg)
	}

	f, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	img, _, err := image.Decode(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}

	stamped := overlay(img, text, fh.NewFace(), cfg)

	if err := writeImage(destPath, stamped, kind, cfg.Quality); err != nil {
		return err
	}
	return nil
}

// overlay draws text onto a copy of img with the configured color and
// anchor. The draw origin is clamped to the image so oversized text or
// padding degrades gracefully instead of failing.
func overlay(img image.Image, text string, face font.Face, cfg Config) *image.RGBA {
	bounds := img.Bounds()
	dst := image.NewRGBA(bounds)
	draw.Draw(dst, bounds, img, bounds.Min, draw.Src)

	drawer := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(cfg.Color),
		Face: face,
	}

	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	textW := drawer.MeasureString(text).Ceil()
	textH := ascent + metrics.Descent.Ceil()

	x, y := cfg.Position.Position(bounds.Dx(), bounds.Dy(), textW, textH, cfg.Padding)
	x = clamp(x, 0, bounds.Dx()-1)
	y = clamp(y, 0, bounds.Dy()-1)

	drawer.Dot = fixed.P(bounds.Min.X+x, bounds.Min.Y+y+ascent)
	drawer.DrawString(text)

	return dst
}

// writeImage encodes img at destPath via a temp file in the destination
// directory, renamed into place once the encode has been synced.
func writeImage(destPath string, img image.Image, kind imgutil.Kind, quality int) error {
	destDir := filepath.Dir(destPath)

	tmp, err := os.CreateTemp(destDir, "datemark-*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	defer os.Remove(tmp.Name())

	encErr := encode(tmp, img, kind, quality)
	if encErr == nil {
		encErr = tmp.Sync()
	}
	if closeErr := tmp.Close(); encErr == nil {
		encErr = closeErr
	}
	if encErr != nil {
		return fmt.Errorf("%w: %v", ErrWrite, encErr)
	}

	if err := os.Rename(tmp.Name(), destPath); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return nil
}

// JPEG honors the quality setting; the lossless families pass the
// blended buffer through without quality-driven recompression.
func encode(f *os.File, img image.Image, kind imgutil.Kind, quality int) error {
	switch kind {
	case imgutil.KindJPEG:
		return jpeg.Encode(f, img, &jpeg.Options{Quality: quality})
	case imgutil.KindPNG:
		return png.Encode(f, img)
	case imgutil.KindBMP:
		return bmp.Encode(f, img)
	case imgutil.KindTIFF:
		return tiff.Encode(f, img, nil)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, kind)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
