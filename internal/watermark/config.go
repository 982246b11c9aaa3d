package watermark

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the resolved watermark configuration. It is validated once
// at construction and read-only afterwards, so a single value is shared
// across all worker goroutines without locking.
type Config struct {
	Text        string
	FontSize    int `validate:"gt=0"`
	Color       color.NRGBA
	Position    Anchor
	FontPath    string
	DateFormat  string `validate:"required"`
	UnknownText string
	Quality     int `validate:"min=1,max=100"`
	Padding     int `validate:"min=0"`
	Parallel    bool
	Workers     int `validate:"min=0"`
}

// Params carries the raw, user-facing option values before parsing and
// validation.
type Params struct {
	Text        string
	FontSize    int
	Color       string
	Position    string
	FontPath    string
	DateFormat  string
	UnknownText string
	Quality     int
	Padding     int
	Parallel    bool
	Workers     int
}

// Defaults are the built-in option values, each overridable through a
// DATEMARK_* environment variable. Flags still win over both.
type Defaults struct {
	FontSize    int    `env:"DATEMARK_FONT_SIZE" env-default:"36"`
	Color       string `env:"DATEMARK_COLOR" env-default:"255,255,255,128"`
	Position    string `env:"DATEMARK_POSITION" env-default:"bottom-right"`
	FontPath    string `env:"DATEMARK_FONT"`
	DateFormat  string `env:"DATEMARK_DATE_FORMAT" env-default:"%Y-%m-%d"`
	UnknownText string `env:"DATEMARK_UNKNOWN_TEXT" env-default:"unknown date"`
	Quality     int    `env:"DATEMARK_QUALITY" env-default:"85"`
	Padding     int    `env:"DATEMARK_PADDING" env-default:"20"`
	Workers     int    `env:"DATEMARK_WORKERS"`
}

// LoadDefaults reads the DATEMARK_* environment into a Defaults value.
func LoadDefaults() (Defaults, error) {
	var d Defaults
	if err := cleanenv.ReadEnv(&d); err != nil {
		return Defaults{}, fmt.Errorf("read environment defaults: %w", err)
	}
	return d, nil
}

var validate = validator.New()

// NewConfig parses and validates params into an immutable Config.
// Any violation (quality out of range, bad color, unknown position)
// is fatal and reported before processing begins.
func NewConfig(p Params) (Config, error) {
	col, err := ParseColor(p.Color)
	if err != nil {
		return Config{}, err
	}

	anchor, err := ParseAnchor(p.Position)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Text:        p.Text,
		FontSize:    p.FontSize,
		Color:       col,
		Position:    anchor,
		FontPath:    p.FontPath,
		DateFormat:  p.DateFormat,
		UnknownText: p.UnknownText,
		Quality:     p.Quality,
		Padding:     p.Padding,
		Parallel:    p.Parallel,
		Workers:     p.Workers,
	}

	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// ParseColor reads an "r,g,b" or "r,g,b,a" string with each channel in
// [0,255]. Without an explicit alpha the watermark is half-transparent.
func ParseColor(s string) (color.NRGBA, error) {
	parts := strings.Split(strings.ReplaceAll(s, " ", ""), ",")
	if len(parts) != 3 && len(parts) != 4 {
		return color.NRGBA{}, fmt.Errorf("color must be \"r,g,b\" or \"r,g,b,a\", got %q", s)
	}

	channels := make([]uint8, 0, 4)
	for _, part := range parts {
		v, err := strconv.Atoi(part)
		if err != nil || v < 0 || v > 255 {
			return color.NRGBA{}, fmt.Errorf("color channel %q out of range [0,255]", part)
		}
		channels = append(channels, uint8(v))
	}

	a := uint8(128)
	if len(channels) == 4 {
		a = channels[3]
	}
	return color.NRGBA{R: channels[0], G: channels[1], B: channels[2], A: a}, nil
}
