package watermark

import "fmt"

// Anchor names one of the nine placement zones for the watermark,
// combining horizontal (left/center/right) and vertical
// (top/center/bottom) alignment.
type Anchor int

const (
	AnchorTopLeft Anchor = iota
	AnchorTopCenter
	AnchorTopRight
	AnchorCenterLeft
	AnchorCenter
	AnchorCenterRight
	AnchorBottomLeft
	AnchorBottomCenter
	AnchorBottomRight
)

var anchorNames = map[Anchor]string{
	AnchorTopLeft:      "top-left",
	AnchorTopCenter:    "top-center",
	AnchorTopRight:     "top-right",
	AnchorCenterLeft:   "center-left",
	AnchorCenter:       "center",
	AnchorCenterRight:  "center-right",
	AnchorBottomLeft:   "bottom-left",
	AnchorBottomCenter: "bottom-center",
	AnchorBottomRight:  "bottom-right",
}

func (a Anchor) String() string {
	if name, ok := anchorNames[a]; ok {
		return name
	}
	return "unknown"
}

// ParseAnchor maps a hyphenated position name to its Anchor.
func ParseAnchor(s string) (Anchor, error) {
	for anchor, name := range anchorNames {
		if name == s {
			return anchor, nil
		}
	}
	return AnchorBottomRight, fmt.Errorf("unknown position %q", s)
}

// Position computes the top-left pixel coordinate for a text box of
// textW×textH placed inside an imgW×imgH image at the anchor, padding
// pixels in from the edges. Pure geometry: when the text box exceeds
// the image the result may be negative, and the caller is expected to
// clamp before drawing.
func (a Anchor) Position(imgW, imgH, textW, textH, padding int) (int, int) {
	var x int
	switch a {
	case AnchorTopLeft, AnchorCenterLeft, AnchorBottomLeft:
		x = padding
	case AnchorTopCenter, AnchorCenter, AnchorBottomCenter:
		x = (imgW - textW) / 2
	default:
		x = imgW - textW - padding
	}

	var y int
	switch a {
	case AnchorTopLeft, AnchorTopCenter, AnchorTopRight:
		y = padding
	case AnchorCenterLeft, AnchorCenter, AnchorCenterRight:
		y = (imgH - textH) / 2
	default:
		y = imgH - textH - padding
	}

	return x, y
}
