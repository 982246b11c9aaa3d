package watermark

import "testing"

func TestAnchorPositions(t *testing.T) {
	// 1000x800 image, 200x50 text box, padding 20.
	cases := []struct {
		anchor Anchor
		x, y   int
	}{
		{AnchorTopLeft, 20, 20},
		{AnchorTopCenter, 400, 20},
		{AnchorTopRight, 780, 20},
		{AnchorCenterLeft, 20, 375},
		{AnchorCenter, 400, 375},
		{AnchorCenterRight, 780, 375},
		{AnchorBottomLeft, 20, 730},
		{AnchorBottomCenter, 400, 730},
		{AnchorBottomRight, 780, 730},
	}

	for _, tc := range cases {
		x, y := tc.anchor.Position(1000, 800, 200, 50, 20)
		if x != tc.x || y != tc.y {
			t.Errorf("%s: got (%d,%d), want (%d,%d)", tc.anchor, x, y, tc.x, tc.y)
		}
	}
}

func TestAnchorPositionOversizedText(t *testing.T) {
	// Text wider and taller than the image: coordinates go negative,
	// clamping is the compositor's job.
	x, y := AnchorBottomRight.Position(100, 50, 300, 80, 10)
	if x >= 0 || y >= 0 {
		t.Fatalf("expected negative coordinates, got (%d,%d)", x, y)
	}
}

func TestParseAnchor(t *testing.T) {
	for anchor, name := range anchorNames {
		parsed, err := ParseAnchor(name)
		if err != nil {
			t.Fatalf("parse %q: %v", name, err)
		}
		if parsed != anchor {
			t.Fatalf("parse %q: got %v, want %v", name, parsed, anchor)
		}
	}

	if _, err := ParseAnchor("middle"); err == nil {
		t.Fatal("expected error for unknown position")
	}
}
