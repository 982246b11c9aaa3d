package watermark

import "testing"

func TestResolveFontNeverFails(t *testing.T) {
	fh := ResolveFont("", 36)
	if fh == nil || fh.Tier() == "" {
		t.Fatal("expected a usable font handle")
	}
	if face := fh.NewFace(); face == nil {
		t.Fatal("expected a usable face")
	}
}

func TestResolveFontBadCustomPathFallsBack(t *testing.T) {
	fh := ResolveFont("/no/such/font.ttf", 36)
	if fh.Tier() == TierCustom {
		t.Fatalf("missing custom font still reported tier %q", fh.Tier())
	}
	if face := fh.NewFace(); face == nil {
		t.Fatal("expected a fallback face")
	}
}

func TestFontHandleFacesAreIndependent(t *testing.T) {
	fh := ResolveFont("", 24)
	a := fh.NewFace()
	b := fh.NewFace()
	if a == nil || b == nil {
		t.Fatal("expected two usable faces")
	}
	// Bitmap fallback shares a fixed face; parsed fonts must not.
	if fh.Tier() != TierBitmap && a == b {
		t.Fatal("workers would share one face")
	}
}
