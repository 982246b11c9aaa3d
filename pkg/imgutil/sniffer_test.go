package imgutil

import (
	"bytes"
	"testing"
)

func TestDetectHeader(t *testing.T) {
	cases := []struct {
		name   string
		header []byte
		want   Kind
	}{
		{"jpeg", []byte{0xff, 0xd8, 0xff, 0xe0, 0x00, 0x10, 0x4a, 0x46}, KindJPEG},
		{"png", []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a}, KindPNG},
		{"tiff le", []byte{0x49, 0x49, 0x2a, 0x00, 0x08, 0x00, 0x00, 0x00}, KindTIFF},
		{"tiff be", []byte{0x4d, 0x4d, 0x00, 0x2a, 0x00, 0x00, 0x00, 0x08}, KindTIFF},
		{"bmp", []byte{0x42, 0x4d, 0x36, 0x00, 0x00, 0x00, 0x00, 0x00}, KindBMP},
		{"garbage", []byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07}, KindUnknown},
	}

	for _, tc := range cases {
		got, err := DetectHeader(tc.header)
		if err != nil {
			t.Errorf("%s: %v", tc.name, err)
			continue
		}
		if got != tc.want {
			t.Errorf("%s: got %s, want %s", tc.name, got, tc.want)
		}
	}

	if _, err := DetectHeader([]byte{0xff, 0xd8}); err == nil {
		t.Error("expected error for a short header")
	}
}

func TestSniffReader(t *testing.T) {
	kind, err := SniffReader(bytes.NewReader([]byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0xff}))
	if err != nil {
		t.Fatal(err)
	}
	if kind != KindPNG {
		t.Fatalf("got %s, want png", kind)
	}
}

func TestKindForPath(t *testing.T) {
	cases := map[string]Kind{
		"a.jpg":       KindJPEG,
		"b.JPEG":      KindJPEG,
		"c.png":       KindPNG,
		"d.TIFF":      KindTIFF,
		"e.bmp":       KindBMP,
		"f.gif":       KindUnknown,
		"noext":       KindUnknown,
		"dir/g.PnG":   KindPNG,
		"weird.jpg.x": KindUnknown,
	}
	for path, want := range cases {
		if got := KindForPath(path); got != want {
			t.Errorf("KindForPath(%q) = %s, want %s", path, got, want)
		}
	}

	if SupportedPath("x.txt") || !SupportedPath("x.bmp") {
		t.Error("SupportedPath disagrees with the extension table")
	}
}
