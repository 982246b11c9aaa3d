package processor

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"datemark/internal/watermark"
)

func testOptions(t *testing.T, parallel bool, workers int) Options {
	t.Helper()

	cfg, err := watermark.NewConfig(watermark.Params{
		FontSize:    18,
		Color:       "255,255,255,200",
		Position:    "bottom-right",
		DateFormat:  "%Y-%m-%d",
		UnknownText: "unknown date",
		Quality:     85,
		Padding:     10,
		Parallel:    parallel,
		Workers:     workers,
	})
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	return Options{
		Config: cfg,
		Font:   watermark.ResolveFont("", cfg.FontSize),
	}
}

func writePNG(t *testing.T, path string) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 64, 48))
	for y := 0; y < 48; y++ {
		for x := 0; x < 64; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 3), G: uint8(y * 5), B: 70, A: 255})
		}
	}

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestRunDirectoryWithCorruptFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "photos")
	if err := os.Mkdir(input, 0o755); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 5; i++ {
		writePNG(t, filepath.Join(input, fmt.Sprintf("ok_%d.png", i)))
	}
	corrupt := filepath.Join(input, "broken.jpg")
	if err := os.WriteFile(corrupt, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}

	summary, _, err := Run(context.Background(), input, testOptions(t, true, 2), nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if summary.Attempted != 6 || summary.Succeeded != 5 || summary.Failed != 1 {
		t.Fatalf("summary = %+v", summary)
	}
	if len(summary.Failures) != 1 || summary.Failures[0].Path != corrupt {
		t.Fatalf("failures = %+v", summary.Failures)
	}

	outDir := filepath.Join(input, "photos"+DirSuffix)
	entries, err := os.ReadDir(outDir)
	if err != nil {
		t.Fatalf("output dir: %v", err)
	}
	if len(entries) != 5 {
		t.Fatalf("output files = %d, want 5", len(entries))
	}
}

func TestRunSkipsUnsupportedFilesInDirectory(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "mixed")
	if err := os.Mkdir(input, 0o755); err != nil {
		t.Fatal(err)
	}

	writePNG(t, filepath.Join(input, "a.png"))
	if err := os.WriteFile(filepath.Join(input, "readme.txt"), []byte("hi"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(input, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}

	summary, _, err := Run(context.Background(), input, testOptions(t, false, 0), nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if summary.Attempted != 1 || summary.Succeeded != 1 {
		t.Fatalf("summary = %+v", summary)
	}
	if summary.Skipped != 1 {
		t.Fatalf("skipped = %d, want 1", summary.Skipped)
	}
}

func TestRunSingleFile(t *testing.T) {
	dir := t.TempDir()
	parent := filepath.Join(dir, "photos")
	if err := os.Mkdir(parent, 0o755); err != nil {
		t.Fatal(err)
	}
	src := filepath.Join(parent, "solo.png")
	writePNG(t, src)

	summary, _, err := Run(context.Background(), src, testOptions(t, false, 0), nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.Succeeded != 1 {
		t.Fatalf("summary = %+v", summary)
	}

	outDir := filepath.Join(parent, "photos"+DirSuffix)
	if _, err := os.Stat(filepath.Join(outDir, "solo.png")); err != nil {
		t.Fatalf("expected output inside the source parent: %v", err)
	}
}

func TestRunSingleUnsupportedFileIsFailure(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(src, []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}

	opts := testOptions(t, false, 0)
	opts.OutputDir = filepath.Join(dir, "out")

	summary, _, err := Run(context.Background(), src, opts, nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.Attempted != 1 || summary.Failed != 1 {
		t.Fatalf("summary = %+v", summary)
	}
}

func TestRunMissingInput(t *testing.T) {
	_, _, err := Run(context.Background(), "/no/such/path", testOptions(t, false, 0), nil)
	if err == nil {
		t.Fatal("expected an error for a missing input path")
	}
}

func TestRunExplicitOutputDir(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in")
	if err := os.Mkdir(input, 0o755); err != nil {
		t.Fatal(err)
	}
	writePNG(t, filepath.Join(input, "a.png"))

	opts := testOptions(t, false, 0)
	opts.OutputDir = filepath.Join(dir, "custom-out")

	summary, _, err := Run(context.Background(), input, opts, nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.Succeeded != 1 {
		t.Fatalf("summary = %+v", summary)
	}
	if _, err := os.Stat(filepath.Join(opts.OutputDir, "a.png")); err != nil {
		t.Fatalf("explicit output dir not honored: %v", err)
	}
}

func TestRunScanOnly(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "scanme")
	if err := os.Mkdir(input, 0o755); err != nil {
		t.Fatal(err)
	}
	writePNG(t, filepath.Join(input, "b.png"))
	writePNG(t, filepath.Join(input, "a.png"))

	opts := testOptions(t, true, 2)
	opts.ScanOnly = true

	summary, reports, err := Run(context.Background(), input, opts, nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.Succeeded != 2 || len(reports) != 2 {
		t.Fatalf("summary = %+v, reports = %+v", summary, reports)
	}
	if !sort.SliceIsSorted(reports, func(i, j int) bool { return reports[i].Path < reports[j].Path }) {
		t.Fatal("reports not sorted by path")
	}
	for _, report := range reports {
		if report.Date != "unknown date" {
			t.Fatalf("plain PNG resolved a date: %+v", report)
		}
	}

	// Scan mode must not create the output directory.
	if _, err := os.Stat(filepath.Join(input, "scanme"+DirSuffix)); !os.IsNotExist(err) {
		t.Fatal("scan mode created an output directory")
	}
}
