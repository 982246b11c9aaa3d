package processor

import (
	"go.uber.org/zap"

	"datemark/internal/watermark"
)

// Options configures one batch run. Config and Font are read-only and
// shared by every worker.
type Options struct {
	Config    watermark.Config
	Font      *watermark.FontHandle
	OutputDir string // explicit destination; empty selects the derived default
	ScanOnly  bool   // resolve capture dates without writing anything
	Logger    *zap.Logger
}

// Job is one unit of work: a source file and where its stamped copy
// goes. A job is dispatched to exactly one worker.
type Job struct {
	Path    string
	Dest    string
	Display string
}

// Result records the outcome of a single job.
type Result struct {
	Path    string
	Display string
	Err     error
	Date    string // scan mode only
}

// Failure is one failed file with its reason, as reported in the summary.
type Failure struct {
	Path   string
	Reason string
}

// DateReport pairs a file with its resolved capture date (scan mode).
type DateReport struct {
	Path string
	Date string
}

// Summary aggregates a whole batch. Failures are sorted by path.
type Summary struct {
	RunID     string
	Attempted int
	Succeeded int
	Failed    int
	Skipped   int
	Failures  []Failure
}

// ProgressUpdate is a delta event for the progress display.
type ProgressUpdate struct {
	TotalDelta     int
	ProcessedDelta int
	ErrorDelta     int
	SkippedDelta   int
}
