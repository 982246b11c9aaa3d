package processor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"datemark/internal/watermark"
	"datemark/pkg/imgutil"
)

// DirSuffix is appended to the input directory name when no explicit
// output directory is given.
const DirSuffix = "_watermark"

// Run processes a single image file or every eligible image directly
// inside a directory. Each file's outcome is recorded independently;
// one failure never aborts the rest of the batch. Date reports are
// only produced in scan mode.
func Run(ctx context.Context, input string, opts Options, updates chan<- ProgressUpdate) (Summary, []DateReport, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	summary := Summary{RunID: uuid.NewString()}
	logger = logger.With(zap.String("run_id", summary.RunID))

	info, err := os.Stat(input)
	if err != nil {
		return summary, nil, fmt.Errorf("input path: %w", err)
	}

	absInput, err := filepath.Abs(input)
	if err != nil {
		return summary, nil, err
	}

	jobs, destDir, skipped := planJobs(absInput, info.IsDir(), opts, logger)
	summary.Skipped = skipped
	if updates != nil && skipped > 0 {
		updates <- ProgressUpdate{SkippedDelta: skipped}
	}
	if len(jobs) == 0 {
		logger.Info("no eligible images found", zap.String("input", absInput))
		return summary, nil, nil
	}

	if !opts.ScanOnly {
		if err := os.MkdirAll(destDir, 0o755); err != nil {
			return summary, nil, fmt.Errorf("create output directory: %w", err)
		}
	}

	workers := 1
	if opts.Config.Parallel {
		workers = opts.Config.Workers
		if workers <= 0 {
			workers = runtime.NumCPU()
		}
	}
	logger.Info("starting batch",
		zap.Int("files", len(jobs)),
		zap.Int("workers", workers),
		zap.Bool("scan_only", opts.ScanOnly),
	)

	queue := make(chan Job)
	results := make(chan Result)

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			worker(ctx, queue, results, opts, logger)
		}()
	}

	var reports []DateReport
	collectorDone := make(chan struct{})
	go func() {
		defer close(collectorDone)
		for res := range results {
			summary.Attempted++
			if res.Err != nil {
				summary.Failed++
				summary.Failures = append(summary.Failures, Failure{Path: res.Path, Reason: res.Err.Error()})
				if updates != nil {
					updates <- ProgressUpdate{ErrorDelta: 1}
				}
				continue
			}
			summary.Succeeded++
			if opts.ScanOnly {
				reports = append(reports, DateReport{Path: res.Display, Date: res.Date})
			}
			if updates != nil {
				updates <- ProgressUpdate{ProcessedDelta: 1}
			}
		}
	}()

	go func() {
		defer close(queue)
		for _, job := range jobs {
			if updates != nil {
				updates <- ProgressUpdate{TotalDelta: 1}
			}
			select {
			case queue <- job:
			case <-ctx.Done():
				return
			}
		}
	}()

	wg.Wait()
	close(results)
	<-collectorDone

	// Completion order is arbitrary; sort for deterministic reporting.
	sort.Slice(summary.Failures, func(i, j int) bool { return summary.Failures[i].Path < summary.Failures[j].Path })
	sort.Slice(reports, func(i, j int) bool { return reports[i].Path < reports[j].Path })

	logger.Info("batch finished",
		zap.Int("attempted", summary.Attempted),
		zap.Int("succeeded", summary.Succeeded),
		zap.Int("failed", summary.Failed),
		zap.Int("skipped", summary.Skipped),
	)

	if err := ctx.Err(); err != nil && !errors.Is(err, context.Canceled) {
		return summary, reports, err
	}
	return summary, reports, nil
}

// planJobs enumerates the work. A single-file target is always queued,
// even with an unsupported extension, so that the failure is reported;
// unsupported files inside a directory are merely skipped.
func planJobs(absInput string, isDir bool, opts Options, logger *zap.Logger) ([]Job, string, int) {
	if !isDir {
		parent := filepath.Dir(absInput)
		destDir := opts.OutputDir
		if destDir == "" {
			destDir = filepath.Join(parent, filepath.Base(parent)+DirSuffix)
		}
		name := filepath.Base(absInput)
		return []Job{{Path: absInput, Dest: filepath.Join(destDir, name), Display: name}}, destDir, 0
	}

	destDir := opts.OutputDir
	if destDir == "" {
		destDir = filepath.Join(absInput, filepath.Base(absInput)+DirSuffix)
	}

	entries, err := os.ReadDir(absInput)
	if err != nil {
		logger.Warn("read input directory", zap.Error(err))
		return nil, destDir, 0
	}

	var jobs []Job
	skipped := 0
	for _, entry := range entries {
		if entry.IsDir() || !entry.Type().IsRegular() {
			continue
		}
		name := entry.Name()
		full := filepath.Join(absInput, name)
		if full == destDir {
			continue
		}
		if !imgutil.SupportedPath(name) {
			skipped++
			logger.Debug("skipping unsupported file", zap.String("file", name))
			continue
		}
		jobs = append(jobs, Job{Path: full, Dest: filepath.Join(destDir, name), Display: name})
	}
	return jobs, destDir, skipped
}

func worker(ctx context.Context, queue <-chan Job, results chan<- Result, opts Options, logger *zap.Logger) {
	for job := range queue {
		if ctx.Err() != nil {
			return
		}

		res := Result{Path: job.Path, Display: job.Display}

		if opts.ScanOnly {
			res.Date = watermark.ResolveDate(job.Path, opts.Config)
			logger.Debug("resolved capture date",
				zap.String("file", job.Display),
				zap.String("date", res.Date),
			)
			results <- res
			continue
		}

		if err := watermark.Stamp(job.Path, job.Dest, opts.Config, opts.Font); err != nil {
			res.Err = err
			logger.Warn("watermark failed", zap.String("file", job.Display), zap.Error(err))
		} else {
			logger.Debug("watermark written",
				zap.String("file", job.Display),
				zap.String("dest", job.Dest),
			)
		}
		results <- res
	}
}
