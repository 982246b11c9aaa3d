package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"datemark/internal/processor"
	"datemark/internal/tui"
	"datemark/internal/watermark"
)

var (
	applyText       string
	applyFontSize   int
	applyColor      string
	applyPosition   string
	applyFontPath   string
	applyDateFormat string
	applyUnknown    string
	applyQuality    int
	applyPadding    int
	applyParallel   bool
	applyWorkers    int
	applyOutput     string
	applyNoProgress bool

	defaultsErr error
)

var applyCmd = &cobra.Command{
	Use:   "apply [flags] <path>",
	Short: "Overlay capture-date watermarks on an image file or directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if defaultsErr != nil {
			return defaultsErr
		}

		cfg, err := watermark.NewConfig(watermark.Params{
			Text:        applyText,
			FontSize:    applyFontSize,
			Color:       applyColor,
			Position:    applyPosition,
			FontPath:    applyFontPath,
			DateFormat:  applyDateFormat,
			UnknownText: applyUnknown,
			Quality:     applyQuality,
			Padding:     applyPadding,
			Parallel:    applyParallel,
			Workers:     applyWorkers,
		})
		if err != nil {
			return err
		}

		logger, err := newLogger()
		if err != nil {
			return err
		}
		defer logger.Sync()

		fh := watermark.ResolveFont(cfg.FontPath, cfg.FontSize)
		if cfg.FontPath != "" && fh.Tier() != watermark.TierCustom {
			logger.Warn("custom font unavailable, using fallback", zap.String("tier", fh.Tier()))
		} else {
			logger.Info("font resolved", zap.String("tier", fh.Tier()))
		}

		updates := make(chan processor.ProgressUpdate, 64)
		uiDone := startProgress(updates, applyNoProgress)

		summary, _, err := processor.Run(context.Background(), args[0], processor.Options{
			Config:    cfg,
			Font:      fh,
			OutputDir: applyOutput,
			Logger:    logger,
		}, updates)
		close(updates)
		<-uiDone
		if err != nil {
			return err
		}

		rows := []tui.SummaryRow{
			{Label: "Images attempted", Value: fmt.Sprintf("%d", summary.Attempted)},
			{Label: "Watermarked", Value: fmt.Sprintf("%d", summary.Succeeded)},
			{Label: "Failed", Value: fmt.Sprintf("%d", summary.Failed)},
			{Label: "Skipped", Value: fmt.Sprintf("%d", summary.Skipped)},
		}
		fmt.Fprintln(os.Stdout, tui.RenderSummary(rows))

		for _, failure := range summary.Failures {
			fmt.Fprintf(os.Stdout, "  %s %s: %s\n",
				bulletStyle.Render("-"),
				fileStyle.Render(failure.Path),
				dimTextStyle.Render(failure.Reason),
			)
		}

		if summary.Succeeded > 0 && applyOutput == "" {
			dest := outputHint(args[0])
			fmt.Fprintf(os.Stdout, "Watermarked copies written to: %s\n", dest)
		}

		if summary.Succeeded == 0 {
			return fmt.Errorf("no images were successfully processed")
		}
		return nil
	},
}

// outputHint reproduces the orchestrator's default destination for
// display only.
func outputHint(input string) string {
	abs, err := filepath.Abs(input)
	if err != nil {
		return input + processor.DirSuffix
	}
	if info, err := os.Stat(abs); err == nil && !info.IsDir() {
		abs = filepath.Dir(abs)
	}
	return filepath.Join(abs, filepath.Base(abs)+processor.DirSuffix)
}

// startProgress runs the bubbletea progress display, or a plain drain
// when it is disabled, and returns a channel closed once the UI exits.
func startProgress(updates chan processor.ProgressUpdate, disabled bool) <-chan struct{} {
	done := make(chan struct{})
	if disabled {
		go func() {
			for range updates {
			}
			close(done)
		}()
		return done
	}

	program := tea.NewProgram(tui.NewModel(updates))
	go func() {
		_, _ = program.Run()
		close(done)
	}()
	return done
}

func init() {
	defaults, err := watermark.LoadDefaults()
	defaultsErr = err

	f := applyCmd.Flags()
	f.StringVar(&applyText, "text", "", "watermark text override (skips date resolution)")
	f.IntVar(&applyFontSize, "font-size", defaults.FontSize, "watermark font size in points")
	f.StringVar(&applyColor, "color", defaults.Color, "watermark color as \"r,g,b\" or \"r,g,b,a\"")
	f.StringVar(&applyPosition, "position", defaults.Position, "anchor: top-left, top-center, top-right, center-left, center, center-right, bottom-left, bottom-center, bottom-right")
	f.StringVar(&applyFontPath, "font", defaults.FontPath, "path to a .ttf/.otf font file")
	f.StringVar(&applyDateFormat, "date-format", defaults.DateFormat, "date pattern, strftime tokens or Go layout")
	f.StringVar(&applyUnknown, "unknown-text", defaults.UnknownText, "text used when no capture date is found")
	f.IntVar(&applyQuality, "quality", defaults.Quality, "JPEG output quality (1-100)")
	f.IntVar(&applyPadding, "padding", defaults.Padding, "margin between text and image edge, in pixels")
	f.BoolVar(&applyParallel, "parallel", false, "process files across a worker pool")
	f.IntVar(&applyWorkers, "workers", defaults.Workers, "worker count when --parallel is set (0 = number of CPUs)")
	f.StringVarP(&applyOutput, "output", "o", "", "destination directory (default: <input dir>_watermark)")
	f.BoolVar(&applyNoProgress, "no-progress", false, "disable the progress display")

	rootCmd.AddCommand(applyCmd)
}
