package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"datemark/internal/processor"
	"datemark/internal/tui"
	"datemark/internal/watermark"
)

var (
	scanDateFormat string
	scanUnknown    string
)

var scanCmd = &cobra.Command{
	Use:   "scan <path>",
	Short: "Report resolved capture dates without modifying files",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if defaultsErr != nil {
			return defaultsErr
		}

		defaults, err := watermark.LoadDefaults()
		if err != nil {
			return err
		}
		cfg, err := watermark.NewConfig(watermark.Params{
			FontSize:    defaults.FontSize,
			Color:       defaults.Color,
			Position:    defaults.Position,
			DateFormat:  scanDateFormat,
			UnknownText: scanUnknown,
			Quality:     defaults.Quality,
			Padding:     defaults.Padding,
		})
		if err != nil {
			return err
		}

		logger, err := newLogger()
		if err != nil {
			return err
		}
		defer logger.Sync()

		updates := make(chan processor.ProgressUpdate, 64)
		uiDone := startProgress(updates, true)

		summary, reports, err := processor.Run(context.Background(), args[0], processor.Options{
			Config:   cfg,
			ScanOnly: true,
			Logger:   logger,
		}, updates)
		close(updates)
		<-uiDone
		if err != nil {
			return err
		}

		for _, report := range reports {
			value := valueTextStyle.Render(report.Date)
			if report.Date == cfg.UnknownText {
				value = dimTextStyle.Render(report.Date)
			}
			fmt.Fprintf(os.Stdout, "%s %s %s\n",
				fileStyle.Render(report.Path),
				bulletStyle.Render("-"),
				value,
			)
		}

		if summary.Attempted == 0 {
			fmt.Fprintln(os.Stdout, dimTextStyle.Render("no eligible images found"))
		}
		return nil
	},
}

var (
	fileStyle      = lipgloss.NewStyle().Bold(true).Foreground(tui.ColorAccent)
	valueTextStyle = lipgloss.NewStyle().Foreground(tui.ColorInk)
	dimTextStyle   = lipgloss.NewStyle().Foreground(tui.ColorDim)
	bulletStyle    = lipgloss.NewStyle().Foreground(tui.ColorDim)
)

func init() {
	scanCmd.Flags().StringVar(&scanDateFormat, "date-format", "%Y-%m-%d", "date pattern, strftime tokens or Go layout")
	scanCmd.Flags().StringVar(&scanUnknown, "unknown-text", "unknown date", "text reported when no capture date is found")

	rootCmd.AddCommand(scanCmd)
}
