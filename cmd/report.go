package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"agentstat/internal/pipeline"
	"agentstat/internal/report"
)

var (
	flagOutput string
	flagOpen   bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write a self-contained HTML dashboard",
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringVarP(&flagOutput, "output", "o", "agentstat-report.html", "Output file path")
	reportCmd.Flags().BoolVar(&flagOpen, "open", false, "Open the report in the default browser")
	rootCmd.AddCommand(reportCmd)
}

func runReport(_ *cobra.Command, _ []string) error {
	result, err := loadData()
	if err != nil {
		return err
	}
	// Project filters apply; the period tabs live inside the report.
	opts, err := filterOptions()
	if err != nil {
		return err
	}
	opts.Period = "all"
	opts.From, opts.To = nil, nil
	p, err := opts.Resolve(time.Now())
	if err != nil {
		return err
	}
	sessions := pipeline.FilterSessions(result.Sessions, p, opts)

	period := flagPeriod
	if period == "" {
		period = "month"
	}
	data, err := report.Build(sessions, period, flagShowCost, time.Now())
	if err != nil {
		return err
	}

	f, err := os.Create(flagOutput)
	if err != nil {
		return fmt.Errorf("creating %s: %w", flagOutput, err)
	}
	if err := report.Render(f, data); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	if !flagQuiet {
		fmt.Printf("  Report written to %s\n", flagOutput)
	}

	if flagOpen {
		if err := openBrowser(flagOutput); err != nil && !flagQuiet {
			fmt.Fprintf(os.Stderr, "  Could not open browser: %v\n", err)
		}
	}

	return nil
}

func openBrowser(path string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", path).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", path).Start()
	default:
		return exec.Command("xdg-open", path).Start()
	}
}
