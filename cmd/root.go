// Package cmd implements the agentstat CLI commands.
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"agentstat/internal/cli"
	"agentstat/internal/config"
	"agentstat/internal/model"
	"agentstat/internal/pipeline"
	"agentstat/internal/store"
)

var (
	flagPeriod        string
	flagFrom          string
	flagTo            string
	flagProject       string
	flagExcludeProj   []string
	flagFormat        string
	flagLimit         int
	flagSessionsDir   string
	flagNoCache       bool
	flagCacheDir      string
	flagExtensionsDir string
	flagShowCost      bool
	flagQuiet         bool
)

// cfg is loaded once before any command runs.
var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "agentstat",
	Short: "Coding assistant usage analytics",
	Long:  "Analyze your coding assistant sessions: tokens, tools, models, projects, and trends.",
	RunE:  runSummary,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cfg, _ = config.Load()

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flagPeriod, "period", "P", cfg.General.DefaultPeriod, "Time window: today, week, month, quarter, year, all")
	pf.StringVar(&flagFrom, "from", "", "Window start date (YYYY-MM-DD), overrides --period")
	pf.StringVar(&flagTo, "to", "", "Window end date (YYYY-MM-DD), overrides --period")
	pf.StringVarP(&flagProject, "project", "p", "", "Filter to project (substring match)")
	pf.StringSliceVar(&flagExcludeProj, "exclude-project", nil, "Exclude projects (substring match, repeatable)")
	pf.StringVarP(&flagFormat, "format", "f", "table", "Output format: table or json")
	pf.IntVarP(&flagLimit, "limit", "l", 20, "Max rows in ranked output")
	pf.StringVarP(&flagSessionsDir, "sessions-dir", "d", config.SessionsDir(cfg), "Session logs directory")
	pf.BoolVar(&flagNoCache, "no-cache", false, "Skip the parse cache, reparse everything")
	pf.StringVar(&flagCacheDir, "cache-dir", "", "Parse cache directory")
	pf.StringVar(&flagExtensionsDir, "extensions-dir", config.ExtensionsDir(cfg), "Installed extensions directory (for tools --audit)")
	pf.BoolVar(&flagShowCost, "show-cost", cfg.General.ShowCost, "Include cost columns")
	pf.BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
}

func jsonOutput() bool {
	return flagFormat == "json"
}

func cacheDir() string {
	if flagCacheDir != "" {
		return flagCacheDir
	}
	if cfg.General.CacheDir != "" {
		return cfg.General.CacheDir
	}
	return store.DefaultDir()
}

func loadOptions() pipeline.LoadOptions {
	home, _ := os.UserHomeDir()
	return pipeline.LoadOptions{
		SessionsDir: flagSessionsDir,
		CacheDir:    cacheDir(),
		NoCache:     flagNoCache,
		Home:        home,
	}
}

// loadData is the shared data loading path used by all commands.
func loadData() (*pipeline.LoadResult, error) {
	progressFn := func(current, total int) {
		if flagQuiet || jsonOutput() {
			return
		}
		if current%100 == 0 || current == total {
			fmt.Fprintf(os.Stderr, "\r  Parsing [%d/%d]", current, total)
		}
	}

	result, err := pipeline.Load(loadOptions(), progressFn)
	if err != nil {
		return nil, err
	}

	if !flagQuiet && !jsonOutput() && result.TotalFiles > 0 {
		fmt.Fprintf(os.Stderr, "\r  %s sessions across %d projects (%s cached)    \n",
			cli.FormatNumber(int64(result.ParsedFiles)),
			result.ProjectCount,
			cli.FormatNumber(int64(result.CacheHits)),
		)
	}
	if !flagQuiet && result.FileErrors > 0 {
		fmt.Fprintf(os.Stderr, "  %d files could not be read\n", result.FileErrors)
	}

	return result, nil
}

// filterOptions assembles the session filter from flags and config.
func filterOptions() (pipeline.FilterOptions, error) {
	opts := pipeline.FilterOptions{
		Period:          flagPeriod,
		Project:         flagProject,
		ExcludeProjects: append(append([]string{}, cfg.Filters.ExcludeProjects...), flagExcludeProj...),
	}

	if flagFrom != "" {
		from, err := time.ParseInLocation("2006-01-02", flagFrom, time.Local)
		if err != nil {
			return opts, fmt.Errorf("invalid --from date %q: %w", flagFrom, err)
		}
		opts.From = &from
	}
	if flagTo != "" {
		to, err := time.ParseInLocation("2006-01-02", flagTo, time.Local)
		if err != nil {
			return opts, fmt.Errorf("invalid --to date %q: %w", flagTo, err)
		}
		// Inclusive through the end of the named day.
		to = to.AddDate(0, 0, 1).Add(-time.Nanosecond)
		opts.To = &to
	}

	return opts, nil
}

// applyFilters resolves the window and filters the loaded sessions.
func applyFilters(sessions []model.SessionStats) ([]model.SessionStats, pipeline.Period, error) {
	opts, err := filterOptions()
	if err != nil {
		return nil, pipeline.Period{}, err
	}
	p, err := opts.Resolve(time.Now())
	if err != nil {
		return nil, pipeline.Period{}, err
	}
	return pipeline.FilterSessions(sessions, p, opts), p, nil
}

// loadAggregated runs the full load, filter, aggregate path.
func loadAggregated() (*pipeline.LoadResult, []model.SessionStats, *model.AggregatedStats, error) {
	result, err := loadData()
	if err != nil {
		return nil, nil, nil, err
	}
	filtered, p, err := applyFilters(result.Sessions)
	if err != nil {
		return nil, nil, nil, err
	}
	return result, filtered, pipeline.Aggregate(filtered, p), nil
}
