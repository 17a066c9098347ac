// Package tui implements the interactive dashboard.
package tui

import (
	"fmt"
	"sort"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"agentstat/internal/cli"
	"agentstat/internal/config"
	"agentstat/internal/model"
	"agentstat/internal/pipeline"
	"agentstat/internal/tui/components"
	"agentstat/internal/tui/theme"
)

// periodNames is the period cycle order for the left/right keys.
var periodNames = []string{"today", "week", "month", "quarter", "year", "all"}

type dataMsg struct {
	result *pipeline.LoadResult
	err    error
}

type fsEventMsg struct{}

type reloadTickMsg struct{}

// App is the top-level bubbletea model.
type App struct {
	cfg  config.Config
	opts pipeline.LoadOptions

	result   *pipeline.LoadResult
	agg      *model.AggregatedStats
	filtered []model.SessionStats
	series   []model.TimeSeriesPoint

	periodIdx int
	activeTab int
	width     int
	height    int

	loading  bool
	loadErr  error
	loadedAt time.Time

	sessionsTbl table.Model
	watcher     *fsnotify.Watcher
	reloadDue   bool
}

// New builds the dashboard model. The watcher may be nil when the
// sessions directory cannot be watched; live reload is then disabled.
func New(cfg config.Config, opts pipeline.LoadOptions, watcher *fsnotify.Watcher) App {
	theme.SetActive(cfg.Appearance.Theme)

	idx := 2 // month
	for i, name := range periodNames {
		if name == cfg.General.DefaultPeriod {
			idx = i
		}
	}

	tbl := table.New(
		table.WithColumns(sessionColumns(80)),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	styleTable(&tbl)

	return App{
		cfg:         cfg,
		opts:        opts,
		periodIdx:   idx,
		loading:     true,
		sessionsTbl: tbl,
		watcher:     watcher,
	}
}

// Run loads data and starts the dashboard, blocking until the user quits.
func Run(cfg config.Config, opts pipeline.LoadOptions) error {
	watcher, err := fsnotify.NewWatcher()
	if err == nil {
		if addErr := watcher.Add(opts.SessionsDir); addErr != nil {
			watcher.Close()
			watcher = nil
		}
	} else {
		watcher = nil
	}
	if watcher != nil {
		defer watcher.Close()
	}

	app := New(cfg, opts, watcher)
	_, err = tea.NewProgram(app, tea.WithAltScreen()).Run()
	return err
}

func (a App) Init() tea.Cmd {
	return tea.Batch(a.loadCmd(), a.watchCmd())
}

func (a App) loadCmd() tea.Cmd {
	opts := a.opts
	return func() tea.Msg {
		result, err := pipeline.Load(opts, nil)
		return dataMsg{result: result, err: err}
	}
}

// watchCmd blocks on the next filesystem event. Re-armed after every
// delivery.
func (a App) watchCmd() tea.Cmd {
	if a.watcher == nil {
		return nil
	}
	w := a.watcher
	return func() tea.Msg {
		select {
		case _, ok := <-w.Events:
			if !ok {
				return nil
			}
			return fsEventMsg{}
		case _, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return fsEventMsg{}
		}
	}
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.sessionsTbl.SetColumns(sessionColumns(a.width))
		a.sessionsTbl.SetHeight(max(4, a.height-8))
		return a, nil

	case dataMsg:
		a.loading = false
		a.loadErr = msg.err
		if msg.err == nil {
			a.result = msg.result
			a.loadedAt = time.Now()
			a.recompute()
		}
		return a, nil

	case fsEventMsg:
		// Sessions append in bursts while the assistant is running, so
		// coalesce events behind a short tick instead of reloading per write.
		cmds := []tea.Cmd{a.watchCmd()}
		if !a.reloadDue {
			a.reloadDue = true
			cmds = append(cmds, tea.Tick(2*time.Second, func(time.Time) tea.Msg {
				return reloadTickMsg{}
			}))
		}
		return a, tea.Batch(cmds...)

	case reloadTickMsg:
		a.reloadDue = false
		return a, a.loadCmd()

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit

	case "r":
		a.loading = true
		return a, a.loadCmd()

	case "left", "h":
		a.periodIdx = (a.periodIdx + len(periodNames) - 1) % len(periodNames)
		a.recompute()
		return a, nil

	case "right", "l":
		a.periodIdx = (a.periodIdx + 1) % len(periodNames)
		a.recompute()
		return a, nil

	case "tab":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		return a, nil

	case "shift+tab":
		a.activeTab = (a.activeTab + len(components.Tabs) - 1) % len(components.Tabs)
		return a, nil
	}

	if r := []rune(msg.String()); len(r) == 1 {
		if idx := components.TabIdxByKey(r[0]); idx >= 0 {
			a.activeTab = idx
			return a, nil
		}
	}

	if a.activeTab == tabSessions {
		var cmd tea.Cmd
		a.sessionsTbl, cmd = a.sessionsTbl.Update(msg)
		return a, cmd
	}

	return a, nil
}

// recompute re-filters and re-aggregates for the selected period.
func (a *App) recompute() {
	if a.result == nil {
		return
	}

	p, err := pipeline.ResolvePeriod(periodNames[a.periodIdx], time.Now())
	if err != nil {
		a.loadErr = err
		return
	}

	a.filtered = pipeline.FilterSessions(a.result.Sessions, p, pipeline.FilterOptions{
		ExcludeProjects: a.cfg.Filters.ExcludeProjects,
	})
	a.agg = pipeline.Aggregate(a.filtered, p)

	bucket := pipeline.BucketDaily
	if periodNames[a.periodIdx] == "today" {
		bucket = pipeline.BucketHourly
	}
	a.series, _ = pipeline.BuildTimeSeries(a.filtered, pipeline.MetricTokens, bucket, "", 0)

	a.sessionsTbl.SetRows(sessionRows(a.filtered))
}

func (a App) View() string {
	if a.loading && a.result == nil {
		return "\n  loading sessions...\n"
	}
	if a.loadErr != nil && a.result == nil {
		return fmt.Sprintf("\n  error: %v\n\n  [q]uit\n", a.loadErr)
	}

	var body string
	switch a.activeTab {
	case tabOverview:
		body = a.renderOverview()
	case tabTools:
		body = a.renderTools()
	case tabModels:
		body = a.renderModels()
	case tabProjects:
		body = a.renderProjects()
	case tabSessions:
		body = a.renderSessions()
	}

	age := ""
	if !a.loadedAt.IsZero() {
		age = cli.FormatRelative(a.loadedAt, time.Now())
	}

	return components.RenderTabBar(a.activeTab) + "\n\n" +
		body + "\n" +
		components.RenderStatusBar(a.width, a.periodLabel(), age)
}

func (a App) periodLabel() string {
	if a.agg != nil {
		return a.agg.Label
	}
	return periodNames[a.periodIdx]
}

// Tab indices matching components.Tabs order.
const (
	tabOverview = iota
	tabTools
	tabModels
	tabProjects
	tabSessions
)

func sessionColumns(width int) []table.Column {
	projW := width - 58
	if projW < 12 {
		projW = 12
	}
	if projW > 32 {
		projW = 32
	}
	return []table.Column{
		{Title: "Started", Width: 16},
		{Title: "Project", Width: projW},
		{Title: "Msgs", Width: 6},
		{Title: "Tools", Width: 6},
		{Title: "Tokens", Width: 8},
		{Title: "Duration", Width: 9},
	}
}

func sessionRows(sessions []model.SessionStats) []table.Row {
	sorted := make([]model.SessionStats, len(sessions))
	copy(sorted, sessions)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].StartTime.After(sorted[j].StartTime)
	})

	rows := make([]table.Row, len(sorted))
	for i, s := range sorted {
		rows[i] = table.Row{
			cli.FormatTime(s.StartTime),
			s.Project,
			cli.FormatNumber(int64(s.TotalMessages)),
			cli.FormatNumber(int64(s.ToolCalls)),
			cli.FormatTokens(s.Tokens.Total),
			cli.FormatDurationMs(s.DurationMs),
		}
	}
	return rows
}

func styleTable(tbl *table.Model) {
	t := theme.Active
	st := table.DefaultStyles()
	st.Header = st.Header.Foreground(t.Accent).Bold(true).BorderForeground(t.Border)
	st.Selected = st.Selected.Foreground(t.TextPrimary).Background(t.SurfaceHover).Bold(false)
	tbl.SetStyles(st)
}
