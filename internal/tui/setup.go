package tui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"

	"agentstat/internal/config"
	"agentstat/internal/tui/theme"
)

// RunSetup walks the user through first-run configuration and saves the
// result. The existing config provides the form defaults.
func RunSetup(cfg config.Config) (config.Config, error) {
	sessionsDir := cfg.General.SessionsDir
	period := cfg.General.DefaultPeriod
	if period == "" {
		period = "month"
	}
	themeName := cfg.Appearance.Theme
	if themeName == "" {
		themeName = theme.FlexokiDark.Name
	}
	showCost := cfg.General.ShowCost

	themeOpts := make([]huh.Option[string], len(theme.All))
	for i, t := range theme.All {
		themeOpts[i] = huh.NewOption(t.Name, t.Name)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Sessions directory").
				Description("Where the assistant writes session logs. Leave blank for the default.").
				Placeholder(config.SessionsDir(config.Config{})).
				Value(&sessionsDir).
				Validate(func(s string) error {
					if s == "" {
						return nil
					}
					if _, err := os.Stat(s); err != nil {
						return fmt.Errorf("cannot read %s", s)
					}
					return nil
				}),

			huh.NewSelect[string]().
				Title("Default period").
				Options(
					huh.NewOption("today", "today"),
					huh.NewOption("this week", "week"),
					huh.NewOption("this month", "month"),
					huh.NewOption("this quarter", "quarter"),
					huh.NewOption("this year", "year"),
					huh.NewOption("everything", "all"),
				).
				Value(&period),

			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&themeName),

			huh.NewConfirm().
				Title("Show cost columns?").
				Value(&showCost),
		),
	)

	if err := form.Run(); err != nil {
		return cfg, err
	}

	cfg.General.SessionsDir = sessionsDir
	cfg.General.DefaultPeriod = period
	cfg.General.ShowCost = showCost
	cfg.Appearance.Theme = themeName

	if err := config.Save(cfg); err != nil {
		return cfg, fmt.Errorf("saving config: %w", err)
	}
	return cfg, nil
}
