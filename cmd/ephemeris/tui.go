package main

import (
	"bytes"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/dbryant/ephemeris/internal/report"
	"github.com/dbryant/ephemeris/internal/ui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Watch the report in a full-screen terminal view",
	Long: `Tui renders the same report as the root command but keeps it on
screen, recomputing once a minute. With --date the observation instant
is fixed and only the report layout refreshes.`,
	RunE: runTUI,
}

func runTUI(cmd *cobra.Command, args []string) error {
	opts, cat, cfg, ok, err := setup()
	if err != nil || !ok {
		return err
	}

	fixed := dateFlag != ""
	render := func(now time.Time) (string, error) {
		runOpts := opts
		if !fixed {
			runOpts.Now = now.UTC()
		}
		var buf bytes.Buffer
		if err := report.Run(&buf, cat, cfg, runOpts); err != nil {
			return "", err
		}
		return buf.String(), nil
	}

	p := tea.NewProgram(ui.New(opts.Site.Name, render), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Error().Err(err).Msg("TUI terminated")
		return err
	}
	return nil
}
