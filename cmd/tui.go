package cmd

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/kerem6790/financeX/internal/store"
	"github.com/kerem6790/financeX/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive dashboard",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	// Force TrueColor profile so all styling produces ANSI codes.
	// Without this, lipgloss may default to Ascii profile (no colors).
	lipgloss.SetColorProfile(termenv.TrueColor)

	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	ctx, err := loadContext(st)
	if err != nil {
		return err
	}

	// Edits made in the dashboard flush to the store in the background;
	// Stop drains the last pending write on exit.
	log := logrus.New()
	log.SetLevel(logrus.WarnLevel)
	saver := store.NewAutosaver(ctx, st, log,
		time.Duration(appConfig.Autosave.DebounceMs)*time.Millisecond)
	saver.Start()
	defer saver.Stop()

	app := tui.New(ctx, func() error { return saveContext(st, ctx) }, currencySymbol())
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
