package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/curriculo/internal/config"
	"github.com/Tiliavir/curriculo/internal/tui"
	"github.com/Tiliavir/curriculo/internal/ui"
)

func runUI(cmd *cobra.Command, s *session) error {
	th, err := ui.ThemeByName(s.cfg.Theme)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v; using light\n", err)
		th = ui.Light
	}

	// The alternate screen owns the terminal, so logs go to a file or nowhere.
	s.logger = slog.New(slog.DiscardHandler)
	if s.verbose {
		f, err := openLogFile()
		if err != nil {
			return err
		}
		defer f.Close()
		s.logger = s.newLogger(f)
	}

	alerts := &tui.Alerts{}
	app := tui.New(cmd.Context(), s.sections(alerts), alerts, tui.Options{
		Theme: th,
		SaveTheme: func(chosen ui.Theme) error {
			return config.SaveTheme(chosen.Name)
		},
	})
	return tui.Run(cmd.Context(), app)
}

func openLogFile() (*os.File, error) {
	dir, err := config.Dir()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dir, "cv.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return f, nil
}
