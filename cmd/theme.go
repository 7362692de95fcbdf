package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/curriculo/internal/config"
	"github.com/Tiliavir/curriculo/internal/ui"
)

func newThemeCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:       "theme [light|dark]",
		Short:     "Show or set the colour theme of the interactive UI",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{ui.Light.Name, ui.Dark.Name},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), s.cfg.Theme)
				return nil
			}
			th, err := ui.ThemeByName(args[0])
			if err != nil {
				return err
			}
			if err := config.SaveTheme(th.Name); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Theme set to %s.\n", th.Name)
			return nil
		},
	}
}
