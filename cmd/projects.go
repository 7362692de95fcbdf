package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/curriculo/internal/model"
)

func newProjectsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "projects",
		Short: "Show the portfolio projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for i, p := range model.Projects() {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintln(out, p.Title)
				fmt.Fprintf(out, "  %s\n", p.Description)
				fmt.Fprintf(out, "  Techs: %s\n", strings.Join(p.Techs, ", "))
				fmt.Fprintf(out, "  %s\n", p.Link)
			}
			return nil
		},
	}
}
