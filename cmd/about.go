package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/curriculo/internal/model"
)

func newAboutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "about",
		Short: "Show how this app is built",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := model.About()
			out := cmd.OutOrStdout()
			h := model.Headline()
			fmt.Fprintf(out, "%s\n%s\n%s\n\n", h.Title, h.Subtitle, h.Tagline)
			fmt.Fprintln(out, info.Intro)
			fmt.Fprintln(out, "\nTechnologies")
			printGroups(out, info.Techs)
			fmt.Fprintln(out, "\nFeatures")
			printGroups(out, info.Features)
			return nil
		},
	}
}

func printGroups(w io.Writer, groups []model.Group) {
	for _, g := range groups {
		title := g.Title
		if g.Planned {
			title += " (planned)"
		}
		fmt.Fprintf(w, "  %s: %s\n", title, strings.Join(g.Items, ", "))
	}
}
