package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/curriculo/internal/resume"
)

func newExportCmd(s *session) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the whole résumé to stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := resume.Collect(cmd.Context(), s.sections(stderrAlerts(cmd)))
			if err != nil {
				return errReported
			}
			out := cmd.OutOrStdout()
			now := time.Now()
			switch format {
			case "json":
				data, err := json.MarshalIndent(r, "", "  ")
				if err != nil {
					return fmt.Errorf("encoding JSON: %w", err)
				}
				fmt.Fprintln(out, string(data))
			case "csv":
				printCSV(out, r, now)
			case "md":
				fmt.Fprint(out, r.Markdown(now))
			default:
				return fmt.Errorf("unknown format %q (want md, json or csv)", format)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "md", "Output format: md, json, csv")
	return cmd
}

// printCSV writes one row per record of the API-backed sections.
func printCSV(w io.Writer, r resume.Resume, today time.Time) {
	fmt.Fprintln(w, "section,id,title,subtitle,period,status")
	row := func(section, id string, cols []string) {
		fields := []string{section, csvEscape(id)}
		for _, c := range cols {
			fields = append(fields, csvEscape(c))
		}
		for len(fields) < 6 {
			fields = append(fields, "")
		}
		fmt.Fprintln(w, strings.Join(fields, ","))
	}
	for _, a := range r.Academic {
		row("academic", a.ID.String(), resume.AcademicColumns(a, today))
	}
	for _, e := range r.Work {
		row("work", e.ID.String(), resume.WorkColumns(e, today))
	}
	for _, sk := range r.Skills {
		row("skills", sk.ID.String(), resume.SkillColumns(sk, today))
	}
}

// csvEscape wraps a field in quotes if it contains a comma, quote, or newline.
func csvEscape(s string) string {
	if !strings.ContainsAny(s, ",\"\n\r") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
