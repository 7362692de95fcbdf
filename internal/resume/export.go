package resume

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Tiliavir/curriculo/internal/model"
	"github.com/Tiliavir/curriculo/internal/timecalc"
	"github.com/Tiliavir/curriculo/internal/ui"
)

// Resume is a snapshot of every section.
type Resume struct {
	Academic []model.AcademicItem `json:"academic"`
	Work     []model.WorkExpItem  `json:"work"`
	Skills   []model.SkillItem    `json:"skills"`
	Projects []model.Project      `json:"projects"`
}

// Collect loads all API-backed sections in parallel. Load failures have
// already been reported through the sections' notifier.
func Collect(ctx context.Context, s Sections) (Resume, error) {
	g, ctx := errgroup.WithContext(ctx)
	load := func(name string, fn func(context.Context) bool) {
		g.Go(func() error {
			if !fn(ctx) {
				return fmt.Errorf("loading %s failed", name)
			}
			return nil
		})
	}
	load(s.Academic.Key, s.Academic.Controller.Load)
	load(s.Work.Key, s.Work.Controller.Load)
	load(s.Skills.Key, s.Skills.Controller.Load)
	if err := g.Wait(); err != nil {
		return Resume{}, err
	}
	return Resume{
		Academic: s.Academic.Controller.Items(),
		Work:     s.Work.Controller.Items(),
		Skills:   s.Skills.Controller.Items(),
		Projects: model.Projects(),
	}, nil
}

// Markdown renders r as a Markdown document. Periods and statuses are
// derived against today.
func (r Resume) Markdown(today time.Time) string {
	var b strings.Builder
	b.WriteString("# Résumé\n")

	b.WriteString("\n## Work experience\n\n")
	if len(r.Work) == 0 {
		b.WriteString("_none_\n")
	}
	for _, w := range r.Work {
		d := timecalc.Derive(w.StartDate, w.EndDate, today)
		fmt.Fprintf(&b, "- **%s**, %s (%s, %s)\n", w.Role, w.Company, d.Period, ui.WorkLabels.Label(d))
		if desc := strings.TrimSpace(w.Description); desc != "" {
			fmt.Fprintf(&b, "  %s\n", desc)
		}
	}

	b.WriteString("\n## Education\n\n")
	if len(r.Academic) == 0 {
		b.WriteString("_none_\n")
	}
	for _, a := range r.Academic {
		d := timecalc.Derive(a.StartDate, a.EndDate, today)
		fmt.Fprintf(&b, "- **%s**, %s (%s, %s)\n", a.Course, a.Institution, d.Period, ui.AcademicLabels.Label(d))
	}

	b.WriteString("\n## Skills\n\n")
	if len(r.Skills) == 0 {
		b.WriteString("_none_\n")
	}
	for _, s := range r.Skills {
		fmt.Fprintf(&b, "- %s: %s\n", s.Name, s.Level)
	}

	b.WriteString("\n## Projects\n\n")
	for _, p := range r.Projects {
		fmt.Fprintf(&b, "- [%s](%s): %s _(%s)_\n", p.Title, p.Link, p.Description, strings.Join(p.Techs, ", "))
	}
	return b.String()
}
