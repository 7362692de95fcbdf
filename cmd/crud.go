package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/curriculo/internal/form"
	"github.com/Tiliavir/curriculo/internal/model"
	"github.com/Tiliavir/curriculo/internal/resume"
	"github.com/Tiliavir/curriculo/internal/ui"
)

// newSectionCmd builds the list/add/edit/rm group of one API-backed section.
// add and edit take one string flag per field in fields.
func newSectionCmd[T model.Record, D any](
	s *session,
	use, short string,
	fields []model.Field[D],
	pick func(resume.Sections) *resume.Section[T, D],
) *cobra.Command {
	group := &cobra.Command{Use: use, Short: short}

	section := func(cmd *cobra.Command) *resume.Section[T, D] {
		return pick(s.sections(stderrAlerts(cmd)))
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List the records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sec := section(cmd)
			if !sec.Controller.Load(cmd.Context()) {
				return errReported
			}
			printRows(cmd.OutOrStdout(), sec, time.Now())
			return nil
		},
	}

	add := &cobra.Command{
		Use:   "add",
		Short: "Create a record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sec := section(cmd)
			f := form.New[T, D](sec.Fields, sec.Controller, sec.FromItem)
			applyFlags(cmd, f)
			return submit(cmd, f)
		},
	}

	edit := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update a record; unset flags keep their current value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sec := section(cmd)
			item, err := find(cmd, sec, args[0])
			if err != nil {
				return err
			}
			f := form.New[T, D](sec.Fields, sec.Controller, sec.FromItem)
			f.Edit(item)
			applyFlags(cmd, f)
			return submit(cmd, f)
		},
	}

	var yes bool
	rm := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sec := section(cmd)
			item, err := find(cmd, sec, args[0])
			if err != nil {
				return err
			}
			ctrl := sec.Controller
			ctrl.ToggleDeleting()
			if err := ctrl.RequestDelete(item); err != nil {
				return err
			}
			if !yes {
				ok, err := confirm(cmd, ui.ConfirmDeleteMessage(sec.Noun, sec.Name(item)))
				if err != nil {
					return err
				}
				if !ok {
					ctrl.Cancel()
					fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
					return nil
				}
			}
			if !ctrl.ConfirmDelete(cmd.Context()) {
				return errReported
			}
			return nil
		},
	}
	rm.Flags().BoolVarP(&yes, "yes", "y", false, "Delete without asking")

	for _, fd := range fields {
		add.Flags().String(fd.Key, "", fd.Usage())
		edit.Flags().String(fd.Key, "", fd.Usage())
	}

	group.AddCommand(list, add, edit, rm)
	return group
}

// applyFlags copies the field flags the user set into the form.
func applyFlags[T model.Record, D any](cmd *cobra.Command, f *form.Form[T, D]) {
	for _, fd := range f.Fields {
		if !cmd.Flags().Changed(fd.Key) {
			continue
		}
		v, _ := cmd.Flags().GetString(fd.Key)
		f.Set(fd.Key, v)
	}
}

func submit[T model.Record, D any](cmd *cobra.Command, f *form.Form[T, D]) error {
	err := f.Submit(cmd.Context())
	var verr *form.ValidationError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &verr):
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s\n", verr.Error())
		return errReported
	case errors.Is(err, form.ErrRejected):
		return errReported
	}
	return err
}

func find[T model.Record, D any](cmd *cobra.Command, sec *resume.Section[T, D], id string) (T, error) {
	var zero T
	if !sec.Controller.Load(cmd.Context()) {
		return zero, errReported
	}
	item, ok := sec.Controller.Find(model.ID(id))
	if !ok {
		return zero, fmt.Errorf("no %s with id %q", sec.Noun, id)
	}
	return item, nil
}

// confirm asks a y/N question on the command's streams. Anything but y or
// yes declines.
func confirm(cmd *cobra.Command, question string) (bool, error) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N] ", question)
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

func printRows[T model.Record, D any](w io.Writer, sec *resume.Section[T, D], today time.Time) {
	items := sec.Controller.Items()
	if len(items) == 0 {
		fmt.Fprintln(w, "No entries found.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, item := range items {
		fmt.Fprintf(tw, "%s\t%s\n", item.RecordID(), strings.Join(sec.Columns(item, today), "\t"))
	}
	_ = tw.Flush()
}
