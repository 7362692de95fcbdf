package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/curriculo/internal/apiclient"
	"github.com/Tiliavir/curriculo/internal/config"
	"github.com/Tiliavir/curriculo/internal/listsync"
	"github.com/Tiliavir/curriculo/internal/model"
	"github.com/Tiliavir/curriculo/internal/resume"
)

// errReported marks a failure the user has already been alerted about.
var errReported = errors.New("operation failed")

// session is the resolved configuration shared by every command.
type session struct {
	cfg     config.Config
	timeout time.Duration
	logger  *slog.Logger

	// persistent flags
	apiURL  string
	owner   string
	flagTO  time.Duration
	verbose bool
}

func newRootCmd() *cobra.Command {
	s := &session{}
	root := &cobra.Command{
		Use:   "cv",
		Short: "curriculo – manage a résumé kept on a REST backend",
		Long: `cv edits the academic history, work experience and skills stored on a
résumé REST backend. Run it without a subcommand for the interactive UI.
Settings live in ~/.curriculo/config.json.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return s.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUI(cmd, s)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&s.apiURL, "api-url", "", "Backend base URL (overrides config)")
	pf.StringVar(&s.owner, "owner", "", "Owner id the records belong to (overrides config)")
	pf.DurationVar(&s.flagTO, "timeout", 0, "Per-request timeout such as 10s (overrides config)")
	pf.BoolVarP(&s.verbose, "verbose", "v", false, "Log HTTP traffic")

	root.AddCommand(
		newSectionCmd(s, "academic", "Manage the academic history", model.AcademicFields,
			func(all resume.Sections) *resume.AcademicSection { return all.Academic }),
		newSectionCmd(s, "work", "Manage the work experience", model.WorkExpFields,
			func(all resume.Sections) *resume.WorkSection { return all.Work }),
		newSectionCmd(s, "skills", "Manage the skills", model.SkillFields,
			func(all resume.Sections) *resume.SkillsSection { return all.Skills }),
		newProjectsCmd(),
		newAboutCmd(),
		newExportCmd(s),
		newThemeCmd(s),
		newMockAPICmd(s),
	)
	return root
}

// Execute is the entry point called from main.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, err)
		}
		stop()
		os.Exit(1)
	}
}

func (s *session) setup(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("api-url") {
		cfg.API.BaseURL = strings.TrimRight(s.apiURL, "/")
	}
	if cmd.Flags().Changed("owner") {
		cfg.API.OwnerID = s.owner
	}
	s.cfg = cfg
	s.timeout = time.Duration(cfg.API.TimeoutSeconds) * time.Second
	if s.flagTO > 0 {
		s.timeout = s.flagTO
	}
	s.logger = s.newLogger(cmd.ErrOrStderr())
	return nil
}

func (s *session) newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if s.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func (s *session) client() *apiclient.Client {
	c := apiclient.NewClient(s.cfg.API.BaseURL,
		apiclient.WithTimeout(s.timeout),
		apiclient.WithLogger(s.logger))
	s.logger.Debug("using backend", "url", c.BaseURL(), "owner", s.cfg.API.OwnerID, "timeout", s.timeout)
	return c
}

func (s *session) sections(notify listsync.Notifier) resume.Sections {
	return resume.NewSections(s.client(), s.cfg.API.OwnerID, notify, s.logger)
}

// stderrAlerts prints alerts as "Title: message" on the command's error
// stream.
func stderrAlerts(cmd *cobra.Command) listsync.Notifier {
	w := cmd.ErrOrStderr()
	return listsync.NotifierFunc(func(title, message string) {
		fmt.Fprintf(w, "%s: %s\n", title, message)
	})
}
