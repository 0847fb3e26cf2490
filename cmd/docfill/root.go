package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/benjaminschreck/go-docfill/internal/app"
	"github.com/benjaminschreck/go-docfill/internal/config"
	"github.com/benjaminschreck/go-docfill/internal/history"
	"github.com/benjaminschreck/go-docfill/pkg/docfill"
)

type rootOptions struct {
	configPath string
	envPath    string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "docfill",
		Short: "Fill DOCX templates and convert them to PDF",
		Long: `docfill replaces [FIELD] placeholders in Word templates with form input
and executor data, then converts the filled document to PDF.

Example:
  docfill templates
  docfill fields --template "Акт"
  docfill render --template "Акт" --day 5 --month 3 --year 2024 \
      --executor ivanov --number 42 --amount 1500`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "docfill.yaml", "settings file")
	pf.StringVar(&opts.envPath, "env", "", ".env file to load (default: .env next to the settings file)")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(
		newRenderCmd(opts),
		newFieldsCmd(opts),
		newExecutorsCmd(opts),
		newTemplatesCmd(opts),
		newHistoryCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

// session holds what one command invocation opened.
type session struct {
	settings *config.Settings
	logger   *docfill.Logger
	app      *app.App
	history  *history.Store
	closers  []io.Closer
}

// open loads and validates the settings, then builds the logger, the journal
// and the App. adjust, when set, may change the settings before validation.
func (o *rootOptions) open(cmd *cobra.Command, adjust func(*config.Settings) error) (*session, error) {
	s, err := config.Load(o.configPath, o.envPath)
	if err != nil {
		return nil, err
	}
	if adjust != nil {
		if err := adjust(s); err != nil {
			return nil, err
		}
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	sess := &session{settings: s}

	var w io.Writer = cmd.ErrOrStderr()
	if path := s.LogFilePath(); path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		sess.closers = append(sess.closers, f)
		w = io.MultiWriter(w, f)
	}

	level := docfill.ParseLogLevel(s.Logging.Level)
	if o.verbose {
		level = docfill.LogDebug
	}
	sess.logger = docfill.NewLogger(w, level).WithField("project", s.ProjectName)

	hist, err := history.Open(s.HistoryPath)
	if err != nil {
		sess.Close()
		return nil, err
	}
	sess.history = hist
	sess.closers = append(sess.closers, hist)

	sess.app, err = app.New(s, sess.logger, app.WithHistory(hist))
	if err != nil {
		sess.Close()
		return nil, err
	}
	return sess, nil
}

// Close releases everything the session opened, last first.
func (s *session) Close() error {
	errs := docfill.NewMultiError()
	for i := len(s.closers) - 1; i >= 0; i-- {
		errs.Add(s.closers[i].Close())
	}
	s.closers = nil
	return errs.Err()
}
