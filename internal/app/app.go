// Package app implements the document filling workflow: it loads templates
// and executors, validates form input, builds the replacement mapping and
// renders the output document.
package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/benjaminschreck/go-docfill/internal/config"
	"github.com/benjaminschreck/go-docfill/internal/history"
	"github.com/benjaminschreck/go-docfill/internal/i18n"
	"github.com/benjaminschreck/go-docfill/pkg/docfill"
)

// Template is a configured document template.
type Template struct {
	Label  string
	Name   string
	Path   string
	Prefix string
}

// App carries everything a render needs. It is built once and passed
// explicitly; nothing in this package is global.
type App struct {
	settings   *config.Settings
	logger     *docfill.Logger
	translator *i18n.Translator
	amounts    *docfill.AmountFormatter
	renderer   *docfill.Renderer
	history    *history.Store

	templates     map[string]Template
	templateOrder []string
	executors     *docfill.RecordStore
}

// Option configures an App.
type Option func(*appOptions)

type appOptions struct {
	converter docfill.Converter
	history   *history.Store
}

// WithConverter overrides the converter chosen by the settings.
func WithConverter(c docfill.Converter) Option {
	return func(o *appOptions) { o.converter = c }
}

// WithHistory sets the render journal.
func WithHistory(h *history.Store) Option {
	return func(o *appOptions) { o.history = h }
}

// New creates an App from validated settings.
func New(s *config.Settings, logger *docfill.Logger, opts ...Option) (*App, error) {
	var o appOptions
	for _, opt := range opts {
		opt(&o)
	}
	if logger == nil {
		logger = docfill.NopLogger()
	}

	translator, err := i18n.New(s.Language)
	if err != nil {
		return nil, docfill.NewConfigurationError("language", "unsupported language", err)
	}
	amounts, err := docfill.NewAmountFormatterForLanguage(s.Language)
	if err != nil {
		return nil, err
	}

	conv := o.converter
	if conv == nil {
		if conv, err = NewConverter(s.Converter); err != nil {
			return nil, err
		}
	}

	hist := o.history
	if hist == nil {
		hist = &history.Store{}
	}

	return &App{
		settings:   s,
		logger:     logger,
		translator: translator,
		amounts:    amounts,
		renderer: docfill.NewRenderer(conv,
			docfill.WithLogger(logger),
			docfill.WithIntermediateMarker(s.IntermediateMarker),
		),
		history: hist,
	}, nil
}

// NewConverter builds the converter described by cs.
func NewConverter(cs config.ConverterSettings) (docfill.Converter, error) {
	switch cs.Kind {
	case "", config.ConverterLibreOffice:
		binary := cs.Binary
		if binary == "" {
			binary = docfill.DefaultConfig().SofficeBinary
		}
		return docfill.NewLibreOfficeConverter(binary), nil
	case config.ConverterCommand:
		return &docfill.CommandConverter{Command: cs.Command, Args: cs.Args}, nil
	case config.ConverterCopy:
		return docfill.CopyConverter{}, nil
	}
	return nil, docfill.NewConfigurationError("converter.kind", fmt.Sprintf("unknown converter %q", cs.Kind), nil)
}

// Settings returns the settings the App was built with.
func (a *App) Settings() *config.Settings {
	return a.settings
}

// Translator returns the message translator.
func (a *App) Translator() *i18n.Translator {
	return a.translator
}

// History returns the render journal.
func (a *App) History() *history.Store {
	return a.history
}

// LoadTemplates resolves every configured template. A missing template file
// is a ConfigurationError.
func (a *App) LoadTemplates() error {
	templates := make(map[string]Template, len(a.settings.Templates))
	order := make([]string, 0, len(a.settings.Templates))

	for _, ts := range a.settings.Templates {
		path := a.settings.TemplatePath(ts)
		if !fileExists(path) {
			return docfill.NewConfigurationError("templates", fmt.Sprintf("file %q not found", path), nil)
		}
		if _, dup := templates[ts.Label]; !dup {
			order = append(order, ts.Label)
		}
		templates[ts.Label] = Template{Label: ts.Label, Name: ts.Name, Path: path, Prefix: ts.Prefix}
	}

	a.templates = templates
	a.templateOrder = order
	a.logger.Info("%s", a.translator.T(i18n.MsgTemplatesLoaded, len(order)))
	return nil
}

// Templates returns the loaded templates in configuration order.
func (a *App) Templates() []Template {
	out := make([]Template, 0, len(a.templateOrder))
	for _, label := range a.templateOrder {
		out = append(out, a.templates[label])
	}
	return out
}

// LoadExecutors loads the executors record source. Record headers must not
// collide with the reserved field names.
func (a *App) LoadExecutors() error {
	store, err := docfill.LoadRecords(a.settings.DataPath(), docfill.ReservedFields())
	if err != nil {
		return err
	}
	for _, key := range store.Duplicates() {
		a.logger.Warn("%s", a.translator.T(i18n.MsgDuplicateExecutor, key))
	}
	a.executors = store
	a.logger.Info("%s", a.translator.T(i18n.MsgExecutorsLoaded, store.Len()))
	return nil
}

// Executors returns the loaded executors, or nil before LoadExecutors.
func (a *App) Executors() *docfill.RecordStore {
	return a.executors
}

// Load loads templates and executors.
func (a *App) Load() error {
	if err := a.LoadTemplates(); err != nil {
		return err
	}
	return a.LoadExecutors()
}

// ReplaceableFields returns the names filled by the application and the
// names taken from executor record headers.
func (a *App) ReplaceableFields() (appFields, recordFields []string) {
	appFields = docfill.ReservedFields()
	if a.executors != nil {
		recordFields = a.executors.Headers()
	}
	return appFields, recordFields
}

// FieldStatus reports whether a token found in a template will be replaced.
type FieldStatus struct {
	Name     string
	Resolved bool
}

// TemplateFields lists the tokens of a template in document order and
// whether each one has a value source.
func (a *App) TemplateFields(label string) ([]FieldStatus, error) {
	tmpl, ok := a.templates[label]
	if !ok {
		return nil, docfill.NewConfigurationError("template", a.translator.T(i18n.MsgUnknownTemplate, label), nil)
	}
	doc, err := docfill.OpenDocument(tmpl.Path)
	if err != nil {
		return nil, err
	}

	known := make(map[string]bool)
	appFields, recordFields := a.ReplaceableFields()
	for _, names := range [][]string{appFields, recordFields} {
		for _, name := range names {
			known[docfill.Token(name)] = true
		}
	}

	var out []FieldStatus
	for _, name := range docfill.ScanTokens(doc.Body()) {
		out = append(out, FieldStatus{Name: name, Resolved: known["["+name+"]"]})
	}
	return out, nil
}

// Result describes a rendered document.
type Result struct {
	Output string
	Form   *Form
	Stats  docfill.SubstituteStats
}

// Render validates in, fills the selected template and converts it into the
// output directory. The output path is returned on success.
func (a *App) Render(ctx context.Context, in FormInput) (*Result, error) {
	form, err := a.Validate(in)
	if err != nil {
		return nil, err
	}

	repl, err := a.Replacements(form)
	if err != nil {
		return nil, err
	}

	name, err := a.OutputName(repl)
	if err != nil {
		return nil, err
	}
	dest := filepath.Join(a.settings.PDFDir, name)

	a.warnReusedNumber(ctx, form)

	a.logger.Info("%s", a.translator.T(i18n.MsgConverting))
	res, err := a.renderer.Render(ctx, form.Template.Path, dest, repl)
	if err != nil {
		a.logger.Error("%s: %v", a.translator.T(i18n.MsgConversionFailed), err)
		return nil, docfill.WithContext(err, "render", map[string]interface{}{
			"template": form.Template.Label,
			"number":   form.Number,
			"executor": form.ExecutorLabel,
		})
	}
	a.logger.Info("%s", a.translator.T(i18n.MsgConversionSucceeded))
	a.logger.Debug("%s", a.translator.T(i18n.MsgFileCreated, dest))

	_, err = a.history.Record(ctx, history.Entry{
		Template: form.Template.Label,
		Number:   form.Number,
		Executor: form.ExecutorLabel,
		Date:     form.Date().Format("2006-01-02"),
		Amount:   form.Amount,
		Output:   dest,
	})
	if err != nil {
		// The document exists; a journal failure does not undo it.
		a.logger.Warn("failed to record render: %v", err)
	}

	return &Result{Output: dest, Form: form, Stats: res.Stats}, nil
}

func (a *App) warnReusedNumber(ctx context.Context, form *Form) {
	previous, err := a.history.FindByNumber(ctx, form.Template.Label, form.Number)
	if err != nil {
		a.logger.Warn("failed to query history: %v", err)
		return
	}
	for _, e := range previous {
		a.logger.Warn("%s", a.translator.T(i18n.MsgNumberReused, e.Number, e.Template, e.CreatedAt.Local().Format(time.DateTime)))
	}
}

// Replacements builds the mapping for a validated form: the application
// fields first, then the fields of the executor record. A record field never
// replaces an application field, whatever the case of its header.
func (a *App) Replacements(f *Form) (docfill.Replacements, error) {
	words, err := a.amounts.Format(f.Amount, a.settings.CurrencyPluralize)
	if err != nil {
		return nil, err
	}

	r := docfill.Replacements{}
	r.Set(docfill.FieldDocTemplateLabel, f.Template.Label)
	r.Set(docfill.FieldDocTemplateName, f.Template.Name)
	r.Set(docfill.FieldDocTemplatePrefix, f.Template.Prefix)
	r.Set(docfill.FieldDateDay, fmt.Sprintf("%02d", f.Day))
	r.Set(docfill.FieldDateMonthLabel, a.translator.Month(f.Month))
	r.Set(docfill.FieldDateMonth, fmt.Sprintf("%02d", int(f.Month)))
	r.Set(docfill.FieldDateYear, strconv.Itoa(f.Year))
	r.Set(docfill.FieldExecutorLabel, f.ExecutorLabel)
	r.Set(docfill.FieldDocNum, f.Number)
	r.Set(docfill.FieldAmount, f.AmountText)
	r.Set(docfill.FieldAmountInt, strconv.FormatInt(f.Amount, 10))
	r.Set(docfill.FieldAmountText, docfill.Capitalize(words))
	a.mergeRecord(r, f.Executor)

	if a.logger.IsDebugMode() {
		for _, name := range r.Names() {
			a.logger.Debug("Replacing %s -> %q", docfill.Token(name), r[name])
		}
	}
	return r, nil
}

// mergeRecord adds the fields of rec to r in header order, skipping headers
// that name an application field once upper-cased.
func (a *App) mergeRecord(r docfill.Replacements, rec docfill.Record) {
	reserved := make(map[string]bool)
	for _, name := range docfill.ReservedFields() {
		reserved[name] = true
	}
	for _, h := range rec.Headers() {
		if reserved[strings.ToUpper(h)] {
			a.logger.Warn("Executor field %q ignored: %s is filled by the application", h, docfill.Token(h))
			continue
		}
		v, _ := rec.Get(h)
		r.Set(h, v)
	}
}
