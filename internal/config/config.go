// Package config loads the application settings of docfill.
//
// Settings come from a YAML file. A .env file is loaded next, and DOCFILL_*
// environment variables override individual values. Relative paths are
// resolved against the directory of the settings file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/benjaminschreck/go-docfill/pkg/docfill"
)

// Converter kinds.
const (
	ConverterLibreOffice = "libreoffice"
	ConverterCommand     = "command"
	ConverterCopy        = "copy"
)

// Settings holds the application configuration.
type Settings struct {
	ProjectName    string `yaml:"project_name"`
	ProjectVersion string `yaml:"project_version"`

	// Language selects the message catalog, the month names and the number
	// speller.
	Language string          `yaml:"language"`
	Logging  LoggingSettings `yaml:"logging"`

	// DataDir and DataName locate the executors record source.
	DataDir  string `yaml:"data_dir"`
	DataName string `yaml:"data_name"`

	TemplatesDir string             `yaml:"templates_dir"`
	Templates    []TemplateSettings `yaml:"templates"`

	// PDFDir receives rendered documents. PDFNameMask builds their file
	// names from {FIELD} placeholders.
	PDFDir      string `yaml:"pdf_dir"`
	PDFNameMask string `yaml:"pdf_name_mask"`

	DateYearMin int `yaml:"date_year_min"`
	DateYearMax int `yaml:"date_year_max"`

	// CurrencyPluralize holds the currency noun for 1, for 2-4 and for 5.
	CurrencyPluralize []string `yaml:"currency_pluralize"`

	IntermediateMarker string            `yaml:"intermediate_marker"`
	Converter          ConverterSettings `yaml:"converter"`

	// HistoryPath is the SQLite journal of rendered documents. Empty
	// disables the journal.
	HistoryPath string `yaml:"history_path"`

	path string
}

// LoggingSettings configures the application logger.
type LoggingSettings struct {
	Level    string `yaml:"level"`
	ToFile   bool   `yaml:"to_file"`
	FileDir  string `yaml:"file_dir"`
	FileName string `yaml:"file_name"`
}

// TemplateSettings describes one document template.
type TemplateSettings struct {
	Label  string `yaml:"label"`
	Name   string `yaml:"name"`
	Prefix string `yaml:"prefix"`
}

// ConverterSettings selects how filled documents are converted.
type ConverterSettings struct {
	Kind    string   `yaml:"kind"`
	Binary  string   `yaml:"binary"`
	Command string   `yaml:"command"`
	Args    []string `yaml:"args"`
}

// Default returns the settings used for values missing from the file.
func Default() *Settings {
	engine := docfill.DefaultConfig()
	return &Settings{
		ProjectName:        "docfill",
		ProjectVersion:     "dev",
		Language:           engine.Language,
		Logging:            LoggingSettings{Level: engine.LogLevel, FileDir: "logs", FileName: "docfill.log"},
		DataDir:            "data",
		DataName:           "executors.csv",
		TemplatesDir:       "templates",
		PDFDir:             "pdf",
		PDFNameMask:        "{DOC_TEMPLATE_PREFIX}_{DOC_NUM}_{DATE_YEAR}{DATE_MONTH}{DATE_DAY}.pdf",
		DateYearMin:        2020,
		DateYearMax:        2035,
		CurrencyPluralize:  []string{"рубль", "рубля", "рублей"},
		IntermediateMarker: engine.IntermediateMarker,
		Converter:          ConverterSettings{Kind: ConverterLibreOffice, Binary: engine.SofficeBinary},
	}
}

// Load reads the settings file at path. envPath names a .env file to load
// first; when empty, a .env next to the settings file is loaded if present.
// Variables already set in the environment are never overwritten by .env.
func Load(path, envPath string) (*Settings, error) {
	if err := loadEnv(path, envPath); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, docfill.NewConfigurationError("settings", "failed to read settings file", err)
	}

	s, err := Parse(data)
	if err != nil {
		return nil, err
	}
	s.applyEnv()

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, docfill.NewConfigurationError("settings", "failed to resolve settings path", err)
	}
	s.path = abs
	s.resolvePaths(filepath.Dir(abs))

	return s, nil
}

// Parse decodes YAML settings over the defaults. Paths stay as written.
func Parse(data []byte) (*Settings, error) {
	s := Default()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, docfill.NewConfigurationError("settings", "failed to parse settings file", err)
	}
	return s, nil
}

func loadEnv(settingsPath, envPath string) error {
	if envPath != "" {
		if err := godotenv.Load(envPath); err != nil {
			return docfill.NewConfigurationError("env", fmt.Sprintf("failed to load %s", envPath), err)
		}
		return nil
	}

	local := filepath.Join(filepath.Dir(settingsPath), ".env")
	if err := godotenv.Load(local); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return docfill.NewConfigurationError("env", fmt.Sprintf("failed to load %s", local), err)
	}
	return nil
}

// applyEnv overrides settings from DOCFILL_* variables.
func (s *Settings) applyEnv() {
	setString(&s.Language, "DOCFILL_LANGUAGE")
	setString(&s.Logging.Level, "DOCFILL_LOG_LEVEL")
	setString(&s.DataDir, "DOCFILL_DATA_DIR")
	setString(&s.DataName, "DOCFILL_DATA_NAME")
	setString(&s.TemplatesDir, "DOCFILL_TEMPLATES_DIR")
	setString(&s.PDFDir, "DOCFILL_PDF_DIR")
	setString(&s.PDFNameMask, "DOCFILL_PDF_NAME_MASK")
	setString(&s.IntermediateMarker, "DOCFILL_INTERMEDIATE_MARKER")
	setString(&s.Converter.Kind, "DOCFILL_CONVERTER")
	setString(&s.Converter.Binary, "DOCFILL_SOFFICE")
	setString(&s.HistoryPath, "DOCFILL_HISTORY_PATH")
	setInt(&s.DateYearMin, "DOCFILL_DATE_YEAR_MIN")
	setInt(&s.DateYearMax, "DOCFILL_DATE_YEAR_MAX")

	if val := os.Getenv("DOCFILL_LOG_TO_FILE"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			s.Logging.ToFile = b
		}
	}
}

func setString(dst *string, key string) {
	if val := os.Getenv(key); val != "" {
		*dst = val
	}
}

func setInt(dst *int, key string) {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			*dst = n
		}
	}
}

func (s *Settings) resolvePaths(base string) {
	for _, p := range []*string{&s.DataDir, &s.TemplatesDir, &s.PDFDir, &s.Logging.FileDir, &s.HistoryPath} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(base, *p)
		}
	}
}

// Path returns the absolute path of the loaded settings file.
func (s *Settings) Path() string {
	return s.path
}

// DataPath returns the executors record source.
func (s *Settings) DataPath() string {
	return filepath.Join(s.DataDir, s.DataName)
}

// TemplatePath returns the file of a configured template.
func (s *Settings) TemplatePath(t TemplateSettings) string {
	return filepath.Join(s.TemplatesDir, t.Name)
}

// LogFilePath returns the log file, or "" when logging to a file is off.
func (s *Settings) LogFilePath() string {
	if !s.Logging.ToFile {
		return ""
	}
	return filepath.Join(s.Logging.FileDir, s.Logging.FileName)
}

// Engine returns the rendering engine configuration derived from s.
func (s *Settings) Engine() *docfill.Config {
	return docfill.NewConfigWithDefaults(&docfill.Config{
		LogLevel:           strings.ToLower(s.Logging.Level),
		Language:           s.Language,
		IntermediateMarker: s.IntermediateMarker,
		SofficeBinary:      s.Converter.Binary,
	})
}

// Validate checks the values of s without touching the file system.
func (s *Settings) Validate() error {
	v := &docfill.ValidationError{}

	if s.ProjectName == "" {
		v.Add("project_name", "is required")
	}
	if s.DataName == "" {
		v.Add("data_name", "is required")
	}
	if s.PDFNameMask == "" {
		v.Add("pdf_name_mask", "is required")
	}
	if len(s.Templates) == 0 {
		v.Add("templates", "at least one template is required")
	}
	labels := make(map[string]bool, len(s.Templates))
	for i, t := range s.Templates {
		field := fmt.Sprintf("templates[%d]", i)
		if t.Label == "" || t.Name == "" {
			v.Add(field, "label and name are required")
		}
		if labels[t.Label] {
			v.Add(field, fmt.Sprintf("duplicate label %q", t.Label))
		}
		labels[t.Label] = true
	}
	if s.DateYearMin > s.DateYearMax {
		v.Add("date_year_min", fmt.Sprintf("%d is after date_year_max %d", s.DateYearMin, s.DateYearMax))
	}
	if len(s.CurrencyPluralize) != 3 {
		v.Add("currency_pluralize", (&docfill.InvalidPluralFormsError{Got: len(s.CurrencyPluralize)}).Error())
	}

	switch s.Converter.Kind {
	case ConverterLibreOffice, ConverterCopy:
	case ConverterCommand:
		if s.Converter.Command == "" {
			v.Add("converter.command", "is required for the command converter")
		}
	default:
		v.Add("converter.kind", fmt.Sprintf("unknown converter %q", s.Converter.Kind))
	}

	if err := s.Engine().Validate(); err != nil {
		v.Add("engine", err.Error())
	}

	if err := v.Err(); err != nil {
		return docfill.NewConfigurationError("settings", "invalid settings", err)
	}
	return nil
}

// CheckPaths verifies that the data file and the configured directories exist.
func (s *Settings) CheckPaths() error {
	errs := docfill.NewMultiError()

	for _, dir := range []struct{ setting, path string }{
		{"data_dir", s.DataDir},
		{"templates_dir", s.TemplatesDir},
		{"pdf_dir", s.PDFDir},
	} {
		info, err := os.Stat(dir.path)
		switch {
		case err != nil:
			errs.Add(docfill.NewConfigurationError(dir.setting, fmt.Sprintf("directory %q not found", dir.path), err))
		case !info.IsDir():
			errs.Add(docfill.NewConfigurationError(dir.setting, fmt.Sprintf("%q is not a directory", dir.path), nil))
		}
	}

	if _, err := os.Stat(s.DataPath()); err != nil {
		errs.Add(docfill.NewConfigurationError("data_name", fmt.Sprintf("file %q not found", s.DataPath()), err))
	}

	return errs.Err()
}
