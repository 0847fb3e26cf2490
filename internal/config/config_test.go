package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benjaminschreck/go-docfill/pkg/docfill"
)

const sampleSettings = `
project_name: Act Maker
project_version: "1.2.0"
language: ru
logging:
  level: debug
  to_file: true
data_dir: data
data_name: executors.csv
templates_dir: templates
templates:
  - label: Акт
    name: act.docx
    prefix: ACT
  - label: Счёт
    name: bill.docx
    prefix: BILL
pdf_dir: /srv/pdf
date_year_min: 2023
date_year_max: 2026
history_path: history.db
`

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "docfill.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeSettings(t, sampleSettings)
	dir := filepath.Dir(path)

	s, err := Load(path, "")
	require.NoError(t, err)

	assert.Equal(t, "Act Maker", s.ProjectName)
	assert.Equal(t, "1.2.0", s.ProjectVersion)
	assert.Equal(t, "debug", s.Logging.Level)
	assert.Len(t, s.Templates, 2)
	assert.Equal(t, TemplateSettings{Label: "Счёт", Name: "bill.docx", Prefix: "BILL"}, s.Templates[1])

	assert.Equal(t, filepath.Join(dir, "data", "executors.csv"), s.DataPath())
	assert.Equal(t, filepath.Join(dir, "templates", "act.docx"), s.TemplatePath(s.Templates[0]))
	assert.Equal(t, "/srv/pdf", s.PDFDir)
	assert.Equal(t, filepath.Join(dir, "history.db"), s.HistoryPath)
	assert.Equal(t, filepath.Join(dir, "logs", "docfill.log"), s.LogFilePath())
	assert.Equal(t, path, s.Path())

	// Defaults fill what the file leaves out.
	assert.Equal(t, []string{"рубль", "рубля", "рублей"}, s.CurrencyPluralize)
	assert.Equal(t, ".mdf", s.IntermediateMarker)
	assert.Equal(t, ConverterLibreOffice, s.Converter.Kind)

	require.NoError(t, s.Validate())
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	path := writeSettings(t, sampleSettings)
	t.Setenv("DOCFILL_PDF_DIR", "out")
	t.Setenv("DOCFILL_DATE_YEAR_MAX", "2030")
	t.Setenv("DOCFILL_LOG_TO_FILE", "false")

	s, err := Load(path, "")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(filepath.Dir(path), "out"), s.PDFDir)
	assert.Equal(t, 2030, s.DateYearMax)
	assert.Equal(t, "", s.LogFilePath())
}

func TestLoad_DotEnv(t *testing.T) {
	path := writeSettings(t, sampleSettings)
	envPath := filepath.Join(filepath.Dir(path), "custom.env")
	require.NoError(t, os.WriteFile(envPath, []byte("DOCFILL_DATA_NAME=people.csv\n"), 0o644))

	// godotenv sets the variable for the whole process; register it for cleanup.
	t.Setenv("DOCFILL_DATA_NAME", "")
	require.NoError(t, os.Unsetenv("DOCFILL_DATA_NAME"))

	s, err := Load(path, envPath)
	require.NoError(t, err)
	assert.Equal(t, "people.csv", s.DataName)

	_, err = Load(path, filepath.Join(filepath.Dir(path), "missing.env"))
	var cfgErr *docfill.ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "env", cfgErr.Setting)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), "")
	var cfgErr *docfill.ConfigurationError
	assert.True(t, errors.As(err, &cfgErr))

	_, err = Load(writeSettings(t, "templates: [unclosed"), "")
	assert.True(t, errors.As(err, &cfgErr))
}

func TestValidate(t *testing.T) {
	valid := func() *Settings {
		s := Default()
		s.Templates = []TemplateSettings{{Label: "Act", Name: "act.docx", Prefix: "A"}}
		return s
	}
	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(*Settings)
		field  string
	}{
		{"no templates", func(s *Settings) { s.Templates = nil }, "templates"},
		{"template without name", func(s *Settings) { s.Templates[0].Name = "" }, "templates[0]"},
		{"duplicate label", func(s *Settings) { s.Templates = append(s.Templates, s.Templates[0]) }, "templates[1]"},
		{"year range", func(s *Settings) { s.DateYearMin = 2030; s.DateYearMax = 2020 }, "date_year_min"},
		{"plural forms", func(s *Settings) { s.CurrencyPluralize = []string{"рубль"} }, "currency_pluralize"},
		{"converter kind", func(s *Settings) { s.Converter.Kind = "fax" }, "converter.kind"},
		{"command converter", func(s *Settings) { s.Converter.Kind = ConverterCommand }, "converter.command"},
		{"language", func(s *Settings) { s.Language = "de" }, "engine"},
		{"log level", func(s *Settings) { s.Logging.Level = "loud" }, "engine"},
		{"mask", func(s *Settings) { s.PDFNameMask = "" }, "pdf_name_mask"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid()
			tt.mutate(s)
			err := s.Validate()

			var verr *docfill.ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			var fields []string
			for _, issue := range verr.Issues {
				fields = append(fields, issue.Field)
			}
			assert.Contains(t, fields, tt.field)
		})
	}
}

func TestCheckPaths(t *testing.T) {
	dir := t.TempDir()
	s := Default()
	s.resolvePaths(dir)

	err := s.CheckPaths()
	require.Error(t, err)
	var cfgErr *docfill.ConfigurationError
	assert.True(t, errors.As(err, &cfgErr))

	for _, d := range []string{s.DataDir, s.TemplatesDir, s.PDFDir} {
		require.NoError(t, os.MkdirAll(d, 0o755))
	}
	require.NoError(t, os.WriteFile(s.DataPath(), []byte("EXECUTOR\n"), 0o644))
	assert.NoError(t, s.CheckPaths())
}
