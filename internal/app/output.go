package app

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/benjaminschreck/go-docfill/internal/config"
	"github.com/benjaminschreck/go-docfill/pkg/docfill"
)

const (
	fieldProjectName    = "PROJECT_NAME"
	fieldProjectVersion = "PROJECT_VERSION"
)

var maskField = regexp.MustCompile(`\{([^{}]*)\}`)

// OutputName expands the output file name mask. {FIELD} placeholders are
// looked up in repl and in PROJECT_NAME and PROJECT_VERSION. An unknown
// placeholder or a name with a directory part is a ConfigurationError. When
// the copy converter is configured the extension becomes .docx.
func (a *App) OutputName(repl map[string]string) (string, error) {
	values := docfill.Replacements{
		fieldProjectName:    a.settings.ProjectName,
		fieldProjectVersion: a.settings.ProjectVersion,
	}
	values.Merge(repl)

	var unknown []string
	name := maskField.ReplaceAllStringFunc(a.settings.PDFNameMask, func(m string) string {
		key := m[1 : len(m)-1]
		v, ok := values[key]
		if !ok {
			unknown = append(unknown, key)
			return m
		}
		return v
	})

	if len(unknown) > 0 {
		return "", docfill.NewConfigurationError("pdf_name_mask",
			fmt.Sprintf("unknown field %s", strings.Join(unknown, ", ")), nil)
	}
	if name == "" || strings.ContainsAny(name, `/\`) {
		return "", docfill.NewConfigurationError("pdf_name_mask",
			fmt.Sprintf("%q is not a file name", name), nil)
	}

	if a.settings.Converter.Kind == config.ConverterCopy {
		name = strings.TrimSuffix(name, filepath.Ext(name)) + ".docx"
	}
	return name, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
