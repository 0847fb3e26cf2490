package docfill

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// RenderResult describes a successful render.
type RenderResult struct {
	Destination  string
	Intermediate string
	Stats        SubstituteStats
}

// Renderer fills a template and hands the filled copy to a Converter.
//
// A render runs COPY, SUBSTITUTE, CONVERT and CLEANUP in order:
//
//   - COPY duplicates the template next to itself under a unique
//     intermediate name
//   - SUBSTITUTE replaces tokens in the copy and saves it in place
//   - CONVERT asks the converter to produce the destination
//   - CLEANUP removes the intermediate copy on every path once it exists
//
// The render succeeds only if the destination exists after CONVERT, whatever
// the converter returned. There are no retries.
type Renderer struct {
	converter Converter
	logger    *Logger
	marker    string
	newID     func() string
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithLogger sets the logger.
func WithLogger(l *Logger) RendererOption {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithIntermediateMarker sets the marker placed after the template file name
// in intermediate copies.
func WithIntermediateMarker(marker string) RendererOption {
	return func(r *Renderer) {
		if marker != "" {
			r.marker = marker
		}
	}
}

// WithIDGenerator replaces the per-render unique suffix generator.
func WithIDGenerator(fn func() string) RendererOption {
	return func(r *Renderer) {
		if fn != nil {
			r.newID = fn
		}
	}
}

// NewRenderer creates a renderer using conv for the CONVERT step.
func NewRenderer(conv Converter, opts ...RendererOption) *Renderer {
	r := &Renderer{
		converter: conv,
		logger:    NopLogger(),
		marker:    DefaultConfig().IntermediateMarker,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// IntermediatePath returns a fresh intermediate path for templatePath:
// "<template><marker>-<id><ext>" in the template's directory.
func (r *Renderer) IntermediatePath(templatePath string) string {
	return templatePath + r.marker + "-" + r.newID() + filepath.Ext(templatePath)
}

// Render fills templatePath with repl and converts it to destination. Inputs
// are checked before anything is written. A *ConversionError is returned when
// the destination does not exist after conversion. If only the final cleanup
// fails, both the result and the error are returned.
func (r *Renderer) Render(ctx context.Context, templatePath, destination string, repl map[string]string) (result *RenderResult, err error) {
	if err := r.check(ctx, templatePath, destination); err != nil {
		return nil, err
	}

	log := r.logger.WithField("template", filepath.Base(templatePath))
	intermediate := r.IntermediatePath(templatePath)

	// COPY
	if err := copyFile(templatePath, intermediate); err != nil {
		_ = removeIfExists(intermediate)
		return nil, NewDocumentError("copy", templatePath, err)
	}
	log.Debug("File %s created", intermediate)

	// CLEANUP
	defer func() {
		if rmErr := removeIfExists(intermediate); rmErr != nil {
			me := NewMultiError()
			me.Add(err)
			me.Add(NewDocumentError("cleanup", intermediate, rmErr))
			err = me.Err()
			return
		}
		log.Debug("File %s deleted", intermediate)
	}()

	// SUBSTITUTE
	log.Debug("Start words replace in document")
	doc, err := OpenDocument(intermediate)
	if err != nil {
		return nil, err
	}
	sub := NewSubstituter(repl)
	sub.SetLogger(log)
	stats := sub.Apply(doc.Body())
	if err := doc.Save(intermediate); err != nil {
		return nil, err
	}
	log.Debug("End words replace in document: %d replacements in %d runs", stats.Total(), stats.RunsChanged)

	// CONVERT
	if err := removeIfExists(destination); err != nil {
		return nil, NewDocumentError("remove stale output", destination, err)
	}
	log.Debug("Start document convert")
	convErr := r.converter.Convert(ctx, intermediate, destination)
	if convErr != nil {
		log.Warn("Converter reported an error: %v", convErr)
	}
	log.Debug("End document convert")

	if !fileExists(destination) {
		return nil, &ConversionError{Destination: destination, Cause: convErr}
	}

	log.Info("Document converted to %s", destination)
	return &RenderResult{
		Destination:  destination,
		Intermediate: intermediate,
		Stats:        stats,
	}, nil
}

func (r *Renderer) check(ctx context.Context, templatePath, destination string) error {
	if r.converter == nil {
		return NewConfigurationError("converter", "no converter configured", nil)
	}
	if templatePath == "" {
		return NewConfigurationError("template", "path is empty", nil)
	}
	if destination == "" {
		return NewConfigurationError("destination", "path is empty", nil)
	}
	info, err := os.Stat(templatePath)
	if err != nil {
		return NewConfigurationError("template", "template not found", err)
	}
	if info.IsDir() {
		return NewConfigurationError("template", "template is a directory", nil)
	}
	return ctx.Err()
}

func removeIfExists(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
