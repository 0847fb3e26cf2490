package docfill

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Converter turns the filled intermediate document into the final output. The
// pipeline only trusts the existence of output afterwards; the returned error
// is informational.
type Converter interface {
	Convert(ctx context.Context, input, output string) error
}

// ConverterFunc adapts a function to Converter.
type ConverterFunc func(ctx context.Context, input, output string) error

// Convert calls f(ctx, input, output).
func (f ConverterFunc) Convert(ctx context.Context, input, output string) error {
	return f(ctx, input, output)
}

// CopyConverter emits the filled DOCX itself as the output.
type CopyConverter struct{}

// Convert copies input to output.
func (CopyConverter) Convert(_ context.Context, input, output string) error {
	return copyFile(input, output)
}

// CommandConverter runs an external command. The placeholders {input},
// {output} and {outdir} in Args are expanded per call. The command's
// stdout and stderr are discarded.
type CommandConverter struct {
	Command string
	Args    []string
}

// Convert runs the command and waits for it to exit.
func (c *CommandConverter) Convert(ctx context.Context, input, output string) error {
	replacer := strings.NewReplacer(
		"{input}", input,
		"{output}", output,
		"{outdir}", filepath.Dir(output),
	)
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = replacer.Replace(a)
	}
	return runSilently(ctx, c.Command, args...)
}

// LibreOfficeConverter converts with soffice in headless mode. LibreOffice
// names its output after the input file, so conversion happens in a private
// directory and the result is moved to the requested output path.
type LibreOfficeConverter struct {
	Binary string
	// Format is the target filter extension, "pdf" when empty.
	Format string
}

// NewLibreOfficeConverter creates a PDF converter using binary.
func NewLibreOfficeConverter(binary string) *LibreOfficeConverter {
	return &LibreOfficeConverter{Binary: binary, Format: "pdf"}
}

// Convert runs soffice --headless --convert-to and moves the produced file.
func (c *LibreOfficeConverter) Convert(ctx context.Context, input, output string) error {
	format := c.Format
	if format == "" {
		format = "pdf"
	}

	outDir, err := os.MkdirTemp(filepath.Dir(output), ".docfill-convert-")
	if err != nil {
		return fmt.Errorf("failed to create conversion directory: %w", err)
	}
	defer os.RemoveAll(outDir)

	if err := runSilently(ctx, c.Binary, "--headless", "--convert-to", format, "--outdir", outDir, input); err != nil {
		return fmt.Errorf("%s failed: %w", c.Binary, err)
	}

	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	produced := filepath.Join(outDir, base+"."+format)
	if err := os.Rename(produced, output); err != nil {
		return fmt.Errorf("failed to move converted file: %w", err)
	}
	return nil
}

func runSilently(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard
	return cmd.Run()
}

func copyFile(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()

	_, err = io.Copy(out, in)
	return err
}
