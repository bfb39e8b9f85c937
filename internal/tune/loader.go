package tune

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/tuneit/internal/ctxlog"
)

// Loader reads tuning input files from disk and keeps their contents so
// diagnostics can later be rendered with source snippets.
type Loader struct {
	files map[string]*hcl.File
}

// NewLoader returns an empty Loader.
func NewLoader() *Loader {
	return &Loader{files: map[string]*hcl.File{}}
}

// Files returns the sources read so far, keyed by path, in the form
// hcl.NewDiagnosticTextWriter expects.
func (l *Loader) Files() map[string]*hcl.File {
	return l.files
}

// Load parses and validates the file at path. The returned diagnostics hold
// any warnings and, when err is a *Error, the failure itself.
func (l *Loader) Load(ctx context.Context, path string) (*Spec, hcl.Diagnostics, error) {
	logger := ctxlog.FromContext(ctx)

	if _, err := ProgramFromPath(path); err != nil {
		return nil, diagnosticsFor(nil, err), err
	}

	src, err := readSource(path)
	if err != nil {
		return nil, nil, err
	}
	l.files[path] = &hcl.File{Bytes: src}
	logger.Debug("Tuning input read.", "path", path, "bytes", len(src))

	spec, err := Parse(ctx, path, src)
	if err != nil {
		return nil, diagnosticsFor(nil, err), err
	}

	diags, err := Validate(spec)
	for _, d := range diags {
		logger.Warn(d.Summary+": "+d.Detail, "path", path)
	}
	if err != nil {
		return nil, diagnosticsFor(diags, err), err
	}

	logger.Debug("Tuning input validated.", "path", path, "program", spec.Program.String(),
		"dimension", spec.Dimension(), "step", spec.Step())
	return spec, diags, nil
}

// readSource reads the whole file; the handle is closed on every path.
func readSource(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open tuning input: %w", err)
	}
	defer f.Close()

	src, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read tuning input %s: %w", path, err)
	}
	return src, nil
}

func diagnosticsFor(diags hcl.Diagnostics, err error) hcl.Diagnostics {
	var te *Error
	if errors.As(err, &te) {
		return append(diags, te.Diagnostic())
	}
	return diags
}

// ParseAndValidate reads, parses and validates the tuning input at path.
// Warnings are logged through the context logger.
func ParseAndValidate(ctx context.Context, path string) (*Spec, error) {
	spec, _, err := NewLoader().Load(ctx, path)
	return spec, err
}
