package app

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/tuneit/internal/ctxlog"
	"github.com/specialistvlad/tuneit/internal/fsutil"
	"github.com/specialistvlad/tuneit/internal/tune"
)

// diagnosticWidth is the column at which diagnostic details are wrapped.
const diagnosticWidth = 78

// Run loads and validates every input named by the configuration. It stops
// at the first file that fails.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "input", a.config.InputPath)
	a.specs = nil

	paths, err := fsutil.ResolvePaths(a.config.InputPath, tune.Extensions()...)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no %s or %s files found in %s", tune.ExtNWChem, tune.ExtGaussian, a.config.InputPath)
	}
	a.logger.Debug("Input files resolved.", "count", len(paths))

	for _, path := range paths {
		spec, diags, err := a.loader.Load(ctx, path)
		if len(diags) > 0 {
			a.writeDiagnostics(diags)
		}
		if err != nil {
			return fmt.Errorf("invalid tuning input: %w", err)
		}

		a.logger.Info("Tuning input is valid.",
			"path", path,
			"program", spec.Program.String(),
			"dimension", spec.Dimension(),
			"step", spec.Step(),
		)
		if a.config.Dump {
			out, err := spec.MarshalJSON()
			if err != nil {
				return fmt.Errorf("failed to encode %s: %w", path, err)
			}
			fmt.Fprintln(a.outW, string(out))
		}
		a.specs = append(a.specs, spec)
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

func (a *App) writeDiagnostics(diags hcl.Diagnostics) {
	wr := hcl.NewDiagnosticTextWriter(a.outW, a.loader.Files(), diagnosticWidth, false)
	if err := wr.WriteDiagnostics(diags); err != nil {
		a.logger.Error("Failed to write diagnostics.", "error", err)
	}
}
