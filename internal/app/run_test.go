package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/tuneit/internal/tune"
)

const validInput = `basis {
  option specific
  h library sto-3g
}
tune {
  dimension 1
  alpha 0.3
  step base
}
`

func TestRun_Valid(t *testing.T) {
	path := WriteInput(t, "h2.tune-g09", validInput)
	a, out := SetupAppTest(t, &Config{InputPath: path})

	require.NoError(t, a.Run(context.Background()))
	require.Len(t, a.Specs(), 1)
	assert.Equal(t, tune.Gaussian, a.Specs()[0].Program)
	assert.Contains(t, out.String(), "Tuning input is valid.")
	assert.Contains(t, out.String(), "step=base")
}

func TestRun_Dump(t *testing.T) {
	path := WriteInput(t, "h2.tune-nw", validInput)
	a, out := SetupAppTest(t, &Config{InputPath: path, LogLevel: "error", Dump: true})

	require.NoError(t, a.Run(context.Background()))
	assert.JSONEq(t, `{
		"program": "nwchem",
		"name": "`+filepath.Join(filepath.Dir(path), "h2")+`",
		"charge": null,
		"geometry": null,
		"basis": {"option": "specific", "entries": ["h library sto-3g"]},
		"ecp": null,
		"dft": [],
		"tune": {"dimension": "1", "alpha": "0.3", "step": "base"}
	}`, out.String())
}

func TestRun_InvalidWritesDiagnostic(t *testing.T) {
	path := WriteInput(t, "h2.tune-nw", "basis {\n  h library sto-3g\n}\n")
	a, out := SetupAppTest(t, &Config{InputPath: path})

	err := a.Run(context.Background())
	require.ErrorIs(t, err, tune.KindMissingBasisOption)
	assert.Contains(t, err.Error(), "invalid tuning input")
	assert.Contains(t, out.String(), "Error: Basis error")
	assert.Contains(t, out.String(), "on "+path+" line 1")
	assert.Empty(t, a.Specs())
}

func TestRun_NoInputs(t *testing.T) {
	a, _ := SetupAppTest(t, &Config{InputPath: t.TempDir()})
	require.ErrorContains(t, a.Run(context.Background()), "no .tune-nw or .tune-g09 files found")
}

func TestRun_StopsAtFirstFailure(t *testing.T) {
	dir := t.TempDir()
	for name, content := range map[string]string{
		"a.tune-nw": "charge\n",
		"b.tune-nw": validInput,
	} {
		WriteInputAt(t, filepath.Join(dir, name), content)
	}
	a, _ := SetupAppTest(t, &Config{InputPath: dir})

	require.ErrorIs(t, a.Run(context.Background()), tune.KindChargeFormat)
	assert.Empty(t, a.Specs())
}
