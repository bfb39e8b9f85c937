package tune

import (
	"strings"
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	globalBasis = "basis {\n  option global\n  * library 6-31g*\n}\n"
	tune1D      = "tune {\n  dimension 1\n  alpha 0.2\n  step coarse\n}\n"
)

func tuneBlock(lines ...string) string {
	return "tune {\n  " + strings.Join(lines, "\n  ") + "\n}\n"
}

func validateString(t *testing.T, src string) (*Spec, hcl.Diagnostics, error) {
	t.Helper()
	spec := mustParse(t, src)
	diags, err := Validate(spec)
	return spec, diags, err
}

func TestValidate_Accepts(t *testing.T) {
	testCases := []struct {
		name string
		src  string
	}{
		{"global basis with 1D tune", globalBasis + tune1D},
		{"global basis with comments alongside", "basis {\n  option global\n  # a\n  * library 6-31g*\n  #b\n}\n" + tune1D},
		{"specific basis with many lines", "basis {\n  option specific\n  h library sto-3g\n  o library 6-31g\n}\n" + tune1D},
		{"generic basis with no lines", "basis {\n  option generic\n}\n" + tune1D},
		{"global ecp with one line", globalBasis + "ecp {\n  option global\n  * library lanl2dz\n}\n" + tune1D},
		{"ecp without option", globalBasis + "ecp {\n  a\n  b\n}\n" + tune1D},
		{"1D fine", globalBasis + tuneBlock("dimension 1", "alpha 0.1", "step fine")},
		{"1D base", globalBasis + tuneBlock("dimension 1", "alpha 0.1", "step base")},
		{"2D coarse", globalBasis + tuneBlock("dimension 2", "step coarse")},
		{"2D base", globalBasis + tuneBlock("dimension 2", "step base")},
		{"unknown tune keys are kept", globalBasis + tuneBlock("dimension 2", "step base", "gamma 0.3")},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, diags, err := validateString(t, tc.src)
			require.NoError(t, err)
			assert.Empty(t, diags)
		})
	}
}

func TestValidate_Rejects(t *testing.T) {
	testCases := []struct {
		name string
		src  string
		kind Kind
	}{
		{"no basis block", tune1D, KindMissingBasis},
		{"no basis block and no tune", "charge 0\ndft {\n  xc b3lyp\n}\n", KindMissingBasis},
		{"no basis block with ecp", "ecp {\n  option global\n  x\n}\n" + tune1D, KindMissingBasis},
		{"basis without option", "basis {\n  * library 6-31g*\n}\n" + tune1D, KindMissingBasisOption},
		{"global basis with two lines", "basis {\n  option global\n  * library 6-31g*\n  h library sto-3g\n}\n" + tune1D, KindBasisCardinality},
		{"global basis with only comments", "basis {\n  option global\n  # * library 6-31g*\n}\n" + tune1D, KindBasisCardinality},
		{"global ecp with two lines", globalBasis + "ecp {\n  option global\n  a\n  b\n}\n" + tune1D, KindECPCardinality},
		{"global ecp with none", globalBasis + "ecp {\n  option global\n}\n" + tune1D, KindECPCardinality},
		{"no tune block", globalBasis, KindMissingTune},
		{"empty tune block", globalBasis + "tune {\n}\n", KindMissingTune},
		{"no dimension", globalBasis + tuneBlock("alpha 0.2", "step base"), KindInvalidDimension},
		{"dimension 3", globalBasis + tuneBlock("dimension 3", "alpha 0.2", "step base"), KindInvalidDimension},
		{"dimension 1 without alpha", globalBasis + tuneBlock("dimension 1", "step base"), KindMissingAlpha},
		{"no step", globalBasis + tuneBlock("dimension 1", "alpha 0.2"), KindMissingStep},
		{"1D unknown step", globalBasis + tuneBlock("dimension 1", "alpha 0.2", "step medium"), KindInvalidStep},
		{"2D fine", globalBasis + tuneBlock("dimension 2", "step fine"), KindInvalidStep},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := validateString(t, tc.src)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.kind)
			assert.Contains(t, err.Error(), "job.tune-nw")
		})
	}
}

func TestValidate_GlobalBasisCardinality(t *testing.T) {
	// --- Arrange ---
	lines := []string{"* library 6-31g*"}
	build := func(lines []string) string {
		return "basis {\n  option global\n  " + strings.Join(lines, "\n  ") + "\n}\n" + tune1D
	}

	// --- Act / Assert ---
	_, _, err := validateString(t, build(lines))
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		lines = append(lines, "# commented alternative")
		_, _, err = validateString(t, build(lines))
		require.NoError(t, err, "comment lines must not count")
	}

	lines = append(lines, "h library sto-3g")
	_, _, err = validateString(t, build(lines))
	assert.ErrorIs(t, err, KindBasisCardinality)
}

func TestValidate_TwoDimensionalAlphaWarns(t *testing.T) {
	spec, diags, err := validateString(t, globalBasis+tuneBlock("dimension 2", "alpha 0.4", "step coarse"))
	require.NoError(t, err)
	require.Len(t, diags, 1)

	d := diags[0]
	assert.Equal(t, hcl.DiagWarning, d.Severity)
	assert.Contains(t, d.Detail, "ignoring alpha")
	require.NotNil(t, d.Subject)
	assert.Equal(t, 7, d.Subject.Start.Line)

	alpha, ok := spec.Alpha()
	assert.True(t, ok, "alpha is kept")
	assert.Equal(t, "0.4", alpha)
}

func TestValidate_WarningKeptWhenStepFails(t *testing.T) {
	_, diags, err := validateString(t, globalBasis+tuneBlock("dimension 2", "alpha 0.4", "step fine"))
	assert.ErrorIs(t, err, KindInvalidStep)
	require.Len(t, diags, 1)
	assert.Equal(t, hcl.DiagWarning, diags[0].Severity)
}

func TestValidate_FirstFailureWins(t *testing.T) {
	// Broken basis cardinality and a broken tune block: basis is checked first.
	src := "basis {\n  option global\n  a\n  b\n}\n" + tuneBlock("dimension 9")
	_, _, err := validateString(t, src)
	assert.ErrorIs(t, err, KindBasisCardinality)
	assert.NotErrorIs(t, err, KindInvalidDimension)
}

func TestValidate_ErrorDetails(t *testing.T) {
	t.Run("invalid step lists allowed values", func(t *testing.T) {
		_, _, err := validateString(t, globalBasis+tuneBlock("dimension 2", "step fine"))
		var te *Error
		require.ErrorAs(t, err, &te)
		assert.Equal(t, "fine", te.Value)
		assert.Equal(t, []string{"base", "coarse"}, te.Want)
		require.NotNil(t, te.Subject)
		assert.Equal(t, 7, te.Subject.Start.Line)
	})

	t.Run("cardinality points at the block", func(t *testing.T) {
		_, _, err := validateString(t, "\nbasis {\n  option global\n}\n"+tune1D)
		var te *Error
		require.ErrorAs(t, err, &te)
		require.NotNil(t, te.Subject)
		assert.Equal(t, 2, te.Subject.Start.Line)
	})

	t.Run("invalid dimension carries the value", func(t *testing.T) {
		_, _, err := validateString(t, globalBasis+tuneBlock("dimension 3"))
		var te *Error
		require.ErrorAs(t, err, &te)
		assert.Equal(t, "3", te.Value)
		assert.Contains(t, te.Error(), `got "3"`)
	})
}

func TestValidate_DoesNotModifySpec(t *testing.T) {
	spec := mustParse(t, globalBasis+tuneBlock("dimension 2", "alpha 0.4", "step base"))
	before := string(spec.Format())
	_, err := Validate(spec)
	require.NoError(t, err)
	assert.Equal(t, before, string(spec.Format()))
}
