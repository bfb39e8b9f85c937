package tune

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestValue(t *testing.T) {
	spec := mustParse(t, "geometry {\n  h 0 0 0\n}\n"+globalBasis+tune1D)
	v := spec.Value()

	require.True(t, v.Type().IsObjectType())
	assert.Equal(t, cty.StringVal("nwchem"), v.GetAttr("program"))
	assert.True(t, v.GetAttr("charge").IsNull())
	assert.True(t, v.GetAttr("ecp").IsNull())
	assert.Equal(t, 0, v.GetAttr("dft").LengthInt())

	basis := v.GetAttr("basis")
	assert.Equal(t, cty.StringVal("global"), basis.GetAttr("option"))
	assert.Equal(t, cty.ListVal([]cty.Value{cty.StringVal("* library 6-31g*")}), basis.GetAttr("entries"))

	geom := v.GetAttr("geometry")
	assert.Equal(t, cty.ListVal([]cty.Value{cty.StringVal("h 0 0 0")}), geom.GetAttr("lines"))
	assert.Equal(t, cty.ListValEmpty(cty.String), geom.GetAttr("options"))

	assert.Equal(t, cty.StringVal("coarse"), v.GetAttr("tune").Index(cty.StringVal("step")))
}

func TestValue_EmptySpecHasSameType(t *testing.T) {
	full := mustParse(t, "charge 0\ngeometry {\n  h 0 0 0\n}\n"+globalBasis+"ecp {\n  option global\n  x\n}\ndft {\n  a\n}\n"+tune1D)
	empty := mustParse(t, "")
	assert.True(t, full.Value().Type().Equals(empty.Value().Type()))
}

func TestMarshalJSON(t *testing.T) {
	spec := mustParse(t, "charge -1\n"+globalBasis+tune1D)

	out, err := json.Marshal(spec)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(out, &got))
	assert.Equal(t, "-1", got["charge"])
	assert.Equal(t, "nwchem", got["program"])
	assert.Nil(t, got["ecp"])
	assert.Nil(t, got["geometry"])
	assert.Equal(t, map[string]any{"dimension": "1", "alpha": "0.2", "step": "coarse"}, got["tune"])
	assert.Equal(t, map[string]any{
		"entries": []any{"* library 6-31g*"},
		"option":  "global",
	}, got["basis"])
}
