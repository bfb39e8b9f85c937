package tune

import (
	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

var (
	geometryType = cty.Object(map[string]cty.Type{
		"lines":   cty.List(cty.String),
		"options": cty.List(cty.String),
	})
	basisType = cty.Object(map[string]cty.Type{
		"entries": cty.List(cty.String),
		"option":  cty.String,
	})
)

// Value converts s into a cty object so job generators can consume it
// without depending on this package's Go types. Absent blocks are null.
func (s *Spec) Value() cty.Value {
	attrs := map[string]cty.Value{
		"program":  cty.StringVal(s.Program.String()),
		"name":     cty.StringVal(s.Name),
		"charge":   nullableString(s.Charge),
		"geometry": cty.NullVal(geometryType),
		"basis":    basisValue(s.Basis),
		"ecp":      basisValue(s.ECP),
		"dft":      stringList(s.DFT),
		"tune":     cty.MapValEmpty(cty.String),
	}
	if g := s.Geometry; g != nil {
		attrs["geometry"] = cty.ObjectVal(map[string]cty.Value{
			"lines":   stringList(g.Lines),
			"options": stringList(g.Options),
		})
	}
	if s.Tune != nil && len(s.Tune.Params) > 0 {
		params := make(map[string]cty.Value, len(s.Tune.Params))
		for k, v := range s.Tune.Params {
			params[k] = cty.StringVal(v)
		}
		attrs["tune"] = cty.MapVal(params)
	}
	return cty.ObjectVal(attrs)
}

// MarshalJSON encodes s through its cty Value.
func (s *Spec) MarshalJSON() ([]byte, error) {
	v := s.Value()
	return ctyjson.Marshal(v, v.Type())
}

func basisValue(b *BasisBlock) cty.Value {
	if b == nil {
		return cty.NullVal(basisType)
	}
	return cty.ObjectVal(map[string]cty.Value{
		"entries": stringList(b.Entries),
		"option":  nullableString(string(b.Option)),
	})
}

func stringList(ss []string) cty.Value {
	if len(ss) == 0 {
		return cty.ListValEmpty(cty.String)
	}
	vals := make([]cty.Value, len(ss))
	for i, s := range ss {
		vals[i] = cty.StringVal(s)
	}
	return cty.ListVal(vals)
}

func nullableString(s string) cty.Value {
	if s == "" {
		return cty.NullVal(cty.String)
	}
	return cty.StringVal(s)
}
