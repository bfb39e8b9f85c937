package tune

import (
	"io"
	"slices"
	"strings"
)

const indent = "    "

// Format renders s in the input file grammar. Parsing the output again
// yields the same charge, options, block lines and tune parameters.
func (s *Spec) Format() []byte {
	var b strings.Builder
	sep := func() {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
	}

	if s.Charge != "" {
		b.WriteString(keywordCharge + " " + s.Charge + "\n")
	}
	if g := s.Geometry; g != nil {
		sep()
		var opts []string
		if len(g.Options) > 0 {
			opts = []string{keywordOption + " " + strings.Join(g.Options, " ")}
		}
		writeBlock(&b, keywordGeometry, opts, g.Lines)
	}
	for _, blk := range []struct {
		name  string
		block *BasisBlock
	}{{keywordBasis, s.Basis}, {keywordECP, s.ECP}} {
		if blk.block == nil {
			continue
		}
		sep()
		var opts []string
		if blk.block.Option != OptionUnset {
			opts = []string{keywordOption + " " + string(blk.block.Option)}
		}
		writeBlock(&b, blk.name, opts, blk.block.Entries)
	}
	if len(s.DFT) > 0 {
		sep()
		writeBlock(&b, keywordDFT, nil, s.DFT)
	}
	if s.Tune != nil {
		sep()
		keys := make([]string, 0, len(s.Tune.Params))
		for k := range s.Tune.Params {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		lines := make([]string, 0, len(keys))
		for _, k := range keys {
			lines = append(lines, k+" "+s.Tune.Params[k])
		}
		writeBlock(&b, keywordTune, nil, lines)
	}
	return []byte(b.String())
}

func writeBlock(b *strings.Builder, name string, head, lines []string) {
	b.WriteString(name + " {\n")
	for _, l := range head {
		b.WriteString(indent + l + "\n")
	}
	for _, l := range lines {
		b.WriteString(indent + l + "\n")
	}
	b.WriteString("}\n")
}

// WriteTo writes the Format output of s to w.
func (s *Spec) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(s.Format())
	return int64(n), err
}
