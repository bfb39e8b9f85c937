// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines Spec, the in-memory form of a tuning input file, and the
// typed records for each of its blocks.
//
// Block records keep the range of their opening line (DefRange) so that a
// validation failure found long after parsing can still point the user back
// to the block it concerns.
package tune

import (
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
)

// Program is the quantum chemistry program a tuning input targets.
type Program int

const (
	ProgramUnknown Program = iota
	NWChem
	Gaussian
)

// Recognised input file extensions.
const (
	ExtNWChem   = ".tune-nw"
	ExtGaussian = ".tune-g09"
)

func (p Program) String() string {
	switch p {
	case NWChem:
		return "nwchem"
	case Gaussian:
		return "gaussian"
	default:
		return "unknown"
	}
}

// Extensions returns the file extensions accepted by ProgramFromPath.
func Extensions() []string {
	return []string{ExtNWChem, ExtGaussian}
}

// ProgramFromPath derives the target program from the extension of path.
func ProgramFromPath(path string) (Program, error) {
	switch ext := filepath.Ext(path); ext {
	case ExtNWChem:
		return NWChem, nil
	case ExtGaussian:
		return Gaussian, nil
	default:
		return ProgramUnknown, &Error{Kind: KindFileExtension, Filename: path, Value: ext}
	}
}

// Option is the mode of a basis or ecp block.
type Option string

const (
	OptionUnset    Option = ""
	OptionGlobal   Option = "global"
	OptionSpecific Option = "specific"
	OptionGeneric  Option = "generic"
)

// Valid reports whether o is one of global, specific or generic.
func (o Option) Valid() bool {
	switch o {
	case OptionGlobal, OptionSpecific, OptionGeneric:
		return true
	}
	return false
}

// Spec is a parsed tuning input file.
type Spec struct {
	Program  Program
	Filename string
	// Name is the input path with its extension removed.
	Name string
	// Charge is the literal charge token, empty when no charge line was given.
	Charge string

	Geometry *GeometryBlock
	Basis    *BasisBlock
	ECP      *BasisBlock
	DFT      []string
	Tune     *TuneBlock
}

// GeometryBlock holds the atom lines of a geometry block.
type GeometryBlock struct {
	// Lines are "<element> <x> <y> <z> ..." lines in file order.
	Lines []string
	// Options are the values of the last "option" directive in the block.
	Options  []string
	DefRange hcl.Range
}

// BasisBlock is the shape shared by the basis and ecp blocks.
type BasisBlock struct {
	// Entries are the block's lines in file order, including lines that
	// start with '#'.
	Entries  []string
	Option   Option
	DefRange hcl.Range
}

// EffectiveEntries returns the entries that do not start with '#'.
func (b *BasisBlock) EffectiveEntries() []string {
	var out []string
	for _, e := range b.Entries {
		if !strings.HasPrefix(e, "#") {
			out = append(out, e)
		}
	}
	return out
}

// TuneBlock holds the key/value parameters of every tune block in the file.
type TuneBlock struct {
	Params map[string]string
	// Ranges maps each key to the line that last set it.
	Ranges   map[string]hcl.Range
	DefRange hcl.Range
}

// Get returns the value for key and whether it was set.
func (t *TuneBlock) Get(key string) (string, bool) {
	if t == nil {
		return "", false
	}
	v, ok := t.Params[key]
	return v, ok
}

func (t *TuneBlock) rangeOf(key string) *hcl.Range {
	if r, ok := t.Ranges[key]; ok {
		return r.Ptr()
	}
	return t.DefRange.Ptr()
}

// Tune parameter keys the validator knows about.
const (
	KeyDimension = "dimension"
	KeyAlpha     = "alpha"
	KeyStep      = "step"
)

// Dimension returns the tune dimension, empty when unset.
func (s *Spec) Dimension() string {
	v, _ := s.Tune.Get(KeyDimension)
	return v
}

// Step returns the tune step, empty when unset.
func (s *Spec) Step() string {
	v, _ := s.Tune.Get(KeyStep)
	return v
}

// Alpha returns the tune alpha and whether it was given.
func (s *Spec) Alpha() (string, bool) {
	return s.Tune.Get(KeyAlpha)
}
