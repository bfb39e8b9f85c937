// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the closed set of failures the parser and validator can
// report. Every failure is a *Error carrying a Kind, so callers branch on
// errors.Is(err, KindMissingAlpha) instead of matching message text.
package tune

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
)

// Kind discriminates the failures reported by Parse and Validate.
type Kind int

// Parse-time kinds come first, validation kinds after.
const (
	KindFileExtension Kind = iota
	KindUnterminatedBlock
	KindChargeFormat
	KindGeometryOption
	KindGeometryVector
	KindBasisOption
	KindBasisOptionValue
	KindECPOption
	KindECPOptionValue
	KindTuneEntry
	KindMissingBasis
	KindMissingBasisOption
	KindBasisCardinality
	KindECPCardinality
	KindMissingTune
	KindInvalidDimension
	KindMissingAlpha
	KindMissingStep
	KindInvalidStep
	numKinds
)

func (k Kind) String() string {
	if k < 0 || k >= numKinds {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return [...]string{
		"FileExtensionError",
		"UnterminatedBlockError",
		"ChargeFormatError",
		"GeometryOptionError",
		"GeometryVectorError",
		"BasisOptionError",
		"BasisOptionValueError",
		"ECPOptionError",
		"ECPOptionValueError",
		"TuneEntryError",
		"MissingBasisError",
		"MissingBasisOptionError",
		"BasisCardinalityError",
		"ECPCardinalityError",
		"MissingTuneError",
		"InvalidDimensionError",
		"MissingAlphaError",
		"MissingStepError",
		"InvalidStepError",
	}[k]
}

// Error lets a Kind be used directly as an errors.Is target.
func (k Kind) Error() string {
	return k.String()
}

// Error is a single parse or validation failure.
type Error struct {
	Kind     Kind
	Filename string
	// Block is the enclosing block name ("basis", "tune", ...), empty at top level.
	Block string
	// Line is the 1-based source line, zero when the failure is not tied to one.
	Line int
	// Text is the offending line as the parser saw it (trimmed, lower-cased).
	Text string
	// Value is the offending token or key value, when there is one.
	Value string
	// Want lists the accepted values for Value, when the set is closed.
	Want []string
	// Subject is the source range to highlight, nil when there is none.
	Subject *hcl.Range
}

// Error formats the failure the way the command line prints it.
func (e *Error) Error() string {
	msg := e.summary() + ": " + e.detail()
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.Filename, e.Line, msg)
	}
	if e.Filename != "" {
		return e.Filename + ": " + msg
	}
	return msg
}

// Is reports whether target is this error's Kind.
func (e *Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.Kind
}

// Diagnostic converts the failure into an hcl diagnostic so it can be
// rendered with a source snippet.
func (e *Error) Diagnostic() *hcl.Diagnostic {
	return &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  e.summary(),
		Detail:   e.detail(),
		Subject:  e.Subject,
	}
}

func (e *Error) summary() string {
	switch e.Kind {
	case KindFileExtension:
		return "File name error"
	case KindUnterminatedBlock:
		return "Unterminated block"
	case KindChargeFormat:
		return "Charge keyword error"
	case KindGeometryOption, KindGeometryVector:
		return "Geometry block error"
	case KindBasisOption, KindBasisOptionValue:
		return "Basis block keyword error"
	case KindECPOption, KindECPOptionValue:
		return "ECP block keyword error"
	case KindTuneEntry:
		return "Tune block error"
	case KindMissingBasis, KindMissingBasisOption, KindBasisCardinality:
		return "Basis error"
	case KindECPCardinality:
		return "ECP error"
	default:
		return "Tune error"
	}
}

func (e *Error) detail() string {
	switch e.Kind {
	case KindFileExtension:
		return fmt.Sprintf("file extension should be %q or %q, got %q", ExtNWChem, ExtGaussian, e.Value)
	case KindUnterminatedBlock:
		return fmt.Sprintf("%q block opened on line %d is never closed with '}'", e.Block, e.Line)
	case KindChargeFormat:
		return fmt.Sprintf("expected \"charge <value>\", got %q", e.Text)
	case KindGeometryOption:
		return "the \"option\" keyword needs at least one value"
	case KindGeometryVector:
		return fmt.Sprintf("expected atomic vector on line -- %s", e.Text)
	case KindBasisOption, KindECPOption:
		return fmt.Sprintf("the \"option\" keyword takes exactly one of global, specific or generic, got %q", e.Text)
	case KindBasisOptionValue, KindECPOptionValue:
		return fmt.Sprintf("%s is not an available option, expected global, specific or generic", e.Value)
	case KindTuneEntry:
		return fmt.Sprintf("this block can only contain key value pairs, got %q", e.Text)
	case KindMissingBasis:
		return "can't tune a molecule without a basis set"
	case KindMissingBasisOption:
		return "the basis block needs an \"option\" of global, specific or generic"
	case KindBasisCardinality:
		return "the global basis option needs exactly one uncommented basis line"
	case KindECPCardinality:
		return "the global ecp option needs exactly one uncommented ecp line"
	case KindMissingTune:
		return "can't tune a molecule without a tune block"
	case KindInvalidDimension:
		if e.Value == "" {
			return "specify a dimension of 1 or 2"
		}
		return fmt.Sprintf("specify a dimension of 1 or 2, got %q", e.Value)
	case KindMissingAlpha:
		return "1D tuning requires an alpha value"
	case KindMissingStep:
		return "a step of base, coarse or fine is required"
	case KindInvalidStep:
		return fmt.Sprintf("invalid step %q, expected one of %s", e.Value, strings.Join(e.Want, ", "))
	default:
		return e.Kind.String()
	}
}
