// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file implements the checks that run once a whole file has been
// parsed. They look across blocks (basis against its option, tune keys
// against the dimension) and so cannot be made while reading lines.
package tune

import (
	"slices"

	"github.com/hashicorp/hcl/v2"
)

// Accepted tune dimensions and the steps each one allows.
var (
	dimensions = []string{"1", "2"}
	stepsByDim = map[string][]string{
		"1": {"base", "coarse", "fine"},
		"2": {"base", "coarse"},
	}
)

// Validate checks the cross-field rules of s in a fixed order and returns
// the first rule broken as a *Error. Findings that do not stop the job are
// returned as warning diagnostics; s is never modified.
func Validate(s *Spec) (hcl.Diagnostics, error) {
	if err := validateBasis(s); err != nil {
		return nil, err
	}
	return validateTune(s)
}

func validateBasis(s *Spec) error {
	if s.Basis == nil {
		return &Error{Kind: KindMissingBasis, Filename: s.Filename}
	}
	if s.Basis.Option == OptionUnset {
		return &Error{Kind: KindMissingBasisOption, Filename: s.Filename, Block: keywordBasis, Subject: s.Basis.DefRange.Ptr()}
	}
	if s.Basis.Option == OptionGlobal && len(s.Basis.EffectiveEntries()) != 1 {
		return &Error{Kind: KindBasisCardinality, Filename: s.Filename, Block: keywordBasis, Subject: s.Basis.DefRange.Ptr()}
	}
	if s.ECP != nil && s.ECP.Option == OptionGlobal && len(s.ECP.EffectiveEntries()) != 1 {
		return &Error{Kind: KindECPCardinality, Filename: s.Filename, Block: keywordECP, Subject: s.ECP.DefRange.Ptr()}
	}
	return nil
}

func validateTune(s *Spec) (hcl.Diagnostics, error) {
	tb := s.Tune
	if tb == nil || len(tb.Params) == 0 {
		e := &Error{Kind: KindMissingTune, Filename: s.Filename}
		if tb != nil {
			e.Subject = tb.DefRange.Ptr()
		}
		return nil, e
	}

	dim, ok := tb.Get(KeyDimension)
	if !ok || !slices.Contains(dimensions, dim) {
		return nil, &Error{
			Kind:     KindInvalidDimension,
			Filename: s.Filename,
			Block:    keywordTune,
			Value:    dim,
			Want:     dimensions,
			Subject:  tb.rangeOf(KeyDimension),
		}
	}

	var diags hcl.Diagnostics
	_, hasAlpha := tb.Get(KeyAlpha)
	switch {
	case dim == "1" && !hasAlpha:
		return nil, &Error{Kind: KindMissingAlpha, Filename: s.Filename, Block: keywordTune, Subject: tb.DefRange.Ptr()}
	case dim == "2" && hasAlpha:
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagWarning,
			Summary:  "Tune warning",
			Detail:   "2D tuning detected, ignoring alpha value",
			Subject:  tb.rangeOf(KeyAlpha),
		})
	}

	step, ok := tb.Get(KeyStep)
	if !ok {
		return diags, &Error{Kind: KindMissingStep, Filename: s.Filename, Block: keywordTune, Subject: tb.DefRange.Ptr()}
	}
	if allowed := stepsByDim[dim]; !slices.Contains(allowed, step) {
		return diags, &Error{
			Kind:     KindInvalidStep,
			Filename: s.Filename,
			Block:    keywordTune,
			Value:    step,
			Want:     allowed,
			Subject:  tb.rangeOf(KeyStep),
		}
	}
	return diags, nil
}
