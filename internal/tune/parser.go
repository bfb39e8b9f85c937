// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file implements the block parser for tuning input files.
//
// The grammar is line oriented. At the top level a line is blank, a '#'
// comment, a "charge <value>" directive, or the opener of a named block. A
// block runs until the first line whose first character is '}'; the rest of
// the opener line is not inspected. Which lines a block skips differs per
// block: basis and ecp keep '#' lines as entries so the validator can tell
// commented basis lines from effective ones.
package tune

import (
	"context"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/tuneit/internal/ctxlog"
)

// Block and directive keywords.
const (
	keywordCharge   = "charge"
	keywordGeometry = "geometry"
	keywordBasis    = "basis"
	keywordECP      = "ecp"
	keywordDFT      = "dft"
	keywordTune     = "tune"
	keywordOption   = "option"
)

var optionValues = []string{string(OptionGlobal), string(OptionSpecific), string(OptionGeneric)}

type parser struct {
	ctx      context.Context
	logger   *slog.Logger
	filename string
	cur      *cursor
	spec     *Spec
}

// Parse reads a tuning input from src. The program is taken from the
// extension of filename, which is checked before any line is read. Parse
// does not validate cross-field rules; see Validate.
func Parse(ctx context.Context, filename string, src []byte) (*Spec, error) {
	program, err := ProgramFromPath(filename)
	if err != nil {
		return nil, err
	}

	p := &parser{
		ctx:      ctx,
		logger:   ctxlog.FromContext(ctx),
		filename: filename,
		cur:      newCursor(filename, src),
		spec: &Spec{
			Program:  program,
			Filename: filename,
			Name:     strings.TrimSuffix(filename, filepath.Ext(filename)),
		},
	}
	if err := p.parse(); err != nil {
		return nil, err
	}
	return p.spec, nil
}

func (p *parser) parse() error {
	for {
		if err := p.ctx.Err(); err != nil {
			return err
		}
		l, ok := p.cur.next()
		if !ok {
			return nil
		}
		if l.blank() || l.comment() {
			continue
		}

		var err error
		switch keyword(l.Text) {
		case keywordCharge:
			err = p.parseCharge(l)
		case keywordGeometry:
			err = p.parseGeometry(l)
		case keywordBasis:
			p.spec.Basis, err = p.parseBasis(l, keywordBasis, KindBasisOption, KindBasisOptionValue)
		case keywordECP:
			p.spec.ECP, err = p.parseBasis(l, keywordECP, KindECPOption, KindECPOptionValue)
		case keywordDFT:
			err = p.parseDFT(l)
		case keywordTune:
			err = p.parseTune(l)
		default:
			p.logger.Debug("Ignoring unrecognised top-level line.", "file", p.filename, "line", l.Number, "text", l.Text)
		}
		if err != nil {
			return err
		}
	}
}

// keyword returns the first token of text, splitting on whitespace and '{'.
func keyword(text string) string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return unicode.IsSpace(r) || r == '{'
	})
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func (p *parser) parseCharge(l line) error {
	fields := strings.Fields(l.Text)
	if len(fields) != 2 {
		return p.errorAt(KindChargeFormat, "", l)
	}
	p.spec.Charge = fields[1]
	return nil
}

// readBlock passes every content line of the block opened by opener to
// handle and returns once the closing '}' line is consumed. Blank lines are
// always skipped; '#' lines only when skipComments is set.
func (p *parser) readBlock(opener line, name string, skipComments bool, handle func(line) error) error {
	p.logger.Debug("Block opened.", "file", p.filename, "block", name, "line", opener.Number)
	for {
		if err := p.ctx.Err(); err != nil {
			return err
		}
		l, ok := p.cur.next()
		switch {
		case !ok:
			return &Error{
				Kind:     KindUnterminatedBlock,
				Filename: p.filename,
				Block:    name,
				Line:     opener.Number,
				Text:     opener.Text,
				Subject:  opener.Range.Ptr(),
			}
		case l.blank(), skipComments && l.comment():
		case l.closes():
			p.logger.Debug("Block closed.", "file", p.filename, "block", name, "line", l.Number)
			return nil
		default:
			if err := handle(l); err != nil {
				return err
			}
		}
	}
}

func (p *parser) parseGeometry(opener line) error {
	geom := &GeometryBlock{DefRange: opener.Range}
	err := p.readBlock(opener, keywordGeometry, true, func(l line) error {
		fields := strings.Fields(l.Text)
		if fields[0] == keywordOption {
			if len(fields) < 2 {
				return p.errorAt(KindGeometryOption, keywordGeometry, l)
			}
			geom.Options = fields[1:]
			return nil
		}
		if len(fields) < 4 {
			return p.errorAt(KindGeometryVector, keywordGeometry, l)
		}
		for _, f := range fields[1:4] {
			if _, err := strconv.ParseFloat(f, 64); err != nil {
				e := p.errorAt(KindGeometryVector, keywordGeometry, l)
				e.Value = f
				return e
			}
		}
		geom.Lines = append(geom.Lines, l.Text)
		return nil
	})
	if err != nil {
		return err
	}
	p.spec.Geometry = geom
	return nil
}

// parseBasis reads a basis or ecp block. The two differ only in the error
// kinds reported for a bad option directive.
func (p *parser) parseBasis(opener line, name string, formatKind, valueKind Kind) (*BasisBlock, error) {
	block := &BasisBlock{DefRange: opener.Range}
	err := p.readBlock(opener, name, false, func(l line) error {
		fields := strings.Fields(l.Text)
		if fields[0] != keywordOption {
			block.Entries = append(block.Entries, l.Text)
			return nil
		}
		if len(fields) != 2 {
			return p.errorAt(formatKind, name, l)
		}
		opt := Option(fields[1])
		if !opt.Valid() {
			e := p.errorAt(valueKind, name, l)
			e.Value = fields[1]
			e.Want = optionValues
			return e
		}
		block.Option = opt
		return nil
	})
	if err != nil {
		return nil, err
	}
	return block, nil
}

func (p *parser) parseDFT(opener line) error {
	return p.readBlock(opener, keywordDFT, true, func(l line) error {
		p.spec.DFT = append(p.spec.DFT, l.Text)
		return nil
	})
}

// parseTune reads a tune block. Repeated tune blocks merge into one set of
// parameters; a repeated key keeps its last value.
func (p *parser) parseTune(opener line) error {
	if p.spec.Tune == nil {
		p.spec.Tune = &TuneBlock{
			Params:   map[string]string{},
			Ranges:   map[string]hcl.Range{},
			DefRange: opener.Range,
		}
	}
	tb := p.spec.Tune
	return p.readBlock(opener, keywordTune, true, func(l line) error {
		fields := strings.Fields(l.Text)
		if len(fields) != 2 {
			return p.errorAt(KindTuneEntry, keywordTune, l)
		}
		key, value := fields[0], fields[1]
		if prev, ok := tb.Params[key]; ok {
			p.logger.Debug("Tune key redefined.", "file", p.filename, "key", key, "old", prev, "new", value, "line", l.Number)
		}
		tb.Params[key] = value
		tb.Ranges[key] = l.Range
		return nil
	})
}

func (p *parser) errorAt(kind Kind, block string, l line) *Error {
	return &Error{
		Kind:     kind,
		Filename: p.filename,
		Block:    block,
		Line:     l.Number,
		Text:     l.Text,
		Subject:  l.Range.Ptr(),
	}
}
