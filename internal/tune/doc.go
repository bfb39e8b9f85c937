// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package tune reads and checks tuning input files: the ".tune-nw" and
// ".tune-g09" files that describe a DFT range-separation tuning job for
// NWChem or Gaussian.
//
// # Input format
//
//	charge 0
//
//	geometry {
//	    option noautoz
//	    o 0.000 0.000 0.119
//	    h 0.000 0.757 -0.477
//	}
//
//	basis {
//	    option global
//	    * library 6-31g*
//	}
//
//	tune {
//	    dimension 1
//	    alpha 0.2
//	    step coarse
//	}
//
// Optional "ecp" and "dft" blocks follow the same brace layout. Keywords
// and content are case-insensitive; stored lines are lower-cased.
//
// # Two stages
//
// Parse turns source bytes into a Spec and fails on the first malformed
// line. Validate then checks the rules that span blocks: a basis block must
// exist, a global basis (or ecp) has exactly one uncommented line, and the
// tune block's dimension decides which alpha and step values are allowed.
// Loader combines both with file handling and keeps the sources around so
// failures can be rendered as hcl diagnostics with a snippet of the line.
//
// Every failure is a *Error whose Kind can be matched with errors.Is.
package tune
