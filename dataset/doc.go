// SPDX-License-Identifier: MIT

// Package dataset turns labelled numeric rows into training samples.
//
// Every Sample pairs an input column vector with a one-hot target column
// vector. Rows come from CSV text in the form
//
//	label,v1,v2,...,vn
//	5,0,0,12,...,0
//
// Each value is divided by the configured scale (DefaultScale = 256, so byte
// intensities land in [0, 1)). All rows must have the same width. Parsing
// stops at the first bad row and the error names its 1-based row number.
//
// Toy returns the built-in three-sample set used by the command-line demo.
package dataset
