// SPDX-License-Identifier: MIT

package dataset

import "errors"

var (
	// ErrEmpty is returned when the input holds no data rows.
	ErrEmpty = errors.New("dataset: no samples")

	// ErrLabelRange indicates a label outside [0, classes).
	ErrLabelRange = errors.New("dataset: label out of range")

	// ErrMalformedRecord indicates a row that is not valid CSV or has a
	// non-numeric label or value.
	ErrMalformedRecord = errors.New("dataset: malformed record")

	// ErrRaggedRecord indicates a row whose width differs from the first row.
	ErrRaggedRecord = errors.New("dataset: ragged record")

	// ErrBadRatio indicates a split ratio outside [0, 1].
	ErrBadRatio = errors.New("dataset: split ratio must be in [0, 1]")
)
