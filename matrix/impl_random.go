// SPDX-License-Identifier: MIT
// Package matrix: random-filled constructor.
//
// The random source is always injected; the package never touches the global
// math/rand state, so identical seeds give identical matrices.

package matrix

import (
	"fmt"
	"math/rand"
)

const ctxRandom = "NewRandom"

// NewRandom returns a rows×cols Dense whose entries are drawn independently and
// uniformly from [min, max) using rng.
//
// Implementation:
//   - Stage 1: validate rng, bounds (finite, min < max) and shape.
//   - Stage 2: fill the flat buffer in row-major order, one rng.Float64 per cell.
//
// Errors:
//   - ErrNilSource when rng is nil.
//   - ErrNaNInf when min or max is not finite.
//   - ErrInvalidRange when min >= max.
//   - ErrInvalidDimensions for non-positive shape.
//
// Determinism:
//   - Row-major fill order; the same rng state always yields the same matrix.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewRandom(rows, cols int, min, max float64, rng *rand.Rand) (*Dense, error) {
	if rng == nil {
		return nil, matrixErrorf(ctxRandom, ErrNilSource)
	}
	if isNonFinite(min) || isNonFinite(max) {
		return nil, matrixErrorf(ctxRandom, ErrNaNInf)
	}
	if min >= max {
		return nil, matrixErrorf(ctxRandom, fmt.Errorf("[%g, %g): %w", min, max, ErrInvalidRange))
	}
	m, err := NewDense(rows, cols)
	if err != nil {
		return nil, matrixErrorf(ctxRandom, err)
	}

	span := max - min
	var v float64
	for idx := range m.data {
		v = min + rng.Float64()*span
		// Float64 is in [0,1) but rounding of min+u*span can land on max.
		if v >= max {
			v = min
		}
		m.data[idx] = v
	}

	return m, nil
}
