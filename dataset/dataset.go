// SPDX-License-Identifier: MIT

package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/lvnet/matrix"
)

// Sample is one training example.
type Sample struct {
	Input  matrix.Matrix // n×1
	Target matrix.Matrix // classes×1, one-hot
	Label  int
}

// LoadCSV opens path and parses it with ReadCSV.
func LoadCSV(path string, opts ...Option) ([]Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: open %s: %w", path, err)
	}
	defer f.Close()

	samples, err := ReadCSV(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return samples, nil
}

// ReadCSV parses rows of the form label,v1,...,vn from r.
//
// Implementation:
//   - Stage 1: stream records; skip the first when WithHeader is set.
//   - Stage 2: parse the label (integer in [0, classes)) and the values
//     (floats divided by the scale); the first row fixes the width.
//   - Stage 3: build the input column and the one-hot target.
//
// Errors (row numbers are 1-based and count the header):
//   - ErrEmpty, ErrMalformedRecord, ErrLabelRange, ErrRaggedRecord.
func ReadCSV(r io.Reader, opts ...Option) ([]Sample, error) {
	o := gatherOptions(opts...)

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	var (
		samples []Sample
		width   = -1
		row     int
	)
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		row++
		if err != nil {
			return nil, fmt.Errorf("row %d: %w: %w", row, ErrMalformedRecord, err)
		}
		if o.header && row == 1 {
			continue
		}
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}

		if width < 0 {
			width = len(rec)
			if width < 2 {
				return nil, fmt.Errorf("row %d: label without values: %w", row, ErrMalformedRecord)
			}
		} else if len(rec) != width {
			return nil, fmt.Errorf("row %d: %d fields, want %d: %w", row, len(rec), width, ErrRaggedRecord)
		}

		s, err := parseRecord(rec, o)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		samples = append(samples, s)
		if o.maxSamples > 0 && len(samples) == o.maxSamples {
			break
		}
	}

	if len(samples) == 0 {
		return nil, ErrEmpty
	}

	return samples, nil
}

func parseRecord(rec []string, o Options) (Sample, error) {
	label, err := strconv.Atoi(strings.TrimSpace(rec[0]))
	if err != nil {
		return Sample{}, fmt.Errorf("label %q: %w", rec[0], ErrMalformedRecord)
	}
	target, err := OneHot(label, o.classes)
	if err != nil {
		return Sample{}, err
	}

	vals := make([]float64, len(rec)-1)
	var v float64
	for j, field := range rec[1:] {
		v, err = strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return Sample{}, fmt.Errorf("column %d %q: %w", j+2, field, ErrMalformedRecord)
		}
		vals[j] = v / o.scale
	}
	input, err := matrix.NewColumn(vals)
	if err != nil {
		return Sample{}, err
	}

	return Sample{Input: input, Target: target, Label: label}, nil
}

// OneHot returns a classes×1 column with 1 at label and 0 elsewhere.
func OneHot(label, classes int) (*matrix.Dense, error) {
	if label < 0 || label >= classes {
		return nil, fmt.Errorf("label %d not in [0, %d): %w", label, classes, ErrLabelRange)
	}
	m, err := matrix.NewZeros(classes, 1)
	if err != nil {
		return nil, err
	}
	if err = m.Set(label, 0, 1); err != nil {
		return nil, err
	}

	return m, nil
}

// Toy returns three 3-input samples over two classes: the unit vectors e0 and
// e1 belong to class 0, e2 to class 1.
func Toy() []Sample {
	labels := []int{0, 0, 1}
	out := make([]Sample, len(labels))
	for i, label := range labels {
		in, _ := matrix.NewZeros(3, 1)
		_ = in.Set(i, 0, 1)
		target, _ := OneHot(label, 2)
		out[i] = Sample{Input: in, Target: target, Label: label}
	}

	return out
}

// Split returns the first round(ratio·n) samples and the rest. The slices
// share the backing array of samples.
func Split(samples []Sample, ratio float64) (head, tail []Sample, err error) {
	if math.IsNaN(ratio) || ratio < 0 || ratio > 1 {
		return nil, nil, fmt.Errorf("%g: %w", ratio, ErrBadRatio)
	}
	k := int(math.Round(ratio * float64(len(samples))))

	return samples[:k], samples[k:], nil
}
