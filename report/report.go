// SPDX-License-Identifier: MIT

// Package report writes human-readable diagnostics of a training run:
// per-sample text files and an epoch table.
package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/katalvlaran/lvnet/dataset"
	"github.com/katalvlaran/lvnet/matrix"
	"github.com/katalvlaran/lvnet/train"
)

// EpochsFile is the name of the table written by WriteEpochs.
const EpochsFile = "epochs.txt"

// ErrNoDir is returned when a Writer has an empty Dir.
var ErrNoDir = errors.New("report: output directory not set")

// Render formats m as a grid of fixed-width values, one line per row.
// With width > 0 the elements are taken in row-major order and reflowed into
// lines of width values (28 shows a 784×1 MNIST input as a 28×28 image).
func Render(m matrix.Matrix, width int) string {
	if m == nil {
		return ""
	}
	r, c := m.Rows(), m.Cols()
	if width <= 0 {
		width = c
	}

	var b strings.Builder
	var v float64
	var err error
	n := 0
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if v, err = m.At(i, j); err != nil {
				return b.String()
			}
			if n%width != 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(&b, "%6.3f", v)
			n++
			if n%width == 0 {
				b.WriteByte('\n')
			}
		}
	}
	if n%width != 0 {
		b.WriteByte('\n')
	}

	return b.String()
}

// Writer persists diagnostics under Dir, creating it on first use.
type Writer struct {
	Dir string
	// Width reflows rendered inputs; 0 keeps the column shape.
	Width int
}

// SampleFile returns the file name used for sample index.
func SampleFile(index int) string {
	return fmt.Sprintf("sample_%05d.txt", index)
}

// WriteSample writes the label, the predicted class, the target and output
// vectors and the rendered input of one sample to SampleFile(index).
func (w Writer) WriteSample(index int, s dataset.Sample, output matrix.Matrix) error {
	pred, err := matrix.ArgMax(output)
	if err != nil {
		return fmt.Errorf("report: sample %d: %w", index, err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "label:     %d\n", s.Label)
	fmt.Fprintf(&b, "predicted: %d\n", pred)
	b.WriteString("\ntarget:\n")
	b.WriteString(Render(s.Target, 0))
	b.WriteString("\noutput:\n")
	b.WriteString(Render(output, 0))
	b.WriteString("\ninput:\n")
	b.WriteString(Render(s.Input, w.Width))

	return w.write(SampleFile(index), b.String())
}

// WriteEpochs writes one tab-aligned line per epoch to EpochsFile.
func (w Writer) WriteEpochs(stats []train.EpochStats) error {
	var b strings.Builder
	tw := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "epoch\tloss\tcorrect\ttotal\taccuracy")
	for _, s := range stats {
		fmt.Fprintf(tw, "%d\t%.6f\t%d\t%d\t%.4f\n", s.Epoch, s.MeanLoss, s.Correct, s.Total, s.Accuracy())
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("report: %w", err)
	}

	return w.write(EpochsFile, b.String())
}

func (w Writer) write(name, body string) error {
	if w.Dir == "" {
		return ErrNoDir
	}
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return fmt.Errorf("report: %w", err)
	}
	if err := os.WriteFile(filepath.Join(w.Dir, name), []byte(body), 0o644); err != nil {
		return fmt.Errorf("report: %w", err)
	}

	return nil
}
