// SPDX-License-Identifier: MIT

// Command lvnet trains a feed-forward network with online SGD.
//
// Without -train it fits the built-in three-sample toy set on a [3, 2]
// network. With -train it reads label,v1,...,vn CSV rows (MNIST style),
// optionally scores a -test file after training, and with -out writes the
// epoch table and one diagnostic file per test sample. -db appends the run
// and its per-epoch statistics to a SQLite history.
//
//	lvnet -train mnist_train.csv -test mnist_test.csv -dims 784,64,10 -epochs 5 -out out/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/katalvlaran/lvnet/dataset"
	"github.com/katalvlaran/lvnet/network"
	"github.com/katalvlaran/lvnet/report"
	"github.com/katalvlaran/lvnet/train"
)

type flags struct {
	trainPath, testPath string
	dims                string
	epochs              int
	lr                  float64
	seed                int64
	classes             int
	scale               float64
	header              bool
	max                 int
	out                 string
	db                  string
	note                string
	width               int
	workers             int
	output              string
	verbose             bool
	logEvery            int
}

func parseFlags() flags {
	var f flags
	flag.StringVar(&f.trainPath, "train", "", "training CSV (label,v1,...,vn); empty uses the toy set")
	flag.StringVar(&f.testPath, "test", "", "test CSV scored after training")
	flag.StringVar(&f.dims, "dims", "", "comma-separated layer widths (default 3,2 for the toy set)")
	flag.IntVar(&f.epochs, "epochs", train.DefaultEpochs, "passes over the training set (0 = evaluate the initial network)")
	flag.Float64Var(&f.lr, "lr", train.DefaultLearningRate, "learning rate")
	flag.Int64Var(&f.seed, "seed", network.DefaultSeed, "initialization seed")
	flag.IntVar(&f.classes, "classes", dataset.DefaultClasses, "number of classes in CSV input")
	flag.Float64Var(&f.scale, "scale", dataset.DefaultScale, "divisor applied to CSV values")
	flag.BoolVar(&f.header, "header", false, "CSV files start with a header row")
	flag.IntVar(&f.max, "max", 0, "read at most this many samples per file (0 = all)")
	flag.StringVar(&f.out, "out", "", "directory for epochs.txt and per-sample reports")
	flag.StringVar(&f.db, "db", "", "SQLite file recording run history")
	flag.StringVar(&f.note, "note", "", "free-form note stored with the run (-db)")
	flag.IntVar(&f.width, "width", 0, "reflow rendered inputs to this many columns (28 for MNIST)")
	flag.IntVar(&f.workers, "workers", 0, "evaluation goroutines (0 = GOMAXPROCS)")
	flag.StringVar(&f.output, "output-activation", network.DefaultActivation.String(), "output layer activation: relu or identity")
	flag.BoolVar(&f.verbose, "v", false, "log training progress")
	flag.IntVar(&f.logEvery, "log-every", train.DefaultLogEvery, "epochs between progress lines with -v")
	flag.Parse()

	return f
}

func parseDims(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	dims := make([]int, 0, len(parts))
	for _, p := range parts {
		d, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("dims %q: %w", s, err)
		}
		dims = append(dims, d)
	}

	return dims, nil
}

// validate rejects flag values the libraries would panic on or silently
// replace with defaults.
func (f flags) validate() error {
	switch {
	case f.classes <= 0:
		return fmt.Errorf("-classes must be positive, got %d", f.classes)
	case f.scale <= 0:
		return fmt.Errorf("-scale must be positive, got %g", f.scale)
	case f.max < 0:
		return fmt.Errorf("-max must be non-negative, got %d", f.max)
	case f.epochs < 0:
		return fmt.Errorf("-epochs must be non-negative, got %d", f.epochs)
	case !(f.lr > 0) || math.IsInf(f.lr, 0):
		return fmt.Errorf("-lr must be positive and finite, got %g", f.lr)
	}

	return nil
}

// fit trains net for cfg.Epochs epochs. Zero epochs leaves net untouched;
// train.Config would read a zero as "use the default".
func fit(net *network.Network, samples []dataset.Sample, cfg train.Config) ([]train.EpochStats, error) {
	if cfg.Epochs == 0 {
		return nil, nil
	}

	return train.Train(net, samples, cfg)
}

func main() {
	log.SetFlags(log.Ltime)
	log.SetPrefix("lvnet: ")
	f := parseFlags()
	if err := f.validate(); err != nil {
		log.Fatalf("%v", err)
	}

	csvOpts := []dataset.Option{dataset.WithClasses(f.classes), dataset.WithScale(f.scale), dataset.WithMaxSamples(f.max)}
	if f.header {
		csvOpts = append(csvOpts, dataset.WithHeader())
	}

	var (
		samples []dataset.Sample
		err     error
	)
	dimSpec := f.dims
	if f.trainPath == "" {
		samples = dataset.Toy()
		if dimSpec == "" {
			dimSpec = "3,2"
		}
	} else {
		if samples, err = dataset.LoadCSV(f.trainPath, csvOpts...); err != nil {
			log.Fatalf("load training set: %v", err)
		}
		if dimSpec == "" {
			dimSpec = fmt.Sprintf("%d,%d", samples[0].Input.Rows(), f.classes)
		}
	}
	dims, err := parseDims(dimSpec)
	if err != nil {
		log.Fatalf("%v", err)
	}
	outAct, err := network.ParseActivation(f.output)
	if err != nil {
		log.Fatalf("%v", err)
	}

	net, err := network.New(dims, network.WithSeed(f.seed), network.WithOutputActivation(outAct))
	if err != nil {
		log.Fatalf("build network: %v", err)
	}
	log.Printf("network %v, %d samples, %d epochs, lr %g", dims, len(samples), f.epochs, f.lr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg := train.Config{
		Epochs:       f.epochs,
		LearningRate: f.lr,
		Ctx:          ctx,
		Logger:       log.Default(),
		Verbose:      f.verbose,
		LogEvery:     f.logEvery,
		Workers:      f.workers,
	}

	var (
		store *report.Store
		runID string
		dbErr error
	)
	if f.db != "" {
		if store, err = report.OpenStore(f.db); err != nil {
			log.Fatalf("%v", err)
		}
		defer store.Close()
		runID, err = store.BeginRun(ctx, report.RunMeta{
			Dims: dims, LearningRate: f.lr, Epochs: f.epochs, Samples: len(samples), Note: f.note,
		})
		if err != nil {
			log.Fatalf("%v", err)
		}
		log.Printf("run %s", runID)
		cfg.OnEpoch = func(st train.EpochStats) {
			if dbErr == nil {
				dbErr = store.RecordEpoch(ctx, runID, st)
			}
		}
	}

	history, err := fit(net, samples, cfg)
	if err != nil {
		log.Fatalf("train: %v", err)
	}
	if dbErr != nil {
		log.Fatalf("%v", dbErr)
	}
	if n := len(history); n > 0 {
		log.Printf("final %v", history[n-1])
	}

	w := report.Writer{Dir: f.out, Width: f.width}
	if f.out != "" {
		if err = w.WriteEpochs(history); err != nil {
			log.Fatalf("%v", err)
		}
	}

	eval := samples
	if f.testPath != "" {
		if eval, err = dataset.LoadCSV(f.testPath, csvOpts...); err != nil {
			log.Fatalf("load test set: %v", err)
		}
	}
	st, err := train.EvaluateContext(net, eval, cfg)
	if err != nil {
		log.Fatalf("evaluate: %v", err)
	}
	log.Printf("evaluation: loss %.6f, accuracy %d/%d (%.2f%%)", st.MeanLoss, st.Correct, st.Total, 100*st.Accuracy())
	if store != nil {
		if err = store.FinishRun(ctx, runID, st); err != nil {
			log.Fatalf("%v", err)
		}
	}

	if f.out == "" {
		return
	}
	for i, s := range eval {
		out, err := net.Forward(s.Input)
		if err != nil {
			log.Fatalf("sample %d: %v", i, err)
		}
		if err = w.WriteSample(i, s, out); err != nil {
			log.Fatalf("%v", err)
		}
	}
	log.Printf("wrote %d sample reports to %s", len(eval), f.out)
}
