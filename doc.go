// Package lvnet is a small, dependency-light toolkit for training fully
// connected neural networks from first principles: dense matrices, a manual
// backward pass and online stochastic gradient descent.
//
// 🚀 What is lvnet?
//
//	A pure-Go stack with no hidden magic:
//		• Dense matrices: bounds-checked, row-major, finite-value policy
//		• Feed-forward networks: ReLU / Identity layers, summed squared error
//		• Backpropagation: explicit chain rule, one sample at a time
//		• Data: CSV (label,v1..vn) ingestion with one-hot targets
//		• Driver: epochs, progress logging, cancellation, parallel evaluation
//
// ✨ Why choose lvnet?
//
//   - Readable – every gradient is a handful of matrix calls you can step through
//   - Deterministic – seeded initialization, fixed loop orders
//   - Safe – shape and numeric errors are returned, never silently propagated
//   - Pure Go – no cgo, no GPU; gonum kernels and a cgo-free SQLite driver
//
// Under the hood, everything is organized under these subpackages:
//
//	matrix/   — Dense type, algebra (Add, Sub, Mul, Transpose, Hadamard), ReLU, random init
//	network/  — Network, Forward/Backward, Trace, Loss, Predict
//	dataset/  — Sample, ReadCSV/LoadCSV, OneHot, Toy, Split
//	train/    — Config, Train, Evaluate, EpochStats
//	report/   — Render, Writer (per-sample files and epoch table), Store (SQLite run history)
//	cmd/lvnet — command-line trainer
//
// Quick example:
//
//	net, _ := network.New([]int{3, 2})
//	hist, _ := train.Train(net, dataset.Toy(), train.DefaultConfig())
//	fmt.Println(hist[len(hist)-1])
//
//	go get github.com/katalvlaran/lvnet
package lvnet
