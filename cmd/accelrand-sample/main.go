// Copyright 2026 The AccelRand Authors. SPDX-License-Identifier: Apache-2.0

// accelrand-sample draws samples from one of the supported distributions and
// prints summary statistics plus a text histogram. Useful for eyeballing a
// distribution's shape and for quick throughput measurements.
//
// Examples:
//
//	accelrand-sample -distribution=normal -loc=0 -scale=1 -n=1000000
//	accelrand-sample -distribution=gamma -a=0.3 -n=100000 -bins=40
//	accelrand-sample -distribution=binomial -trials=1000 -p=0.4 -seed=42
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/accelrand/accelrand/random"
	"github.com/accelrand/accelrand/tensors"
	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/janpfeifer/must"
	"github.com/schollz/progressbar/v3"
	"k8s.io/klog/v2"
)

var (
	flagDistribution = flag.String("distribution", "normal",
		"Distribution to sample from: uniform, normal, lognormal, gumbel, laplace, gamma, beta, binomial or dirichlet.")
	flagN     = flag.Int("n", 100_000, "Number of samples to draw.")
	flagSeed  = flag.Int64("seed", 0, "Seed for the random state. 0 seeds from the current time.")
	flagDType = flag.String("dtype", "", "Output dtype: float32, float64, int32 or int64. Empty selects the distribution's default.")
	flagBins  = flag.Int("bins", 30, "Number of histogram bins.")
	flagBatch = flag.Int("batch", 1_000_000, "Samples drawn per call, for large -n.")

	// Distribution parameters. Each distribution reads only the ones it needs.
	flagLoc    = flag.Float64("loc", 0.0, "Location (uniform low, normal/lognormal mean, gumbel/laplace location).")
	flagScale  = flag.Float64("scale", 1.0, "Scale (uniform high, normal/lognormal sigma, gumbel/laplace scale, gamma scale).")
	flagA      = flag.Float64("a", 1.0, "Shape parameter (gamma shape, beta alpha).")
	flagB      = flag.Float64("b", 1.0, "Second shape parameter (beta).")
	flagTrials = flag.Int64("trials", 10, "Number of trials (binomial).")
	flagP      = flag.Float64("p", 0.5, "Success probability (binomial).")
	flagAlpha  = flag.String("alpha", "1,1,1", "Comma-separated concentrations (dirichlet).")
)

var titleStyle = lipgloss.NewStyle().Bold(true).Padding(1, 2, 0, 2)

func newPlainTable() *lgtable.Table {
	return lgtable.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle().PaddingLeft(1).PaddingRight(1)
			if col == 0 {
				s = s.Align(lipgloss.Right)
			}
			return s
		})
}

func parseDType(s string) dtypes.DType {
	switch strings.ToLower(s) {
	case "":
		return dtypes.InvalidDType
	case "float32", "f32":
		return dtypes.Float32
	case "float64", "f64":
		return dtypes.Float64
	case "int32", "i32":
		return dtypes.Int32
	case "int64", "i64":
		return dtypes.Int64
	}
	klog.Errorf("unknown -dtype %q", s)
	os.Exit(1)
	return dtypes.InvalidDType
}

func parseAlpha(s string) []float64 {
	parts := strings.Split(s, ",")
	alpha := make([]float64, 0, len(parts))
	for _, p := range parts {
		var v float64
		_ = must.M1(fmt.Sscanf(strings.TrimSpace(p), "%g", &v))
		alpha = append(alpha, v)
	}
	return alpha
}

// draw samples one batch of n values from the selected distribution.
func draw(state *random.State, n int, dtype dtypes.DType) (*tensors.Tensor, error) {
	size := []int{n}
	switch *flagDistribution {
	case "uniform":
		return state.Uniform(random.Const(*flagLoc), random.Const(*flagScale), size, dtype)
	case "normal":
		return state.Normal(random.Const(*flagLoc), random.Const(*flagScale), size, dtype)
	case "lognormal":
		return state.LogNormal(random.Const(*flagLoc), random.Const(*flagScale), size, dtype)
	case "gumbel":
		return state.Gumbel(random.Const(*flagLoc), random.Const(*flagScale), size, dtype)
	case "laplace":
		return state.Laplace(random.Const(*flagLoc), random.Const(*flagScale), size, dtype)
	case "gamma":
		return state.Gamma(random.Const(*flagA), random.Const(*flagScale), size, dtype)
	case "beta":
		return state.Beta(random.Const(*flagA), random.Const(*flagB), size, dtype)
	case "binomial":
		return state.Binomial(random.Const(float64(*flagTrials)), random.Const(*flagP), size, dtype)
	case "dirichlet":
		// Histogram the first component of each drawn vector.
		alpha := parseAlpha(*flagAlpha)
		t, err := state.Dirichlet(alpha, size, dtype)
		if err != nil {
			return nil, err
		}
		rows := tensors.ConvertToFloat64(t)
		first := make([]float64, n)
		k := len(alpha)
		for i := range first {
			first[i] = rows[i*k]
		}
		t.Finalize()
		return tensors.FromFlatDataAndDimensions(first, n), nil
	}
	klog.Errorf("unknown -distribution %q", *flagDistribution)
	os.Exit(1)
	return nil, nil
}

func histogram(values []float64, bins int) {
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if hi == lo {
		hi = lo + 1
	}
	counts := make([]int, bins)
	for _, v := range values {
		b := int(float64(bins) * (v - lo) / (hi - lo))
		if b >= bins {
			b = bins - 1
		}
		counts[b]++
	}
	maxCount := 0
	for _, c := range counts {
		maxCount = max(maxCount, c)
	}
	const barWidth = 50
	for b, c := range counts {
		left := lo + float64(b)*(hi-lo)/float64(bins)
		bar := strings.Repeat("█", c*barWidth/max(maxCount, 1))
		fmt.Printf("%12.4g |%-*s %s\n", left, barWidth, bar, humanize.Comma(int64(c)))
	}
}

func main() {
	flag.Parse()
	if flag.NArg() > 0 {
		klog.Errorf("unexpected arguments: %v", flag.Args())
		os.Exit(1)
	}
	if *flagN <= 0 {
		klog.Errorf("-n must be positive, got %d", *flagN)
		os.Exit(1)
	}

	var state *random.State
	if *flagSeed == 0 {
		state = random.NewFromTime()
	} else {
		state = random.New(*flagSeed)
	}
	dtype := parseDType(*flagDType)

	values := make([]float64, 0, *flagN)
	var bar *progressbar.ProgressBar
	if *flagN > *flagBatch {
		bar = progressbar.Default(int64(*flagN), "sampling")
	}
	start := time.Now()
	for drawn := 0; drawn < *flagN; {
		n := min(*flagBatch, *flagN-drawn)
		t := must.M1(draw(state, n, dtype))
		values = append(values, tensors.ConvertToFloat64(t)...)
		t.Finalize()
		drawn += n
		if bar != nil {
			_ = bar.Add(n)
		}
	}
	elapsed := time.Since(start)
	if bar != nil {
		_ = bar.Finish()
	}

	var sum, sumSq float64
	for _, v := range values {
		sum += v
		sumSq += v * v
	}
	n := float64(len(values))
	mean := sum / n
	std := math.Sqrt(sumSq/n - mean*mean)

	fmt.Println(titleStyle.Render("Summary"))
	table := newPlainTable()
	table.Row("distribution", *flagDistribution)
	table.Row("samples", humanize.Comma(int64(len(values))))
	table.Row("mean", fmt.Sprintf("%.6g", mean))
	table.Row("std", fmt.Sprintf("%.6g", std))
	table.Row("elapsed", elapsed.Round(time.Millisecond).String())
	table.Row("rate", fmt.Sprintf("%s samples/s", humanize.Comma(int64(n/elapsed.Seconds()))))
	fmt.Println(table.Render())

	fmt.Println(titleStyle.Render("Histogram"))
	histogram(values, *flagBins)
}
