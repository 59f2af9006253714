// Package stats provides the online accumulator used for every per-device
// statistic series. One accumulator holds count, mean, a variance term, and
// min/max; it never stores individual samples, so memory is O(1) regardless
// of stream length.
package stats

import (
	"math"

	"github.com/openrtl/rxstats/pkg/types"
)

// Accumulator incrementally tracks one numeric series.
//
// The variance term follows the recurrence used by the reference rtl_433
// log analyzer, which differs in arithmetic structure from the usual
// Welford update. Output compatibility with that tool over long streams
// requires the exact same sequence of operations, so do not "fix" it to
// the textbook form.
type Accumulator struct {
	count    int64
	mean     float64
	varAccum float64
	min      float64
	max      float64
}

// New seeds an accumulator with its first sample.
func New(x float64) *Accumulator {
	return &Accumulator{count: 1, mean: x, min: x, max: x}
}

// Add folds one sample into the running statistics. NaN and Inf inputs
// propagate into mean/variance without crashing; behavior is undefined
// beyond that.
func (a *Accumulator) Add(x float64) {
	a.count++
	n := float64(a.count)
	a.mean += (x - a.mean) / n
	if a.count < 2 {
		a.varAccum = 0
	} else {
		d := a.mean - x
		a.varAccum = ((n-2)*a.varAccum + n*d*d/(n-1)) / (n - 1)
	}
	if x < a.min {
		a.min = x
	}
	if x > a.max {
		a.max = x
	}
}

// Count returns the number of samples folded in so far.
func (a *Accumulator) Count() int64 { return a.count }

// Summary snapshots the series for reporting. StdDev is the square root
// of the variance term.
func (a *Accumulator) Summary() *types.Summary {
	return &types.Summary{
		Count:  a.count,
		Mean:   a.mean,
		StdDev: math.Sqrt(a.varAccum),
		Min:    a.min,
		Max:    a.max,
	}
}
