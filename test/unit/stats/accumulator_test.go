package stats_test

import (
	"math"
	"testing"

	"github.com/openrtl/rxstats/internal/stats"
)

func TestAccumulator_CountMinMax(t *testing.T) {
	values := []float64{4.5, -2.0, 7.25, 0, 7.25, 3.1}

	acc := stats.New(values[0])
	for _, v := range values[1:] {
		acc.Add(v)
	}

	s := acc.Summary()
	if s.Count != int64(len(values)) {
		t.Errorf("Count = %d, want %d", s.Count, len(values))
	}
	if s.Min != -2.0 {
		t.Errorf("Min = %v, want -2.0", s.Min)
	}
	if s.Max != 7.25 {
		t.Errorf("Max = %v, want 7.25", s.Max)
	}
}

func TestAccumulator_ConstantSeries(t *testing.T) {
	const value = 13.375

	acc := stats.New(value)
	for i := 0; i < 999; i++ {
		acc.Add(value)
	}

	s := acc.Summary()
	if s.Count != 1000 {
		t.Fatalf("Count = %d, want 1000", s.Count)
	}
	if s.Mean != value {
		t.Errorf("Mean = %v, want %v", s.Mean, value)
	}
	if s.StdDev != 0 {
		t.Errorf("StdDev = %v, want 0", s.StdDev)
	}
	if s.Min != value || s.Max != value {
		t.Errorf("Min/Max = %v/%v, want both %v", s.Min, s.Max, value)
	}
}

func TestAccumulator_SingleValue(t *testing.T) {
	acc := stats.New(-3.5)

	s := acc.Summary()
	if s.Count != 1 || s.Mean != -3.5 || s.StdDev != 0 || s.Min != -3.5 || s.Max != -3.5 {
		t.Errorf("summary = %+v, want count=1 mean=min=max=-3.5 stddev=0", s)
	}
}

// The variance recurrence is a compatibility contract with the reference
// analyzer. For 1, 2, 3 every intermediate is exact in binary floating
// point, so the results must match bit for bit:
//
//	n=2: mean 1.5, varAccum (2*(1.5-2)^2/1)/1 = 0.5
//	n=3: mean 2.0, varAccum (1*0.5 + 3*(2-3)^2/2)/2 = 1.0
func TestAccumulator_RecurrenceExact(t *testing.T) {
	acc := stats.New(1)
	acc.Add(2)

	s := acc.Summary()
	if s.Mean != 1.5 {
		t.Errorf("after 2 values: Mean = %v, want 1.5", s.Mean)
	}
	if want := math.Sqrt(0.5); s.StdDev != want {
		t.Errorf("after 2 values: StdDev = %v, want %v", s.StdDev, want)
	}

	acc.Add(3)
	s = acc.Summary()
	if s.Mean != 2.0 {
		t.Errorf("after 3 values: Mean = %v, want 2.0", s.Mean)
	}
	if s.StdDev != 1.0 {
		t.Errorf("after 3 values: StdDev = %v, want 1.0", s.StdDev)
	}
}

func TestAccumulator_TwoValues(t *testing.T) {
	// Sample variance of {a, b} is (a-b)^2 / 2.
	acc := stats.New(3)
	acc.Add(7)

	s := acc.Summary()
	want := math.Sqrt(8)
	if math.Abs(s.StdDev-want) > 1e-12 {
		t.Errorf("StdDev = %v, want %v", s.StdDev, want)
	}
}

func TestAccumulator_MatchesTwoPass(t *testing.T) {
	// Deterministic pseudo-random series; compare the streaming result
	// against a two-pass sample variance.
	values := make([]float64, 500)
	seed := uint64(0x9E3779B97F4A7C15)
	for i := range values {
		seed = seed*6364136223846793005 + 1442695040888963407
		values[i] = float64(seed%100000)/1000.0 - 50.0
	}

	acc := stats.New(values[0])
	for _, v := range values[1:] {
		acc.Add(v)
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	var m2 float64
	for _, v := range values {
		m2 += (v - mean) * (v - mean)
	}
	wantVar := m2 / float64(len(values)-1)

	s := acc.Summary()
	if math.Abs(s.Mean-mean) > 1e-9 {
		t.Errorf("Mean = %v, want %v", s.Mean, mean)
	}
	gotVar := s.StdDev * s.StdDev
	if math.Abs(gotVar-wantVar)/wantVar > 1e-9 {
		t.Errorf("variance = %v, want %v", gotVar, wantVar)
	}
}
