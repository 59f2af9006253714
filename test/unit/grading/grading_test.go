package grading_test

import (
	"testing"

	"github.com/openrtl/rxstats/pkg/grading"
)

func TestInterpret_Ratings(t *testing.T) {
	tests := []struct {
		name          string
		params        grading.Params
		wantSignal    string
		wantStability string
	}{
		{name: "strong steady", params: grading.Params{MeanSNR: 22, StdDevSNR: 1, Packets: 100},
			wantSignal: "excellent", wantStability: "steady"},
		{name: "good", params: grading.Params{MeanSNR: 16, StdDevSNR: 1.5, Packets: 50},
			wantSignal: "good", wantStability: "steady"},
		{name: "fair variable", params: grading.Params{MeanSNR: 11, StdDevSNR: 4, Packets: 50},
			wantSignal: "fair", wantStability: "variable"},
		{name: "marginal", params: grading.Params{MeanSNR: 6, StdDevSNR: 3, Packets: 50},
			wantSignal: "marginal", wantStability: "variable"},
		{name: "poor unstable", params: grading.Params{MeanSNR: 3, StdDevSNR: 8, Packets: 50},
			wantSignal: "poor", wantStability: "unstable"},
		{name: "single packet", params: grading.Params{MeanSNR: 18, Packets: 1},
			wantSignal: "good", wantStability: "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			interp := grading.Interpret(tt.params)
			if interp.SignalRating != tt.wantSignal {
				t.Errorf("SignalRating = %q, want %q", interp.SignalRating, tt.wantSignal)
			}
			if interp.StabilityRating != tt.wantStability {
				t.Errorf("StabilityRating = %q, want %q", interp.StabilityRating, tt.wantStability)
			}
		})
	}
}

func TestInterpret_Grades(t *testing.T) {
	a := grading.Interpret(grading.Params{MeanSNR: 25, StdDevSNR: 0.5, Packets: 200})
	if a.Grade != "A" {
		t.Errorf("strong steady signal graded %q, want A", a.Grade)
	}

	f := grading.Interpret(grading.Params{MeanSNR: 2, StdDevSNR: 9, Packets: 200})
	if f.Grade != "F" {
		t.Errorf("poor unstable signal graded %q, want F", f.Grade)
	}
}

func TestInterpret_Concerns(t *testing.T) {
	interp := grading.Interpret(grading.Params{MeanSNR: 6, StdDevSNR: 7, Packets: 5})

	want := map[string]bool{
		"signal_near_decode_threshold": true,
		"snr_variance":                 true,
		"few_packets":                  true,
	}
	if len(interp.Concerns) != len(want) {
		t.Fatalf("Concerns = %v", interp.Concerns)
	}
	for _, c := range interp.Concerns {
		if !want[c] {
			t.Errorf("unexpected concern %q", c)
		}
	}

	clean := grading.Interpret(grading.Params{MeanSNR: 22, StdDevSNR: 1, Packets: 500})
	if len(clean.Concerns) != 0 {
		t.Errorf("clean signal has concerns: %v", clean.Concerns)
	}
}

func TestInterpret_Summary(t *testing.T) {
	interp := grading.Interpret(grading.Params{MeanSNR: 19.5, StdDevSNR: 1.2, Packets: 42})
	if interp.Summary == "" {
		t.Errorf("empty summary")
	}
}
