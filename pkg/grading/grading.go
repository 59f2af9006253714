// Package grading interprets raw per-device SNR statistics into
// human/agent-readable reception grades and concerns.
package grading

import "fmt"

// Interpretation holds the semantic interpretation of a device's
// reception quality.
type Interpretation struct {
	Grade           string   `json:"grade"`
	Summary         string   `json:"summary"`
	SignalRating    string   `json:"signal_rating"`
	StabilityRating string   `json:"stability_rating"`
	Concerns        []string `json:"concerns"`
}

// Params are the raw statistics to interpret.
type Params struct {
	MeanSNR   float64
	StdDevSNR float64
	Packets   int64
}

// Interpret produces a reception Interpretation from raw SNR statistics.
func Interpret(p Params) *Interpretation {
	interp := &Interpretation{
		Concerns: []string{},
	}

	interp.SignalRating = rateSignal(p.MeanSNR)
	interp.StabilityRating = rateStability(p.StdDevSNR, p.Packets)
	interp.Concerns = concerns(p)
	interp.Grade = computeGrade(interp.SignalRating, interp.StabilityRating)
	interp.Summary = buildSummary(interp.Grade, p)

	return interp
}

// SNR thresholds in dB, standard SDR reception practice.
func rateSignal(snr float64) string {
	switch {
	case snr >= 20:
		return "excellent"
	case snr >= 15:
		return "good"
	case snr >= 10:
		return "fair"
	case snr >= 5:
		return "marginal"
	default:
		return "poor"
	}
}

func rateStability(stddev float64, packets int64) string {
	if packets < 2 {
		return "unknown"
	}
	switch {
	case stddev <= 2:
		return "steady"
	case stddev <= 5:
		return "variable"
	default:
		return "unstable"
	}
}

func concerns(p Params) []string {
	c := []string{}

	if p.MeanSNR < 10 {
		c = append(c, "signal_near_decode_threshold")
	}
	if p.Packets >= 2 && p.StdDevSNR > 5 {
		c = append(c, "snr_variance")
	}
	if p.Packets > 0 && p.Packets < 10 {
		c = append(c, "few_packets")
	}

	return c
}

var ratingScore = map[string]int{
	"excellent": 4,
	"steady":    4,
	"good":      3,
	"fair":      2,
	"variable":  2,
	"marginal":  1,
	"poor":      0,
	"unstable":  0,
	"unknown":   2, // neutral default
}

func computeGrade(signal, stability string) string {
	score := ratingScore[signal] + ratingScore[stability]
	// Max score = 8 (4+4)
	switch {
	case score >= 7:
		return "A"
	case score >= 6:
		return "B"
	case score >= 4:
		return "C"
	case score >= 2:
		return "D"
	default:
		return "F"
	}
}

func buildSummary(grade string, p Params) string {
	gradeDesc := map[string]string{
		"A": "Excellent",
		"B": "Good",
		"C": "Fair",
		"D": "Poor",
		"F": "Very poor",
	}

	summary := gradeDesc[grade] + " reception"
	if p.Packets > 0 {
		summary += fmt.Sprintf(": %.1f dB mean SNR over %d packets", p.MeanSNR, p.Packets)
		if p.Packets >= 2 {
			summary += fmt.Sprintf(" (stddev %.1f dB)", p.StdDevSNR)
		}
	}
	return summary
}
