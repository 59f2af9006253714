// Package report turns a finished catalog into the run output: a JSON
// document or an aligned text table, devices sorted by key, noise floor
// applied.
package report

import (
	"encoding/json"
	"io"

	"github.com/openrtl/rxstats/internal/catalog"
	"github.com/openrtl/rxstats/pkg/grading"
	"github.com/openrtl/rxstats/pkg/types"
)

// SkipCounters carries the pre-filter tallies from the ingest loop.
type SkipCounters struct {
	NoModel     int64
	TPMS        int64
	ParseErrors int64
}

// Build snapshots the catalog into a RunStats, dropping devices below the
// noise floor and grading reception for every row with SNR data.
func Build(cat *catalog.Catalog, sources []string, noiseFloor int, skipped SkipCounters) *types.RunStats {
	run := &types.RunStats{
		Sources:              sources,
		TotalPackets:         cat.TotalPackets(),
		DedupedTransmissions: cat.DedupedTransmissions(),
		Devices:              cat.Devices(),
		SkippedNoModel:       skipped.NoModel,
		SkippedTPMS:          skipped.TPMS,
		ParseErrors:          skipped.ParseErrors,
		Rows:                 cat.Rows(noiseFloor),
	}

	if first, last, firstDisp, lastDisp, ok := cat.TimeSpan(); ok {
		run.FirstTime = first
		run.LastTime = last
		run.FirstTimeDisplay = firstDisp
		run.LastTimeDisplay = lastDisp
	}

	for i := range run.Rows {
		row := &run.Rows[i]
		if row.SNR == nil {
			continue
		}
		row.Grade = grading.Interpret(grading.Params{
			MeanSNR:   row.SNR.Mean,
			StdDevSNR: row.SNR.StdDev,
			Packets:   row.SNR.Count,
		}).Grade
	}
	return run
}

// RenderJSON writes the run as an indented JSON document.
func RenderJSON(w io.Writer, run *types.RunStats) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(run)
}
