package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/openrtl/rxstats/pkg/types"
)

var (
	gradeGood = color.New(color.FgGreen)
	gradeFair = color.New(color.FgYellow)
	gradePoor = color.New(color.FgRed)
)

// RenderText writes the run header and the per-device table. Pass
// useColor false when writing to a pipe or when the user disabled color.
func RenderText(w io.Writer, run *types.RunStats, useColor bool) {
	fmt.Fprintf(w, "Processed %d packets, %d deduplicated transmissions, %d device(s)\n",
		run.TotalPackets, run.DedupedTransmissions, run.Devices)
	if run.FirstTimeDisplay != "" {
		fmt.Fprintf(w, "Span: %s .. %s\n", run.FirstTimeDisplay, run.LastTimeDisplay)
	}
	if run.SkippedNoModel > 0 || run.SkippedTPMS > 0 || run.ParseErrors > 0 {
		fmt.Fprintf(w, "Skipped: %d without model, %d TPMS, %d unparseable\n",
			run.SkippedNoModel, run.SkippedTPMS, run.ParseErrors)
	}
	if len(run.Rows) == 0 {
		fmt.Fprintln(w, "No devices above the noise floor.")
		return
	}
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 2, 0, 2, ' ', 0)
	header := []string{"Device", "Pkts", "Tx"}
	show := columnsPresent(run.Rows)
	if show.snr {
		header = append(header, "SNR dB")
	}
	if show.gap {
		header = append(header, "Gap s")
	}
	if show.freq {
		header = append(header, "Freq MHz")
	}
	if show.ppt {
		header = append(header, "Pkts/Tx")
	}
	header = append(header, "Grade")
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	for _, row := range run.Rows {
		cells := []string{row.Device,
			fmt.Sprintf("%d", row.Packets),
			fmt.Sprintf("%d", row.Transmissions)}
		if show.snr {
			cells = append(cells, summaryCell(row.SNR, 1))
		}
		if show.gap {
			cells = append(cells, summaryCell(row.Gap, 1))
		}
		if show.freq {
			cells = append(cells, summaryCell(row.Freq, 3))
		}
		if show.ppt {
			cells = append(cells, summaryCell(row.PPT, 1))
		}
		// Grade stays the last column: ANSI escapes would break
		// tabwriter's width accounting anywhere else.
		cells = append(cells, gradeCell(row.Grade, useColor))
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	tw.Flush()
}

type columnSet struct {
	snr, gap, freq, ppt bool
}

func columnsPresent(rows []types.DeviceStats) columnSet {
	var s columnSet
	for _, row := range rows {
		s.snr = s.snr || row.SNR != nil
		s.gap = s.gap || row.Gap != nil
		s.freq = s.freq || row.Freq != nil
		s.ppt = s.ppt || row.PPT != nil
	}
	return s
}

// summaryCell compacts one series into "n mean±sd [min..max]".
func summaryCell(s *types.Summary, prec int) string {
	if s == nil {
		return "-"
	}
	if s.Count == 1 {
		return fmt.Sprintf("n=1 %.*f", prec, s.Mean)
	}
	return fmt.Sprintf("n=%d %.*f±%.*f [%.*f..%.*f]",
		s.Count, prec, s.Mean, prec, s.StdDev, prec, s.Min, prec, s.Max)
}

func gradeCell(grade string, useColor bool) string {
	if grade == "" {
		return "-"
	}
	if !useColor {
		return grade
	}
	switch grade {
	case "A", "B":
		return gradeGood.Sprint(grade)
	case "C":
		return gradeFair.Sprint(grade)
	default:
		return gradePoor.Sprint(grade)
	}
}
