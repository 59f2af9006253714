// Package analyze runs the batch pipeline: walk input sources, parse and
// pre-filter each line, ingest into a catalog, and build the run report.
package analyze

import (
	"errors"

	"github.com/openrtl/rxstats/internal/catalog"
	"github.com/openrtl/rxstats/internal/config"
	"github.com/openrtl/rxstats/internal/input"
	"github.com/openrtl/rxstats/internal/logging"
	"github.com/openrtl/rxstats/internal/record"
	"github.com/openrtl/rxstats/internal/report"
	errs "github.com/openrtl/rxstats/pkg/errors"
	"github.com/openrtl/rxstats/pkg/types"
)

// Run processes the given log files (or stdin when empty) and returns the
// finished run report. Any malformed record or unparseable timestamp
// aborts with a typed error naming the offending source:line; records
// without a model and excluded TPMS records are skipped and tallied.
func Run(cfg *config.Config, paths []string) (*types.RunStats, error) {
	log := logging.NewLogger("analyze")
	cat := catalog.New(cfg.StatsOptions())
	var skipped report.SkipCounters
	sources := []string{}

	lastSource := ""
	err := input.EachLine(paths, !cfg.NoProgress, func(source string, lineNo int, line []byte) error {
		if source != lastSource {
			sources = append(sources, source)
			lastSource = source
		}

		p, perr := record.Parse(line)
		if perr != nil {
			if errors.Is(perr, record.ErrNoModel) {
				skipped.NoModel++
				return nil
			}
			var te *record.BadTimeError
			if errors.As(perr, &te) {
				return errs.ErrBadTimestamp(source, lineNo, te.Token, te.Err)
			}
			return errs.ErrMalformedRecord(source, lineNo, perr)
		}

		if p.IsTPMS() && !cfg.IncludeTPMS {
			skipped.TPMS++
			return nil
		}

		ev := cat.Ingest(p)
		if ev.IsNewDevice {
			log.Debug("new device",
				logging.Field{Key: "device", Value: catalog.DeviceKey(p.Model, p.Channel, p.ID)},
				logging.Field{Key: "time", Value: p.TimeDisplay})
		}
		if ev.BatteryChanged {
			log.Info("battery state changed",
				logging.Field{Key: "device", Value: catalog.DeviceKey(p.Model, p.Channel, p.ID)},
				logging.Field{Key: "battery", Value: p.Battery},
				logging.Field{Key: "time", Value: p.TimeDisplay})
		}
		if ev.StatusChanged {
			log.Info("status changed",
				logging.Field{Key: "device", Value: catalog.DeviceKey(p.Model, p.Channel, p.ID)},
				logging.Field{Key: "status", Value: p.Status},
				logging.Field{Key: "time", Value: p.TimeDisplay})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return report.Build(cat, sources, cfg.NoiseFloor, skipped), nil
}
