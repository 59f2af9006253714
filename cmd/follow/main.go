// Package follow implements the `rxstats follow` subcommand — live
// ingestion from an rtl_433 WebSocket streamer or an MQTT broker, with
// periodic snapshot reports and a final report on shutdown.
package follow

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/openrtl/rxstats/internal/catalog"
	"github.com/openrtl/rxstats/internal/config"
	"github.com/openrtl/rxstats/internal/logging"
	"github.com/openrtl/rxstats/internal/record"
	"github.com/openrtl/rxstats/internal/report"
)

var (
	exitSuccess = 0
	exitFailure = 1
	exitUsage   = 2
)

func Run(args []string, version string) int {
	cfg := config.DefaultConfig()
	if err := cfg.LoadFromFile(""); err != nil {
		fmt.Fprintf(os.Stderr, "rxstats follow: %v\n", err)
		return exitFailure
	}
	if err := cfg.LoadFromEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "rxstats follow: %v\n", err)
		return exitFailure
	}

	flagSet := flag.NewFlagSet("rxstats follow", flag.ContinueOnError)
	flagSet.SetOutput(os.Stdout)

	flagSet.StringVar(&cfg.FollowURL, "url", cfg.FollowURL, "rtl_433 WebSocket URL (ws://host:port/ws)")
	flagSet.StringVar(&cfg.MQTTBroker, "mqtt", cfg.MQTTBroker, "MQTT broker address (tcp://host:1883)")
	flagSet.StringVar(&cfg.MQTTTopic, "topic", cfg.MQTTTopic, "MQTT topic filter for rtl_433 events")
	flagSet.DurationVar(&cfg.SnapshotInterval, "interval", cfg.SnapshotInterval, "Snapshot report interval")
	flagSet.Float64Var(&cfg.TransmissionWindow, "window", cfg.TransmissionWindow, "Transmission window in seconds")
	flagSet.Float64Var(&cfg.TransmissionWindow, "w", cfg.TransmissionWindow, "Transmission window in seconds (short)")
	flagSet.IntVar(&cfg.NoiseFloor, "noise", cfg.NoiseFloor, "Minimum packets for a device to be reported")
	flagSet.BoolVar(&cfg.IncludeTPMS, "tpms", cfg.IncludeTPMS, "Include TPMS devices")
	flagSet.BoolVar(&cfg.NoColor, "no-color", cfg.NoColor, "Disable colored output")
	verbose := flagSet.Bool("v", false, "Verbose (debug) logging")
	help := flagSet.Bool("help", false, "Show help")
	flagSet.BoolVar(help, "h", false, "Show help (short)")

	if err := flagSet.Parse(args); err != nil {
		return exitUsage
	}
	if *help {
		printUsage()
		return exitSuccess
	}
	if cfg.FollowURL == "" && cfg.MQTTBroker == "" {
		fmt.Fprintln(os.Stderr, "rxstats follow: need -url or -mqtt")
		return exitUsage
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "rxstats follow: invalid configuration: %v\n", err)
		return exitUsage
	}

	if *verbose {
		cfg.LogLevel = "debug"
	}
	logging.Init(logging.ParseLevel(cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := &session{
		cfg: cfg,
		cat: catalog.New(cfg.StatsOptions()),
		log: logging.NewLogger("follow"),
	}

	errCh := make(chan error, 1)
	go func() {
		if cfg.FollowURL != "" {
			s.source = cfg.FollowURL
			errCh <- runWS(ctx, s, cfg.FollowURL)
		} else {
			s.source = cfg.MQTTBroker
			errCh <- runMQTT(ctx, s, cfg.MQTTBroker, cfg.MQTTTopic)
		}
	}()

	useColor := !cfg.NoColor && term.IsTerminal(int(os.Stdout.Fd()))
	ticker := time.NewTicker(cfg.SnapshotInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.snapshot(useColor)
		case err := <-errCh:
			s.snapshot(useColor)
			if err != nil && !errors.Is(err, context.Canceled) {
				fmt.Fprintf(os.Stderr, "rxstats follow: %v\n", err)
				return exitFailure
			}
			return exitSuccess
		case <-ctx.Done():
			// Give the source a moment to unwind, then report and exit.
			select {
			case <-errCh:
			case <-time.After(3 * time.Second):
			}
			s.snapshot(useColor)
			return exitSuccess
		}
	}
}

// session is the shared ingest state. The catalog itself is
// single-writer; the mutex only fences the source goroutine's writes
// against snapshot reads.
type session struct {
	cfg    *config.Config
	log    *logging.Logger
	source string

	mu      sync.Mutex
	cat     *catalog.Catalog
	skipped report.SkipCounters
}

// handleLine ingests one event message. Live streams may interleave
// foreign messages (MQTT status topics, keepalives), so parse failures
// are counted and logged instead of aborting the follower.
func (s *session) handleLine(line []byte) {
	p, err := record.Parse(line)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		if errors.Is(err, record.ErrNoModel) {
			s.skipped.NoModel++
			return
		}
		s.skipped.ParseErrors++
		s.log.Debug("unparseable event", logging.Field{Key: "error", Value: err})
		return
	}
	if p.IsTPMS() && !s.cfg.IncludeTPMS {
		s.skipped.TPMS++
		return
	}

	ev := s.cat.Ingest(p)
	if ev.BatteryChanged || ev.StatusChanged {
		s.log.Info("device state changed",
			logging.Field{Key: "device", Value: catalog.DeviceKey(p.Model, p.Channel, p.ID)},
			logging.Field{Key: "battery", Value: p.Battery},
			logging.Field{Key: "status", Value: p.Status})
	}
}

func (s *session) snapshot(useColor bool) {
	s.mu.Lock()
	run := report.Build(s.cat, []string{s.source}, s.cfg.NoiseFloor, s.skipped)
	s.mu.Unlock()
	report.RenderText(os.Stdout, run, useColor)
	fmt.Fprintln(os.Stdout)
}

func printUsage() {
	fmt.Fprintf(os.Stdout, `Usage: rxstats follow (-url WS_URL | -mqtt BROKER) [flags]

Follow a live rtl_433 event stream and print per-device statistics
periodically and on shutdown (Ctrl-C).

Flags:
  -url URL             rtl_433 WebSocket endpoint, e.g. ws://127.0.0.1:8433/ws
  -mqtt ADDR           MQTT broker, e.g. tcp://127.0.0.1:1883
  -topic FILTER        MQTT topic filter (default rtl_433/+/events)
  -interval DURATION   Snapshot interval (default 30s)
  -w, -window SECONDS  Transmission window (default 2.0)
  -noise COUNT         Minimum packets for a device to be reported
  -tpms                Include TPMS devices
  -no-color            Disable colored output
  -v                   Verbose logging
`)
}
