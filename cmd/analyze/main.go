// Package analyze implements the `rxstats analyze` subcommand — batch
// analysis of rtl_433 JSON log files into per-device statistics.
package analyze

import (
	"flag"
	"fmt"
	"os"

	"golang.org/x/term"

	pipeline "github.com/openrtl/rxstats/internal/analyze"
	"github.com/openrtl/rxstats/internal/config"
	"github.com/openrtl/rxstats/internal/export"
	"github.com/openrtl/rxstats/internal/logging"
	"github.com/openrtl/rxstats/internal/report"
)

var (
	exitSuccess = 0
	exitFailure = 1
	exitUsage   = 2
)

func Run(args []string, version string) int {
	flagSet := flag.NewFlagSet("rxstats analyze", flag.ContinueOnError)
	flagSet.SetOutput(os.Stdout)

	cfg := config.DefaultConfig()

	var (
		configPath string
		noSNR      bool
		noGap      bool
		noFreq     bool
		noPPT      bool
		verbose    bool
	)
	flagSet.StringVar(&configPath, "config", "", "Config file path (default: XDG location)")
	flagSet.Float64Var(&cfg.TransmissionWindow, "window", cfg.TransmissionWindow, "Transmission window in seconds")
	flagSet.Float64Var(&cfg.TransmissionWindow, "w", cfg.TransmissionWindow, "Transmission window in seconds (short)")
	flagSet.BoolVar(&noSNR, "no-snr", false, "Disable SNR statistics")
	flagSet.BoolVar(&noGap, "no-gap", false, "Disable inter-transmission gap statistics")
	flagSet.BoolVar(&noFreq, "no-freq", false, "Disable frequency statistics")
	flagSet.BoolVar(&noPPT, "no-ppt", false, "Disable packets-per-transmission statistics")
	flagSet.IntVar(&cfg.NoiseFloor, "noise", cfg.NoiseFloor, "Minimum packets for a device to be reported")
	flagSet.IntVar(&cfg.NoiseFloor, "n", cfg.NoiseFloor, "Minimum packets for a device to be reported (short)")
	flagSet.BoolVar(&cfg.IncludeTPMS, "tpms", cfg.IncludeTPMS, "Include TPMS devices")
	flagSet.BoolVar(&cfg.JSONOutput, "json", cfg.JSONOutput, "Output as JSON")
	flagSet.BoolVar(&cfg.NoColor, "no-color", cfg.NoColor, "Disable colored output")
	flagSet.BoolVar(&cfg.NoProgress, "no-progress", cfg.NoProgress, "Disable progress bar")
	flagSet.StringVar(&cfg.ExportPath, "export", cfg.ExportPath, "Export run to SQLite database at path")
	flagSet.BoolVar(&verbose, "v", false, "Verbose (debug) logging")
	help := flagSet.Bool("help", false, "Show help")
	flagSet.BoolVar(help, "h", false, "Show help (short)")

	if err := flagSet.Parse(args); err != nil {
		return exitUsage
	}
	if *help {
		printUsage()
		return exitSuccess
	}

	// Precedence: defaults < config file < environment < explicit flags.
	flagged := map[string]bool{}
	flagSet.Visit(func(f *flag.Flag) { flagged[f.Name] = true })

	fileCfg := config.DefaultConfig()
	if err := fileCfg.LoadFromFile(configPath); err != nil {
		fmt.Fprintf(os.Stderr, "rxstats analyze: %v\n", err)
		return exitFailure
	}
	if err := fileCfg.LoadFromEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "rxstats analyze: %v\n", err)
		return exitFailure
	}
	mergeUnflagged(cfg, fileCfg, flagged)

	cfg.EnableSNR = cfg.EnableSNR && !noSNR
	cfg.EnableGap = cfg.EnableGap && !noGap
	cfg.EnableFreq = cfg.EnableFreq && !noFreq
	cfg.EnablePPT = cfg.EnablePPT && !noPPT

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "rxstats analyze: invalid configuration: %v\n", err)
		return exitUsage
	}

	if verbose {
		cfg.LogLevel = "debug"
	}
	logging.Init(logging.ParseLevel(cfg.LogLevel))

	run, err := pipeline.Run(cfg, flagSet.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "rxstats analyze: %v\n", err)
		return exitFailure
	}

	if cfg.JSONOutput {
		if err := report.RenderJSON(os.Stdout, run); err != nil {
			fmt.Fprintf(os.Stderr, "rxstats analyze: render: %v\n", err)
			return exitFailure
		}
	} else {
		useColor := !cfg.NoColor && term.IsTerminal(int(os.Stdout.Fd()))
		report.RenderText(os.Stdout, run, useColor)
	}

	if cfg.ExportPath != "" {
		store, err := export.Open(cfg.ExportPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "rxstats analyze: %v\n", err)
			return exitFailure
		}
		defer store.Close()
		runID, err := store.SaveRun(run)
		if err != nil {
			fmt.Fprintf(os.Stderr, "rxstats analyze: %v\n", err)
			return exitFailure
		}
		logging.Info("run exported",
			logging.Field{Key: "run_id", Value: runID},
			logging.Field{Key: "path", Value: cfg.ExportPath})
	}

	return exitSuccess
}

// mergeUnflagged copies file/env settings into cfg for everything the
// user did not set explicitly on the command line.
func mergeUnflagged(cfg, loaded *config.Config, flagged map[string]bool) {
	if !flagged["window"] && !flagged["w"] {
		cfg.TransmissionWindow = loaded.TransmissionWindow
	}
	if !flagged["noise"] && !flagged["n"] {
		cfg.NoiseFloor = loaded.NoiseFloor
	}
	if !flagged["tpms"] {
		cfg.IncludeTPMS = loaded.IncludeTPMS
	}
	if !flagged["json"] {
		cfg.JSONOutput = loaded.JSONOutput
	}
	if !flagged["no-color"] {
		cfg.NoColor = loaded.NoColor
	}
	if !flagged["no-progress"] {
		cfg.NoProgress = loaded.NoProgress
	}
	if !flagged["export"] {
		cfg.ExportPath = loaded.ExportPath
	}
	cfg.EnableSNR = loaded.EnableSNR
	cfg.EnableGap = loaded.EnableGap
	cfg.EnableFreq = loaded.EnableFreq
	cfg.EnablePPT = loaded.EnablePPT
	cfg.LogLevel = loaded.LogLevel
}

func printUsage() {
	fmt.Fprintf(os.Stdout, `Usage: rxstats analyze [flags] [file ...]

Analyze rtl_433 JSON event logs (plain or .gz; "-" or no file reads stdin)
and report per-device signal, timing, frequency, and packet statistics.

Flags:
  -w, -window SECONDS   Transmission window (default 2.0)
  -n, -noise COUNT      Minimum packets for a device to be reported
  -no-snr               Disable SNR statistics
  -no-gap               Disable inter-transmission gap statistics
  -no-freq              Disable frequency statistics
  -no-ppt               Disable packets-per-transmission statistics
  -tpms                 Include TPMS devices (excluded by default)
  -json                 Output as JSON
  -export PATH          Also write the run to a SQLite database
  -config PATH          Config file (default: $XDG_CONFIG_HOME/rxstats/config.yaml)
  -no-color             Disable colored output
  -no-progress          Disable progress bar
  -v                    Verbose logging

Examples:
  rxstats analyze rtl433.json
  rxstats analyze -w 1.5 -n 10 day1.json.gz day2.json.gz
  rxstats analyze -json -export runs.db rtl433.json
`)
}
