// Package mcp implements the `rxstats mcp` subcommand — an MCP (Model
// Context Protocol) server over stdio transport. Agents can spawn this
// process and analyze radio logs directly.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	pipeline "github.com/openrtl/rxstats/internal/analyze"
	"github.com/openrtl/rxstats/internal/config"
	"github.com/openrtl/rxstats/pkg/grading"
)

// Run starts the MCP stdio server. Blocks until stdin closes or signal received.
func Run(version string) int {
	s := server.NewMCPServer(
		"rxstats",
		version,
		server.WithToolCapabilities(true),
	)

	// Tool: analyze_log — batch analysis of an rtl_433 JSON log
	analyzeTool := mcp.NewTool("analyze_log",
		mcp.WithDescription("Analyze an rtl_433 JSON event log file (plain or .gz) and return per-device statistics: packet/transmission counts, SNR, inter-transmission gap, frequency, packets-per-transmission, and a reception grade."),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to the rtl_433 JSON log file"),
		),
		mcp.WithNumber("window",
			mcp.Description("Transmission window in seconds (default: 2.0)"),
		),
		mcp.WithNumber("noise_floor",
			mcp.Description("Minimum packets for a device to be included (default: 1)"),
		),
		mcp.WithBoolean("include_tpms",
			mcp.Description("Include TPMS devices (default: false)"),
		),
	)
	s.AddTool(analyzeTool, handleAnalyzeLog)

	// Tool: grade_snr — interpret SNR statistics
	gradeTool := mcp.NewTool("grade_snr",
		mcp.WithDescription("Interpret SNR statistics into a reception grade (A-F), ratings, and concerns. Use when you already have mean/stddev SNR numbers."),
		mcp.WithNumber("mean_snr",
			mcp.Required(),
			mcp.Description("Mean SNR in dB"),
		),
		mcp.WithNumber("stddev_snr",
			mcp.Description("SNR standard deviation in dB"),
		),
		mcp.WithNumber("packets",
			mcp.Description("Number of packets behind the statistics"),
		),
	)
	s.AddTool(gradeTool, handleGradeSNR)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "rxstats mcp: error: %v\n", err)
		return 1
	}
	return 0
}

// --- Tool Handlers ---

func handleAnalyzeLog(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := req.GetString("path", "")
	if path == "" {
		return mcp.NewToolResultError("path is required"), nil
	}

	cfg := config.DefaultConfig()
	cfg.TransmissionWindow = req.GetFloat("window", cfg.TransmissionWindow)
	cfg.NoiseFloor = req.GetInt("noise_floor", cfg.NoiseFloor)
	cfg.IncludeTPMS = req.GetBool("include_tpms", cfg.IncludeTPMS)
	cfg.NoProgress = true
	if err := cfg.Validate(); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	run, err := pipeline.Run(cfg, []string{path})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	data, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode failed: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func handleGradeSNR(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	interp := grading.Interpret(grading.Params{
		MeanSNR:   req.GetFloat("mean_snr", 0),
		StdDevSNR: req.GetFloat("stddev_snr", 0),
		Packets:   int64(req.GetInt("packets", 0)),
	})

	data, err := json.MarshalIndent(interp, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode failed: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
