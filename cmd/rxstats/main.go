package main

import (
	"fmt"
	"os"
	"strings"

	analyze "github.com/openrtl/rxstats/cmd/analyze"
	follow "github.com/openrtl/rxstats/cmd/follow"
	mcpcmd "github.com/openrtl/rxstats/cmd/mcp"
)

var version = "dev"

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		os.Exit(analyze.Run(nil, version))
	}

	switch args[0] {
	case "analyze":
		os.Exit(analyze.Run(args[1:], version))
	case "follow":
		os.Exit(follow.Run(args[1:], version))
	case "mcp":
		os.Exit(mcpcmd.Run(version))
	case "help", "-h", "--help":
		printUsage()
		return
	case "version", "--version":
		fmt.Printf("rxstats %s\n", version)
		return
	default:
		// Bare flags or file arguments run the analyzer, so
		// `rxstats rtl433.json` just works.
		if strings.HasPrefix(args[0], "-") || looksLikeFile(args[0]) {
			os.Exit(analyze.Run(args, version))
		}
		fmt.Fprintf(os.Stderr, "rxstats: unknown command %q\n\n", args[0])
		printUsage()
		os.Exit(2)
	}
}

func looksLikeFile(arg string) bool {
	if arg == "-" {
		return true
	}
	_, err := os.Stat(arg)
	return err == nil
}

func printUsage() {
	fmt.Fprintf(os.Stdout, `Usage: rxstats <command> [args]

Commands:
  analyze   Analyze rtl_433 JSON logs (default when given files or flags)
  follow    Follow a live rtl_433 stream (WebSocket or MQTT)
  mcp       Run as MCP server (stdio transport, for AI agents)

Examples:
  rxstats rtl433.json
  rxstats analyze -w 1.5 -n 10 day1.json.gz day2.json.gz
  rxstats follow -mqtt tcp://localhost:1883
  rxstats mcp
`)
}
