package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
)

const version = "0.1.0-dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run dispatches one command and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		printUsage(stderr)
		return 1
	}

	cmd, rest := args[0], args[1:]

	var err error
	switch cmd {
	case "build":
		err = runBuild(rest, stdout, stderr)
	case "css":
		err = runCSS(rest, stdout, stderr)
	case "preset":
		err = runPreset(rest, stdout, stderr)
	case "check":
		err = runCheck(rest, stdout, stderr)
	case "list":
		err = runList(rest, stdout, stderr)
	case "watch":
		err = runWatch(rest, stdout, stderr)
	case "serve":
		err = runServe(rest, stdout, stderr)
	case "version", "-v", "--version":
		fmt.Fprintf(stdout, "tokengen %s\n", version)
	case "help", "-h", "--help":
		printUsage(stdout)
	default:
		fmt.Fprintf(stderr, "unknown command: %s\n\n", cmd)
		printUsage(stderr)
		return 1
	}

	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `tokengen - compile design.json into CSS variables and a Tailwind preset

Usage: tokengen <command> [options]

Commands:
  build     Generate the stylesheet and the Tailwind preset
  css       Generate src/styles/design-tokens.css only
  preset    Generate src/styles/tailwind-preset.js only
  check     Validate design.json and the generated preset without writing
  list      Print the color tokens of each mode with swatches
  watch     Regenerate on every change to design.json
  serve     Start the MCP server on stdio
  version   Print version information
  help      Show this help message

Common options:
  -root DIR         Project root (default: nearest directory with design.json)
  -input PATH       Design document (default: design.json)
  -css-out PATH     Stylesheet output
  -preset-out PATH  Preset output
  -special-cases    "any" or "top": where chart/sidebar naming applies
  -log-level LEVEL  debug, info, warn or error (default: warn)

Settings may also come from .tokengen/config.yaml or tokengen.toml in the
project root; flags win.`)
}
