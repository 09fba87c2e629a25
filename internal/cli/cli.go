// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command handlers for tombot.
package cli

import (
	"fmt"
	"os"
	"runtime"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdAsk
	CmdChat
	CmdConfig
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Plain bool   // Disable markdown rendering
	Model string // Override the configured model

	// Command-specific
	Query      string
	Mode       string // Reply mode: concise or segmented
	Subcommand string
	ConfigKey  string
	ConfigVal  string

	// Raw args (remaining after flag parsing)
	Raw []string
}

const usageText = `tombot - a wellbeing chat companion for your terminal

Mr.TomBot is a supportive, non-clinical chat companion. It is not a
substitute for professional mental health care.

Usage:
  tombot                     Start the chat TUI (default)
  tombot ask "question"      Ask a single question and exit
  tombot chat                Interactive chat in the plain terminal
  tombot config [show|set|path]  Configuration
  tombot version, -v         Show version information
  tombot help, -h            Show this help

Ask Command:
  tombot ask "I can't sleep lately"
    --mode concise|segmented   Reply style (default: concise)
    --plain                    Disable markdown rendering
    --model NAME               Override the configured model

Chat Commands (inside tombot chat):
  /new                       Start a new conversation
  /mode [concise|segmented]  Show or switch the reply mode
  /export [md|pdf]           Export the transcript (default: md)
  /help                      Show chat commands
  /quit                      Exit

Configuration:
  tombot config show         Print the active configuration (key redacted)
  tombot config set KEY VAL  Set a configuration value
  tombot config path         Print the config file location

  Config file: ~/.tombot/config.toml
  Set GROQ_API_KEY in the environment or groq.api_key in the config.

Examples:
  tombot
  tombot ask "how do I stop ruminating at night?"
  tombot ask --mode segmented "I had a rough week"
  GROQ_API_KEY=gsk_... tombot chat
`

// PrintUsage prints the usage text to stdout.
func PrintUsage() {
	fmt.Print(usageText)
}

// PrintVersion prints version information.
func PrintVersion() {
	fmt.Printf("tombot %s\n", Version)
	fmt.Printf("  commit:  %s\n", GitCommit)
	fmt.Printf("  built:   %s\n", BuildDate)
	fmt.Printf("  runtime: %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// =============================================================================
// PARSING
// =============================================================================

// Parse parses os.Args style arguments into a Command and Args.
// The first element is expected to be the program name.
func Parse(argv []string) (Command, *Args, error) {
	args := &Args{Mode: "concise"}

	if len(argv) < 2 {
		return CmdTUI, args, nil
	}

	rest := argv[1:]

	switch rest[0] {
	case "help", "--help", "-h":
		return CmdHelp, args, nil
	case "version", "--version", "-v":
		return CmdVersion, args, nil
	case "ask":
		if err := parseAskArgs(rest[1:], args); err != nil {
			return CmdAsk, args, err
		}
		return CmdAsk, args, nil
	case "chat":
		if err := parseFlags(rest[1:], args); err != nil {
			return CmdChat, args, err
		}
		return CmdChat, args, nil
	case "config":
		parseConfigArgs(rest[1:], args)
		return CmdConfig, args, nil
	}

	if strings.HasPrefix(rest[0], "-") {
		return CmdHelp, args, fmt.Errorf("unknown flag: %s", rest[0])
	}
	return CmdHelp, args, fmt.Errorf("unknown command: %s", rest[0])
}

// parseAskArgs parses flags for the ask command; everything that is not a
// flag joins the query.
func parseAskArgs(rest []string, args *Args) error {
	var queryParts []string

	for i := 0; i < len(rest); i++ {
		arg := rest[i]
		switch arg {
		case "--plain":
			args.Plain = true
		case "--mode":
			if i+1 >= len(rest) {
				return fmt.Errorf("--mode requires a value (concise or segmented)")
			}
			i++
			args.Mode = rest[i]
		case "--model":
			if i+1 >= len(rest) {
				return fmt.Errorf("--model requires a value")
			}
			i++
			args.Model = rest[i]
		default:
			if strings.HasPrefix(arg, "-") {
				return fmt.Errorf("unknown flag: %s", arg)
			}
			queryParts = append(queryParts, arg)
		}
	}

	args.Query = strings.TrimSpace(strings.Join(queryParts, " "))
	if args.Query == "" {
		return fmt.Errorf("ask requires a question, e.g. tombot ask \"I can't sleep\"")
	}
	return nil
}

// parseFlags parses the global flags shared by chat and the TUI.
func parseFlags(rest []string, args *Args) error {
	for i := 0; i < len(rest); i++ {
		arg := rest[i]
		switch arg {
		case "--plain":
			args.Plain = true
		case "--mode":
			if i+1 >= len(rest) {
				return fmt.Errorf("--mode requires a value (concise or segmented)")
			}
			i++
			args.Mode = rest[i]
		case "--model":
			if i+1 >= len(rest) {
				return fmt.Errorf("--model requires a value")
			}
			i++
			args.Model = rest[i]
		default:
			return fmt.Errorf("unknown flag: %s", arg)
		}
	}
	return nil
}

// parseConfigArgs splits "config <subcommand> [key] [value]".
func parseConfigArgs(rest []string, args *Args) {
	if len(rest) == 0 {
		args.Subcommand = "show"
		return
	}
	args.Subcommand = rest[0]
	if len(rest) > 1 {
		args.ConfigKey = rest[1]
	}
	if len(rest) > 2 {
		args.ConfigVal = rest[2]
	}
	args.Raw = rest
}

// =============================================================================
// TRIVIAL HANDLERS
// =============================================================================

// HandleVersion handles the version command.
func HandleVersion() int {
	PrintVersion()
	return 0
}

// HandleHelp handles the help command.
func HandleHelp(parseErr error) int {
	if parseErr != nil {
		fmt.Fprintf(os.Stderr, "%s\n\n", renderError(parseErr.Error()))
		PrintUsage()
		return 1
	}
	PrintUsage()
	return 0
}
