// Copyright (C) 2025 Dyne.org foundation
// designed, written and maintained by Denis Roio <jaromil@dyne.org>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog"
	"golang.org/x/term"

	"dtbridge/internal/tools"
)

// runREPLMode drives the tool registry interactively: one line per
// call, "tool_name {json args}". Destructive tools ask before running.
func runREPLMode(logger zerolog.Logger) {
	registry, cfg, err := buildRegistry(logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to build tool registry")
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintln(os.Stderr, "Warning: stdin is not a terminal; did you mean serve mode?")
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "dt> ",
		HistoryFile:     cfg.CommandHistoryFile,
		AutoComplete:    getREPLCompleter(registry),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize readline")
	}
	defer rl.Close()

	fmt.Printf("dtbridge repl, target: %s\n", cfg.Application)
	fmt.Println("Type a tool name followed by JSON arguments, /help for commands")
	fmt.Println()

	confirm := newDestructiveConfirm(rl)

	// Main event loop
	for {
		line, err := rl.Readline()
		switch classifyReadlineError(line, err) {
		case readlineContinue:
			continue
		case readlineExit:
			logger.Info().Msg("Session ended")
			return
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		logger.Info().Str("user_input", line).Msg("User input received")

		if strings.HasPrefix(line, "/") {
			if handleREPLCommand(line, registry) {
				logger.Info().Msg("Session ended")
				return
			}
			continue
		}

		runREPLCall(line, registry, confirm, logger)
	}
}

// runREPLCall parses "tool_name {json}" and executes it.
func runREPLCall(line string, registry *tools.Registry, confirm func(string) bool, logger zerolog.Logger) {
	name, rest := splitCommandLine(line)
	tool, ok := registry.Get(name)
	if !ok {
		fmt.Printf("✗ Unknown tool: %s (type /tools for the list)\n", name)
		return
	}
	if rest == "" {
		rest = "{}"
	}
	if tool.Destructive() && !confirm(name) {
		fmt.Println("✗ Cancelled")
		return
	}

	result := registry.ExecuteJSON(context.Background(), name, rest)
	if result.Err != nil {
		logger.Error().Err(result.Err).Str("tool", name).Msg("Tool call failed")
		fmt.Printf("✗ %v\n", result.Err)
		return
	}
	fmt.Println(prettyJSON(result.Result))
}

// handleREPLCommand processes slash commands, returns true if should quit
func handleREPLCommand(input string, registry *tools.Registry) bool {
	name, rest := splitCommandLine(strings.TrimPrefix(input, "/"))
	switch strings.ToLower(name) {
	case "help":
		fmt.Println("\nCommands:")
		fmt.Println("  /tools           list available tools")
		fmt.Println("  /schema <tool>   show a tool's argument schema")
		fmt.Println("  /quit, /exit     leave the repl")
		fmt.Println("\nAnything else is a tool call: tool_name {\"json\": \"args\"}")
		fmt.Println()
		return false

	case "tools":
		for _, toolName := range registry.Names() {
			tool, _ := registry.Get(toolName)
			marker := "  "
			if tool.Destructive() {
				marker = "! "
			}
			fmt.Printf("%s%s - %s\n", marker, toolName, tool.Description())
		}
		return false

	case "schema":
		tool, ok := registry.Get(strings.TrimSpace(rest))
		if !ok {
			fmt.Printf("✗ Unknown tool: %s\n", rest)
			return false
		}
		raw, err := json.MarshalIndent(tool.Parameters(), "", "  ")
		if err != nil {
			fmt.Printf("✗ %v\n", err)
			return false
		}
		fmt.Println(string(raw))
		return false

	case "quit", "exit":
		return true

	default:
		fmt.Printf("✗ Unknown command: /%s (type /help for available commands)\n", name)
		return false
	}
}

// splitCommandLine separates the first word from the rest of the line.
func splitCommandLine(line string) (string, string) {
	line = strings.TrimSpace(line)
	if i := strings.IndexAny(line, " \t"); i >= 0 {
		return line[:i], strings.TrimSpace(line[i+1:])
	}
	return line, ""
}

// getREPLCompleter builds a readline completer from slash commands and
// registered tool names.
func getREPLCompleter(registry *tools.Registry) *readline.PrefixCompleter {
	names := registry.Names()
	items := make([]readline.PrefixCompleterInterface, 0, len(names)+4)
	for _, cmd := range []string{"/help", "/tools", "/schema", "/quit"} {
		items = append(items, readline.PcItem(cmd))
	}
	for _, name := range names {
		items = append(items, readline.PcItem(name))
	}
	return readline.NewPrefixCompleter(items...)
}

// newDestructiveConfirm prompts once per destructive call, remembering
// an "always" answer per tool for the session.
func newDestructiveConfirm(rl *readline.Instance) func(string) bool {
	alwaysAllowed := make(map[string]bool)
	return func(toolName string) bool {
		if alwaysAllowed[toolName] {
			return true
		}
		prompt := rl.Config.Prompt
		rl.SetPrompt(fmt.Sprintf("Run destructive tool %s? [y/N/a] ", toolName))
		answer, err := rl.Readline()
		rl.SetPrompt(prompt)
		if err != nil {
			return false
		}
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "y", "yes":
			return true
		case "a", "always":
			alwaysAllowed[toolName] = true
			return true
		default:
			return false
		}
	}
}
