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
	"io"
	"os"
	"text/tabwriter"

	"github.com/rs/zerolog"
)

// runCallMode executes one tool with JSON arguments from stdin and
// prints the result envelope. Handy for scripting and debugging without
// an MCP client.
func runCallMode(logger zerolog.Logger, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: dtbridge call <tool> < args.json")
		os.Exit(2)
	}
	toolName := args[0]

	registry, _, err := buildRegistry(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	input, err := io.ReadAll(os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading arguments: %v\n", err)
		os.Exit(1)
	}
	if len(input) == 0 {
		input = []byte("{}")
	}

	result := registry.ExecuteJSON(context.Background(), toolName, string(input))
	if result.Err != nil {
		logger.Error().Err(result.Err).Str("tool", toolName).Msg("Tool call failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", result.Err)
		os.Exit(1)
	}
	fmt.Println(prettyJSON(result.Result))
}

// runToolsMode lists every tool with its description.
func runToolsMode(logger zerolog.Logger) {
	registry, _, err := buildRegistry(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, name := range registry.Names() {
		tool, _ := registry.Get(name)
		marker := " "
		if tool.Destructive() {
			marker = "!"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", marker, name, tool.Description())
	}
	w.Flush()
}

func prettyJSON(raw string) string {
	var v interface{}
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return raw
	}
	pretty, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return raw
	}
	return string(pretty)
}
