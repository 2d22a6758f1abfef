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

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Config represents the application configuration
type Config struct {
	// Application is the automation target as registered with the
	// scripting bridge, e.g. "DEVONthink 3".
	Application        string         `json:"application,omitempty"`
	Interpreter        string         `json:"interpreter,omitempty"`
	Timeouts           ToolTimeouts   `json:"tool_timeouts,omitempty"`
	MaxContentChars    int            `json:"max_content_chars,omitempty"`
	MaxSearchResults   int            `json:"max_search_results,omitempty"`
	CommandHistoryFile string         `json:"command_history_file,omitempty"`
}

// ToolTimeouts configures tool execution timeouts.
type ToolTimeouts struct {
	DefaultSeconds int            `json:"default_seconds,omitempty"`
	PerToolSeconds map[string]int `json:"per_tool_seconds,omitempty"`
}

// DefaultConfig returns a config with default values
func DefaultConfig() *Config {
	return &Config{
		Application:        "DEVONthink 3",
		Interpreter:        "osascript",
		MaxContentChars:    40000,
		MaxSearchResults:   50,
		CommandHistoryFile: ".dtbridge_history",
		Timeouts: ToolTimeouts{
			DefaultSeconds: 30,
			PerToolSeconds: map[string]int{
				// Conversion and summarization run inside DEVONthink and
				// can take a while on large records.
				"convert_record":   120,
				"summarize_record": 120,
				"search":           60,
			},
		},
	}
}

// LoadConfig reads the configuration file, falling back to defaults when
// the file does not exist. Absent keys keep their default values.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg.applyFloors()
	return cfg, nil
}

func (c *Config) applyFloors() {
	d := DefaultConfig()
	if c.Application == "" {
		c.Application = d.Application
	}
	if c.Interpreter == "" {
		c.Interpreter = d.Interpreter
	}
	if c.MaxContentChars <= 0 {
		c.MaxContentChars = d.MaxContentChars
	}
	if c.MaxSearchResults <= 0 {
		c.MaxSearchResults = d.MaxSearchResults
	}
	if c.Timeouts.DefaultSeconds <= 0 {
		c.Timeouts.DefaultSeconds = d.Timeouts.DefaultSeconds
	}
}

// TimeoutForTool returns the execution deadline for a tool.
func (c *Config) TimeoutForTool(name string) time.Duration {
	if c.Timeouts.PerToolSeconds != nil {
		if secs, ok := c.Timeouts.PerToolSeconds[name]; ok && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return time.Duration(c.Timeouts.DefaultSeconds) * time.Second
}
