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

package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// ToolResult represents the result of a tool dispatch. Result holds the
// operation's JSON envelope; Err is set only for failures that never
// produced an envelope (unknown tool, bad arguments, executor faults).
type ToolResult struct {
	Tool   string
	Result string
	Err    error
}

// Registry holds all available tools. It is populated once at startup and
// read-only afterwards; the mutex only guards against misuse during
// registration, not runtime mutation.
type Registry struct {
	mu     sync.RWMutex
	tools  map[string]Tool
	logger zerolog.Logger
}

// NewRegistry creates an empty tool registry.
func NewRegistry(logger zerolog.Logger) *Registry {
	return &Registry{
		tools:  make(map[string]Tool),
		logger: logger,
	}
}

// RegisterTool adds a tool to the registry. Duplicate names are a wiring
// bug and refused.
func (r *Registry) RegisterTool(tool Tool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	name := tool.Name()
	if name == "" {
		return fmt.Errorf("tool has no name")
	}
	if _, exists := r.tools[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateTool, name)
	}
	r.tools[name] = tool
	return nil
}

// Get returns a tool by name.
func (r *Registry) Get(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tool, ok := r.tools[name]
	return tool, ok
}

// Names returns all tool names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Tools returns all registered tools ordered by name.
func (r *Registry) Tools() []Tool {
	names := r.Names()
	out := make([]Tool, 0, len(names))
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, name := range names {
		out = append(out, r.tools[name])
	}
	return out
}

// Execute dispatches one tool call: lookup, undeclared-field check,
// per-tool validation, then the synthesize/run pipeline. Validation
// failures never reach script synthesis.
func (r *Registry) Execute(ctx context.Context, name string, args map[string]interface{}) *ToolResult {
	result := &ToolResult{Tool: name}

	tool, exists := r.Get(name)
	if !exists {
		result.Err = fmt.Errorf("%w: %q (available: %s)", ErrToolNotFound, name, strings.Join(r.Names(), ", "))
		return result
	}

	if err := rejectUndeclaredFields(tool, args); err != nil {
		result.Err = NewValidationError(name, err)
		return result
	}
	if err := tool.Validate(args); err != nil {
		result.Err = NewValidationError(name, err)
		return result
	}

	r.logger.Debug().Str("tool", name).Msg("Dispatching tool call")
	payload, err := tool.Execute(ctx, args)
	if err != nil {
		r.logger.Error().Err(err).Str("tool", name).Msg("Tool execution failed")
		result.Err = NewExecutionError(name, err)
		return result
	}
	result.Result = payload
	return result
}

// ExecuteJSON dispatches a tool call with arguments supplied as a JSON
// document (the transport-facing entry point).
func (r *Registry) ExecuteJSON(ctx context.Context, name, argsJSON string) *ToolResult {
	args := map[string]interface{}{}
	if strings.TrimSpace(argsJSON) != "" {
		if err := json.Unmarshal([]byte(argsJSON), &args); err != nil {
			return &ToolResult{
				Tool: name,
				Err:  NewValidationError(name, fmt.Errorf("%w: %v", ErrInvalidArguments, err)),
			}
		}
	}
	return r.Execute(ctx, name, args)
}

// rejectUndeclaredFields fails on argument keys absent from the tool's
// declared schema, so typos surface as validation errors instead of
// silently ignored input.
func rejectUndeclaredFields(tool Tool, args map[string]interface{}) error {
	params := tool.Parameters()
	declared, _ := params["properties"].(map[string]interface{})
	var unknown []string
	for key := range args {
		if _, ok := declared[key]; !ok {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return fmt.Errorf("%w: undeclared field(s): %s", ErrInvalidArguments, strings.Join(unknown, ", "))
}
