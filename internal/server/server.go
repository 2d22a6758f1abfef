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

// Package server exposes the tool registry over the Model Context
// Protocol. One MCP tool per registry tool; the process speaks the
// protocol on stdio, which is why nothing else in this program may
// print there.
package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	apperrors "dtbridge/internal/errors"
	"dtbridge/internal/tools"
)

// Version is stamped at build time.
var Version = "dev"

// Bridge owns the MCP server wrapping a tool registry.
type Bridge struct {
	registry *tools.Registry
	server   *mcp.Server
	logger   zerolog.Logger
}

// New builds the MCP server and registers every tool from the registry.
func New(registry *tools.Registry, logger zerolog.Logger) (*Bridge, error) {
	b := &Bridge{
		registry: registry,
		server: mcp.NewServer(&mcp.Implementation{
			Name:    "dtbridge",
			Version: Version,
		}, nil),
		logger: logger,
	}
	for _, tool := range registry.Tools() {
		schema, err := schemaFor(tool)
		if err != nil {
			return nil, fmt.Errorf("tool %s: %w", tool.Name(), err)
		}
		name := tool.Name()
		b.server.AddTool(&mcp.Tool{
			Name:        name,
			Description: tool.Description(),
			InputSchema: schema,
		}, b.handler(name))
	}
	return b, nil
}

// Run serves the protocol on stdio until the context ends or the client
// disconnects.
func (b *Bridge) Run(ctx context.Context) error {
	b.logger.Info().Int("tools", len(b.registry.Names())).Msg("Serving MCP on stdio")
	return b.server.Run(ctx, &mcp.StdioTransport{})
}

// schemaFor converts a tool's parameter map into the SDK's schema type.
func schemaFor(tool tools.Tool) (*jsonschema.Schema, error) {
	raw, err := json.Marshal(tool.Parameters())
	if err != nil {
		return nil, err
	}
	var schema jsonschema.Schema
	if err := json.Unmarshal(raw, &schema); err != nil {
		return nil, err
	}
	return &schema, nil
}

// handler adapts one registry tool to the MCP call contract. Domain
// outcomes — validation refusals, resolution misses, success:false
// payloads — come back as IsError results the model can read and react
// to. Only executor faults surface as protocol errors.
func (b *Bridge) handler(name string) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, err := argumentBag(req.Params.Arguments)
		if err != nil {
			return errorResult(fmt.Sprintf("malformed arguments: %v", err)), nil
		}

		result := b.registry.Execute(ctx, name, args)
		if result.Err != nil {
			if apperrors.CodeOf(result.Err) == apperrors.CodeExecution {
				return nil, result.Err
			}
			return errorResult(result.Err.Error()), nil
		}

		out := &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: result.Result}},
		}
		var envelope struct {
			Success bool `json:"success"`
		}
		if err := json.Unmarshal([]byte(result.Result), &envelope); err == nil && !envelope.Success {
			out.IsError = true
		}
		return out, nil
	}
}

// argumentBag normalizes the wire arguments into a plain map. Untyped
// handlers receive them as raw JSON; in-memory transports may hand the
// map through directly.
func argumentBag(arguments interface{}) (map[string]interface{}, error) {
	switch v := arguments.(type) {
	case nil:
		return map[string]interface{}{}, nil
	case map[string]interface{}:
		return v, nil
	case json.RawMessage:
		args := map[string]interface{}{}
		if len(v) == 0 || string(v) == "null" {
			return args, nil
		}
		if err := json.Unmarshal(v, &args); err != nil {
			return nil, err
		}
		return args, nil
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		args := map[string]interface{}{}
		if err := json.Unmarshal(raw, &args); err != nil {
			return nil, err
		}
		return args, nil
	}
}

// errorResult packages a refusal as a JSON payload in an IsError result,
// so every failure the model sees has the same shape.
func errorResult(message string) *mcp.CallToolResult {
	payload, _ := json.Marshal(map[string]interface{}{
		"success": false,
		"error":   message,
	})
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: string(payload)}},
	}
}
