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

// Package ops defines one tool per DEVONthink operation. Each tool is a
// thin synthesizer: validate typed arguments, build a script from
// sanitized fragments, run it, decode the JSON envelope. All shared
// machinery lives in the jxa and tools packages.
package ops

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"dtbridge/internal/config"
	apperrors "dtbridge/internal/errors"
	"dtbridge/internal/jxa"
	"dtbridge/internal/tools"
)

// Ops wires the operation tools to one executor and configuration.
type Ops struct {
	exec   *jxa.Executor
	cfg    *config.Config
	logger zerolog.Logger
}

// New creates the operation set.
func New(exec *jxa.Executor, cfg *config.Config, logger zerolog.Logger) *Ops {
	return &Ops{exec: exec, cfg: cfg, logger: logger}
}

// RegisterAll registers every operation tool on the registry. The
// registry is immutable afterwards.
func RegisterAll(r *tools.Registry, o *Ops) error {
	all := []tools.Tool{
		o.listDatabasesTool(),
		o.listGroupContentTool(),
		o.createGroupTool(),
		o.createRecordTool(),
		o.deleteRecordTool(),
		o.moveRecordTool(),
		o.renameRecordTool(),
		o.getRecordPropertiesTool(),
		o.getRecordContentTool(),
		o.searchTool(),
		o.addTagsTool(),
		o.removeTagsTool(),
		o.convertRecordTool(),
		o.summarizeRecordTool(),
		o.classifyRecordTool(),
	}
	for _, tool := range all {
		if err := r.RegisterTool(tool); err != nil {
			return err
		}
	}
	return nil
}

// opResult is the envelope every generated script emits. success:false
// always pairs with a non-empty error; success:true never carries one.
type opResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// recordSummary mirrors the dtRecordSummary helper's plain-data unpack
// of a record handle.
type recordSummary struct {
	UUID     string `json:"uuid"`
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Location string `json:"location"`
	Database string `json:"database"`
}

// run executes a synthesized script under the tool's deadline and
// decodes the envelope into out.
func (o *Ops) run(ctx context.Context, tool, script string, out interface{}) error {
	timeout := o.cfg.TimeoutForTool(tool)
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	o.logger.Debug().Str("tool", tool).Int("script_bytes", len(script)).Msg("Running synthesized script")
	return o.exec.RunDecoded(ctx, script, out)
}

// decodeArgs converts the validated argument bag into a typed struct.
func decodeArgs(args map[string]interface{}, out interface{}) error {
	raw, err := json.Marshal(args)
	if err == nil {
		err = json.Unmarshal(raw, out)
	}
	if err != nil {
		return apperrors.Wrap(apperrors.CodeValidation, "malformed arguments", err)
	}
	return nil
}

// encodeResult serializes a typed result back into the envelope text the
// dispatcher hands to the transport.
func encodeResult(v interface{}) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", apperrors.Wrap(apperrors.CodeScript, "result not serializable", err)
	}
	return string(raw), nil
}
