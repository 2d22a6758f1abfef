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

package ops

import (
	"context"

	"dtbridge/internal/jxa"
	"dtbridge/internal/tools"
)

type tagArgs struct {
	recordArgs
	Tags []string `json:"tags" jsonschema:"description=Tag names to apply"`
}

type tagResult struct {
	opResult
	Record *recordSummary `json:"record,omitempty"`
	Tags   []string       `json:"tags"`
}

// buildAddTagsScript merges the given tags into the record's existing
// set. Applying the same tags twice leaves the record unchanged.
func buildAddTagsScript(app string, ref jxa.RecordRef, tags []string) (string, error) {
	s := jxa.NewScript(app)
	s.ResolveRecord("rec", ref)
	s.Let("current", "rec.tags()")
	s.Line("if (current === null || current === undefined) { current = []; }")
	s.Let("merged", "current.slice()")
	s.Linef("var incoming = %s;", jxa.Format(tags))
	s.Line("for (var i = 0; i < incoming.length; i++) {")
	s.Line("\tif (merged.indexOf(incoming[i]) === -1) { merged.push(incoming[i]); }")
	s.Line("}")
	s.Line("rec.tags = merged;")
	s.Let("result", "{}")
	s.Line(`result["success"] = true;`)
	s.Line(`result["record"] = dtRecordSummary(rec);`)
	s.Line(`result["tags"] = rec.tags();`)
	s.ReturnResult("result")
	return s.Source()
}

// buildRemoveTagsScript filters the given tags out of the record's set.
// Tags the record never carried are ignored.
func buildRemoveTagsScript(app string, ref jxa.RecordRef, tags []string) (string, error) {
	s := jxa.NewScript(app)
	s.ResolveRecord("rec", ref)
	s.Let("current", "rec.tags()")
	s.Line("if (current === null || current === undefined) { current = []; }")
	s.Linef("var drop = %s;", jxa.Format(tags))
	s.Let("kept", "[]")
	s.Line("for (var i = 0; i < current.length; i++) {")
	s.Line("\tif (drop.indexOf(current[i]) === -1) { kept.push(current[i]); }")
	s.Line("}")
	s.Line("rec.tags = kept;")
	s.Let("result", "{}")
	s.Line(`result["success"] = true;`)
	s.Line(`result["record"] = dtRecordSummary(rec);`)
	s.Line(`result["tags"] = rec.tags();`)
	s.ReturnResult("result")
	return s.Source()
}

func (o *Ops) addTagsTool() tools.Tool {
	return &tools.ToolDefinition{
		NameValue:        "add_tags",
		DescriptionValue: "Add tags to a record, preserving its existing tags",
		ParametersValue:  tools.MustSchemaParametersFor[tagArgs](),
		ValidateFunc: tools.ChainValidation(
			tools.SafeStrings(),
			requireIdentifier(),
			tools.RequireStringSliceArg("tags", "missing or invalid 'tags' parameter"),
		),
		ExecuteFunc: func(ctx context.Context, args map[string]interface{}) (string, error) {
			var in tagArgs
			if err := decodeArgs(args, &in); err != nil {
				return "", err
			}
			script, err := buildAddTagsScript(o.cfg.Application, in.ref(), in.Tags)
			if err != nil {
				return "", err
			}
			var result tagResult
			if err := o.run(ctx, "add_tags", script, &result); err != nil {
				return "", err
			}
			return encodeResult(result)
		},
	}
}

func (o *Ops) removeTagsTool() tools.Tool {
	return &tools.ToolDefinition{
		NameValue:        "remove_tags",
		DescriptionValue: "Remove tags from a record; tags it does not carry are ignored",
		ParametersValue:  tools.MustSchemaParametersFor[tagArgs](),
		ValidateFunc: tools.ChainValidation(
			tools.SafeStrings(),
			requireIdentifier(),
			tools.RequireStringSliceArg("tags", "missing or invalid 'tags' parameter"),
		),
		ExecuteFunc: func(ctx context.Context, args map[string]interface{}) (string, error) {
			var in tagArgs
			if err := decodeArgs(args, &in); err != nil {
				return "", err
			}
			script, err := buildRemoveTagsScript(o.cfg.Application, in.ref(), in.Tags)
			if err != nil {
				return "", err
			}
			var result tagResult
			if err := o.run(ctx, "remove_tags", script, &result); err != nil {
				return "", err
			}
			return encodeResult(result)
		},
	}
}
