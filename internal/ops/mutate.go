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

type deleteRecordArgs struct {
	recordArgs
}

type mutateResult struct {
	opResult
	Record *recordSummary `json:"record,omitempty"`
}

func buildDeleteRecordScript(app string, ref jxa.RecordRef) (string, error) {
	s := jxa.NewScript(app)
	s.ResolveRecord("rec", ref)
	// Summary taken before deletion; the handle is gone afterwards.
	s.Let("info", "dtRecordSummary(rec)")
	s.Let("ok", "app.delete({ record: rec })")
	s.Line(`if (!ok) { return dtFail("DEVONthink refused to delete the record"); }`)
	s.Let("result", "{}")
	s.Line(`result["success"] = true;`)
	s.Line(`result["record"] = info;`)
	s.ReturnResult("result")
	return s.Source()
}

func (o *Ops) deleteRecordTool() tools.Tool {
	return &tools.ToolDefinition{
		NameValue:        "delete_record",
		DescriptionValue: "Move a record to its database trash",
		ParametersValue:  tools.MustSchemaParametersFor[deleteRecordArgs](),
		DestructiveValue: true,
		ValidateFunc: tools.ChainValidation(
			tools.SafeStrings(),
			requireIdentifier(),
		),
		ExecuteFunc: func(ctx context.Context, args map[string]interface{}) (string, error) {
			var in deleteRecordArgs
			if err := decodeArgs(args, &in); err != nil {
				return "", err
			}
			script, err := buildDeleteRecordScript(o.cfg.Application, in.ref())
			if err != nil {
				return "", err
			}
			var result mutateResult
			if err := o.run(ctx, "delete_record", script, &result); err != nil {
				return "", err
			}
			return encodeResult(result)
		},
	}
}

type moveRecordArgs struct {
	recordArgs
	DestinationGroupUUID string `json:"destination_group_uuid" jsonschema:"description=UUID of the destination group,minLength=1"`
}

func buildMoveRecordScript(app string, ref jxa.RecordRef, destUUID string) (string, error) {
	s := jxa.NewScript(app)
	// Both ends resolve before anything moves; a miss on either side
	// returns the resolver's reason with no side effect.
	s.ResolveRecord("rec", ref)
	s.ResolveRecord("dest", jxa.RecordRef{UUID: destUUID})
	s.Let("moved", "app.move({ record: rec, to: dest })")
	s.Line(`if (moved === null || moved === undefined || moved === false) { return dtFail("DEVONthink refused to move the record"); }`)
	s.Let("result", "{}")
	s.Line(`result["success"] = true;`)
	s.Line(`result["record"] = dtRecordSummary(rec);`)
	s.ReturnResult("result")
	return s.Source()
}

func (o *Ops) moveRecordTool() tools.Tool {
	return &tools.ToolDefinition{
		NameValue:        "move_record",
		DescriptionValue: "Move a record into another group addressed by UUID",
		ParametersValue:  tools.MustSchemaParametersFor[moveRecordArgs](),
		DestructiveValue: true,
		ValidateFunc: tools.ChainValidation(
			tools.SafeStrings(),
			requireIdentifier(),
			tools.RequireStringArg("destination_group_uuid", "missing or invalid 'destination_group_uuid' parameter"),
			uuidField("destination_group_uuid"),
		),
		ExecuteFunc: func(ctx context.Context, args map[string]interface{}) (string, error) {
			var in moveRecordArgs
			if err := decodeArgs(args, &in); err != nil {
				return "", err
			}
			script, err := buildMoveRecordScript(o.cfg.Application, in.ref(), in.DestinationGroupUUID)
			if err != nil {
				return "", err
			}
			var result mutateResult
			if err := o.run(ctx, "move_record", script, &result); err != nil {
				return "", err
			}
			return encodeResult(result)
		},
	}
}

type renameRecordArgs struct {
	recordArgs
	NewName string `json:"new_name" jsonschema:"description=New name for the record,minLength=1"`
}

func buildRenameRecordScript(app string, ref jxa.RecordRef, newName string) (string, error) {
	s := jxa.NewScript(app)
	s.ResolveRecord("rec", ref)
	s.Linef("rec.name = %s;", jxa.Quote(newName))
	s.Let("result", "{}")
	s.Line(`result["success"] = true;`)
	s.Line(`result["record"] = dtRecordSummary(rec);`)
	s.ReturnResult("result")
	return s.Source()
}

func (o *Ops) renameRecordTool() tools.Tool {
	return &tools.ToolDefinition{
		NameValue:        "rename_record",
		DescriptionValue: "Rename a record",
		ParametersValue:  tools.MustSchemaParametersFor[renameRecordArgs](),
		ValidateFunc: tools.ChainValidation(
			tools.SafeStrings(),
			requireIdentifier(),
			tools.RequireStringArg("new_name", "missing or invalid 'new_name' parameter"),
		),
		ExecuteFunc: func(ctx context.Context, args map[string]interface{}) (string, error) {
			var in renameRecordArgs
			if err := decodeArgs(args, &in); err != nil {
				return "", err
			}
			script, err := buildRenameRecordScript(o.cfg.Application, in.ref(), in.NewName)
			if err != nil {
				return "", err
			}
			var result mutateResult
			if err := o.run(ctx, "rename_record", script, &result); err != nil {
				return "", err
			}
			return encodeResult(result)
		},
	}
}
