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
	"fmt"

	"dtbridge/internal/jxa"
	"dtbridge/internal/tools"
)

type createGroupArgs struct {
	Path     string `json:"path" jsonschema:"description=Location path of the group to create; intermediate groups are created as needed,minLength=1"`
	Database string `json:"database,omitempty" jsonschema:"description=Database name; defaults to the current database"`
}

type createGroupResult struct {
	opResult
	Group *recordSummary `json:"group,omitempty"`
}

func buildCreateGroupScript(app string, in createGroupArgs) (string, error) {
	s := jxa.NewScript(app)
	s.ResolveDatabase("db", in.Database)
	s.Let("grp", fmt.Sprintf("app.createLocation(%s, { in: db })", jxa.Quote(in.Path)))
	s.Line(`if (grp === null || grp === undefined) { return dtFail("DEVONthink did not create the group"); }`)
	s.Let("result", "{}")
	s.Line(`result["success"] = true;`)
	s.Line(`result["group"] = dtRecordSummary(grp);`)
	s.ReturnResult("result")
	return s.Source()
}

func (o *Ops) createGroupTool() tools.Tool {
	return &tools.ToolDefinition{
		NameValue:        "create_group",
		DescriptionValue: "Create a group at a location path, creating intermediate groups as needed",
		ParametersValue:  tools.MustSchemaParametersFor[createGroupArgs](),
		ValidateFunc: tools.ChainValidation(
			tools.SafeStrings(),
			tools.RequireStringArg("path", "missing or invalid 'path' parameter"),
		),
		ExecuteFunc: func(ctx context.Context, args map[string]interface{}) (string, error) {
			var in createGroupArgs
			if err := decodeArgs(args, &in); err != nil {
				return "", err
			}
			script, err := buildCreateGroupScript(o.cfg.Application, in)
			if err != nil {
				return "", err
			}
			var result createGroupResult
			if err := o.run(ctx, "create_group", script, &result); err != nil {
				return "", err
			}
			return encodeResult(result)
		},
	}
}

type listGroupContentArgs struct {
	recordArgs
}

type listGroupContentResult struct {
	opResult
	Group    *recordSummary  `json:"group,omitempty"`
	Children []recordSummary `json:"children,omitempty"`
}

func buildListGroupContentScript(app string, ref jxa.RecordRef) (string, error) {
	s := jxa.NewScript(app)
	s.ResolveRecord("grp", ref)
	s.Let("kind", "String(grp.recordType())")
	s.Line(`if (kind !== "group" && kind !== "smart group") { return dtFail("Record is not a group: " + grp.name()); }`)
	s.Let("result", "{}")
	s.Let("list", "[]")
	s.Let("kids", "grp.children()")
	s.Line("for (var i = 0; i < kids.length; i++) {")
	s.Line("\tlist.push(dtRecordSummary(kids[i]));")
	s.Line("}")
	s.Line(`result["success"] = true;`)
	s.Line(`result["group"] = dtRecordSummary(grp);`)
	s.Line(`result["children"] = list;`)
	s.ReturnResult("result")
	return s.Source()
}

func (o *Ops) listGroupContentTool() tools.Tool {
	return &tools.ToolDefinition{
		NameValue:        "list_group_content",
		DescriptionValue: "List the immediate children of a group addressed by uuid, id or path",
		ParametersValue:  tools.MustSchemaParametersFor[listGroupContentArgs](),
		ValidateFunc: tools.ChainValidation(
			tools.SafeStrings(),
			requireIdentifier(),
		),
		ExecuteFunc: func(ctx context.Context, args map[string]interface{}) (string, error) {
			var in listGroupContentArgs
			if err := decodeArgs(args, &in); err != nil {
				return "", err
			}
			script, err := buildListGroupContentScript(o.cfg.Application, in.ref())
			if err != nil {
				return "", err
			}
			var result listGroupContentResult
			if err := o.run(ctx, "list_group_content", script, &result); err != nil {
				return "", err
			}
			return encodeResult(result)
		},
	}
}
