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

// recordTypes DEVONthink accepts for createRecordWith.
var recordTypes = []string{"group", "markdown", "txt", "rtf", "bookmark", "webarchive"}

type createRecordArgs struct {
	Name                 string   `json:"name" jsonschema:"description=Name of the new record,minLength=1"`
	Type                 string   `json:"type" jsonschema:"description=Record type: group markdown txt rtf bookmark or webarchive,minLength=1"`
	Content              string   `json:"content,omitempty" jsonschema:"description=Text content for text-like record types"`
	URL                  string   `json:"url,omitempty" jsonschema:"description=URL for bookmark and webarchive records"`
	Tags                 []string `json:"tags,omitempty" jsonschema:"description=Tags to apply to the new record"`
	DestinationGroupUUID string   `json:"destination_group_uuid,omitempty" jsonschema:"description=UUID of the group to create the record in"`
	DestinationPath      string   `json:"destination_path,omitempty" jsonschema:"description=Location path of the destination group"`
	Database             string   `json:"database,omitempty" jsonschema:"description=Database name; defaults to the current database"`
}

type createRecordResult struct {
	opResult
	Record *recordSummary `json:"record,omitempty"`
}

func buildCreateRecordScript(app string, in createRecordArgs) (string, error) {
	props := map[string]interface{}{
		"name": in.Name,
		"type": in.Type,
	}
	if in.Content != "" {
		props["content"] = in.Content
	}
	if in.URL != "" {
		props["URL"] = in.URL
	}
	if len(in.Tags) > 0 {
		props["tags"] = in.Tags
	}

	s := jxa.NewScript(app)
	s.ResolveDatabase("db", in.Database)
	switch {
	case in.DestinationGroupUUID != "":
		s.ResolveRecord("dest", jxa.RecordRef{UUID: in.DestinationGroupUUID})
	case in.DestinationPath != "":
		s.ResolveRecord("dest", jxa.RecordRef{Path: in.DestinationPath, Database: in.Database})
	default:
		s.Let("dest", "db.root()")
	}
	s.Let("props", jxa.Format(props))
	s.Let("rec", "app.createRecordWith(props, { in: dest })")
	s.Line(`if (rec === null || rec === undefined) { return dtFail("DEVONthink did not create the record"); }`)
	s.Let("result", "{}")
	s.Line(`result["success"] = true;`)
	s.Line(`result["record"] = dtRecordSummary(rec);`)
	s.ReturnResult("result")
	return s.Source()
}

func (o *Ops) createRecordTool() tools.Tool {
	return &tools.ToolDefinition{
		NameValue:        "create_record",
		DescriptionValue: "Create a record (document, bookmark or group) in a database, optionally inside a destination group",
		ParametersValue:  tools.MustSchemaParametersFor[createRecordArgs](),
		ValidateFunc: tools.ChainValidation(
			tools.SafeStrings(),
			tools.RequireStringArg("name", "missing or invalid 'name' parameter"),
			tools.RequireStringArg("type", "missing or invalid 'type' parameter"),
			tools.OneOfArg("type", recordTypes...),
			uuidField("destination_group_uuid"),
		),
		ExecuteFunc: func(ctx context.Context, args map[string]interface{}) (string, error) {
			var in createRecordArgs
			if err := decodeArgs(args, &in); err != nil {
				return "", err
			}
			script, err := buildCreateRecordScript(o.cfg.Application, in)
			if err != nil {
				return "", err
			}
			var result createRecordResult
			if err := o.run(ctx, "create_record", script, &result); err != nil {
				return "", err
			}
			return encodeResult(result)
		},
	}
}
