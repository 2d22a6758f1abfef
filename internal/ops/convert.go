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

var convertFormats = []string{"simple", "rich", "note", "markdown", "html", "webarchive", "pdf"}

// convertFormatName maps the public format names onto the dictionary's
// enumeration, which spells the paginated variant differently.
func convertFormatName(format string) string {
	if format == "pdf" {
		return "PDF document"
	}
	return format
}

type convertRecordArgs struct {
	recordArgs
	Format               string `json:"format" jsonschema:"description=Target format: simple, rich, note, markdown, html, webarchive or pdf"`
	DestinationGroupUUID string `json:"destination_group_uuid,omitempty" jsonschema:"description=UUID of the group receiving the converted copy; the original's group when empty"`
}

type convertRecordResult struct {
	opResult
	Record *recordSummary `json:"record,omitempty"`
}

func buildConvertRecordScript(app string, in convertRecordArgs) (string, error) {
	s := jxa.NewScript(app)
	s.ResolveRecord("rec", in.ref())
	s.Let("opts", "{}")
	s.Line(`opts["record"] = rec;`)
	s.Linef(`opts["to"] = %s;`, jxa.Quote(convertFormatName(in.Format)))
	if in.DestinationGroupUUID != "" {
		s.ResolveRecord("dest", jxa.RecordRef{UUID: in.DestinationGroupUUID})
		s.Line(`opts["in"] = dest;`)
	}
	s.Let("converted", "app.convert(opts)")
	s.Line(`if (converted === null || converted === undefined) { return dtFail("Conversion failed"); }`)
	s.Let("result", "{}")
	s.Line(`result["success"] = true;`)
	s.Line(`result["record"] = dtRecordSummary(converted);`)
	s.ReturnResult("result")
	return s.Source()
}

func (o *Ops) convertRecordTool() tools.Tool {
	return &tools.ToolDefinition{
		NameValue:        "convert_record",
		DescriptionValue: "Convert a record to another format, creating a new record and leaving the original in place",
		ParametersValue:  tools.MustSchemaParametersFor[convertRecordArgs](),
		ValidateFunc: tools.ChainValidation(
			tools.SafeStrings(),
			requireIdentifier(),
			tools.RequireStringArg("format", "missing or invalid 'format' parameter"),
			tools.OneOfArg("format", convertFormats...),
			uuidField("destination_group_uuid"),
		),
		ExecuteFunc: func(ctx context.Context, args map[string]interface{}) (string, error) {
			var in convertRecordArgs
			if err := decodeArgs(args, &in); err != nil {
				return "", err
			}
			script, err := buildConvertRecordScript(o.cfg.Application, in)
			if err != nil {
				return "", err
			}
			var result convertRecordResult
			if err := o.run(ctx, "convert_record", script, &result); err != nil {
				return "", err
			}
			return encodeResult(result)
		},
	}
}
