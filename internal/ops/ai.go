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

var summaryFormats = []string{"markdown", "rich", "sheet"}

type summarizeRecordArgs struct {
	recordArgs
	Format               string `json:"format,omitempty" jsonschema:"description=Summary format: markdown (default), rich or sheet"`
	DestinationGroupUUID string `json:"destination_group_uuid,omitempty" jsonschema:"description=UUID of the group receiving the summary; the record's group when empty"`
}

type summarizeRecordResult struct {
	opResult
	Record *recordSummary `json:"record,omitempty"`
}

func buildSummarizeRecordScript(app string, in summarizeRecordArgs) (string, error) {
	format := in.Format
	if format == "" {
		format = "markdown"
	}
	s := jxa.NewScript(app)
	s.ResolveRecord("rec", in.ref())
	s.Let("opts", "{}")
	s.Line(`opts["records"] = [rec];`)
	s.Linef(`opts["to"] = %s;`, jxa.Quote(format))
	if in.DestinationGroupUUID != "" {
		s.ResolveRecord("dest", jxa.RecordRef{UUID: in.DestinationGroupUUID})
		s.Line(`opts["in"] = dest;`)
	}
	s.Let("summary", "app.summarizeHighlightsOf(opts)")
	s.Line(`if (summary === null || summary === undefined) { return dtFail("Summarization produced no record"); }`)
	s.Let("result", "{}")
	s.Line(`result["success"] = true;`)
	s.Line(`result["record"] = dtRecordSummary(summary);`)
	s.ReturnResult("result")
	return s.Source()
}

func (o *Ops) summarizeRecordTool() tools.Tool {
	return &tools.ToolDefinition{
		NameValue:        "summarize_record",
		DescriptionValue: "Create a new record summarizing the given record's highlights and annotations",
		ParametersValue:  tools.MustSchemaParametersFor[summarizeRecordArgs](),
		ValidateFunc: tools.ChainValidation(
			tools.SafeStrings(),
			requireIdentifier(),
			tools.OneOfArg("format", summaryFormats...),
			uuidField("destination_group_uuid"),
		),
		ExecuteFunc: func(ctx context.Context, args map[string]interface{}) (string, error) {
			var in summarizeRecordArgs
			if err := decodeArgs(args, &in); err != nil {
				return "", err
			}
			script, err := buildSummarizeRecordScript(o.cfg.Application, in)
			if err != nil {
				return "", err
			}
			var result summarizeRecordResult
			if err := o.run(ctx, "summarize_record", script, &result); err != nil {
				return "", err
			}
			return encodeResult(result)
		},
	}
}

type classifyRecordArgs struct {
	recordArgs
}

type classifyProposal struct {
	Name     string  `json:"name"`
	Location string  `json:"location"`
	UUID     string  `json:"uuid,omitempty"`
	Score    float64 `json:"score,omitempty"`
}

type classifyRecordResult struct {
	opResult
	Record    *recordSummary     `json:"record,omitempty"`
	Proposals []classifyProposal `json:"proposals"`
}

// buildClassifyRecordScript asks the application for filing proposals.
// The returned items are suggestion objects, not records, so each field
// is unpacked defensively.
func buildClassifyRecordScript(app string, ref jxa.RecordRef) (string, error) {
	s := jxa.NewScript(app)
	s.ResolveRecord("rec", ref)
	s.Let("suggestions", "app.classify({ record: rec })")
	s.Line("if (suggestions === null || suggestions === undefined) { suggestions = []; }")
	s.Let("proposals", "[]")
	s.Line("for (var i = 0; i < suggestions.length; i++) {")
	s.Line("\tvar sg = suggestions[i];")
	s.Line("\tvar p = {};")
	s.Line("\t" + `try { p["name"] = sg.name(); } catch (ignored) { p["name"] = ""; }`)
	s.Line("\t" + `try { p["location"] = sg.location(); } catch (ignored) { p["location"] = ""; }`)
	s.Line("\t" + `try { p["uuid"] = sg.uuid(); } catch (ignored) { p["uuid"] = ""; }`)
	s.Line("\t" + `try { p["score"] = sg.score(); } catch (ignored) { p["score"] = 0; }`)
	s.Line("\tproposals.push(p);")
	s.Line("}")
	s.Let("result", "{}")
	s.Line(`result["success"] = true;`)
	s.Line(`result["record"] = dtRecordSummary(rec);`)
	s.Line(`result["proposals"] = proposals;`)
	s.ReturnResult("result")
	return s.Source()
}

func (o *Ops) classifyRecordTool() tools.Tool {
	return &tools.ToolDefinition{
		NameValue:        "classify_record",
		DescriptionValue: "Ask the application for filing proposals: groups where the record would fit, ranked by relevance",
		ParametersValue:  tools.MustSchemaParametersFor[classifyRecordArgs](),
		ValidateFunc: tools.ChainValidation(
			tools.SafeStrings(),
			requireIdentifier(),
		),
		ExecuteFunc: func(ctx context.Context, args map[string]interface{}) (string, error) {
			var in classifyRecordArgs
			if err := decodeArgs(args, &in); err != nil {
				return "", err
			}
			script, err := buildClassifyRecordScript(o.cfg.Application, in.ref())
			if err != nil {
				return "", err
			}
			var result classifyRecordResult
			if err := o.run(ctx, "classify_record", script, &result); err != nil {
				return "", err
			}
			return encodeResult(result)
		},
	}
}
