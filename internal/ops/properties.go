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

type getRecordPropertiesArgs struct {
	recordArgs
}

type recordProperties struct {
	Tags             []string `json:"tags"`
	URL              string   `json:"url"`
	Comment          string   `json:"comment"`
	Size             int64    `json:"size"`
	WordCount        int64    `json:"word_count"`
	CreationDate     string   `json:"creation_date"`
	ModificationDate string   `json:"modification_date"`
}

type getRecordPropertiesResult struct {
	opResult
	Record     *recordSummary    `json:"record,omitempty"`
	Properties *recordProperties `json:"properties,omitempty"`
}

func buildGetRecordPropertiesScript(app string, ref jxa.RecordRef) (string, error) {
	s := jxa.NewScript(app)
	s.ResolveRecord("rec", ref)
	s.Let("extra", "{}")
	s.Line(`extra["tags"] = rec.tags();`)
	s.Line(`extra["url"] = rec.url() || "";`)
	s.Line(`extra["comment"] = rec.comment() || "";`)
	s.Line(`extra["size"] = rec.size();`)
	s.Line(`extra["word_count"] = rec.wordCount();`)
	s.Line(`extra["creation_date"] = String(rec.creationDate());`)
	s.Line(`extra["modification_date"] = String(rec.modificationDate());`)
	s.Let("result", "{}")
	s.Line(`result["success"] = true;`)
	s.Line(`result["record"] = dtRecordSummary(rec);`)
	s.Line(`result["properties"] = extra;`)
	s.ReturnResult("result")
	return s.Source()
}

func (o *Ops) getRecordPropertiesTool() tools.Tool {
	return &tools.ToolDefinition{
		NameValue:        "get_record_properties",
		DescriptionValue: "Read a record's metadata: identifiers, location, tags, dates, size, URL and comment",
		ParametersValue:  tools.MustSchemaParametersFor[getRecordPropertiesArgs](),
		ValidateFunc: tools.ChainValidation(
			tools.SafeStrings(),
			requireIdentifier(),
		),
		ExecuteFunc: func(ctx context.Context, args map[string]interface{}) (string, error) {
			var in getRecordPropertiesArgs
			if err := decodeArgs(args, &in); err != nil {
				return "", err
			}
			script, err := buildGetRecordPropertiesScript(o.cfg.Application, in.ref())
			if err != nil {
				return "", err
			}
			var result getRecordPropertiesResult
			if err := o.run(ctx, "get_record_properties", script, &result); err != nil {
				return "", err
			}
			return encodeResult(result)
		},
	}
}

type getRecordContentArgs struct {
	recordArgs
}

type getRecordContentResult struct {
	opResult
	Record    *recordSummary `json:"record,omitempty"`
	Content   string         `json:"content"`
	Truncated bool           `json:"truncated,omitempty"`
}

func buildGetRecordContentScript(app string, ref jxa.RecordRef) (string, error) {
	s := jxa.NewScript(app)
	s.ResolveRecord("rec", ref)
	s.Let("text", `""`)
	s.Line("try { text = rec.plainText(); } catch (ignored) {}")
	s.Line(`if (text === null || text === undefined || text === "") { try { text = rec.source(); } catch (ignored) {} }`)
	s.Line(`if (text === null || text === undefined) { text = ""; }`)
	s.Let("result", "{}")
	s.Line(`result["success"] = true;`)
	s.Line(`result["record"] = dtRecordSummary(rec);`)
	s.Line(`result["content"] = String(text);`)
	s.ReturnResult("result")
	return s.Source()
}

func (o *Ops) getRecordContentTool() tools.Tool {
	return &tools.ToolDefinition{
		NameValue:        "get_record_content",
		DescriptionValue: "Read a record's text content (plain text, or source for markup records), truncated to the configured limit",
		ParametersValue:  tools.MustSchemaParametersFor[getRecordContentArgs](),
		ValidateFunc: tools.ChainValidation(
			tools.SafeStrings(),
			requireIdentifier(),
		),
		ExecuteFunc: func(ctx context.Context, args map[string]interface{}) (string, error) {
			var in getRecordContentArgs
			if err := decodeArgs(args, &in); err != nil {
				return "", err
			}
			script, err := buildGetRecordContentScript(o.cfg.Application, in.ref())
			if err != nil {
				return "", err
			}
			var result getRecordContentResult
			if err := o.run(ctx, "get_record_content", script, &result); err != nil {
				return "", err
			}
			if result.Success {
				content, cut := tools.Truncate(tools.StripControl(result.Content), o.cfg.MaxContentChars)
				result.Content = content
				result.Truncated = cut
			}
			return encodeResult(result)
		},
	}
}
