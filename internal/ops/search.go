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

var searchComparisons = []string{"no case", "no umlauts", "fuzzy", "related"}

type searchArgs struct {
	Query      string `json:"query" jsonschema:"description=Search query in the application's query syntax"`
	Database   string `json:"database,omitempty" jsonschema:"description=Database to search; all open databases when empty"`
	GroupUUID  string `json:"group_uuid,omitempty" jsonschema:"description=UUID of a group to scope the search to"`
	Comparison string `json:"comparison,omitempty" jsonschema:"description=Comparison mode: no case, no umlauts, fuzzy or related"`
}

type searchResult struct {
	opResult
	Total   int             `json:"total"`
	Results []recordSummary `json:"results"`
}

func buildSearchScript(app string, in searchArgs, max int) (string, error) {
	s := jxa.NewScript(app)
	switch {
	case in.GroupUUID != "":
		s.ResolveRecord("scope", jxa.RecordRef{UUID: in.GroupUUID})
	case in.Database != "":
		s.ResolveDatabase("scopeDb", in.Database)
		s.Let("scope", "scopeDb.root()")
	default:
		s.Let("scope", "null")
	}
	s.Let("opts", "{}")
	if in.Comparison != "" {
		s.Linef(`opts["comparison"] = %s;`, jxa.Quote(in.Comparison))
	}
	s.Line(`if (scope !== null) { opts["in"] = scope; }`)
	s.Linef("var found = app.search(%s, opts);", jxa.Quote(in.Query))
	s.Line("if (found === null || found === undefined) { found = []; }")
	s.Let("hits", "[]")
	s.Linef("var limit = %d;", max)
	s.Line("for (var i = 0; i < found.length && i < limit; i++) {")
	s.Line("\thits.push(dtRecordSummary(found[i]));")
	s.Line("}")
	s.Let("result", "{}")
	s.Line(`result["success"] = true;`)
	s.Line(`result["total"] = found.length;`)
	s.Line(`result["results"] = hits;`)
	s.ReturnResult("result")
	return s.Source()
}

func (o *Ops) searchTool() tools.Tool {
	return &tools.ToolDefinition{
		NameValue:        "search",
		DescriptionValue: "Search records across databases or inside a group, returning summaries limited to the configured maximum",
		ParametersValue:  tools.MustSchemaParametersFor[searchArgs](),
		ValidateFunc: tools.ChainValidation(
			tools.SafeStrings(),
			tools.RequireStringArg("query", "missing or invalid 'query' parameter"),
			tools.OneOfArg("comparison", searchComparisons...),
			uuidField("group_uuid"),
		),
		ExecuteFunc: func(ctx context.Context, args map[string]interface{}) (string, error) {
			var in searchArgs
			if err := decodeArgs(args, &in); err != nil {
				return "", err
			}
			script, err := buildSearchScript(o.cfg.Application, in, o.cfg.MaxSearchResults)
			if err != nil {
				return "", err
			}
			var result searchResult
			if err := o.run(ctx, "search", script, &result); err != nil {
				return "", err
			}
			return encodeResult(result)
		},
	}
}
