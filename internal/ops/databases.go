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

type listDatabasesArgs struct{}

type databaseInfo struct {
	Name string `json:"name"`
	UUID string `json:"uuid"`
	Path string `json:"path"`
}

type listDatabasesResult struct {
	opResult
	Databases []databaseInfo `json:"databases,omitempty"`
}

func buildListDatabasesScript(app string) (string, error) {
	s := jxa.NewScript(app)
	s.Let("result", "{}")
	s.Let("list", "[]")
	s.Let("open", "app.databases()")
	s.Line("for (var i = 0; i < open.length; i++) {")
	s.Line("\tvar db = open[i];")
	s.Line("\tvar entry = {};")
	s.Line("\tentry[\"name\"] = db.name();")
	s.Line("\tentry[\"uuid\"] = db.uuid();")
	s.Line("\tentry[\"path\"] = db.path();")
	s.Line("\tlist.push(entry);")
	s.Line("}")
	s.Line(`result["success"] = true;`)
	s.Line(`result["databases"] = list;`)
	s.ReturnResult("result")
	return s.Source()
}

func (o *Ops) listDatabasesTool() tools.Tool {
	return &tools.ToolDefinition{
		NameValue:        "list_databases",
		DescriptionValue: "List all currently open DEVONthink databases with their names, UUIDs and paths",
		ParametersValue:  tools.MustSchemaParametersFor[listDatabasesArgs](),
		ExecuteFunc: func(ctx context.Context, args map[string]interface{}) (string, error) {
			script, err := buildListDatabasesScript(o.cfg.Application)
			if err != nil {
				return "", err
			}
			var result listDatabasesResult
			if err := o.run(ctx, "list_databases", script, &result); err != nil {
				return "", err
			}
			return encodeResult(result)
		},
	}
}
