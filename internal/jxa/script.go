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

package jxa

import (
	"fmt"
	"strings"
)

// Script accumulates the body of one generated program. The finished
// source is a single self-invoking function whose value is exactly one
// JSON document, so osascript prints nothing else: the try/catch turns
// every thrown automation error into a {success:false} payload, and the
// body never writes to stdout or stderr on its own.
type Script struct {
	app  string
	body strings.Builder
}

// NewScript starts a script targeting the named application. The helper
// fragments (dtGetDatabase, dtGetRecord, dtRecordSummary, dtFail) are
// always injected; they are declarations only and cost nothing unused.
func NewScript(app string) *Script {
	return &Script{app: app}
}

// Line appends one raw statement to the body. Fragments passed here must
// already be safe: caller input reaches Line only through Quote or Format.
func (s *Script) Line(stmt string) {
	s.body.WriteString("\t\t")
	s.body.WriteString(stmt)
	s.body.WriteString("\n")
}

// Linef appends one formatted statement.
func (s *Script) Linef(format string, args ...interface{}) {
	s.Line(fmt.Sprintf(format, args...))
}

// Let declares a body variable bound to an expression.
func (s *Script) Let(name, expr string) {
	s.Linef("var %s = %s;", name, expr)
}

// ResolveRecord emits a dtGetRecord call binding the resolved handle to
// name. A resolution miss returns the helper's specific not-found reason
// as a success:false payload before any side effect runs.
func (s *Script) ResolveRecord(name string, ref RecordRef) {
	s.Linef("var %s_r = dtGetRecord(app, %s);", name, ref.SpecExpr())
	s.Linef(`if (%s_r["record"] === null) { return dtFail(%s_r["error"]); }`, name, name)
	s.Linef(`var %s = %s_r["record"];`, name, name)
}

// ResolveDatabase emits a dtGetDatabase call binding the database handle
// to name. An empty database name resolves the current database.
func (s *Script) ResolveDatabase(name, database string) {
	s.Linef("var %s_r = dtGetDatabase(app, %s);", name, Quote(database))
	s.Linef(`if (%s_r["database"] === null) { return dtFail(%s_r["error"]); }`, name, name)
	s.Linef(`var %s = %s_r["database"];`, name, name)
}

// ReturnResult emits the final serialization of a bound result object.
// The object must have been built via bracket assignment; it is never an
// inline literal.
func (s *Script) ReturnResult(name string) {
	s.Linef("return JSON.stringify(%s);", name)
}

// Source assembles the complete program.
func (s *Script) Source() (string, error) {
	helpers, err := Helpers()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("(function(){\n")
	b.WriteString(indent(helpers, "\t"))
	b.WriteString(fmt.Sprintf("\tvar app = Application(%s);\n", Quote(s.app)))
	b.WriteString("\ttry {\n")
	b.WriteString(s.body.String())
	b.WriteString("\t} catch (e) {\n")
	b.WriteString("\t\treturn dtFail(e && e.message ? e.message : e);\n")
	b.WriteString("\t}\n")
	b.WriteString("})()\n")
	return b.String(), nil
}

func indent(text, prefix string) string {
	lines := strings.Split(text, "\n")
	var b strings.Builder
	for _, line := range lines {
		if line == "" {
			b.WriteString("\n")
			continue
		}
		b.WriteString(prefix)
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
