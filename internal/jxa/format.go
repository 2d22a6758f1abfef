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
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Format converts a Go value into a JXA source expression.
//
// Scalars become literals. Maps never become object literals: the JXA
// bridge mis-resolves literal keys that collide with scripting-dictionary
// identifiers, and a function cannot return an object literal directly.
// Maps are therefore emitted as a self-invoking function that declares an
// empty object, bracket-assigns each key, and returns the bound variable.
// Every structured value in generated source must go through this path.
func Format(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case string:
		return Quote(v)
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return formatFloat(v)
	case json.Number:
		return v.String()
	case []string:
		items := make([]interface{}, len(v))
		for i, s := range v {
			items[i] = s
		}
		return formatSlice(items)
	case []interface{}:
		return formatSlice(v)
	case map[string]interface{}:
		return formatMap(v)
	default:
		// Unknown types are rendered through their string form, quoted.
		// Synthesizers only ever pass the types above, so this is a
		// belt for hand-written fragments in tests.
		return Quote(fmt.Sprint(v))
	}
}

func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if s == "+Inf" || s == "-Inf" || s == "NaN" {
		return "null"
	}
	return s
}

func formatSlice(items []interface{}) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = Format(item)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// formatMap emits the declare/bracket-assign/return pattern. Keys are
// sorted so the same input always synthesizes the same source.
func formatMap(m map[string]interface{}) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("(function(){ var o = {};")
	for _, k := range keys {
		fmt.Fprintf(&b, " o[%s] = %s;", Quote(k), Format(m[k]))
	}
	b.WriteString(" return o; })()")
	return b.String()
}
