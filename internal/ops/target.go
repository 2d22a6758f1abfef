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
	"fmt"

	"github.com/google/uuid"

	"dtbridge/internal/jxa"
	"dtbridge/internal/tools"
)

// recordArgs is the identifier bundle shared by every record-addressed
// tool. Precedence on resolution is uuid > id+database > path+database.
type recordArgs struct {
	UUID     string `json:"uuid,omitempty" jsonschema:"description=Record UUID (preferred; globally unique across databases)"`
	ID       *int64 `json:"id,omitempty" jsonschema:"description=Database-scoped numeric record id"`
	Path     string `json:"path,omitempty" jsonschema:"description=Location path inside the database (a DEVONthink location like /Inbox/Notes, never a filesystem path)"`
	Database string `json:"database,omitempty" jsonschema:"description=Database name for id/path lookups; defaults to the current database"`
}

func (a recordArgs) ref() jxa.RecordRef {
	return jxa.RecordRef{
		UUID:     a.UUID,
		ID:       a.ID,
		Path:     a.Path,
		Database: a.Database,
	}
}

// refFromArgs assembles a RecordRef straight from the raw argument bag,
// for validation rules that run before typed decoding.
func refFromArgs(args map[string]interface{}) jxa.RecordRef {
	var ref jxa.RecordRef
	if s, ok := args["uuid"].(string); ok {
		ref.UUID = s
	}
	if n, ok := args["id"].(float64); ok {
		id := int64(n)
		ref.ID = &id
	}
	if s, ok := args["path"].(string); ok {
		ref.Path = s
	}
	if s, ok := args["database"].(string); ok {
		ref.Database = s
	}
	return ref
}

// requireIdentifier is the validation rule enforcing the bundle
// invariant: at least one of uuid/id/path, and a well-formed uuid when
// given. Runs before any script is synthesized.
func requireIdentifier() tools.ValidationRule {
	return func(args map[string]interface{}) error {
		return refFromArgs(args).Validate()
	}
}

// uuidField validates an optional UUID-typed argument.
func uuidField(key string) tools.ValidationRule {
	return func(args map[string]interface{}) error {
		value, ok := args[key].(string)
		if !ok || value == "" {
			return nil
		}
		if _, err := uuid.Parse(value); err != nil {
			return fmt.Errorf("field %q is not a valid UUID", key)
		}
		return nil
	}
}
