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
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"dtbridge/internal/config"
	apperrors "dtbridge/internal/errors"
	"dtbridge/internal/jxa"
	"dtbridge/internal/tools"
)

// fakeRegistry builds a full tool registry whose executor runs a shell
// snippet instead of osascript. The snippet must consume stdin and print
// one JSON document, mimicking the interpreter contract.
func fakeRegistry(t *testing.T, snippet string) *tools.Registry {
	t.Helper()
	cfg := config.DefaultConfig()
	exec := &jxa.Executor{Command: "sh", Args: []string{"-c", snippet}}
	registry := tools.NewRegistry(zerolog.Nop())
	if err := RegisterAll(registry, New(exec, cfg, zerolog.Nop())); err != nil {
		t.Fatalf("registering tools: %v", err)
	}
	return registry
}

func TestRegisterAllExposesEveryTool(t *testing.T) {
	registry := fakeRegistry(t, `cat >/dev/null; printf '{"success": true}'`)
	want := []string{
		"add_tags", "classify_record", "convert_record", "create_group",
		"create_record", "delete_record", "get_record_content",
		"get_record_properties", "list_databases", "list_group_content",
		"move_record", "remove_tags", "rename_record", "search",
		"summarize_record",
	}
	got := registry.Names()
	if len(got) != len(want) {
		t.Fatalf("got %d tools, want %d: %v", len(got), len(want), got)
	}
	for i, name := range want {
		if got[i] != name {
			t.Errorf("tool %d: got %q, want %q", i, got[i], name)
		}
	}
}

func TestDestructiveToolsAreFlagged(t *testing.T) {
	registry := fakeRegistry(t, `cat >/dev/null; printf '{"success": true}'`)
	destructive := map[string]bool{
		"delete_record": true,
		"move_record":   true,
	}
	for _, name := range registry.Names() {
		tool, ok := registry.Get(name)
		if !ok {
			t.Fatalf("get %s: not registered", name)
		}
		if tool.Destructive() != destructive[name] {
			t.Errorf("%s: destructive = %v, want %v", name, tool.Destructive(), destructive[name])
		}
	}
}

func TestListDatabasesRoundTrip(t *testing.T) {
	registry := fakeRegistry(t,
		`cat >/dev/null; printf '{"success": true, "databases": [{"name": "Inbox", "uuid": "U1", "path": "/db/Inbox"}]}'`)
	result := registry.Execute(context.Background(), "list_databases", map[string]interface{}{})
	if result.Err != nil {
		t.Fatalf("execute failed: %v", result.Err)
	}
	var decoded listDatabasesResult
	if err := json.Unmarshal([]byte(result.Result), &decoded); err != nil {
		t.Fatalf("result is not JSON: %v", err)
	}
	if !decoded.Success || len(decoded.Databases) != 1 || decoded.Databases[0].Name != "Inbox" {
		t.Errorf("unexpected result: %+v", decoded)
	}
}

func TestResolutionFailureIsAResultNotAnError(t *testing.T) {
	registry := fakeRegistry(t,
		`cat >/dev/null; printf '{"success": false, "error": "Record not found for UUID: 2f5a7d6e-1c3b-4a5f-9e8d-7c6b5a4f3e2d"}'`)
	result := registry.Execute(context.Background(), "get_record_properties",
		map[string]interface{}{"uuid": sampleUUID})
	if result.Err != nil {
		t.Fatalf("a not-found payload must not be a transport error, got: %v", result.Err)
	}
	if !strings.Contains(result.Result, "Record not found for UUID") {
		t.Errorf("not-found reason lost: %s", result.Result)
	}
}

func TestMissingIdentifierRejectedBeforeExecution(t *testing.T) {
	registry := fakeRegistry(t, `echo "interpreter must not run" >&2; exit 1`)
	result := registry.Execute(context.Background(), "delete_record", map[string]interface{}{})
	if result.Err == nil {
		t.Fatal("expected a validation error")
	}
	if apperrors.CodeOf(result.Err) == apperrors.CodeExecution {
		t.Error("validation failure reached the interpreter")
	}
}

func TestInvalidEnumRejected(t *testing.T) {
	registry := fakeRegistry(t, `cat >/dev/null; printf '{"success": true}'`)
	result := registry.Execute(context.Background(), "convert_record",
		map[string]interface{}{"uuid": sampleUUID, "format": "docx"})
	if result.Err == nil {
		t.Fatal("expected a validation error for unknown format")
	}
	if !strings.Contains(result.Err.Error(), "format") {
		t.Errorf("error does not name the field: %v", result.Err)
	}
}

func TestMalformedUUIDRejected(t *testing.T) {
	registry := fakeRegistry(t, `cat >/dev/null; printf '{"success": true}'`)
	result := registry.Execute(context.Background(), "move_record",
		map[string]interface{}{"uuid": sampleUUID, "destination_group_uuid": "not-a-uuid"})
	if result.Err == nil {
		t.Fatal("expected a validation error for malformed destination UUID")
	}
}

func TestControlCharacterInArgumentRejected(t *testing.T) {
	registry := fakeRegistry(t, `cat >/dev/null; printf '{"success": true}'`)
	result := registry.Execute(context.Background(), "create_group",
		map[string]interface{}{"path": "/Inbox/bad\x00name"})
	if result.Err == nil {
		t.Fatal("expected a validation error for control character")
	}
}

func TestContentTruncatedToConfiguredLimit(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.MaxContentChars = 10
	long := strings.Repeat("a", 64)
	exec := &jxa.Executor{Command: "sh", Args: []string{"-c",
		`cat >/dev/null; printf '{"success": true, "record": {"uuid": "U", "id": 1, "name": "n", "type": "txt", "location": "/", "database": "db"}, "content": "` + long + `"}'`}}
	registry := tools.NewRegistry(zerolog.Nop())
	if err := RegisterAll(registry, New(exec, cfg, zerolog.Nop())); err != nil {
		t.Fatalf("registering tools: %v", err)
	}
	result := registry.Execute(context.Background(), "get_record_content",
		map[string]interface{}{"uuid": sampleUUID})
	if result.Err != nil {
		t.Fatalf("execute failed: %v", result.Err)
	}
	var decoded getRecordContentResult
	if err := json.Unmarshal([]byte(result.Result), &decoded); err != nil {
		t.Fatalf("result is not JSON: %v", err)
	}
	if len(decoded.Content) != 10 {
		t.Errorf("content length = %d, want 10", len(decoded.Content))
	}
	if !decoded.Truncated {
		t.Error("truncated flag not set")
	}
}

func TestUndeclaredArgumentRejected(t *testing.T) {
	registry := fakeRegistry(t, `cat >/dev/null; printf '{"success": true}'`)
	result := registry.Execute(context.Background(), "search",
		map[string]interface{}{"query": "x", "querry": "typo"})
	if result.Err == nil {
		t.Fatal("expected a validation error for undeclared field")
	}
}
