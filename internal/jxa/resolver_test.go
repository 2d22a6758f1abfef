package jxa

import (
	"strings"
	"testing"

	apperrors "dtbridge/internal/errors"
)

func int64p(v int64) *int64 { return &v }

func TestRecordRefValidate(t *testing.T) {
	cases := []struct {
		name    string
		ref     RecordRef
		wantErr bool
	}{
		{"uuid only", RecordRef{UUID: "7F9C38C2-4A2B-4E0D-9E4C-1B2D3F4A5B6C"}, false},
		{"lowercase uuid", RecordRef{UUID: "7f9c38c2-4a2b-4e0d-9e4c-1b2d3f4a5b6c"}, false},
		{"id with database", RecordRef{ID: int64p(42), Database: "Research"}, false},
		{"id without database", RecordRef{ID: int64p(42)}, false},
		{"path", RecordRef{Path: "/Inbox/Notes", Database: "Research"}, false},
		{"nothing", RecordRef{}, true},
		{"bad uuid", RecordRef{UUID: "not-a-uuid"}, true},
		{"control char in path", RecordRef{Path: "/Inbox/\x00"}, true},
		{"control char in database", RecordRef{Path: "/a", Database: "bad\x1b"}, true},
	}
	for _, tc := range cases {
		err := tc.ref.Validate()
		if tc.wantErr && err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
		if !tc.wantErr && err != nil {
			t.Errorf("%s: unexpected error: %v", tc.name, err)
		}
		if tc.wantErr && err != nil && !apperrors.HasCode(err, apperrors.CodeValidation) {
			t.Errorf("%s: expected validation code, got %q", tc.name, apperrors.CodeOf(err))
		}
	}
}

func TestValidateErrorMentionsMissingIdentifier(t *testing.T) {
	err := RecordRef{Database: "Research"}.Validate()
	if err == nil {
		t.Fatal("expected error when only a database is given")
	}
	if !strings.Contains(err.Error(), "uuid, id or path") {
		t.Errorf("error should list the accepted identifiers: %v", err)
	}
}

func TestSpecExprSkipsEmptySlots(t *testing.T) {
	expr := RecordRef{UUID: "7F9C38C2-4A2B-4E0D-9E4C-1B2D3F4A5B6C"}.SpecExpr()
	if strings.Contains(expr, `"id"`) || strings.Contains(expr, `"path"`) || strings.Contains(expr, `"database"`) {
		t.Errorf("uuid-only spec should carry only the uuid slot: %s", expr)
	}
	if !strings.Contains(expr, `o["uuid"] = "7F9C38C2-4A2B-4E0D-9E4C-1B2D3F4A5B6C";`) {
		t.Errorf("uuid not bracket-assigned: %s", expr)
	}
}

func TestSpecExprCarriesAllGivenSlots(t *testing.T) {
	expr := RecordRef{ID: int64p(7), Path: "/Inbox", Database: "Research"}.SpecExpr()
	for _, want := range []string{`o["id"] = 7;`, `o["path"] = "/Inbox";`, `o["database"] = "Research";`} {
		if !strings.Contains(expr, want) {
			t.Errorf("missing %q in %s", want, expr)
		}
	}
}

func TestSpecExprUsesBracketAssignmentPattern(t *testing.T) {
	expr := RecordRef{Path: `/Has "quotes"`, Database: "Research"}.SpecExpr()
	if !strings.HasPrefix(expr, "(function(){ var o = {};") {
		t.Fatalf("spec must use the declare pattern: %s", expr)
	}
	if !strings.Contains(expr, `\"quotes\"`) {
		t.Errorf("path not escaped: %s", expr)
	}
}
