package jxa

import (
	"strings"
	"testing"

	apperrors "dtbridge/internal/errors"
)

func TestIsSafe(t *testing.T) {
	cases := []struct {
		name string
		text string
		want bool
	}{
		{"plain", "Meeting notes", true},
		{"unicode", "résumé — ok", true},
		{"newline allowed", "line one\nline two", true},
		{"tab allowed", "a\tb", true},
		{"carriage return allowed", "a\r\nb", true},
		{"null byte", "a\x00b", false},
		{"escape char", "a\x1bb", false},
		{"bell", "\a", false},
		{"delete", "a\x7fb", false},
		{"empty", "", true},
	}
	for _, tc := range cases {
		if got := IsSafe(tc.text); got != tc.want {
			t.Errorf("%s: IsSafe(%q) = %v, want %v", tc.name, tc.text, got, tc.want)
		}
	}
}

func TestCheckFieldNamesOffender(t *testing.T) {
	err := CheckField("comment", "bad\x01value")
	if err == nil {
		t.Fatal("expected error")
	}
	if !apperrors.HasCode(err, apperrors.CodeValidation) {
		t.Errorf("expected validation code, got %q", apperrors.CodeOf(err))
	}
	if !strings.Contains(err.Error(), "comment") {
		t.Errorf("error should name the field: %v", err)
	}
}

func TestEscape(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`plain`, `plain`},
		{`say "hi"`, `say \"hi\"`},
		{`back\slash`, `back\\slash`},
		{"two\nlines", `two\nlines`},
		{"tab\there", `tab\there`},
		{"cr\rhere", `cr\rhere`},
		{"sep here", `sep here`},
		{"sep here", `sep here`},
		{"ctl\x01here", `ctlhere`},
	}
	for _, tc := range cases {
		if got := Escape(tc.in); got != tc.want {
			t.Errorf("Escape(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestQuoteCannotBreakOut(t *testing.T) {
	hostile := `"); app.doShell("rm -rf /`
	quoted := Quote(hostile)
	if !strings.HasPrefix(quoted, `"`) || !strings.HasSuffix(quoted, `"`) {
		t.Fatalf("not a quoted literal: %s", quoted)
	}
	inner := quoted[1 : len(quoted)-1]
	// Every interior quote must be preceded by a backslash.
	for i := 0; i < len(inner); i++ {
		if inner[i] == '"' && (i == 0 || inner[i-1] != '\\') {
			t.Fatalf("unescaped quote inside literal: %s", quoted)
		}
	}
}
