package tools

import (
	"strings"
	"testing"
)

func TestRequireStringArg(t *testing.T) {
	rule := RequireStringArg("name", "missing 'name'")
	cases := []struct {
		name    string
		args    map[string]interface{}
		wantErr bool
	}{
		{"present", map[string]interface{}{"name": "x"}, false},
		{"absent", map[string]interface{}{}, true},
		{"nil", map[string]interface{}{"name": nil}, true},
		{"empty", map[string]interface{}{"name": "  "}, true},
		{"wrong type", map[string]interface{}{"name": 7}, true},
	}
	for _, tc := range cases {
		err := rule(tc.args)
		if tc.wantErr != (err != nil) {
			t.Errorf("%s: err = %v, wantErr = %v", tc.name, err, tc.wantErr)
		}
	}
}

func TestRequireStringSliceArg(t *testing.T) {
	rule := RequireStringSliceArg("tags", "missing 'tags'")
	if err := rule(map[string]interface{}{"tags": []interface{}{"a", "b"}}); err != nil {
		t.Errorf("valid slice rejected: %v", err)
	}
	if err := rule(map[string]interface{}{"tags": []interface{}{}}); err == nil {
		t.Error("empty slice accepted")
	}
	if err := rule(map[string]interface{}{"tags": []interface{}{"a", 3}}); err == nil {
		t.Error("mixed-type slice accepted")
	}
	if err := rule(map[string]interface{}{}); err == nil {
		t.Error("absent slice accepted")
	}
}

func TestOneOfArg(t *testing.T) {
	rule := OneOfArg("format", "markdown", "pdf")
	if err := rule(map[string]interface{}{"format": "pdf"}); err != nil {
		t.Errorf("allowed value rejected: %v", err)
	}
	if err := rule(map[string]interface{}{}); err != nil {
		t.Errorf("optional absence rejected: %v", err)
	}
	err := rule(map[string]interface{}{"format": "docx"})
	if err == nil {
		t.Fatal("disallowed value accepted")
	}
	if !strings.Contains(err.Error(), "markdown, pdf") {
		t.Errorf("error should list allowed values: %v", err)
	}
}

func TestSafeStringsWalksNestedValues(t *testing.T) {
	rule := SafeStrings()
	ok := map[string]interface{}{
		"name": "fine",
		"tags": []interface{}{"a", "b"},
		"meta": map[string]interface{}{"note": "multi\nline"},
	}
	if err := rule(ok); err != nil {
		t.Errorf("safe args rejected: %v", err)
	}

	bad := map[string]interface{}{
		"tags": []interface{}{"ok", "bad\x00tag"},
	}
	err := rule(bad)
	if err == nil {
		t.Fatal("control character accepted")
	}
	if !strings.Contains(err.Error(), "tags[1]") {
		t.Errorf("error should locate the offender: %v", err)
	}

	nested := map[string]interface{}{
		"meta": map[string]interface{}{"note": "esc\x1b"},
	}
	err = rule(nested)
	if err == nil {
		t.Fatal("nested control character accepted")
	}
	if !strings.Contains(err.Error(), "meta.note") {
		t.Errorf("error should locate the nested offender: %v", err)
	}
}

func TestChainValidationStopsAtFirstError(t *testing.T) {
	calls := 0
	counting := func(args map[string]interface{}) error {
		calls++
		return nil
	}
	failing := RequireStringArg("missing", "nope")
	rule := ChainValidation(counting, failing, counting)
	if err := rule(map[string]interface{}{}); err == nil {
		t.Fatal("expected chain to fail")
	}
	if calls != 1 {
		t.Errorf("rules after the failure must not run, calls = %d", calls)
	}
}
