package jxa

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestFormatScalars(t *testing.T) {
	cases := []struct {
		name  string
		value interface{}
		want  string
	}{
		{"nil", nil, "null"},
		{"string", "hello", `"hello"`},
		{"string escaped", `a "b"`, `"a \"b\""`},
		{"true", true, "true"},
		{"false", false, "false"},
		{"int", 42, "42"},
		{"int64", int64(-7), "-7"},
		{"float", 1.5, "1.5"},
		{"float integral", float64(3), "3"},
		{"json number", json.Number("1000"), "1000"},
	}
	for _, tc := range cases {
		if got := Format(tc.value); got != tc.want {
			t.Errorf("%s: Format(%v) = %q, want %q", tc.name, tc.value, got, tc.want)
		}
	}
}

func TestFormatArrays(t *testing.T) {
	got := Format([]interface{}{"a", 1, true})
	if got != `["a", 1, true]` {
		t.Errorf("got %q", got)
	}
	got = Format([]string{"x", "y"})
	if got != `["x", "y"]` {
		t.Errorf("got %q", got)
	}
}

func TestFormatMapNeverEmitsObjectLiteral(t *testing.T) {
	got := Format(map[string]interface{}{
		"name": "Report",
		"type": "markdown",
	})

	if !strings.HasPrefix(got, "(function(){ var o = {};") {
		t.Fatalf("map must open with declare pattern, got %q", got)
	}
	if !strings.HasSuffix(got, "return o; })()") {
		t.Fatalf("map must return the bound variable, got %q", got)
	}
	if !strings.Contains(got, `o["name"] = "Report";`) {
		t.Errorf("missing bracket assignment for name: %q", got)
	}
	if !strings.Contains(got, `o["type"] = "markdown";`) {
		t.Errorf("missing bracket assignment for type: %q", got)
	}
	// The declared empty object is the only brace literal allowed.
	if strings.Count(got, "{}") != 1 {
		t.Errorf("unexpected literal object construction: %q", got)
	}
}

func TestFormatMapDeterministic(t *testing.T) {
	m := map[string]interface{}{"b": 2, "a": 1, "c": 3}
	first := Format(m)
	for i := 0; i < 20; i++ {
		if got := Format(m); got != first {
			t.Fatal("formatting is not deterministic across runs")
		}
	}
	if strings.Index(first, `o["a"]`) > strings.Index(first, `o["b"]`) {
		t.Errorf("keys not sorted: %q", first)
	}
}

func TestFormatNested(t *testing.T) {
	got := Format(map[string]interface{}{
		"tags": []interface{}{"alpha", "beta"},
		"meta": map[string]interface{}{"pinned": true},
	})
	if !strings.Contains(got, `o["tags"] = ["alpha", "beta"];`) {
		t.Errorf("nested array not formatted: %q", got)
	}
	if !strings.Contains(got, `o["meta"] = (function(){ var o = {};`) {
		t.Errorf("nested map should recurse through the same pattern: %q", got)
	}
}

func TestFormatNonFiniteFloats(t *testing.T) {
	inf := Format(positiveInf())
	if inf != "null" {
		t.Errorf("infinity must degrade to null, got %q", inf)
	}
}

func positiveInf() float64 {
	f := 1.0
	for i := 0; i < 2000; i++ {
		f *= 10
	}
	return f
}
