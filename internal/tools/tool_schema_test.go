package tools

import "testing"

type sampleArgs struct {
	Name     string   `json:"name" jsonschema:"description=Record name,minLength=1"`
	Tags     []string `json:"tags,omitempty" jsonschema:"description=Tags to apply"`
	Database string   `json:"database,omitempty" jsonschema:"description=Database name"`
}

func TestMustSchemaParametersFor(t *testing.T) {
	params := MustSchemaParametersFor[sampleArgs]()

	if params["type"] != "object" {
		t.Errorf("schema root should be an object, got %v", params["type"])
	}
	props, ok := params["properties"].(map[string]interface{})
	if !ok {
		t.Fatalf("missing properties map: %v", params)
	}
	for _, field := range []string{"name", "tags", "database"} {
		if _, ok := props[field]; !ok {
			t.Errorf("schema missing field %q", field)
		}
	}
}

func TestSchemaRequiredReflectsOmitempty(t *testing.T) {
	params := MustSchemaParametersFor[sampleArgs]()
	required, _ := params["required"].([]interface{})
	for _, item := range required {
		if item == "tags" || item == "database" {
			t.Errorf("optional field %v marked required", item)
		}
	}
}
