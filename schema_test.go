package forge

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaFor_SimpleTypes(t *testing.T) {
	type Args struct {
		Name   string  `json:"name"`
		Age    int     `json:"age"`
		Score  float64 `json:"score"`
		Active bool    `json:"active"`
		Count  int64   `json:"count"`
	}

	schema, err := SchemaFor[Args]()
	require.NoError(t, err)

	var result map[string]any
	require.NoError(t, json.Unmarshal(schema, &result))

	assert.Equal(t, "object", result["type"])
	props := result["properties"].(map[string]any)

	assert.Equal(t, "string", props["name"].(map[string]any)["type"])
	assert.Equal(t, "integer", props["age"].(map[string]any)["type"])
	assert.Equal(t, "number", props["score"].(map[string]any)["type"])
	assert.Equal(t, "boolean", props["active"].(map[string]any)["type"])
	assert.Equal(t, "integer", props["count"].(map[string]any)["type"])
}

func TestSchemaFor_Tags(t *testing.T) {
	type Args struct {
		Location string `json:"location" desc:"The city name" required:"true"`
		Unit     string `json:"unit" desc:"Temperature unit" enum:"celsius,fahrenheit"`
	}

	schema, err := SchemaFor[Args]()
	require.NoError(t, err)

	var result map[string]any
	require.NoError(t, json.Unmarshal(schema, &result))

	props := result["properties"].(map[string]any)

	location := props["location"].(map[string]any)
	assert.Equal(t, "string", location["type"])
	assert.Equal(t, "The city name", location["description"])

	unit := props["unit"].(map[string]any)
	assert.Equal(t, "Temperature unit", unit["description"])
	enum := unit["enum"].([]any)
	assert.Len(t, enum, 2)
	assert.Contains(t, enum, "celsius")
	assert.Contains(t, enum, "fahrenheit")

	required := result["required"].([]any)
	assert.Len(t, required, 1)
	assert.Equal(t, "location", required[0])
}

func TestSchemaFor_Array(t *testing.T) {
	type Args struct {
		Tags []string `json:"tags"`
	}

	schema, err := SchemaFor[Args]()
	require.NoError(t, err)

	var result map[string]any
	require.NoError(t, json.Unmarshal(schema, &result))

	props := result["properties"].(map[string]any)
	tags := props["tags"].(map[string]any)
	assert.Equal(t, "array", tags["type"])

	items := tags["items"].(map[string]any)
	assert.Equal(t, "string", items["type"])
}

func TestSchemaFor_NestedStruct(t *testing.T) {
	type Edit struct {
		Path    string `json:"path" required:"true"`
		Content string `json:"content"`
	}

	type Args struct {
		Reason string `json:"reason"`
		Edits  []Edit `json:"edits"`
	}

	schema, err := SchemaFor[Args]()
	require.NoError(t, err)

	var result map[string]any
	require.NoError(t, json.Unmarshal(schema, &result))

	props := result["properties"].(map[string]any)
	edits := props["edits"].(map[string]any)
	assert.Equal(t, "array", edits["type"])

	itemSchema := edits["items"].(map[string]any)
	assert.Equal(t, "object", itemSchema["type"])

	itemProps := itemSchema["properties"].(map[string]any)
	assert.Equal(t, "string", itemProps["path"].(map[string]any)["type"])
	assert.Contains(t, itemSchema["required"].([]any), "path")
}

func TestSchemaFor_JsonTagOmit(t *testing.T) {
	type Args struct {
		Public  string `json:"public"`
		Skipped string `json:"-"`
	}

	schema, err := SchemaFor[Args]()
	require.NoError(t, err)

	var result map[string]any
	require.NoError(t, json.Unmarshal(schema, &result))

	props := result["properties"].(map[string]any)
	assert.Contains(t, props, "public")
	assert.NotContains(t, props, "Skipped")
	assert.NotContains(t, props, "-")
}

func TestSchemaFor_NonStruct(t *testing.T) {
	_, err := SchemaFor[string]()
	assert.Error(t, err)
}

func TestMustSchemaFor_PanicsOnNonStruct(t *testing.T) {
	assert.Panics(t, func() {
		MustSchemaFor[int]()
	})
}
