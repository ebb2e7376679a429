package validation

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaValidate(t *testing.T) {
	schema := Schema{
		{Field: "title", Required: true, Type: TypeString, MinLength: 1, MaxLength: 10},
		{Field: "theme", Type: TypeString, Choices: []string{"default", "modern"}},
		{Field: "id", Type: TypeString, Pattern: regexp.MustCompile(`^[a-f0-9-]{36}$`)},
		{Field: "size", Type: TypeNumber, MinValue: Bound(8), MaxValue: Bound(72)},
		{Field: "bold", Type: TypeBool},
		{Field: "items", Type: TypeArray},
		{Field: "position", Type: TypeObject},
	}

	tests := []struct {
		name    string
		params  map[string]interface{}
		wantErr string
	}{
		{"valid minimal", map[string]interface{}{"title": "Deck"}, ""},
		{"valid full", map[string]interface{}{
			"title":    "Deck",
			"theme":    "modern",
			"id":       "0b9c2f5e-3c1d-4b8e-9a47-2f0d6f1c9e11",
			"size":     float64(12),
			"bold":     true,
			"items":    []interface{}{"a"},
			"position": map[string]interface{}{"x": 1.0},
		}, ""},
		{"missing required", map[string]interface{}{}, "Required field 'title' is missing"},
		{"wrong type", map[string]interface{}{"title": 12.0}, "Field 'title' must be of type string"},
		{"too short", map[string]interface{}{"title": ""}, "Field 'title' must be at least 1 characters"},
		{"too long", map[string]interface{}{"title": "abcdefghijk"}, "Field 'title' must be at most 10 characters"},
		{"bad choice", map[string]interface{}{"title": "x", "theme": "neon"}, "Field 'theme' must be one of [default, modern]"},
		{"bad pattern", map[string]interface{}{"title": "x", "id": "nope"}, "Field 'id' does not match required pattern"},
		{"below min", map[string]interface{}{"title": "x", "size": 4.0}, "Field 'size' must be at least 8"},
		{"above max", map[string]interface{}{"title": "x", "size": 100}, "Field 'size' must be at most 72"},
		{"bool type", map[string]interface{}{"title": "x", "bold": "yes"}, "Field 'bold' must be of type boolean"},
		{"array type", map[string]interface{}{"title": "x", "items": "a"}, "Field 'items' must be of type array"},
		{"object type", map[string]interface{}{"title": "x", "position": []interface{}{}}, "Field 'position' must be of type object"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := schema.Validate(tt.params)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalid)
			assert.Equal(t, tt.wantErr, err.Error())

			var fieldErr *FieldError
			require.ErrorAs(t, err, &fieldErr)
			assert.Contains(t, tt.wantErr, "'"+fieldErr.Field+"'")
		})
	}
}

func TestValidateToolID(t *testing.T) {
	assert.NoError(t, ValidateToolID("powerpoint.add_slide"))
	for _, bad := range []string{"", "add_slide", "powerpoint.", ".add_slide", "powerpoint/add slide", "word.add\x00"} {
		assert.ErrorIs(t, ValidateToolID(bad), ErrInvalid, bad)
	}
	assert.ErrorContains(t, ValidateToolID(""), "Required field 'tool_id' is missing")
}

func TestIsURL(t *testing.T) {
	assert.True(t, IsURL("https://example.com/logo.png"))
	assert.True(t, IsURL("HTTP://example.com/logo.png"))
	assert.False(t, IsURL("/tmp/logo.png"))
	assert.False(t, IsURL("ftp://example.com/logo.png"))
}

func TestValidateFilePath(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "template.pptx")
	require.NoError(t, os.WriteFile(existing, []byte("x"), 0o644))

	got, err := ValidateFilePath(existing, true, ".pptx", ".potx")
	require.NoError(t, err)
	assert.Equal(t, existing, got)

	_, err = ValidateFilePath(filepath.Join(dir, "missing.pptx"), true)
	assert.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, err.Error(), "file does not exist")

	_, err = ValidateFilePath(existing, true, ".docx")
	assert.Contains(t, err.Error(), "file must have one of these extensions: [.docx]")

	_, err = ValidateFilePath(dir, true)
	assert.Contains(t, err.Error(), "path is a directory")

	_, err = ValidateFilePath("", false)
	assert.ErrorIs(t, err, ErrInvalid)

	got, err = ValidateFilePath(filepath.Join(dir, "new.pptx"), false)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "new.pptx"), got)
}

func TestValidateParamsDepth(t *testing.T) {
	flat := map[string]interface{}{"data": []interface{}{[]interface{}{"a", 1.0}}}
	assert.NoError(t, ValidateParamsDepth(flat, 3))

	deep := map[string]interface{}{"a": map[string]interface{}{"b": map[string]interface{}{"c": []interface{}{"d"}}}}
	err := ValidateParamsDepth(deep, 3)
	assert.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, err.Error(), "maximum 3")
}
