package snippet

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCatalog = `{
	"add_action": {
		"prefix": ["add_action", "action"],
		"body": "add_action( ${1:\\$hook_name}, ${2:\\$callback} );$0",
		"description": "Adds a callback function to an action hook."
	},
	"WP_Query loop": {
		"prefix": "wp_query",
		"body": [
			"\\$query = new \\\\WP_Query( ${1:\\$args} );",
			"$0"
		]
	}
}`

func TestParseCatalog(t *testing.T) {
	ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())

	cat, err := ParseCatalog(ctx, []byte(testCatalog))
	require.NoError(t, err)
	require.Equal(t, 2, cat.Len())

	entries := cat.Entries()
	assert.Equal(t, "add_action", entries[0].Label)
	assert.Equal(t, "WP_Query loop", entries[1].Label)

	action, ok := cat.Get("add_action")
	require.True(t, ok)
	assert.Equal(t, []string{"add_action", "action"}, action.Prefix)
	assert.Equal(t, `add_action( ${1:\$hook_name}, ${2:\$callback} );$0`, action.Body)
	assert.Equal(t, "Adds a callback function to an action hook.", action.Description)

	query, ok := cat.Get("WP_Query loop")
	require.True(t, ok)
	assert.Equal(t, []string{"wp_query"}, query.Prefix)
	assert.Equal(t, "\\$query = new \\\\WP_Query( ${1:\\$args} );\n$0", query.Body)

	_, ok = cat.Get("missing")
	assert.False(t, ok)
}

func TestParseCatalog_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantLen int
		wantErr bool
	}{
		{name: "empty", data: "", wantErr: true},
		{name: "array", data: `[{"prefix": "a", "body": "a()"}]`, wantErr: true},
		{name: "null", data: `null`, wantErr: true},
		{name: "truncated", data: `{"a": {"prefix": "a", "body": "a()"}`, wantErr: true},
		{name: "trailing_data", data: `{} {}`, wantErr: true},
		{name: "empty_object", data: `{}`, wantLen: 0},
		{name: "skips_non_object_entry", data: `{"a": 5, "b": {"prefix": "b", "body": "b()"}}`, wantLen: 1},
		{name: "skips_entry_without_prefix", data: `{"a": {"body": "a()"}}`, wantLen: 0},
		{name: "skips_entry_without_body", data: `{"a": {"prefix": "a"}}`, wantLen: 0},
		{name: "skips_numeric_body", data: `{"a": {"prefix": "a", "body": 3}}`, wantLen: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
			cat, err := ParseCatalog(ctx, []byte(tt.data))
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, KindParseFailure, KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLen, cat.Len())
		})
	}
}

func TestLoadCatalog(t *testing.T) {
	ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
	dir := t.TempDir()

	t.Run("missing_file", func(t *testing.T) {
		_, err := LoadCatalog(ctx, filepath.Join(dir, "nope.json"))
		require.Error(t, err)
		assert.Equal(t, KindResourceMissing, KindOf(err))
	})

	t.Run("malformed_file", func(t *testing.T) {
		path := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(path, []byte("not json"), 0644))
		_, err := LoadCatalog(ctx, path)
		require.Error(t, err)
		assert.Equal(t, KindParseFailure, KindOf(err))
	})

	t.Run("valid_file", func(t *testing.T) {
		path := filepath.Join(dir, "ok.json")
		require.NoError(t, os.WriteFile(path, []byte(testCatalog), 0644))
		cat, err := LoadCatalog(ctx, path)
		require.NoError(t, err)
		assert.Equal(t, 2, cat.Len())
	})
}

func TestCatalog_Flattened(t *testing.T) {
	ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
	cat, err := ParseCatalog(ctx, []byte(testCatalog))
	require.NoError(t, err)

	flat := cat.Flattened()
	action, _ := flat.Get("add_action")
	assert.Equal(t, "add_action()", action.Body)
	assert.Equal(t, []string{"add_action", "action"}, action.Prefix)

	// the source catalog is untouched
	orig, _ := cat.Get("add_action")
	assert.Contains(t, orig.Body, "${1:")
}

func TestCatalog_EncodeRoundTrip(t *testing.T) {
	ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
	cat, err := ParseCatalog(ctx, []byte(testCatalog))
	require.NoError(t, err)

	data, err := cat.Encode()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"prefix": "wp_query"`)
	assert.Contains(t, string(data), `"body": [`)
	assert.Equal(t, Full, InferMode(data))

	again, err := ParseCatalog(ctx, data)
	require.NoError(t, err)
	assert.Equal(t, cat.Entries(), again.Entries())
}

func TestCatalog_Nil(t *testing.T) {
	var cat *Catalog
	assert.Equal(t, 0, cat.Len())
	assert.Empty(t, cat.Entries())
	_, ok := cat.Get("x")
	assert.False(t, ok)
}
