package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/wpsnip/pkg/snippet"
)

func TestStore_LoadMissingFile(t *testing.T) {
	ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
	path := filepath.Join(t.TempDir(), "settings.json")

	store, err := Load(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, Defaults(), store.Get())

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "loading must not create the file")
}

func TestStore_LoadUnsupportedExtension(t *testing.T) {
	_, err := Load(context.Background(), "settings.toml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no parser found")
}

func TestStore_UpdatePersistsAndNotifies(t *testing.T) {
	ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"editor.tabSize": 2}`), 0644))

	store, err := Load(ctx, path)
	require.NoError(t, err)

	var events []ChangeEvent
	dispose := store.OnChange(func(ctx context.Context, ev ChangeEvent) {
		events = append(events, ev)
	})

	require.NoError(t, store.Update(ctx, KeySnippetMode, snippet.Flat))
	require.Len(t, events, 1)
	assert.True(t, events[0].AffectsConfiguration(KeySnippetMode))
	assert.False(t, events[0].AffectsConfiguration(KeyRemoveArguments))
	assert.Equal(t, snippet.Flat, store.Get().Mode())

	// same value again is a no-op
	require.NoError(t, store.Update(ctx, KeySnippetMode, "Flat"))
	assert.Len(t, events, 1)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"editor.tabSize": 2`)
	assert.Contains(t, string(data), `"wpSnippets.snippetMode": "Flat"`)

	reloaded, err := Load(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, store.Get(), reloaded.Get())

	dispose()
	require.NoError(t, store.Update(ctx, KeyRemoveArguments, true))
	assert.Len(t, events, 1)
}

func TestStore_UpdateRejectsBadValues(t *testing.T) {
	store := NewMemoryStore(Defaults())
	ctx := context.Background()

	tests := []struct {
		name  string
		key   string
		value any
	}{
		{name: "mode_not_string", key: KeySnippetMode, value: 1},
		{name: "remove_not_bool", key: KeyRemoveArguments, value: "true"},
		{name: "patterns_not_slice", key: KeyFilePatterns, value: "**/*.php"},
		{name: "unknown_key", key: "wpSnippets.other", value: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Error(t, store.Update(ctx, tt.key, tt.value))
			assert.Equal(t, Defaults(), store.Get())
		})
	}
}

func TestStore_Reload(t *testing.T) {
	ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
	path := filepath.Join(t.TempDir(), "settings.yaml")

	store, err := Load(ctx, path)
	require.NoError(t, err)

	var events []ChangeEvent
	store.OnChange(func(ctx context.Context, ev ChangeEvent) {
		events = append(events, ev)
	})

	// nothing changed on disk
	require.NoError(t, store.Reload(ctx))
	assert.Empty(t, events)

	require.NoError(t, os.WriteFile(path, []byte("wpSnippets:\n  snippetMode: Flat\n  removeArguments: true\n"), 0644))
	require.NoError(t, store.Reload(ctx))

	require.Len(t, events, 1)
	assert.ElementsMatch(t, []string{KeySnippetMode, KeyRemoveArguments}, events[0].Keys)
	assert.Equal(t, snippet.Flat, store.Get().Mode())
	assert.True(t, store.Get().RemoveArguments)
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore(Settings{SnippetMode: "nonsense"})
	assert.Equal(t, Defaults(), store.Get())
	assert.Empty(t, store.Path())

	require.NoError(t, store.Update(context.Background(), KeyFilePatterns, []string{"*.inc"}))
	assert.Equal(t, []string{"*.inc"}, store.Get().FilePatterns)
	require.NoError(t, store.Reload(context.Background()))
}
