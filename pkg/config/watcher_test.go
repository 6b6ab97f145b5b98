package config

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Watch(t *testing.T) {
	ctx, cancel := context.WithCancel(zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background()))
	defer cancel()

	dir := t.TempDir()
	path := filepath.Join(dir, "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"wpSnippets.snippetMode": "Full"}`), 0644))

	store, err := Load(ctx, path)
	require.NoError(t, err)

	var mu sync.Mutex
	var seen []ChangeEvent
	store.OnChange(func(ctx context.Context, ev ChangeEvent) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, ev)
	})

	ready := make(chan struct{})
	done := make(chan error, 1)
	go func() { done <- store.Watch(ctx, ready) }()
	<-ready

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte(`{}`), 0644))
	require.NoError(t, os.WriteFile(path, []byte(`{"wpSnippets.snippetMode": "Flat"}`), 0644))

	assert.Eventually(t, func() bool {
		return store.Get().SnippetMode == "Flat"
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, seen)
	assert.True(t, seen[0].AffectsConfiguration(KeySnippetMode))
}

func TestStore_WatchMemoryStore(t *testing.T) {
	err := NewMemoryStore(Defaults()).Watch(context.Background(), nil)
	assert.Error(t, err)
}
