package bundle

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/wpsnip/pkg/snippet"
	"github.com/walteh/wpsnip/pkg/testutils"
	"github.com/walteh/wpsnip/pkg/text"
)

func TestSource_ModesInferCorrectly(t *testing.T) {
	assert.Equal(t, snippet.Full, snippet.InferMode(Source(snippet.Full)))
	assert.Equal(t, snippet.Flat, snippet.InferMode(Source(snippet.Flat)))
}

func TestSource_FlatIsFlattenedFull(t *testing.T) {
	ctx := testutils.Context(t)

	full, err := snippet.ParseCatalog(ctx, Source(snippet.Full))
	require.NoError(t, err)
	flat, err := snippet.ParseCatalog(ctx, Source(snippet.Flat))
	require.NoError(t, err)

	require.Equal(t, full.Len(), flat.Len())
	for _, e := range full.Entries() {
		got, ok := flat.Get(e.Label)
		require.True(t, ok, "flat source missing %s", e.Label)
		assert.Equal(t, e.Prefix, got.Prefix, e.Label)
		assert.Equal(t, text.Flatten(e.Body), got.Body, e.Label)
		assert.False(t, text.HasPlaceholder(got.Body), e.Label)
	}
}

func TestSource_GeneratedFlatMatchesBundle(t *testing.T) {
	full, err := snippet.ParseCatalog(testutils.Context(t), Source(snippet.Full))
	require.NoError(t, err)

	out, err := full.Flattened().Encode()
	require.NoError(t, err)
	assert.Equal(t, string(Source(snippet.Flat)), string(out))
}

func TestInstall(t *testing.T) {
	ctx := testutils.Context(t)
	dir := filepath.Join(t.TempDir(), "snippets")

	require.NoError(t, Install(ctx, dir, false))

	assert.Equal(t, string(Source(snippet.Full)), testutils.ReadFile(t, dir, snippet.FullSourceFile))
	assert.Equal(t, string(Source(snippet.Flat)), testutils.ReadFile(t, dir, snippet.FlatSourceFile))
	assert.Equal(t, string(Source(snippet.Full)), testutils.ReadFile(t, dir, snippet.ActiveFile))
}

func TestInstall_KeepsActiveFile(t *testing.T) {
	ctx := testutils.Context(t)
	dir := t.TempDir()
	testutils.WriteFile(t, dir, snippet.ActiveFile, string(Source(snippet.Flat)))

	require.NoError(t, Install(ctx, dir, false))
	assert.Equal(t, string(Source(snippet.Flat)), testutils.ReadFile(t, dir, snippet.ActiveFile))

	require.NoError(t, Install(ctx, dir, true))
	assert.Equal(t, string(Source(snippet.Full)), testutils.ReadFile(t, dir, snippet.ActiveFile))
}

func TestInstall_KeepsEditedSources(t *testing.T) {
	ctx := testutils.Context(t)
	dir := t.TempDir()
	testutils.WriteFile(t, dir, snippet.FullSourceFile, "{}")

	require.NoError(t, Install(ctx, dir, false))
	assert.Equal(t, "{}", testutils.ReadFile(t, dir, snippet.FullSourceFile))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}
