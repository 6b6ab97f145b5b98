package status

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_CopyFile(t *testing.T) {
	tests := []struct {
		name       string
		src        string
		dst        *string
		wantStatus FileStatus
	}{
		{name: "new_destination", src: "flat", wantStatus: StatusNew},
		{name: "modified_destination", src: "flat", dst: ptr("full"), wantStatus: StatusModified},
		{name: "unchanged_destination", src: "same", dst: ptr("same"), wantStatus: StatusUnchanged},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
			dir := t.TempDir()
			m := New(dir)

			require.NoError(t, os.WriteFile(filepath.Join(dir, "src.json"), []byte(tt.src), 0644))
			if tt.dst != nil {
				require.NoError(t, os.WriteFile(filepath.Join(dir, "dst.json"), []byte(*tt.dst), 0644))
			}

			got, err := m.CopyFile(ctx, "src.json", "dst.json")
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, got)

			content, err := os.ReadFile(filepath.Join(dir, "dst.json"))
			require.NoError(t, err)
			assert.Equal(t, tt.src, string(content))

			// no temp files left behind
			matches, err := filepath.Glob(filepath.Join(dir, "*.tmp"))
			require.NoError(t, err)
			assert.Empty(t, matches)
		})
	}
}

func TestManager_CopyFile_MissingSource(t *testing.T) {
	ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
	dir := t.TempDir()
	m := New(dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "dst.json"), []byte("keep"), 0644))

	_, err := m.CopyFile(ctx, "missing.json", "dst.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading source")

	content, err := os.ReadFile(filepath.Join(dir, "dst.json"))
	require.NoError(t, err)
	assert.Equal(t, "keep", string(content))
}

func TestCalculateChecksum(t *testing.T) {
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", calculateChecksum(nil))
	assert.Equal(t, calculateChecksum([]byte("{\"a\":1}")), calculateChecksum([]byte("{\"a\":1}")))
	assert.NotEqual(t, calculateChecksum([]byte("{\"a\":1}")), calculateChecksum([]byte("{\"a\":1}\n")))
}

func TestManager_CopyFile_SameLengthDifferentContent(t *testing.T) {
	dir := t.TempDir()
	ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
	m := New(dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "src.json"), []byte("abcd"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dst.json"), []byte("abce"), 0644))

	got, err := m.CopyFile(ctx, "src.json", "dst.json")
	require.NoError(t, err)
	assert.Equal(t, StatusModified, got)

	data, err := os.ReadFile(filepath.Join(dir, "dst.json"))
	require.NoError(t, err)
	assert.Equal(t, "abcd", string(data))

	got, err = m.CopyFile(ctx, "src.json", "dst.json")
	require.NoError(t, err)
	assert.Equal(t, StatusUnchanged, got)
}

func TestManager_Exists(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	m := New(dir)

	ok, err := m.Exists(ctx, "a.json")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.WriteFileAtomic(ctx, "a.json", []byte("{}")))

	ok, err = m.Exists(ctx, "a.json")
	require.NoError(t, err)
	assert.True(t, ok)

	content, err := m.ReadFile(ctx, "a.json")
	require.NoError(t, err)
	assert.Equal(t, "{}", string(content))
}

func TestManager_Path(t *testing.T) {
	m := New("/tmp/snippets/")
	assert.Equal(t, "/tmp/snippets", m.Dir())
	assert.Equal(t, filepath.Join("/tmp/snippets", "snippets.json"), m.Path("snippets.json"))
	assert.Equal(t, "/abs/file.json", m.Path("/abs/file.json"))
}

func TestFileStatus_String(t *testing.T) {
	assert.Equal(t, "new", StatusNew.String())
	assert.Equal(t, "modified", StatusModified.String())
	assert.Equal(t, "unchanged", StatusUnchanged.String())
	assert.Equal(t, "unknown", StatusUnknown.String())
}

func ptr(s string) *string {
	return &s
}
