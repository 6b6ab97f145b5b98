package operation

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/wpsnip/pkg/config"
	"github.com/walteh/wpsnip/pkg/snippet"
	"github.com/walteh/wpsnip/pkg/status"
	"github.com/walteh/wpsnip/pkg/testutils"
)

func setup(t *testing.T, mode string, active string) (*Resolver, *config.Store, *testutils.MockHost, string) {
	t.Helper()

	dir := testutils.SnippetsDir(t, active)
	settings := config.Defaults()
	settings.SnippetMode = mode
	store := config.NewMemoryStore(settings)
	h := &testutils.MockHost{}

	r, err := New(Options{
		Settings: store,
		Files:    status.New(dir),
		Host:     h,
	})
	require.NoError(t, err, "creating resolver")
	return r, store, h, dir
}

func TestNew_RequiresCollaborators(t *testing.T) {
	store := config.NewMemoryStore(config.Defaults())
	files := status.New(t.TempDir())
	h := &testutils.MockHost{}

	tests := []struct {
		name string
		opts Options
		want string
	}{
		{"settings", Options{Files: files, Host: h}, "settings store is required"},
		{"files", Options{Settings: store, Host: h}, "file manager is required"},
		{"host", Options{Settings: store, Files: files}, "host is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.opts)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestStatus(t *testing.T) {
	tests := []struct {
		name        string
		mode        string
		active      string
		wantCurrent snippet.Mode
		wantExists  bool
		wantInSync  bool
	}{
		{"full active full desired", "Full", testutils.FullSnippets, snippet.Full, true, true},
		{"flat active full desired", "Full", testutils.FlatSnippets, snippet.Flat, true, false},
		{"flat active flat desired", "Flat", testutils.FlatSnippets, snippet.Flat, true, true},
		{"missing active reads as full", "Flat", "", snippet.Full, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _, _, dir := setup(t, tt.mode, tt.active)

			report, err := r.Status(testutils.Context(t))
			require.NoError(t, err)
			assert.Equal(t, snippet.ParseMode(tt.mode), report.Desired)
			assert.Equal(t, tt.wantCurrent, report.Current)
			assert.Equal(t, tt.wantExists, report.ActiveExists)
			assert.Equal(t, tt.wantInSync, report.InSync())
			assert.Equal(t, filepath.Join(dir, snippet.ActiveFile), report.ActivePath)
		})
	}
}

func TestResolveAndSync_SwitchesToFlat(t *testing.T) {
	r, store, h, dir := setup(t, "Full", testutils.FullSnippets)
	ctx := testutils.Context(t)
	h.On("Reload", mock.Anything).Return(nil).Once()

	result, err := r.ResolveAndSync(ctx, snippet.Flat)
	require.NoError(t, err)

	assert.True(t, result.Changed)
	assert.Equal(t, snippet.Full, result.From)
	assert.Equal(t, snippet.Flat, result.To)
	assert.Equal(t, status.StatusModified, result.FileStatus)
	assert.Equal(t, testutils.FlatSnippets, testutils.ReadFile(t, dir, snippet.ActiveFile), "active file should be a byte copy of the flat source")
	assert.Equal(t, "Flat", store.Get().SnippetMode)
	assert.Equal(t, []string{"Switched to Flat WordPress Snippets. Reloading window..."}, h.Infos)
	h.AssertNumberOfCalls(t, "Reload", 1)
}

func TestResolveAndSync_CreatesMissingActiveFile(t *testing.T) {
	r, _, h, dir := setup(t, "Flat", "")
	h.On("Reload", mock.Anything).Return(nil).Once()

	result, err := r.ResolveAndSync(testutils.Context(t), snippet.Flat)
	require.NoError(t, err)
	assert.Equal(t, status.StatusNew, result.FileStatus)
	assert.Equal(t, testutils.FlatSnippets, testutils.ReadFile(t, dir, snippet.ActiveFile))
}

func TestResolveAndSync_InSyncIsNoop(t *testing.T) {
	r, store, h, dir := setup(t, "Full", testutils.FullSnippets)
	ctx := testutils.Context(t)

	info, err := os.Stat(filepath.Join(dir, snippet.ActiveFile))
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		result, err := r.ResolveAndSync(ctx, snippet.Full)
		require.NoError(t, err)
		assert.False(t, result.Changed)
	}

	after, err := os.Stat(filepath.Join(dir, snippet.ActiveFile))
	require.NoError(t, err)
	assert.Equal(t, info.ModTime(), after.ModTime(), "active file should not be rewritten")
	assert.Empty(t, h.Infos)
	h.AssertNotCalled(t, "Reload", mock.Anything)
	assert.Equal(t, "Full", store.Get().SnippetMode)
}

func TestResolveAndSync_Idempotent(t *testing.T) {
	r, _, h, dir := setup(t, "Full", testutils.FullSnippets)
	ctx := testutils.Context(t)
	h.On("Reload", mock.Anything).Return(nil).Once()

	_, err := r.ResolveAndSync(ctx, snippet.Flat)
	require.NoError(t, err)
	result, err := r.ResolveAndSync(ctx, snippet.Flat)
	require.NoError(t, err)

	assert.False(t, result.Changed)
	assert.Equal(t, testutils.FlatSnippets, testutils.ReadFile(t, dir, snippet.ActiveFile))
	h.AssertNumberOfCalls(t, "Reload", 1)
}

func TestResolveAndSync_MissingSource(t *testing.T) {
	r, store, h, dir := setup(t, "Full", testutils.FullSnippets)
	require.NoError(t, os.Remove(filepath.Join(dir, snippet.FlatSourceFile)))

	result, err := r.ResolveAndSync(testutils.Context(t), snippet.Flat)
	require.Error(t, err)
	assert.Nil(t, result)

	assert.True(t, errors.Is(err, snippet.ErrResourceMissing))
	assert.Equal(t, snippet.KindResourceMissing, snippet.KindOf(err))
	assert.Equal(t, "Flat snippets file not found.", err.Error())

	assert.Equal(t, testutils.FullSnippets, testutils.ReadFile(t, dir, snippet.ActiveFile), "active file should be untouched")
	assert.Equal(t, "Full", store.Get().SnippetMode, "settings should be untouched")
	h.AssertNotCalled(t, "Reload", mock.Anything)
}

func TestResolveAndSync_ReloadFailure(t *testing.T) {
	r, _, h, dir := setup(t, "Full", testutils.FullSnippets)
	h.On("Reload", mock.Anything).Return(errors.New("no window")).Once()

	result, err := r.ResolveAndSync(testutils.Context(t), snippet.Flat)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no window")
	require.NotNil(t, result)
	assert.True(t, result.Changed)
	assert.Equal(t, testutils.FlatSnippets, testutils.ReadFile(t, dir, snippet.ActiveFile))
}

type failingFiles struct {
	*status.Manager
}

func (f failingFiles) CopyFile(ctx context.Context, src, dst string) (status.FileStatus, error) {
	return status.StatusUnknown, errors.New("disk full")
}

func TestResolveAndSync_CopyFailure(t *testing.T) {
	dir := testutils.SnippetsDir(t, testutils.FullSnippets)
	h := &testutils.MockHost{}
	r, err := New(Options{
		Settings: config.NewMemoryStore(config.Defaults()),
		Files:    failingFiles{status.New(dir)},
		Host:     h,
	})
	require.NoError(t, err)

	_, err = r.ResolveAndSync(testutils.Context(t), snippet.Flat)
	require.Error(t, err)
	assert.Equal(t, snippet.KindFilesystemFailure, snippet.KindOf(err))
	assert.Equal(t, "Failed to switch snippet file: disk full", err.Error())
	h.AssertNotCalled(t, "Reload", mock.Anything)
}
