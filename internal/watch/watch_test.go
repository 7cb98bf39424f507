// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pdf2md/internal/convert"
)

// echoExtractor returns the PDF's own bytes as its text.
type echoExtractor struct{}

func (echoExtractor) Extract(_ context.Context, pdfPath string) (string, error) {
	data, err := os.ReadFile(pdfPath)
	return string(data), err
}

func startWatcher(t *testing.T, dir string) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	w := New(dir, convert.New(echoExtractor{}, convert.Options{}), 50*time.Millisecond, nil)

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Error("watcher did not stop")
		}
	})
}

func markdownEquals(path, want string) func() bool {
	return func() bool {
		data, err := os.ReadFile(path)
		return err == nil && string(data) == want
	}
}

func TestRun_ConvertsExistingPDFs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "old.pdf"), []byte("EXISTING REPORT"), 0o644))

	startWatcher(t, dir)

	assert.Eventually(t, markdownEquals(filepath.Join(dir, "old.md"), "## Existing Report"),
		5*time.Second, 20*time.Millisecond)
}

func TestRun_ConvertsNewPDFs(t *testing.T) {
	dir := t.TempDir()
	startWatcher(t, dir)

	// Give the watcher a moment to register the directory.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "new.pdf"), []byte("A new heading"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("NOT A PDF"), 0o644))

	assert.Eventually(t, markdownEquals(filepath.Join(dir, "new.md"), "### A new heading"),
		5*time.Second, 20*time.Millisecond)
	assert.NoFileExists(t, filepath.Join(dir, "ignored.md"))
}

func TestRun_MissingDirectory(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "missing"), convert.New(echoExtractor{}, convert.Options{}), 0, nil)
	err := w.Run(context.Background())
	assert.Error(t, err)
}

func TestNew_Defaults(t *testing.T) {
	w := New(".", nil, 0, nil)
	assert.Equal(t, DefaultSettle, w.settle)
	assert.NotNil(t, w.out)
}
