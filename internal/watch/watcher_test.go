package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type recorder struct {
	mu       sync.Mutex
	prefixes []string
}

func (r *recorder) Invalidate(prefix string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prefixes = append(r.prefixes, prefix)
	return []string{prefix}
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.prefixes)
}

func startWatcher(t *testing.T) (*DBWatcher, *recorder, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "partners.db")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))

	rec := &recorder{}
	w, err := New(path, rec, WithDebounce(40*time.Millisecond))
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	t.Cleanup(func() { _ = w.Stop() })
	return w, rec, dir
}

func TestNew_RejectsMemoryDatabase(t *testing.T) {
	_, err := New(":memory:", &recorder{})
	assert.Error(t, err)

	_, err = New("", &recorder{})
	assert.Error(t, err)
}

func TestWatcher_CoalescesWritesIntoOneInvalidation(t *testing.T) {
	w, rec, dir := startWatcher(t)

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "partners.db"), []byte{byte(i)}, 0o600))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "partners.db-wal"), []byte("wal"), 0o600))

	require.Eventually(t, func() bool { return rec.count() >= 1 }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(150 * time.Millisecond)

	assert.Equal(t, 1, rec.count())
	assert.Equal(t, "design_partners", rec.prefixes[0])
	assert.GreaterOrEqual(t, w.Stats().Writes, 2)
}

func TestWatcher_IgnoresUnrelatedFiles(t *testing.T) {
	_, rec, dir := startWatcher(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "partners.dbx"), []byte("hi"), 0o600))

	time.Sleep(200 * time.Millisecond)
	assert.Zero(t, rec.count())
}

func TestWatcher_StopTwice(t *testing.T) {
	w, _, _ := startWatcher(t)
	require.NoError(t, w.Stop())
	// second Stop only closes the already closed watcher
	_ = w.Stop()
}
