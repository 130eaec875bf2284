package watcher_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/sheaf/internal/adapters/watcher"
	"go.trai.ch/sheaf/internal/core/domain"
	"go.trai.ch/sheaf/internal/core/ports"
	"go.trai.ch/sheaf/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestIsFragment(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{path: "/srv/styles/base.css", want: true},
		{path: "/srv/styles/config.tmpl", want: true},
		{path: "/srv/styles/vars.tmpl", want: true},
		{path: "/srv/styles/readme.md", want: false},
		{path: "/srv/styles/.cache", want: false},
		{path: "/srv/styles/.hidden.css", want: false},
		{path: "/srv/styles/base.css~", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, watcher.IsFragment(tt.path))
		})
	}
}

func TestWatcher_ReportsFragmentChanges(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn(gomock.Any(), gomock.Any()).AnyTimes()

	dir := t.TempDir()
	w := watcher.NewWatcher(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx, dir))
	defer func() { _ = w.Stop() }()

	// Cache writes are hidden and must not be reported.
	require.NoError(t, os.Mkdir(filepath.Join(dir, domain.DefaultCacheDirName), domain.DirPerm))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), domain.FilePerm))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "base.css"), []byte("a{}"), domain.FilePerm))

	received := make(chan ports.WatchEvent, 1)
	go func() {
		for ev := range w.Events() {
			received <- ev
			return
		}
	}()

	select {
	case ev := <-received:
		assert.Equal(t, filepath.Join(dir, "base.css"), ev.Path)
	case <-time.After(5 * time.Second):
		t.Fatal("no event for base.css")
	}
}

func TestWatcher_StartFailsForMissingRoot(t *testing.T) {
	ctrl := gomock.NewController(t)
	w := watcher.NewWatcher(mocks.NewMockLogger(ctrl))
	defer func() { _ = w.Stop() }()

	err := w.Start(context.Background(), filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrWatcherFailed.Error())
}

func TestWatcher_LifecycleHoldsResourcesOnlyWhileStarted(t *testing.T) {
	ctrl := gomock.NewController(t)
	w := watcher.NewWatcher(mocks.NewMockLogger(ctrl))

	require.NoError(t, w.Stop(), "stopping an unstarted watcher is a no-op")

	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx, dir))

	err := w.Start(ctx, dir)
	require.ErrorIs(t, err, domain.ErrWatcherRunning)

	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())
}

func TestWatcher_FailedStartReleasesWatcher(t *testing.T) {
	ctrl := gomock.NewController(t)
	w := watcher.NewWatcher(mocks.NewMockLogger(ctrl))

	require.Error(t, w.Start(context.Background(), filepath.Join(t.TempDir(), "missing")))

	// A failed start leaves nothing running, so the watcher can be started again.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx, t.TempDir()))
	require.NoError(t, w.Stop())
}
