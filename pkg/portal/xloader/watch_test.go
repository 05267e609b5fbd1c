package xloader_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jasig/portalkit/pkg/portal/xattr"
	"github.com/jasig/portalkit/pkg/portal/xloader"
)

// loadFileBacked 从临时配置文件加载根上下文。
func loadFileBacked(t *testing.T, content string) (*xloader.RootContext, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	loader, err := xloader.New(
		xloader.WithLogger(quietLogger()),
		xloader.WithConfigFile(path),
	)
	require.NoError(t, err)

	app, err := loader.Load(context.Background(), xattr.New())
	require.NoError(t, err)
	return app.(*xloader.RootContext), path
}

func TestWatchConfig_NilContext(t *testing.T) {
	t.Parallel()

	_, err := xloader.WatchConfig(nil, nil)
	assert.ErrorIs(t, err, xloader.ErrNilContext)
}

func TestWatchConfig_NotFileBacked(t *testing.T) {
	t.Parallel()

	loader, err := xloader.New(
		xloader.WithLogger(quietLogger()),
		xloader.WithConfigBytes([]byte("a: 1"), xloader.FormatYAML),
	)
	require.NoError(t, err)

	app, err := loader.Load(context.Background(), xattr.New())
	require.NoError(t, err)

	_, err = xloader.WatchConfig(app.(*xloader.RootContext), nil)
	assert.ErrorIs(t, err, xloader.ErrNotReloadable)
}

func TestWatcher_ReloadOnChange(t *testing.T) {
	t.Parallel()

	rc, path := loadFileBacked(t, "port: 1\n")
	require.Equal(t, 1, rc.Config().Int("port"))

	refreshed := make(chan error, 4)
	w, err := xloader.WatchConfig(rc, func(rc *xloader.RootContext, err error) {
		refreshed <- err
	}, xloader.WithDebounce(10*time.Millisecond))
	require.NoError(t, err)
	defer w.Stop() //nolint:errcheck // 测试末尾的兜底清理

	w.StartAsync()

	// 给监视循环一点启动时间，避免写事件先于 watcher 就绪
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("port: 2\n"), 0o600))

	select {
	case err := <-refreshed:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for refresh callback")
	}

	assert.Equal(t, 2, rc.Config().Int("port"))
	require.NoError(t, w.Stop())
}

func TestWatcher_StopIdempotent(t *testing.T) {
	t.Parallel()

	rc, _ := loadFileBacked(t, "port: 1\n")

	w, err := xloader.WatchConfig(rc, nil)
	require.NoError(t, err)

	// 未启动时 Stop 为空操作
	require.NoError(t, w.Stop())

	w.StartAsync()
	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())
}

func TestWatcher_StartTwice(t *testing.T) {
	t.Parallel()

	rc, _ := loadFileBacked(t, "port: 1\n")

	w, err := xloader.WatchConfig(rc, nil)
	require.NoError(t, err)

	w.StartAsync()
	w.StartAsync() // 第二次调用为空操作
	require.NoError(t, w.Stop())
}
