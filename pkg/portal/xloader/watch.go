package xloader

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// RefreshCallback 配置刷新回调函数。
// 配置文件变更触发重载后调用，err 表示重载是否成功。
type RefreshCallback func(rc *RootContext, err error)

// WatchOption 监视器配置选项。
type WatchOption func(*watchOptions)

type watchOptions struct {
	debounce time.Duration
}

func defaultWatchOptions() *watchOptions {
	return &watchOptions{
		debounce: 100 * time.Millisecond,
	}
}

// WithDebounce 设置防抖时间。
// 在指定时间内的多次变更只触发一次重载，默认 100ms。
func WithDebounce(d time.Duration) WatchOption {
	return func(o *watchOptions) {
		if d > 0 {
			o.debounce = d
		}
	}
}

// Watcher 监视根上下文的配置文件变更并自动重载。
type Watcher struct {
	rc       *RootContext
	watcher  *fsnotify.Watcher
	callback RefreshCallback
	debounce time.Duration
	ctx      context.Context
	cancel   context.CancelFunc
	mu       sync.Mutex
	running  bool
	timer    *time.Timer // debounce 定时器，Stop() 时需要取消
}

// WatchConfig 创建根上下文的配置文件监视器。
//
// 文件变更时自动调用 rc.Reload() 并通过 callback 通知调用方。
// 仅对从配置文件创建的上下文有效（WithConfigFile），
// 字节配置或无配置的上下文返回 ErrNotReloadable。
//
// 返回的 Watcher 需要调用 Start()/StartAsync() 开始监视，Stop() 停止。
//
// 示例：
//
//	w, err := xloader.WatchConfig(rc, func(rc *xloader.RootContext, err error) {
//	    if err != nil {
//	        slog.Warn("config reload failed", "error", err)
//	        return
//	    }
//	    slog.Info("config reloaded")
//	})
//	if err != nil {
//	    return err
//	}
//	defer w.Stop()
//	w.StartAsync()
func WatchConfig(rc *RootContext, callback RefreshCallback, opts ...WatchOption) (*Watcher, error) {
	if rc == nil {
		return nil, ErrNilContext
	}
	if rc.path == "" {
		return nil, ErrNotReloadable
	}

	options := defaultWatchOptions()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(options)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("xloader: failed to create watcher: %w", err)
	}

	// 监视配置文件所在目录（而非文件本身）：
	// 编辑器保存文件时可能先删除再创建，直接监视文件会丢失事件。
	dir := filepath.Dir(rc.path)
	if err := fsWatcher.Add(dir); err != nil {
		closeErr := fsWatcher.Close()
		return nil, errors.Join(
			fmt.Errorf("xloader: failed to watch directory %s: %w", dir, err),
			closeErr,
		)
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Watcher{
		rc:       rc,
		watcher:  fsWatcher,
		callback: callback,
		debounce: options.debounce,
		ctx:      ctx,
		cancel:   cancel,
	}, nil
}

// Start 启动监视。
// 此方法会阻塞，通常应在 goroutine 中调用。
func (w *Watcher) Start() {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return
	}
	w.running = true
	w.mu.Unlock()

	w.run()
}

// StartAsync 异步启动监视，在后台 goroutine 中运行，立即返回。
// 先设置 running 标志再启动 goroutine，避免与 Stop() 的竞态。
func (w *Watcher) StartAsync() {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return
	}
	w.running = true
	w.mu.Unlock()

	go w.run()
}

// Stop 停止监视。幂等，未启动时为空操作。
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return nil
	}

	// 停止 debounce 定时器，防止 Stop 后仍触发回调。
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}

	w.cancel()
	w.running = false
	return w.watcher.Close()
}

// run 运行监视循环。
func (w *Watcher) run() {
	filename := filepath.Base(w.rc.path)

	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event, filename)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.handleError(err)
		}
	}
}

// handleEvent 处理文件系统事件。
func (w *Watcher) handleEvent(event fsnotify.Event, filename string) {
	// 只处理目标配置文件的事件。
	if filepath.Base(event.Name) != filename {
		return
	}

	// Write: 直接修改；Create: 新建文件（部分编辑器）；
	// Rename: 原子写入模式（vim/emacs 写临时文件后 rename）。
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}

	// 防抖处理：重置计时器。
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}

	w.timer = time.AfterFunc(w.debounce, func() {
		select {
		case <-w.ctx.Done():
			return
		default:
		}

		err := w.rc.Reload()
		if w.callback != nil {
			w.callback(w.rc, err)
		}
	})
}

// handleError 处理 watcher 错误。
func (w *Watcher) handleError(err error) {
	if w.callback != nil {
		w.callback(w.rc, fmt.Errorf("xloader: watch error: %w", err))
	}
}
