package xloader

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/knadh/koanf/v2"
	"golang.org/x/sync/errgroup"

	"github.com/jasig/portalkit/pkg/portal/xappctx"
)

// =============================================================================
// 协作接口
// =============================================================================

// Container 定义加载器需要的属性容器读写接口。
//
// 在 xappctx.Container 只读接口之上增加写入能力。
// xattr.Memory 天然满足此接口。
type Container interface {
	xappctx.Container

	// SetAttribute 设置属性值，value 为 nil 时等价于删除。
	SetAttribute(name string, value any) error

	// RemoveAttribute 删除属性。
	RemoveAttribute(name string)
}

// Service 定义由根上下文管理生命周期的服务接口。
type Service interface {
	// Start 启动服务。Load 期间并发调用，ctx 携带启动超时。
	Start(ctx context.Context) error

	// Stop 停止服务。Close 期间按注册的逆序调用。
	Stop(ctx context.Context) error
}

// Initializer 定义上下文初始化函数。
// 在配置加载之后、服务启动之前按注册顺序执行。
type Initializer func(ctx context.Context, rc *RootContext) error

// namedService 是服务及其注册名。
type namedService struct {
	name string
	svc  Service
}

// =============================================================================
// Loader
// =============================================================================

// Loader 负责构建根应用上下文并把结果写入属性容器。
//
// 启动成功时容器的根上下文属性持有 *RootContext；
// 启动失败时持有失败值（error 或 *xappctx.PanicRecord），
// 后续 xappctx.Get 会把失败值重新抛出，区分"启动失败"和"没有上下文"。
//
// Loader 本身无状态（配置全部来自选项），同一 Loader 可对多个容器调用 Load。
type Loader struct {
	opts *loaderOptions
}

// New 创建新的 Loader。
//
// 选项校验采用 fail-fast 策略：服务注册错误（nil 服务、空名、重名）
// 和配置来源冲突在这里返回，而不是等到 Load 时才暴露。
func New(opts ...Option) (*Loader, error) {
	options := defaultOptions()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(options)
	}

	if options.configPath != "" && len(options.configBytes) > 0 {
		return nil, ErrConflictingConfig
	}

	seen := make(map[string]struct{}, len(options.services))
	for _, ns := range options.services {
		if ns.name == "" {
			return nil, ErrEmptyServiceName
		}
		if ns.svc == nil {
			return nil, fmt.Errorf("%w: %s", ErrNilService, ns.name)
		}
		if _, dup := seen[ns.name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateService, ns.name)
		}
		seen[ns.name] = struct{}{}
	}

	return &Loader{opts: options}, nil
}

// Load 构建根应用上下文并写入容器。
//
// 加载流程：绑定加载器属性 → 加载配置 → 执行初始化函数 → 并发启动服务。
// 任一环节失败都会把失败值记录到容器的根上下文属性，然后原样返回给调用方；
// panic 会被 recover 并以 *xappctx.PanicRecord 形式记录，
// 返回 *xappctx.StartupPanicError。
//
// 容器中已存在根上下文属性时返回 ErrAlreadyLoaded（不覆盖已有值）。
func (l *Loader) Load(ctx context.Context, c Container) (app xappctx.ApplicationContext, err error) {
	// nil context 归一化，与标准库约定对齐，避免下游 WithTimeout panic。
	if ctx == nil {
		ctx = context.Background()
	}
	if c == nil {
		return nil, ErrNilContainer
	}
	if _, present := c.Attribute(xappctx.RootContextAttribute); present {
		return nil, ErrAlreadyLoaded
	}

	if bindErr := c.SetAttribute(xappctx.RootLoaderAttribute, l); bindErr != nil {
		return nil, bindErr
	}

	began := time.Now()

	defer func() {
		if r := recover(); r != nil {
			rec := &xappctx.PanicRecord{Value: r, Stack: debug.Stack()}
			// 记录失败本身不能再失败：容器写入错误只能记日志。
			if setErr := c.SetAttribute(xappctx.RootContextAttribute, rec); setErr != nil {
				l.opts.logger.Error("failed to record startup panic",
					slog.String("context", l.opts.name),
					slog.Any("error", setErr),
				)
			}
			l.opts.logger.Error("root application context startup panicked",
				slog.String("context", l.opts.name),
				slog.Any("panic", r),
			)
			app, err = nil, &xappctx.StartupPanicError{Record: rec}
		}
	}()

	rc, buildErr := l.build(ctx)
	if buildErr != nil {
		// 失败值原样入容器：xappctx.Get 会把同一个 error 重新抛出。
		if setErr := c.SetAttribute(xappctx.RootContextAttribute, buildErr); setErr != nil {
			l.opts.logger.Error("failed to record startup failure",
				slog.String("context", l.opts.name),
				slog.Any("error", setErr),
			)
		}
		l.opts.logger.Error("root application context startup failed",
			slog.String("context", l.opts.name),
			slog.Any("error", buildErr),
		)
		return nil, buildErr
	}

	if setErr := c.SetAttribute(xappctx.RootContextAttribute, rc); setErr != nil {
		return nil, setErr
	}

	l.opts.logger.Info("root application context started",
		slog.String("context", rc.Name()),
		slog.String("context_id", rc.ID()),
		slog.Duration("elapsed", time.Since(began)),
	)
	return rc, nil
}

// build 构建并启动根上下文。
func (l *Loader) build(ctx context.Context) (*RootContext, error) {
	var (
		data   []byte
		format Format
	)
	switch {
	case l.opts.configPath != "":
		detected, err := detectFormat(l.opts.configPath)
		if err != nil {
			return nil, err
		}
		raw, err := os.ReadFile(l.opts.configPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrConfigLoad, err)
		}
		data, format = raw, detected
	case len(l.opts.configBytes) > 0:
		data, format = l.opts.configBytes, l.opts.configFormat
	default:
		data, format = nil, FormatYAML
	}

	cfg, err := parseConfig(data, format, l.opts.delim)
	if err != nil {
		return nil, err
	}

	index := make(map[string]Service, len(l.opts.services))
	for _, ns := range l.opts.services {
		index[ns.name] = ns.svc
	}

	rc := &RootContext{
		id:        uuid.NewString(),
		name:      l.opts.name,
		cfg:       cfg,
		path:      l.opts.configPath,
		format:    format,
		delim:     l.opts.delim,
		services:  l.opts.services,
		index:     index,
		logger:    l.opts.logger,
		startedAt: time.Now(),
	}

	for _, init := range l.opts.initializers {
		if err := init(ctx, rc); err != nil {
			return nil, err
		}
	}

	if err := l.startServices(ctx, rc); err != nil {
		return nil, err
	}
	return rc, nil
}

// startServices 并发启动所有服务。
//
// 任一服务启动失败会取消其余服务的启动 context，
// 并对全部服务做一次尽力而为的 Stop，避免半启动状态泄漏资源。
func (l *Loader) startServices(ctx context.Context, rc *RootContext) error {
	if len(rc.services) == 0 {
		return nil
	}

	startCtx := ctx
	if l.opts.startTimeout > 0 {
		var cancel context.CancelFunc
		startCtx, cancel = context.WithTimeout(ctx, l.opts.startTimeout)
		defer cancel()
	}

	g, gctx := errgroup.WithContext(startCtx)
	for _, ns := range rc.services {
		ns := ns
		g.Go(func() error {
			if err := ns.svc.Start(gctx); err != nil {
				return fmt.Errorf("xloader: start service %s: %w", ns.name, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if stopErr := rc.stopServices(context.Background()); stopErr != nil {
			l.opts.logger.Warn("cleanup after failed startup",
				slog.String("context", rc.Name()),
				slog.Any("error", stopErr),
			)
		}
		return err
	}
	return nil
}

// Close 关闭根上下文并清理容器。
//
// 按注册的逆序停止服务，随后删除根上下文属性和加载器属性。
// 如果容器持有的是启动失败值（而非 *RootContext），删除属性即完成清理。
// 容器中没有根上下文属性时为空操作。
func (l *Loader) Close(ctx context.Context, c Container) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if c == nil {
		return ErrNilContainer
	}

	defer func() {
		c.RemoveAttribute(xappctx.RootContextAttribute)
		c.RemoveAttribute(xappctx.RootLoaderAttribute)
	}()

	attr, ok := c.Attribute(xappctx.RootContextAttribute)
	if !ok {
		return nil
	}
	rc, isContext := attr.(*RootContext)
	if !isContext {
		return nil
	}

	err := rc.stopServices(ctx)
	if err != nil {
		l.opts.logger.Warn("root application context closed with errors",
			slog.String("context", rc.Name()),
			slog.String("context_id", rc.ID()),
			slog.Any("error", err),
		)
		return err
	}

	l.opts.logger.Info("root application context closed",
		slog.String("context", rc.Name()),
		slog.String("context_id", rc.ID()),
	)
	return nil
}

// =============================================================================
// RootContext
// =============================================================================

// RootContext 是 xappctx.ApplicationContext 的标准实现。
//
// 持有解析后的配置、注册服务索引和启动元信息。
// 对查找层（xappctx）只暴露 ID/Name/Service 能力，
// 配置访问和重载是本包内的增值功能。
type RootContext struct {
	id     string
	name   string
	path   string
	format Format
	delim  string

	// mu 保护 cfg：Reload 会整体替换 koanf 实例。
	mu  sync.RWMutex
	cfg *koanf.Koanf

	services  []namedService
	index     map[string]Service
	logger    *slog.Logger
	startedAt time.Time
}

// 编译期断言：RootContext 必须满足查找层的句柄接口。
var _ xappctx.ApplicationContext = (*RootContext)(nil)

// ID 返回上下文实例的唯一标识（UUID v4，每次 Load 生成）。
func (rc *RootContext) ID() string { return rc.id }

// Name 返回上下文名称。
func (rc *RootContext) Name() string { return rc.name }

// Service 按名查找注册的服务。
func (rc *RootContext) Service(name string) (any, bool) {
	svc, ok := rc.index[name]
	if !ok {
		return nil, false
	}
	return svc, true
}

// Config 返回当前配置实例。
//
// Reload 会整体替换返回的实例，调用方不应长期持有；
// 每次读取配置时重新调用 Config() 可观察到最新值。
func (rc *RootContext) Config() *koanf.Koanf {
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	return rc.cfg
}

// StartedAt 返回上下文的启动时间。
func (rc *RootContext) StartedAt() time.Time { return rc.startedAt }

// Reload 重新读取配置文件并原子替换配置实例。
//
// 仅对从配置文件创建的上下文有效（WithConfigFile），
// 否则返回 ErrNotReloadable。解析失败时保留旧配置。
func (rc *RootContext) Reload() error {
	if rc.path == "" {
		return ErrNotReloadable
	}

	data, err := os.ReadFile(rc.path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConfigLoad, err)
	}
	cfg, err := parseConfig(data, rc.format, rc.delim)
	if err != nil {
		return err
	}

	rc.mu.Lock()
	rc.cfg = cfg
	rc.mu.Unlock()
	return nil
}

// stopServices 按注册的逆序停止服务，聚合所有停止错误。
func (rc *RootContext) stopServices(ctx context.Context) error {
	var errs []error
	for i := len(rc.services) - 1; i >= 0; i-- {
		ns := rc.services[i]
		if err := ns.svc.Stop(ctx); err != nil {
			errs = append(errs, fmt.Errorf("xloader: stop service %s: %w", ns.name, err))
		}
	}
	return errors.Join(errs...)
}
