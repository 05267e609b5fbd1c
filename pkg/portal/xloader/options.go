package xloader

import (
	"log/slog"
	"time"
)

// Option 配置 Loader 的选项函数。
type Option func(*loaderOptions)

type loaderOptions struct {
	name         string
	logger       *slog.Logger
	configPath   string
	configBytes  []byte
	configFormat Format
	delim        string
	startTimeout time.Duration
	initializers []Initializer
	services     []namedService
}

func defaultOptions() *loaderOptions {
	return &loaderOptions{
		name:   "portal",
		logger: slog.Default(),
		delim:  ".",
	}
}

// WithName 设置根上下文名称。
//
// 用于日志记录中标识不同的上下文。默认值为 "portal"。
func WithName(name string) Option {
	return func(o *loaderOptions) {
		if name != "" {
			o.name = name
		}
	}
}

// WithLogger 设置日志记录器。
//
// 用于记录上下文启动、关闭等生命周期事件。
// 默认使用 slog.Default()。
func WithLogger(logger *slog.Logger) Option {
	return func(o *loaderOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithConfigFile 设置配置文件路径。
//
// 格式根据扩展名自动检测（.yaml/.yml 或 .json）。
// 从文件创建的上下文支持 Reload 和配置监视（见 WatchConfig）。
// 与 WithConfigBytes 互斥，同时设置时 New 返回 ErrConflictingConfig。
func WithConfigFile(path string) Option {
	return func(o *loaderOptions) {
		o.configPath = path
	}
}

// WithConfigBytes 设置字节形式的配置数据。
//
// 需要显式指定格式，适用于配置内容来自环境变量或远端下发的场景。
// 设计决策: 在创建时拷贝 data，避免调用方后续修改切片导致配置漂移。
func WithConfigBytes(data []byte, format Format) Option {
	copied := append([]byte(nil), data...)
	return func(o *loaderOptions) {
		o.configBytes = copied
		o.configFormat = format
	}
}

// WithDelim 设置配置键分隔符。
// 默认为 "."，例如 "portal.server.port"。
func WithDelim(delim string) Option {
	return func(o *loaderOptions) {
		if delim != "" {
			o.delim = delim
		}
	}
}

// WithStartTimeout 设置服务启动阶段的超时时间。
//
// 0 或负数表示无超时限制。超时后未完成启动的服务会收到 context 取消，
// Load 以启动失败处理。
func WithStartTimeout(d time.Duration) Option {
	return func(o *loaderOptions) {
		o.startTimeout = d
	}
}

// WithInitializer 注册上下文初始化函数。
//
// 初始化函数在配置加载之后、服务启动之前按注册顺序依次执行，
// 任一初始化函数返回错误都会中止加载，错误作为启动失败值写入容器。
// nil 函数会被静默跳过。
func WithInitializer(fn Initializer) Option {
	return func(o *loaderOptions) {
		if fn != nil {
			o.initializers = append(o.initializers, fn)
		}
	}
}

// WithService 向根上下文注册命名服务。
//
// 服务在 Load 时并发启动，在 Close 时按注册的逆序停止。
// name 为空或 svc 为 nil 会使 New 返回错误（fail-fast，而非加载时才暴露）。
func WithService(name string, svc Service) Option {
	return func(o *loaderOptions) {
		o.services = append(o.services, namedService{name: name, svc: svc})
	}
}
