package xloader

import "errors"

// =============================================================================
// 加载相关错误
// =============================================================================

var (
	// ErrNilContainer 表示传入的属性容器为 nil。
	ErrNilContainer = errors.New("xloader: nil container")

	// ErrAlreadyLoaded 表示容器中已存在根上下文属性。
	// 同一容器只允许加载一次根上下文，重复加载通常意味着部署配置错误。
	ErrAlreadyLoaded = errors.New("xloader: root application context already present in container")
)

// =============================================================================
// 配置相关错误
// =============================================================================

var (
	// ErrEmptyPath 表示配置文件路径为空。
	ErrEmptyPath = errors.New("xloader: empty config path")

	// ErrUnsupportedFormat 表示不支持的配置格式。
	ErrUnsupportedFormat = errors.New("xloader: unsupported config format")

	// ErrConfigLoad 表示配置读取失败。
	ErrConfigLoad = errors.New("xloader: failed to load config")

	// ErrConfigParse 表示配置解析失败。
	ErrConfigParse = errors.New("xloader: failed to parse config")

	// ErrConflictingConfig 表示同时设置了文件配置和字节配置。
	// 这是一个配置错误，应该在开发阶段修复，不应被静默忽略。
	ErrConflictingConfig = errors.New("xloader: config file and config bytes are mutually exclusive")
)

// =============================================================================
// 服务注册相关错误
// =============================================================================

var (
	// ErrNilService 表示注册的服务为 nil。
	ErrNilService = errors.New("xloader: nil service")

	// ErrEmptyServiceName 表示注册的服务名为空字符串。
	ErrEmptyServiceName = errors.New("xloader: empty service name")

	// ErrDuplicateService 表示服务名重复注册。
	ErrDuplicateService = errors.New("xloader: duplicate service name")
)

// =============================================================================
// 监视相关错误
// =============================================================================

var (
	// ErrNilContext 表示传入的根上下文为 nil。
	ErrNilContext = errors.New("xloader: nil root context")

	// ErrNotReloadable 表示根上下文不是从配置文件创建的，无法重载。
	ErrNotReloadable = errors.New("xloader: context config is not file-backed")
)
