package xappctx

import "fmt"

// =============================================================================
// 约定属性名
// =============================================================================

// 约定属性名使用 "xappctx:" 前缀命名空间，避免与共享容器中的无关属性冲突。
const (
	// RootLoaderAttribute 绑定负责填充容器的根上下文加载器。
	RootLoaderAttribute = "xappctx:root_loader"

	// RootContextAttribute 绑定启动成功的根应用上下文。
	// 注意：如果根上下文启动失败，此属性持有的是记录下来的失败值
	// （error 或 *PanicRecord），Get/GetRequired 会把它重新抛出。
	RootContextAttribute = "xappctx:root_context"
)

// =============================================================================
// 外部协作接口
// =============================================================================

// Container 定义属性容器的只读接口。
//
// 容器由宿主框架持有并填充，xappctx 只读取。
// 实现必须支持并发读（xattr.Memory 天然满足）。
type Container interface {
	// Attribute 按名读取属性值，属性不存在时返回 (nil, false)。
	Attribute(name string) (any, bool)
}

// ApplicationContext 是根应用上下文句柄的能力接口。
//
// 句柄由加载器创建并写入容器，对查找层而言是不透明对象。
// xloader.RootContext 是本仓库内的标准实现。
type ApplicationContext interface {
	// ID 返回上下文实例的唯一标识。
	ID() string

	// Name 返回上下文名称。
	Name() string

	// Service 按名查找上下文中注册的服务，不存在时返回 (nil, false)。
	Service(name string) (any, bool)
}

// =============================================================================
// 查找操作
// =============================================================================

// Get 从容器查找根应用上下文。
//
// 属性缺失返回 (nil, nil)——缺失不是错误，调用方据此区分
// "尚未加载"和"加载失败"。如需强制存在语义，请使用 GetRequired。
func Get(c Container) (ApplicationContext, error) {
	return GetNamed(c, RootContextAttribute)
}

// GetNamed 从容器按自定义属性名查找应用上下文。
//
// 用于一个容器中并存多个上下文的场景（例如按模块划分的子上下文）。
// 值分类规则见包文档。如果 c 为 nil，返回 ErrNilContainer。
func GetNamed(c Container, name string) (ApplicationContext, error) {
	if c == nil {
		return nil, ErrNilContainer
	}

	attr, ok := c.Attribute(name)
	if !ok || attr == nil {
		return nil, nil
	}

	// 失败值优先于句柄判断：启动失败时属性持有的就是失败值本身，
	// 必须重新抛出而不是误报类型不符。
	if err, isErr := attr.(error); isErr {
		return nil, err
	}
	if rec, isRec := attr.(*PanicRecord); isRec {
		return nil, &StartupPanicError{Record: rec}
	}
	if app, isApp := attr.(ApplicationContext); isApp {
		return app, nil
	}
	return nil, fmt.Errorf("%w: %T(%v)", ErrUnexpectedAttribute, attr, attr)
}

// GetRequired 从容器查找根应用上下文，不存在则返回错误。
//
// 语义：上下文必须存在，缺失时返回 ErrNoContext。
// 与 Get 不同，此函数永远不会返回 (nil, nil)，
// 适用于没有上下文就无法工作的组件入口。
func GetRequired(c Container) (ApplicationContext, error) {
	app, err := Get(c)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, ErrNoContext
	}
	return app, nil
}
