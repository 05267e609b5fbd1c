// Package xappctx 提供从共享属性容器查找根应用上下文的能力。
//
// 宿主框架（通常是 xloader）在启动阶段向属性容器写入以下两个约定属性：
//   - RootLoaderAttribute: 负责填充容器的加载器自身
//   - RootContextAttribute: 启动成功时为应用上下文句柄，
//     启动失败时为记录下来的失败值（error 或 *PanicRecord）
//
// xappctx 按约定属性名查找并分类容器中的值，把启动失败值重新抛给调用方，
// 以区分"启动失败"和"根本没有上下文"两种情况。
//
// # 命名约定
//
//	Get(c)              - 按根属性名查找，缺失时返回 (nil, nil)
//	GetNamed(c, name)   - 按自定义属性名查找
//	GetRequired(c)      - 强制查找：缺失时返回 ErrNoContext
//
// # 值分类
//
// 容器中约定属性名下的值按以下顺序分类（先匹配先生效）：
//
//  1. error        → 原样返回（启动失败值，不包装，保持错误身份）
//  2. *PanicRecord → 包装为 *StartupPanicError 返回（启动 panic 的记录）
//  3. ApplicationContext → 作为句柄返回（原对象，不复制）
//  4. 其他         → 返回包装 ErrUnexpectedAttribute 的错误，消息含实际值描述
//
// 设计决策: Go 没有 Java 那样的 unchecked/checked 异常之分。这里的映射是：
// 容器中已经是 error 的失败值直接透传（对应 RuntimeException/Error 原样重抛），
// 非 error 的 panic 记录则包装后携带原始载荷返回（对应 checked Exception
// 包装进 IllegalStateException）。
//
// # 约束
//
// xappctx 是纯查找层：不写容器、不缓存、不重试、不打日志。
// 并发安全完全委托给容器实现（Container 的实现必须支持并发读）。
package xappctx
