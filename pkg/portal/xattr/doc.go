// Package xattr 提供进程内的共享属性容器实现。
//
// 属性容器是一个由宿主框架持有、生命周期贯穿整个应用的 string → any 映射。
// 加载器（xloader）在启动阶段向容器写入根应用上下文或启动失败值，
// 查找层（xappctx）和业务组件在运行期间按名读取。
//
// # 核心特性
//
//   - 并发安全：读写均受 RWMutex 保护，读多写少场景下读路径无争用
//   - 删除语义：SetAttribute(name, nil) 等价于 RemoveAttribute(name)，
//     与 servlet/portlet 容器的 setAttribute(null) 约定一致
//   - 无过期、无淘汰：容器持有的是生命周期对象而非缓存条目
//
// # 设计决策
//
// 容器的读接口定义在 xappctx 包（xappctx.Container），本包只提供实现。
// 这样查找层不依赖任何具体实现，调用方可以用自己的容器
// （例如挂接到框架自有的 attribute store）接入 xappctx。
package xattr
