// Package portal 提供门户应用上下文管理相关的子包。
//
// 子包列表：
//   - xattr: 共享属性容器（宿主框架在启动时填充，各组件按名读取）
//   - xappctx: 根应用上下文的查找与分类（属性容器的只读访问层）
//   - xloader: 根应用上下文加载器（配置加载、服务启停、失败记录）
//
// 设计原则：
//   - 属性容器是唯一的共享状态载体，组件之间通过约定的属性名协作
//   - 查找层（xappctx）只读不写，并发安全委托给容器实现
//   - 启动失败不被吞掉：加载器把失败值写入容器，查找层负责重新抛出
package portal
