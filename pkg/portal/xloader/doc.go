// Package xloader 提供根应用上下文的加载、关闭与配置热更新。
//
// # 概述
//
// xloader 是属性容器协作协议的"写方"：Load 构建根应用上下文并把结果
// 写入容器的约定属性（见 xappctx 包），Close 停止服务并清理属性。
// 查找方（xappctx）据此区分三种容器状态：
//
//   - 属性缺失        → 上下文尚未加载
//   - 属性为句柄      → 启动成功，返回 *RootContext
//   - 属性为失败值    → 启动失败，失败值被重新抛出
//
// # 失败记录协议
//
// 启动失败不吞错误：
//   - 初始化函数或服务启动返回 error → error 原样写入容器并返回
//   - 启动过程 panic → recover 后以 *xappctx.PanicRecord 写入容器，
//     返回 *xappctx.StartupPanicError
//
// 这保证了后续任意组件通过 xappctx.Get 看到的失败与 Load 调用方
// 看到的完全一致。
//
// # 快速开始
//
//	loader, err := xloader.New(
//	    xloader.WithName("portal"),
//	    xloader.WithConfigFile("/etc/portal/config.yaml"),
//	    xloader.WithService("sessions", sessionStore),
//	)
//	if err != nil {
//	    return err
//	}
//
//	container := xattr.New()
//	app, err := loader.Load(ctx, container)
//	if err != nil {
//	    return err
//	}
//	defer loader.Close(context.Background(), container)
//
// # 配置
//
// 配置加载基于 koanf：支持 YAML/JSON 文件（扩展名检测）或字节数据
// （显式指定格式）。文件配置支持 Reload 和 fsnotify 驱动的自动热更新
// （见 WatchConfig）。
//
// # 并发模型
//
// 服务启动通过 errgroup 并发执行，任一失败取消其余启动并做尽力而为的
// 清理；停止按注册逆序串行执行，错误用 errors.Join 聚合。
// Loader 自身无状态，可安全地对多个容器复用。
package xloader
