// portalctl 是门户配置的离线检查工具。
//
// 用法:
//
//	portalctl [全局选项] <命令> <配置文件>
//
// 全局选项:
//
//	-n, --name     上下文名称 (默认: portal)
//	-t, --timeout  启动超时时间 (默认: 30s)
//
// 命令:
//
//	validate <config>   校验配置文件（解析 + 试启动根上下文）
//	inspect <config>    试启动根上下文并打印元信息和配置键
//	help                显示帮助信息
//
// validate/inspect 都会在一个全新的内存属性容器中完整走一遍加载流程，
// 因此能发现解析错误之外的启动期问题（初始化函数失败等）。
// 过程不涉及网络，也不触碰任何正在运行的进程。
//
// 退出码:
//
//	0: 配置有效 / 检查成功
//	1: 配置无效或加载失败
//	2: 参数错误（缺少配置路径、未知命令等）
//
// 示例:
//
//	portalctl validate /etc/portal/config.yaml
//	portalctl inspect config.yaml
//	portalctl -n uportal validate config.json
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v3"
)

// defaultTimeout 默认启动超时时间。
const defaultTimeout = 30 * time.Second

// 版本信息（可通过 -ldflags 注入，例如:
//
//	go build -ldflags "-X main.Version=1.0.0 -X main.GitCommit=$(git rev-parse --short HEAD)"
//
// ）。
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
)

func main() {
	os.Exit(run())
}

// createApp 创建 CLI 应用。
func createApp() *cli.Command {
	return &cli.Command{
		Name:    "portalctl",
		Usage:   "门户配置离线检查工具",
		Version: fmt.Sprintf("%s (commit: %s)", Version, GitCommit),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "name",
				Aliases: []string{"n"},
				Usage:   "上下文名称",
				Value:   "portal",
			},
			&cli.DurationFlag{
				Name:    "timeout",
				Aliases: []string{"t"},
				Usage:   "启动超时时间",
				Value:   defaultTimeout,
			},
		},
		Commands:       createCommands(),
		DefaultCommand: "help",
		// 设计决策: 禁止 urfave/cli 直接调用 os.Exit，
		// 由 run() 统一处理退出码映射，确保与文档退出码契约一致。
		ExitErrHandler: func(_ context.Context, _ *cli.Command, err error) {
			if _, ok := err.(cli.ExitCoder); ok {
				fmt.Fprintln(os.Stderr, err)
			}
		},
	}
}

func run() int {
	app := createApp()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := app.Run(ctx, os.Args); err != nil {
		var exit *exitError
		if errors.As(err, &exit) {
			return exit.code
		}
		if coder, ok := err.(cli.ExitCoder); ok {
			return coder.ExitCode()
		}
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
