package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/jasig/portalkit/pkg/portal/xattr"
	"github.com/jasig/portalkit/pkg/portal/xloader"
)

// exitError 表示需要非零退出码但已完成输出的场景。
// 命令内部已完成所有输出，main 只需设置退出码。
type exitError struct {
	code int
}

func (e *exitError) Error() string { return "" }

// 创建所有子命令。
func createCommands() []*cli.Command {
	return []*cli.Command{
		createValidateCommand(),
		createInspectCommand(),
	}
}

// createValidateCommand 创建 validate 子命令。
func createValidateCommand() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Aliases:   []string{"v"},
		Usage:     "校验配置文件（解析 + 试启动根上下文）",
		ArgsUsage: "<config>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path := cmd.Args().First()
			if path == "" {
				fmt.Fprintln(os.Stderr, "portalctl: missing config path")
				return &exitError{code: 2}
			}
			return cmdValidate(ctx, cmd.String("name"), path, cmd.Duration("timeout"))
		},
	}
}

// createInspectCommand 创建 inspect 子命令。
func createInspectCommand() *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Aliases:   []string{"i"},
		Usage:     "试启动根上下文并打印元信息和配置键",
		ArgsUsage: "<config>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path := cmd.Args().First()
			if path == "" {
				fmt.Fprintln(os.Stderr, "portalctl: missing config path")
				return &exitError{code: 2}
			}
			return cmdInspect(ctx, cmd.String("name"), path, cmd.Duration("timeout"))
		},
	}
}

// cmdValidate 校验配置文件。
func cmdValidate(ctx context.Context, name, path string, timeout time.Duration) error {
	rc, closeFn, err := bootContext(ctx, name, path, timeout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid: %v\n", err)
		return &exitError{code: 1}
	}
	defer closeFn()

	fmt.Printf("ok: %s (%d keys)\n", rc.Name(), len(rc.Config().Keys()))
	return nil
}

// cmdInspect 打印根上下文元信息。
func cmdInspect(ctx context.Context, name, path string, timeout time.Duration) error {
	rc, closeFn, err := bootContext(ctx, name, path, timeout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "inspect failed: %v\n", err)
		return &exitError{code: 1}
	}
	defer closeFn()

	fmt.Printf("name:       %s\n", rc.Name())
	fmt.Printf("context_id: %s\n", rc.ID())
	fmt.Printf("started_at: %s\n", rc.StartedAt().Format(time.RFC3339))
	fmt.Println("config_keys:")
	for _, key := range rc.Config().Keys() {
		fmt.Printf("  %s\n", key)
	}
	return nil
}

// bootContext 在全新的内存容器中完整走一遍加载流程。
// 返回的 closeFn 负责停止服务并清理容器。
func bootContext(ctx context.Context, name, path string, timeout time.Duration) (*xloader.RootContext, func(), error) {
	loader, err := xloader.New(
		xloader.WithName(name),
		xloader.WithConfigFile(path),
		xloader.WithStartTimeout(timeout),
		// 离线工具不需要生命周期日志
		xloader.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	if err != nil {
		return nil, nil, err
	}

	container := xattr.New()
	app, err := loader.Load(ctx, container)
	if err != nil {
		return nil, nil, err
	}

	closeFn := func() {
		_ = loader.Close(context.Background(), container)
	}
	return app.(*xloader.RootContext), closeFn, nil
}
