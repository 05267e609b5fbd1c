package xloader_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"

	"github.com/jasig/portalkit/pkg/portal/xappctx"
	"github.com/jasig/portalkit/pkg/portal/xattr"
	"github.com/jasig/portalkit/pkg/portal/xloader"
)

func ExampleLoader_Load() {
	loader, err := xloader.New(
		xloader.WithName("portal"),
		xloader.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		xloader.WithConfigBytes([]byte("greeting: hello\n"), xloader.FormatYAML),
	)
	if err != nil {
		log.Fatal(err)
	}

	container := xattr.New()
	_, err = loader.Load(context.Background(), container)
	if err != nil {
		log.Fatal(err)
	}
	defer loader.Close(context.Background(), container) //nolint:errcheck

	// 任意组件随后都能通过查找层拿到同一个句柄
	found, err := xappctx.GetRequired(container)
	if err != nil {
		log.Fatal(err)
	}

	rc := found.(*xloader.RootContext)
	fmt.Println(rc.Name(), rc.Config().String("greeting"))
	// Output: portal hello
}

func ExampleLoader_Load_startupFailure() {
	loader, err := xloader.New(
		xloader.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		xloader.WithInitializer(func(ctx context.Context, rc *xloader.RootContext) error {
			return errors.New("schema migration failed")
		}),
	)
	if err != nil {
		log.Fatal(err)
	}

	container := xattr.New()
	if _, err := loader.Load(context.Background(), container); err != nil {
		fmt.Println("load:", err)
	}

	// 失败被记录进容器：查找层重抛，而不是误报"没有上下文"
	if _, err := xappctx.Get(container); err != nil {
		fmt.Println("get:", err)
	}
	// Output:
	// load: schema migration failed
	// get: schema migration failed
}
