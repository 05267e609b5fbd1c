package xattr_test

import (
	"fmt"

	"github.com/jasig/portalkit/pkg/portal/xattr"
)

func ExampleNew() {
	container := xattr.New(xattr.WithAttributes(map[string]any{
		"portal.version": "5.0",
	}))

	if err := container.SetAttribute("portal.node", "node-1"); err != nil {
		fmt.Println(err)
		return
	}

	version, _ := container.Attribute("portal.version")
	fmt.Println(version)
	fmt.Println(container.Names())
	// Output:
	// 5.0
	// [portal.node portal.version]
}

func ExampleMemory_SetAttribute_remove() {
	container := xattr.New()
	_ = container.SetAttribute("key", "value")

	// nil 值等价于删除
	_ = container.SetAttribute("key", nil)

	_, ok := container.Attribute("key")
	fmt.Println(ok)
	// Output: false
}
