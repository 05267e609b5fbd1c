package xattr

import "errors"

var (
	// ErrEmptyName 表示属性名为空字符串。
	// 空属性名在 map 中合法但几乎总是使用错误，应在入口处 fail-fast。
	ErrEmptyName = errors.New("xattr: empty attribute name")
)
