package xattr

// Option 定义容器可选配置函数类型。
type Option func(*options)

type options struct {
	seed map[string]any
}

func defaultOptions() *options {
	return &options{}
}

// WithAttributes 设置容器的初始属性。
//
// 设计决策: 在创建时拷贝，避免调用方后续修改 map 导致容器内容漂移。
// 空属性名和 nil 值的条目会被跳过（与 SetAttribute 的语义对齐）。
func WithAttributes(attrs map[string]any) Option {
	copied := make(map[string]any, len(attrs))
	for name, value := range attrs {
		if name == "" || value == nil {
			continue
		}
		copied[name] = value
	}
	return func(o *options) {
		o.seed = copied
	}
}
